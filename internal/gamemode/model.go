package gamemode

import "time"

// Kind identifies the reveal/comparison behaviour of a mode. It is fixed at
// mode-configuration time; gameplay code branches on it instead of parsing
// the display name.
type Kind string

const (
	KindClassic     Kind = "classic"
	KindEmoji       Kind = "emoji"
	KindDescription Kind = "description"
	KindImage       Kind = "image"
)

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindClassic, KindEmoji, KindDescription, KindImage:
		return true
	}
	return false
}

// ModeConfig is a named game variant with its reveal rules and, for the
// image mode, the blur schedule the client applies per attempt.
type ModeConfig struct {
	ID          uint   `gorm:"primarykey" json:"id"`
	Name        string `gorm:"uniqueIndex;size:64;not null" json:"name"`
	Description string `json:"description"`
	Kind        Kind   `gorm:"size:16;not null;default:classic" json:"kind"`
	IsActive    bool   `gorm:"not null;default:true" json:"isActive"`

	// Blur schedule for the image mode: starting blur in pixels, reduction
	// per attempt, and the floor it never goes below.
	BlurStart int `gorm:"not null;default:0" json:"blurStart"`
	BlurStep  int `gorm:"not null;default:0" json:"blurStep"`
	BlurMin   int `gorm:"not null;default:0" json:"blurMin"`

	// UsesSecondImage marks modes whose target must have an imageUrl2;
	// the daily selection engine filters candidates accordingly.
	UsesSecondImage bool `gorm:"not null;default:false" json:"usesSecondImage"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
