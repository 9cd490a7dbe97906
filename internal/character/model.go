package character

import (
	"time"

	"github.com/charadle/charadle-backend/internal/franchise"
	"gorm.io/datatypes"
)

// Character is one guessable catalog entry with the attributes the classic
// mode compares field by field.
type Character struct {
	ID          uint                        `gorm:"primarykey" json:"id"`
	Name        string                      `gorm:"uniqueIndex;size:128;not null" json:"name"`
	Description string                      `json:"description"`
	Emojis      datatypes.JSONSlice[string] `json:"emojis"`
	Gender      string                      `gorm:"size:32" json:"gender"`
	Race        datatypes.JSONSlice[string] `json:"race"`
	Ethnicity   datatypes.JSONSlice[string] `json:"ethnicity"`
	Hair        string                      `gorm:"size:64" json:"hair"`
	AliveStatus string                      `gorm:"size:32" json:"aliveStatus"`

	IsProtagonist bool `gorm:"not null;default:false" json:"isProtagonist"`
	IsAntagonist  bool `gorm:"not null;default:false" json:"isAntagonist"`

	ImageURL1 *string `json:"imageUrl1"`
	ImageURL2 *string `json:"imageUrl2"`

	Franchises []CharacterFranchise `gorm:"foreignKey:CharacterID" json:"franchises,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CharacterFranchise is the join row linking characters to franchises.
type CharacterFranchise struct {
	ID          uint                `gorm:"primarykey" json:"id"`
	CharacterID uint                `gorm:"not null;uniqueIndex:idx_character_franchise" json:"characterId"`
	FranchiseID uint                `gorm:"not null;uniqueIndex:idx_character_franchise" json:"franchiseId"`
	Franchise   franchise.Franchise `gorm:"foreignKey:FranchiseID" json:"franchise"`
}

// FranchiseNames flattens the join rows into the linked franchise names.
func (c *Character) FranchiseNames() []string {
	names := make([]string, 0, len(c.Franchises))
	for _, cf := range c.Franchises {
		names = append(names, cf.Franchise.Name)
	}
	return names
}
