package play

import (
	"time"

	"github.com/charadle/charadle-backend/internal/character"
	"github.com/charadle/charadle-backend/internal/gamemode"
)

// Play is one owner's attempt session for a (mode, game day), bound to the
// day's selected character. Exactly one of UserID/GuestID is set. The unique
// indexes make the one-play-per-owner-per-day rule authoritative at the
// store, backing up the application-level resume check under races.
type Play struct {
	ID      uint    `gorm:"primarykey" json:"id"`
	UserID  *uint   `gorm:"uniqueIndex:idx_plays_user_mode_day" json:"userId"`
	GuestID *string `gorm:"size:64;uniqueIndex:idx_plays_guest_mode_day" json:"guestId"`

	ModeConfigID uint `gorm:"not null;uniqueIndex:idx_plays_user_mode_day;uniqueIndex:idx_plays_guest_mode_day" json:"modeConfigId"`
	CharacterID  uint `gorm:"not null;index" json:"characterId"`

	// SelectionDate is the game day this play is bound to, stored explicitly
	// rather than derived from CreatedAt: a row inserted at 00:02 server time
	// may belong to a different game day in the service timezone.
	SelectionDate time.Time `gorm:"not null;uniqueIndex:idx_plays_user_mode_day;uniqueIndex:idx_plays_guest_mode_day" json:"selectionDate"`

	Completed     bool       `gorm:"not null;default:false" json:"completed"`
	CompletedAt   *time.Time `json:"completedAt"`
	AttemptsCount int        `gorm:"not null;default:0" json:"attemptsCount"`

	Character  character.Character `gorm:"foreignKey:CharacterID" json:"-"`
	ModeConfig gamemode.ModeConfig `gorm:"foreignKey:ModeConfigID" json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Attempt is one guess within a Play. The (play, guess) unique index is the
// hard duplicate-guess guard; the application check merely produces the
// friendlier error first.
type Attempt struct {
	ID      uint    `gorm:"primarykey" json:"id"`
	PlayID  uint    `gorm:"not null;index;uniqueIndex:idx_attempts_play_guess" json:"playId"`
	UserID  *uint   `gorm:"index" json:"userId"`
	GuestID *string `gorm:"size:64;index" json:"guestId"`

	ModeConfigID       uint `gorm:"not null;index" json:"modeConfigId"`
	TargetCharacterID  uint `gorm:"not null;index" json:"targetCharacterId"`
	GuessedCharacterID uint `gorm:"not null;index" json:"guessedCharacterId"`

	Guess     string `gorm:"size:128;not null;uniqueIndex:idx_attempts_play_guess" json:"guess"`
	IsCorrect bool   `gorm:"not null;default:false" json:"isCorrect"`

	// Order is the 1-based sequence of this attempt within its play.
	Order int `gorm:"column:attempt_order;not null" json:"order"`

	GuessedCharacter character.Character `gorm:"foreignKey:GuessedCharacterID" json:"-"`
	TargetCharacter  character.Character `gorm:"foreignKey:TargetCharacterID" json:"-"`

	CreatedAt time.Time `json:"createdAt"`
}
