package selection

import (
	"time"

	"github.com/charadle/charadle-backend/internal/character"
	"github.com/charadle/charadle-backend/internal/gamemode"
)

// DailySelection records the character chosen as a mode's target for one
// game day. Redraws append new rows instead of rewriting history; the Latest
// flag marks the active row, and at most one row per (date, mode) may carry
// it.
type DailySelection struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	Date         time.Time `gorm:"not null;index:idx_selections_date_mode" json:"date"`
	ModeConfigID uint      `gorm:"not null;index:idx_selections_date_mode" json:"modeConfigId"`
	CharacterID  uint      `gorm:"not null;index" json:"characterId"`
	Latest       bool      `gorm:"not null;default:false;index" json:"latest"`

	Character  character.Character `gorm:"foreignKey:CharacterID" json:"character,omitempty"`
	ModeConfig gamemode.ModeConfig `gorm:"foreignKey:ModeConfigID" json:"modeConfig,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
