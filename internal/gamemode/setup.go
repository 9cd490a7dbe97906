package gamemode

import (
	"fmt"

	"github.com/charadle/charadle-backend/internal/platform/database"
)

// InitializeDatabase migrates the mode table and seeds the stock modes.
func InitializeDatabase() error {
	if err := database.DB.AutoMigrate(&ModeConfig{}); err != nil {
		return fmt.Errorf("unable to migrate mode_configs: %w", err)
	}
	if err := SeedDefaults(); err != nil {
		return fmt.Errorf("unable to seed default modes: %w", err)
	}
	return nil
}
