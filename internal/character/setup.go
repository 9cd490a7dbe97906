package character

import (
	"fmt"

	"github.com/charadle/charadle-backend/internal/platform/database"
)

// InitializeDatabase migrates the character tables.
func InitializeDatabase() error {
	if err := database.DB.AutoMigrate(&Character{}, &CharacterFranchise{}); err != nil {
		return fmt.Errorf("unable to migrate characters: %w", err)
	}
	return nil
}
