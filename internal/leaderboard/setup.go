package leaderboard

import (
	"fmt"

	"github.com/charadle/charadle-backend/internal/platform/database"
)

// InitializeDatabase migrates the snapshot table.
func InitializeDatabase() error {
	if err := database.DB.AutoMigrate(&Entry{}); err != nil {
		return fmt.Errorf("unable to migrate leaderboard_entries: %w", err)
	}
	return nil
}
