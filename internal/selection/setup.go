package selection

import (
	"fmt"

	"github.com/charadle/charadle-backend/internal/platform/database"
)

// InitializeDatabase migrates the daily-selection table.
func InitializeDatabase() error {
	if err := database.DB.AutoMigrate(&DailySelection{}); err != nil {
		return fmt.Errorf("unable to migrate daily_selections: %w", err)
	}
	return nil
}
