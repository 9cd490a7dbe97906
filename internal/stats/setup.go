package stats

import (
	"fmt"

	"github.com/charadle/charadle-backend/internal/platform/database"
)

// InitializeDatabase migrates the rollup tables.
func InitializeDatabase() error {
	if err := database.DB.AutoMigrate(&DailyOverview{}, &ModeDailyStats{}); err != nil {
		return fmt.Errorf("unable to migrate stats tables: %w", err)
	}
	return nil
}
