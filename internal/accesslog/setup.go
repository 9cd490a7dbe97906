package accesslog

import (
	"fmt"

	"github.com/charadle/charadle-backend/internal/platform/database"
)

// InitializeDatabase migrates the access log table.
func InitializeDatabase() error {
	if err := database.DB.AutoMigrate(&AccessLog{}); err != nil {
		return fmt.Errorf("unable to migrate access_logs: %w", err)
	}
	return nil
}
