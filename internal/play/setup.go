package play

import (
	"fmt"

	"github.com/charadle/charadle-backend/internal/platform/database"
)

// InitializeDatabase migrates the play and attempt tables.
func InitializeDatabase() error {
	if err := database.DB.AutoMigrate(&Play{}, &Attempt{}); err != nil {
		return fmt.Errorf("unable to migrate plays: %w", err)
	}
	return nil
}
