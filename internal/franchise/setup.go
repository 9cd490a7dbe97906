package franchise

import (
	"fmt"

	"github.com/charadle/charadle-backend/internal/platform/database"
)

// InitializeDatabase migrates the franchise table.
func InitializeDatabase() error {
	if err := database.DB.AutoMigrate(&Franchise{}); err != nil {
		return fmt.Errorf("unable to migrate franchises: %w", err)
	}
	return nil
}
