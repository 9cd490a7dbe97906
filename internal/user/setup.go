package user

import (
	"fmt"

	"github.com/charadle/charadle-backend/internal/platform/config"
	"github.com/charadle/charadle-backend/internal/platform/database"
)

// InitializeDatabase migrates the user table and seeds the admin account.
func InitializeDatabase() error {
	if err := database.DB.AutoMigrate(&User{}); err != nil {
		return fmt.Errorf("unable to migrate users: %w", err)
	}
	admin := config.Cfg.Admin
	if err := SeedAdmin(admin.Email, admin.Password); err != nil {
		return err
	}
	return nil
}
