package database

import (
	"fmt"

	"github.com/charadle/charadle-backend/internal/platform/config"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB is the shared gorm handle. It is set once during startup and swapped by
// the test helpers for in-memory databases.
var DB *gorm.DB

// InitDB opens the relational store selected by configuration.
func InitDB() {
	cfg := config.Cfg.Database

	gormCfg := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		// Unique-constraint violations surface as gorm.ErrDuplicatedKey so
		// services can translate them into friendly conflict responses.
		TranslateError: true,
	}

	var err error
	switch cfg.Driver {
	case "postgres":
		DB, err = gorm.Open(postgres.Open(cfg.Postgres.DSN), gormCfg)
	case "sqlite", "":
		DB, err = gorm.Open(sqlite.Open(cfg.Sqlite.Path), gormCfg)
	default:
		panic(fmt.Sprintf("unsupported database driver %q", cfg.Driver))
	}
	if err != nil {
		log.Error().Err(err).Str("driver", cfg.Driver).Msg("failed to connect to database")
		panic(err)
	}

	log.Info().Str("driver", cfg.Driver).Msg("database connected")
}
