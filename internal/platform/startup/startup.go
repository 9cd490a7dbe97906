package startup

import (
	"github.com/charadle/charadle-backend/internal/accesslog"
	"github.com/charadle/charadle-backend/internal/character"
	"github.com/charadle/charadle-backend/internal/franchise"
	"github.com/charadle/charadle-backend/internal/gamemode"
	"github.com/charadle/charadle-backend/internal/leaderboard"
	"github.com/charadle/charadle-backend/internal/play"
	"github.com/charadle/charadle-backend/internal/selection"
	"github.com/charadle/charadle-backend/internal/stats"
	"github.com/charadle/charadle-backend/internal/user"
	"github.com/rs/zerolog/log"
)

// InitializeApplication migrates and seeds every module, in dependency
// order: catalog tables first, then the tables referencing them.
func InitializeApplication() error {
	log.Info().Msg("initializing application modules")

	steps := []func() error{
		user.InitializeDatabase,
		franchise.InitializeDatabase,
		character.InitializeDatabase,
		gamemode.InitializeDatabase,
		selection.InitializeDatabase,
		play.InitializeDatabase,
		leaderboard.InitializeDatabase,
		stats.InitializeDatabase,
		accesslog.InitializeDatabase,
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}

	log.Info().Msg("application modules initialized")
	return nil
}
