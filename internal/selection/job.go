package selection

import (
	"time"

	"github.com/charadle/charadle-backend/pkg/gameday"
	"github.com/charadle/charadle-backend/pkg/lifecycle"
	"github.com/rs/zerolog/log"
)

// StartDailyDrawJob runs the draw once immediately (covering restarts after
// midnight) and then once per game day at drawHour. Store failures abort the
// current run only; the next tick is the retry boundary.
func StartDailyDrawJob(handle *lifecycle.Handle, drawHour int) {
	defer handle.Close()

	if err := RunDailyDraw(time.Now()); err != nil {
		log.Error().Err(err).Msg("daily draw: startup run failed")
	}

	for {
		if err := handle.Sleep(untilNextDraw(drawHour)); err != nil {
			log.Info().Msg("daily draw job stopping")
			return
		}
		if err := RunDailyDraw(time.Now()); err != nil {
			log.Error().Err(err).Msg("daily draw: scheduled run failed")
		}
	}
}

// untilNextDraw computes the wait until the next drawHour in the game
// timezone, always at least a minute to avoid double fires around the
// boundary.
func untilNextDraw(drawHour int) time.Duration {
	now := time.Now().In(gameday.Location())
	next := gameday.Start(now).Add(time.Duration(drawHour) * time.Hour)
	for !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	wait := time.Until(next)
	if wait < time.Minute {
		wait = time.Minute
	}
	return wait
}
