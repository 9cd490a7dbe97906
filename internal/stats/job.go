package stats

import (
	"time"

	"github.com/charadle/charadle-backend/pkg/lifecycle"
	"github.com/rs/zerolog/log"
)

// StartSyncJob recomputes the current day's rollups on a fixed interval.
// The previous day is re-synced as well so plays finishing right at the
// boundary still land in the correct day.
func StartSyncJob(handle *lifecycle.Handle, interval time.Duration) {
	defer handle.Close()

	syncNow()
	for {
		if err := handle.Sleep(interval); err != nil {
			log.Info().Msg("stats sync job stopping")
			return
		}
		syncNow()
	}
}

func syncNow() {
	now := time.Now()
	if err := SyncDay(now); err != nil {
		log.Error().Err(err).Msg("stats sync: current day failed")
	}
	if err := SyncDay(now.AddDate(0, 0, -1)); err != nil {
		log.Error().Err(err).Msg("stats sync: previous day failed")
	}
}
