package leaderboard

import (
	"sort"
	"time"

	"github.com/charadle/charadle-backend/internal/platform/database"
	"github.com/charadle/charadle-backend/internal/play"
	"github.com/charadle/charadle-backend/internal/user"
	"github.com/charadle/charadle-backend/pkg/apperr"
	"github.com/charadle/charadle-backend/pkg/gameday"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// DailyKey returns the scope key for the day containing t.
func DailyKey(t time.Time) string { return gameday.FormatDay(gameday.Start(t)) }

// WeeklyKey returns the scope key for the Monday-start week containing t.
func WeeklyKey(t time.Time) string { return gameday.FormatDay(gameday.WeekStart(t)) }

// Rebuild recomputes one scope from completed plays and replaces its rows
// inside a transaction. Guest plays carry no account and are skipped.
func Rebuild(period Period, periodKey string, modeConfigID uint) error {
	query := database.DB.Model(&play.Play{}).
		Where("completed = ? AND user_id IS NOT NULL", true)
	if modeConfigID != 0 {
		query = query.Where("mode_config_id = ?", modeConfigID)
	}

	switch period {
	case PeriodDaily:
		day, err := gameday.ParseDay(periodKey)
		if err != nil {
			return apperr.BadRequest("invalid date, expected YYYY-MM-DD")
		}
		query = query.Where("selection_date = ?", day)
	case PeriodWeekly:
		weekStart, err := gameday.ParseDay(periodKey)
		if err != nil {
			return apperr.BadRequest("invalid week start, expected YYYY-MM-DD")
		}
		query = query.Where("selection_date >= ? AND selection_date < ?",
			weekStart, weekStart.AddDate(0, 0, 7))
	case PeriodAllTime:
		if periodKey != "" {
			return apperr.BadRequest("all-time scope takes no period key")
		}
	default:
		return apperr.BadRequest("unknown leaderboard period")
	}

	var plays []play.Play
	if err := query.Find(&plays).Error; err != nil {
		return err
	}

	type bucket struct {
		score int
		games int
	}
	buckets := make(map[uint]*bucket)
	for i := range plays {
		p := &plays[i]
		var attempts []play.Attempt
		err := database.DB.Where("play_id = ?", p.ID).
			Order("attempt_order asc").Find(&attempts).Error
		if err != nil {
			return err
		}
		times := make([]time.Time, len(attempts))
		for j := range attempts {
			times[j] = attempts[j].CreatedAt
		}
		b := buckets[*p.UserID]
		if b == nil {
			b = &bucket{}
			buckets[*p.UserID] = b
		}
		b.score += ComputeScore(times, p.CompletedAt)
		b.games++
	}

	userIDs := make([]uint, 0, len(buckets))
	for id := range buckets {
		userIDs = append(userIDs, id)
	}
	users := make(map[uint]user.User, len(userIDs))
	if len(userIDs) > 0 {
		var rows []user.User
		if err := database.DB.Where("id IN ?", userIDs).Find(&rows).Error; err != nil {
			return err
		}
		for _, u := range rows {
			users[u.ID] = u
		}
	}

	entries := make([]Entry, 0, len(buckets))
	for id, b := range buckets {
		u, ok := users[id]
		if !ok {
			// account deleted after playing; nothing to rank
			continue
		}
		entries = append(entries, Entry{
			Period:       period,
			PeriodKey:    periodKey,
			ModeConfigID: modeConfigID,
			UserID:       id,
			Username:     u.Username,
			AvatarURL:    u.AvatarIconURL,
			Score:        b.score,
			GamesPlayed:  b.games,
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		if entries[i].GamesPlayed != entries[j].GamesPlayed {
			return entries[i].GamesPlayed < entries[j].GamesPlayed
		}
		return entries[i].UserID < entries[j].UserID
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("period = ? AND period_key = ? AND mode_config_id = ?",
			period, periodKey, modeConfigID).Delete(&Entry{}).Error
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			return nil
		}
		return tx.Create(&entries).Error
	})
	if err != nil {
		return err
	}

	log.Debug().Str("period", string(period)).Str("key", periodKey).
		Uint("mode", modeConfigID).Int("entries", len(entries)).
		Msg("leaderboard scope rebuilt")
	return nil
}

// GetScope serves a scope's snapshot rows, rebuilding lazily when the scope
// has never been materialized.
func GetScope(period Period, periodKey string, modeConfigID uint) ([]Entry, error) {
	entries, err := findScope(period, periodKey, modeConfigID)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		if err := Rebuild(period, periodKey, modeConfigID); err != nil {
			return nil, err
		}
		return findScope(period, periodKey, modeConfigID)
	}
	return entries, nil
}

func findScope(period Period, periodKey string, modeConfigID uint) ([]Entry, error) {
	var entries []Entry
	err := database.DB.
		Where("period = ? AND period_key = ? AND mode_config_id = ?",
			period, periodKey, modeConfigID).
		Order("rank asc").Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
