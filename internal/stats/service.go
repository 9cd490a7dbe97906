package stats

import (
	"time"

	"github.com/charadle/charadle-backend/internal/gamemode"
	"github.com/charadle/charadle-backend/internal/platform/database"
	"github.com/charadle/charadle-backend/internal/play"
	"github.com/charadle/charadle-backend/internal/user"
	"github.com/charadle/charadle-backend/pkg/apperr"
	"github.com/charadle/charadle-backend/pkg/gameday"
	"gorm.io/gorm"
)

// SyncDay recomputes the overview row and per-mode rows for the game day
// containing t, replacing any previous rollup for that day.
func SyncDay(t time.Time) error {
	day := gameday.Start(t)
	nextDay := gameday.Next(day)

	overview := DailyOverview{Day: day}

	err := database.DB.Model(&user.User{}).
		Where("created_at < ?", nextDay).Count(&overview.TotalUsers).Error
	if err != nil {
		return err
	}
	err = database.DB.Model(&user.User{}).
		Where("created_at >= ? AND created_at < ?", day, nextDay).
		Count(&overview.NewUsers).Error
	if err != nil {
		return err
	}

	dayPlays := func() *gorm.DB {
		return database.DB.Model(&play.Play{}).Where("selection_date = ?", day)
	}
	if err := dayPlays().Count(&overview.PlaysStarted).Error; err != nil {
		return err
	}
	err = dayPlays().Where("completed = ?", true).Count(&overview.PlaysCompleted).Error
	if err != nil {
		return err
	}
	overview.PlaysUncompleted = overview.PlaysStarted - overview.PlaysCompleted

	overview.UniquePlayers, err = countUniquePlayers(day, 0)
	if err != nil {
		return err
	}

	if err := upsertOverview(&overview); err != nil {
		return err
	}

	modes, err := gamemode.FindAll()
	if err != nil {
		return err
	}
	for _, mode := range modes {
		row := ModeDailyStats{Day: day, ModeConfigID: mode.ID}

		modePlays := func() *gorm.DB {
			return dayPlays().Where("mode_config_id = ?", mode.ID)
		}
		if err := modePlays().Count(&row.PlaysStarted).Error; err != nil {
			return err
		}
		err = modePlays().Where("completed = ?", true).Count(&row.PlaysCompleted).Error
		if err != nil {
			return err
		}
		if row.PlaysCompleted > 0 {
			var avg *float64
			err = modePlays().Where("completed = ?", true).
				Select("AVG(attempts_count)").Scan(&avg).Error
			if err != nil {
				return err
			}
			if avg != nil {
				row.AvgAttempts = *avg
			}
		}
		row.UniquePlayers, err = countUniquePlayers(day, mode.ID)
		if err != nil {
			return err
		}

		if err := upsertModeStats(&row); err != nil {
			return err
		}
	}
	return nil
}

// countUniquePlayers counts distinct owners of the day's plays; a mode of
// zero spans all modes. Users and guests are disjoint owner spaces, so the
// two distinct counts add up.
func countUniquePlayers(day time.Time, modeConfigID uint) (int64, error) {
	base := func() *gorm.DB {
		q := database.DB.Model(&play.Play{}).Where("selection_date = ?", day)
		if modeConfigID != 0 {
			q = q.Where("mode_config_id = ?", modeConfigID)
		}
		return q
	}

	var users, guests int64
	err := base().Where("user_id IS NOT NULL").
		Distinct("user_id").Count(&users).Error
	if err != nil {
		return 0, err
	}
	err = base().Where("guest_id IS NOT NULL").
		Distinct("guest_id").Count(&guests).Error
	if err != nil {
		return 0, err
	}
	return users + guests, nil
}

func upsertOverview(overview *DailyOverview) error {
	var existing DailyOverview
	err := database.DB.Where("day = ?", overview.Day).First(&existing).Error
	if err == nil {
		overview.ID = existing.ID
		overview.CreatedAt = existing.CreatedAt
		return database.DB.Save(overview).Error
	}
	return database.DB.Create(overview).Error
}

func upsertModeStats(row *ModeDailyStats) error {
	var existing ModeDailyStats
	err := database.DB.
		Where("day = ? AND mode_config_id = ?", row.Day, row.ModeConfigID).
		First(&existing).Error
	if err == nil {
		row.ID = existing.ID
		row.CreatedAt = existing.CreatedAt
		return database.DB.Save(row).Error
	}
	return database.DB.Create(row).Error
}

// OverviewRange returns the stored rollups between two days inclusive,
// oldest first.
func OverviewRange(from, to time.Time) ([]DailyOverview, error) {
	if to.Before(from) {
		return nil, apperr.BadRequest("'to' precedes 'from'")
	}
	var rows []DailyOverview
	err := database.DB.
		Where("day >= ? AND day <= ?", gameday.Start(from), gameday.Start(to)).
		Order("day asc").Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ModeStatsForDay returns the per-mode rollups of one game day.
func ModeStatsForDay(t time.Time) ([]ModeDailyStats, error) {
	var rows []ModeDailyStats
	err := database.DB.Where("day = ?", gameday.Start(t)).
		Order("mode_config_id asc").Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
