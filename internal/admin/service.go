package admin

import (
	"time"

	"github.com/charadle/charadle-backend/internal/accesslog"
	"github.com/charadle/charadle-backend/internal/character"
	"github.com/charadle/charadle-backend/internal/franchise"
	"github.com/charadle/charadle-backend/internal/gamemode"
	"github.com/charadle/charadle-backend/internal/platform/database"
	"github.com/charadle/charadle-backend/internal/play"
	"github.com/charadle/charadle-backend/internal/user"
	"github.com/charadle/charadle-backend/pkg/gameday"
	"gorm.io/gorm"
)

const topGuessedLimit = 5

// Totals are the catalog-wide and day-scoped headline counters.
type Totals struct {
	Users          int64 `json:"users"`
	Characters     int64 `json:"characters"`
	Franchises     int64 `json:"franchises"`
	PlaysToday     int64 `json:"playsToday"`
	CompletedToday int64 `json:"completedToday"`
}

// HourlyBucket holds one four-hour slice of the day's activity.
type HourlyBucket struct {
	HourStart int   `json:"hourStart"`
	Requests  int64 `json:"requests"`
	Attempts  int64 `json:"attempts"`
}

// GuessCount is one character's guess tally within a mode.
type GuessCount struct {
	CharacterID uint   `json:"characterId"`
	Name        string `json:"name"`
	Count       int64  `json:"count"`
}

// ModeKPI is one mode's usage for the day.
type ModeKPI struct {
	ModeConfigID   uint         `json:"modeConfigId"`
	Name           string       `json:"name"`
	PlaysStarted   int64        `json:"playsStarted"`
	PlaysCompleted int64        `json:"playsCompleted"`
	HitRate        float64      `json:"hitRate"`
	TopGuessed     []GuessCount `json:"topGuessed"`
}

// KPIReport is the admin dashboard payload for one game day.
type KPIReport struct {
	Day               string         `json:"day"`
	Totals            Totals         `json:"totals"`
	ActiveUsersToday  int64          `json:"activeUsersToday"`
	ActiveGuestsToday int64          `json:"activeGuestsToday"`
	HourlyActivity    []HourlyBucket `json:"hourlyActivity"`
	Modes             []ModeKPI      `json:"modes"`
}

// BuildKPIs aggregates the dashboard report for the game day containing t.
// Everything is computed live; nothing is cached.
func BuildKPIs(t time.Time) (*KPIReport, error) {
	day := gameday.Start(t)
	nextDay := gameday.Next(day)
	report := &KPIReport{Day: gameday.FormatDay(day)}

	counts := []struct {
		model any
		dst   *int64
	}{
		{&user.User{}, &report.Totals.Users},
		{&character.Character{}, &report.Totals.Characters},
		{&franchise.Franchise{}, &report.Totals.Franchises},
	}
	for _, c := range counts {
		if err := database.DB.Model(c.model).Count(c.dst).Error; err != nil {
			return nil, err
		}
	}

	dayPlays := func() *gorm.DB {
		return database.DB.Model(&play.Play{}).Where("selection_date = ?", day)
	}
	if err := dayPlays().Count(&report.Totals.PlaysToday).Error; err != nil {
		return nil, err
	}
	err := dayPlays().Where("completed = ?", true).
		Count(&report.Totals.CompletedToday).Error
	if err != nil {
		return nil, err
	}
	err = dayPlays().Where("user_id IS NOT NULL").
		Distinct("user_id").Count(&report.ActiveUsersToday).Error
	if err != nil {
		return nil, err
	}
	err = dayPlays().Where("guest_id IS NOT NULL").
		Distinct("guest_id").Count(&report.ActiveGuestsToday).Error
	if err != nil {
		return nil, err
	}

	report.HourlyActivity, err = hourlyActivity(day, nextDay)
	if err != nil {
		return nil, err
	}

	modes, err := gamemode.FindAll()
	if err != nil {
		return nil, err
	}
	for _, mode := range modes {
		kpi, err := modeKPI(mode, day)
		if err != nil {
			return nil, err
		}
		report.Modes = append(report.Modes, *kpi)
	}
	return report, nil
}

// hourlyActivity splits the day into four-hour buckets of API requests and
// guess attempts.
func hourlyActivity(day, nextDay time.Time) ([]HourlyBucket, error) {
	buckets := make([]HourlyBucket, 0, 6)
	for hour := 0; hour < 24; hour += 4 {
		from := day.Add(time.Duration(hour) * time.Hour)
		to := from.Add(4 * time.Hour)
		if to.After(nextDay) {
			to = nextDay
		}
		bucket := HourlyBucket{HourStart: hour}

		err := database.DB.Model(&accesslog.AccessLog{}).
			Where("created_at >= ? AND created_at < ?", from, to).
			Count(&bucket.Requests).Error
		if err != nil {
			return nil, err
		}
		err = database.DB.Model(&play.Attempt{}).
			Where("created_at >= ? AND created_at < ?", from, to).
			Count(&bucket.Attempts).Error
		if err != nil {
			return nil, err
		}
		buckets = append(buckets, bucket)
	}
	return buckets, nil
}

func modeKPI(mode gamemode.ModeConfig, day time.Time) (*ModeKPI, error) {
	kpi := &ModeKPI{ModeConfigID: mode.ID, Name: mode.Name}

	modePlays := func() *gorm.DB {
		return database.DB.Model(&play.Play{}).
			Where("selection_date = ? AND mode_config_id = ?", day, mode.ID)
	}
	if err := modePlays().Count(&kpi.PlaysStarted).Error; err != nil {
		return nil, err
	}
	err := modePlays().Where("completed = ?", true).Count(&kpi.PlaysCompleted).Error
	if err != nil {
		return nil, err
	}
	if kpi.PlaysStarted > 0 {
		kpi.HitRate = float64(kpi.PlaysCompleted) / float64(kpi.PlaysStarted)
	}

	var top []GuessCount
	err = database.DB.Model(&play.Attempt{}).
		Select("attempts.guessed_character_id AS character_id, characters.name AS name, COUNT(*) AS count").
		Joins("JOIN plays ON plays.id = attempts.play_id").
		Joins("JOIN characters ON characters.id = attempts.guessed_character_id").
		Where("plays.selection_date = ? AND attempts.mode_config_id = ?", day, mode.ID).
		Group("attempts.guessed_character_id, characters.name").
		Order("count DESC").
		Limit(topGuessedLimit).
		Scan(&top).Error
	if err != nil {
		return nil, err
	}
	kpi.TopGuessed = top
	return kpi, nil
}
