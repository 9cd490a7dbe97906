package stats

import "time"

// DailyOverview is one game day's usage rollup, recomputed in place by the
// sync job rather than incremented.
type DailyOverview struct {
	ID  uint      `gorm:"primarykey" json:"id"`
	Day time.Time `gorm:"not null;uniqueIndex:idx_overview_day" json:"day"`

	TotalUsers       int64 `gorm:"not null;default:0" json:"totalUsers"`
	NewUsers         int64 `gorm:"not null;default:0" json:"newUsers"`
	PlaysStarted     int64 `gorm:"not null;default:0" json:"playsStarted"`
	PlaysCompleted   int64 `gorm:"not null;default:0" json:"playsCompleted"`
	PlaysUncompleted int64 `gorm:"not null;default:0" json:"playsUncompleted"`
	UniquePlayers    int64 `gorm:"not null;default:0" json:"uniquePlayers"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (DailyOverview) TableName() string { return "daily_overviews" }

// ModeDailyStats breaks the same day down per game mode.
type ModeDailyStats struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	Day          time.Time `gorm:"not null;uniqueIndex:idx_mode_stats_day_mode" json:"day"`
	ModeConfigID uint      `gorm:"not null;uniqueIndex:idx_mode_stats_day_mode" json:"modeConfigId"`

	PlaysStarted   int64   `gorm:"not null;default:0" json:"playsStarted"`
	PlaysCompleted int64   `gorm:"not null;default:0" json:"playsCompleted"`
	AvgAttempts    float64 `gorm:"not null;default:0" json:"avgAttempts"`
	UniquePlayers  int64   `gorm:"not null;default:0" json:"uniquePlayers"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (ModeDailyStats) TableName() string { return "mode_daily_stats" }
