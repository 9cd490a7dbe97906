package leaderboard

import "time"

// Period identifies the aggregation window of a leaderboard scope.
type Period string

const (
	PeriodDaily   Period = "DAILY"
	PeriodWeekly  Period = "WEEKLY"
	PeriodAllTime Period = "ALL_TIME"
)

// Entry is one user's denormalized snapshot row within a scope. A scope is
// (period, periodKey, modeConfigID); periodKey is the day for DAILY, the
// Monday week-start for WEEKLY and empty for ALL_TIME. ModeConfigID zero
// means the scope spans all modes. Rows are only ever written by full
// scope replacement, never updated in place.
type Entry struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Period       Period    `gorm:"size:16;not null;uniqueIndex:idx_leaderboard_scope_user" json:"period"`
	PeriodKey    string    `gorm:"size:16;not null;uniqueIndex:idx_leaderboard_scope_user" json:"periodKey"`
	ModeConfigID uint      `gorm:"not null;default:0;uniqueIndex:idx_leaderboard_scope_user" json:"modeConfigId"`
	UserID       uint      `gorm:"not null;uniqueIndex:idx_leaderboard_scope_user" json:"userId"`
	Username     string    `gorm:"size:64;not null" json:"username"`
	AvatarURL    string    `gorm:"size:512" json:"avatarUrl"`
	Score        int       `gorm:"not null" json:"score"`
	GamesPlayed  int       `gorm:"not null" json:"gamesPlayed"`
	Rank         int       `gorm:"not null" json:"rank"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (Entry) TableName() string { return "leaderboard_entries" }
