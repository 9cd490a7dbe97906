package stats

import (
	"testing"
	"time"

	"github.com/charadle/charadle-backend/internal/character"
	"github.com/charadle/charadle-backend/internal/franchise"
	"github.com/charadle/charadle-backend/internal/gamemode"
	"github.com/charadle/charadle-backend/internal/platform/database"
	"github.com/charadle/charadle-backend/internal/play"
	"github.com/charadle/charadle-backend/internal/user"
	"github.com/charadle/charadle-backend/pkg/gameday"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupStatsTest(t *testing.T) *gamemode.ModeConfig {
	t.Helper()
	database.OpenTestDB(t,
		&user.User{},
		&franchise.Franchise{},
		&character.Character{},
		&character.CharacterFranchise{},
		&gamemode.ModeConfig{},
		&play.Play{},
		&play.Attempt{},
		&DailyOverview{},
		&ModeDailyStats{},
	)
	mode := &gamemode.ModeConfig{Name: "Clássico", Kind: gamemode.KindClassic, IsActive: true}
	require.NoError(t, database.DB.Create(mode).Error)
	return mode
}

func TestSyncDayAggregatesPlays(t *testing.T) {
	mode := setupStatsTest(t)
	day := gameday.Today()

	userID := uint(1)
	require.NoError(t, database.DB.Create(&user.User{
		Email: "a@example.com", Username: "a", Password: "x",
	}).Error)

	end := day.Add(12 * time.Hour)
	require.NoError(t, database.DB.Create(&play.Play{
		UserID: &userID, ModeConfigID: mode.ID, CharacterID: 1,
		SelectionDate: day, Completed: true, CompletedAt: &end, AttemptsCount: 3,
	}).Error)
	guestID := "guest-1"
	require.NoError(t, database.DB.Create(&play.Play{
		GuestID: &guestID, ModeConfigID: mode.ID, CharacterID: 1,
		SelectionDate: day, Completed: false, AttemptsCount: 1,
	}).Error)

	require.NoError(t, SyncDay(day))

	rows, err := OverviewRange(day, day)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	overview := rows[0]
	assert.Equal(t, int64(1), overview.TotalUsers)
	assert.Equal(t, int64(2), overview.PlaysStarted)
	assert.Equal(t, int64(1), overview.PlaysCompleted)
	assert.Equal(t, int64(1), overview.PlaysUncompleted)
	assert.Equal(t, int64(2), overview.UniquePlayers)

	modeRows, err := ModeStatsForDay(day)
	require.NoError(t, err)
	require.Len(t, modeRows, 1)
	assert.Equal(t, mode.ID, modeRows[0].ModeConfigID)
	assert.Equal(t, int64(2), modeRows[0].PlaysStarted)
	assert.Equal(t, int64(1), modeRows[0].PlaysCompleted)
	assert.InDelta(t, 3.0, modeRows[0].AvgAttempts, 0.001)
}

func TestSyncDayUpsertsInPlace(t *testing.T) {
	setupStatsTest(t)
	day := gameday.Today()

	require.NoError(t, SyncDay(day))
	require.NoError(t, SyncDay(day))

	var count int64
	require.NoError(t, database.DB.Model(&DailyOverview{}).Count(&count).Error)
	assert.Equal(t, int64(1), count, "resync must update the existing row")
}

func TestOverviewRangeRejectsInvertedRange(t *testing.T) {
	setupStatsTest(t)
	day := gameday.Today()

	_, err := OverviewRange(day, day.AddDate(0, 0, -1))
	assert.Error(t, err)
}
