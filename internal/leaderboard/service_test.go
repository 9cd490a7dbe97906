package leaderboard

import (
	"testing"
	"time"

	"github.com/charadle/charadle-backend/internal/platform/database"
	"github.com/charadle/charadle-backend/internal/play"
	"github.com/charadle/charadle-backend/internal/user"
	"github.com/charadle/charadle-backend/pkg/gameday"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedUser(t *testing.T, username string) *user.User {
	t.Helper()
	u := &user.User{
		Email:    username + "@example.com",
		Username: username,
		Password: "irrelevant",
		Role:     user.RoleUser,
	}
	require.NoError(t, database.DB.Create(u).Error)
	return u
}

// seedCompletedPlay creates a finished play with the given number of equally
// spaced attempts.
func seedCompletedPlay(t *testing.T, userID uint, day time.Time, attempts int, spacing time.Duration) {
	t.Helper()

	start := day.Add(10 * time.Hour)
	end := start.Add(time.Duration(attempts-1) * spacing)
	p := &play.Play{
		UserID:        &userID,
		ModeConfigID:  1,
		CharacterID:   1,
		SelectionDate: day,
		Completed:     true,
		CompletedAt:   &end,
		AttemptsCount: attempts,
	}
	require.NoError(t, database.DB.Create(p).Error)

	for i := 0; i < attempts; i++ {
		a := &play.Attempt{
			PlayID:             p.ID,
			UserID:             &userID,
			ModeConfigID:       1,
			TargetCharacterID:  1,
			GuessedCharacterID: 1,
			Guess:              string(rune('a' + i)),
			IsCorrect:          i == attempts-1,
			Order:              i + 1,
			CreatedAt:          start.Add(time.Duration(i) * spacing),
		}
		require.NoError(t, database.DB.Create(a).Error)
	}
}

func TestRebuildRanksByDescendingScore(t *testing.T) {
	database.OpenTestDB(t, &user.User{}, &play.Play{}, &play.Attempt{}, &Entry{})

	day := gameday.Today()
	fast := seedUser(t, "fast")
	slow := seedUser(t, "slow")
	seedCompletedPlay(t, fast.ID, day, 1, time.Second)
	seedCompletedPlay(t, slow.ID, day, 5, time.Minute)

	key := DailyKey(day)
	require.NoError(t, Rebuild(PeriodDaily, key, 0))

	entries, err := GetScope(PeriodDaily, key, 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "fast", entries[0].Username)
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, "slow", entries[1].Username)
	assert.Equal(t, 2, entries[1].Rank)
	assert.Greater(t, entries[0].Score, entries[1].Score)
}

func TestRebuildFullyReplacesScope(t *testing.T) {
	database.OpenTestDB(t, &user.User{}, &play.Play{}, &play.Attempt{}, &Entry{})

	day := gameday.Today()
	u := seedUser(t, "solo")
	seedCompletedPlay(t, u.ID, day, 2, 10*time.Second)

	key := DailyKey(day)
	require.NoError(t, Rebuild(PeriodDaily, key, 0))
	require.NoError(t, Rebuild(PeriodDaily, key, 0))

	var count int64
	require.NoError(t, database.DB.Model(&Entry{}).Count(&count).Error)
	assert.Equal(t, int64(1), count, "rebuild must not leave stale rows behind")
}

func TestRebuildSkipsGuestAndUnfinishedPlays(t *testing.T) {
	database.OpenTestDB(t, &user.User{}, &play.Play{}, &play.Attempt{}, &Entry{})

	day := gameday.Today()
	u := seedUser(t, "player")
	seedCompletedPlay(t, u.ID, day, 1, time.Second)

	guestID := "guest-1"
	require.NoError(t, database.DB.Create(&play.Play{
		GuestID:       &guestID,
		ModeConfigID:  1,
		CharacterID:   1,
		SelectionDate: day,
		Completed:     true,
		AttemptsCount: 1,
	}).Error)
	require.NoError(t, database.DB.Create(&play.Play{
		UserID:        &u.ID,
		ModeConfigID:  2,
		CharacterID:   2,
		SelectionDate: day,
		Completed:     false,
	}).Error)

	key := DailyKey(day)
	require.NoError(t, Rebuild(PeriodDaily, key, 0))

	entries, err := GetScope(PeriodDaily, key, 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, u.ID, entries[0].UserID)
	assert.Equal(t, 1, entries[0].GamesPlayed)
}

func TestWeeklyScopeSpansTheWholeWeek(t *testing.T) {
	database.OpenTestDB(t, &user.User{}, &play.Play{}, &play.Attempt{}, &Entry{})

	weekStart := gameday.WeekStart(time.Now())
	u := seedUser(t, "weekly")
	seedCompletedPlay(t, u.ID, weekStart, 1, time.Second)
	seedCompletedPlay(t, u.ID, weekStart.AddDate(0, 0, 6), 1, time.Second)

	key := gameday.FormatDay(weekStart)
	require.NoError(t, Rebuild(PeriodWeekly, key, 0))

	entries, err := GetScope(PeriodWeekly, key, 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 2, entries[0].GamesPlayed)
}
