package gameday

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartAnchorsToConfiguredZone(t *testing.T) {
	require.NoError(t, Configure(DefaultTimezone))

	// 01:30 UTC is still 22:30 of the previous day in Fortaleza (-03:00).
	utc := time.Date(2026, 8, 29, 1, 30, 0, 0, time.UTC)
	day := Start(utc)

	assert.Equal(t, 28, day.Day())
	assert.Equal(t, time.August, day.Month())
	assert.Equal(t, 0, day.Hour())
	assert.Equal(t, "2026-08-28", FormatDay(day))
}

func TestNextIsFollowingMidnight(t *testing.T) {
	require.NoError(t, Configure(DefaultTimezone))

	day, err := ParseDay("2026-02-28")
	require.NoError(t, err)
	assert.Equal(t, "2026-03-01", FormatDay(Next(day)))
}

func TestWeekStartIsMonday(t *testing.T) {
	require.NoError(t, Configure(DefaultTimezone))

	cases := map[string]string{
		"2026-08-24": "2026-08-24", // Monday maps to itself
		"2026-08-26": "2026-08-24", // Wednesday
		"2026-08-30": "2026-08-24", // Sunday belongs to the preceding Monday
		"2026-08-31": "2026-08-31", // next Monday starts a new week
	}
	for input, want := range cases {
		day, err := ParseDay(input)
		require.NoError(t, err)
		assert.Equal(t, want, FormatDay(WeekStart(day)), "week start of %s", input)
	}
}

func TestParseDayRejectsGarbage(t *testing.T) {
	_, err := ParseDay("29/08/2026")
	assert.Error(t, err)

	_, err = ParseDay("")
	assert.Error(t, err)
}

func TestParseDayRoundTrips(t *testing.T) {
	require.NoError(t, Configure(DefaultTimezone))

	day, err := ParseDay("2026-01-15")
	require.NoError(t, err)
	assert.Equal(t, "2026-01-15", FormatDay(day))
	assert.True(t, day.Equal(Start(day)))
}
