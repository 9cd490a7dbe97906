// Package gameday anchors all "game day" computations to a single fixed
// timezone, so that a play started at 23:50 server-local time still lands on
// the correct calendar day for the service.
package gameday

import (
	"fmt"
	"time"
)

// DefaultTimezone is the service's canonical timezone.
const DefaultTimezone = "America/Fortaleza"

var location *time.Location

func init() {
	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		// Fall back to a fixed -03:00 offset; Fortaleza does not observe DST.
		loc = time.FixedZone("-03", -3*60*60)
	}
	location = loc
}

// Configure replaces the anchor timezone. Called once at startup from config;
// tests use it to pin a deterministic zone.
func Configure(tz string) error {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return fmt.Errorf("invalid game timezone %q: %w", tz, err)
	}
	location = loc
	return nil
}

// Location returns the configured anchor timezone.
func Location() *time.Location {
	return location
}

// Start truncates t to the start of its calendar day in the anchor timezone.
func Start(t time.Time) time.Time {
	local := t.In(location)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, location)
}

// Today returns the start of the current game day.
func Today() time.Time {
	return Start(time.Now())
}

// Next returns the start of the day after the one containing t.
func Next(t time.Time) time.Time {
	return Start(t).AddDate(0, 0, 1)
}

// WeekStart returns the start of the Monday-based week containing t.
func WeekStart(t time.Time) time.Time {
	day := Start(t)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// ParseDay interprets a "YYYY-MM-DD" string as a day start in the anchor
// timezone, independent of the server's local zone.
func ParseDay(s string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", s, location)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD: %w", s, err)
	}
	return t, nil
}

// FormatDay renders a day start as "YYYY-MM-DD" in the anchor timezone.
func FormatDay(t time.Time) string {
	return t.In(location).Format("2006-01-02")
}
