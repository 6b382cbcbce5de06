// Package calendar provides wall-clock calendar arithmetic shared by the
// snapshot and period packages.
//
// Date keys use the canonical yyyy-MM-dd form, matching the per-day keys in
// the stats cache. Weekdays use the 1..7 encoding with Sunday = 1, matching
// the encoding stored in user settings.
package calendar

import (
	"time"
)

// DateKeyLayout is the canonical layout for per-day date keys.
const DateKeyLayout = "2006-01-02"

// DateKey returns the canonical date key for t in t's location.
func DateKey(t time.Time) string {
	return t.Format(DateKeyLayout)
}

// ParseDateKey parses a canonical date key in the local time zone.
//
// Returns an error for keys that do not match the yyyy-MM-dd layout.
func ParseDateKey(key string) (time.Time, error) {
	return time.ParseInLocation(DateKeyLayout, key, time.Local)
}

// ParseDateKeyIn parses a canonical date key in the given location.
func ParseDateKeyIn(key string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	return time.ParseInLocation(DateKeyLayout, key, loc)
}

// StartOfDay returns midnight of t's calendar day in t's location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Weekday returns t's day of week in the 1..7 encoding (1 = Sunday).
func Weekday(t time.Time) int {
	return int(t.Weekday()) + 1
}

// ParseTimestamp parses an ISO-8601 timestamp with optional fractional
// seconds, as written by the stats cache for session timestamps.
func ParseTimestamp(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}
