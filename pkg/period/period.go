// Package period computes weekly billing-period boundaries.
//
// A billing period is the 7-day window starting at the most recent reset
// boundary: a configured weekday and hour at which the subscription's weekly
// allowance rolls over.
package period

import (
	"time"

	"github.com/ferrovax/claude-compass/pkg/calendar"
)

// Length is the duration of one billing period.
const Length = 7 * 24 * time.Hour

// LastReset returns the most recent reset boundary at or before now.
//
// Parameters:
//   - now: Reference instant; calendar math happens in now's location
//   - resetWeekday: Day of week of the reset in the 1..7 encoding (1 = Sunday)
//   - resetHour: Hour of day of the reset (0..23)
//
// The result is the start of the reset day with the time of day set to
// resetHour:00:00. It is always <= now and within the last 8 days.
//
// Boundary rule: on the reset day itself, any time before resetHour counts as
// "not yet reset" and rolls back a full week. Exactly resetHour with zero
// minutes also rolls back; from resetHour:01 onward the reset has happened.
func LastReset(now time.Time, resetWeekday, resetHour int) time.Time {
	daysDiff := calendar.Weekday(now) - resetWeekday
	if daysDiff < 0 {
		daysDiff += 7
	}

	if daysDiff == 0 && (now.Hour() < resetHour || (now.Hour() == resetHour && now.Minute() == 0)) {
		daysDiff = 7
	}

	day := calendar.StartOfDay(now.AddDate(0, 0, -daysDiff))
	return time.Date(day.Year(), day.Month(), day.Day(), resetHour, 0, 0, 0, day.Location())
}

// Elapsed returns the fraction of the billing period elapsed at now,
// expressed as a percentage clamped to [0,100].
func Elapsed(now, lastReset time.Time) float64 {
	pct := float64(now.Sub(lastReset)) / float64(Length) * 100
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}
