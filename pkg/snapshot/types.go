// Package snapshot derives a point-in-time usage snapshot from the raw stats
// cache. Building is a pure function of (cache, config, now): no I/O, no
// hidden state, safe to run concurrently from independent refresh cycles.
//
// Example usage:
//
//	snap := snapshot.Build(cache, snapshot.Config{
//	    ResetWeekday: 6, // Friday
//	    ResetHour:    19,
//	}, time.Now())
//	fmt.Printf("weekly pacing: %.0f%%\n", snap.WeeklyPacingPercent)
package snapshot

import (
	"fmt"
	"time"

	"github.com/ferrovax/claude-compass/pkg/stats"
)

// Config holds the user-tunable parameters of a build.
//
// ResetWeekday uses the 1..7 encoding (1 = Sunday); ResetHour is 0..23.
// Callers clamp out-of-range values before invoking Build.
type Config struct {
	ResetWeekday int
	ResetHour    int

	// WeeklyBudget is the configured weekly message allowance.
	// 0 means auto-estimate from recorded history.
	WeeklyBudget int
}

// Snapshot is the immutable result of one build. It is rebuilt from scratch
// on every refresh and superseded entirely by the next build.
type Snapshot struct {
	LastUpdated time.Time `json:"lastUpdated"`

	// Today's entries; nil when the cache has no entry for today.
	TodayActivity *stats.DailyActivity    `json:"todayActivity,omitempty"`
	TodayTokens   *stats.DailyModelTokens `json:"todayTokens,omitempty"`

	// Last 7 calendar days, oldest first. Days without activity are absent.
	WeeklyActivity []stats.DailyActivity    `json:"weeklyActivity"`
	WeeklyTokens   []stats.DailyModelTokens `json:"weeklyTokens"`

	// Per-model shares, ranked by total tokens descending.
	ModelBreakdown      []ModelBreakdownItem `json:"modelBreakdown"`
	TodayModelBreakdown []ModelBreakdownItem `json:"todayModelBreakdown"`

	// Fixed 24-slot histogram of activity by hour of day.
	HourlyDistribution []HourlyBucket `json:"hourlyDistribution"`

	// Pacing metrics, each clamped to [0,100].
	PacingPercent       float64 `json:"pacingPercent"`
	WeeklyPacingPercent float64 `json:"weeklyPacingPercent"`
	WeeklyTimePercent   float64 `json:"weeklyTimePercent"`

	TotalMessages int `json:"totalMessages"`
	TotalSessions int `json:"totalSessions"`

	// LongestSessionSeconds is nil when the cache records no longest session.
	LongestSessionSeconds *float64 `json:"longestSessionSeconds,omitempty"`

	DaysSinceFirstSession int `json:"daysSinceFirstSession"`
}

// ModelBreakdownItem is one model's share of a token total within a
// breakdown set (all-time or today).
//
// Invariant: Fraction is in [0,1]; fractions within one set sum to 1 unless
// the set's total is zero, in which case they are all 0.
type ModelBreakdownItem struct {
	ID           string  `json:"id"`
	FriendlyName string  `json:"friendlyName"`
	TotalTokens  int     `json:"totalTokens"`
	InputTokens  int     `json:"inputTokens"`
	OutputTokens int     `json:"outputTokens"`
	CacheTokens  int     `json:"cacheTokens"`
	Fraction     float64 `json:"fraction"`
}

// HourlyBucket is one slot of the hourly distribution.
type HourlyBucket struct {
	Hour  int `json:"hour"` // 0..23
	Count int `json:"count"`
}

// Label returns the bucket's display label, e.g. "12a", "3p".
func (b HourlyBucket) Label() string {
	h := b.Hour % 12
	if h == 0 {
		h = 12
	}
	ampm := "a"
	if b.Hour >= 12 {
		ampm = "p"
	}
	return fmt.Sprintf("%d%s", h, ampm)
}

// Empty returns a zero-valued snapshot stamped at now.
func Empty(now time.Time) Snapshot {
	return Snapshot{
		LastUpdated:        now,
		HourlyDistribution: emptyHourly(),
	}
}

func emptyHourly() []HourlyBucket {
	buckets := make([]HourlyBucket, 24)
	for h := range buckets {
		buckets[h] = HourlyBucket{Hour: h}
	}
	return buckets
}
