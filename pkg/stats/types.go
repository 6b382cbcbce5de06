// Package stats models and loads the Claude Code stats cache, the append-only
// activity summary written to ~/.claude/stats-cache.json by an external
// producer. The file format is owned by that producer; this package only
// reads it.
//
// Loading distinguishes a missing file from a malformed one so callers can
// surface the two states differently.
//
// Example usage:
//
//	l := stats.NewLoader(stats.DefaultPath(), log)
//	cache, err := l.Load()
//	if errors.Is(err, stats.ErrStatsNotFound) {
//	    // show "no data yet" instead of a parse failure
//	}
package stats

import (
	"strconv"
	"time"

	"github.com/ferrovax/claude-compass/pkg/calendar"
)

// StatsCache is the root structure of the stats cache document.
//
// Invariant: DailyActivity date keys are unique and use the yyyy-MM-dd form.
// Invariant: HourCounts keys are integers in [0,23].
// Invariant: All counts are non-negative.
//
// Days with no activity may be absent entirely; consumers must not assume
// contiguous date coverage.
type StatsCache struct {
	Version          int                        `json:"version"`
	LastComputedDate string                     `json:"lastComputedDate"`
	DailyActivity    []DailyActivity            `json:"dailyActivity"`
	DailyModelTokens []DailyModelTokens         `json:"dailyModelTokens"`
	ModelUsage       map[string]ModelUsageStats `json:"modelUsage"`
	TotalSessions    int                        `json:"totalSessions"`
	TotalMessages    int                        `json:"totalMessages"`
	LongestSession   *LongestSession            `json:"longestSession,omitempty"`
	FirstSessionDate *string                    `json:"firstSessionDate,omitempty"`
	HourCounts       map[string]int             `json:"hourCounts"`
}

// DailyActivity is one day's message, session and tool-call counts.
type DailyActivity struct {
	Date          string `json:"date"`
	MessageCount  int    `json:"messageCount"`
	SessionCount  int    `json:"sessionCount"`
	ToolCallCount int    `json:"toolCallCount"`
}

// ParsedDate parses the entry's date key in the given location.
func (d DailyActivity) ParsedDate(loc *time.Location) (time.Time, error) {
	return calendar.ParseDateKeyIn(d.Date, loc)
}

// DailyModelTokens is one day's token counts broken down by model.
type DailyModelTokens struct {
	Date          string         `json:"date"`
	TokensByModel map[string]int `json:"tokensByModel"`
}

// TotalTokens returns the day's token count summed across models.
func (d DailyModelTokens) TotalTokens() int {
	total := 0
	for _, n := range d.TokensByModel {
		total += n
	}
	return total
}

// ModelUsageStats is one model's cumulative usage across all recorded days.
type ModelUsageStats struct {
	InputTokens              int     `json:"inputTokens"`
	OutputTokens             int     `json:"outputTokens"`
	CacheReadInputTokens     int     `json:"cacheReadInputTokens"`
	CacheCreationInputTokens int     `json:"cacheCreationInputTokens"`
	WebSearchRequests        int     `json:"webSearchRequests"`
	CostUSD                  float64 `json:"costUSD"`
	ContextWindow            int     `json:"contextWindow"`
	MaxOutputTokens          int     `json:"maxOutputTokens"`
}

// TotalTokens returns the sum of all four token categories.
func (m ModelUsageStats) TotalTokens() int {
	return m.InputTokens + m.OutputTokens +
		m.CacheReadInputTokens + m.CacheCreationInputTokens
}

// LongestSession describes the longest recorded session.
type LongestSession struct {
	SessionID    string `json:"sessionId"`
	Duration     int    `json:"duration"` // milliseconds
	MessageCount int    `json:"messageCount"`
	Timestamp    string `json:"timestamp"`
}

// DurationSeconds returns the session duration in seconds.
func (l LongestSession) DurationSeconds() float64 {
	return float64(l.Duration) / 1000.0
}

// Validate checks that the cache satisfies its invariants.
//
// Returns an error if:
//   - Any count is negative
//   - Any daily entry has a date key that is not yyyy-MM-dd
//   - Any hour-count key is not an integer in [0,23]
func (c *StatsCache) Validate() error {
	if c.TotalSessions < 0 || c.TotalMessages < 0 {
		return ErrNegativeCount
	}

	for _, day := range c.DailyActivity {
		if _, err := calendar.ParseDateKey(day.Date); err != nil {
			return ErrInvalidDateKey
		}
		if day.MessageCount < 0 || day.SessionCount < 0 || day.ToolCallCount < 0 {
			return ErrNegativeCount
		}
	}

	for _, day := range c.DailyModelTokens {
		if _, err := calendar.ParseDateKey(day.Date); err != nil {
			return ErrInvalidDateKey
		}
		for _, tokens := range day.TokensByModel {
			if tokens < 0 {
				return ErrNegativeCount
			}
		}
	}

	for _, usage := range c.ModelUsage {
		if usage.InputTokens < 0 || usage.OutputTokens < 0 ||
			usage.CacheReadInputTokens < 0 || usage.CacheCreationInputTokens < 0 {
			return ErrNegativeCount
		}
	}

	for key, count := range c.HourCounts {
		hour, err := strconv.Atoi(key)
		if err != nil || hour < 0 || hour > 23 {
			return ErrInvalidHourKey
		}
		if count < 0 {
			return ErrNegativeCount
		}
	}

	if c.LongestSession != nil && c.LongestSession.Duration < 0 {
		return ErrNegativeCount
	}

	return nil
}
