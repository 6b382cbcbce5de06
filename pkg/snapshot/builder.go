package snapshot

import (
	"sort"
	"strconv"
	"time"

	"github.com/ferrovax/claude-compass/pkg/calendar"
	"github.com/ferrovax/claude-compass/pkg/period"
	"github.com/ferrovax/claude-compass/pkg/stats"
)

// Build derives a snapshot from the stats cache.
//
// Parameters:
//   - cache: Parsed stats cache (read-only; never mutated)
//   - cfg: Reset schedule and weekly budget
//   - now: Reference instant; calendar math happens in now's location
//
// Build is deterministic: identical inputs and now produce identical output.
// It never fails on well-typed input; aggregations degrade to empty or zero.
func Build(cache *stats.StatsCache, cfg Config, now time.Time) Snapshot {
	snap := Empty(now)
	if cache == nil {
		return snap
	}

	todayKey := calendar.DateKey(now)

	// Today's entries.
	for i := range cache.DailyActivity {
		if cache.DailyActivity[i].Date == todayKey {
			day := cache.DailyActivity[i]
			snap.TodayActivity = &day
			break
		}
	}
	for i := range cache.DailyModelTokens {
		if cache.DailyModelTokens[i].Date == todayKey {
			day := cache.DailyModelTokens[i]
			snap.TodayTokens = &day
			break
		}
	}

	// Last 7 calendar days, oldest first. Entries whose date keys do not
	// parse are excluded silently.
	sevenDaysAgo := calendar.StartOfDay(now.AddDate(0, 0, -6))
	snap.WeeklyActivity = weeklyActivity(cache.DailyActivity, sevenDaysAgo, now.Location())
	snap.WeeklyTokens = weeklyTokens(cache.DailyModelTokens, sevenDaysAgo, now.Location())

	// Model breakdowns.
	snap.ModelBreakdown = allTimeBreakdown(cache.ModelUsage)
	snap.TodayModelBreakdown = todayBreakdown(snap.TodayTokens)

	// Hourly distribution: fixed 24 slots, absent hours default to 0.
	for h := range snap.HourlyDistribution {
		snap.HourlyDistribution[h].Count = cache.HourCounts[strconv.Itoa(h)]
	}

	// Daily pacing: today's messages relative to the historical daily
	// average, not a hard quota.
	avgDaily := averageDailyMessages(cache.DailyActivity)
	todayCount := 0.0
	if snap.TodayActivity != nil {
		todayCount = float64(snap.TodayActivity.MessageCount)
	}
	snap.PacingPercent = clampPercent(todayCount / max1(avgDaily) * 100)

	// Billing period: messages since the most recent reset boundary.
	lastReset := period.LastReset(now, cfg.ResetWeekday, cfg.ResetHour)
	resetKey := calendar.DateKey(lastReset)
	billingMessages := 0
	for _, day := range cache.DailyActivity {
		if day.Date >= resetKey {
			billingMessages += day.MessageCount
		}
	}

	capacity := weeklyCapacity(cache.DailyActivity, cfg.WeeklyBudget, avgDaily)
	snap.WeeklyPacingPercent = clampPercent(float64(billingMessages) / max1(capacity) * 100)
	snap.WeeklyTimePercent = period.Elapsed(now, lastReset)

	snap.TotalMessages = cache.TotalMessages
	snap.TotalSessions = cache.TotalSessions

	if cache.LongestSession != nil {
		seconds := cache.LongestSession.DurationSeconds()
		snap.LongestSessionSeconds = &seconds
	}

	snap.DaysSinceFirstSession = daysSinceFirstSession(cache.FirstSessionDate, now)

	return snap
}

// weeklyActivity filters and sorts daily activity to the 7-day window.
func weeklyActivity(days []stats.DailyActivity, cutoff time.Time, loc *time.Location) []stats.DailyActivity {
	window := make([]stats.DailyActivity, 0, 7)
	for _, day := range days {
		parsed, err := calendar.ParseDateKeyIn(day.Date, loc)
		if err != nil {
			continue
		}
		if !parsed.Before(cutoff) {
			window = append(window, day)
		}
	}
	sort.SliceStable(window, func(i, j int) bool {
		return window[i].Date < window[j].Date
	})
	return window
}

// weeklyTokens filters and sorts daily token entries to the 7-day window.
func weeklyTokens(days []stats.DailyModelTokens, cutoff time.Time, loc *time.Location) []stats.DailyModelTokens {
	window := make([]stats.DailyModelTokens, 0, 7)
	for _, day := range days {
		parsed, err := calendar.ParseDateKeyIn(day.Date, loc)
		if err != nil {
			continue
		}
		if !parsed.Before(cutoff) {
			window = append(window, day)
		}
	}
	sort.SliceStable(window, func(i, j int) bool {
		return window[i].Date < window[j].Date
	})
	return window
}

// allTimeBreakdown ranks models by cumulative token usage.
//
// Map iteration order is not defined, so models are first ordered by
// identifier to make ties deterministic, then stably sorted by total tokens
// descending.
func allTimeBreakdown(usage map[string]stats.ModelUsageStats) []ModelBreakdownItem {
	models := make([]string, 0, len(usage))
	totalAll := 0
	for model, u := range usage {
		models = append(models, model)
		totalAll += u.TotalTokens()
	}
	sort.Strings(models)

	items := make([]ModelBreakdownItem, 0, len(models))
	for _, model := range models {
		u := usage[model]
		total := u.TotalTokens()
		fraction := 0.0
		if totalAll > 0 {
			fraction = float64(total) / float64(totalAll)
		}
		items = append(items, ModelBreakdownItem{
			ID:           model,
			FriendlyName: FriendlyModelName(model),
			TotalTokens:  total,
			InputTokens:  u.InputTokens,
			OutputTokens: u.OutputTokens,
			CacheTokens:  u.CacheReadInputTokens + u.CacheCreationInputTokens,
			Fraction:     fraction,
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].TotalTokens > items[j].TotalTokens
	})
	return items
}

// todayBreakdown ranks models within today's token entry only. The result is
// empty when today has no entry or today's total is zero.
func todayBreakdown(today *stats.DailyModelTokens) []ModelBreakdownItem {
	if today == nil {
		return []ModelBreakdownItem{}
	}
	todayTotal := today.TotalTokens()
	if todayTotal <= 0 {
		return []ModelBreakdownItem{}
	}

	models := make([]string, 0, len(today.TokensByModel))
	for model := range today.TokensByModel {
		models = append(models, model)
	}
	sort.Strings(models)

	items := make([]ModelBreakdownItem, 0, len(models))
	for _, model := range models {
		tokens := today.TokensByModel[model]
		items = append(items, ModelBreakdownItem{
			ID:           model,
			FriendlyName: FriendlyModelName(model),
			TotalTokens:  tokens,
			Fraction:     float64(tokens) / float64(todayTotal),
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].TotalTokens > items[j].TotalTokens
	})
	return items
}

// averageDailyMessages returns total messages divided by recorded day count,
// or 1 when no days are recorded.
func averageDailyMessages(days []stats.DailyActivity) float64 {
	if len(days) == 0 {
		return 1
	}
	total := 0
	for _, day := range days {
		total += day.MessageCount
	}
	return float64(total) / float64(len(days))
}

// weeklyCapacity returns the configured weekly budget, or an auto-estimate
// of max(peak daily * 7, average daily * 14) when no budget is set.
func weeklyCapacity(days []stats.DailyActivity, budget int, avgDaily float64) float64 {
	if budget > 0 {
		return float64(budget)
	}
	peak := 1
	for _, day := range days {
		if day.MessageCount > peak {
			peak = day.MessageCount
		}
	}
	estimate := float64(peak) * 7
	if alt := avgDaily * 14; alt > estimate {
		estimate = alt
	}
	return estimate
}

// daysSinceFirstSession returns whole days between the first recorded session
// and now, floored at 0. Absent or unparseable timestamps count as now.
func daysSinceFirstSession(firstSessionDate *string, now time.Time) int {
	if firstSessionDate == nil {
		return 0
	}
	first, err := calendar.ParseTimestamp(*firstSessionDate)
	if err != nil {
		return 0
	}
	days := int(now.Sub(first).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

func clampPercent(pct float64) float64 {
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

func max1(v float64) float64 {
	if v < 1 {
		return 1
	}
	return v
}
