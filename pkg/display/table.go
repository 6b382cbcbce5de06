package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/ferrovax/claude-compass/pkg/snapshot"
	"github.com/ferrovax/claude-compass/pkg/webusage"
)

// tableFormatter formats output as tables.
type tableFormatter struct {
	config Config
}

// FormatSnapshot implements Formatter.FormatSnapshot.
func (f *tableFormatter) FormatSnapshot(w io.Writer, snap *snapshot.Snapshot) error {
	if snap == nil {
		_, err := fmt.Fprintln(w, "No data")
		return err
	}

	if err := f.writeSummary(w, snap); err != nil {
		return err
	}
	if err := f.writePacing(w, snap); err != nil {
		return err
	}
	if err := f.writeModels(w, "Model Breakdown", snap.ModelBreakdown); err != nil {
		return err
	}
	if len(snap.TodayModelBreakdown) > 0 {
		if err := f.writeModels(w, "Today by Model", snap.TodayModelBreakdown); err != nil {
			return err
		}
	}
	if err := f.writeWeeklyTrend(w, snap); err != nil {
		return err
	}
	return f.writeHourly(w, snap)
}

// FormatRemote implements Formatter.FormatRemote.
func (f *tableFormatter) FormatRemote(w io.Writer, usage *webusage.Usage) error {
	if usage == nil {
		_, err := fmt.Fprintln(w, "Remote usage unavailable")
		return err
	}

	if err := writeHeader(w, "Account Usage", f.config.Compact); err != nil {
		return err
	}

	rows := [][]string{
		{"5-hour window", formatFloat(usage.FiveHour.Utilization*100, 1) + "%", usage.FiveHour.ResetsAt},
		{"7-day window", formatFloat(usage.SevenDay.Utilization*100, 1) + "%", usage.SevenDay.ResetsAt},
	}
	if usage.ExtraUsage.IsEnabled {
		rows = append(rows, []string{
			"Extra usage",
			formatFloat(usage.ExtraUsage.Utilization*100, 1) + "%",
			fmt.Sprintf("$%.2f of $%.2f", usage.ExtraUsage.UsedCredits/100, usage.ExtraUsage.MonthlyLimit/100),
		})
	}

	return f.writeTable(w, []string{"Window", "Used", "Resets"}, rows)
}

// writeSummary writes the top-level counters.
func (f *tableFormatter) writeSummary(w io.Writer, snap *snapshot.Snapshot) error {
	if err := writeHeader(w, "Usage Snapshot", f.config.Compact); err != nil {
		return err
	}

	todayMessages, todaySessions := 0, 0
	if snap.TodayActivity != nil {
		todayMessages = snap.TodayActivity.MessageCount
		todaySessions = snap.TodayActivity.SessionCount
	}

	rows := [][]string{
		{"Last Updated", snap.LastUpdated.Format("2006-01-02 15:04:05")},
		{"Today Messages", formatNumber(todayMessages)},
		{"Today Sessions", formatNumber(todaySessions)},
		{"Total Messages", formatNumber(snap.TotalMessages)},
		{"Total Sessions", formatNumber(snap.TotalSessions)},
		{"Days Tracked", formatNumber(snap.DaysSinceFirstSession)},
	}

	if snap.LongestSessionSeconds != nil {
		rows = append(rows, []string{"Longest Session", formatDuration(*snap.LongestSessionSeconds)})
	}

	return f.writeTable(w, []string{"Metric", "Value"}, rows)
}

// writePacing writes the three pacing gauges.
func (f *tableFormatter) writePacing(w io.Writer, snap *snapshot.Snapshot) error {
	if err := writeHeader(w, "Pacing", f.config.Compact); err != nil {
		return err
	}

	barWidth := 30
	if f.config.Width < 60 {
		barWidth = 15
	}

	gauges := []struct {
		label   string
		percent float64
	}{
		{"Daily", snap.PacingPercent},
		{"Weekly", snap.WeeklyPacingPercent},
		{"Week Elapsed", snap.WeeklyTimePercent},
	}

	for _, g := range gauges {
		if _, err := fmt.Fprintf(w, "%-14s %s %5s%%\n",
			g.label, percentBar(g.percent, barWidth), formatFloat(g.percent, 1)); err != nil {
			return err
		}
	}

	if !f.config.Compact {
		_, err := fmt.Fprintln(w)
		return err
	}
	return nil
}

// writeModels writes a model breakdown table.
func (f *tableFormatter) writeModels(w io.Writer, title string, items []snapshot.ModelBreakdownItem) error {
	if err := writeHeader(w, title, f.config.Compact); err != nil {
		return err
	}

	header := []string{"Model", "Tokens", "Share"}
	if f.config.ShowTokenCounts {
		header = []string{"Model", "Tokens", "Input", "Output", "Cache", "Share"}
	}

	rows := make([][]string, len(items))
	for i, item := range items {
		share := formatFloat(item.Fraction*100, 1) + "%"
		if f.config.ShowTokenCounts {
			rows[i] = []string{
				item.FriendlyName,
				formatCompact(item.TotalTokens),
				formatCompact(item.InputTokens),
				formatCompact(item.OutputTokens),
				formatCompact(item.CacheTokens),
				share,
			}
		} else {
			rows[i] = []string{item.FriendlyName, formatCompact(item.TotalTokens), share}
		}
	}

	return f.writeTable(w, header, rows)
}

// writeHourly writes the hour-of-day histogram.
func (f *tableFormatter) writeHourly(w io.Writer, snap *snapshot.Snapshot) error {
	if err := writeHeader(w, "Activity by Hour", f.config.Compact); err != nil {
		return err
	}

	peak := 0
	for _, bucket := range snap.HourlyDistribution {
		if bucket.Count > peak {
			peak = bucket.Count
		}
	}
	if peak == 0 {
		_, err := fmt.Fprintln(w, "No data")
		return err
	}

	barWidth := 40
	if f.config.Width < 60 {
		barWidth = 20
	}

	for _, bucket := range snap.HourlyDistribution {
		filled := bucket.Count * barWidth / peak
		if _, err := fmt.Fprintf(w, "%4s %s %s\n",
			bucket.Label(),
			strings.Repeat("█", filled)+strings.Repeat("░", barWidth-filled),
			formatNumber(bucket.Count)); err != nil {
			return err
		}
	}

	if !f.config.Compact {
		_, err := fmt.Fprintln(w)
		return err
	}
	return nil
}

// writeTable writes a formatted table.
func (f *tableFormatter) writeTable(w io.Writer, header []string, rows [][]string) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, "No data")
		return err
	}

	// Calculate column widths.
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = len(h)
	}

	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	// Write header.
	if err := f.writeRow(w, header, widths); err != nil {
		return err
	}

	// Write separator.
	if !f.config.Compact {
		separator := make([]string, len(header))
		for i, width := range widths {
			separator[i] = strings.Repeat("-", width)
		}
		if err := f.writeRow(w, separator, widths); err != nil {
			return err
		}
	}

	// Write rows.
	for _, row := range rows {
		if err := f.writeRow(w, row, widths); err != nil {
			return err
		}
	}

	// Add spacing.
	if !f.config.Compact {
		_, err := fmt.Fprintln(w)
		return err
	}

	return nil
}

// writeRow writes a single table row.
func (f *tableFormatter) writeRow(w io.Writer, cells []string, widths []int) error {
	for i, cell := range cells {
		if i > 0 {
			if f.config.Compact {
				if _, err := fmt.Fprint(w, " "); err != nil {
					return err
				}
			} else {
				if _, err := fmt.Fprint(w, "  "); err != nil {
					return err
				}
			}
		}

		format := fmt.Sprintf("%%-%ds", widths[i])
		if _, err := fmt.Fprintf(w, format, cell); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintln(w)
	return err
}
