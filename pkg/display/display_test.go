package display

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/ferrovax/claude-compass/pkg/snapshot"
	"github.com/ferrovax/claude-compass/pkg/stats"
	"github.com/ferrovax/claude-compass/pkg/webusage"
)

func sampleSnapshot() *snapshot.Snapshot {
	snap := snapshot.Empty(time.Date(2026, 3, 6, 12, 0, 0, 0, time.UTC))
	snap.TodayActivity = &stats.DailyActivity{
		Date:         "2026-03-06",
		MessageCount: 42,
		SessionCount: 3,
	}
	snap.WeeklyActivity = []stats.DailyActivity{
		{Date: "2026-03-04", MessageCount: 10},
		{Date: "2026-03-05", MessageCount: 25},
		{Date: "2026-03-06", MessageCount: 42},
	}
	snap.ModelBreakdown = []snapshot.ModelBreakdownItem{
		{ID: "claude-opus-4-5", FriendlyName: "Opus 4.5", TotalTokens: 1_500_000, InputTokens: 900_000, OutputTokens: 400_000, CacheTokens: 200_000, Fraction: 0.75},
		{ID: "claude-haiku-4-5", FriendlyName: "Haiku 4.5", TotalTokens: 500_000, InputTokens: 300_000, OutputTokens: 150_000, CacheTokens: 50_000, Fraction: 0.25},
	}
	snap.HourlyDistribution[9].Count = 12
	snap.HourlyDistribution[14].Count = 30
	snap.PacingPercent = 84.2
	snap.WeeklyPacingPercent = 61.5
	snap.WeeklyTimePercent = 55.0
	snap.TotalMessages = 1234
	snap.TotalSessions = 98
	snap.DaysSinceFirstSession = 30
	return &snap
}

func TestNew_Defaults(t *testing.T) {
	t.Parallel()

	if _, ok := New(Config{Width: 80}).(*tableFormatter); !ok {
		t.Error("New() with empty format should return a table formatter")
	}
	if _, ok := New(Config{Format: FormatJSON, Width: 80}).(*jsonFormatter); !ok {
		t.Error("New(json) should return a JSON formatter")
	}
	if _, ok := New(Config{Format: FormatSimple, Width: 80}).(*simpleFormatter); !ok {
		t.Error("New(simple) should return a simple formatter")
	}
}

func TestTable_FormatSnapshot(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	f := New(Config{Format: FormatTable, ShowTokenCounts: true, Width: 80})

	if err := f.FormatSnapshot(&buf, sampleSnapshot()); err != nil {
		t.Fatalf("FormatSnapshot() error: %v", err)
	}

	output := buf.String()
	for _, want := range []string{
		"Usage Snapshot",
		"Today Messages",
		"42",
		"1,234",
		"Pacing",
		"84.2",
		"Model Breakdown",
		"Opus 4.5",
		"1.5M",
		"75.0%",
		"Weekly Trend",
		"Activity by Hour",
		"2p",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestTable_NilSnapshot(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	f := New(Config{Format: FormatTable, Width: 80})

	if err := f.FormatSnapshot(&buf, nil); err != nil {
		t.Fatalf("FormatSnapshot() error: %v", err)
	}
	if !strings.Contains(buf.String(), "No data") {
		t.Errorf("output = %q, want no-data notice", buf.String())
	}
}

func TestTable_FormatRemote(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	f := New(Config{Format: FormatTable, Width: 80})

	usage := &webusage.Usage{
		FiveHour: webusage.Window{Utilization: 0.42, ResetsAt: "2026-03-06T17:00:00Z"},
		SevenDay: webusage.Window{Utilization: 0.815, ResetsAt: "2026-03-13T19:00:00Z"},
		ExtraUsage: webusage.ExtraUsage{
			IsEnabled:    true,
			MonthlyLimit: 5000,
			UsedCredits:  1250,
			Utilization:  0.25,
		},
	}

	if err := f.FormatRemote(&buf, usage); err != nil {
		t.Fatalf("FormatRemote() error: %v", err)
	}

	output := buf.String()
	for _, want := range []string{"Account Usage", "42.0%", "81.5%", "$12.50 of $50.00"} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestSimple_FormatSnapshot(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	f := New(Config{Format: FormatSimple, Width: 80})

	if err := f.FormatSnapshot(&buf, sampleSnapshot()); err != nil {
		t.Fatalf("FormatSnapshot() error: %v", err)
	}

	output := buf.String()
	if lines := strings.Count(output, "\n"); lines != 1 {
		t.Errorf("simple output has %d lines, want 1", lines)
	}
	if !strings.Contains(output, "Today: 42 msgs") {
		t.Errorf("output = %q, want today count", output)
	}
}

func TestJSON_FormatSnapshot(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	f := New(Config{Format: FormatJSON, Width: 80})

	if err := f.FormatSnapshot(&buf, sampleSnapshot()); err != nil {
		t.Fatalf("FormatSnapshot() error: %v", err)
	}

	var decoded snapshot.Snapshot
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.PacingPercent != 84.2 {
		t.Errorf("PacingPercent = %v, want 84.2", decoded.PacingPercent)
	}
	if decoded.TotalMessages != 1234 {
		t.Errorf("TotalMessages = %v, want 1234", decoded.TotalMessages)
	}
}

func TestFormatNumber(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input int
		want  string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1234567, "1,234,567"},
	}

	for _, tt := range tests {
		if got := formatNumber(tt.input); got != tt.want {
			t.Errorf("formatNumber(%d) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestFormatCompact(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input int
		want  string
	}{
		{500, "500"},
		{1500, "1.5K"},
		{2_300_000, "2.3M"},
	}

	for _, tt := range tests {
		if got := formatCompact(tt.input); got != tt.want {
			t.Errorf("formatCompact(%d) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	t.Parallel()

	tests := []struct {
		seconds float64
		want    string
	}{
		{0, "0m"},
		{2700, "45m"},
		{8100, "2h 15m"},
	}

	for _, tt := range tests {
		if got := formatDuration(tt.seconds); got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestPercentBar(t *testing.T) {
	t.Parallel()

	if got := len([]rune(percentBar(50, 10))); got != 10 {
		t.Errorf("bar width = %d, want 10", got)
	}
	if got := percentBar(0, 4); got != "░░░░" {
		t.Errorf("empty bar = %q", got)
	}
	if got := percentBar(100, 4); got != "████" {
		t.Errorf("full bar = %q", got)
	}
	// Out-of-range inputs clamp.
	if got := percentBar(150, 4); got != "████" {
		t.Errorf("overfull bar = %q", got)
	}
}
