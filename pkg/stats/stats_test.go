package stats

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const validStatsJSON = `{
  "version": 1,
  "lastComputedDate": "2026-03-06",
  "dailyActivity": [
    {"date": "2026-03-05", "messageCount": 12, "sessionCount": 2, "toolCallCount": 30},
    {"date": "2026-03-06", "messageCount": 40, "sessionCount": 3, "toolCallCount": 95}
  ],
  "dailyModelTokens": [
    {"date": "2026-03-06", "tokensByModel": {"claude-sonnet-4-20250514": 52000}}
  ],
  "modelUsage": {
    "claude-sonnet-4-20250514": {
      "inputTokens": 1000, "outputTokens": 500,
      "cacheReadInputTokens": 8000, "cacheCreationInputTokens": 400,
      "webSearchRequests": 2, "costUSD": 1.25,
      "contextWindow": 200000, "maxOutputTokens": 64000
    }
  },
  "totalSessions": 5,
  "totalMessages": 52,
  "longestSession": {"sessionId": "abc", "duration": 5400000, "messageCount": 20, "timestamp": "2026-03-01T10:00:00Z"},
  "firstSessionDate": "2026-02-01T09:00:00Z",
  "hourCounts": {"9": 10, "14": 22, "23": 3}
}`

func writeStats(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stats-cache.json")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	return path
}

func TestLoad_Valid(t *testing.T) {
	t.Parallel()

	l := NewLoader(writeStats(t, validStatsJSON), nil)
	cache, err := l.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cache.Version != 1 {
		t.Errorf("Version = %d, want 1", cache.Version)
	}
	if len(cache.DailyActivity) != 2 {
		t.Errorf("len(DailyActivity) = %d, want 2", len(cache.DailyActivity))
	}
	if cache.TotalMessages != 52 {
		t.Errorf("TotalMessages = %d, want 52", cache.TotalMessages)
	}
	if cache.LongestSession == nil || cache.LongestSession.DurationSeconds() != 5400 {
		t.Errorf("LongestSession.DurationSeconds() = %+v, want 5400s", cache.LongestSession)
	}
	if cache.HourCounts["14"] != 22 {
		t.Errorf("HourCounts[14] = %d, want 22", cache.HourCounts["14"])
	}
}

func TestLoad_NotFound(t *testing.T) {
	t.Parallel()

	l := NewLoader(filepath.Join(t.TempDir(), "missing.json"), nil)
	_, err := l.Load()
	if !errors.Is(err, ErrStatsNotFound) {
		t.Errorf("Load() error = %v, want ErrStatsNotFound", err)
	}
}

func TestLoad_Malformed(t *testing.T) {
	t.Parallel()

	l := NewLoader(writeStats(t, "{not json"), nil)
	_, err := l.Load()
	if !errors.Is(err, ErrStatsMalformed) {
		t.Errorf("Load() error = %v, want ErrStatsMalformed", err)
	}
	if errors.Is(err, ErrStatsNotFound) {
		t.Error("Load() malformed error must be distinct from not-found")
	}
}

func TestLoad_ValidationFailure(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		json string
	}{
		{
			name: "negative message count",
			json: `{"version":1,"dailyActivity":[{"date":"2026-03-06","messageCount":-1}],"modelUsage":{},"hourCounts":{}}`,
		},
		{
			name: "bad date key",
			json: `{"version":1,"dailyActivity":[{"date":"03/06/2026","messageCount":1}],"modelUsage":{},"hourCounts":{}}`,
		},
		{
			name: "hour key out of range",
			json: `{"version":1,"dailyActivity":[],"modelUsage":{},"hourCounts":{"24":1}}`,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			l := NewLoader(writeStats(t, tc.json), nil)
			if _, err := l.Load(); !errors.Is(err, ErrStatsMalformed) {
				t.Errorf("Load() error = %v, want ErrStatsMalformed", err)
			}
		})
	}
}

func TestModelUsageStats_TotalTokens(t *testing.T) {
	t.Parallel()

	usage := ModelUsageStats{
		InputTokens:              100,
		OutputTokens:             50,
		CacheReadInputTokens:     1000,
		CacheCreationInputTokens: 25,
	}
	if got := usage.TotalTokens(); got != 1175 {
		t.Errorf("TotalTokens() = %d, want 1175", got)
	}
}

func TestDailyModelTokens_TotalTokens(t *testing.T) {
	t.Parallel()

	day := DailyModelTokens{
		Date:          "2026-03-06",
		TokensByModel: map[string]int{"a": 10, "b": 32},
	}
	if got := day.TotalTokens(); got != 42 {
		t.Errorf("TotalTokens() = %d, want 42", got)
	}
}
