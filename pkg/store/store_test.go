package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ferrovax/claude-compass/pkg/snapshot"
	"github.com/ferrovax/claude-compass/pkg/stats"
	"github.com/ferrovax/claude-compass/pkg/webusage"
)

func openTestStore(t *testing.T) Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "nested", "compass.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, s.Close())
	})
	return s
}

func TestSnapshotRoundTrip(t *testing.T) {
	t.Parallel()

	s := openTestStore(t)

	_, err := s.LatestSnapshot()
	assert.ErrorIs(t, err, ErrNoSnapshot)

	now := time.Date(2026, 3, 6, 12, 0, 0, 0, time.UTC)
	snap := snapshot.Build(&stats.StatsCache{
		DailyActivity: []stats.DailyActivity{
			{Date: "2026-03-06", MessageCount: 20},
		},
		TotalMessages: 20,
		TotalSessions: 2,
	}, snapshot.Config{ResetWeekday: 6, ResetHour: 19}, now)

	require.NoError(t, s.SaveSnapshot(&snap))

	loaded, err := s.LatestSnapshot()
	require.NoError(t, err)
	assert.Equal(t, snap.TotalMessages, loaded.TotalMessages)
	assert.Equal(t, snap.PacingPercent, loaded.PacingPercent)
	assert.True(t, loaded.LastUpdated.Equal(snap.LastUpdated))
	assert.Len(t, loaded.HourlyDistribution, 24)
}

func TestSnapshotOverwrite(t *testing.T) {
	t.Parallel()

	s := openTestStore(t)

	first := snapshot.Empty(time.Now())
	first.TotalMessages = 1
	second := snapshot.Empty(time.Now())
	second.TotalMessages = 2

	require.NoError(t, s.SaveSnapshot(&first))
	require.NoError(t, s.SaveSnapshot(&second))

	loaded, err := s.LatestSnapshot()
	require.NoError(t, err)
	assert.Equal(t, 2, loaded.TotalMessages)
}

func TestRemoteUsageRoundTrip(t *testing.T) {
	t.Parallel()

	s := openTestStore(t)

	_, err := s.LatestRemoteUsage()
	assert.ErrorIs(t, err, ErrNoRemoteUsage)

	usage := &webusage.Usage{
		SevenDay:  webusage.Window{Utilization: 0.8, ResetsAt: "2026-03-06T19:00:00Z"},
		FetchedAt: time.Now().UTC(),
	}
	require.NoError(t, s.SaveRemoteUsage(usage))

	loaded, err := s.LatestRemoteUsage()
	require.NoError(t, err)
	assert.Equal(t, 0.8, loaded.SevenDay.Utilization)
}

func TestSaveNil(t *testing.T) {
	t.Parallel()

	s := openTestStore(t)
	assert.ErrorIs(t, s.SaveSnapshot(nil), ErrNilValue)
	assert.ErrorIs(t, s.SaveRemoteUsage(nil), ErrNilValue)
}
