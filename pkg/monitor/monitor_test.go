package monitor

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ferrovax/claude-compass/pkg/alert"
	"github.com/ferrovax/claude-compass/pkg/snapshot"
	"github.com/ferrovax/claude-compass/pkg/stats"
	"github.com/ferrovax/claude-compass/pkg/store"
)

// fakeNotifier records delivered messages.
type fakeNotifier struct {
	enabled   bool
	delivered []*alert.Message
}

func (f *fakeNotifier) Deliver(msg *alert.Message) error {
	if msg != nil && f.enabled {
		f.delivered = append(f.delivered, msg)
	}
	return nil
}

func (f *fakeNotifier) Enabled() bool { return f.enabled }

var testNow = time.Date(2026, 3, 6, 12, 0, 0, 0, time.UTC)

var testConfig = Config{
	RefreshInterval: time.Minute,
	Snapshot:        snapshot.Config{ResetWeekday: 6, ResetHour: 19},
	Threshold:       80,
}

func writeStatsFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
}

// A cache where today's count doubles the historical average, pushing daily
// pacing to 100.
const highUsageJSON = `{
  "version": 1,
  "dailyActivity": [
    {"date": "2026-03-05", "messageCount": 10, "sessionCount": 1, "toolCallCount": 2},
    {"date": "2026-03-06", "messageCount": 90, "sessionCount": 3, "toolCallCount": 12}
  ],
  "dailyModelTokens": [],
  "modelUsage": {},
  "totalSessions": 4,
  "totalMessages": 100,
  "hourCounts": {}
}`

const quietUsageJSON = `{
  "version": 1,
  "dailyActivity": [
    {"date": "2026-03-05", "messageCount": 10, "sessionCount": 1, "toolCallCount": 2}
  ],
  "dailyModelTokens": [],
  "modelUsage": {},
  "totalSessions": 1,
  "totalMessages": 10,
  "hourCounts": {}
}`

func newTestMonitor(t *testing.T, path string, notifier *fakeNotifier) *liveMonitor {
	t.Helper()
	m, err := New(testConfig, stats.NewLoader(path, nil), notifier, nil, nil, nil)
	require.NoError(t, err)
	lm := m.(*liveMonitor)
	lm.now = func() time.Time { return testNow }
	return lm
}

func TestNew_RequiresCollaborators(t *testing.T) {
	t.Parallel()

	_, err := New(testConfig, nil, &fakeNotifier{}, nil, nil, nil)
	assert.ErrorIs(t, err, ErrNoLoader)

	_, err = New(testConfig, stats.NewLoader("x", nil), nil, nil, nil, nil)
	assert.ErrorIs(t, err, ErrNoNotifier)
}

func TestRefresh_BuildsSnapshot(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "stats.json")
	writeStatsFile(t, path, quietUsageJSON)

	m := newTestMonitor(t, path, &fakeNotifier{})

	snap, err := m.Refresh()
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Equal(t, 10, snap.TotalMessages)
	assert.Same(t, snap, m.Current())

	select {
	case update := <-m.Updates():
		assert.NoError(t, update.Err)
		assert.Equal(t, snap, update.Snapshot)
	default:
		t.Fatal("no update published")
	}
}

func TestRefresh_LoadFailureKeepsPreviousSnapshot(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "stats.json")
	writeStatsFile(t, path, quietUsageJSON)

	m := newTestMonitor(t, path, &fakeNotifier{})

	first, err := m.Refresh()
	require.NoError(t, err)

	writeStatsFile(t, path, "{broken")

	snap, err := m.Refresh()
	assert.ErrorIs(t, err, stats.ErrStatsMalformed)
	assert.Same(t, first, snap, "previous snapshot must be retained")
	assert.Same(t, first, m.Current())

	// Drain the success update, then check the failure update.
	<-m.Updates()
	select {
	case update := <-m.Updates():
		assert.Error(t, update.Err)
		assert.Equal(t, first, update.Snapshot)
	default:
		t.Fatal("no failure update published")
	}
}

func TestRefresh_MissingFileIsDistinctError(t *testing.T) {
	t.Parallel()

	m := newTestMonitor(t, filepath.Join(t.TempDir(), "missing.json"), &fakeNotifier{})

	_, err := m.Refresh()
	assert.ErrorIs(t, err, stats.ErrStatsNotFound)
	assert.Nil(t, m.Current())
}

func TestRefresh_FiresAlertOnceAboveThreshold(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "stats.json")
	writeStatsFile(t, path, highUsageJSON)

	notifier := &fakeNotifier{enabled: true}
	m := newTestMonitor(t, path, notifier)

	_, err := m.Refresh()
	require.NoError(t, err)
	require.Len(t, notifier.delivered, 1)
	assert.Equal(t, 100, notifier.delivered[0].Bucket)
	assert.Equal(t, alert.SeverityCritical, notifier.delivered[0].Severity)

	// Same pacing on the next refresh: debounced.
	_, err = m.Refresh()
	require.NoError(t, err)
	assert.Len(t, notifier.delivered, 1)
}

func TestRefresh_NoAlertWhenNotificationsDisabled(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "stats.json")
	writeStatsFile(t, path, highUsageJSON)

	notifier := &fakeNotifier{enabled: false}
	m := newTestMonitor(t, path, notifier)

	_, err := m.Refresh()
	require.NoError(t, err)
	assert.Empty(t, notifier.delivered)
}

func TestRefresh_PersistsSnapshot(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "stats.json")
	writeStatsFile(t, path, quietUsageJSON)

	st, err := store.Open(filepath.Join(dir, "compass.db"))
	require.NoError(t, err)
	defer func() { require.NoError(t, st.Close()) }()

	m, err := New(testConfig, stats.NewLoader(path, nil), &fakeNotifier{}, st, nil, nil)
	require.NoError(t, err)
	m.(*liveMonitor).now = func() time.Time { return testNow }

	_, err = m.Refresh()
	require.NoError(t, err)

	stored, err := st.LatestSnapshot()
	require.NoError(t, err)
	assert.Equal(t, 10, stored.TotalMessages)
}

func TestNew_SeedsFromStore(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	st, err := store.Open(filepath.Join(dir, "compass.db"))
	require.NoError(t, err)
	defer func() { require.NoError(t, st.Close()) }()

	seed := snapshot.Empty(testNow)
	seed.TotalMessages = 77
	require.NoError(t, st.SaveSnapshot(&seed))

	m, err := New(testConfig, stats.NewLoader(filepath.Join(dir, "missing.json"), nil), &fakeNotifier{}, st, nil, nil)
	require.NoError(t, err)

	current := m.Current()
	require.NotNil(t, current)
	assert.Equal(t, 77, current.TotalMessages)
}

func TestStop_BeforeStart(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "stats.json")
	writeStatsFile(t, path, quietUsageJSON)

	m := newTestMonitor(t, path, &fakeNotifier{})
	assert.ErrorIs(t, m.Stop(), ErrNotStarted)
}
