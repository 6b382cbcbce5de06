// Package monitor orchestrates the refresh cycle: load the stats cache,
// build a snapshot, evaluate the usage alert, deliver it, persist the result
// and publish it to consumers.
//
// Refreshes run on a periodic ticker and on stats file change events. All
// refresh work happens on one goroutine, which also serializes the alert
// debouncer's state transitions; a failed load keeps the previous snapshot
// and retries on the next cycle.
package monitor

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ferrovax/claude-compass/pkg/alert"
	"github.com/ferrovax/claude-compass/pkg/logger"
	"github.com/ferrovax/claude-compass/pkg/notify"
	"github.com/ferrovax/claude-compass/pkg/snapshot"
	"github.com/ferrovax/claude-compass/pkg/stats"
	"github.com/ferrovax/claude-compass/pkg/store"
	"github.com/ferrovax/claude-compass/pkg/watcher"
)

// Update is published to consumers after every refresh attempt.
type Update struct {
	// Snapshot is the freshest available snapshot. On a failed refresh it
	// is the previous successful one (possibly nil on the first cycle).
	Snapshot *snapshot.Snapshot

	// Alert is the message fired by this refresh, nil when none fired.
	Alert *alert.Message

	// Err is the load failure of this refresh, nil on success.
	Err error
}

// Config contains monitor configuration.
type Config struct {
	// RefreshInterval between periodic rebuilds. Default: 60s.
	RefreshInterval time.Duration

	// Snapshot holds the reset schedule and weekly budget.
	Snapshot snapshot.Config

	// Threshold is the pacing percentage at which alerts begin.
	Threshold float64
}

// Monitor runs the refresh loop.
type Monitor interface {
	// Start begins the refresh loop, performing an immediate first refresh.
	Start(ctx context.Context) error

	// Stop halts the refresh loop.
	Stop() error

	// Refresh performs one refresh cycle now.
	//
	// Returns the freshest snapshot (previous one on load failure) and the
	// load error, if any.
	Refresh() (*snapshot.Snapshot, error)

	// Current returns the latest successfully built snapshot, nil before
	// the first success.
	Current() *snapshot.Snapshot

	// Updates returns the refresh result stream.
	Updates() <-chan Update
}

// liveMonitor implements the Monitor interface.
type liveMonitor struct {
	config   Config
	loader   stats.Loader
	notifier notify.Notifier
	store    store.Store
	watcher  watcher.Watcher
	logger   logger.Logger

	// now is replaceable for tests.
	now func() time.Time

	refreshMu  sync.Mutex
	alertState alert.State

	mu       sync.RWMutex
	current  *snapshot.Snapshot
	running  bool
	stopChan chan struct{}

	updates chan Update
}

// New creates a monitor.
//
// Parameters:
//   - cfg: Monitor configuration
//   - ld: Stats cache loader (required)
//   - n: Alert notifier (required; a disabled notifier silences alerts)
//   - st: Snapshot store; may be nil to skip persistence
//   - w: Stats file watcher; may be nil for ticker-only refreshes
//   - log: Logger instance
func New(cfg Config, ld stats.Loader, n notify.Notifier, st store.Store, w watcher.Watcher, log logger.Logger) (Monitor, error) {
	if ld == nil {
		return nil, ErrNoLoader
	}
	if n == nil {
		return nil, ErrNoNotifier
	}
	if cfg.RefreshInterval == 0 {
		cfg.RefreshInterval = 60 * time.Second
	}
	if log == nil {
		log = logger.Noop()
	}

	m := &liveMonitor{
		config:   cfg,
		loader:   ld,
		notifier: n,
		store:    st,
		watcher:  w,
		logger:   log,
		now:      time.Now,
		stopChan: make(chan struct{}),
		updates:  make(chan Update, 16),
	}

	// Seed from the store so consumers see stale-but-real numbers before
	// the first refresh completes.
	if st != nil {
		if snap, err := st.LatestSnapshot(); err == nil {
			m.current = snap
		} else if !errors.Is(err, store.ErrNoSnapshot) {
			log.Warn("failed to read stored snapshot", "error", err)
		}
	}

	return m, nil
}

// Start implements Monitor.Start.
func (m *liveMonitor) Start(ctx context.Context) error {
	m.mu.Lock()
	if m.running {
		m.mu.Unlock()
		return ErrAlreadyStarted
	}
	m.running = true
	m.mu.Unlock()

	if m.watcher != nil {
		if err := m.watcher.Start(ctx); err != nil {
			m.logger.Warn("stats watcher unavailable, using ticker only", "error", err)
		}
	}

	if _, err := m.Refresh(); err != nil {
		m.logger.Warn("initial refresh failed", "error", err)
	}

	go m.run(ctx)
	return nil
}

// Stop implements Monitor.Stop.
func (m *liveMonitor) Stop() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.running {
		return ErrNotStarted
	}
	close(m.stopChan)
	m.running = false
	return nil
}

// Current implements Monitor.Current.
func (m *liveMonitor) Current() *snapshot.Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Updates implements Monitor.Updates.
func (m *liveMonitor) Updates() <-chan Update {
	return m.updates
}

// run is the refresh loop.
func (m *liveMonitor) run(ctx context.Context) {
	ticker := time.NewTicker(m.config.RefreshInterval)
	defer ticker.Stop()

	var watchEvents <-chan watcher.Event
	if m.watcher != nil {
		watchEvents = m.watcher.Events()
	}

	for {
		select {
		case <-ctx.Done():
			return

		case <-m.stopChan:
			return

		case <-ticker.C:
			m.refreshLogged()

		case _, ok := <-watchEvents:
			if !ok {
				watchEvents = nil
				continue
			}
			m.logger.Debug("stats cache changed, refreshing")
			m.refreshLogged()
		}
	}
}

func (m *liveMonitor) refreshLogged() {
	if _, err := m.Refresh(); err != nil {
		m.logger.Warn("refresh failed", "error", err)
	}
}

// Refresh implements Monitor.Refresh.
func (m *liveMonitor) Refresh() (*snapshot.Snapshot, error) {
	m.refreshMu.Lock()
	defer m.refreshMu.Unlock()

	cache, err := m.loader.Load()
	if err != nil {
		// Keep the previous snapshot for this cycle; the next refresh
		// retries independently.
		switch {
		case errors.Is(err, stats.ErrStatsNotFound):
			m.logger.Warn("stats cache not found", "path", m.loader.Path())
		case errors.Is(err, stats.ErrStatsMalformed):
			m.logger.Warn("stats cache malformed", "error", err)
		default:
			m.logger.Error("stats cache load failed", "error", err)
		}

		previous := m.Current()
		m.publish(Update{Snapshot: previous, Err: err})
		return previous, err
	}

	now := m.now()
	snap := snapshot.Build(cache, m.config.Snapshot, now)

	state, msg := alert.Evaluate(m.alertState, snap.PacingPercent, m.config.Threshold, m.notifier.Enabled())
	m.alertState = state

	if msg != nil {
		if deliverErr := m.notifier.Deliver(msg); deliverErr != nil {
			m.logger.Error("alert delivery failed", "error", deliverErr)
		}
	}

	if m.store != nil {
		if saveErr := m.store.SaveSnapshot(&snap); saveErr != nil {
			m.logger.Error("failed to persist snapshot", "error", saveErr)
		}
	}

	m.mu.Lock()
	m.current = &snap
	m.mu.Unlock()

	m.logger.Debug("refresh complete",
		"daily_pacing", fmt.Sprintf("%.1f", snap.PacingPercent),
		"weekly_pacing", fmt.Sprintf("%.1f", snap.WeeklyPacingPercent))

	m.publish(Update{Snapshot: &snap, Alert: msg})
	return &snap, nil
}

// publish emits an update without blocking the refresh loop.
func (m *liveMonitor) publish(update Update) {
	select {
	case m.updates <- update:
	default:
		m.logger.Warn("dropping update, consumer is behind")
	}
}
