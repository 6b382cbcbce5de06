// Package watcher watches the stats cache file for changes.
//
// The cache is rewritten atomically by its producer (write to a temp file,
// then rename), so the watch is placed on the containing directory and
// filtered to the target file name. Bursts of events are debounced into a
// single refresh trigger.
package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/ferrovax/claude-compass/pkg/logger"
)

// Event signals that the watched file changed.
type Event struct {
	// Path of the watched file.
	Path string

	// Time the (debounced) change was observed.
	Time time.Time
}

// Config contains watcher configuration.
type Config struct {
	// Path of the file to watch.
	Path string

	// DebounceInterval collapses bursts of writes into one event.
	// Default: 250ms.
	DebounceInterval time.Duration
}

// Watcher emits an event when the watched file changes.
type Watcher interface {
	// Start begins watching. Returns an error if the file's directory does
	// not exist or the watcher was already started or closed.
	Start(ctx context.Context) error

	// Stop stops event processing. The watcher cannot be restarted.
	Stop() error

	// Events returns the debounced change events.
	Events() <-chan Event

	// Errors returns filesystem watch errors.
	Errors() <-chan error

	// Close releases all resources.
	Close() error
}

// fileWatcher implements Watcher using fsnotify.
type fileWatcher struct {
	fsw    *fsnotify.Watcher
	config Config
	logger logger.Logger

	events chan Event
	errors chan error

	mu       sync.Mutex
	running  bool
	closed   bool
	stopChan chan struct{}

	debounceMu    sync.Mutex
	debounceTimer *time.Timer
}

// New creates a watcher for the file at cfg.Path.
func New(cfg Config, log logger.Logger) (Watcher, error) {
	if cfg.Path == "" {
		return nil, ErrNoPath
	}
	if cfg.DebounceInterval == 0 {
		cfg.DebounceInterval = 250 * time.Millisecond
	}
	if log == nil {
		log = logger.Noop()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &fileWatcher{
		fsw:      fsw,
		config:   cfg,
		logger:   log,
		events:   make(chan Event, 16),
		errors:   make(chan error, 4),
		stopChan: make(chan struct{}),
	}, nil
}

// Start implements Watcher.Start.
func (w *fileWatcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return ErrWatcherClosed
	}
	if w.running {
		w.mu.Unlock()
		return ErrAlreadyStarted
	}
	w.running = true
	w.mu.Unlock()

	dir := filepath.Dir(w.config.Path)
	if _, err := os.Stat(dir); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidPath, dir)
	}

	if err := w.fsw.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	w.logger.Info("watching stats cache",
		"path", w.config.Path,
		"debounce", w.config.DebounceInterval)

	go w.processEvents(ctx)
	return nil
}

// Stop implements Watcher.Stop.
func (w *fileWatcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrWatcherClosed
	}
	if !w.running {
		return ErrNotStarted
	}

	close(w.stopChan)
	w.running = false
	return nil
}

// Events implements Watcher.Events.
func (w *fileWatcher) Events() <-chan Event {
	return w.events
}

// Errors implements Watcher.Errors.
func (w *fileWatcher) Errors() <-chan error {
	return w.errors
}

// Close implements Watcher.Close.
func (w *fileWatcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true

	if w.running {
		close(w.stopChan)
		w.running = false
	}

	w.debounceMu.Lock()
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.debounceMu.Unlock()

	if err := w.fsw.Close(); err != nil {
		return fmt.Errorf("failed to close watcher: %w", err)
	}
	return nil
}

// processEvents filters fsnotify events down to the watched file.
func (w *fileWatcher) processEvents(ctx context.Context) {
	target := filepath.Clean(w.config.Path)

	for {
		select {
		case <-ctx.Done():
			return

		case <-w.stopChan:
			return

		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.scheduleEvent()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			select {
			case w.errors <- err:
			default:
				w.logger.Warn("dropping watch error", "error", err)
			}
		}
	}
}

// scheduleEvent (re)arms the debounce timer.
func (w *fileWatcher) scheduleEvent() {
	w.debounceMu.Lock()
	defer w.debounceMu.Unlock()

	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}

	w.debounceTimer = time.AfterFunc(w.config.DebounceInterval, func() {
		w.mu.Lock()
		if w.closed || !w.running {
			w.mu.Unlock()
			return
		}
		w.mu.Unlock()

		select {
		case w.events <- Event{Path: w.config.Path, Time: time.Now()}:
		default:
			w.logger.Warn("dropping change event, consumer is behind")
		}
	})
}
