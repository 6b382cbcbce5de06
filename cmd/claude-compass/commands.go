package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/ferrovax/claude-compass/pkg/config"
	"github.com/ferrovax/claude-compass/pkg/display"
	"github.com/ferrovax/claude-compass/pkg/logger"
	"github.com/ferrovax/claude-compass/pkg/monitor"
	"github.com/ferrovax/claude-compass/pkg/notify"
	"github.com/ferrovax/claude-compass/pkg/snapshot"
	"github.com/ferrovax/claude-compass/pkg/stats"
	"github.com/ferrovax/claude-compass/pkg/store"
	"github.com/ferrovax/claude-compass/pkg/watcher"
	"github.com/ferrovax/claude-compass/pkg/webusage"
)

// loadConfig loads configuration from an explicit path or the standard
// search locations.
func loadConfig(configPath string) (*config.Config, error) {
	if configPath != "" {
		cfg, err := config.LoadFromFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		return cfg, nil
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// snapshotConfig maps billing settings to build parameters.
func snapshotConfig(cfg *config.Config) snapshot.Config {
	return snapshot.Config{
		ResetWeekday: cfg.Billing.ResetWeekday,
		ResetHour:    cfg.Billing.ResetHour,
		WeeklyBudget: cfg.Billing.WeeklyMessageBudget,
	}
}

// newFormatter builds a display formatter, with the flag value taking
// precedence over the configured default.
func newFormatter(cfg *config.Config, format string, compact bool) display.Formatter {
	if format == "" {
		format = cfg.Display.DefaultFormat
	}

	var f display.Format
	switch format {
	case "json":
		f = display.FormatJSON
	case "simple":
		f = display.FormatSimple
	default:
		f = display.FormatTable
	}

	return display.New(display.Config{
		Format:          f,
		ShowTokenCounts: cfg.Display.ShowTokenCounts,
		Compact:         compact,
	})
}

// snapshotCommand builds and displays a usage snapshot.
type snapshotCommand struct {
	format     string
	compact    bool
	stored     bool
	configPath string
}

// Execute runs the snapshot command.
func (c *snapshotCommand) Execute() error {
	cfg, err := loadConfig(c.configPath)
	if err != nil {
		return err
	}

	log := logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})

	formatter := newFormatter(cfg, c.format, c.compact)

	if c.stored {
		return c.showStored(cfg, formatter)
	}

	loader := stats.NewLoader(cfg.StatsPath, log)
	cache, err := loader.Load()
	if err != nil {
		if errors.Is(err, stats.ErrStatsNotFound) {
			fmt.Printf("No stats cache found at %s\n", loader.Path())
			return nil
		}
		return fmt.Errorf("failed to load stats cache: %w", err)
	}

	snap := snapshot.Build(cache, snapshotConfig(cfg), time.Now())
	return formatter.FormatSnapshot(os.Stdout, &snap)
}

// showStored displays the last persisted snapshot.
func (c *snapshotCommand) showStored(cfg *config.Config, formatter display.Formatter) error {
	st, err := store.Open(cfg.Storage.Path)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer func() {
		_ = st.Close()
	}()

	snap, err := st.LatestSnapshot()
	if err != nil {
		if errors.Is(err, store.ErrNoSnapshot) {
			fmt.Println("No stored snapshot yet; run without -stored to build one")
			return nil
		}
		return fmt.Errorf("failed to read stored snapshot: %w", err)
	}

	return formatter.FormatSnapshot(os.Stdout, snap)
}

// watchCommand provides live usage monitoring with alerts.
type watchCommand struct {
	refresh     time.Duration
	format      string
	clearScreen bool
	configPath  string
}

// Execute runs the watch command.
func (c *watchCommand) Execute() error {
	cfg, err := loadConfig(c.configPath)
	if err != nil {
		return err
	}

	// Initialize logger (quiet mode for live monitoring)
	log := logger.New(logger.Config{
		Level:  "error", // Only show errors during live monitoring
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})

	refresh := cfg.Refresh.Interval
	if c.refresh > 0 {
		refresh = c.refresh
	}

	loader := stats.NewLoader(cfg.StatsPath, log)
	notifier := notify.New(cfg.Notifications.Enabled, log)

	// Store and watcher are both optional: the monitor degrades to
	// ticker-only, in-memory operation without them.
	var st store.Store
	if opened, storeErr := store.Open(cfg.Storage.Path); storeErr != nil {
		log.Error("failed to open store, snapshots will not persist", "error", storeErr)
	} else {
		st = opened
		defer func() {
			_ = st.Close()
		}()
	}

	var w watcher.Watcher
	if created, watchErr := watcher.New(watcher.Config{Path: cfg.StatsPath}, log); watchErr != nil {
		log.Error("failed to create watcher, using ticker only", "error", watchErr)
	} else {
		w = created
		defer func() {
			_ = w.Close()
		}()
	}

	mon, err := monitor.New(monitor.Config{
		RefreshInterval: refresh,
		Snapshot:        snapshotConfig(cfg),
		Threshold:       cfg.Notifications.Threshold,
	}, loader, notifier, st, w, log)
	if err != nil {
		return fmt.Errorf("failed to create monitor: %w", err)
	}

	formatter := newFormatter(cfg, c.format, false)

	// Setup signal handling
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := mon.Start(ctx); err != nil {
		return fmt.Errorf("failed to start monitor: %w", err)
	}

	// Clear screen and display initial header
	if c.clearScreen {
		fmt.Print("\033[2J\033[H")
	}

	fmt.Println("Claude Compass - Press Ctrl+C to stop")
	fmt.Printf("Stats: %s | Refresh: %s | Alerts at %.0f%%\n",
		cfg.StatsPath, refresh, cfg.Notifications.Threshold)
	fmt.Println(strings.Repeat("─", 60))
	fmt.Println()

	// Process updates
	for {
		select {
		case <-sigChan:
			fmt.Print("\n\n")
			fmt.Println("Stopping monitor...")
			if err := mon.Stop(); err != nil {
				log.Error("failed to stop monitor", "error", err)
			}
			return nil

		case update := <-mon.Updates():
			c.displayUpdate(formatter, update)
		}
	}
}

// displayUpdate renders a live monitoring update.
func (c *watchCommand) displayUpdate(formatter display.Formatter, update monitor.Update) {
	// Move cursor to line 5 (after header) and clear from cursor to end
	if c.clearScreen {
		fmt.Print("\033[5;1H\033[J")
	}

	if update.Err != nil {
		fmt.Printf("refresh failed: %v\n", update.Err)
		if update.Snapshot == nil {
			return
		}
		fmt.Println("showing last successful snapshot:")
	}

	if err := formatter.FormatSnapshot(os.Stdout, update.Snapshot); err != nil {
		fmt.Fprintf(os.Stderr, "display error: %v\n", err)
	}

	if update.Alert != nil {
		fmt.Printf("\n⚠ %s: %s\n", update.Alert.Title, update.Alert.Body)
	}
}

// remoteCommand fetches account-level usage from the usage API.
type remoteCommand struct {
	format     string
	save       bool
	timeout    time.Duration
	configPath string
}

// Execute runs the remote command.
func (c *remoteCommand) Execute() error {
	cfg, err := loadConfig(c.configPath)
	if err != nil {
		return err
	}

	log := logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})

	client := webusage.NewClient(webusage.Config{
		BaseURL: cfg.Remote.BaseURL,
		Token:   os.Getenv(cfg.Remote.TokenEnv),
		Timeout: c.timeout,
	}, log)

	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	usage, err := client.Fetch(ctx)
	if err != nil {
		if errors.Is(err, webusage.ErrNoCredentials) {
			fmt.Printf("No access token found; set %s to enable remote usage\n", cfg.Remote.TokenEnv)
			return nil
		}
		return fmt.Errorf("failed to fetch remote usage: %w", err)
	}

	if c.save {
		if err := c.persist(cfg, usage, log); err != nil {
			log.Error("failed to persist remote usage", "error", err)
		}
	}

	formatter := newFormatter(cfg, c.format, false)
	return formatter.FormatRemote(os.Stdout, usage)
}

// persist stores the fetched usage in the local store.
func (c *remoteCommand) persist(cfg *config.Config, usage *webusage.Usage, log logger.Logger) error {
	st, err := store.Open(cfg.Storage.Path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			log.Error("failed to close store", "error", closeErr)
		}
	}()

	return st.SaveRemoteUsage(usage)
}
