// Package config provides configuration management for claude-compass.
//
// Configuration is loaded from multiple sources with the following precedence:
// 1. Environment variables (highest priority)
// 2. Configuration file
// 3. Default values (lowest priority)
//
// Example usage:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("stats path: %s\n", cfg.StatsPath)
package config

import (
	"time"
)

// Config represents the complete application configuration.
//
// Invariants (established by Normalize):
// - Refresh.Interval is within [MinRefreshInterval, MaxRefreshInterval]
// - Billing.ResetWeekday is within [1,7]
// - Billing.ResetHour is within [0,23]
// - Notifications.Threshold is within [0,100]
// - Billing.WeeklyMessageBudget is >= 0.
type Config struct {
	// StatsPath is the stats cache file to read.
	StatsPath string `yaml:"stats_path"`

	// Refresh controls the periodic rebuild schedule.
	Refresh RefreshConfig `yaml:"refresh"`

	// Billing describes the weekly reset schedule and budget.
	Billing BillingConfig `yaml:"billing"`

	// Notifications controls usage alerts.
	Notifications NotificationConfig `yaml:"notifications"`

	// Display settings.
	Display DisplayConfig `yaml:"display"`

	// Storage settings.
	Storage StorageConfig `yaml:"storage"`

	// Remote usage fetch settings.
	Remote RemoteConfig `yaml:"remote"`

	// Logging settings.
	Logging LoggingConfig `yaml:"logging"`
}

// RefreshConfig contains refresh scheduling settings.
type RefreshConfig struct {
	// How often to rebuild the snapshot.
	Interval time.Duration `yaml:"interval"`
}

// BillingConfig describes the weekly reset boundary and message budget.
type BillingConfig struct {
	// Day of week the weekly allowance resets, 1..7 with 1 = Sunday.
	ResetWeekday int `yaml:"reset_weekday"`

	// Hour of day the weekly allowance resets, 0..23.
	ResetHour int `yaml:"reset_hour"`

	// Weekly message budget; 0 means auto-estimate from history.
	WeeklyMessageBudget int `yaml:"weekly_message_budget"`
}

// NotificationConfig controls usage alerting.
type NotificationConfig struct {
	// Enabled gates alert delivery entirely.
	Enabled bool `yaml:"enabled"`

	// Threshold is the pacing percentage at which alerts begin.
	Threshold float64 `yaml:"threshold"`
}

// DisplayConfig contains display-related settings.
type DisplayConfig struct {
	// Default output format (table, json, simple).
	DefaultFormat string `yaml:"default_format"`

	// Show per-model token counts in breakdowns.
	ShowTokenCounts bool `yaml:"show_token_counts"`
}

// StorageConfig contains storage-related settings.
type StorageConfig struct {
	// Path to the BoltDB snapshot store.
	Path string `yaml:"path"`
}

// RemoteConfig contains remote usage fetch settings.
type RemoteConfig struct {
	// Enabled turns on the companion remote usage fetch.
	Enabled bool `yaml:"enabled"`

	// BaseURL of the usage API.
	BaseURL string `yaml:"base_url"`

	// TokenEnv names the environment variable holding the access token.
	TokenEnv string `yaml:"token_env"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	// Log level (debug, info, warn, error).
	Level string `yaml:"level"`

	// Log output destination (stdout, stderr, file path).
	Output string `yaml:"output"`

	// Log format (text, json).
	Format string `yaml:"format"`
}

// Refresh interval bounds.
const (
	DefaultRefreshInterval = 60 * time.Second
	MinRefreshInterval     = 10 * time.Second
	MaxRefreshInterval     = 600 * time.Second
)

// Default notification thresholds.
const (
	DefaultWarningThreshold = 80.0
)

// Normalize clamps out-of-range numeric settings into their valid ranges.
// The engine is never invoked with unclamped values.
func (c *Config) Normalize() {
	if c.Refresh.Interval < MinRefreshInterval {
		c.Refresh.Interval = MinRefreshInterval
	}
	if c.Refresh.Interval > MaxRefreshInterval {
		c.Refresh.Interval = MaxRefreshInterval
	}

	if c.Billing.ResetWeekday < 1 {
		c.Billing.ResetWeekday = 1
	}
	if c.Billing.ResetWeekday > 7 {
		c.Billing.ResetWeekday = 7
	}
	if c.Billing.ResetHour < 0 {
		c.Billing.ResetHour = 0
	}
	if c.Billing.ResetHour > 23 {
		c.Billing.ResetHour = 23
	}
	if c.Billing.WeeklyMessageBudget < 0 {
		c.Billing.WeeklyMessageBudget = 0
	}

	if c.Notifications.Threshold < 0 {
		c.Notifications.Threshold = 0
	}
	if c.Notifications.Threshold > 100 {
		c.Notifications.Threshold = 100
	}
}

// Validate checks the configuration's enumerated settings.
//
// Returns an error if:
//   - StatsPath is empty
//   - Display format is not table, json, or simple
//   - Log level or format is not recognized
func (c *Config) Validate() error {
	if c.StatsPath == "" {
		return ErrNoStatsPath
	}

	validFormats := map[string]bool{
		"table":  true,
		"json":   true,
		"simple": true,
	}
	if !validFormats[c.Display.DefaultFormat] {
		return ErrInvalidDisplayFormat
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.Logging.Level] {
		return ErrInvalidLogLevel
	}

	validLogFormats := map[string]bool{
		"text": true,
		"json": true,
	}
	if !validLogFormats[c.Logging.Format] {
		return ErrInvalidLogFormat
	}

	return nil
}
