package config

import (
	"os"
	"path/filepath"

	"github.com/ferrovax/claude-compass/pkg/stats"
)

// Default returns a configuration with sensible default values.
//
// The billing defaults match the common subscription schedule: the weekly
// allowance resets Friday at 19:00 local time.
func Default() *Config {
	return &Config{
		StatsPath: stats.DefaultPath(),
		Refresh: RefreshConfig{
			Interval: DefaultRefreshInterval,
		},
		Billing: BillingConfig{
			ResetWeekday:        6, // Friday
			ResetHour:           19,
			WeeklyMessageBudget: 0, // auto-estimate
		},
		Notifications: NotificationConfig{
			Enabled:   true,
			Threshold: DefaultWarningThreshold,
		},
		Display: DisplayConfig{
			DefaultFormat:   "table",
			ShowTokenCounts: true,
		},
		Storage: StorageConfig{
			Path: defaultStorePath(),
		},
		Remote: RemoteConfig{
			Enabled:  false,
			BaseURL:  "https://api.anthropic.com",
			TokenEnv: "CLAUDE_COMPASS_TOKEN",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Output: "stderr",
			Format: "text",
		},
	}
}

// defaultStorePath returns the default snapshot store path,
// ~/.config/claude-compass/compass.db.
func defaultStorePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "./compass.db"
	}
	return filepath.Join(homeDir, ".config", "claude-compass", "compass.db")
}

// defaultConfigPath returns the default configuration file path,
// ~/.config/claude-compass/config.yaml.
func defaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "./config.yaml"
	}
	return filepath.Join(homeDir, ".config", "claude-compass", "config.yaml")
}
