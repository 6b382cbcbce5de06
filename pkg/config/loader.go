package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Loader provides methods for loading configuration from various sources.
type Loader interface {
	// Load loads configuration with the following precedence:
	// 1. Environment variables
	// 2. Configuration file
	// 3. Default values
	//
	// Returns the merged, normalized configuration or an error if
	// validation fails.
	Load() (*Config, error)

	// LoadFromFile loads configuration from a specific file, decoded over
	// a copy of the defaults.
	LoadFromFile(path string) (*Config, error)
}

// loader implements the Loader interface.
type loader struct {
	configPath string
}

// NewLoader creates a new configuration loader.
//
// If configPath is empty, the CLAUDE_COMPASS_CONFIG environment variable is
// consulted, then the standard locations:
// 1. ./config.yaml (current directory)
// 2. ~/.config/claude-compass/config.yaml.
func NewLoader(configPath string) Loader {
	return &loader{
		configPath: configPath,
	}
}

// Load implements Loader.Load.
func (l *loader) Load() (*Config, error) {
	cfg := Default()

	configPath := l.configPath
	if configPath == "" {
		configPath = os.Getenv("CLAUDE_COMPASS_CONFIG")
	}
	if configPath == "" {
		configPath = l.findConfigFile()
	}

	if configPath != "" {
		fileCfg, err := l.LoadFromFile(configPath)
		if err != nil {
			// An explicitly specified file must load; a discovered one
			// falls back to defaults.
			if l.configPath != "" {
				return nil, fmt.Errorf("failed to load config from %s: %w", configPath, err)
			}
		} else {
			cfg = fileCfg
		}
	}

	cfg = applyEnvVars(cfg)
	cfg.Normalize()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// LoadFromFile implements Loader.LoadFromFile.
//
// The file is decoded over a copy of the defaults: settings the file omits
// keep their default values, and explicitly configured zero values (such as
// reset_hour: 0 or notifications.enabled: false) are honored as written.
func (l *loader) LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path) // nolint:gosec
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidYAML, err)
	}

	return cfg, nil
}

// findConfigFile searches standard locations, returning empty when none exist.
func (l *loader) findConfigFile() string {
	candidates := []string{
		"./config.yaml",
		defaultConfigPath(),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// applyEnvVars applies environment variable overrides.
//
// Supported environment variables:
//   - CLAUDE_COMPASS_STATS: Stats cache path
//   - CLAUDE_COMPASS_DB: Snapshot store path
//   - CLAUDE_COMPASS_LOG_LEVEL: Log level
func applyEnvVars(cfg *Config) *Config {
	result := *cfg

	if statsPath := os.Getenv("CLAUDE_COMPASS_STATS"); statsPath != "" {
		result.StatsPath = statsPath
	}
	if dbPath := os.Getenv("CLAUDE_COMPASS_DB"); dbPath != "" {
		result.Storage.Path = dbPath
	}
	if logLevel := os.Getenv("CLAUDE_COMPASS_LOG_LEVEL"); logLevel != "" {
		result.Logging.Level = logLevel
	}

	return &result
}

// Load is a convenience function that creates a loader and loads configuration.
func Load() (*Config, error) {
	return NewLoader("").Load()
}

// LoadFromFile is a convenience function that loads configuration from a file.
func LoadFromFile(path string) (*Config, error) {
	return NewLoader(path).Load()
}

// Save writes the configuration to a YAML file.
//
// Creates parent directories if they don't exist. The file is created with
// 0600 permissions.
func Save(cfg *Config, path string) error {
	normalized := *cfg
	normalized.Normalize()
	if err := normalized.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(&normalized)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
