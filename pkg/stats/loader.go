package stats

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ferrovax/claude-compass/pkg/logger"
)

// MaxFileSize is the maximum allowed stats cache size (50MB).
// Larger files are rejected to prevent memory exhaustion.
const MaxFileSize = 50 * 1024 * 1024

// Loader reads the stats cache from disk.
type Loader interface {
	// Load reads and parses the stats cache.
	//
	// Returns:
	//   - The parsed cache
	//   - ErrStatsNotFound if the file does not exist
	//   - ErrStatsMalformed (wrapped) if the file cannot be parsed or
	//     fails validation
	//
	// Thread-safety: safe to call concurrently; the loader holds no state.
	Load() (*StatsCache, error)

	// Path returns the file path this loader reads from.
	Path() string
}

// fileLoader implements Loader against the local filesystem.
type fileLoader struct {
	path   string
	logger logger.Logger
}

// NewLoader creates a Loader for the given stats cache path.
func NewLoader(path string, log logger.Logger) Loader {
	if log == nil {
		log = logger.Noop()
	}
	return &fileLoader{
		path:   path,
		logger: log,
	}
}

// Load implements Loader.Load.
func (l *fileLoader) Load() (*StatsCache, error) {
	info, err := os.Stat(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrStatsNotFound, l.path)
		}
		return nil, fmt.Errorf("failed to stat stats cache: %w", err)
	}

	if info.Size() > MaxFileSize {
		return nil, fmt.Errorf("%w: size=%d, max=%d", ErrStatsTooLarge, info.Size(), MaxFileSize)
	}

	data, err := os.ReadFile(l.path) // nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("failed to read stats cache: %w", err)
	}

	var cache StatsCache
	if err := json.Unmarshal(data, &cache); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStatsMalformed, err)
	}

	if err := cache.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStatsMalformed, err)
	}

	l.logger.Debug("stats cache loaded",
		"path", l.path,
		"days", len(cache.DailyActivity),
		"models", len(cache.ModelUsage))

	return &cache, nil
}

// Path implements Loader.Path.
func (l *fileLoader) Path() string {
	return l.path
}

// DefaultPath returns the well-known stats cache location,
// ~/.claude/stats-cache.json.
func DefaultPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "./stats-cache.json"
	}
	return filepath.Join(homeDir, ".claude", "stats-cache.json")
}
