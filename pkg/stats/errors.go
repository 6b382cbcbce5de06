package stats

import "errors"

// Common errors returned by the stats package.
var (
	// ErrStatsNotFound is returned when the stats cache file does not exist.
	ErrStatsNotFound = errors.New("stats cache not found")

	// ErrStatsMalformed is returned when the stats cache exists but cannot
	// be parsed or fails validation.
	ErrStatsMalformed = errors.New("stats cache malformed")

	// ErrStatsTooLarge is returned when the stats cache exceeds the size limit.
	ErrStatsTooLarge = errors.New("stats cache exceeds maximum size")

	// ErrNegativeCount is returned when any count in the cache is negative.
	ErrNegativeCount = errors.New("invalid count: must be non-negative")

	// ErrInvalidDateKey is returned when a per-day entry has a date key that
	// is not in yyyy-MM-dd form.
	ErrInvalidDateKey = errors.New("invalid date key: must be yyyy-MM-dd")

	// ErrInvalidHourKey is returned when an hour-count key is not an integer
	// in [0,23].
	ErrInvalidHourKey = errors.New("invalid hour key: must be 0-23")
)
