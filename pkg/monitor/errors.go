package monitor

import "errors"

// Common errors returned by the monitor package.
var (
	// ErrNoLoader is returned when no stats loader is provided.
	ErrNoLoader = errors.New("stats loader is required")

	// ErrNoNotifier is returned when no notifier is provided.
	ErrNoNotifier = errors.New("notifier is required")

	// ErrAlreadyStarted is returned when Start is called twice.
	ErrAlreadyStarted = errors.New("monitor already started")

	// ErrNotStarted is returned when Stop is called before Start.
	ErrNotStarted = errors.New("monitor not started")
)
