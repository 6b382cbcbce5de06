package watcher

import "errors"

// Common errors returned by the watcher package.
var (
	// ErrNoPath is returned when no file path is configured.
	ErrNoPath = errors.New("no watch path specified")

	// ErrInvalidPath is returned when the watch directory does not exist.
	ErrInvalidPath = errors.New("watch directory does not exist")

	// ErrAlreadyStarted is returned when Start is called twice.
	ErrAlreadyStarted = errors.New("watcher already started")

	// ErrNotStarted is returned when Stop is called before Start.
	ErrNotStarted = errors.New("watcher not started")

	// ErrWatcherClosed is returned when using a closed watcher.
	ErrWatcherClosed = errors.New("watcher is closed")
)
