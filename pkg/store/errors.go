package store

import "errors"

// Common errors returned by the store package.
var (
	// ErrNoSnapshot is returned when no snapshot has been stored yet.
	ErrNoSnapshot = errors.New("no snapshot stored")

	// ErrNoRemoteUsage is returned when no remote usage report has been
	// stored yet.
	ErrNoRemoteUsage = errors.New("no remote usage stored")

	// ErrNilValue is returned when attempting to store a nil value.
	ErrNilValue = errors.New("cannot store nil value")
)
