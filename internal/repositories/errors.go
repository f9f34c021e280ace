package repositories

import "errors"

var (
	// ErrNotFound is returned when a specific record is not found.
	ErrNotFound = errors.New("requested record not found")

	// ErrConflict is returned when an operation collides with existing state,
	// e.g. starting a download run while one is already active.
	ErrConflict = errors.New("operation conflicts with current state")
)
