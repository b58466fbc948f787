package store

import "errors"

var (
	// ErrUnavailable means the database could not be opened or has gone
	// away. Fatal to the app; the UI shows a full-page error.
	ErrUnavailable = errors.New("store unavailable")

	// ErrNotFound is returned by Get, Delete and PutIf for an absent id.
	ErrNotFound = errors.New("application not found")

	// ErrDuplicateKey is returned by Add when the id already exists.
	ErrDuplicateKey = errors.New("duplicate application id")

	// ErrConflict is returned by PutIf when the stored record changed
	// since the caller read it.
	ErrConflict = errors.New("application modified concurrently")
)
