package identity

import "errors"

// Public, stable errors for callers.
var (
	// ErrNotSeeded is returned by Update when the singleton row does not exist yet.
	ErrNotSeeded = errors.New("admin credential not seeded")
)
