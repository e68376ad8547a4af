package password

import "errors"

// Public, stable errors for callers.
var (
	ErrPasswordEmpty = errors.New("password empty")
	ErrInvalidSalt   = errors.New("invalid salt")
)
