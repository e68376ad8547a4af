package account

import "errors"

// Public, stable errors for callers.
//
// ErrInvalidCredentials is deliberately undifferentiated: callers never learn
// whether the username or the password was wrong.
var (
	ErrInvalidCredentials = errors.New("invalid username or password")

	ErrUsernameTooShort         = errors.New("username too short")
	ErrCurrentPasswordIncorrect = errors.New("current password incorrect")
	ErrConfirmationRequired     = errors.New("new password and confirmation must both be provided")
	ErrPasswordTooShort         = errors.New("new password too short")
	ErrPasswordMismatch         = errors.New("new password and confirmation do not match")
)
