package session

import "errors"

var (
	// ErrMalformed is returned when a token cannot be decoded at all:
	// bad base64, non-UTF8 content, wrong field count, non-numeric timestamp.
	ErrMalformed = errors.New("malformed token")

	// ErrBadSignature is returned when the signature does not verify against
	// the current process secret (tampered payload or rotated secret).
	ErrBadSignature = errors.New("bad token signature")

	// ErrStaleUsername is returned when the embedded username no longer matches
	// the current admin username. This is what kills old tokens after a rename.
	ErrStaleUsername = errors.New("stale token username")

	// ErrExpired is returned when the token is older than the configured max age.
	ErrExpired = errors.New("token expired")

	// ErrUnauthorized is returned by the guard for any request that is not
	// authenticated as admin, regardless of the underlying reason.
	ErrUnauthorized = errors.New("admin login required")

	// ErrConfig is returned for invalid configuration.
	ErrConfig = errors.New("invalid config")
)
