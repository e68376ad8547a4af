package session

import (
	"crypto/hmac"
	"encoding/base64"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"portfolio/cmd/security/token"
)

// Claims is the decoded content of a valid token.
type Claims struct {
	Username string
	IssuedAt time.Time
}

// Codec builds and checks signed session tokens.
// It is pure computation over the process secret; safe for concurrent use.
type Codec struct {
	secret []byte
}

// NewCodec constructs a Codec over the process-wide MAC secret.
func NewCodec(secret []byte) *Codec {
	return &Codec{secret: secret}
}

// Issue returns a token binding username to the current time.
func (c *Codec) Issue(username string, now time.Time) string {
	payload := username + ":" + strconv.FormatInt(now.Unix(), 10)
	sig := token.SignHMACSHA256Hex(payload, c.secret)
	return base64.URLEncoding.EncodeToString([]byte(payload + ":" + sig))
}

// Parse decodes a token without checking the signature or freshness.
// It returns ErrMalformed for anything that does not decode into exactly
// username, numeric timestamp, and signature.
func (c *Codec) Parse(tok string) (Claims, error) {
	username, tsRaw, _, err := c.split(tok)
	if err != nil {
		return Claims{}, err
	}

	ts, err := strconv.ParseInt(tsRaw, 10, 64)
	if err != nil {
		return Claims{}, ErrMalformed
	}

	return Claims{Username: username, IssuedAt: time.Unix(ts, 0)}, nil
}

// Verify checks a token end to end: signature, current username, and age.
//
// The error reports why verification failed so callers can log it; the
// user-facing behavior must stay a uniform rejection.
//
// Age policy: only the upper bound is enforced (age <= maxAge). A timestamp
// in the future is accepted.
func (c *Codec) Verify(tok, currentUsername string, maxAge time.Duration, now time.Time) (Claims, error) {
	username, tsRaw, sig, err := c.split(tok)
	if err != nil {
		return Claims{}, err
	}

	expected := token.SignHMACSHA256Hex(username+":"+tsRaw, c.secret)
	if !hmac.Equal([]byte(sig), []byte(expected)) {
		return Claims{}, ErrBadSignature
	}

	if username != currentUsername {
		return Claims{}, ErrStaleUsername
	}

	ts, err := strconv.ParseInt(tsRaw, 10, 64)
	if err != nil {
		return Claims{}, ErrMalformed
	}

	age := now.Unix() - ts
	if age > int64(maxAge/time.Second) {
		return Claims{}, ErrExpired
	}

	return Claims{Username: username, IssuedAt: time.Unix(ts, 0)}, nil
}

// split decodes the transport encoding and separates the three fields.
// Usernames are not barred from containing ':'; a surplus separator leaks
// into the signature field and verification then fails on the MAC check.
func (c *Codec) split(tok string) (username, tsRaw, sig string, err error) {
	raw, decErr := base64.URLEncoding.DecodeString(tok)
	if decErr != nil || !utf8.Valid(raw) {
		return "", "", "", ErrMalformed
	}

	parts := strings.SplitN(string(raw), ":", 3)
	if len(parts) != 3 {
		return "", "", "", ErrMalformed
	}

	return parts[0], parts[1], parts[2], nil
}
