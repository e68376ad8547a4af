// Package account orchestrates admin login and credential rotation.
//
// It is the only writer of the admin credential: login checks it, Update
// rotates it and always re-issues a fresh session token, since a username
// change instantly invalidates every token bearing the old name.
package account

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"portfolio/cmd/identity"
	"portfolio/cmd/internal/auth/session"
	"portfolio/cmd/security/password"
)

const (
	minUsernameLen = 3
	minPasswordLen = 6
)

// Service composes the credential store, password hasher, and token codec.
type Service struct {
	log    *slog.Logger
	hasher password.Config
	creds  identity.Store
	codec  *session.Codec
}

// NewService constructs an account Service.
func NewService(log *slog.Logger, hasher password.Config, creds identity.Store, codec *session.Codec) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{log: log, hasher: hasher, creds: creds, codec: codec}
}

// UpdateInput carries the admin-settings form fields.
// NewUsername, NewPassword, and ConfirmPassword are optional; CurrentPassword
// is always required.
type UpdateInput struct {
	CurrentPassword string
	NewUsername     string
	NewPassword     string
	ConfirmPassword string
}

// Login checks the supplied credentials and issues a session token.
//
// The username comparison is constant-time even though usernames are not
// secret: both checks always run, keeping the response-time profile uniform.
// Failures collapse into ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, username, pass string, now time.Time) (string, error) {
	cred, err := s.creds.Get(ctx)
	if err != nil {
		return "", err
	}

	usernameOK := subtle.ConstantTimeCompare([]byte(username), []byte(cred.Username)) == 1
	passwordOK := s.hasher.Verify(pass, cred.PasswordDigest)

	if !usernameOK || !passwordOK {
		s.log.Info("account.login.rejected")
		return "", ErrInvalidCredentials
	}

	s.log.Info("account.login.ok", "username", cred.Username)
	return s.codec.Issue(cred.Username, now), nil
}

// Update validates and applies a credential change, then issues a token bound
// to the effective username.
//
// Validation order is part of the contract: username length, then current
// password, then new-password presence pairing, then length, then match.
// Nothing is persisted unless every check passes.
func (s *Service) Update(ctx context.Context, in UpdateInput, now time.Time) (string, error) {
	cred, err := s.creds.Get(ctx)
	if err != nil {
		return "", err
	}

	username := strings.TrimSpace(in.NewUsername)
	if username == "" {
		username = cred.Username
	}
	if utf8.RuneCountInString(username) < minUsernameLen {
		return "", ErrUsernameTooShort
	}

	if !s.hasher.Verify(in.CurrentPassword, cred.PasswordDigest) {
		return "", ErrCurrentPasswordIncorrect
	}

	// New password and confirmation come as a pair or not at all.
	if (in.NewPassword != "") != (in.ConfirmPassword != "") {
		return "", ErrConfirmationRequired
	}

	digest := cred.PasswordDigest
	if in.NewPassword != "" {
		if utf8.RuneCountInString(in.NewPassword) < minPasswordLen {
			return "", ErrPasswordTooShort
		}
		if subtle.ConstantTimeCompare([]byte(in.NewPassword), []byte(in.ConfirmPassword)) != 1 {
			return "", ErrPasswordMismatch
		}
		digest, err = s.hasher.Hash(in.NewPassword)
		if err != nil {
			return "", err
		}
	}

	if err := s.creds.Update(ctx, username, digest, now); err != nil {
		return "", err
	}

	s.log.Info("account.updated", "username", username, "password_changed", in.NewPassword != "")
	return s.codec.Issue(username, now), nil
}
