package identity

import (
	"context"
	"time"

	"portfolio/cmd/security/password"
)

// AdminCredential is the canonical admin identity.
// Exactly one instance exists; it is created at first boot and only ever updated.
type AdminCredential struct {
	Username       string
	PasswordDigest string
	UpdatedAt      time.Time
}

// Defaults is the configured fallback identity used to seed the store on
// first ever boot and to answer reads against an unseeded store.
type Defaults struct {
	Username string
	Password string
}

// Store persists the singleton admin credential.
type Store interface {
	// Get returns the current credential. An unseeded store answers with the
	// default identity (digest derived from the default password) without
	// persisting anything.
	Get(ctx context.Context) (AdminCredential, error)

	// Update overwrites the singleton row. Callers must have validated the
	// username and re-authenticated the admin beforehand.
	Update(ctx context.Context, username, passwordDigest string, now time.Time) error

	// EnsureSeeded inserts the default identity if no row exists. Idempotent;
	// called once at startup.
	EnsureSeeded(ctx context.Context, now time.Time) error
}

// defaultCredential derives the fallback credential from configured defaults.
func defaultCredential(hasher password.Config, def Defaults, now time.Time) (AdminCredential, error) {
	digest, err := hasher.Hash(def.Password)
	if err != nil {
		return AdminCredential{}, err
	}
	return AdminCredential{
		Username:       def.Username,
		PasswordDigest: digest,
		UpdatedAt:      now,
	}, nil
}
