package identity

import (
	"context"
	"sync"
	"time"

	"portfolio/cmd/security/password"
)

// MemoryStore is a dev-only fallback when DB is not configured.
// It honors the same seeding contract as the Postgres store.
type MemoryStore struct {
	hasher password.Config
	def    Defaults

	mu     sync.Mutex
	seeded bool
	cred   AdminCredential
}

// NewMemoryStore constructs an in-memory credential store.
func NewMemoryStore(hasher password.Config, def Defaults) *MemoryStore {
	return &MemoryStore{hasher: hasher, def: def}
}

// Get returns the current credential, or the computed default when unseeded.
func (s *MemoryStore) Get(ctx context.Context) (AdminCredential, error) {
	if err := ctx.Err(); err != nil {
		return AdminCredential{}, err
	}

	s.mu.Lock()
	if s.seeded {
		cred := s.cred
		s.mu.Unlock()
		return cred, nil
	}
	s.mu.Unlock()

	// Unseeded read: answer with the default, do not persist.
	return defaultCredential(s.hasher, s.def, time.Now().UTC())
}

// Update overwrites the singleton credential.
func (s *MemoryStore) Update(ctx context.Context, username, passwordDigest string, now time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.seeded {
		return ErrNotSeeded
	}
	s.cred = AdminCredential{
		Username:       username,
		PasswordDigest: passwordDigest,
		UpdatedAt:      now,
	}
	return nil
}

// EnsureSeeded inserts the default identity once.
func (s *MemoryStore) EnsureSeeded(ctx context.Context, now time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.seeded {
		return nil
	}
	cred, err := defaultCredential(s.hasher, s.def, now)
	if err != nil {
		return err
	}
	s.cred = cred
	s.seeded = true
	return nil
}
