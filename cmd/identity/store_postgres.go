package identity

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"portfolio/cmd/security/password"
)

// singletonID is the fixed key of the one admin credential row.
const singletonID = 1

// PostgresStore implements Store using PostgreSQL (admin_credentials).
type PostgresStore struct {
	pool   *pgxpool.Pool
	hasher password.Config
	def    Defaults
}

// NewPostgresStore creates a Postgres-backed credential store.
func NewPostgresStore(pool *pgxpool.Pool, hasher password.Config, def Defaults) (*PostgresStore, error) {
	if pool == nil {
		return nil, errors.New("identity: nil db pool")
	}
	return &PostgresStore{pool: pool, hasher: hasher, def: def}, nil
}

// InitSchema creates the backing table if absent.
func (s *PostgresStore) InitSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS admin_credentials (
			id INTEGER PRIMARY KEY,
			username TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)
	`)
	return err
}

// Get loads the singleton credential row.
// A missing row answers with the configured default identity without persisting.
func (s *PostgresStore) Get(ctx context.Context) (AdminCredential, error) {
	var cred AdminCredential

	err := s.pool.QueryRow(ctx, `
		SELECT username, password_hash, updated_at
		FROM admin_credentials
		WHERE id = $1
	`, singletonID).Scan(&cred.Username, &cred.PasswordDigest, &cred.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return defaultCredential(s.hasher, s.def, time.Now().UTC())
	}
	if err != nil {
		return AdminCredential{}, err
	}

	return cred, nil
}

// Update overwrites the singleton row's username, digest, and updated_at.
func (s *PostgresStore) Update(ctx context.Context, username, passwordDigest string, now time.Time) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE admin_credentials
		SET username = $1, password_hash = $2, updated_at = $3
		WHERE id = $4
	`, username, passwordDigest, now, singletonID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotSeeded
	}
	return nil
}

// EnsureSeeded inserts the default identity if (and only if) no row exists.
// ON CONFLICT DO NOTHING keeps concurrent boots race-free.
func (s *PostgresStore) EnsureSeeded(ctx context.Context, now time.Time) error {
	cred, err := defaultCredential(s.hasher, s.def, now)
	if err != nil {
		return err
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO admin_credentials (id, username, password_hash, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO NOTHING
	`, singletonID, cred.Username, cred.PasswordDigest, cred.UpdatedAt)
	return err
}
