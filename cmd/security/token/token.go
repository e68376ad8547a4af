package token

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"strings"
)

const (
	// SecretEnvKey is the env var name for the session MAC secret.
	// #nosec G101 -- not a credential; it's an environment variable name.
	SecretEnvKey = "PORTFOLIO_SESSION_SECRET"

	// GeneratedSecretBytes is the entropy of a generated dev secret.
	// The key handed to HMAC is the hex encoding (64 bytes).
	GeneratedSecretBytes = 32
)

// SignHMACSHA256Hex returns an HMAC-SHA256 hex digest of payload using key.
func SignHMACSHA256Hex(payload string, key []byte) string {
	m := hmac.New(sha256.New, key)
	_, _ = m.Write([]byte(payload))
	return hex.EncodeToString(m.Sum(nil))
}

// SecretFromEnv returns the configured secret bytes (trimmed), enforcing a
// minimum byte length.
// If the env var is missing/blank -> ErrSecretMissing.
// If too short -> ErrSecretTooShort.
func SecretFromEnv(minBytes int) ([]byte, error) {
	raw := strings.TrimSpace(os.Getenv(SecretEnvKey))
	if raw == "" {
		return nil, ErrSecretMissing
	}
	b := []byte(raw)
	if minBytes > 0 && len(b) < minBytes {
		return nil, ErrSecretTooShort
	}
	return b, nil
}

// SecretConfigured reports whether the env secret is present (non-empty after trim).
// Note: This does not enforce minimum length. Use SecretFromEnv for policy checks.
func SecretConfigured() bool {
	return strings.TrimSpace(os.Getenv(SecretEnvKey)) != ""
}

// LoadOrGenerateSecret returns the MAC key for this process.
// Behavior:
// - If PORTFOLIO_SESSION_SECRET is set (non-empty), that value is the key.
// - Otherwise a fresh random hex secret is generated. generated reports which
//   path was taken so the caller can log it; a generated secret means every
//   token dies with the process.
func LoadOrGenerateSecret() (key []byte, generated bool, err error) {
	if raw := strings.TrimSpace(os.Getenv(SecretEnvKey)); raw != "" {
		return []byte(raw), false, nil
	}

	buf := make([]byte, GeneratedSecretBytes)
	if _, err := rand.Read(buf); err != nil {
		return nil, false, fmt.Errorf("generate session secret: %w", err)
	}
	return []byte(hex.EncodeToString(buf)), true, nil
}
