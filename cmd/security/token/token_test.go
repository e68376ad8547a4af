package token

import (
	"errors"
	"testing"
)

func TestSignHMACSHA256Hex_Stable(t *testing.T) {
	t.Parallel()

	key := []byte("0123456789abcdef0123456789abcdef")
	a := SignHMACSHA256Hex("arjun:1700000000", key)
	b := SignHMACSHA256Hex("arjun:1700000000", key)
	if a != b {
		t.Fatalf("signature must be deterministic for same key and payload")
	}
	if len(a) != 64 {
		t.Fatalf("signature hex length = %d, want 64", len(a))
	}
	if c := SignHMACSHA256Hex("arjun:1700000001", key); c == a {
		t.Fatalf("different payloads must not collide")
	}
	if d := SignHMACSHA256Hex("arjun:1700000000", []byte("another-key-another-key-another!")); d == a {
		t.Fatalf("different keys must not collide")
	}
}

func TestSecretFromEnv(t *testing.T) {
	t.Setenv(SecretEnvKey, "")
	if _, err := SecretFromEnv(32); !errors.Is(err, ErrSecretMissing) {
		t.Fatalf("expected ErrSecretMissing, got %v", err)
	}

	t.Setenv(SecretEnvKey, "short")
	if _, err := SecretFromEnv(32); !errors.Is(err, ErrSecretTooShort) {
		t.Fatalf("expected ErrSecretTooShort, got %v", err)
	}

	t.Setenv(SecretEnvKey, "0123456789abcdef0123456789abcdef")
	key, err := SecretFromEnv(32)
	if err != nil {
		t.Fatalf("SecretFromEnv: %v", err)
	}
	if string(key) != "0123456789abcdef0123456789abcdef" {
		t.Fatalf("unexpected key bytes: %q", key)
	}
}

func TestLoadOrGenerateSecret(t *testing.T) {
	t.Setenv(SecretEnvKey, "configured-secret-value-0123456789")
	key, generated, err := LoadOrGenerateSecret()
	if err != nil {
		t.Fatalf("LoadOrGenerateSecret: %v", err)
	}
	if generated {
		t.Fatalf("configured secret should not report generated")
	}
	if string(key) != "configured-secret-value-0123456789" {
		t.Fatalf("unexpected key bytes: %q", key)
	}

	t.Setenv(SecretEnvKey, "")
	k1, generated, err := LoadOrGenerateSecret()
	if err != nil {
		t.Fatalf("LoadOrGenerateSecret: %v", err)
	}
	if !generated {
		t.Fatalf("expected generated secret when env is empty")
	}
	if len(k1) != 2*GeneratedSecretBytes {
		t.Fatalf("generated key length = %d, want %d", len(k1), 2*GeneratedSecretBytes)
	}
	k2, _, err := LoadOrGenerateSecret()
	if err != nil {
		t.Fatalf("LoadOrGenerateSecret: %v", err)
	}
	if string(k1) == string(k2) {
		t.Fatalf("two generated secrets must differ")
	}
}
