package password

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

// Hash hashes a password with a fresh random salt and returns an encoded
// digest string.
// Format:
// <salt_hex>$<key_hex>
//
// Two calls for the same password produce distinct digests (distinct salts).
func (c Config) Hash(password string) (string, error) {
	if password == "" {
		return "", ErrPasswordEmpty
	}

	salt := make([]byte, c.Params.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("salt: %w", err)
	}

	return c.encode(password, salt), nil
}

// HashWithSalt derives a digest for password using an existing hex salt.
// Given a fixed salt the result is deterministic; Verify relies on this.
func (c Config) HashWithSalt(password, saltHex string) (string, error) {
	if password == "" {
		return "", ErrPasswordEmpty
	}

	salt, err := hex.DecodeString(saltHex)
	if err != nil || len(salt) == 0 {
		return "", ErrInvalidSalt
	}

	return c.encode(password, salt), nil
}

// Verify checks whether password matches the stored digest.
//
// A malformed digest (missing separator, bad salt hex) verifies as false
// rather than erroring: stored digests are untrusted input here.
// The key comparison is constant-time.
func (c Config) Verify(password, storedDigest string) bool {
	saltHex, expectedHex, ok := strings.Cut(storedDigest, "$")
	if !ok {
		return false
	}

	salt, err := hex.DecodeString(saltHex)
	if err != nil || len(salt) == 0 {
		return false
	}
	// Anti-DoS boundary: refuse pathological salt sizes from attacker-controlled
	// digest strings.
	if len(salt) > 64 {
		return false
	}

	key := derive(password, salt, c.Params.Iterations, c.Params.KeyLength)
	computedHex := hex.EncodeToString(key)

	return subtle.ConstantTimeCompare([]byte(computedHex), []byte(expectedHex)) == 1
}

func (c Config) encode(password string, salt []byte) string {
	key := derive(password, salt, c.Params.Iterations, c.Params.KeyLength)
	return hex.EncodeToString(salt) + "$" + hex.EncodeToString(key)
}

func derive(password string, salt []byte, iterations, keyLen int) []byte {
	return pbkdf2.Key([]byte(password), salt, iterations, keyLen, sha256.New)
}
