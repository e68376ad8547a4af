package app

import (
	"errors"

	"portfolio/cmd/security/token"
)

// ValidateSecurityConfig enforces the deployment security policy at startup.
// With PORTFOLIO_REQUIRE_SESSION_SECRET=true a generated dev secret is not
// acceptable: the operator must provide a real one, or the process refuses
// to start.
func ValidateSecurityConfig(cfg Config) error {
	if !cfg.RequireSessionSecret {
		return nil
	}

	// Minimum 32 bytes for an HMAC-SHA256 key, measured in bytes because the
	// secret is used as raw key material.
	if _, err := token.SecretFromEnv(32); err != nil {
		switch {
		case errors.Is(err, token.ErrSecretMissing):
			return errors.New("security policy: PORTFOLIO_REQUIRE_SESSION_SECRET=true but PORTFOLIO_SESSION_SECRET is missing")
		case errors.Is(err, token.ErrSecretTooShort):
			return errors.New("security policy: PORTFOLIO_REQUIRE_SESSION_SECRET=true but PORTFOLIO_SESSION_SECRET is too short (min 32 bytes)")
		default:
			return err
		}
	}

	if !token.SecretConfigured() {
		return errors.New("security policy: PORTFOLIO_REQUIRE_SESSION_SECRET=true but no session secret is configured")
	}

	return nil
}
