package session

import (
	"os"
	"time"

	"portfolio/cmd/security/token"
)

// Config defines runtime configuration for the session subsystem.
//
// It controls the cookie transport, token max age, and the process-wide MAC
// secret. The struct is explicit and environment-driven so deployments can
// tune it without code changes.
type Config struct {
	// CookieName is the name of the admin session cookie.
	CookieName string

	// MaxAge bounds token age during verification and is also set as the
	// cookie Max-Age.
	MaxAge time.Duration

	// Secret is the process-wide MAC key. Read-only after startup.
	Secret []byte

	// SecretGenerated reports whether the secret was generated at startup
	// (dev mode) rather than configured.
	SecretGenerated bool
}

// DefaultConfig returns the production defaults: a 24h "admin_auth" cookie.
func DefaultConfig() Config {
	return Config{
		CookieName: "admin_auth",
		MaxAge:     24 * time.Hour,
	}
}

// LoadConfigFromEnv loads session configuration from environment variables.
//
// Optional:
//   - PORTFOLIO_AUTH_COOKIE
//   - PORTFOLIO_AUTH_MAX_AGE (Go duration string)
//   - PORTFOLIO_SESSION_SECRET (generated when absent)
//
// Returns ErrConfig if configuration is invalid.
func LoadConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()

	if v := os.Getenv("PORTFOLIO_AUTH_COOKIE"); v != "" {
		cfg.CookieName = v
	}

	if v := os.Getenv("PORTFOLIO_AUTH_MAX_AGE"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return Config{}, ErrConfig
		}
		cfg.MaxAge = d
	}

	secret, generated, err := token.LoadOrGenerateSecret()
	if err != nil {
		return Config{}, err
	}
	cfg.Secret = secret
	cfg.SecretGenerated = generated

	return cfg, nil
}
