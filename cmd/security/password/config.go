package password

import (
	"fmt"
	"os"
	"strconv"
)

// Params controls PBKDF2 derivation cost.
type Params struct {
	Iterations int
	SaltLength int
	KeyLength  int
}

// Config is the single configuration surface for this package.
type Config struct {
	Params Params
}

// DefaultConfig returns the baseline derivation parameters.
// 200k iterations of HMAC-SHA256 keeps login around the hundreds-of-milliseconds
// mark on commodity hardware, which is the intent for an interactive admin login.
func DefaultConfig() Config {
	return Config{
		Params: Params{
			Iterations: 200_000,
			SaltLength: 16,
			KeyLength:  32,
		},
	}
}

// FromEnv loads config from environment variables.
//
// Env surface:
// - PORTFOLIO_PBKDF2_ITERATIONS
// - PORTFOLIO_PBKDF2_SALT_LEN
// - PORTFOLIO_PBKDF2_KEY_LEN
func FromEnv() (Config, error) {
	cfg := DefaultConfig()

	if v, ok := os.LookupEnv("PORTFOLIO_PBKDF2_ITERATIONS"); ok {
		n, err := atoiBounded(v, 10_000, 10_000_000)
		if err != nil {
			return Config{}, fmt.Errorf("PORTFOLIO_PBKDF2_ITERATIONS: %w", err)
		}
		cfg.Params.Iterations = n
	}

	if v, ok := os.LookupEnv("PORTFOLIO_PBKDF2_SALT_LEN"); ok {
		n, err := atoiBounded(v, 8, 64)
		if err != nil {
			return Config{}, fmt.Errorf("PORTFOLIO_PBKDF2_SALT_LEN: %w", err)
		}
		cfg.Params.SaltLength = n
	}

	if v, ok := os.LookupEnv("PORTFOLIO_PBKDF2_KEY_LEN"); ok {
		n, err := atoiBounded(v, 16, 64)
		if err != nil {
			return Config{}, fmt.Errorf("PORTFOLIO_PBKDF2_KEY_LEN: %w", err)
		}
		cfg.Params.KeyLength = n
	}

	return cfg, nil
}

func atoiBounded(v string, min, max int) (int, error) {
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("not an integer: %q", v)
	}
	if n < min || n > max {
		return 0, fmt.Errorf("out of range [%d..%d]: %d", min, max, n)
	}
	return n, nil
}
