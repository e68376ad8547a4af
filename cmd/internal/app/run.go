package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
)

// Run is the CLI entrypoint used by cmd/portfolio.
// It returns an error instead of calling os.Exit to keep defers effective.
func Run() error {
	// Local development convenience; a missing .env is not an error.
	_ = godotenv.Load()

	cfg := LoadConfig()
	log := NewLogger(os.Stdout, cfg)

	if err := ValidateSecurityConfig(cfg); err != nil {
		log.Error("security.config.invalid", "err", err)
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	a, err := New(ctx, cfg, log)
	if err != nil {
		return err
	}

	return a.Run(ctx)
}
