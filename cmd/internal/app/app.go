// Package app wires the portfolio server runtime: config, logging, storage,
// auth, and HTTP routes.
package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"portfolio/cmd/identity"
	"portfolio/cmd/internal/api"
	"portfolio/cmd/internal/auth/account"
	"portfolio/cmd/internal/auth/session"
	"portfolio/cmd/internal/content"
	"portfolio/cmd/internal/mail"
	"portfolio/cmd/internal/web"
	"portfolio/cmd/security/password"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store is a small app-level lifecycle abstraction so DB-backed resources
// can be closed gracefully.
type Store interface {
	Close(ctx context.Context) error
}

// nopStore is used for in-memory store mode.
type nopStore struct{}

func (nopStore) Close(_ context.Context) error { return nil }

// App owns the HTTP server wiring and the stores behind it.
type App struct {
	cfg Config
	log *slog.Logger

	store Store

	dbPool    *pgxpool.Pool
	dbEnabled bool

	metrics *Metrics

	web *web.Handler
	api *api.Handler
}

// New constructs a fully wired App instance from config and logger.
func New(ctx context.Context, cfg Config, log *slog.Logger) (*App, error) {
	hasher, err := password.FromEnv()
	if err != nil {
		return nil, err
	}

	st, dbPool, dbEnabled, creds, posts, err := newStores(ctx, cfg, log, hasher)
	if err != nil {
		return nil, err
	}

	sessCfg, err := session.LoadConfigFromEnv()
	if err != nil {
		_ = st.Close(ctx)
		return nil, err
	}
	if sessCfg.SecretGenerated {
		log.Warn("session.secret.generated", "hint", "set PORTFOLIO_SESSION_SECRET to keep logins valid across restarts")
	}

	codec := session.NewCodec(sessCfg.Secret)
	guard := session.NewGuard(log, sessCfg, codec, creds)
	acct := account.NewService(log, hasher, creds, codec)

	mailer := newMailer(cfg, log)

	apiHandler := api.NewHandler(log, posts, guard, mailer)
	webHandler, err := web.NewHandler(log, guard, acct, creds, posts)
	if err != nil {
		_ = st.Close(ctx)
		return nil, err
	}

	return &App{
		cfg:       cfg,
		log:       log,
		store:     st,
		dbPool:    dbPool,
		dbEnabled: dbEnabled,
		metrics:   NewMetrics(),
		web:       webHandler,
		api:       apiHandler,
	}, nil
}

// Run starts the HTTP server and blocks until context cancellation or fatal
// server error.
func (a *App) Run(ctx context.Context) error {
	mux := http.NewServeMux()
	registerHTTP(mux, a.log, a.cfg, a.dbPool, a.dbEnabled, a.metrics, a.web, a.api)

	srv := &http.Server{
		Addr:              a.cfg.HTTPAddr,
		Handler:           WithRequestLogging(WithSecurityHeaders(mux), a.log, a.metrics),
		ReadHeaderTimeout: nonZeroDuration(a.cfg.ReadHeaderTimeout, 5*time.Second),
		ReadTimeout:       nonZeroDuration(a.cfg.ReadTimeout, 15*time.Second),
		WriteTimeout:      nonZeroDuration(a.cfg.WriteTimeout, 15*time.Second),
		IdleTimeout:       nonZeroDuration(a.cfg.IdleTimeout, 60*time.Second),
		MaxHeaderBytes:    nonZeroInt(a.cfg.MaxHeaderBytes, 1<<20),
	}

	a.log.Info("server.start", "addr", a.cfg.HTTPAddr, "db_enabled", a.dbEnabled)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		a.log.Info("server.stop", "reason", "context_done")
	case err := <-errCh:
		a.log.Error("server.fail", "err", err)
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		a.log.Error("server.shutdown.fail", "err", err)
		return err
	}

	if err := a.store.Close(shutdownCtx); err != nil {
		a.log.Error("store.close.fail", "err", err)
	}

	a.log.Info("server.stopped")
	return nil
}

func nonZeroDuration(v, def time.Duration) time.Duration {
	if v <= 0 {
		return def
	}
	return v
}

func nonZeroInt(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

// newStores decides between Postgres-backed persistence and in-memory dev
// stores, runs schema setup, and seeds the admin credential on first boot.
func newStores(ctx context.Context, cfg Config, log *slog.Logger, hasher password.Config) (Store, *pgxpool.Pool, bool, identity.Store, content.Store, error) {
	defaults := identity.Defaults{
		Username: cfg.AdminUsername,
		Password: cfg.AdminPassword,
	}

	if cfg.DatabaseURL == "" {
		log.Info("db.disabled.inmemory_store")
		creds := identity.NewMemoryStore(hasher, defaults)
		if err := creds.EnsureSeeded(ctx, time.Now().UTC()); err != nil {
			return nil, nil, false, nil, nil, err
		}
		return nopStore{}, nil, false, creds, content.NewMemoryStore(), nil
	}

	pool, err := NewDBPool(ctx, cfg)
	if err != nil {
		return nil, nil, false, nil, nil, err
	}

	log.Info("db.enabled.postgres_store")

	creds, err := identity.NewPostgresStore(pool, hasher, defaults)
	if err != nil {
		pool.Close()
		return nil, nil, false, nil, nil, err
	}
	if err := creds.InitSchema(ctx); err != nil {
		pool.Close()
		return nil, nil, false, nil, nil, err
	}
	if err := creds.EnsureSeeded(ctx, time.Now().UTC()); err != nil {
		pool.Close()
		return nil, nil, false, nil, nil, err
	}

	posts, err := content.NewPostgresStore(pool)
	if err != nil {
		pool.Close()
		return nil, nil, false, nil, nil, err
	}
	if err := posts.InitSchema(ctx); err != nil {
		pool.Close()
		return nil, nil, false, nil, nil, err
	}

	// Ownership model: app owns the pool lifecycle, store Close() is a no-op.
	return dbStore{pool: pool, posts: posts}, pool, true, creds, posts, nil
}

func newMailer(cfg Config, log *slog.Logger) mail.Sender {
	mcfg := mail.Config{
		Host:      cfg.SMTPHost,
		Port:      cfg.SMTPPort,
		Username:  cfg.SMTPUsername,
		Password:  cfg.SMTPPassword,
		From:      cfg.MailFrom,
		Recipient: cfg.MailRecipient,
	}
	if !mcfg.Enabled() {
		log.Info("mail.disabled.noop_sender")
		return mail.NoopSender{}
	}
	log.Info("mail.enabled.smtp_sender", "host", mcfg.Host, "port", mcfg.Port)
	return mail.NewSMTPSender(mcfg)
}

type dbStore struct {
	pool  *pgxpool.Pool
	posts content.Store
}

func (s dbStore) Close(_ context.Context) error {
	if s.posts != nil {
		_ = s.posts.Close()
	}
	if s.pool != nil {
		s.pool.Close()
	}
	return nil
}
