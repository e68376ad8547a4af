package app

import "time"

// Config contains all runtime configuration loaded from environment variables.
type Config struct {
	HTTPAddr  string
	LogLevel  string
	LogFormat string

	ReadHeaderTimeout time.Duration
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	MaxHeaderBytes    int

	DatabaseURL string
	DBMaxConns  int32
	DBMinConns  int32

	// If true:
	// - /readyz returns 503 unless DB is configured and reachable.
	ReadinessRequireDB bool

	// Security policy:
	// If true, PORTFOLIO_SESSION_SECRET MUST be set (>= 32 bytes); no generated
	// dev secret is accepted.
	RequireSessionSecret bool

	// Default admin identity, used only to seed the credential store on the
	// first ever boot.
	AdminUsername string
	AdminPassword string

	// StaticDir is served under /static/.
	StaticDir string

	// Contact-form SMTP delivery. Mail stays disabled unless host, from, and
	// recipient are all configured.
	SMTPHost      string
	SMTPPort      int
	SMTPUsername  string
	SMTPPassword  string
	MailFrom      string
	MailRecipient string
}

// LoadConfig loads Config from environment variables with defaults.
func LoadConfig() Config {
	return Config{
		HTTPAddr:  EnvString("PORTFOLIO_HTTP_ADDR", "0.0.0.0:8080"),
		LogLevel:  EnvString("PORTFOLIO_LOG_LEVEL", "info"),
		LogFormat: EnvString("PORTFOLIO_LOG_FORMAT", "json"),

		ReadHeaderTimeout: EnvDuration("PORTFOLIO_HTTP_READ_HEADER_TIMEOUT", 5*time.Second),
		ReadTimeout:       EnvDuration("PORTFOLIO_HTTP_READ_TIMEOUT", 15*time.Second),
		WriteTimeout:      EnvDuration("PORTFOLIO_HTTP_WRITE_TIMEOUT", 15*time.Second),
		IdleTimeout:       EnvDuration("PORTFOLIO_HTTP_IDLE_TIMEOUT", 60*time.Second),

		MaxHeaderBytes: EnvInt("PORTFOLIO_HTTP_MAX_HEADER_BYTES", 1<<20),

		DatabaseURL: EnvString("PORTFOLIO_DATABASE_URL", ""),
		DBMaxConns:  EnvInt32("PORTFOLIO_DB_MAX_CONNS", 10),
		DBMinConns:  EnvInt32("PORTFOLIO_DB_MIN_CONNS", 0),

		ReadinessRequireDB: EnvBool("PORTFOLIO_READINESS_REQUIRE_DB", false),

		RequireSessionSecret: EnvBool("PORTFOLIO_REQUIRE_SESSION_SECRET", false),

		AdminUsername: EnvString("PORTFOLIO_ADMIN_USERNAME", "arjun"),
		AdminPassword: EnvString("PORTFOLIO_ADMIN_PASSWORD", "arjun"),

		StaticDir: EnvString("PORTFOLIO_STATIC_DIR", "static"),

		SMTPHost:      EnvString("PORTFOLIO_SMTP_HOST", ""),
		SMTPPort:      EnvInt("PORTFOLIO_SMTP_PORT", 587),
		SMTPUsername:  EnvString("PORTFOLIO_SMTP_USERNAME", ""),
		SMTPPassword:  EnvString("PORTFOLIO_SMTP_PASSWORD", ""),
		MailFrom:      EnvString("PORTFOLIO_MAIL_FROM", ""),
		MailRecipient: EnvString("PORTFOLIO_MAIL_RECIPIENT", ""),
	}
}
