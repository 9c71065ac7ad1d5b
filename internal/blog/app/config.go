package app

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the full runtime configuration, loaded from the
// environment. Secrets (JWT secret, Google client credentials) only
// ever enter through here.
type Config struct {
	Issuer     string        `env:"BLOG_ISSUER" envDefault:"inkpot"`
	JWTSecret  string        `env:"BLOG_JWT_SECRET,notEmpty"`
	SessionTTL time.Duration `env:"BLOG_SESSION_TTL" envDefault:"24h"`

	// DatabaseDriver selects the store backend: "sqlite" or "postgres".
	DatabaseDriver string `env:"BLOG_DB_DRIVER" envDefault:"sqlite"`
	// DatabaseDSN is a file path for sqlite or a connection string for postgres.
	DatabaseDSN string `env:"BLOG_DB_DSN" envDefault:"blog.db"`
	PepperFile  string `env:"BLOG_PEPPER_FILE" envDefault:"pepper"`

	GoogleClientID     string `env:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `env:"GOOGLE_CLIENT_SECRET"`
	GoogleRedirectURL  string `env:"GOOGLE_REDIRECT_URL"`

	// FrontendOrigin is the single origin allowed to make credentialed
	// CORS requests, and where the OAuth callback sends the browser.
	FrontendOrigin string `env:"BLOG_FRONTEND_ORIGIN" envDefault:"http://localhost:3000"`
	CookieName     string `env:"BLOG_COOKIE_NAME" envDefault:"access_token"`
	CookieSecure   bool   `env:"BLOG_COOKIE_SECURE" envDefault:"false"`
	UploadDir      string `env:"BLOG_UPLOAD_DIR" envDefault:"uploads"`

	Env                 string        `env:"ENV" envDefault:"dev"`
	LogLevel            string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat           string        `env:"LOG_FORMAT" envDefault:"json"`
	Port                int           `env:"PORT" envDefault:"8080"`
	ShutdownGracePeriod time.Duration `env:"SHUTDOWN_GRACE_PERIOD" envDefault:"10s"`
}

// LoadConfig parses the environment into a Config.
func LoadConfig() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}

	switch cfg.DatabaseDriver {
	case "sqlite", "postgres":
	default:
		return Config{}, fmt.Errorf("unsupported database driver %q", cfg.DatabaseDriver)
	}

	return cfg, nil
}

// GoogleConfigured reports whether the Google handshake can be wired.
// The rest of the service works without it.
func (c Config) GoogleConfigured() bool {
	return c.GoogleClientID != "" && c.GoogleClientSecret != "" && c.GoogleRedirectURL != ""
}
