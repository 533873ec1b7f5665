package config

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/caarlos0/env/v10"
)

// Fetch strategies for filtered question reads.
const (
	FetchStrategyStore  = "store"
	FetchStrategyMemory = "memory"
)

// App holds core runtime configuration shared across services.
type App struct {
	Name                    string        `env:"APP_NAME" envDefault:"trivia-api"`
	Env                     string        `env:"APP_ENV" envDefault:"development"`
	LogLevel                string        `env:"LOG_LEVEL" envDefault:"info"`
	HTTPAddr                string        `env:"HTTP_ADDR" envDefault:"0.0.0.0:8080"`
	GracefulShutdownTimeout time.Duration `env:"GRACEFUL_SHUTDOWN_SECONDS" envDefault:"20s"`
	ReadTimeout             time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout            time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"15s"`

	Postgres Postgres
	Trivia   Trivia
	CORS     CORS
	OpenTDB  OpenTDB
}

// Postgres captures connection info for the SQL database.
type Postgres struct {
	Host        string `env:"PG_HOST,notEmpty"`
	Port        int    `env:"PG_PORT" envDefault:"5432"`
	User        string `env:"PG_USER,notEmpty"`
	Password    string `env:"PG_PASSWORD,notEmpty"`
	Database    string `env:"PG_DATABASE,notEmpty"`
	SSLMode     string `env:"PG_SSL_MODE" envDefault:"disable"`
	MaxConns    int    `env:"PG_MAX_CONNS" envDefault:"10"`
	AutoMigrate bool   `env:"PG_AUTO_MIGRATE" envDefault:"false"`
}

// ConnString renders a postgres:// URL. Credentials and database name are
// escaped, so any characters are safe in them.
func (p Postgres) ConnString() string {
	q := url.Values{}
	q.Set("sslmode", p.SSLMode)
	q.Set("pool_max_conns", strconv.Itoa(p.MaxConns))
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(p.User, p.Password),
		Host:     net.JoinHostPort(p.Host, strconv.Itoa(p.Port)),
		Path:     "/" + p.Database,
		RawQuery: q.Encode(),
	}
	return u.String()
}

// Trivia groups listing and filtering behaviour.
type Trivia struct {
	PageSize      int    `env:"TRIVIA_PAGE_SIZE" envDefault:"10"`
	FetchStrategy string `env:"TRIVIA_FETCH_STRATEGY" envDefault:"store"`
}

// CORS holds Cross-Origin Resource Sharing configuration.
type CORS struct {
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
	AllowedMethods []string `env:"CORS_ALLOWED_METHODS" envSeparator:"," envDefault:"GET,POST,PATCH,DELETE,OPTIONS"`
	AllowedHeaders []string `env:"CORS_ALLOWED_HEADERS" envSeparator:"," envDefault:"Content-Type,Authorization"`
	MaxAge         int      `env:"CORS_MAX_AGE" envDefault:"3600"`
}

// OpenTDB configures the question importer source.
type OpenTDB struct {
	BaseURL string        `env:"OPENTDB_BASE_URL" envDefault:"https://opentdb.com"`
	Timeout time.Duration `env:"OPENTDB_TIMEOUT" envDefault:"5s"`
}

// Load parses environment variables into App config.
func Load(ctx context.Context) (*App, error) {
	cfg := &App{}
	if err := env.ParseWithOptions(cfg, env.Options{RequiredIfNoDef: true}); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values the env tags cannot express.
func (c *App) Validate() error {
	if c.Trivia.PageSize <= 0 {
		return fmt.Errorf("TRIVIA_PAGE_SIZE must be positive, got %d", c.Trivia.PageSize)
	}
	switch c.Trivia.FetchStrategy {
	case FetchStrategyStore, FetchStrategyMemory:
	default:
		return fmt.Errorf("TRIVIA_FETCH_STRATEGY must be %q or %q, got %q",
			FetchStrategyStore, FetchStrategyMemory, c.Trivia.FetchStrategy)
	}
	return nil
}
