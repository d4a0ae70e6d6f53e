package config

import (
	"context"
	"errors"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Auth      AuthConfig
	Postgres  PostgresConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
}

type AuthConfig struct {
	AccessSecret  string        `env:"JWT_SECRET"`
	RefreshSecret string        `env:"REFRESH_TOKEN_SECRET"`
	AccessTTL     time.Duration `env:"ACCESS_TOKEN_TTL,  default=1h"`
	RefreshTTL    time.Duration `env:"REFRESH_TOKEN_TTL, default=168h"`
	BcryptCost    int           `env:"BCRYPT_COST,       default=10"`
	HashWorkers   int           `env:"HASH_WORKERS,      default=4"`
}

type PostgresConfig struct {
	URL string `env:"POSTGRES_URL, default=postgres://localhost:5432/taskforge?sslmode=disable"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,   default=0"`
}

type RateLimitConfig struct {
	Max    int64         `env:"RATE_LIMIT_MAX,    default=100"`
	Window time.Duration `env:"RATE_LIMIT_WINDOW, default=15s"`
}

var (
	errMissingSecret = errors.New("config: JWT_SECRET and REFRESH_TOKEN_SECRET are required")
	errSameSecret    = errors.New("config: JWT_SECRET and REFRESH_TOKEN_SECRET must differ")
)

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate enforces the token-secret invariants: both secrets present and
// never interchangeable.
func (c *Config) Validate() error {
	if c.Auth.AccessSecret == "" || c.Auth.RefreshSecret == "" {
		return errMissingSecret
	}
	if c.Auth.AccessSecret == c.Auth.RefreshSecret {
		return errSameSecret
	}
	return nil
}
