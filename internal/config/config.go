package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/shopspring/decimal"
)

// Config holds runtime configuration sourced from env vars.
type Config struct {
	Port string `env:"PORT" env-default:"8080"`

	// DatabaseURL overrides the discrete DATABASE_* parts when set.
	DatabaseURL string `env:"DATABASE_URL" env-default:""`
	DB          DBConfig

	JWTSecret     string `env:"JWT_SECRET" env-default:""`
	JWTIssuer     string `env:"JWT_ISSUER" env-default:"stock-trader-api"`
	JWTTTLMinutes int    `env:"JWT_TTL_MINUTES" env-default:"60"`

	CORSOriginsCSV  string `env:"CORS_ALLOWED_ORIGINS" env-default:"*"`
	StartingBalance string `env:"STARTING_BALANCE" env-default:"0"`

	// LegacyTokenFallback re-enables the pre-token path where the bearer
	// value is a bare username. Off by default; it skips signature checks.
	LegacyTokenFallback bool `env:"AUTH_LEGACY_TOKEN_FALLBACK" env-default:"false"`

	Redis RedisConfig
}

// DBConfig mirrors the discrete connection parameters the deployment sets.
type DBConfig struct {
	Host     string `env:"DATABASE_HOST" env-default:""`
	Port     int    `env:"DATABASE_PORT" env-default:"5432"`
	Name     string `env:"DATABASE_NAME" env-default:"postgres"`
	User     string `env:"DATABASE_USER" env-default:""`
	Password string `env:"DATABASE_PASSWORD" env-default:""`
	SSLMode  string `env:"DATABASE_SSLMODE" env-default:"prefer"`
}

// RedisConfig is optional; an empty Addr disables the ticker cache.
type RedisConfig struct {
	Addr          string `env:"REDIS_ADDR" env-default:""`
	Password      string `env:"REDIS_PASSWORD" env-default:""`
	DB            int    `env:"REDIS_DB" env-default:"0"`
	TickerTTLSecs int    `env:"TICKER_CACHE_TTL_SECONDS" env-default:"30"`
}

// Load reads configuration from the environment and performs minimal validation.
func Load() (Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("read env: %w", err)
	}

	cfg.JWTSecret = strings.TrimSpace(cfg.JWTSecret)
	if cfg.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET is required")
	}
	if strings.TrimSpace(cfg.DatabaseURL) == "" && cfg.DB.Host == "" {
		return Config{}, errors.New("DATABASE_URL or DATABASE_HOST is required")
	}
	if _, err := decimal.NewFromString(cfg.StartingBalance); err != nil {
		return Config{}, fmt.Errorf("STARTING_BALANCE: %w", err)
	}

	return cfg, nil
}

// DSN returns the Postgres connection string: DATABASE_URL verbatim when
// provided, otherwise assembled from the discrete parts.
func (c Config) DSN() string {
	if dsn := strings.TrimSpace(c.DatabaseURL); dsn != "" {
		return dsn
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.DB.User,
		url.QueryEscape(c.DB.Password),
		c.DB.Host,
		c.DB.Port,
		c.DB.Name,
		c.DB.SSLMode,
	)
}

// HTTPAddress returns the host:port pair for the HTTP server to bind to.
func (c Config) HTTPAddress() string {
	return fmt.Sprintf(":%s", c.Port)
}

// JWTTTL returns the configured token lifetime.
func (c Config) JWTTTL() time.Duration {
	if c.JWTTTLMinutes <= 0 {
		return 60 * time.Minute
	}
	return time.Duration(c.JWTTTLMinutes) * time.Minute
}

// CORSOrigins splits the configured CSV of allowed origins.
func (c Config) CORSOrigins() []string {
	parts := strings.Split(c.CORSOriginsCSV, ",")
	var out []string
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

// InitialBalance returns the cash balance assigned to new registrations.
func (c Config) InitialBalance() decimal.Decimal {
	balance, err := decimal.NewFromString(c.StartingBalance)
	if err != nil {
		return decimal.Zero
	}
	return balance
}

// TickerCacheTTL returns the lifetime of cached market listings.
func (c RedisConfig) TickerCacheTTL() time.Duration {
	if c.TickerTTLSecs <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.TickerTTLSecs) * time.Second
}
