// Package config loads application configuration from the environment.
// A .env file in the working directory is read first when present, then
// variables are decoded into Config with go-envconfig.
package config

import (
	"context"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

// Config holds all runtime configuration values.
type Config struct {
	Env      string `env:"APP_ENV, default=dev"`
	Port     string `env:"APP_PORT, default=4000"`
	Timezone string `env:"APP_TIMEZONE, default=UTC"` // hotel's local calendar for "today"

	LogLevel  string `env:"LOG_LEVEL, default=info"`
	LogPretty bool   `env:"LOG_PRETTY, default=false"`

	JWTSecret  string        `env:"JWT_SECRET, required"`
	TokenTTL   time.Duration `env:"TOKEN_TTL, default=6h"`
	BcryptCost int           `env:"BCRYPT_COST, default=10"`

	// RequireStaffAuth protects inventory, reservation management, user,
	// report and contact-reply routes with a staff bearer token.
	RequireStaffAuth bool `env:"REQUIRE_STAFF_AUTH, default=false"`

	// CORSOrigins is a comma separated allow-list; "*" allows any origin.
	CORSOrigins []string `env:"CORS_ORIGINS, default=*"`

	DB        DBConfig
	Redis     RedisConfig
	SMTP      SMTPConfig
	AMQP      AMQPConfig
	RateLimit RateLimitConfig
}

// DBConfig describes the MySQL connection pool.
type DBConfig struct {
	User            string        `env:"DB_USER, required"`
	Pass            string        `env:"DB_PASSWORD"`
	Host            string        `env:"DB_HOST, required"`
	Port            string        `env:"DB_PORT, default=3306"`
	Name            string        `env:"DB_NAME, required"`
	MaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS, default=10"`
	ConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME, default=30m"`
	AutoMigrate     bool          `env:"DB_AUTO_MIGRATE, default=true"`
}

// SMTPConfig describes the outbound mail relay.
type SMTPConfig struct {
	Host string `env:"SMTP_HOST"`
	Port int    `env:"SMTP_PORT, default=587"`
	User string `env:"SMTP_USER"`
	Pass string `env:"SMTP_PASS"`
	From string `env:"SMTP_FROM"`
}

// Sender returns the From address, falling back to the SMTP user.
func (s SMTPConfig) Sender() string {
	if s.From != "" {
		return s.From
	}
	return s.User
}

// AMQPConfig describes the broker used for reservation events.  Events
// are disabled when URL is empty.
type AMQPConfig struct {
	URL          string `env:"RABBITMQ_URL"`
	Queue        string `env:"RABBITMQ_QUEUE, default=reservation.events"`
	NotifyGuests bool   `env:"NOTIFY_GUESTS, default=false"`
}

// Load reads .env (if any) and the process environment.
func Load(ctx context.Context) (*Config, error) {
	_ = godotenv.Load()
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if _, err := cfg.Location(); err != nil {
		return nil, fmt.Errorf("config: APP_TIMEZONE: %w", err)
	}
	cfg.RateLimit.normalize()
	return &cfg, nil
}

// Location resolves APP_TIMEZONE.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(c.Timezone)
}
