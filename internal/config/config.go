// Package config loads server configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// DevJWTSecret signs tokens when JWT_SECRET is unset outside production.
// It is public and must never protect real data.
const DevJWTSecret = "dev-only-insecure-secret"

// Config contains server configuration parameters.
type Config struct {
	AppEnv     string `env:"APP_ENV" envDefault:"development"`
	LogLevel   string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat  string `env:"LOG_FORMAT" envDefault:"text"`
	BcryptCost int    `env:"BCRYPT_COST" envDefault:"10"`

	HTTP     HTTP     `envPrefix:"HTTP_"`
	Database Database `envPrefix:"DB_"`
	JWT      JWT      `envPrefix:"JWT_"`
	Redis    Redis    `envPrefix:"REDIS_"`
}

// HTTP contains HTTP server parameters.
type HTTP struct {
	Addr         string        `env:"ADDR" envDefault:":3000"`
	ReadTimeout  time.Duration `env:"READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout time.Duration `env:"WRITE_TIMEOUT" envDefault:"10s"`
	CORSOrigins  []string      `env:"CORS_ORIGINS" envDefault:"*" envSeparator:","`
}

// Database contains database connection parameters.
type Database struct {
	Driver         string        `env:"DRIVER" envDefault:"sqlite"`
	DSN            string        `env:"DSN" envDefault:"todos.db"`
	ConnectTimeout time.Duration `env:"CONNECT_TIMEOUT" envDefault:"60s"`
	AutoMigrate    bool          `env:"AUTO_MIGRATE" envDefault:"true"`
}

// JWT contains token signing parameters.
type JWT struct {
	Secret string        `env:"SECRET"`
	TTL    time.Duration `env:"TTL" envDefault:"24h"`
}

// Redis contains the optional cache connection parameters.
// An empty Addr disables caching.
type Redis struct {
	Addr     string        `env:"ADDR"`
	Password string        `env:"PASSWORD"`
	DB       int           `env:"DB" envDefault:"0"`
	CacheTTL time.Duration `env:"CACHE_TTL" envDefault:"5m"`
}

// Load reads an optional .env file and then parses the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		slog.Debug(".env not found; using system environment variables")
	}
	return Parse()
}

// Parse builds a Config from the current environment and validates it.
func Parse() (*Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// IsProduction reports whether the server runs with APP_ENV=production.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// Validate checks values env tags cannot express and fills the dev secret.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "sqlite", "postgres", "mysql":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver)
	}
	if c.JWT.TTL <= 0 {
		return errors.New("JWT_TTL must be positive")
	}
	if c.BcryptCost < 4 || c.BcryptCost > 31 {
		return fmt.Errorf("BCRYPT_COST %d out of range [4, 31]", c.BcryptCost)
	}
	if c.JWT.Secret == "" {
		if c.IsProduction() {
			return errors.New("JWT_SECRET is required in production")
		}
		c.JWT.Secret = DevJWTSecret
	}
	return nil
}

// UsesDevSecret reports whether tokens are signed with DevJWTSecret.
func (c *Config) UsesDevSecret() bool {
	return c.JWT.Secret == DevJWTSecret
}
