package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds application configuration
type Config struct {
	Version     string `env:"VERSION" envDefault:"0.1.0"`
	Port        int    `env:"PORT" envDefault:"3000"`
	Environment string `env:"ENVIRONMENT" envDefault:"dev"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	SentryDSN   string `env:"SENTRY_DSN"`

	// Base URL of the blog REST API this frontend consumes.
	APIBaseURL string `env:"API_BASE_URL" envDefault:"http://localhost:8080/api"`

	RedisAddr     string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	SessionCookie string        `env:"SESSION_COOKIE" envDefault:"inkwell_session"`
	SessionTTL    time.Duration `env:"SESSION_TTL" envDefault:"168h"`
	CookieSecure  bool          `env:"COOKIE_SECURE" envDefault:"false"`
}

func NewConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) IsEnvProd() bool {
	if c.Environment == "prod" && c.SentryDSN != "" {
		return true
	}
	return false
}
