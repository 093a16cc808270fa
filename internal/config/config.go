package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Backend names accepted by QUIZDRILL_BACKEND.
const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// Config holds runtime configuration read from the environment.
type Config struct {
	// DBPath overrides the default sqlite location. The --db flag wins over it.
	DBPath string `env:"QUIZDRILL_DB"`

	Backend     string `env:"QUIZDRILL_BACKEND" envDefault:"sqlite"`
	RedisURL    string `env:"QUIZDRILL_REDIS_URL" envDefault:"redis://localhost:6379/0"`
	RedisPrefix string `env:"QUIZDRILL_REDIS_PREFIX" envDefault:"quizdrill:"`

	// Encoding is the text encoding of delimited imports.
	Encoding   string        `env:"QUIZDRILL_ENCODING" envDefault:"gbk"`
	GraceDelay time.Duration `env:"QUIZDRILL_GRACE_DELAY" envDefault:"800ms"`

	Log Log

	// MetricsFile is a node-exporter textfile path. Empty disables metrics.
	MetricsFile string `env:"QUIZDRILL_METRICS_FILE"`
}

// Log configures the logger.
type Log struct {
	Level  string `env:"QUIZDRILL_LOG_LEVEL" envDefault:"info"`
	Format string `env:"QUIZDRILL_LOG_FORMAT" envDefault:"auto"`
	File   string `env:"QUIZDRILL_LOG_FILE"`
}

// Load reads configuration from environment variables with defaults.
// It loads .env if present but does not fail if missing.
func Load() (*Config, error) {
	_ = godotenv.Load() // .env is optional

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Backend {
	case BackendSQLite, BackendRedis:
	default:
		return fmt.Errorf("QUIZDRILL_BACKEND: unknown backend %q (want sqlite or redis)", c.Backend)
	}
	if c.GraceDelay < 0 {
		return fmt.Errorf("QUIZDRILL_GRACE_DELAY: must not be negative, got %s", c.GraceDelay)
	}
	return nil
}
