// Package config loads server settings from the environment.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the server settings. LOG_LEVEL is read by pkg/logging.
type Config struct {
	Port       int           `env:"PORT"                 envDefault:"8080"`
	DBPath     string        `env:"DB_PATH"              envDefault:"./data/splitroom.db"`
	JWTSecret  string        `env:"JWT_SECRET,required,notEmpty"`
	TokenTTL   time.Duration `env:"TOKEN_TTL"            envDefault:"168h"`
	StaticPath string        `env:"STATIC_PATH"`

	// RealtimeSendBuffer is how many events may queue per realtime channel
	// before further events for that channel are dropped.
	RealtimeSendBuffer int `env:"REALTIME_SEND_BUFFER" envDefault:"32"`
}

// Load parses the environment into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("PORT out of range: %d", c.Port)
	}
	if c.TokenTTL <= 0 {
		return errors.New("TOKEN_TTL must be positive")
	}
	if c.RealtimeSendBuffer <= 0 {
		return errors.New("REALTIME_SEND_BUFFER must be positive")
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
