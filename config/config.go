package config

import (
	"errors"
	"time"

	"libreria/util/env"
)

var (
	ErrInvalidHTTPPort      = errors.New("HTTP_PORT must be a positive integer")
	ErrGracefulTimeout      = errors.New("GRACEFUL_TIMEOUT must be a positive duration")
	ErrDSN                  = errors.New("DB_DSN must be set")
	ErrExternalAPIURL       = errors.New("EXTERNAL_API_URL must be set")
	ErrExternalAPITimeout   = errors.New("EXTERNAL_API_TIMEOUT must be a positive duration")
)

// All configuration is loaded in one place.
type Config struct {
	HTTPPort           int
	GracefulTimeout    time.Duration
	DSN                string
	ExternalAPIURL     string
	ExternalAPITimeout time.Duration
}

func Load() (*Config, error) {
	config := &Config{
		HTTPPort:           env.GetIntDefault("HTTP_PORT", 8090),
		GracefulTimeout:    env.GetDurationDefault("GRACEFUL_TIMEOUT", 5*time.Second),
		DSN:                env.Get("DB_DSN"),
		ExternalAPIURL:     env.GetDefault("EXTERNAL_API_URL", "https://gutendex.com"),
		ExternalAPITimeout: env.GetDurationDefault("EXTERNAL_API_TIMEOUT", 10*time.Second),
	}
	err := config.Validate()
	if err != nil {
		return nil, err
	}
	return config, err
}

func (c *Config) Validate() error {
	if c.HTTPPort <= 0 {
		return ErrInvalidHTTPPort
	}
	if c.GracefulTimeout <= 0 {
		return ErrGracefulTimeout
	}
	if len(c.DSN) == 0 {
		return ErrDSN
	}
	if len(c.ExternalAPIURL) == 0 {
		return ErrExternalAPIURL
	}
	if c.ExternalAPITimeout <= 0 {
		return ErrExternalAPITimeout
	}

	return nil
}
