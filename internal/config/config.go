// Danjiscout - Apartment Complex Buy-Side Recommender
// Copyright 2026 Proxity
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/proxity/danjiscout

package config

import (
	"fmt"
	"time"

	"github.com/proxity/danjiscout/internal/recommend"
)

// Config is the full application configuration.
type Config struct {
	Server    ServerConfig     `json:"server" koanf:"server"`
	Logging   LoggingConfig    `json:"logging" koanf:"logging"`
	Catalog   CatalogConfig    `json:"catalog" koanf:"catalog"`
	Recommend recommend.Config `json:"recommend" koanf:"recommend"`
}

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Host string `json:"host" koanf:"host"`
	Port int    `json:"port" koanf:"port"`

	// ReadTimeout and WriteTimeout bound a single request exchange.
	ReadTimeout  time.Duration `json:"read_timeout" koanf:"read_timeout"`
	WriteTimeout time.Duration `json:"write_timeout" koanf:"write_timeout"`

	// ShutdownTimeout bounds graceful shutdown on SIGTERM.
	ShutdownTimeout time.Duration `json:"shutdown_timeout" koanf:"shutdown_timeout"`

	// CORSOrigins lists allowed cross-origin callers. Empty disables CORS.
	CORSOrigins []string `json:"cors_origins" koanf:"cors_origins"`

	// RateLimitRequests allows this many requests per client IP per
	// RateLimitWindow. 0 disables rate limiting.
	RateLimitRequests int           `json:"rate_limit_requests" koanf:"rate_limit_requests"`
	RateLimitWindow   time.Duration `json:"rate_limit_window" koanf:"rate_limit_window"`
}

// Address returns the listen address in host:port form.
func (s ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// LoggingConfig holds the zerolog settings.
type LoggingConfig struct {
	// Level is one of trace, debug, info, warn, error.
	Level string `json:"level" koanf:"level"`

	// Format is "json" or "console".
	Format string `json:"format" koanf:"format"`

	// Caller annotates log lines with file:line when true.
	Caller bool `json:"caller" koanf:"caller"`
}

// CatalogConfig points at the listing catalog source.
type CatalogConfig struct {
	// Path is the catalog CSV file.
	Path string `json:"path" koanf:"path"`
}

// Default returns the configuration defaults applied before the file
// and environment layers.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:              "0.0.0.0",
			Port:              8480,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      15 * time.Second,
			ShutdownTimeout:   10 * time.Second,
			RateLimitRequests: 100,
			RateLimitWindow:   time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Catalog: CatalogConfig{
			Path: "data/catalog.csv",
		},
		Recommend: *recommend.DefaultConfig(),
	}
}

// Validate checks the assembled configuration.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in [1, 65535], got %d", c.Server.Port)
	}
	if c.Server.ReadTimeout <= 0 || c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("server timeouts must be positive")
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("server.shutdown_timeout must be positive")
	}
	if c.Server.RateLimitRequests < 0 {
		return fmt.Errorf("server.rate_limit_requests must be >= 0, got %d", c.Server.RateLimitRequests)
	}
	if c.Server.RateLimitRequests > 0 && c.Server.RateLimitWindow <= 0 {
		return fmt.Errorf("server.rate_limit_window must be positive when rate limiting is on")
	}
	switch c.Logging.Level {
	case "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level %q is not a known level", c.Logging.Level)
	}
	if c.Logging.Format != "json" && c.Logging.Format != "console" {
		return fmt.Errorf("logging.format must be json or console, got %q", c.Logging.Format)
	}
	if c.Catalog.Path == "" {
		return fmt.Errorf("catalog.path must not be empty")
	}
	if err := c.Recommend.Validate(); err != nil {
		return fmt.Errorf("recommend: %w", err)
	}
	return nil
}
