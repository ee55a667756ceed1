// Package config loads application configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config represents the complete application configuration. Values come
// from CLIMDEX_-prefixed environment variables with the defaults below.
type Config struct {
	Server    ServerConfig    `envconfig:"SERVER"`
	Logging   LoggingConfig   `envconfig:"LOGGING"`
	RateLimit RateLimitConfig `envconfig:"RATE_LIMIT"`
	Compute   ComputeConfig   `envconfig:"COMPUTE"`
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	Port            int           `envconfig:"PORT" default:"8080"`
	ReadTimeout     time.Duration `envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `envconfig:"WRITE_TIMEOUT" default:"30s"`
	IdleTimeout     time.Duration `envconfig:"IDLE_TIMEOUT" default:"60s"`
	MaxHeaderBytes  int           `envconfig:"MAX_HEADER_BYTES" default:"1048576"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
	MaxBodyBytes    int64         `envconfig:"MAX_BODY_BYTES" default:"8388608"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level    string `envconfig:"LEVEL" default:"info"`
	Format   string `envconfig:"FORMAT" default:"json"`
	Output   string `envconfig:"OUTPUT" default:"console"`
	FilePath string `envconfig:"FILE_PATH" default:"logs/climdex.log"`
}

// RateLimitConfig contains rate limiting configuration.
type RateLimitConfig struct {
	Enabled bool    `envconfig:"ENABLED" default:"true"`
	RPS     float64 `envconfig:"RPS" default:"50"`
	Burst   int     `envconfig:"BURST" default:"25"`
}

// ComputeConfig contains defaults for the index computations.
type ComputeConfig struct {
	// Calibration years used when a request does not specify its own
	// window. 1981-2010 is the conventional US normal period.
	CalibrationStartYear int `envconfig:"CALIBRATION_START_YEAR" default:"1981"`
	CalibrationEndYear   int `envconfig:"CALIBRATION_END_YEAR" default:"2010"`

	// MaxSeriesMonths caps the accepted input length so a single request
	// cannot exhaust the process.
	MaxSeriesMonths int `envconfig:"MAX_SERIES_MONTHS" default:"18000"`
}

// Load loads configuration from CLIMDEX_-prefixed environment variables and
// validates it.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("CLIMDEX", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration for values that cannot work.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "json", "text":
	default:
		return fmt.Errorf("invalid log format: %q", c.Logging.Format)
	}
	switch c.Logging.Output {
	case "console", "file", "both":
	default:
		return fmt.Errorf("invalid log output: %q", c.Logging.Output)
	}
	if c.RateLimit.Enabled && (c.RateLimit.RPS <= 0 || c.RateLimit.Burst <= 0) {
		return fmt.Errorf("rate limit enabled with non-positive rps %v or burst %d",
			c.RateLimit.RPS, c.RateLimit.Burst)
	}
	if c.Compute.CalibrationEndYear < c.Compute.CalibrationStartYear {
		return fmt.Errorf("calibration end year %d precedes start year %d",
			c.Compute.CalibrationEndYear, c.Compute.CalibrationStartYear)
	}
	if c.Compute.MaxSeriesMonths < 12 {
		return fmt.Errorf("max series months too small: %d", c.Compute.MaxSeriesMonths)
	}
	return nil
}
