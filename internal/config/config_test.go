package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "console", cfg.Logging.Output)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 1981, cfg.Compute.CalibrationStartYear)
	assert.Equal(t, 2010, cfg.Compute.CalibrationEndYear)
	assert.Equal(t, 18000, cfg.Compute.MaxSeriesMonths)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("CLIMDEX_SERVER_PORT", "9090")
	t.Setenv("CLIMDEX_LOGGING_LEVEL", "debug")
	t.Setenv("CLIMDEX_RATE_LIMIT_ENABLED", "false")
	t.Setenv("CLIMDEX_COMPUTE_MAX_SERIES_MONTHS", "1200")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.False(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 1200, cfg.Compute.MaxSeriesMonths)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg, err := Load()
		require.NoError(t, err)
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"port too low", func(c *Config) { c.Server.Port = 0 }, "invalid server port"},
		{"port too high", func(c *Config) { c.Server.Port = 70000 }, "invalid server port"},
		{"bad log level", func(c *Config) { c.Logging.Level = "verbose" }, "invalid log level"},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }, "invalid log format"},
		{"bad log output", func(c *Config) { c.Logging.Output = "syslog" }, "invalid log output"},
		{"zero rps with limiting on", func(c *Config) { c.RateLimit.RPS = 0 }, "rate limit"},
		{"zero burst with limiting on", func(c *Config) { c.RateLimit.Burst = 0 }, "rate limit"},
		{"inverted calibration years", func(c *Config) {
			c.Compute.CalibrationStartYear = 2010
			c.Compute.CalibrationEndYear = 1981
		}, "calibration end year"},
		{"series cap too small", func(c *Config) { c.Compute.MaxSeriesMonths = 6 }, "max series months"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateRateLimitDisabled(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	// Disabled limiting tolerates nonsense limiter values.
	cfg.RateLimit.Enabled = false
	cfg.RateLimit.RPS = 0
	cfg.RateLimit.Burst = 0
	assert.NoError(t, cfg.Validate())
}
