package config

import (
	"os"
	"strconv"

	"rovlog/pkg/loader"
	"rovlog/pkg/session"
	"rovlog/pkg/table"
)

// Environment variable names.
const (
	EnvNumericThreshold = "ROVLOG_NUMERIC_THRESHOLD"
	EnvSessionDuration  = "ROVLOG_SESSION_DURATION"
)

// DefaultConfig returns a configuration with the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		NumericThreshold:       table.DefaultNumericThreshold,
		DefaultSessionDuration: session.DefaultDuration.String(),
		MaxLineBytes:           loader.DefaultMaxLineBytes,
	}
}

// ApplyEnvironmentOverrides applies environment variable overrides to
// the config. Unparseable values are ignored in favor of validation
// reporting on the file values. Callers building a config without
// Load must apply this themselves, before validating.
func (c *Config) ApplyEnvironmentOverrides() {
	if v := os.Getenv(EnvNumericThreshold); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.NumericThreshold = f
		}
	}
	if v := os.Getenv(EnvSessionDuration); v != "" {
		c.DefaultSessionDuration = v
	}
}
