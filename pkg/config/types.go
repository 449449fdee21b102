// Package config provides configuration loading and validation for
// rovlog.
package config

import "time"

// Config is the root configuration structure loaded from YAML. Every
// field is optional; defaults are applied before the file is parsed.
type Config struct {
	// NumericThreshold is the fraction of non-missing values in a
	// column that must coerce to numeric before the column is re-typed
	// as numeric. Must be in (0, 1].
	NumericThreshold float64 `yaml:"numeric_threshold"`

	// DefaultSessionDuration is the synthetic session length assumed
	// when a session has no loaded data to bound its end, as a Go
	// duration string (e.g. "30m").
	DefaultSessionDuration string `yaml:"default_session_duration"`

	// MaxLineBytes caps a single log line during scanning.
	MaxLineBytes int `yaml:"max_line_bytes"`

	// Schemas registers additional known log files on top of the
	// built-in defaults.
	Schemas []SchemaConfig `yaml:"schemas,omitempty"`

	// sessionDuration is the parsed duration (populated during
	// validation).
	sessionDuration time.Duration
}

// SessionDuration returns the parsed default session duration.
func (c *Config) SessionDuration() time.Duration {
	return c.sessionDuration
}

// SchemaConfig registers one known log file and its expected fields.
type SchemaConfig struct {
	// Category is the grouping directory, e.g. "rov_data".
	Category string `yaml:"category"`

	// File is the log file name within the category.
	File string `yaml:"file"`

	// Fields is the ordered expected field list. Advisory only.
	Fields []string `yaml:"fields"`
}
