package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"rovlog/pkg/schema"
)

// Load reads and validates a configuration file.
func Load(_ context.Context, path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided config path is expected
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.ApplyEnvironmentOverrides()

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Validate checks a configuration for errors and parses derived values.
func Validate(cfg *Config) error {
	if cfg.NumericThreshold <= 0 || cfg.NumericThreshold > 1 {
		return fmt.Errorf("numeric_threshold: must be in (0, 1], got %v", cfg.NumericThreshold)
	}

	if cfg.DefaultSessionDuration == "" {
		return errors.New("default_session_duration: is required")
	}
	d, err := time.ParseDuration(cfg.DefaultSessionDuration)
	if err != nil {
		return fmt.Errorf("default_session_duration: %w", err)
	}
	if d <= 0 {
		return fmt.Errorf("default_session_duration: must be positive, got %s", d)
	}
	cfg.sessionDuration = d

	if cfg.MaxLineBytes <= 0 {
		return fmt.Errorf("max_line_bytes: must be positive, got %d", cfg.MaxLineBytes)
	}

	for i := range cfg.Schemas {
		if err := validateSchema(&cfg.Schemas[i]); err != nil {
			return fmt.Errorf("schemas[%d]: %w", i, err)
		}
	}

	return nil
}

func validateSchema(sc *SchemaConfig) error {
	if sc.Category == "" {
		return errors.New("category is required")
	}
	if sc.File == "" {
		return errors.New("file is required")
	}
	if len(sc.Fields) == 0 {
		return errors.New("fields: at least one field is required")
	}
	return nil
}

// Registry builds the schema registry: the built-in defaults plus any
// extensions declared in the config.
func (c *Config) Registry() *schema.Registry {
	r := schema.Defaults()
	for _, sc := range c.Schemas {
		r.Register(sc.Category, sc.File, sc.Fields)
	}
	return r
}
