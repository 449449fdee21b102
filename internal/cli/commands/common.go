// Package commands implements the rovlog subcommands.
package commands

import (
	"context"
	"fmt"
	"time"

	"rovlog/pkg/config"
	"rovlog/pkg/loader"
	"rovlog/pkg/output"
	"rovlog/pkg/session"
)

// ExitCode is set by commands to indicate the result
var ExitCode = 0

// Time formats accepted by --start/--end flags, tried in order.
var flagTimeLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02",
}

// parseTimeFlag parses an optional time flag value. An empty value
// yields nil (that bound left unconstrained).
func parseTimeFlag(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	for _, layout := range flagTimeLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return &ts, nil
		}
	}
	return nil, fmt.Errorf("unrecognized time %q (use \"2006-01-02 15:04:05\")", s)
}

// loadConfig loads the config file if one was given, otherwise the
// built-in defaults.
func loadConfig(ctx context.Context, path string) (*config.Config, error) {
	if path == "" {
		cfg := config.DefaultConfig()
		cfg.ApplyEnvironmentOverrides()
		if err := config.Validate(cfg); err != nil {
			return nil, fmt.Errorf("validating default config: %w", err)
		}
		return cfg, nil
	}
	return config.Load(ctx, path)
}

// newSessionLoader wires a session loader from a config.
func newSessionLoader(cfg *config.Config) *session.Loader {
	files := loader.New(
		loader.WithNumericThreshold(cfg.NumericThreshold),
		loader.WithMaxLineBytes(cfg.MaxLineBytes),
	)
	return session.NewLoader(cfg.Registry(), files)
}

// newFormatter selects a report formatter by name.
func newFormatter(name string, opts output.FormatOptions) (output.Formatter, error) {
	switch name {
	case "text":
		return output.NewTextFormatter(opts), nil
	case "json":
		return output.NewJSONFormatter(opts), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (use text or json)", name)
	}
}
