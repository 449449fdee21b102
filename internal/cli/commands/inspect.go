package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"rovlog/internal/logger"
	"rovlog/pkg/output"
)

// InspectOptions holds command-line options for the inspect command.
type InspectOptions struct {
	Config  string
	Output  string
	Verbose bool
	Quiet   bool
}

// NewInspectCommand creates the inspect command.
func NewInspectCommand() *cobra.Command {
	opts := &InspectOptions{}

	cmd := &cobra.Command{
		Use:   "inspect <session-dir>",
		Short: "Load a session and report its contents",
		Long: `Load every log file beneath a session directory and report the
resulting tables: row and column counts, column kinds, per-table time
bounds, and the session's resolved time range.

Files that fail to parse are skipped and counted, never fatal. The
session start comes from the directory name; the end is the latest
timestamp seen across all tables.

Example:
  rovlog inspect /data/dives/2024-01-15_10-30-00
  rovlog inspect -v -o json /data/dives/2024-01-15_10-30-00`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Config, "config", "c", "", "Config file (optional)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Output format (text|json)")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Show per-column detail and rejected-line samples")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "Summary only, no details")

	return cmd
}

func runInspect(ctx context.Context, sessionPath string, opts *InspectOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	logger.SetVerbose(opts.Verbose)

	cfg, err := loadConfig(ctx, opts.Config)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if info, err := os.Stat(sessionPath); err != nil {
		return fmt.Errorf("session directory: %w", err)
	} else if !info.IsDir() {
		return fmt.Errorf("session path %s is not a directory", sessionPath)
	}

	formatter, err := newFormatter(opts.Output, output.FormatOptions{
		Verbose: opts.Verbose,
		Quiet:   opts.Quiet,
	})
	if err != nil {
		return err
	}

	started := time.Now()
	data := newSessionLoader(cfg).Load(sessionPath)
	name := filepath.Base(filepath.Clean(sessionPath))
	report := output.NewReport(name, sessionPath, data, time.Since(started), cfg.SessionDuration())

	if err := formatter.Format(ctx, report, os.Stdout); err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}
	return nil
}
