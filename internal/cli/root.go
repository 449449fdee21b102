// Package cli provides the command-line interface for rovlog.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"rovlog/internal/cli/commands"
)

// Execute runs the root command and returns the exit code.
func Execute() int {
	rootCmd := NewRootCommand()

	if err := rootCmd.Execute(); err != nil {
		// Print error to stderr (SilenceErrors prevents Cobra from doing this)
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2 // Configuration or runtime error
	}
	return commands.ExitCode
}

// NewRootCommand creates the root cobra command.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "rovlog",
		Short: "Load and query robotic vehicle session logs",
		Long: `rovlog normalizes a vehicle's timestamped session logs into columnar
tables and answers time-range queries against them.

A session is a directory named after its start instant
(yyyy-mm-dd_hh-mm-ss) containing category subdirectories of .log files,
one JSON record per line:

  2024-01-15 10:30:01,250000 - {"depth": 2.4, "mode": "auto"}

Malformed lines and unreadable files never fail a session; they are
skipped, counted, and reported.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Add subcommands
	rootCmd.AddCommand(commands.NewSessionsCommand())
	rootCmd.AddCommand(commands.NewInspectCommand())
	rootCmd.AddCommand(commands.NewExtractCommand())
	rootCmd.AddCommand(commands.NewDiagnoseCommand())
	rootCmd.AddCommand(commands.NewValidateCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	return rootCmd
}
