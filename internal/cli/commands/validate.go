package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"rovlog/pkg/config"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <config-file>",
		Short: "Validate a configuration file",
		Long: `Validate a rovlog configuration file without loading any data.

Checks:
  - YAML syntax
  - Threshold and duration ranges
  - Schema extension entries`,
		Args: cobra.ExactArgs(1),
		RunE: runValidate,
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	configPath := args[0]
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	fmt.Printf("Validating %s...\n", configPath)

	cfg, err := config.Load(ctx, configPath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	// Report what we found
	fmt.Printf("\nConfiguration valid!\n")
	fmt.Printf("  Numeric threshold:        %v\n", cfg.NumericThreshold)
	fmt.Printf("  Default session duration: %s\n", cfg.SessionDuration())
	fmt.Printf("  Max line bytes:           %d\n", cfg.MaxLineBytes)

	registered := cfg.Registry().Entries()
	fmt.Printf("\nRegistered log files: %d\n", len(registered))
	if len(cfg.Schemas) > 0 {
		fmt.Printf("\nSchema extensions:\n")
		for i, sc := range cfg.Schemas {
			fmt.Printf("  %d. %s/%s (%d fields)\n", i+1, sc.Category, sc.File, len(sc.Fields))
		}
	}

	return nil
}
