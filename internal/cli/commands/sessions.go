package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"rovlog/pkg/session"
)

// SessionsOptions holds command-line options for the sessions command.
type SessionsOptions struct {
	Output string
}

// NewSessionsCommand creates the sessions command.
func NewSessionsCommand() *cobra.Command {
	opts := &SessionsOptions{}

	cmd := &cobra.Command{
		Use:   "sessions <root-dir>",
		Short: "List session directories under a root",
		Long: `List the session directories found directly under a root directory.

A session directory is named after the run's start instant:
yyyy-mm-dd_hh-mm-ss. Anything else is ignored. A missing root is not an
error; it simply contains no sessions.

Example:
  rovlog sessions /data/dives
  rovlog sessions -o json /data/dives`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSessions(args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Output format (text|json)")

	return cmd
}

func runSessions(root string, opts *SessionsOptions) error {
	sessions := session.FindSessions(root)

	names := make([]string, 0, len(sessions))
	for name := range sessions {
		names = append(names, name)
	}
	sort.Strings(names)

	switch opts.Output {
	case "json":
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(sessions)
	case "text":
		if len(names) == 0 {
			fmt.Printf("No sessions found under %s\n", root)
			return nil
		}
		for _, name := range names {
			fmt.Printf("%s\t%s\n", name, sessions[name])
		}
		return nil
	default:
		return fmt.Errorf("unknown output format %q (use text or json)", opts.Output)
	}
}
