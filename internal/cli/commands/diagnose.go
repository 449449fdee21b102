package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"rovlog/pkg/config"
	"rovlog/pkg/session"
)

// DiagnoseOptions holds options for the diagnose command
type DiagnoseOptions struct {
	Config  string
	Verbose bool
}

// DiagnosticResult represents the result of a single diagnostic check
type DiagnosticResult struct {
	Check    string
	Status   string // "ok", "warning", "error"
	Message  string
	Details  []string
	Suggests []string
}

// NewDiagnoseCommand creates the diagnose command
func NewDiagnoseCommand() *cobra.Command {
	opts := &DiagnoseOptions{}

	cmd := &cobra.Command{
		Use:   "diagnose <session-dir>",
		Short: "Diagnose common session data problems",
		Long: `Diagnose common problems with a session directory.

This command checks a session directory for the problems that most
often make data fail to appear:
- Directory existence and session name shape
- Presence of the known log files
- Per-file parse health (rejected lines, empty files, read errors)

Exit codes:
  0 - No problems found
  1 - Problems found
  2 - Runtime error

Example:
  rovlog diagnose /data/dives/2024-01-15_10-30-00
  rovlog diagnose -v /data/dives/2024-01-15_10-30-00  # verbose output`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiagnose(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Config, "config", "c", "", "Config file (optional)")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Show detailed diagnostic output")

	return cmd
}

func runDiagnose(ctx context.Context, sessionPath string, opts *DiagnoseOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}

	results := []DiagnosticResult{}

	// 1. Check the directory itself
	result := checkSessionDir(sessionPath)
	results = append(results, result)
	if result.Status == "error" {
		printDiagnostics(results, opts)
		ExitCode = 1
		return nil
	}

	// 2. Check the directory name shape
	results = append(results, checkSessionName(sessionPath))

	cfg, err := loadConfig(ctx, opts.Config)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// 3. Load everything and check per-file health
	data := newSessionLoader(cfg).Load(sessionPath)
	results = append(results, checkKnownFiles(cfg, sessionPath))
	results = append(results, checkFiles(data, opts)...)

	printDiagnostics(results, opts)

	for _, r := range results {
		if r.Status != "ok" {
			ExitCode = 1
			break
		}
	}
	return nil
}

func checkSessionDir(path string) DiagnosticResult {
	result := DiagnosticResult{Check: "Session Directory"}

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		result.Status = "error"
		result.Message = fmt.Sprintf("Directory not found: %s", path)
		result.Suggests = []string{
			"Check the path is correct",
			"Use 'rovlog sessions <root>' to list available sessions",
		}
		return result
	}
	if err != nil {
		result.Status = "error"
		result.Message = fmt.Sprintf("Cannot access directory: %v", err)
		result.Suggests = []string{"Check directory permissions"}
		return result
	}
	if !info.IsDir() {
		result.Status = "error"
		result.Message = "Path is a file, not a session directory"
		return result
	}

	result.Status = "ok"
	result.Message = fmt.Sprintf("Directory exists: %s", path)
	return result
}

func checkSessionName(path string) DiagnosticResult {
	result := DiagnosticResult{Check: "Session Name"}
	name := filepath.Base(filepath.Clean(path))

	if !session.IsSessionName(name) {
		result.Status = "warning"
		result.Message = fmt.Sprintf("Name %q is not shaped like yyyy-mm-dd_hh-mm-ss", name)
		result.Details = []string{
			"The session start time cannot be read from the name",
			"Time bounds will fall back to the data's own min/max",
		}
		return result
	}

	result.Status = "ok"
	result.Message = fmt.Sprintf("Name %q encodes the session start", name)
	return result
}

func checkKnownFiles(cfg *config.Config, sessionPath string) DiagnosticResult {
	result := DiagnosticResult{Check: "Known Files"}

	present := 0
	var missing []string
	for _, entry := range cfg.Registry().Entries() {
		path := filepath.Join(sessionPath, entry.Category, entry.Filename)
		if _, err := os.Stat(path); err == nil {
			present++
		} else {
			missing = append(missing, entry.Category+"/"+entry.Filename)
		}
	}

	result.Details = missing
	switch {
	case present == 0:
		result.Status = "warning"
		result.Message = "None of the known log files are present"
		result.Suggests = []string{
			"Unknown .log files are still loaded; check 'rovlog inspect' output",
		}
	case len(missing) > 0:
		result.Status = "ok"
		result.Message = fmt.Sprintf("%d of %d known files present", present, present+len(missing))
	default:
		result.Status = "ok"
		result.Message = fmt.Sprintf("All %d known files present", present)
	}
	return result
}

func checkFiles(data *session.Data, opts *DiagnoseOptions) []DiagnosticResult {
	if len(data.Reports) == 0 {
		return []DiagnosticResult{{
			Check:   "Log Files",
			Status:  "warning",
			Message: "No .log files found in the session",
		}}
	}

	var results []DiagnosticResult
	for _, res := range data.Reports {
		result := DiagnosticResult{Check: fmt.Sprintf("File %s", res.Path)}

		switch {
		case res.Err != nil:
			result.Status = "error"
			result.Message = res.Err.Error()
		case res.Accepted == 0:
			result.Status = "warning"
			result.Message = "No parseable lines; file yields no table"
			result.Suggests = []string{
				"Expected shape: YYYY-MM-DD HH:MM:SS[,ffffff] - {JSON object}",
			}
		case len(res.Rejected) > 0:
			result.Status = "warning"
			result.Message = fmt.Sprintf("%d of %d lines rejected", len(res.Rejected), res.Accepted+len(res.Rejected))
		default:
			result.Status = "ok"
			result.Message = fmt.Sprintf("%d lines parsed", res.Accepted)
		}

		for i, rej := range res.Rejected {
			if i >= 3 && !opts.Verbose {
				result.Details = append(result.Details, fmt.Sprintf("... and %d more", len(res.Rejected)-i))
				break
			}
			result.Details = append(result.Details, fmt.Sprintf("line %d: %v", rej.LineNum, rej.Err))
		}

		results = append(results, result)
	}
	return results
}

func printDiagnostics(results []DiagnosticResult, opts *DiagnoseOptions) {
	fmt.Println("=== Session Diagnostics ===")
	fmt.Println()

	okCount := 0
	warnCount := 0
	errCount := 0

	for _, r := range results {
		// Status icon
		var icon string
		switch r.Status {
		case "ok":
			icon = "PASS"
			okCount++
		case "warning":
			icon = "WARN"
			warnCount++
		case "error":
			icon = "FAIL"
			errCount++
		}

		fmt.Printf("[%s] %s\n", icon, r.Check)
		fmt.Printf("    %s\n", r.Message)

		if opts.Verbose || r.Status != "ok" {
			for _, d := range r.Details {
				fmt.Printf("      - %s\n", d)
			}
		}

		for _, s := range r.Suggests {
			fmt.Printf("      Hint: %s\n", s)
		}

		fmt.Println()
	}

	fmt.Println("---")
	fmt.Printf("Summary: %d passed, %d warnings, %d errors\n", okCount, warnCount, errCount)
}
