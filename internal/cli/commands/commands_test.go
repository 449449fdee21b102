package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"rovlog/pkg/output"
)

// writeSession builds a small session on disk and returns its path.
func writeSession(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	sessionPath := filepath.Join(root, "2024-01-15_10-30-00")

	depthDir := filepath.Join(sessionPath, "rov_data")
	if err := os.MkdirAll(depthDir, 0755); err != nil {
		t.Fatal(err)
	}
	depth := "2024-01-15 10:30:00,000000 - {\"depth\": 1.5, \"mode\": \"auto\"}\n" +
		"2024-01-15 10:30:01,000000 - {\"depth\": 2.5, \"mode\": \"auto\"}\n" +
		"2024-01-15 10:30:02,000000 - {\"depth\": 3.5, \"mode\": \"manual\"}\n"
	if err := os.WriteFile(filepath.Join(depthDir, "depth.log"), []byte(depth), 0644); err != nil {
		t.Fatal(err)
	}
	return sessionPath
}

// captureStdout runs fn with os.Stdout redirected and returns what it wrote.
func captureStdout(t *testing.T, fn func() error) (string, error) {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	os.Stdout = w

	runErr := fn()

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	_, _ = buf.ReadFrom(r)
	return buf.String(), runErr
}

func TestNewInspectCommand(t *testing.T) {
	cmd := NewInspectCommand()

	if cmd.Use != "inspect <session-dir>" {
		t.Errorf("Unexpected Use: %s", cmd.Use)
	}

	// Check flags exist
	flags := []string{"config", "output", "verbose", "quiet"}
	for _, flag := range flags {
		if cmd.Flags().Lookup(flag) == nil {
			t.Errorf("Missing flag: %s", flag)
		}
	}
}

func TestNewExtractCommand(t *testing.T) {
	cmd := NewExtractCommand()

	if cmd.Use != "extract <session-dir> <table-key> <column>" {
		t.Errorf("Unexpected Use: %s", cmd.Use)
	}

	flags := []string{"config", "output", "start", "end", "resample"}
	for _, flag := range flags {
		if cmd.Flags().Lookup(flag) == nil {
			t.Errorf("Missing flag: %s", flag)
		}
	}
}

func TestNewSessionsCommand(t *testing.T) {
	cmd := NewSessionsCommand()

	if cmd.Use != "sessions <root-dir>" {
		t.Errorf("Unexpected Use: %s", cmd.Use)
	}
	if cmd.Flags().Lookup("output") == nil {
		t.Error("Missing flag: output")
	}
}

func TestNewDiagnoseCommand(t *testing.T) {
	cmd := NewDiagnoseCommand()

	if cmd.Use != "diagnose <session-dir>" {
		t.Errorf("Unexpected Use: %s", cmd.Use)
	}
}

func TestNewValidateCommand(t *testing.T) {
	cmd := NewValidateCommand()

	if cmd.Use != "validate <config-file>" {
		t.Errorf("Unexpected Use: %s", cmd.Use)
	}
	if !strings.Contains(cmd.Long, "Validate") {
		t.Error("Missing description in Long")
	}
}

func TestNewVersionCommand(t *testing.T) {
	cmd := NewVersionCommand()

	if cmd.Use != "version" {
		t.Errorf("Unexpected Use: %s", cmd.Use)
	}
}

func TestParseTimeFlag(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantNil bool
		wantErr bool
	}{
		{"empty means unbounded", "", true, false},
		{"datetime", "2024-01-15 10:30:00", false, false},
		{"rfc3339", "2024-01-15T10:30:00Z", false, false},
		{"date only", "2024-01-15", false, false},
		{"garbage", "yesterday", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseTimeFlag(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseTimeFlag(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if (got == nil) != tt.wantNil {
				t.Errorf("parseTimeFlag(%q) = %v, wantNil %v", tt.input, got, tt.wantNil)
			}
		})
	}
}

func TestLoadConfig_NoFileEnvOverrides(t *testing.T) {
	t.Setenv("ROVLOG_NUMERIC_THRESHOLD", "0.5")
	t.Setenv("ROVLOG_SESSION_DURATION", "10m")

	cfg, err := loadConfig(context.Background(), "")
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}

	if cfg.NumericThreshold != 0.5 {
		t.Errorf("NumericThreshold = %v, want env override 0.5", cfg.NumericThreshold)
	}
	if got := cfg.SessionDuration().String(); got != "10m0s" {
		t.Errorf("SessionDuration() = %s, want env override 10m0s", got)
	}
}

func TestNewFormatter(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"text", false},
		{"json", false},
		{"yaml", true},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			_, err := newFormatter(tt.format, output.FormatOptions{})
			if (err != nil) != tt.wantErr {
				t.Errorf("newFormatter(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
			}
		})
	}
}

func TestRunInspect_Success(t *testing.T) {
	sessionPath := writeSession(t)

	out, err := captureStdout(t, func() error {
		cmd := NewInspectCommand()
		cmd.SetArgs([]string{sessionPath})
		return cmd.ExecuteContext(context.Background())
	})
	if err != nil {
		t.Fatalf("Inspect failed: %v", err)
	}

	if !strings.Contains(out, "rov_data/depth.log") {
		t.Errorf("Expected table key in output:\n%s", out)
	}
	if !strings.Contains(out, "3 rows") {
		t.Errorf("Expected row count in output:\n%s", out)
	}
}

func TestRunInspect_MissingDir(t *testing.T) {
	cmd := NewInspectCommand()
	cmd.SetArgs([]string{"/nonexistent/session"})
	cmd.SetErr(&bytes.Buffer{})

	err := cmd.ExecuteContext(context.Background())
	if err == nil {
		t.Error("Expected error for missing session directory")
	}
}

func TestRunInspect_PathIsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "not-a-dir")
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	cmd := NewInspectCommand()
	cmd.SetArgs([]string{path})
	cmd.SetErr(&bytes.Buffer{})

	err := cmd.ExecuteContext(context.Background())
	if err == nil {
		t.Error("Expected error for file path")
	}
}

func TestRunExtract_Text(t *testing.T) {
	sessionPath := writeSession(t)

	out, err := captureStdout(t, func() error {
		cmd := NewExtractCommand()
		cmd.SetArgs([]string{sessionPath, "rov_data/depth.log", "depth"})
		return cmd.ExecuteContext(context.Background())
	})
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("Expected 3 series lines, got %d:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], "1.5") {
		t.Errorf("Expected first value 1.5, got %q", lines[0])
	}
}

func TestRunExtract_TimeBounds(t *testing.T) {
	sessionPath := writeSession(t)

	out, err := captureStdout(t, func() error {
		cmd := NewExtractCommand()
		cmd.SetArgs([]string{
			"--start", "2024-01-15 10:30:01",
			"--end", "2024-01-15 10:30:01",
			sessionPath, "rov_data/depth.log", "depth",
		})
		return cmd.ExecuteContext(context.Background())
	})
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 1 {
		t.Fatalf("Expected 1 series line, got %d:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], "2.5") {
		t.Errorf("Expected bounded value 2.5, got %q", lines[0])
	}
}

func TestRunExtract_CSV(t *testing.T) {
	sessionPath := writeSession(t)

	out, err := captureStdout(t, func() error {
		cmd := NewExtractCommand()
		cmd.SetArgs([]string{"-o", "csv", sessionPath, "rov_data/depth.log", "depth"})
		return cmd.ExecuteContext(context.Background())
	})
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if !strings.HasPrefix(out, "timestamp,depth\n") {
		t.Errorf("Expected CSV header, got:\n%s", out)
	}
}

func TestRunExtract_UnknownTable(t *testing.T) {
	sessionPath := writeSession(t)

	cmd := NewExtractCommand()
	cmd.SetArgs([]string{sessionPath, "rov_data/missing.log", "depth"})
	cmd.SetErr(&bytes.Buffer{})

	err := cmd.ExecuteContext(context.Background())
	if err == nil {
		t.Fatal("Expected error for unknown table")
	}
	if !strings.Contains(err.Error(), "available: rov_data/depth.log") {
		t.Errorf("Expected available keys in error, got: %v", err)
	}
}

func TestRunExtract_UnknownColumn(t *testing.T) {
	sessionPath := writeSession(t)

	cmd := NewExtractCommand()
	cmd.SetArgs([]string{sessionPath, "rov_data/depth.log", "altitude"})
	cmd.SetErr(&bytes.Buffer{})

	err := cmd.ExecuteContext(context.Background())
	if err == nil {
		t.Fatal("Expected error for unknown column")
	}
	if !strings.Contains(err.Error(), "depth, mode") {
		t.Errorf("Expected available columns in error, got: %v", err)
	}
}

func TestRunExtract_InvalidStart(t *testing.T) {
	sessionPath := writeSession(t)

	cmd := NewExtractCommand()
	cmd.SetArgs([]string{"--start", "invalid", sessionPath, "rov_data/depth.log", "depth"})
	cmd.SetErr(&bytes.Buffer{})

	err := cmd.ExecuteContext(context.Background())
	if err == nil {
		t.Error("Expected error for invalid --start")
	} else if !strings.Contains(err.Error(), "invalid --start") {
		t.Errorf("Expected 'invalid --start' error, got: %v", err)
	}
}

func TestRunExtract_InvalidResample(t *testing.T) {
	sessionPath := writeSession(t)

	cmd := NewExtractCommand()
	cmd.SetArgs([]string{"--resample", "often", sessionPath, "rov_data/depth.log", "depth"})
	cmd.SetErr(&bytes.Buffer{})

	err := cmd.ExecuteContext(context.Background())
	if err == nil {
		t.Error("Expected error for invalid --resample")
	}
}

func TestRunSessions(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"2024-01-15_10-30-00", "2024-01-16_09-00-00", "notes"} {
		if err := os.Mkdir(filepath.Join(root, name), 0755); err != nil {
			t.Fatal(err)
		}
	}

	out, err := captureStdout(t, func() error {
		cmd := NewSessionsCommand()
		cmd.SetArgs([]string{root})
		return cmd.ExecuteContext(context.Background())
	})
	if err != nil {
		t.Fatalf("Sessions failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected 2 sessions, got %d:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "2024-01-15_10-30-00\t") {
		t.Errorf("Unexpected first line: %q", lines[0])
	}
	if strings.Contains(out, "notes") {
		t.Error("Non-session directory listed")
	}
}

func TestRunSessions_Empty(t *testing.T) {
	out, err := captureStdout(t, func() error {
		cmd := NewSessionsCommand()
		cmd.SetArgs([]string{t.TempDir()})
		return cmd.ExecuteContext(context.Background())
	})
	if err != nil {
		t.Fatalf("Sessions failed: %v", err)
	}
	if !strings.Contains(out, "No sessions found") {
		t.Errorf("Expected empty notice, got:\n%s", out)
	}
}

func TestRunValidate_Success(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	config := `numeric_threshold: 0.8
default_session_duration: 30m
schemas:
  - category: rov_data
    file: battery.log
    fields: [cell_1, cell_2]
`
	if err := os.WriteFile(configPath, []byte(config), 0644); err != nil {
		t.Fatalf("Failed to create config: %v", err)
	}

	out, err := captureStdout(t, func() error {
		cmd := NewValidateCommand()
		cmd.SetArgs([]string{configPath})
		return cmd.ExecuteContext(context.Background())
	})
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if !strings.Contains(out, "Configuration valid!") {
		t.Errorf("Expected success notice, got:\n%s", out)
	}
	if !strings.Contains(out, "battery.log") {
		t.Errorf("Expected schema extension listed, got:\n%s", out)
	}
}

func TestRunValidate_InvalidConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "invalid.yaml")
	if err := os.WriteFile(configPath, []byte("numeric_threshold: 7\n"), 0644); err != nil {
		t.Fatalf("Failed to create config: %v", err)
	}

	cmd := NewValidateCommand()
	cmd.SetArgs([]string{configPath})
	cmd.SetErr(&bytes.Buffer{})

	err := cmd.ExecuteContext(context.Background())
	if err == nil {
		t.Error("Expected error for invalid config")
	}
}

func TestRunValidate_MissingFile(t *testing.T) {
	cmd := NewValidateCommand()
	cmd.SetArgs([]string{"/nonexistent/config.yaml"})
	cmd.SetErr(&bytes.Buffer{})

	err := cmd.ExecuteContext(context.Background())
	if err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestRunDiagnose_CleanSession(t *testing.T) {
	sessionPath := writeSession(t)
	ExitCode = 0
	defer func() { ExitCode = 0 }()

	out, err := captureStdout(t, func() error {
		cmd := NewDiagnoseCommand()
		cmd.SetArgs([]string{sessionPath})
		return cmd.ExecuteContext(context.Background())
	})
	if err != nil {
		t.Fatalf("Diagnose failed: %v", err)
	}

	if !strings.Contains(out, "[PASS] Session Directory") {
		t.Errorf("Expected directory check pass, got:\n%s", out)
	}
	if !strings.Contains(out, "[PASS] Session Name") {
		t.Errorf("Expected name check pass, got:\n%s", out)
	}
	if !strings.Contains(out, "3 lines parsed") {
		t.Errorf("Expected file health line, got:\n%s", out)
	}
}

func TestRunDiagnose_MissingDir(t *testing.T) {
	ExitCode = 0
	defer func() { ExitCode = 0 }()

	out, err := captureStdout(t, func() error {
		cmd := NewDiagnoseCommand()
		cmd.SetArgs([]string{"/nonexistent/session"})
		return cmd.ExecuteContext(context.Background())
	})
	if err != nil {
		t.Fatalf("Diagnose returned error: %v", err)
	}

	if !strings.Contains(out, "[FAIL] Session Directory") {
		t.Errorf("Expected directory check failure, got:\n%s", out)
	}
	if ExitCode != 1 {
		t.Errorf("ExitCode = %d, want 1", ExitCode)
	}
}

func TestRunDiagnose_RejectedLines(t *testing.T) {
	sessionPath := writeSession(t)
	bad := "2024-01-15 10:30:00 - {\"v\": 1}\nthis line has no separator\n"
	if err := os.WriteFile(filepath.Join(sessionPath, "broken.log"), []byte(bad), 0644); err != nil {
		t.Fatal(err)
	}
	ExitCode = 0
	defer func() { ExitCode = 0 }()

	out, err := captureStdout(t, func() error {
		cmd := NewDiagnoseCommand()
		cmd.SetArgs([]string{sessionPath})
		return cmd.ExecuteContext(context.Background())
	})
	if err != nil {
		t.Fatalf("Diagnose failed: %v", err)
	}

	if !strings.Contains(out, "1 of 2 lines rejected") {
		t.Errorf("Expected rejection count, got:\n%s", out)
	}
	if ExitCode != 1 {
		t.Errorf("ExitCode = %d, want 1", ExitCode)
	}
}
