package session

import (
	"os"
	"path/filepath"
	"testing"

	"rovlog/pkg/loader"
	"rovlog/pkg/schema"
)

func TestFindSessions(t *testing.T) {
	root := t.TempDir()
	dirs := []string{
		"2024-01-15_10-30-00",
		"2024-13-99_77-88-99", // calendar-invalid but pattern-shaped
		"notes",
		"2024-01-15", // too short
	}
	for _, dir := range dirs {
		if err := os.Mkdir(filepath.Join(root, dir), 0755); err != nil {
			t.Fatal(err)
		}
	}
	// A pattern-shaped plain file must be excluded too.
	if err := os.WriteFile(filepath.Join(root, "2024-02-01_00-00-00"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	sessions := FindSessions(root)

	if len(sessions) != 2 {
		t.Fatalf("Got %d sessions, want 2: %v", len(sessions), sessions)
	}
	if _, ok := sessions["2024-01-15_10-30-00"]; !ok {
		t.Error("missing 2024-01-15_10-30-00")
	}
	// Discovery is by name shape only; calendar validity is not checked.
	if _, ok := sessions["2024-13-99_77-88-99"]; !ok {
		t.Error("missing pattern-shaped session with invalid calendar values")
	}
}

func TestFindSessions_MissingRoot(t *testing.T) {
	sessions := FindSessions("/nonexistent/root")
	if len(sessions) != 0 {
		t.Errorf("Got %d sessions, want 0", len(sessions))
	}
}

func TestIsSessionName(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"2024-01-15_10-30-00", true},
		{"2024-01-15_10-30-00_copy", true}, // prefix match is enough
		{"2024-13-99_77-88-99", true},
		{"notes", false},
		{"2024-01-15", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsSessionName(tt.name); got != tt.want {
			t.Errorf("IsSessionName(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func writeSessionFile(t *testing.T, sessionPath, rel, content string) {
	t.Helper()
	path := filepath.Join(sessionPath, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func newTestLoader() *Loader {
	return NewLoader(schema.Defaults(), loader.New())
}

func TestLoad(t *testing.T) {
	sessionPath := t.TempDir()
	writeSessionFile(t, sessionPath, "rov_data/depth.log",
		`2024-01-15 10:30:00 - {"depth": 2.4}`+"\n")
	writeSessionFile(t, sessionPath, "sensor_data/sonar.log",
		`2024-01-15 10:30:01 - {"sonar_altitude_m": 8.2}`+"\n")
	// Unknown file in a nested directory.
	writeSessionFile(t, sessionPath, "extra/nested/custom.log",
		`2024-01-15 10:30:02 - {"x": 1}`+"\n")
	// Not a .log file: ignored.
	writeSessionFile(t, sessionPath, "rov_data/readme.txt", "hello\n")

	data := newTestLoader().Load(sessionPath)

	wantKeys := []string{"rov_data/depth.log", "sensor_data/sonar.log", "extra/nested/custom.log"}
	if len(data.Tables) != len(wantKeys) {
		t.Fatalf("Got %d tables, want %d: %v", len(data.Tables), len(wantKeys), data.Tables)
	}
	for _, key := range wantKeys {
		if _, ok := data.Tables[key]; !ok {
			t.Errorf("missing table %q", key)
		}
	}
}

func TestLoad_OmitsFailedFiles(t *testing.T) {
	sessionPath := t.TempDir()
	writeSessionFile(t, sessionPath, "rov_data/depth.log",
		`2024-01-15 10:30:00 - {"depth": 2.4}`+"\n")
	// No parseable lines: attempted, but absent from the table map.
	writeSessionFile(t, sessionPath, "rov_data/motor.log", "garbage\n")

	data := newTestLoader().Load(sessionPath)

	if _, ok := data.Tables["rov_data/motor.log"]; ok {
		t.Error("file with no parseable lines should be omitted")
	}
	if _, ok := data.Tables["rov_data/depth.log"]; !ok {
		t.Error("healthy sibling file should still load")
	}
	if len(data.Reports) != 2 {
		t.Errorf("Got %d reports, want 2 (failed files still reported)", len(data.Reports))
	}
}

func TestLoad_NoDuplicateKeys(t *testing.T) {
	// A registry-known file must not be loaded again by the recursive
	// scan.
	sessionPath := t.TempDir()
	writeSessionFile(t, sessionPath, "rov_data/depth.log",
		`2024-01-15 10:30:00 - {"depth": 2.4}`+"\n")

	data := newTestLoader().Load(sessionPath)

	if len(data.Reports) != 1 {
		t.Errorf("Got %d reports, want 1", len(data.Reports))
	}
	if len(data.Tables) != 1 {
		t.Errorf("Got %d tables, want 1", len(data.Tables))
	}
}

func TestLoad_EmptySession(t *testing.T) {
	data := newTestLoader().Load(t.TempDir())

	if len(data.Tables) != 0 {
		t.Errorf("Got %d tables, want 0", len(data.Tables))
	}
}

func TestLoad_UnknownFileInKnownCategory(t *testing.T) {
	sessionPath := t.TempDir()
	writeSessionFile(t, sessionPath, "rov_data/battery.log",
		`2024-01-15 10:30:00 - {"cell_1": 3.7}`+"\n")

	data := newTestLoader().Load(sessionPath)

	if _, ok := data.Tables["rov_data/battery.log"]; !ok {
		t.Error("unregistered file in a known category should load via the scan")
	}
}
