// Package session discovers session directories and loads their log
// files into a keyed table set.
//
// A session directory is named after the run's nominal start instant
// (2006-01-02_15-04-05). Beneath it, known files live under their
// category directory and are keyed "category/filename"; any other .log
// file found by the recursive scan is keyed by its slash-normalized
// relative path. Keys are compared case-sensitively with no further
// canonicalization.
package session

import (
	"os"
	"path/filepath"
	"regexp"

	"github.com/bmatcuk/doublestar/v4"

	"rovlog/internal/logger"
	"rovlog/pkg/loader"
	"rovlog/pkg/schema"
	"rovlog/pkg/table"
)

// NameLayout is the time layout encoded in session directory names.
const NameLayout = "2006-01-02_15-04-05"

// namePattern accepts anything shaped like a session name. Calendar
// validity is deliberately not checked here; discovery is by shape
// only.
var namePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}_\d{2}-\d{2}-\d{2}`)

// IsSessionName reports whether a directory name is shaped like a
// session name.
func IsSessionName(name string) bool {
	return namePattern.MatchString(name)
}

// FindSessions lists the immediate subdirectories of root whose names
// are shaped like session names, keyed name -> absolute-ish path. A
// missing or unreadable root yields an empty map.
func FindSessions(root string) map[string]string {
	sessions := make(map[string]string)

	entries, err := os.ReadDir(root)
	if err != nil {
		return sessions
	}

	for _, entry := range entries {
		if entry.IsDir() && IsSessionName(entry.Name()) {
			sessions[entry.Name()] = filepath.Join(root, entry.Name())
		}
	}
	return sessions
}

// Loader loads every log file beneath a session directory.
type Loader struct {
	registry *schema.Registry
	files    *loader.FileLoader
}

// NewLoader creates a session loader using the given registry and file
// loader.
func NewLoader(registry *schema.Registry, files *loader.FileLoader) *Loader {
	return &Loader{registry: registry, files: files}
}

// Data is one loaded session. Tables holds only files that produced a
// table; Reports holds the per-file outcome for every file that was
// attempted, including absent ones, for diagnostics.
type Data struct {
	Tables  map[string]*table.Table
	Reports []*loader.Result
}

// Load reads all log files for one session. Files that fail to load are
// omitted from Tables; partial session data is normal, so there is no
// error return.
func (l *Loader) Load(sessionPath string) *Data {
	data := &Data{Tables: make(map[string]*table.Table)}
	attempted := make(map[string]bool)

	// Pass 1: files the registry knows about, keyed category/filename.
	for _, entry := range l.registry.Entries() {
		key := entry.Category + "/" + entry.Filename
		path := filepath.Join(sessionPath, entry.Category, entry.Filename)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		attempted[key] = true
		res := l.files.Load(path)
		data.Reports = append(data.Reports, res)
		if !res.Absent() {
			data.Tables[key] = res.Table
		}
	}

	// Pass 2: any .log file the registry does not cover, keyed by
	// relative path.
	matches, err := doublestar.Glob(os.DirFS(sessionPath), "**/*.log", doublestar.WithFilesOnly())
	if err != nil {
		logger.Warn("scanning %s: %v", sessionPath, err)
		return data
	}
	for _, rel := range matches {
		key := filepath.ToSlash(rel)
		if attempted[key] {
			continue
		}
		attempted[key] = true
		res := l.files.Load(filepath.Join(sessionPath, filepath.FromSlash(rel)))
		data.Reports = append(data.Reports, res)
		if !res.Absent() {
			data.Tables[key] = res.Table
		}
	}

	return data
}
