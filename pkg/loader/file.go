// Package loader reads one log file into a normalized table, tolerating
// malformed lines and unreadable files. Failures at every level degrade
// to an absent table; nothing here panics or aborts a session load.
package loader

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"rovlog/internal/logger"
	"rovlog/pkg/parser"
	"rovlog/pkg/table"
)

const (
	initialBufBytes = 64 * 1024

	// DefaultMaxLineBytes caps a single scanned line. Oversized lines
	// surface as a file read error rather than unbounded growth.
	DefaultMaxLineBytes = 1024 * 1024

	// rejectedLineSample bounds how much of a bad line is kept for
	// diagnostics.
	rejectedLineSample = 120
)

// FileLoader parses log files into tables.
type FileLoader struct {
	threshold    float64
	maxLineBytes int
}

// Option configures a FileLoader.
type Option func(*FileLoader)

// WithNumericThreshold overrides the type-inference coercion threshold.
func WithNumericThreshold(t float64) Option {
	return func(l *FileLoader) {
		if t > 0 && t <= 1 {
			l.threshold = t
		}
	}
}

// WithMaxLineBytes overrides the per-line size cap.
func WithMaxLineBytes(n int) Option {
	return func(l *FileLoader) {
		if n > 0 {
			l.maxLineBytes = n
		}
	}
}

// New creates a FileLoader with the given options applied over
// defaults.
func New(opts ...Option) *FileLoader {
	l := &FileLoader{
		threshold:    table.DefaultNumericThreshold,
		maxLineBytes: DefaultMaxLineBytes,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Result is the outcome of loading one file. Table is nil when the file
// yielded no table, whether because it was unreadable (Err set) or had
// zero parseable lines (Err nil). Rejected lines are diagnostics, not
// failures.
type Result struct {
	Path     string
	Table    *table.Table
	Accepted int
	Rejected []parser.LineError
	Err      error
}

// Absent reports whether no table was produced.
func (r *Result) Absent() bool { return r.Table == nil }

// Load parses one log file. Never returns nil; inspect the Result for
// the absent/present outcome.
func (l *FileLoader) Load(path string) *Result {
	res := &Result{Path: path}

	f, err := os.Open(path) // #nosec G304 -- user-provided paths are expected
	if err != nil {
		res.Err = fmt.Errorf("opening log file: %w", err)
		logger.Warn("skipping %s: %v", path, res.Err)
		return res
	}
	defer f.Close()

	acc := table.NewAccumulator()
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, initialBufBytes), l.maxLineBytes)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		rec, err := parser.ParseLine(line)
		if err != nil {
			res.Rejected = append(res.Rejected, parser.LineError{
				LineNum: lineNum,
				Line:    truncate(line, rejectedLineSample),
				Err:     err,
			})
			logger.Debug("%s:%d: %v", path, lineNum, err)
			continue
		}
		acc.Append(rec)
	}
	if err := scanner.Err(); err != nil {
		res.Err = fmt.Errorf("reading log file: %w", err)
		logger.Warn("skipping %s: %v", path, res.Err)
		return res
	}

	res.Accepted = acc.Len()
	if len(res.Rejected) > 0 {
		logger.Info("%s: %d lines rejected", path, len(res.Rejected))
	}
	if res.Accepted == 0 {
		return res
	}

	t := acc.Table()
	if err := checkColumnLengths(t); err != nil {
		// Internal invariant breach; report shapes and yield absent
		// instead of handing out a corrupt table.
		res.Err = err
		logger.Error("%s: %v", path, err)
		return res
	}

	table.InferTypes(t, l.threshold)
	t.SortByTimestamp()
	res.Table = t
	return res
}

// checkColumnLengths verifies the column length invariant and, on
// breach, reports every column's length for diagnosis.
func checkColumnLengths(t *table.Table) error {
	n := t.Len()
	for i := range t.Columns {
		if len(t.Columns[i].Values) != n {
			shapes := make([]string, 0, len(t.Columns)+1)
			shapes = append(shapes, fmt.Sprintf("timestamp=%d", n))
			for j := range t.Columns {
				shapes = append(shapes, fmt.Sprintf("%s=%d", t.Columns[j].Name, len(t.Columns[j].Values)))
			}
			return fmt.Errorf("column length mismatch: %s", strings.Join(shapes, " "))
		}
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
