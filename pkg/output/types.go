// Package output provides formatting and output generation for session
// load reports.
package output

import (
	"fmt"
	"sort"
	"time"

	"rovlog/pkg/loader"
	"rovlog/pkg/session"
	"rovlog/pkg/table"
)

// Report is the complete output of loading one session.
type Report struct {
	// Summary provides aggregate statistics.
	Summary Summary

	// Tables describes every loaded table, ordered by key.
	Tables []TableInfo

	// Files records the per-file load outcome, including files that
	// produced no table.
	Files []FileInfo

	// Metadata provides context about the session.
	Metadata Metadata
}

// Summary provides aggregate statistics.
type Summary struct {
	// TablesLoaded is the number of files that produced a table.
	TablesLoaded int

	// FilesAttempted is the number of log files that were read.
	FilesAttempted int

	// FilesAbsent is the number of files that produced no table.
	FilesAbsent int

	// TotalRows is the row count across all loaded tables.
	TotalRows int

	// RejectedLines is the count of unparseable lines across all files.
	RejectedLines int
}

// TableInfo describes one loaded table.
type TableInfo struct {
	// Key is the table key (category/filename or relative path).
	Key string

	// Rows is the row count.
	Rows int

	// Columns describes the data columns in first-seen order.
	Columns []ColumnInfo

	// Start and End are the table's own timestamp bounds.
	Start time.Time
	End   time.Time
}

// ColumnInfo describes one column.
type ColumnInfo struct {
	// Name is the column name.
	Name string

	// Kind is "number" or "text".
	Kind string
}

// FileInfo records the outcome of loading one file.
type FileInfo struct {
	// Path is the file path that was read.
	Path string

	// Accepted is the number of parsed lines.
	Accepted int

	// Rejected is the number of unparseable lines.
	Rejected int

	// Absent is true when the file produced no table.
	Absent bool

	// Error is the file-level failure, empty for clean loads and for
	// files that were merely empty.
	Error string

	// Samples holds up to a few rejected-line diagnostics.
	Samples []string
}

// Metadata provides context about the session.
type Metadata struct {
	// SessionName is the session directory name.
	SessionName string

	// SessionPath is the session directory path.
	SessionPath string

	// Start and End are the resolved session bounds; meaningful only
	// when Resolved is true.
	Start time.Time
	End   time.Time

	// Resolved is false when no bounds could be determined.
	Resolved bool

	// LoadedAt is when the session was loaded.
	LoadedAt time.Time

	// Duration is how long loading took.
	Duration time.Duration
}

// maxSamples bounds rejected-line samples carried per file.
const maxSamples = 3

// NewReport builds a Report from a loaded session.
func NewReport(name, path string, data *session.Data, elapsed time.Duration, defaultDuration time.Duration) *Report {
	report := &Report{
		Metadata: Metadata{
			SessionName: name,
			SessionPath: path,
			LoadedAt:    time.Now(),
			Duration:    elapsed,
		},
	}

	start, end, ok := session.Resolve(name, data.Tables, defaultDuration)
	report.Metadata.Start = start
	report.Metadata.End = end
	report.Metadata.Resolved = ok

	keys := make([]string, 0, len(data.Tables))
	for key := range data.Tables {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		report.Tables = append(report.Tables, tableInfo(key, data.Tables[key]))
		report.Summary.TotalRows += data.Tables[key].Len()
	}

	for _, res := range data.Reports {
		report.Summary.FilesAttempted++
		report.Summary.RejectedLines += len(res.Rejected)
		if res.Absent() {
			report.Summary.FilesAbsent++
		}
		report.Files = append(report.Files, fileInfo(res))
	}
	report.Summary.TablesLoaded = len(report.Tables)

	return report
}

func tableInfo(key string, t *table.Table) TableInfo {
	info := TableInfo{Key: key, Rows: t.Len()}
	for _, col := range t.Columns {
		kind := "text"
		if col.Kind == table.KindNumber {
			kind = "number"
		}
		info.Columns = append(info.Columns, ColumnInfo{Name: col.Name, Kind: kind})
	}
	if start, end, ok := table.TimeBounds(t); ok {
		info.Start, info.End = start, end
	}
	return info
}

func fileInfo(res *loader.Result) FileInfo {
	info := FileInfo{
		Path:     res.Path,
		Accepted: res.Accepted,
		Rejected: len(res.Rejected),
		Absent:   res.Absent(),
	}
	if res.Err != nil {
		info.Error = res.Err.Error()
	}
	for i, rej := range res.Rejected {
		if i >= maxSamples {
			break
		}
		info.Samples = append(info.Samples, fmt.Sprintf("line %d: %v", rej.LineNum, rej.Err))
	}
	return info
}
