package output

import (
	"context"
	"fmt"
	"io"
	"time"
)

const timestampFormat = "2006-01-02 15:04:05"

// TextFormatter formats reports as human-readable text.
type TextFormatter struct {
	opts FormatOptions
}

// NewTextFormatter creates a new text formatter with the given options.
func NewTextFormatter(opts FormatOptions) *TextFormatter {
	return &TextFormatter{opts: opts}
}

// Name returns the format name.
func (f *TextFormatter) Name() string {
	return "text"
}

// Format renders the report as text.
func (f *TextFormatter) Format(ctx context.Context, report *Report, w io.Writer) error {
	if f.opts.Quiet {
		return f.formatQuiet(report, w)
	}
	return f.formatFull(report, w)
}

func (f *TextFormatter) formatQuiet(report *Report, w io.Writer) error {
	fmt.Fprintf(w, "%s: %d tables, %d rows, %d rejected lines\n",
		report.Metadata.SessionName,
		report.Summary.TablesLoaded,
		report.Summary.TotalRows,
		report.Summary.RejectedLines)
	return nil
}

func (f *TextFormatter) formatFull(report *Report, w io.Writer) error {
	fmt.Fprintf(w, "=== Session %s ===\n", report.Metadata.SessionName)
	fmt.Fprintln(w)

	if report.Metadata.Resolved {
		fmt.Fprintf(w, "Range: %s -> %s (duration %s)\n",
			report.Metadata.Start.Format(timestampFormat),
			report.Metadata.End.Format(timestampFormat),
			report.Metadata.End.Sub(report.Metadata.Start))
	} else {
		fmt.Fprintln(w, "Range: unknown (no data)")
	}
	fmt.Fprintln(w)

	for _, info := range report.Tables {
		f.formatTable(&info, w)
	}

	if len(report.Tables) == 0 {
		fmt.Fprintln(w, "No tables loaded")
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "---")
	fmt.Fprintf(w, "Summary: %d tables loaded (%d files read, %d absent), %d rows, %d rejected lines\n",
		report.Summary.TablesLoaded,
		report.Summary.FilesAttempted,
		report.Summary.FilesAbsent,
		report.Summary.TotalRows,
		report.Summary.RejectedLines)

	if f.opts.Verbose {
		f.formatFiles(report, w)
		fmt.Fprintf(w, "Load time: %s\n", report.Metadata.Duration.Round(time.Millisecond))
	}

	return nil
}

func (f *TextFormatter) formatTable(info *TableInfo, w io.Writer) {
	fmt.Fprintf(w, "%s\n", info.Key)
	fmt.Fprintf(w, "  %d rows, %d columns, %s -> %s\n",
		info.Rows,
		len(info.Columns),
		info.Start.Format(timestampFormat),
		info.End.Format(timestampFormat))

	if f.opts.Verbose {
		for _, col := range info.Columns {
			fmt.Fprintf(w, "    %-30s %s\n", col.Name, col.Kind)
		}
	}
	fmt.Fprintln(w)
}

func (f *TextFormatter) formatFiles(report *Report, w io.Writer) {
	for _, file := range report.Files {
		if file.Rejected == 0 && file.Error == "" && !file.Absent {
			continue
		}
		switch {
		case file.Error != "":
			fmt.Fprintf(w, "File %s: %s\n", file.Path, file.Error)
		case file.Absent:
			fmt.Fprintf(w, "File %s: no parseable lines\n", file.Path)
		default:
			fmt.Fprintf(w, "File %s: %d lines rejected\n", file.Path, file.Rejected)
		}
		for _, sample := range file.Samples {
			fmt.Fprintf(w, "  %s\n", sample)
		}
	}
}
