package output

import (
	"context"
	"encoding/json"
	"io"
)

// JSONFormatter renders a session-load report as one JSON document, the
// shape consumed when scripting against rovlog.
type JSONFormatter struct {
	opts FormatOptions
}

// NewJSONFormatter creates a new JSON formatter with the given options.
func NewJSONFormatter(opts FormatOptions) *JSONFormatter {
	return &JSONFormatter{opts: opts}
}

// Name returns the format name.
func (f *JSONFormatter) Name() string {
	return "json"
}

// quietReport is the reduced quiet-mode document: which session, and
// the aggregate load counts, nothing per-table or per-file.
type quietReport struct {
	Session string  `json:"session"`
	Summary Summary `json:"summary"`
}

// Format writes the report as indented JSON.
func (f *JSONFormatter) Format(ctx context.Context, report *Report, w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	if f.opts.Quiet {
		return encoder.Encode(quietReport{
			Session: report.Metadata.SessionName,
			Summary: report.Summary,
		})
	}

	return encoder.Encode(report)
}
