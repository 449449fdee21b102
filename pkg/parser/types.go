// Package parser turns raw log lines into timestamped, typed records.
//
// Each line has the shape:
//
//	YYYY-MM-DD HH:MM:SS[,ffffff] - {<JSON object>}
//
// Lines that do not match are rejected individually; rejection is data
// for diagnostics, never a reason to abandon the rest of a file.
package parser

import "time"

// FieldKind discriminates the payload value variant.
type FieldKind int

const (
	// KindNumber is a JSON number.
	KindNumber FieldKind = iota

	// KindText is a JSON string (or any value with no better mapping).
	KindText

	// KindBool is a JSON boolean.
	KindBool

	// KindArray is a JSON array of nested values.
	KindArray
)

// FieldValue is the closed variant for payload values. Exactly one of
// the payload fields is meaningful, selected by Kind. It exists only at
// the parse boundary; the table package converts it into per-column
// storage immediately.
type FieldValue struct {
	Kind  FieldKind
	Num   float64
	Str   string
	Bool  bool
	Elems []FieldValue
}

// Number builds a numeric FieldValue.
func Number(f float64) FieldValue { return FieldValue{Kind: KindNumber, Num: f} }

// Text builds a textual FieldValue.
func Text(s string) FieldValue { return FieldValue{Kind: KindText, Str: s} }

// Bool builds a boolean FieldValue.
func Bool(b bool) FieldValue { return FieldValue{Kind: KindBool, Bool: b} }

// Array builds an array FieldValue.
func Array(elems ...FieldValue) FieldValue { return FieldValue{Kind: KindArray, Elems: elems} }

// Record is one successfully parsed log line.
type Record struct {
	// Timestamp is the instant parsed from the line prefix.
	Timestamp time.Time

	// Fields maps payload keys to their typed values.
	Fields map[string]FieldValue
}

// LineError describes a single rejected line.
type LineError struct {
	// LineNum is the 1-based line number in the source file.
	LineNum int

	// Line is the offending raw line, truncated for reporting.
	Line string

	// Err is the rejection reason.
	Err error
}

func (e LineError) Error() string {
	return e.Err.Error()
}
