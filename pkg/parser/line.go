package parser

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// separator splits the timestamp prefix from the JSON payload. Only the
// first occurrence counts; the payload may contain " - " freely.
const separator = " - "

// Sentinel rejection reasons. Callers can classify a LineError with
// errors.Is.
var (
	// ErrMissingSeparator means the line has no " - " separator.
	ErrMissingSeparator = errors.New("missing timestamp separator")

	// ErrBadTimestamp means the prefix matched no accepted layout.
	ErrBadTimestamp = errors.New("unparseable timestamp")

	// ErrBadPayload means the payload is not a JSON object.
	ErrBadPayload = errors.New("unparseable payload")
)

// ParseLine parses one raw log line into a Record.
// A failed parse returns a zero Record and a reason wrapping one of the
// sentinel errors above.
func ParseLine(line string) (Record, error) {
	prefix, payload, found := strings.Cut(line, separator)
	if !found {
		return Record{}, ErrMissingSeparator
	}

	ts, err := ParseTimestamp(prefix)
	if err != nil {
		return Record{}, fmt.Errorf("%w: %v", ErrBadTimestamp, err)
	}

	fields, err := parsePayload(payload)
	if err != nil {
		return Record{}, fmt.Errorf("%w: %v", ErrBadPayload, err)
	}

	return Record{Timestamp: ts, Fields: fields}, nil
}

// parsePayload decodes the JSON object portion of a line into typed
// field values.
func parsePayload(payload string) (map[string]FieldValue, error) {
	dec := json.NewDecoder(strings.NewReader(payload))
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	// The object must be the whole payload. Anything after it means the
	// line is corrupt, not a record with extra decoration.
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("trailing data after object")
	}

	fields := make(map[string]FieldValue, len(raw))
	for key, value := range raw {
		fv, ok := fromJSON(value)
		if !ok {
			// JSON null: the field is present but carries no value.
			// The accumulator records it as missing.
			continue
		}
		fields[key] = fv
	}
	return fields, nil
}

// fromJSON converts a decoded JSON value into the FieldValue variant.
// Returns ok=false for JSON null. Nested objects have no columnar
// mapping and are kept as their compact JSON text.
func fromJSON(value any) (FieldValue, bool) {
	switch v := value.(type) {
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return Text(v.String()), true
		}
		return Number(f), true
	case string:
		return Text(v), true
	case bool:
		return Bool(v), true
	case []any:
		elems := make([]FieldValue, 0, len(v))
		for _, e := range v {
			fe, ok := fromJSON(e)
			if !ok {
				fe = Text("")
			}
			elems = append(elems, fe)
		}
		return Array(elems...), true
	case nil:
		return FieldValue{}, false
	default:
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		if err := enc.Encode(v); err != nil {
			return Text(fmt.Sprint(v)), true
		}
		return Text(strings.TrimSuffix(buf.String(), "\n")), true
	}
}
