package parser

import (
	"fmt"
	"time"
)

// Accepted timestamp layouts, tried in order. The logger writes
// comma-delimited fractional seconds; some writers omit the fraction.
var timestampLayouts = []string{
	"2006-01-02 15:04:05,999999",
	"2006-01-02 15:04:05",
}

// ParseTimestamp parses the timestamp prefix of a log line.
// Returns zero time and an error if no accepted layout matches.
func ParseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("timestamp %q matches no accepted layout", s)
}
