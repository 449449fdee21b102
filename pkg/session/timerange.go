package session

import (
	"time"

	"rovlog/pkg/table"
)

// DefaultDuration is the synthetic session length assumed when a
// session has no data to bound its end. A domain judgment call,
// overridable through configuration.
const DefaultDuration = 30 * time.Minute

// Resolve determines a session's authoritative time span.
//
// When the session name parses as a start instant, that instant is the
// start (it is set once at session creation, independent of log
// content) and the end is the maximum timestamp across all tables; with
// no data at all the end falls back to start + defaultDuration. When
// the name does not parse, the span is the global min/max of the
// tables' timestamps instead. ok is false only when the name does not
// parse and no table has any rows.
func Resolve(sessionName string, tables map[string]*table.Table, defaultDuration time.Duration) (start, end time.Time, ok bool) {
	if defaultDuration <= 0 {
		defaultDuration = DefaultDuration
	}

	named, err := time.Parse(NameLayout, sessionName)
	if err != nil {
		return dataBounds(tables)
	}

	start = named
	var haveEnd bool
	for _, t := range tables {
		_, max, ok := table.TimeBounds(t)
		if !ok {
			continue
		}
		if !haveEnd || max.After(end) {
			end = max
			haveEnd = true
		}
	}
	if !haveEnd {
		end = start.Add(defaultDuration)
	}
	return start, end, true
}

// dataBounds computes the global min/max across all tables.
func dataBounds(tables map[string]*table.Table) (start, end time.Time, ok bool) {
	for _, t := range tables {
		min, max, bounded := table.TimeBounds(t)
		if !bounded {
			continue
		}
		if !ok || min.Before(start) {
			start = min
		}
		if !ok || max.After(end) {
			end = max
		}
		ok = true
	}
	return start, end, ok
}
