package table

import "time"

// FilterByTime returns the rows whose timestamp falls inside the
// inclusive [start, end] range. A nil bound leaves that side
// unconstrained. Empty or nil tables are returned unchanged; column
// kinds carry over to the result.
func FilterByTime(t *Table, start, end *time.Time) *Table {
	if t == nil || t.Len() == 0 {
		return t
	}

	keep := make([]int, 0, t.Len())
	for i, ts := range t.Timestamps {
		if start != nil && ts.Before(*start) {
			continue
		}
		if end != nil && ts.After(*end) {
			continue
		}
		keep = append(keep, i)
	}

	out := &Table{
		Timestamps: make([]time.Time, len(keep)),
		Columns:    make([]Column, len(t.Columns)),
	}
	for i, j := range keep {
		out.Timestamps[i] = t.Timestamps[j]
	}
	for c := range t.Columns {
		src := &t.Columns[c]
		vals := make([]Value, len(keep))
		for i, j := range keep {
			vals[i] = src.Values[j]
		}
		out.Columns[c] = Column{Name: src.Name, Kind: src.Kind, Values: vals}
	}
	return out
}

// TimeBounds returns the table's own min and max timestamps.
// ok is false for a nil or empty table.
func TimeBounds(t *Table) (min, max time.Time, ok bool) {
	if t == nil || t.Len() == 0 {
		return time.Time{}, time.Time{}, false
	}

	min, max = t.Timestamps[0], t.Timestamps[0]
	for _, ts := range t.Timestamps[1:] {
		if ts.Before(min) {
			min = ts
		}
		if ts.After(max) {
			max = ts
		}
	}
	return min, max, true
}
