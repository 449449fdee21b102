package table

import "time"

// Series is one column paired with its timestamps, the shape consumed
// by plotting layers. Both slices always have equal length.
type Series struct {
	Name       string
	Kind       ValueKind
	Timestamps []time.Time
	Values     []Value
}

// Series extracts one column, optionally restricted to an inclusive
// time range. Returns ok=false if the column does not exist.
func (t *Table) Series(column string, start, end *time.Time) (Series, bool) {
	if t.Column(column) == nil {
		return Series{}, false
	}

	filtered := FilterByTime(t, start, end)
	col := filtered.Column(column)
	return Series{
		Name:       col.Name,
		Kind:       col.Kind,
		Timestamps: filtered.Timestamps,
		Values:     col.Values,
	}, true
}
