// Package table provides the normalized columnar view of one log file:
// a timestamp-ordered set of rows with numeric or textual columns, plus
// the accumulation, type inference, filtering, and series extraction
// that operate on it.
package table

import (
	"sort"
	"time"
)

// ValueKind discriminates cell values.
type ValueKind int

const (
	// KindMissing marks an absent cell. Every column has a cell at
	// every row index; absence is explicit, never an omission.
	KindMissing ValueKind = iota

	// KindNumber is a floating point cell.
	KindNumber

	// KindText is a textual cell.
	KindText
)

// Value is one cell of a column.
type Value struct {
	Kind ValueKind
	Num  float64
	Str  string
}

// Num builds a numeric cell.
func Num(f float64) Value { return Value{Kind: KindNumber, Num: f} }

// Str builds a textual cell.
func Str(s string) Value { return Value{Kind: KindText, Str: s} }

// None is the missing-cell marker.
func None() Value { return Value{Kind: KindMissing} }

// IsMissing reports whether the cell is absent.
func (v Value) IsMissing() bool { return v.Kind == KindMissing }

// Column is a named series of cells. Its length always equals the
// owning table's row count.
type Column struct {
	// Name is the column name: a payload key, or key_i for array
	// element i.
	Name string

	// Kind is the inferred dominant kind (KindNumber after a
	// successful numeric coercion, KindText otherwise).
	Kind ValueKind

	// Values holds one cell per row.
	Values []Value
}

// Table is the normalized view of one log file.
type Table struct {
	// Timestamps holds one instant per row, ascending once the table
	// has been sorted.
	Timestamps []time.Time

	// Columns holds the data columns in first-seen order.
	Columns []Column
}

// Len returns the row count.
func (t *Table) Len() int {
	return len(t.Timestamps)
}

// Column returns the column with the given name, or nil.
func (t *Table) Column(name string) *Column {
	for i := range t.Columns {
		if t.Columns[i].Name == name {
			return &t.Columns[i]
		}
	}
	return nil
}

// ColumnNames returns the column names in first-seen order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i := range t.Columns {
		names[i] = t.Columns[i].Name
	}
	return names
}

// SortByTimestamp reorders all rows ascending by timestamp. The sort is
// stable so records sharing an instant keep their file order.
func (t *Table) SortByTimestamp() {
	n := t.Len()
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return t.Timestamps[idx[a]].Before(t.Timestamps[idx[b]])
	})

	t.Timestamps = permuteTimes(t.Timestamps, idx)
	for c := range t.Columns {
		t.Columns[c].Values = permuteValues(t.Columns[c].Values, idx)
	}
}

func permuteTimes(in []time.Time, idx []int) []time.Time {
	out := make([]time.Time, len(in))
	for i, j := range idx {
		out[i] = in[j]
	}
	return out
}

func permuteValues(in []Value, idx []int) []Value {
	out := make([]Value, len(in))
	for i, j := range idx {
		out[i] = in[j]
	}
	return out
}
