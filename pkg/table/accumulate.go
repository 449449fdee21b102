package table

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"time"

	"rovlog/pkg/parser"
)

// numericText matches integer or decimal literals, optionally negative.
// Textual payload values matching it are stored as numbers.
var numericText = regexp.MustCompile(`^-?\d+(\.\d+)?$`)

// Accumulator builds column-oriented storage from parsed records.
// Columns appear as their keys are first seen; rows where a column is
// absent are padded with missing markers on both sides, so every column
// always covers every accepted row.
type Accumulator struct {
	timestamps []time.Time
	order      []string
	cols       map[string][]Value
}

// NewAccumulator returns an empty accumulator.
func NewAccumulator() *Accumulator {
	return &Accumulator{cols: make(map[string][]Value)}
}

// Len returns the number of accepted rows so far.
func (a *Accumulator) Len() int {
	return len(a.timestamps)
}

// Append adds one record as the next row. Array-valued fields are
// flattened into one column per element (key_0, key_1, ...) so each
// element is an independently selectable series. Keys within a record
// are taken in sorted order, so the columns a record introduces land in
// the same order on every run.
func (a *Accumulator) Append(rec parser.Record) {
	row := len(a.timestamps)
	a.timestamps = append(a.timestamps, rec.Timestamp)

	keys := make([]string, 0, len(rec.Fields))
	for key := range rec.Fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		fv := rec.Fields[key]
		if fv.Kind == parser.KindArray {
			for i, elem := range fv.Elems {
				a.set(fmt.Sprintf("%s_%d", key, i), row, scalarCell(elem))
			}
			continue
		}
		a.set(key, row, scalarCell(fv))
	}
}

// set stores a cell, padding the column with missing markers up to the
// current row if it fell behind.
func (a *Accumulator) set(name string, row int, v Value) {
	col, ok := a.cols[name]
	if !ok {
		a.order = append(a.order, name)
	}
	for len(col) < row {
		col = append(col, None())
	}
	if len(col) == row {
		col = append(col, v)
	} else {
		col[row] = v
	}
	a.cols[name] = col
}

// Table finalizes accumulation: every column is padded to the full row
// count and the result assembled in first-seen column order. The table
// is not yet type-inferred or sorted.
func (a *Accumulator) Table() *Table {
	n := len(a.timestamps)
	t := &Table{
		Timestamps: a.timestamps,
		Columns:    make([]Column, 0, len(a.order)),
	}
	for _, name := range a.order {
		col := a.cols[name]
		for len(col) < n {
			col = append(col, None())
		}
		t.Columns = append(t.Columns, Column{Name: name, Kind: KindText, Values: col})
	}
	return t
}

// scalarCell converts one payload value into a cell. Booleans become
// 0/1, numeric-looking text becomes a number, nested arrays keep their
// textual form. Anything unexpected degrades to a missing cell instead
// of failing the row.
func scalarCell(fv parser.FieldValue) Value {
	switch fv.Kind {
	case parser.KindNumber:
		return Num(fv.Num)
	case parser.KindBool:
		if fv.Bool {
			return Num(1)
		}
		return Num(0)
	case parser.KindText:
		if numericText.MatchString(fv.Str) {
			if f, err := strconv.ParseFloat(fv.Str, 64); err == nil {
				return Num(f)
			}
		}
		return Str(fv.Str)
	case parser.KindArray:
		return Str(arrayText(fv))
	default:
		return None()
	}
}

// arrayText renders a nested array as text, for elements that cannot
// become their own columns.
func arrayText(fv parser.FieldValue) string {
	out := "["
	for i, e := range fv.Elems {
		if i > 0 {
			out += ", "
		}
		switch e.Kind {
		case parser.KindNumber:
			out += strconv.FormatFloat(e.Num, 'g', -1, 64)
		case parser.KindBool:
			out += strconv.FormatBool(e.Bool)
		case parser.KindArray:
			out += arrayText(e)
		default:
			out += e.Str
		}
	}
	return out + "]"
}
