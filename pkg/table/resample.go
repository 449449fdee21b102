package table

import "time"

// Resample downsamples a table for plotting density reduction: rows are
// grouped into fixed intervals and each numeric column is averaged per
// interval. Text columns are dropped (no mean exists for them) and
// intervals where every numeric cell is missing are dropped. A
// non-positive interval or an empty table is returned unchanged.
func Resample(t *Table, interval time.Duration) *Table {
	if t == nil || t.Len() == 0 || interval <= 0 {
		return t
	}

	var numeric []int
	for i := range t.Columns {
		if t.Columns[i].Kind == KindNumber {
			numeric = append(numeric, i)
		}
	}

	type bucket struct {
		start time.Time
		sum   []float64
		count []int
	}

	var buckets []*bucket
	byStart := make(map[time.Time]*bucket)

	for row, ts := range t.Timestamps {
		start := ts.Truncate(interval)
		b, ok := byStart[start]
		if !ok {
			b = &bucket{
				start: start,
				sum:   make([]float64, len(numeric)),
				count: make([]int, len(numeric)),
			}
			byStart[start] = b
			buckets = append(buckets, b)
		}
		for i, c := range numeric {
			v := t.Columns[c].Values[row]
			if v.Kind == KindNumber {
				b.sum[i] += v.Num
				b.count[i]++
			}
		}
	}

	out := &Table{Columns: make([]Column, len(numeric))}
	for i, c := range numeric {
		out.Columns[i] = Column{Name: t.Columns[c].Name, Kind: KindNumber}
	}

	for _, b := range buckets {
		any := false
		for i := range numeric {
			if b.count[i] > 0 {
				any = true
				break
			}
		}
		if !any {
			continue
		}
		out.Timestamps = append(out.Timestamps, b.start)
		for i := range numeric {
			if b.count[i] > 0 {
				out.Columns[i].Values = append(out.Columns[i].Values, Num(b.sum[i]/float64(b.count[i])))
			} else {
				out.Columns[i].Values = append(out.Columns[i].Values, None())
			}
		}
	}

	out.SortByTimestamp()
	return out
}
