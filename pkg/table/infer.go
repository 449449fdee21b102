package table

import "strconv"

// DefaultNumericThreshold is the fraction of non-missing values that
// must coerce to numeric before a column is re-typed as numeric. A
// domain judgment call, overridable through configuration.
const DefaultNumericThreshold = 0.8

// InferTypes re-types each column after accumulation. A column whose
// non-missing values coerce to numeric in more than the threshold
// fraction is replaced by the coercion, with failures becoming missing;
// otherwise the column keeps its accumulated mixed content and stays
// text-typed. The timestamp column is not a data column and is never
// touched.
func InferTypes(t *Table, threshold float64) {
	if threshold <= 0 {
		threshold = DefaultNumericThreshold
	}

	for i := range t.Columns {
		inferColumn(&t.Columns[i], threshold)
	}
}

func inferColumn(col *Column, threshold float64) {
	nonMissing := 0
	coercible := 0
	for _, v := range col.Values {
		switch v.Kind {
		case KindMissing:
			continue
		case KindNumber:
			nonMissing++
			coercible++
		case KindText:
			nonMissing++
			if _, err := strconv.ParseFloat(v.Str, 64); err == nil {
				coercible++
			}
		}
	}

	if nonMissing == 0 {
		return
	}
	if float64(coercible)/float64(nonMissing) <= threshold {
		return
	}

	for j, v := range col.Values {
		switch v.Kind {
		case KindNumber, KindMissing:
			// already in final form
		case KindText:
			if f, err := strconv.ParseFloat(v.Str, 64); err == nil {
				col.Values[j] = Num(f)
			} else {
				col.Values[j] = None()
			}
		}
	}
	col.Kind = KindNumber
}
