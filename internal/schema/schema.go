// Package schema classifies the columns of a row-set as numeric or
// categorical.
package schema

import "github.com/KaramelBytes/datavision-cli/internal/table"

// Classification splits the header of a row-set into numeric and categorical
// keys. Both slices keep the first row's key order.
type Classification struct {
	Numeric     []string `json:"numeric"`
	Categorical []string `json:"categorical"`
}

// Classify inspects every row. A key of the first row is numeric iff every
// row holds a numeric-coercible value at that key; a row lacking the key
// makes it categorical.
func Classify(rows table.RowSet) Classification {
	cls := Classification{Numeric: []string{}, Categorical: []string{}}
	if len(rows) == 0 {
		return cls
	}
	for _, key := range rows.Header() {
		if numericColumn(rows, key) {
			cls.Numeric = append(cls.Numeric, key)
		} else {
			cls.Categorical = append(cls.Categorical, key)
		}
	}
	return cls
}

func numericColumn(rows table.RowSet, key string) bool {
	for _, r := range rows {
		v, ok := r.Get(key)
		if !ok {
			return false
		}
		if _, ok := v.Numeric(); !ok {
			return false
		}
	}
	return true
}

// Counts returns the number of numeric and categorical columns.
func (c Classification) Counts() (numeric, categorical int) {
	return len(c.Numeric), len(c.Categorical)
}

// IsNumeric reports whether key was classified numeric.
func (c Classification) IsNumeric(key string) bool { return contains(c.Numeric, key) }

// IsCategorical reports whether key was classified categorical.
func (c Classification) IsCategorical(key string) bool { return contains(c.Categorical, key) }

// Has reports whether key is part of the schema at all.
func (c Classification) Has(key string) bool { return c.IsNumeric(key) || c.IsCategorical(key) }

func contains(keys []string, key string) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}
