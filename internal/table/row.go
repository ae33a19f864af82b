package table

import (
	"bytes"
	"encoding/json"
)

// Row maps column names to values and remembers the order in which columns
// were first set.
type Row struct {
	keys []string
	vals map[string]Value
}

// NewRow returns an empty row with room for n columns.
func NewRow(n int) Row {
	return Row{keys: make([]string, 0, n), vals: make(map[string]Value, n)}
}

// Set assigns key. A new key is appended; an existing key keeps its position.
func (r *Row) Set(key string, v Value) {
	if r.vals == nil {
		r.vals = make(map[string]Value)
	}
	if _, ok := r.vals[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.vals[key] = v
}

// Get returns the value at key and whether the row has it.
func (r Row) Get(key string) (Value, bool) {
	v, ok := r.vals[key]
	return v, ok
}

// Has reports whether the row carries key.
func (r Row) Has(key string) bool {
	_, ok := r.vals[key]
	return ok
}

// Keys returns the column names in insertion order. The slice is a copy.
func (r Row) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

// Len is the number of columns in the row.
func (r Row) Len() int { return len(r.keys) }

// Values returns the cell values in key order.
func (r Row) Values() []Value {
	out := make([]Value, len(r.keys))
	for i, k := range r.keys {
		out[i] = r.vals[k]
	}
	return out
}

// Each calls fn for every column in order until fn returns false.
func (r Row) Each(fn func(key string, v Value) bool) {
	for _, k := range r.keys {
		if !fn(k, r.vals[k]) {
			return
		}
	}
}

// Clone returns an independent copy of r.
func (r Row) Clone() Row {
	c := NewRow(len(r.keys))
	for _, k := range r.keys {
		c.Set(k, r.vals[k])
	}
	return c
}

// Equal reports whether both rows hold the same keys in the same order with
// equal values.
func (r Row) Equal(o Row) bool {
	if len(r.keys) != len(o.keys) {
		return false
	}
	for i, k := range r.keys {
		if o.keys[i] != k || !r.vals[k].Equal(o.vals[k]) {
			return false
		}
	}
	return true
}

// MarshalJSON encodes the row as a JSON object with keys in row order.
func (r Row) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	b.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			b.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		b.Write(kb)
		b.WriteByte(':')
		vb, err := r.vals[k].MarshalJSON()
		if err != nil {
			return nil, err
		}
		b.Write(vb)
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}

// RowSet is an ordered sequence of rows. The first row is the schema source.
type RowSet []Row

// Header returns the key order of the first row, or nil for an empty set.
func (rs RowSet) Header() []string {
	if len(rs) == 0 {
		return nil
	}
	return rs[0].Keys()
}

// Clone deep-copies every row.
func (rs RowSet) Clone() RowSet {
	if rs == nil {
		return nil
	}
	out := make(RowSet, len(rs))
	for i, r := range rs {
		out[i] = r.Clone()
	}
	return out
}

// Equal reports element-wise row equality.
func (rs RowSet) Equal(o RowSet) bool {
	if len(rs) != len(o) {
		return false
	}
	for i := range rs {
		if !rs[i].Equal(o[i]) {
			return false
		}
	}
	return true
}
