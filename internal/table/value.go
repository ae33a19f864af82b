package table

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Kind tags the variant held by a Value.
type Kind uint8

const (
	KindText Kind = iota
	KindNumber
)

func (k Kind) String() string {
	if k == KindNumber {
		return "number"
	}
	return "text"
}

// Value is a single cell: either a number or a string.
type Value struct {
	kind Kind
	num  float64
	str  string
}

// Number returns a numeric Value.
func Number(f float64) Value { return Value{kind: KindNumber, num: f} }

// Text returns a string Value. The string is stored as given.
func Text(s string) Value { return Value{kind: KindText, str: s} }

func (v Value) Kind() Kind { return v.kind }
func (v Value) IsNumber() bool { return v.kind == KindNumber }
func (v Value) IsText() bool { return v.kind == KindText }
func (v Value) Float() float64 { return v.num }
func (v Value) TextValue() string { return v.str }

// String renders the value the way it is shown in labels and exports.
// Numbers use the shortest decimal form that round-trips.
func (v Value) String() string {
	if v.kind == KindNumber {
		return FormatNumber(v.num)
	}
	return v.str
}

// Numeric reports the numeric reading of v: numbers as-is, text through
// ParseNumber.
func (v Value) Numeric() (float64, bool) {
	if v.kind == KindNumber {
		return v.num, true
	}
	return ParseNumber(v.str)
}

// Equal reports structural equality (same kind and same payload).
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	if v.kind == KindNumber {
		return v.num == o.num
	}
	return v.str == o.str
}

func (v Value) MarshalJSON() ([]byte, error) {
	if v.kind == KindNumber {
		return json.Marshal(v.num)
	}
	return json.Marshal(v.str)
}

// ParseNumber applies the numeric coercion rule: s is numeric iff its
// trimmed form is non-empty and parses completely as a finite decimal real.
func ParseNumber(s string) (float64, bool) {
	t := strings.TrimSpace(s)
	if t == "" {
		return 0, false
	}
	// ParseFloat also accepts inf/nan spellings, hex floats and digit
	// separators; none of them count as numeric cells.
	for i := 0; i < len(t); i++ {
		c := t[i]
		switch {
		case c >= '0' && c <= '9':
		case c == '.' || c == '+' || c == '-' || c == 'e' || c == 'E':
		default:
			return 0, false
		}
	}
	f, err := strconv.ParseFloat(t, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

// Coerce converts raw cell text into a Value: a Number when the trimmed text
// is numeric, otherwise the trimmed Text.
func Coerce(s string) Value {
	t := strings.TrimSpace(s)
	if f, ok := ParseNumber(t); ok {
		return Number(f)
	}
	return Text(t)
}

// NumericOrZero is the reading used wherever a chart needs a number: absent
// or non-numeric cells count as 0.
func NumericOrZero(v Value, present bool) float64 {
	if !present {
		return 0
	}
	f, ok := v.Numeric()
	if !ok {
		return 0
	}
	return f
}

// FormatNumber renders f in its shortest round-trip decimal form.
func FormatNumber(f float64) string {
	if f == 0 {
		return "0"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
