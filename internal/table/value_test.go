package table

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoerce(t *testing.T) {
	cases := []struct {
		in   string
		want Value
	}{
		{"42", Number(42)},
		{"42.5", Number(42.5)},
		{"abc", Text("abc")},
		{"  7  ", Number(7)},
		{"", Text("")},
		{"   ", Text("")},
		{"-3e2", Number(-300)},
		{".5", Number(0.5)},
		{"NaN", Text("NaN")},
		{"Infinity", Text("Infinity")},
		{"inf", Text("inf")},
		{"1e400", Text("1e400")},
		{"0x1p-2", Text("0x1p-2")},
		{"1_000", Text("1_000")},
		{"12abc", Text("12abc")},
		{" Bob ", Text("Bob")},
	}
	for _, c := range cases {
		got := Coerce(c.in)
		assert.Truef(t, got.Equal(c.want), "Coerce(%q) = %#v, want %#v", c.in, got, c.want)
	}
}

func TestValueNumeric(t *testing.T) {
	f, ok := Text(" 12 ").Numeric()
	require.True(t, ok)
	assert.Equal(t, 12.0, f)

	_, ok = Text("x").Numeric()
	assert.False(t, ok)

	assert.Equal(t, 0.0, NumericOrZero(Text("x"), true))
	assert.Equal(t, 0.0, NumericOrZero(Number(3), false))
	assert.Equal(t, 3.0, NumericOrZero(Number(3), true))
}

func TestValueString(t *testing.T) {
	assert.Equal(t, "20", Number(20).String())
	assert.Equal(t, "42.5", Number(42.5).String())
	assert.Equal(t, "0", Number(0).String())
	assert.Equal(t, "hi", Text("hi").String())
}

func TestRowOrderAndJSON(t *testing.T) {
	r := NewRow(3)
	r.Set("name", Text("Alice"))
	r.Set("score", Number(10))
	r.Set("name", Text("Bob"))

	assert.Equal(t, []string{"name", "score"}, r.Keys())
	v, ok := r.Get("name")
	require.True(t, ok)
	assert.Equal(t, "Bob", v.TextValue())

	b, err := json.Marshal(r)
	require.NoError(t, err)
	assert.Equal(t, `{"name":"Bob","score":10}`, string(b))
}

func TestRowCloneIsIndependent(t *testing.T) {
	r := NewRow(1)
	r.Set("a", Number(1))
	c := r.Clone()
	c.Set("a", Number(2))
	c.Set("b", Text("x"))

	v, _ := r.Get("a")
	assert.Equal(t, 1.0, v.Float())
	assert.False(t, r.Has("b"))
	assert.False(t, r.Equal(c))
}

func TestRowSetHeader(t *testing.T) {
	assert.Nil(t, RowSet(nil).Header())
	r := NewRow(2)
	r.Set("x", Text("a"))
	r.Set("y", Number(1))
	assert.Equal(t, []string{"x", "y"}, RowSet{r}.Header())
}
