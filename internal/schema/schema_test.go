package schema

import (
	"testing"

	"github.com/KaramelBytes/datavision-cli/internal/table"
	"github.com/KaramelBytes/datavision-cli/internal/table/tabletest"
	"github.com/stretchr/testify/assert"
)

func TestClassifyEmpty(t *testing.T) {
	cls := Classify(nil)
	assert.Empty(t, cls.Numeric)
	assert.Empty(t, cls.Categorical)
	n, c := cls.Counts()
	assert.Zero(t, n)
	assert.Zero(t, c)
}

func TestClassifyKeepsFirstRowOrder(t *testing.T) {
	rows := table.RowSet{
		tabletest.Row("name", "Alice", "score", 10, "age", "31", "city", "Oslo"),
		tabletest.Row("name", "Bob", "score", 20, "age", " 40 ", "city", "Rome"),
	}
	cls := Classify(rows)
	assert.Equal(t, []string{"score", "age"}, cls.Numeric)
	assert.Equal(t, []string{"name", "city"}, cls.Categorical)
	assert.True(t, cls.IsNumeric("age"))
	assert.True(t, cls.IsCategorical("city"))
	assert.False(t, cls.Has("missing"))
}

func TestClassifyOneBadValueFlipsColumn(t *testing.T) {
	rows := table.RowSet{
		tabletest.Row("v", 1),
		tabletest.Row("v", 2),
	}
	assert.Equal(t, []string{"v"}, Classify(rows).Numeric)

	rows = append(rows, tabletest.Row("v", "n/a"))
	cls := Classify(rows)
	assert.Empty(t, cls.Numeric)
	assert.Equal(t, []string{"v"}, cls.Categorical)
}

func TestClassifyEmptyStringAndMissingKey(t *testing.T) {
	rows := table.RowSet{
		tabletest.Row("a", 1, "b", 2),
		tabletest.Row("a", "", "b", 3),
		tabletest.Row("b", 4),
	}
	cls := Classify(rows)
	assert.Equal(t, []string{"b"}, cls.Numeric)
	assert.Equal(t, []string{"a"}, cls.Categorical)
}

func TestClassifyIgnoresKeysOutsideFirstRow(t *testing.T) {
	rows := table.RowSet{
		tabletest.Row("a", 1),
		tabletest.Row("a", 2, "extra", "x"),
	}
	cls := Classify(rows)
	assert.Equal(t, []string{"a"}, cls.Numeric)
	assert.Empty(t, cls.Categorical)
}
