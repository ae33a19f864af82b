package parser

import (
	"github.com/KaramelBytes/datavision-cli/internal/table"
	"github.com/spf13/cast"
	"github.com/tidwall/gjson"
)

type jsonParser struct{}

func (jsonParser) Format() Format { return FormatJSON }
func (jsonParser) Extensions() []string { return []string{".json"} }
func (jsonParser) MIMETypes() []string { return []string{"application/json"} }

// Parse accepts an array of objects or an object of equal-length column
// arrays. Object key order is kept as written in the document.
func (jsonParser) Parse(content []byte) (*Result, error) {
	content = stripBOM(content)
	if !gjson.ValidBytes(content) {
		return nil, &FormatError{Format: FormatJSON, Reason: "malformed document"}
	}
	doc := gjson.ParseBytes(content)
	switch {
	case doc.IsArray():
		return parseRecords(doc)
	case doc.IsObject():
		return parseColumns(doc)
	}
	return nil, &FormatError{Format: FormatJSON, Reason: "not an array of objects or an object of arrays"}
}

func parseRecords(doc gjson.Result) (*Result, error) {
	items := doc.Array()
	res := &Result{Format: FormatJSON, Rows: make(table.RowSet, 0, len(items))}
	for i, item := range items {
		if !item.IsObject() {
			return nil, &FormatError{Format: FormatJSON, Reason: "element " + cast.ToString(i) + " is not an object"}
		}
		row := table.NewRow(0)
		item.ForEach(func(key, value gjson.Result) bool {
			if v, ok := cell(value); ok {
				row.Set(key.String(), v)
			}
			return true
		})
		res.Rows = append(res.Rows, row)
	}
	return res, nil
}

func parseColumns(doc gjson.Result) (*Result, error) {
	type column struct {
		key   string
		cells []gjson.Result
	}
	var cols []column
	n := -1
	ok := true
	doc.ForEach(func(key, value gjson.Result) bool {
		if n < 0 {
			// The first key fixes the row count and must hold an array.
			if !value.IsArray() {
				ok = false
				return false
			}
			n = len(value.Array())
		}
		if !value.IsArray() {
			return true
		}
		cells := value.Array()
		if len(cells) != n {
			return true
		}
		cols = append(cols, column{key: key.String(), cells: cells})
		return true
	})
	if !ok || n <= 0 {
		return nil, &FormatError{Format: FormatJSON, Reason: "not an array of objects or an object of arrays"}
	}

	res := &Result{Format: FormatJSON, Rows: make(table.RowSet, 0, n)}
	for i := 0; i < n; i++ {
		row := table.NewRow(len(cols))
		for _, c := range cols {
			if v, ok := cell(c.cells[i]); ok {
				row.Set(c.key, v)
			}
		}
		res.Rows = append(res.Rows, row)
	}
	return res, nil
}

// cell converts one JSON value to a table cell. Nulls are dropped; strings go
// through the numeric coercion rule but keep their original spacing when they
// stay text.
func cell(r gjson.Result) (table.Value, bool) {
	switch r.Type {
	case gjson.Null:
		return table.Value{}, false
	case gjson.Number:
		return table.Number(r.Num), true
	case gjson.String:
		if f, ok := table.ParseNumber(r.Str); ok {
			return table.Number(f), true
		}
		return table.Text(r.Str), true
	case gjson.True, gjson.False:
		return table.Text(cast.ToString(r.Bool())), true
	}
	return table.Text(r.Raw), true
}
