// Package tabletest builds rows for tests.
package tabletest

import (
	"fmt"

	"github.com/KaramelBytes/datavision-cli/internal/table"
)

// Row builds a row from alternating keys and values. Values may be string,
// int or float64.
func Row(kv ...any) table.Row {
	if len(kv)%2 != 0 {
		panic("tabletest.Row: odd number of arguments")
	}
	r := table.NewRow(len(kv) / 2)
	for i := 0; i < len(kv); i += 2 {
		key := kv[i].(string)
		switch v := kv[i+1].(type) {
		case string:
			r.Set(key, table.Text(v))
		case int:
			r.Set(key, table.Number(float64(v)))
		case float64:
			r.Set(key, table.Number(v))
		default:
			panic(fmt.Sprintf("tabletest.Row: unsupported value %T", v))
		}
	}
	return r
}

// Rows is shorthand for a row-set literal.
func Rows(rows ...table.Row) table.RowSet { return table.RowSet(rows) }
