package refine

import (
	"fmt"
	"io"
	"strings"

	"github.com/KaramelBytes/datavision-cli/internal/table"
	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet that WriteXLSX fills.
const SheetName = "Refined"

// CSV renders rows as comma-separated text. The header is the first row's
// key order, joined as is; a cell containing a comma is wrapped in double
// quotes. Lines are
// joined with "\n" and there is no trailing newline. Empty input renders as
// the empty string.
func CSV(rows table.RowSet) string {
	header := rows.Header()
	if len(header) == 0 {
		return ""
	}
	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, strings.Join(header, ","))
	cells := make([]string, len(header))
	for _, r := range rows {
		for i, h := range header {
			cells[i] = ""
			if v, ok := r.Get(h); ok {
				cells[i] = v.String()
			}
		}
		lines = append(lines, joinCells(cells))
	}
	return strings.Join(lines, "\n")
}

func joinCells(cells []string) string {
	out := make([]string, len(cells))
	for i, c := range cells {
		if strings.Contains(c, ",") {
			c = `"` + c + `"`
		}
		out[i] = c
	}
	return strings.Join(out, ",")
}

// WriteCSV writes CSV(rows) to w.
func WriteCSV(w io.Writer, rows table.RowSet) error {
	_, err := io.WriteString(w, CSV(rows))
	return err
}

// WriteXLSX writes rows as a single-sheet workbook. Numbers are stored as
// numeric cells, text as strings.
func WriteXLSX(w io.Writer, rows table.RowSet) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	header := rows.Header()
	for i, h := range header {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(SheetName, cell, h); err != nil {
			return err
		}
	}
	for r, row := range rows {
		for c, h := range header {
			v, ok := row.Get(h)
			if !ok {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			var val any = v.TextValue()
			if v.IsNumber() {
				val = v.Float()
			}
			if err := f.SetCellValue(SheetName, cell, val); err != nil {
				return err
			}
		}
	}
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
