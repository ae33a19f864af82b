package parser

import (
	"regexp"
	"strings"

	"github.com/KaramelBytes/datavision-cli/internal/table"
)

type csvParser struct{}

var lineBreak = regexp.MustCompile(`\r\n|\n`)

func (csvParser) Format() Format { return FormatCSV }
func (csvParser) Extensions() []string { return []string{".csv"} }
func (csvParser) MIMETypes() []string { return []string{"text/csv"} }

// Parse reads comma-separated text with a mandatory header line. Fields are
// split on bare commas; quoting is not interpreted.
func (csvParser) Parse(content []byte) (*Result, error) {
	text := strings.TrimSpace(string(stripBOM(content)))
	lines := lineBreak.Split(text, -1)
	if text == "" || len(lines) < 2 {
		return nil, &FormatError{Format: FormatCSV, Reason: "need a header and at least one data row"}
	}

	header := strings.Split(lines[0], ",")
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	res := &Result{Format: FormatCSV, Rows: make(table.RowSet, 0, len(lines)-1)}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "" {
			continue
		}
		fields := strings.Split(lines[i], ",")
		if len(fields) != len(header) {
			res.Skipped = append(res.Skipped, RowSkipped{Line: i + 1, Got: len(fields), Want: len(header)})
			continue
		}
		row := table.NewRow(len(header))
		for j, key := range header {
			row.Set(key, table.Coerce(fields[j]))
		}
		res.Rows = append(res.Rows, row)
	}
	return res, nil
}
