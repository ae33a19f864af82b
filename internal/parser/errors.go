package parser

import "fmt"

// FormatError indicates content that cannot be read as its declared format.
// No rows are returned alongside it.
type FormatError struct {
	Format Format
	Reason string
	Err    error
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid %s: %s: %v", e.Format, e.Reason, e.Err)
	}
	return fmt.Sprintf("invalid %s: %s", e.Format, e.Reason)
}

func (e *FormatError) Unwrap() error { return e.Err }

// RowSkipped is a non-fatal diagnostic for a CSV line whose field count does
// not match the header. The line is left out of the result.
type RowSkipped struct {
	Line int // 1-based line number in the trimmed content
	Got  int
	Want int
}

func (e RowSkipped) Error() string {
	return fmt.Sprintf("row %d has %d columns, header has %d; skipped", e.Line, e.Got, e.Want)
}

// UnsupportedFileTypeError is returned before parsing when neither the file
// extension nor the MIME type names a supported format.
type UnsupportedFileTypeError struct {
	Name string
	MIME string
}

func (e *UnsupportedFileTypeError) Error() string {
	switch {
	case e.Name != "" && e.MIME != "":
		return fmt.Sprintf("unsupported file type: %s (%s); use CSV or JSON", e.Name, e.MIME)
	case e.Name != "":
		return fmt.Sprintf("unsupported file type: %s; use CSV or JSON", e.Name)
	case e.MIME != "":
		return fmt.Sprintf("unsupported file type: %s; use CSV or JSON", e.MIME)
	}
	return "unsupported file type; use CSV or JSON"
}
