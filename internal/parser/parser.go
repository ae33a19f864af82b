package parser

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/KaramelBytes/datavision-cli/internal/table"
	"github.com/gabriel-vasile/mimetype"
)

// Format names an accepted input encoding.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// Parser turns raw file content of one format into a row-set.
type Parser interface {
	Format() Format
	Extensions() []string
	MIMETypes() []string
	Parse(content []byte) (*Result, error)
}

// Result is a parsed row-set plus the non-fatal diagnostics collected on the
// way.
type Result struct {
	Format  Format
	Rows    table.RowSet
	Skipped []RowSkipped
}

var registry []Parser

// Register adds a parser implementation to the registry.
func Register(p Parser) {
	registry = append(registry, p)
}

func lookup(f Format) Parser {
	for _, p := range registry {
		if p.Format() == f {
			return p
		}
	}
	return nil
}

// DetectFormat picks the format from a file name extension or, failing that,
// a declared MIME type. Anything unrecognised yields
// *UnsupportedFileTypeError.
func DetectFormat(name, mimeType string) (Format, error) {
	for _, p := range registry {
		if hasExt(name, p.Extensions()...) {
			return p.Format(), nil
		}
	}
	if strings.TrimSpace(mimeType) != "" {
		for _, p := range registry {
			if mimetype.EqualsAny(mimeType, p.MIMETypes()...) {
				return p.Format(), nil
			}
		}
	}
	return "", &UnsupportedFileTypeError{Name: name, MIME: mimeType}
}

// Parse decodes content as the given format.
func Parse(content []byte, f Format) (*Result, error) {
	p := lookup(f)
	if p == nil {
		return nil, &UnsupportedFileTypeError{MIME: string(f)}
	}
	return p.Parse(content)
}

// ParseFile reads path, detects its format and parses it. When the extension
// says nothing, the content is sniffed for a MIME type the way an upload
// would carry one.
func ParseFile(path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	name := filepath.Base(path)
	f, err := DetectFormat(name, "")
	if err != nil {
		f, err = DetectFormat(name, SniffMIME(data))
		if err != nil {
			return nil, err
		}
	}
	return Parse(data, f)
}

// SniffMIME reports the MIME type detected from content, without parameters.
func SniffMIME(content []byte) string {
	m := mimetype.Detect(content)
	s := m.String()
	if i := strings.IndexByte(s, ';'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}

// stripBOM drops a leading UTF-8 byte order mark, as spreadsheet exports
// often carry one.
func stripBOM(content []byte) []byte {
	return bytes.TrimPrefix(content, []byte("\xef\xbb\xbf"))
}

func hasExt(filename string, exts ...string) bool {
	name := strings.ToLower(strings.TrimSpace(filename))
	for _, ext := range exts {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

func init() {
	Register(csvParser{})
	Register(jsonParser{})
}
