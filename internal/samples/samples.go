// Package samples bundles the demo datasets offered alongside user files.
package samples

import (
	"embed"
	"fmt"
	"path"
	"sort"
)

//go:embed data/*
var files embed.FS

// Sample describes one bundled dataset.
type Sample struct {
	Name  string // file name, e.g. "sales.csv"
	Title string
	MIME  string
}

var catalog = []Sample{
	{Name: "sales.csv", Title: "Sales Data", MIME: "text/csv"},
	{Name: "users.json", Title: "User Demographics", MIME: "application/json"},
}

// NotFoundError is returned for a name that is not bundled.
type NotFoundError struct{ Name string }

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("unknown sample %q (available: %v)", e.Name, Names())
}

// List returns every bundled sample.
func List() []Sample {
	out := make([]Sample, len(catalog))
	copy(out, catalog)
	return out
}

// Names returns the bundled file names, sorted.
func Names() []string {
	out := make([]string, len(catalog))
	for i, s := range catalog {
		out[i] = s.Name
	}
	sort.Strings(out)
	return out
}

// Open returns the content and MIME type of a bundled sample.
func Open(name string) ([]byte, string, error) {
	for _, s := range catalog {
		if s.Name != name {
			continue
		}
		b, err := files.ReadFile(path.Join("data", s.Name))
		if err != nil {
			return nil, "", fmt.Errorf("read sample: %w", err)
		}
		return b, s.MIME, nil
	}
	return nil, "", &NotFoundError{Name: name}
}
