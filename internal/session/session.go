// Package session holds the one dataset currently in view together with the
// state derived from it: classification, chosen chart and role mapping.
package session

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/KaramelBytes/datavision-cli/internal/analysis"
	"github.com/KaramelBytes/datavision-cli/internal/chart"
	"github.com/KaramelBytes/datavision-cli/internal/logging"
	"github.com/KaramelBytes/datavision-cli/internal/parser"
	"github.com/KaramelBytes/datavision-cli/internal/refine"
	"github.com/KaramelBytes/datavision-cli/internal/samples"
	"github.com/KaramelBytes/datavision-cli/internal/schema"
	"github.com/KaramelBytes/datavision-cli/internal/table"
	"github.com/google/uuid"
)

// Session is single-owner state; it is not safe for concurrent use.
type Session struct {
	ID  string
	log *slog.Logger

	name    string
	format  parser.Format
	rows    table.RowSet
	skipped []parser.RowSkipped
	cls     schema.Classification

	chartType chart.Type
	mapping   chart.Mapping
}

// New returns an empty session. A nil logger means slog.Default().
func New(log *slog.Logger) *Session {
	id := uuid.NewString()
	return &Session{
		ID:        id,
		log:       logging.OrDefault(log).With("session", id),
		chartType: chart.Table,
	}
}

// Load detects the format of content, parses it and replaces the current
// dataset. On failure the previous dataset is dropped and the error returned.
func (s *Session) Load(name, mimeType string, content []byte) error {
	s.Reset()
	f, err := parser.DetectFormat(name, mimeType)
	if err != nil {
		s.log.Debug("format detection failed", "file", name, "mime", mimeType, "error", err)
		return err
	}
	res, err := parser.Parse(content, f)
	if err != nil {
		s.log.Debug("parse failed", "file", name, "format", f, "error", err)
		return err
	}

	s.name = name
	s.format = f
	s.rows = res.Rows
	s.skipped = res.Skipped
	s.cls = schema.Classify(res.Rows)
	s.chartType = chart.Table
	s.mapping = chart.DefaultMapping(chart.Table, s.cls, res.Rows.Header())

	for _, sk := range res.Skipped {
		s.log.Warn("row skipped", "file", name, "line", sk.Line, "got", sk.Got, "want", sk.Want)
	}
	n, c := s.cls.Counts()
	s.log.Info("dataset loaded", "file", name, "format", f, "rows", len(res.Rows), "numeric", n, "categorical", c)
	return nil
}

// LoadFile reads path and loads it. Without a recognised extension the
// content is sniffed for a MIME type.
func (s *Session) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		s.Reset()
		return fmt.Errorf("read file: %w", err)
	}
	name := filepath.Base(path)
	mime := ""
	if _, err := parser.DetectFormat(name, ""); err != nil {
		mime = parser.SniffMIME(data)
	}
	return s.Load(name, mime, data)
}

// LoadSample loads one of the bundled datasets.
func (s *Session) LoadSample(name string) error {
	content, mime, err := samples.Open(name)
	if err != nil {
		s.Reset()
		return err
	}
	return s.Load(name, mime, content)
}

// Reset drops the dataset and everything derived from it.
func (s *Session) Reset() {
	s.name = ""
	s.format = ""
	s.rows = nil
	s.skipped = nil
	s.cls = schema.Classification{Numeric: []string{}, Categorical: []string{}}
	s.chartType = chart.Table
	s.mapping = chart.Mapping{}
}

// Loaded reports whether a dataset is in view.
func (s *Session) Loaded() bool { return s.rows != nil }

func (s *Session) Name() string          { return s.name }
func (s *Session) Format() parser.Format { return s.format }

// Rows returns a copy of the loaded rows.
func (s *Session) Rows() table.RowSet { return s.rows.Clone() }

// Skipped returns the diagnostics collected while parsing.
func (s *Session) Skipped() []parser.RowSkipped {
	return append([]parser.RowSkipped(nil), s.skipped...)
}

func (s *Session) Classification() schema.Classification { return s.cls }

// AvailableCharts lists the chart types the current schema allows.
func (s *Session) AvailableCharts() []chart.Type { return chart.Available(s.cls) }

// Chart returns the selected chart type and role mapping.
func (s *Session) Chart() (chart.Type, chart.Mapping) { return s.chartType, s.mapping }

// DefaultMapping proposes roles for t from the loaded schema.
func (s *Session) DefaultMapping(t chart.Type) chart.Mapping {
	return chart.DefaultMapping(t, s.cls, s.rows.Header())
}

// SelectChart switches to t with mapping m. Types the schema does not allow
// are rejected with *chart.ConfigurationError and the selection is kept.
func (s *Session) SelectChart(t chart.Type, m chart.Mapping) error {
	if !t.Valid() {
		return &chart.ConfigurationError{Chart: t, Reason: "unknown chart type"}
	}
	if !s.Loaded() {
		return &chart.ConfigurationError{Chart: t, Reason: "no data loaded"}
	}
	if n, c := s.cls.Counts(); !chart.IsAvailable(t, n, c) {
		return &chart.ConfigurationError{Chart: t, Reason: fmt.Sprintf("not available for %d numeric and %d categorical columns", n, c)}
	}
	s.chartType, s.mapping = t, m
	s.log.Debug("chart selected", "type", t, "mapping", m)
	return nil
}

// ChartData reshapes the loaded rows for the selected chart. It is computed
// from scratch on every call.
func (s *Session) ChartData() (table.RowSet, error) {
	return chart.Reshape(s.rows, s.chartType, s.mapping)
}

// Refine runs the refinement pipeline over the loaded rows. The session's
// dataset is not changed.
func (s *Session) Refine(opts refine.Options, rules []refine.CaseRule, renames []refine.Rename) table.RowSet {
	out := refine.Refine(s.rows, opts, rules, renames)
	s.log.Debug("refined", "in", len(s.rows), "out", len(out))
	return out
}

// Describe builds the analysis report for the loaded rows, noting any
// skipped lines.
func (s *Session) Describe(opt analysis.Options) *analysis.Report {
	rep := analysis.Describe(s.name, s.rows, opt)
	for _, sk := range s.skipped {
		rep.Warnings = append(rep.Warnings, sk.Error())
	}
	return rep
}
