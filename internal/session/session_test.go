package session

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/KaramelBytes/datavision-cli/internal/analysis"
	"github.com/KaramelBytes/datavision-cli/internal/chart"
	"github.com/KaramelBytes/datavision-cli/internal/logging"
	"github.com/KaramelBytes/datavision-cli/internal/parser"
	"github.com/KaramelBytes/datavision-cli/internal/refine"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const scores = "name,score,team\nAlice,10,red\nBob,20,blue\nAlice,10,red\nCarl,5\n"

func TestLoadClassifiesAndLogsSkippedRows(t *testing.T) {
	var logs bytes.Buffer
	s := New(logging.New("debug", "text", &logs))
	_, err := uuid.Parse(s.ID)
	require.NoError(t, err)

	require.NoError(t, s.Load("scores.csv", "", []byte(scores)))
	assert.True(t, s.Loaded())
	assert.Equal(t, parser.FormatCSV, s.Format())
	assert.Len(t, s.Rows(), 3)
	assert.Equal(t, []parser.RowSkipped{{Line: 5, Got: 2, Want: 3}}, s.Skipped())
	assert.Equal(t, []string{"score"}, s.Classification().Numeric)
	assert.Equal(t, []string{"name", "team"}, s.Classification().Categorical)
	assert.Contains(t, s.AvailableCharts(), chart.StackedBar)
	assert.Contains(t, logs.String(), "row skipped")

	ct, m := s.Chart()
	assert.Equal(t, chart.Table, ct)
	assert.Equal(t, "name", m.XAxis)
	assert.Equal(t, "score", m.YAxis)
}

func TestFailedLoadClearsPreviousDataset(t *testing.T) {
	s := New(logging.Discard())
	require.NoError(t, s.Load("scores.csv", "", []byte(scores)))

	err := s.Load("report.pdf", "application/pdf", []byte("%PDF"))
	var ue *parser.UnsupportedFileTypeError
	require.True(t, errors.As(err, &ue))
	assert.False(t, s.Loaded())
	assert.Empty(t, s.Classification().Numeric)

	require.NoError(t, s.Load("scores.csv", "", []byte(scores)))
	err = s.Load("broken.json", "", []byte(`{"a":`))
	var fe *parser.FormatError
	require.True(t, errors.As(err, &fe))
	assert.False(t, s.Loaded())
	_, err = s.ChartData()
	assert.Error(t, err)
}

func TestSelectChartAndChartData(t *testing.T) {
	s := New(logging.Discard())
	require.NoError(t, s.Load("scores.csv", "text/csv", []byte(scores)))

	err := s.SelectChart(chart.Scatter, chart.Mapping{XAxis: "score", YAxis: "score"})
	var ce *chart.ConfigurationError
	require.True(t, errors.As(err, &ce))
	ct, _ := s.Chart()
	assert.Equal(t, chart.Table, ct)

	require.NoError(t, s.SelectChart(chart.Bar, s.DefaultMapping(chart.Bar)))
	data, err := s.ChartData()
	require.NoError(t, err)
	require.Len(t, data, 2)
	v, _ := data[0].Get("value")
	assert.Equal(t, float64(20), v.Float())

	// a mapping with unset roles surfaces as a configuration error, not a crash
	require.NoError(t, s.SelectChart(chart.GroupedBar, chart.Mapping{XAxis: "name", YAxis: "score"}))
	_, err = s.ChartData()
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, []string{"group"}, ce.Missing)
}

func TestSelectChartWithoutData(t *testing.T) {
	s := New(nil)
	var ce *chart.ConfigurationError
	require.True(t, errors.As(s.SelectChart(chart.Bar, chart.Mapping{}), &ce))
	require.True(t, errors.As(s.SelectChart(chart.Type("gantt"), chart.Mapping{}), &ce))
}

func TestRefineLeavesDatasetIntact(t *testing.T) {
	s := New(logging.Discard())
	require.NoError(t, s.Load("scores.csv", "", []byte(scores)))

	renames := refine.MergeRenames(s.Rows().Header(), map[string]string{"name": "player"}, []string{"team"})
	out := s.Refine(refine.Options{RemoveDuplicates: true}, []refine.CaseRule{{Column: "name", Mode: refine.Upper}}, renames)
	assert.Equal(t, "player,score\nALICE,10\nBOB,20", refine.CSV(out))
	assert.Len(t, s.Rows(), 3)
}

func TestLoadSampleAndFile(t *testing.T) {
	s := New(logging.Discard())
	require.NoError(t, s.LoadSample("users.json"))
	assert.Equal(t, parser.FormatJSON, s.Format())
	assert.Equal(t, "users.json", s.Name())

	require.Error(t, s.LoadSample("nope.csv"))
	assert.False(t, s.Loaded())

	dir := t.TempDir()
	path := filepath.Join(dir, "export")
	require.NoError(t, os.WriteFile(path, []byte(`[{"k":"a","v":1}]`), 0o644))
	require.NoError(t, s.LoadFile(path))
	assert.Equal(t, parser.FormatJSON, s.Format())

	require.Error(t, s.LoadFile(filepath.Join(dir, "missing.csv")))
	assert.False(t, s.Loaded())
}

func TestDescribeIncludesSkippedRows(t *testing.T) {
	s := New(logging.Discard())
	require.NoError(t, s.Load("scores.csv", "", []byte(scores)))
	md := s.Describe(analysis.DefaultOptions()).Markdown()
	assert.True(t, strings.Contains(md, "row 5 has 2 columns, header has 3; skipped"), md)
}
