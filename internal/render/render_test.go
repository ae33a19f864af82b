package render

import (
	"bytes"
	"errors"
	"testing"

	"github.com/KaramelBytes/datavision-cli/internal/chart"
	"github.com/KaramelBytes/datavision-cli/internal/table"
	"github.com/KaramelBytes/datavision-cli/internal/table/tabletest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func sales() table.RowSet {
	return tabletest.Rows(
		tabletest.Row("month", "Jan", "region", "North", "units", 120, "price", 2),
		tabletest.Row("month", "Jan", "region", "South", "units", 80, "price", 3),
		tabletest.Row("month", "Feb", "region", "North", "units", 130, "price", 2.5),
		tabletest.Row("month", "Mar", "region", "East", "units", 70, "price", 4),
	)
}

func draw(t *testing.T, ct chart.Type, m chart.Mapping, f Format) []byte {
	t.Helper()
	ds, err := chart.Reshape(sales(), ct, m)
	require.NoError(t, err, ct)
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, ct, m, ds, Options{Format: f, Width: 800, Height: 400}), ct)
	return buf.Bytes()
}

func TestRenderEveryDrawableType(t *testing.T) {
	series := chart.Mapping{XAxis: "month", YAxis: "units"}
	pivot := chart.Mapping{XAxis: "month", YAxis: "units", GroupKey: "region"}
	cases := map[chart.Type]chart.Mapping{
		chart.Bar:         series,
		chart.Line:        series,
		chart.Area:        series,
		chart.Pie:         series,
		chart.Donut:       series,
		chart.Composed:    series,
		chart.Radar:       series,
		chart.RadialBar:   series,
		chart.Treemap:     series,
		chart.Funnel:      series,
		chart.StackedBar:  pivot,
		chart.GroupedBar:  pivot,
		chart.StackedArea: pivot,
		chart.Scatter:     {XAxis: "units", YAxis: "price"},
		chart.Bubble:      {XAxis: "units", YAxis: "price", ZAxis: "units"},
		chart.Heatmap:     {XAxis: "month", YAxis: "region", ValueKey: "units"},
	}
	for ct, m := range cases {
		out := draw(t, ct, m, PNG)
		assert.True(t, bytes.HasPrefix(out, pngMagic), ct)
	}
}

func TestRenderSVG(t *testing.T) {
	out := draw(t, chart.Bar, chart.Mapping{XAxis: "region", YAxis: "units"}, SVG)
	assert.Contains(t, string(out), "<svg")
	assert.Contains(t, string(out), "North")
}

func TestRenderTableIsNotDrawable(t *testing.T) {
	var buf bytes.Buffer
	err := Render(&buf, chart.Table, chart.Mapping{}, sales(), Options{})
	assert.True(t, errors.Is(err, ErrNotDrawable))
	assert.Zero(t, buf.Len())
}

func TestRenderRejectsEmptyDataset(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, Render(&buf, chart.Bar, chart.Mapping{}, nil, Options{}))
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat(" SVG ")
	require.NoError(t, err)
	assert.Equal(t, SVG, f)
	_, err = ParseFormat("gif")
	assert.Error(t, err)
}
