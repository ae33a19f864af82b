// Package render draws chart-ready datasets to PNG or SVG with go-chart.
package render

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	vchart "github.com/KaramelBytes/datavision-cli/internal/chart"
	"github.com/KaramelBytes/datavision-cli/internal/table"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ErrNotDrawable is returned for chart types that have no image form.
var ErrNotDrawable = errors.New("chart type has no image rendering; use JSON output")

// Format is the output image encoding.
type Format string

const (
	PNG Format = "png"
	SVG Format = "svg"
)

// ParseFormat accepts png or svg, case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case PNG, SVG:
		return f, nil
	}
	return "", fmt.Errorf("unknown image format %q (use png or svg)", s)
}

// Options sizes and titles the image.
type Options struct {
	Format Format
	Width  int
	Height int
	Title  string
}

func (o Options) provider() chart.RendererProvider {
	if o.Format == SVG {
		return chart.SVG
	}
	return chart.PNG
}

func (o Options) size() (int, int) {
	w, h := o.Width, o.Height
	if w <= 0 {
		w = 1024
	}
	if h <= 0 {
		h = 512
	}
	return w, h
}

// Render draws ds, the output of chart.Reshape for t and m, to w.
func Render(w io.Writer, t vchart.Type, m vchart.Mapping, ds table.RowSet, opts Options) error {
	if t == vchart.Table {
		return ErrNotDrawable
	}
	if !t.Valid() {
		return fmt.Errorf("render: unknown chart type %q", t)
	}
	if len(ds) == 0 {
		return fmt.Errorf("render %s: no records", t.Label())
	}
	if opts.Title == "" {
		opts.Title = t.Label()
	}

	var err error
	switch t {
	case vchart.Line, vchart.Area:
		err = renderLine(w, t == vchart.Area, seriesOf(t, m, ds), opts)
	case vchart.Pie, vchart.Donut:
		err = renderPie(w, seriesOf(t, m, ds), opts)
	case vchart.Scatter, vchart.Bubble:
		err = renderPoints(w, m, ds, opts)
	case vchart.Heatmap:
		err = renderHeatmap(w, m, ds, opts)
	default:
		switch t.Family() {
		case vchart.FamilyPivot:
			err = renderStacked(w, m, ds, opts)
		default:
			err = renderBar(w, seriesOf(t, m, ds), opts)
		}
	}
	if err != nil {
		return fmt.Errorf("render %s: %w", t.Label(), err)
	}
	return nil
}

type point struct {
	label string
	value float64
}

// seriesOf reads (label, value) pairs from single-series datasets.
func seriesOf(t vchart.Type, m vchart.Mapping, ds table.RowSet) []point {
	labelKey, valueKey := "name", "value"
	if t.Family() == vchart.FamilyComposed {
		labelKey, valueKey = m.XAxis, m.YAxis
	}
	out := make([]point, 0, len(ds))
	for _, rec := range ds {
		l, _ := rec.Get(labelKey)
		v, ok := rec.Get(valueKey)
		out = append(out, point{label: l.String(), value: table.NumericOrZero(v, ok)})
	}
	return out
}

func color(i int) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(vchart.Palette[i%len(vchart.Palette)], "#"))
}

// valueRange pads a degenerate range so go-chart accepts it, and always
// includes zero.
func valueRange(vals []float64) *chart.ContinuousRange {
	lo, hi := 0.0, 0.0
	for _, v := range vals {
		lo, hi = math.Min(lo, v), math.Max(hi, v)
	}
	if hi == lo {
		hi = lo + 1
	}
	return &chart.ContinuousRange{Min: lo, Max: hi}
}

func categoryAxis(labels []string) chart.XAxis {
	ticks := make([]chart.Tick, len(labels))
	for i, l := range labels {
		ticks[i] = chart.Tick{Value: float64(i), Label: l}
	}
	return chart.XAxis{
		Ticks: ticks,
		Range: &chart.ContinuousRange{Min: -0.5, Max: float64(len(labels)) - 0.5},
	}
}

func renderBar(w io.Writer, pts []point, opts Options) error {
	bars := make([]chart.Value, len(pts))
	vals := make([]float64, len(pts))
	for i, p := range pts {
		bars[i] = chart.Value{
			Label: p.label,
			Value: p.value,
			Style: chart.Style{FillColor: color(i), StrokeColor: color(i)},
		}
		vals[i] = p.value
	}
	width, height := opts.size()
	bc := chart.BarChart{
		Title:      opts.Title,
		Width:      width,
		Height:     height,
		Background: chart.Style{Padding: chart.Box{Top: 40}},
		YAxis:      chart.YAxis{Range: valueRange(vals)},
		Bars:       bars,
	}
	return bc.Render(opts.provider(), w)
}

func renderLine(w io.Writer, filled bool, pts []point, opts Options) error {
	xs := make([]float64, len(pts))
	ys := make([]float64, len(pts))
	labels := make([]string, len(pts))
	for i, p := range pts {
		xs[i], ys[i], labels[i] = float64(i), p.value, p.label
	}
	st := chart.Style{StrokeColor: color(0), StrokeWidth: 2}
	if filled {
		st.FillColor = color(0).WithAlpha(96)
	}
	width, height := opts.size()
	c := chart.Chart{
		Title:  opts.Title,
		Width:  width,
		Height: height,
		XAxis:  categoryAxis(labels),
		YAxis:  chart.YAxis{Range: valueRange(ys)},
		Series: []chart.Series{chart.ContinuousSeries{Name: "value", XValues: xs, YValues: ys, Style: st}},
	}
	return c.Render(opts.provider(), w)
}

func renderPie(w io.Writer, pts []point, opts Options) error {
	vals := make([]chart.Value, 0, len(pts))
	for i, p := range pts {
		if p.value <= 0 {
			continue
		}
		vals = append(vals, chart.Value{Label: p.label, Value: p.value, Style: chart.Style{FillColor: color(i)}})
	}
	if len(vals) == 0 {
		return errors.New("no positive values to draw")
	}
	width, height := opts.size()
	pc := chart.PieChart{Title: opts.Title, Width: width, Height: height, Values: vals}
	return pc.Render(opts.provider(), w)
}

// renderStacked draws one stacked bar per x label, one segment per group.
func renderStacked(w io.Writer, m vchart.Mapping, ds table.RowSet, opts Options) error {
	bars := make([]chart.StackedBar, 0, len(ds))
	for _, rec := range ds {
		x, _ := rec.Get(m.XAxis)
		sb := chart.StackedBar{Name: x.String()}
		i := 0
		rec.Each(func(k string, v table.Value) bool {
			if k == m.XAxis {
				return true
			}
			sb.Values = append(sb.Values, chart.Value{
				Label: k,
				Value: table.NumericOrZero(v, true),
				Style: chart.Style{FillColor: color(i), StrokeColor: color(i)},
			})
			i++
			return true
		})
		bars = append(bars, sb)
	}
	width, height := opts.size()
	sbc := chart.StackedBarChart{
		Title:      opts.Title,
		Width:      width,
		Height:     height,
		Background: chart.Style{Padding: chart.Box{Top: 40}},
		Bars:       bars,
	}
	return sbc.Render(opts.provider(), w)
}

// pointStyle renders points only, with no connecting line.
func pointStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeWidth: chart.Disabled,
		DotWidth:    5,
		DotColor:    col,
	}
}

func renderPoints(w io.Writer, m vchart.Mapping, ds table.RowSet, opts Options) error {
	xs := make([]float64, len(ds))
	ys := make([]float64, len(ds))
	for i, rec := range ds {
		x, okx := rec.Get(m.XAxis)
		y, oky := rec.Get(m.YAxis)
		xs[i], ys[i] = table.NumericOrZero(x, okx), table.NumericOrZero(y, oky)
	}
	width, height := opts.size()
	c := chart.Chart{
		Title:  opts.Title,
		Width:  width,
		Height: height,
		XAxis:  chart.XAxis{Name: m.XAxis, Range: valueRange(xs)},
		YAxis:  chart.YAxis{Name: m.YAxis, Range: valueRange(ys)},
		Series: []chart.Series{chart.ContinuousSeries{Name: m.YAxis, XValues: xs, YValues: ys, Style: pointStyle(color(0))}},
	}
	return c.Render(opts.provider(), w)
}

// renderHeatmap places categories on both axes by first-seen index and draws
// one dot per cell, colored by the value's quintile.
func renderHeatmap(w io.Writer, m vchart.Mapping, ds table.RowSet, opts Options) error {
	xIdx, yIdx := indexer{}, indexer{}
	lo, hi := math.Inf(1), math.Inf(-1)
	type cell struct{ x, y, v float64 }
	cells := make([]cell, 0, len(ds))
	for _, rec := range ds {
		x, _ := rec.Get(m.XAxis)
		y, _ := rec.Get(m.YAxis)
		v, ok := rec.Get("value")
		c := cell{x: xIdx.of(x.String()), y: yIdx.of(y.String()), v: table.NumericOrZero(v, ok)}
		lo, hi = math.Min(lo, c.v), math.Max(hi, c.v)
		cells = append(cells, c)
	}
	buckets := make([][2][]float64, len(vchart.Palette))
	for _, c := range cells {
		b := 0
		if hi > lo {
			b = int((c.v - lo) / (hi - lo) * float64(len(buckets)-1))
		}
		buckets[b][0] = append(buckets[b][0], c.x)
		buckets[b][1] = append(buckets[b][1], c.y)
	}
	var series []chart.Series
	for i, b := range buckets {
		if len(b[0]) == 0 {
			continue
		}
		st := pointStyle(color(i))
		st.DotWidth = 12
		series = append(series, chart.ContinuousSeries{XValues: b[0], YValues: b[1], Style: st})
	}
	yAxis := categoryAxis(yIdx.labels)
	width, height := opts.size()
	c := chart.Chart{
		Title:  opts.Title,
		Width:  width,
		Height: height,
		XAxis:  categoryAxis(xIdx.labels),
		YAxis:  chart.YAxis{Ticks: yAxis.Ticks, Range: yAxis.Range},
		Series: series,
	}
	return c.Render(opts.provider(), w)
}

type indexer struct {
	labels []string
	pos    map[string]int
}

func (ix *indexer) of(label string) float64 {
	if ix.pos == nil {
		ix.pos = map[string]int{}
	}
	i, ok := ix.pos[label]
	if !ok {
		i = len(ix.labels)
		ix.pos[label] = i
		ix.labels = append(ix.labels, label)
	}
	return float64(i)
}
