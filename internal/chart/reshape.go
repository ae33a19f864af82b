package chart

import (
	"github.com/KaramelBytes/datavision-cli/internal/schema"
	"github.com/KaramelBytes/datavision-cli/internal/table"
)

// Palette is the fixed color cycle assigned to funnel stages and used by the
// renderer for series.
var Palette = []string{"#2563eb", "#16a34a", "#f59e0b", "#dc2626", "#7c3aed"}

// Reshape validates the mapping for t against rows and returns the
// chart-ready records. Failures are *ConfigurationError; rows are never
// modified.
func Reshape(rows table.RowSet, t Type, m Mapping) (table.RowSet, error) {
	if !t.Valid() {
		return nil, configErr(t, "unknown chart type")
	}
	if len(rows) == 0 {
		return nil, configErr(t, "no data to display")
	}
	roles, err := m.Bind(t)
	if err != nil {
		return nil, err
	}
	cls := schema.Classify(rows)
	if n, c := cls.Counts(); !IsAvailable(t, n, c) {
		return nil, configErr(t, "not available for %d numeric and %d categorical columns", n, c)
	}
	if err := check(t, roles, cls); err != nil {
		return nil, err
	}

	switch r := roles.(type) {
	case SeriesRoles:
		switch t.Family() {
		case FamilyComposed:
			return composed(rows, r), nil
		case FamilyTreemap:
			return treemap(rows, r), nil
		}
		return aggregate(rows, r, t == Funnel), nil
	case PivotRoles:
		return pivot(rows, r), nil
	case HeatmapRoles:
		return heatmap(rows, r), nil
	case ScatterRoles:
		return points(rows, r.X, r.Y), nil
	case BubbleRoles:
		return points(rows, r.X, r.Y, r.Z), nil
	}
	return rows.Clone(), nil
}

// sums accumulates totals per label in first-seen order.
type sums struct {
	order []string
	total map[string]float64
}

func newSums() *sums { return &sums{total: map[string]float64{}} }

func (s *sums) add(label string, v float64) {
	if _, ok := s.total[label]; !ok {
		s.order = append(s.order, label)
	}
	s.total[label] += v
}

// label returns the grouping label of key in r. Missing cells, and empty text
// when skipEmpty is set, yield ok=false.
func label(r table.Row, key string, skipEmpty bool) (string, bool) {
	v, ok := r.Get(key)
	if !ok {
		return "", false
	}
	s := v.String()
	if skipEmpty && v.IsText() && s == "" {
		return "", false
	}
	return s, true
}

func aggregate(rows table.RowSet, r SeriesRoles, fill bool) table.RowSet {
	acc := newSums()
	for _, row := range rows {
		x, ok := label(row, r.X, false)
		if !ok {
			continue
		}
		y, ok := row.Get(r.Y)
		if !ok {
			continue
		}
		acc.add(x, table.NumericOrZero(y, true))
	}
	out := make(table.RowSet, 0, len(acc.order))
	for i, x := range acc.order {
		sum := table.Number(acc.total[x])
		rec := table.NewRow(5)
		rec.Set(r.X, table.Text(x))
		rec.Set(r.Y, sum)
		rec.Set("name", table.Text(x))
		rec.Set("value", sum)
		if fill {
			rec.Set("fill", table.Text(Palette[i%len(Palette)]))
		}
		out = append(out, rec)
	}
	return out
}

func composed(rows table.RowSet, r SeriesRoles) table.RowSet {
	acc := newSums()
	for _, row := range rows {
		x, ok := label(row, r.X, true)
		if !ok {
			continue
		}
		y, present := row.Get(r.Y)
		acc.add(x, table.NumericOrZero(y, present))
	}
	out := make(table.RowSet, 0, len(acc.order))
	for _, x := range acc.order {
		rec := table.NewRow(2)
		rec.Set(r.X, table.Text(x))
		rec.Set(r.Y, table.Number(acc.total[x]))
		out = append(out, rec)
	}
	return out
}

func treemap(rows table.RowSet, r SeriesRoles) table.RowSet {
	acc := newSums()
	for _, row := range rows {
		x, ok := label(row, r.X, true)
		if !ok {
			continue
		}
		y, present := row.Get(r.Y)
		acc.add(x, table.NumericOrZero(y, present))
	}
	out := make(table.RowSet, 0, len(acc.order))
	for _, x := range acc.order {
		size := table.Number(acc.total[x])
		rec := table.NewRow(3)
		rec.Set("name", table.Text(x))
		rec.Set("size", size)
		rec.Set("value", size)
		out = append(out, rec)
	}
	return out
}

// pivot sums y per (x, group) and emits one record per x carrying every
// group seen anywhere, defaulting to 0. A group value equal to the x column
// name is not emitted since the x label occupies that key.
func pivot(rows table.RowSet, r PivotRoles) table.RowSet {
	var xs, groups []string
	seenGroup := map[string]bool{}
	cells := map[string]*sums{}
	for _, row := range rows {
		x, ok := label(row, r.X, true)
		if !ok {
			continue
		}
		g, ok := label(row, r.Group, true)
		if !ok {
			continue
		}
		y, present := row.Get(r.Y)
		if !seenGroup[g] {
			seenGroup[g] = true
			groups = append(groups, g)
		}
		acc, ok := cells[x]
		if !ok {
			acc = newSums()
			cells[x] = acc
			xs = append(xs, x)
		}
		acc.add(g, table.NumericOrZero(y, present))
	}
	out := make(table.RowSet, 0, len(xs))
	for _, x := range xs {
		rec := table.NewRow(len(groups) + 1)
		rec.Set(r.X, table.Text(x))
		for _, g := range groups {
			if g == r.X {
				continue
			}
			rec.Set(g, table.Number(cells[x].total[g]))
		}
		out = append(out, rec)
	}
	return out
}

func heatmap(rows table.RowSet, r HeatmapRoles) table.RowSet {
	out := make(table.RowSet, 0, len(rows))
	for _, row := range rows {
		rec := table.NewRow(3)
		if v, ok := row.Get(r.X); ok {
			rec.Set(r.X, v)
		}
		if v, ok := row.Get(r.Y); ok {
			rec.Set(r.Y, v)
		}
		v, present := row.Get(r.Value)
		rec.Set("value", table.Number(table.NumericOrZero(v, present)))
		out = append(out, rec)
	}
	return out
}

// points copies each row and replaces the given columns with their numeric
// reading, 0 when absent or not numeric.
func points(rows table.RowSet, keys ...string) table.RowSet {
	out := make(table.RowSet, 0, len(rows))
	for _, row := range rows {
		rec := row.Clone()
		for _, k := range keys {
			v, present := row.Get(k)
			rec.Set(k, table.Number(table.NumericOrZero(v, present)))
		}
		out = append(out, rec)
	}
	return out
}
