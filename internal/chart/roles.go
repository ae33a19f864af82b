package chart

import "github.com/KaramelBytes/datavision-cli/internal/schema"

// Mapping is the user's column choice for every role slot. Which slots
// matter depends on the chart type; Bind turns it into the typed variant.
type Mapping struct {
	XAxis    string `json:"x_axis,omitempty" yaml:"x_axis,omitempty"`
	YAxis    string `json:"y_axis,omitempty" yaml:"y_axis,omitempty"`
	ZAxis    string `json:"z_axis,omitempty" yaml:"z_axis,omitempty"`
	GroupKey string `json:"group_key,omitempty" yaml:"group_key,omitempty"`
	ValueKey string `json:"value_key,omitempty" yaml:"value_key,omitempty"`
}

// Roles is the role binding for one chart family. Each variant carries only
// the slots its family reads.
type Roles interface {
	slots() []slot
}

type slot struct {
	role   string
	column string
}

// TableRoles binds nothing; tables show raw rows.
type TableRoles struct{}

// SeriesRoles drives single-series aggregation, composed and treemap charts.
type SeriesRoles struct{ X, Y string }

// PivotRoles drives stacked and grouped multi-series charts.
type PivotRoles struct{ X, Y, Group string }

// HeatmapRoles places one cell per row at (X, Y) colored by Value.
type HeatmapRoles struct{ X, Y, Value string }

// ScatterRoles plots one point per row.
type ScatterRoles struct{ X, Y string }

// BubbleRoles plots one point per row sized by Z.
type BubbleRoles struct{ X, Y, Z string }

func (TableRoles) slots() []slot { return nil }

func (r SeriesRoles) slots() []slot {
	return []slot{{"x axis", r.X}, {"y axis", r.Y}}
}

func (r PivotRoles) slots() []slot {
	return []slot{{"x axis", r.X}, {"y axis", r.Y}, {"group", r.Group}}
}

func (r HeatmapRoles) slots() []slot {
	return []slot{{"x axis", r.X}, {"y axis", r.Y}, {"value", r.Value}}
}

func (r ScatterRoles) slots() []slot {
	return []slot{{"x axis", r.X}, {"y axis", r.Y}}
}

func (r BubbleRoles) slots() []slot {
	return []slot{{"x axis", r.X}, {"y axis", r.Y}, {"z axis", r.Z}}
}

// Bind selects the role variant for t. Unbound required slots produce a
// *ConfigurationError listing them.
func (m Mapping) Bind(t Type) (Roles, error) {
	var r Roles
	switch t.Family() {
	case FamilyTable:
		return TableRoles{}, nil
	case FamilyAggregate, FamilyComposed, FamilyTreemap:
		r = SeriesRoles{X: m.XAxis, Y: m.YAxis}
	case FamilyPivot:
		r = PivotRoles{X: m.XAxis, Y: m.YAxis, Group: m.GroupKey}
	case FamilyHeatmap:
		r = HeatmapRoles{X: m.XAxis, Y: m.YAxis, Value: m.ValueKey}
	case FamilyScatter:
		r = ScatterRoles{X: m.XAxis, Y: m.YAxis}
	case FamilyBubble:
		r = BubbleRoles{X: m.XAxis, Y: m.YAxis, Z: m.ZAxis}
	}
	var missing []string
	for _, s := range r.slots() {
		if s.column == "" {
			missing = append(missing, s.role)
		}
	}
	if len(missing) > 0 {
		return nil, &ConfigurationError{Chart: t, Reason: "required roles are unset", Missing: missing}
	}
	return r, nil
}

// check rejects bound columns that are not part of the schema.
func check(t Type, r Roles, cls schema.Classification) error {
	for _, s := range r.slots() {
		if !cls.Has(s.column) {
			return configErr(t, "column %q for %s is not in the dataset", s.column, s.role)
		}
	}
	return nil
}

// DefaultMapping proposes roles for t from a classification, the way the
// picker pre-selects axes after a load. header is the first row's key order.
func DefaultMapping(t Type, cls schema.Classification, header []string) Mapping {
	num, cat := cls.Numeric, cls.Categorical
	pick := func(keys []string, i int) string {
		if i < len(keys) {
			return keys[i]
		}
		return ""
	}

	var m Mapping
	m.XAxis = pick(cat, 0)
	if m.XAxis == "" {
		m.XAxis = pick(header, 0)
	}
	m.YAxis = pick(num, 0)
	if m.YAxis == "" {
		for _, k := range header {
			if k != m.XAxis {
				m.YAxis = k
				break
			}
		}
	}
	m.ZAxis = pick(num, 1)
	m.GroupKey = pick(cat, 1)
	m.ValueKey = pick(num, 0)

	switch t.Family() {
	case FamilyScatter:
		if len(num) >= 2 {
			m.XAxis, m.YAxis = num[0], num[1]
		}
	case FamilyHeatmap:
		if len(cat) >= 2 {
			m.YAxis = cat[1]
		}
	}
	return m
}
