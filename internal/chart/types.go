// Package chart decides which chart types a dataset supports and reshapes
// rows into the record layout each chart family draws from.
package chart

import (
	"fmt"
	"strings"

	"github.com/KaramelBytes/datavision-cli/internal/schema"
)

// Type is one of the supported chart types.
type Type string

const (
	Table       Type = "table"
	Bar         Type = "bar"
	Line        Type = "line"
	Area        Type = "area"
	Pie         Type = "pie"
	Donut       Type = "donut"
	Scatter     Type = "scatter"
	Bubble      Type = "bubble"
	Composed    Type = "composed"
	Radar       Type = "radar"
	RadialBar   Type = "radial-bar"
	Treemap     Type = "treemap"
	Funnel      Type = "funnel"
	Heatmap     Type = "heatmap"
	StackedBar  Type = "stacked-bar"
	GroupedBar  Type = "grouped-bar"
	StackedArea Type = "stacked-area"
)

// Types lists every chart type in menu order.
var Types = []Type{
	Table, Bar, Line, Area, Pie, Donut, Scatter, Bubble, Composed,
	Radar, RadialBar, Treemap, Funnel, Heatmap, StackedBar, GroupedBar, StackedArea,
}

// Family groups chart types that share one reshaping strategy.
type Family int

const (
	FamilyTable Family = iota
	FamilyAggregate
	FamilyComposed
	FamilyPivot
	FamilyTreemap
	FamilyHeatmap
	FamilyScatter
	FamilyBubble
)

// Family returns the reshaping strategy used by t.
func (t Type) Family() Family {
	switch t {
	case Bar, Line, Area, Pie, Donut, Funnel, Radar, RadialBar:
		return FamilyAggregate
	case Composed:
		return FamilyComposed
	case StackedBar, GroupedBar, StackedArea:
		return FamilyPivot
	case Treemap:
		return FamilyTreemap
	case Heatmap:
		return FamilyHeatmap
	case Scatter:
		return FamilyScatter
	case Bubble:
		return FamilyBubble
	}
	return FamilyTable
}

// Valid reports whether t is a known chart type.
func (t Type) Valid() bool {
	for _, k := range Types {
		if k == t {
			return true
		}
	}
	return false
}

// Label is the display name, e.g. "stacked bar chart".
func (t Type) Label() string {
	switch t {
	case Table, Treemap, Heatmap:
		return string(t)
	}
	return strings.ReplaceAll(string(t), "-", " ") + " chart"
}

// ParseType accepts canonical names ("stacked-bar") and display names
// ("Stacked Bar Chart").
func ParseType(s string) (Type, error) {
	n := strings.ToLower(strings.TrimSpace(s))
	n = strings.TrimSuffix(n, " chart")
	n = strings.Join(strings.Fields(strings.ReplaceAll(n, "_", " ")), "-")
	t := Type(n)
	if !t.Valid() {
		return "", fmt.Errorf("unknown chart type %q", s)
	}
	return t, nil
}

// IsAvailable reports whether t can be drawn from a schema with the given
// numbers of numeric and categorical columns.
func IsAvailable(t Type, numeric, categorical int) bool {
	switch t {
	case Table:
		return true
	case Bar, Line, Area, Pie, Donut, Composed, Radar, RadialBar, Treemap, Funnel:
		return categorical >= 1 && numeric >= 1
	case Scatter:
		return numeric >= 2
	case Bubble:
		return categorical >= 1 && numeric >= 2
	case Heatmap, StackedBar, GroupedBar, StackedArea:
		return categorical >= 2 && numeric >= 1
	}
	return false
}

// Available lists the chart types selectable for cls, in menu order.
func Available(cls schema.Classification) []Type {
	n, c := cls.Counts()
	out := make([]Type, 0, len(Types))
	for _, t := range Types {
		if IsAvailable(t, n, c) {
			out = append(out, t)
		}
	}
	return out
}
