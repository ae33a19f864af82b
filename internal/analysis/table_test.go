package analysis

import (
	"math"
	"strings"
	"testing"

	"github.com/KaramelBytes/datavision-cli/internal/chart"
	"github.com/KaramelBytes/datavision-cli/internal/table"
	"github.com/KaramelBytes/datavision-cli/internal/table/tabletest"
)

func metricsRows() table.RowSet {
	return tabletest.Rows(
		tabletest.Row("region", "N", "units", 10, "price", 2.5, "note", "a"),
		tabletest.Row("region", "S", "units", 12, "price", 3, "note", ""),
		tabletest.Row("region", "N", "units", 11, "price", 2.5, "note", "b"),
		tabletest.Row("region", "E", "units", 9, "price", 4, "note", "c"),
		tabletest.Row("region", "N", "units", 10, "price", 2.5, "note", "d"),
		tabletest.Row("region", "S", "units", 200, "price", 3, "note", "e"),
	)
}

func TestDescribeAndMarkdown(t *testing.T) {
	opt := DefaultOptions()
	opt.SampleRows = 2

	rep := Describe("metrics.csv", metricsRows(), opt)
	if rep.Rows != 6 || len(rep.Cols) != 4 {
		t.Fatalf("rows=%d cols=%d", rep.Rows, len(rep.Cols))
	}
	units := rep.Cols[1]
	if units.Kind != "numeric" || units.Min != 9 || units.Max != 200 || units.Median != 10.5 {
		t.Fatalf("units summary = %+v", units)
	}
	if units.OutliersCount != 1 {
		t.Fatalf("outliers = %d, want 1", units.OutliersCount)
	}
	note := rep.Cols[3]
	if note.Kind != "categorical" || note.Missing != 1 || note.NonNull != 5 {
		t.Fatalf("note summary = %+v", note)
	}
	region := rep.Cols[0]
	if len(region.TopValues) != 3 || region.TopValues[0] != (CategoryCount{"N", 3}) || region.TopValues[2] != (CategoryCount{"E", 1}) {
		t.Fatalf("top values = %+v", region.TopValues)
	}
	if len(rep.Charts) != len(chart.Types) {
		t.Fatalf("charts = %v", rep.Charts)
	}
	if len(rep.Samples) != 2 || strings.Join(rep.Samples[0], ",") != "N,10,2.5,a" {
		t.Fatalf("samples = %#v", rep.Samples)
	}
	if rep.Corr == nil || len(rep.Corr.Columns) != 2 || math.IsNaN(rep.Corr.Values[0][1]) {
		t.Fatalf("corr = %+v", rep.Corr)
	}

	md := rep.Markdown()
	for _, want := range []string{
		"[DATASET SUMMARY]",
		"File: metrics.csv",
		"Rows: 6",
		"- units: numeric (non-null 6, missing 0.0%)",
		"outliers: 1 above |z|>3.5",
		"- region: categorical (non-null 6, missing 0.0%); top: N(3), S(2), E(1)",
		"[CHARTS]",
		"stacked bar chart",
		"[CORRELATIONS]",
		"- units ~ price: r=",
		"[HEAD AND SAMPLE ROWS]",
		"| region | units | price | note |",
		"[NOTES]",
		`column "note" is missing or empty in 1 of 6 rows`,
	} {
		if !strings.Contains(md, want) {
			t.Fatalf("markdown missing %q:\n%s", want, md)
		}
	}
}

func TestDescribeTableOnly(t *testing.T) {
	rows := tabletest.Rows(
		tabletest.Row("name", "a|b", "city", "x\ny"),
	)
	rep := Describe("", rows, DefaultOptions())
	if len(rep.Charts) != 1 || rep.Charts[0] != chart.Table {
		t.Fatalf("charts = %v", rep.Charts)
	}
	if rep.Corr != nil {
		t.Fatalf("no numeric columns, corr should be nil")
	}
	md := rep.Markdown()
	if !strings.Contains(md, "only the table view is available") {
		t.Fatalf("missing table-only note:\n%s", md)
	}
	if !strings.Contains(md, "| a/b | x y |") {
		t.Fatalf("sample values not sanitized:\n%s", md)
	}
}

func TestDescribeEmpty(t *testing.T) {
	rep := Describe("empty.json", nil, DefaultOptions())
	if rep.Rows != 0 || len(rep.Cols) != 0 {
		t.Fatalf("unexpected report %+v", rep)
	}
	md := rep.Markdown()
	if !strings.Contains(md, "- dataset is empty") || strings.Contains(md, "[HEAD AND SAMPLE ROWS]") {
		t.Fatalf("markdown:\n%s", md)
	}
}
