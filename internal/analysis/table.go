package analysis

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/KaramelBytes/datavision-cli/internal/chart"
	"github.com/KaramelBytes/datavision-cli/internal/schema"
	"github.com/KaramelBytes/datavision-cli/internal/table"
	"github.com/montanaflynn/stats"
)

// Options controls analysis behavior for tabular data.
type Options struct {
	// SampleRows determines how many example rows to include in the report.
	SampleRows int
	// TopValues limits the most frequent values listed per categorical column.
	TopValues int
	// Correlations computes Pearson correlations among numeric columns.
	Correlations bool
	// Outlier detection via robust Z-score (MAD). If Outliers is true, counts |z|>threshold.
	Outliers         bool
	OutlierThreshold float64
}

// DefaultOptions returns reasonable defaults for dataset analysis.
func DefaultOptions() Options {
	return Options{
		SampleRows:       5,
		TopValues:        5,
		Correlations:     true,
		Outliers:         true,
		OutlierThreshold: 3.5,
	}
}

// Report is a markdown-friendly analysis of a tabular dataset.
type Report struct {
	Name     string
	Rows     int
	Cols     []ColumnSummary
	Charts   []chart.Type
	Samples  [][]string
	Warnings []string
	Corr     *CorrMatrix
}

// ColumnSummary captures the classified kind and statistics per column.
type ColumnSummary struct {
	Name    string
	Kind    string // numeric|categorical
	NonNull int
	Missing int
	Unique  int
	// Numeric stats
	Min    float64
	Max    float64
	Mean   float64
	Median float64
	Std    float64
	// Outliers (robust Z via MAD)
	OutliersCount    int
	OutliersMaxAbsZ  float64
	OutlierThreshold float64
	// Categorical top values
	TopValues []CategoryCount
}

type CategoryCount struct {
	Value string
	Count int
}

// CorrMatrix holds a symmetric Pearson correlation matrix across numeric columns.
type CorrMatrix struct {
	Columns []string
	Values  [][]float64 // row-major, Values[i][j]
}

// Describe summarizes rows. Columns and their kinds come from the schema
// classifier, so the report agrees with what the chart picker offers.
func Describe(name string, rows table.RowSet, opt Options) *Report {
	r := &Report{Name: name, Rows: len(rows)}
	cls := schema.Classify(rows)
	r.Charts = chart.Available(cls)
	if len(rows) == 0 {
		r.Warnings = append(r.Warnings, "dataset is empty")
		return r
	}

	header := rows.Header()
	for _, col := range header {
		cs := ColumnSummary{Name: col, Kind: "categorical"}
		if cls.IsNumeric(col) {
			cs.Kind = "numeric"
		}
		counts := map[string]int{}
		var order []string
		var vals []float64
		for _, row := range rows {
			v, ok := row.Get(col)
			if !ok || (v.IsText() && v.TextValue() == "") {
				cs.Missing++
				continue
			}
			cs.NonNull++
			key := v.String()
			if _, seen := counts[key]; !seen {
				order = append(order, key)
			}
			counts[key]++
			if cs.Kind == "numeric" {
				f, _ := v.Numeric()
				vals = append(vals, f)
			}
		}
		cs.Unique = len(counts)
		if cs.Kind == "numeric" {
			numericSummary(&cs, vals, opt)
		} else {
			cs.TopValues = topValues(counts, order, opt.TopValues)
		}
		if cs.Missing > 0 {
			r.Warnings = append(r.Warnings, fmt.Sprintf("column %q is missing or empty in %d of %d rows", col, cs.Missing, len(rows)))
		}
		r.Cols = append(r.Cols, cs)
	}
	if len(r.Charts) == 1 {
		r.Warnings = append(r.Warnings, "only the table view is available: charts need at least one numeric and one categorical column")
	}

	if opt.Correlations && len(cls.Numeric) >= 2 {
		r.Corr = correlations(rows, cls.Numeric)
	}

	n := opt.SampleRows
	if n > len(rows) {
		n = len(rows)
	}
	if n < 0 {
		n = 0
	}
	for _, row := range rows[:n] {
		rec := make([]string, len(header))
		for i, col := range header {
			if v, ok := row.Get(col); ok {
				rec[i] = v.String()
			}
		}
		r.Samples = append(r.Samples, rec)
	}
	return r
}

func numericSummary(cs *ColumnSummary, vals []float64, opt Options) {
	if len(vals) == 0 {
		return
	}
	data := stats.Float64Data(vals)
	cs.Min, _ = stats.Min(data)
	cs.Max, _ = stats.Max(data)
	cs.Mean, _ = stats.Mean(data)
	cs.Median, _ = stats.Median(data)
	if len(vals) > 1 {
		cs.Std, _ = stats.StandardDeviationSample(data)
	}
	if !opt.Outliers || opt.OutlierThreshold <= 0 {
		return
	}
	cs.OutlierThreshold = opt.OutlierThreshold
	mad, err := stats.MedianAbsoluteDeviation(data)
	if err != nil || mad == 0 {
		return
	}
	for _, x := range vals {
		// 0.6745 scales MAD to the standard deviation of a normal sample
		z := math.Abs(0.6745 * (x - cs.Median) / mad)
		if z > opt.OutlierThreshold {
			cs.OutliersCount++
		}
		if z > cs.OutliersMaxAbsZ {
			cs.OutliersMaxAbsZ = z
		}
	}
}

func topValues(counts map[string]int, order []string, limit int) []CategoryCount {
	out := make([]CategoryCount, 0, len(order))
	for _, k := range order {
		out = append(out, CategoryCount{Value: k, Count: counts[k]})
	}
	// stable keeps first-seen order among equal counts
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// correlations pairs values row by row, using only rows where both columns
// are numeric.
func correlations(rows table.RowSet, cols []string) *CorrMatrix {
	m := &CorrMatrix{Columns: cols, Values: make([][]float64, len(cols))}
	for i := range cols {
		m.Values[i] = make([]float64, len(cols))
		m.Values[i][i] = 1
	}
	for i := 0; i < len(cols); i++ {
		for j := i + 1; j < len(cols); j++ {
			var a, b stats.Float64Data
			for _, row := range rows {
				va, oka := row.Get(cols[i])
				vb, okb := row.Get(cols[j])
				if !oka || !okb {
					continue
				}
				fa, oka := va.Numeric()
				fb, okb := vb.Numeric()
				if oka && okb {
					a = append(a, fa)
					b = append(b, fb)
				}
			}
			rv := math.NaN()
			if len(a) >= 2 {
				if p, err := stats.Pearson(a, b); err == nil {
					rv = p
				}
			}
			m.Values[i][j], m.Values[j][i] = rv, rv
		}
	}
	return m
}

// Markdown renders a compact report suitable for terminals or standalone docs.
func (r *Report) Markdown() string {
	var b strings.Builder
	b.WriteString("[DATASET SUMMARY]\n")
	if r.Name != "" {
		b.WriteString(fmt.Sprintf("File: %s\n", r.Name))
	}
	b.WriteString(fmt.Sprintf("Rows: %d\n", r.Rows))
	b.WriteString(fmt.Sprintf("Columns: %d\n\n", len(r.Cols)))

	b.WriteString("[SCHEMA]\n")
	for _, c := range r.Cols {
		total := c.NonNull + c.Missing
		missPct := 0.0
		if total > 0 {
			missPct = float64(c.Missing) * 100.0 / float64(total)
		}
		b.WriteString(fmt.Sprintf("- %s: %s (non-null %d, missing %.1f%%)", safeName(c.Name), c.Kind, c.NonNull, missPct))
		switch c.Kind {
		case "numeric":
			if c.NonNull > 0 {
				b.WriteString(fmt.Sprintf(": min %.4g, max %.4g, mean %.4g, median %.4g, std %.4g", c.Min, c.Max, c.Mean, c.Median, c.Std))
			}
			if c.OutliersCount > 0 {
				b.WriteString(fmt.Sprintf("; outliers: %d above |z|>%.1f (max |z|≈%.2f)", c.OutliersCount, c.OutlierThreshold, c.OutliersMaxAbsZ))
			}
		case "categorical":
			if len(c.TopValues) > 0 {
				b.WriteString("; top: ")
				for i, kv := range c.TopValues {
					if i > 0 {
						b.WriteString(", ")
					}
					b.WriteString(fmt.Sprintf("%s(%d)", safeVal(kv.Value), kv.Count))
				}
				if c.Unique > len(c.TopValues) {
					b.WriteString(fmt.Sprintf("; unique=%d", c.Unique))
				}
			}
		}
		b.WriteString("\n")
	}

	b.WriteString("\n[CHARTS]\n")
	labels := make([]string, len(r.Charts))
	for i, t := range r.Charts {
		labels[i] = t.Label()
	}
	b.WriteString(strings.Join(labels, ", "))
	b.WriteString("\n")

	if r.Corr != nil && len(r.Corr.Columns) >= 2 {
		b.WriteString("\n[CORRELATIONS]\n")
		type pr struct {
			A, B string
			R    float64
		}
		var pairs []pr
		n := len(r.Corr.Columns)
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				if v := r.Corr.Values[i][j]; !math.IsNaN(v) {
					pairs = append(pairs, pr{A: r.Corr.Columns[i], B: r.Corr.Columns[j], R: v})
				}
			}
		}
		sort.SliceStable(pairs, func(i, j int) bool { return math.Abs(pairs[i].R) > math.Abs(pairs[j].R) })
		for i := 0; i < len(pairs) && i < 10; i++ {
			b.WriteString(fmt.Sprintf("- %s ~ %s: r=%.3f\n", pairs[i].A, pairs[i].B, pairs[i].R))
		}
	}

	if len(r.Samples) > 0 {
		b.WriteString("\n[HEAD AND SAMPLE ROWS]\n")
		b.WriteString("| ")
		for i, c := range r.Cols {
			if i > 0 {
				b.WriteString(" | ")
			}
			b.WriteString(safeName(c.Name))
		}
		b.WriteString(" |\n| ")
		for i := range r.Cols {
			if i > 0 {
				b.WriteString(" | ")
			}
			b.WriteString("---")
		}
		b.WriteString(" |\n")
		for _, row := range r.Samples {
			b.WriteString("| ")
			for i := range r.Cols {
				if i > 0 {
					b.WriteString(" | ")
				}
				val := ""
				if i < len(row) {
					val = row[i]
				}
				if len(val) > 80 {
					val = val[:77] + "..."
				}
				b.WriteString(safeVal(val))
			}
			b.WriteString(" |\n")
		}
	}
	if len(r.Warnings) > 0 {
		b.WriteString("\n[NOTES]\n")
		for _, w := range r.Warnings {
			b.WriteString("- ")
			b.WriteString(w)
			b.WriteString("\n")
		}
	}
	return b.String()
}

func safeName(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "(unnamed)"
	}
	return s
}
func safeVal(s string) string { return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/") }
