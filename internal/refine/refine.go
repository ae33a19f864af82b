// Package refine implements the data clean-up pipeline and exports refined
// rows.
package refine

import (
	"encoding/json"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/KaramelBytes/datavision-cli/internal/table"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Options toggles the optional cleaning steps.
type Options struct {
	TrimWhitespace   bool `json:"trim_whitespace" yaml:"trim_whitespace"`
	RemoveNulls      bool `json:"remove_nulls" yaml:"remove_nulls"`
	RemoveDuplicates bool `json:"remove_duplicates" yaml:"remove_duplicates"`
}

// DefaultOptions trims whitespace and leaves every other step off.
func DefaultOptions() Options {
	return Options{TrimWhitespace: true}
}

// Mode is a text case transformation.
type Mode string

const (
	Upper Mode = "uppercase"
	Lower Mode = "lowercase"
	Title Mode = "titlecase"
)

// ParseMode accepts the mode names and the short forms upper/lower/title.
func ParseMode(s string) (Mode, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "uppercase", "upper":
		return Upper, true
	case "lowercase", "lower":
		return Lower, true
	case "titlecase", "title":
		return Title, true
	}
	return "", false
}

// CaseRule changes the case of the string values in one column.
type CaseRule struct {
	Column string `json:"column" yaml:"column"`
	Mode   Mode   `json:"mode" yaml:"mode"`
}

// Rename maps an original column name to its output name.
type Rename struct {
	From string `json:"from" yaml:"from"`
	To   string `json:"to" yaml:"to"`
}

// IdentityRenames keeps every header column under its own name.
func IdentityRenames(header []string) []Rename {
	out := make([]Rename, len(header))
	for i, h := range header {
		out[i] = Rename{From: h, To: h}
	}
	return out
}

// MergeRenames starts from the identity mapping of header, applies
// overrides and drops the columns listed in drop.
func MergeRenames(header []string, overrides map[string]string, drop []string) []Rename {
	dropped := make(map[string]bool, len(drop))
	for _, d := range drop {
		dropped[d] = true
	}
	out := make([]Rename, 0, len(header))
	for _, h := range header {
		if dropped[h] {
			continue
		}
		to := h
		if o, ok := overrides[h]; ok {
			to = o
		}
		out = append(out, Rename{From: h, To: to})
	}
	return out
}

// Refine runs trim, null removal, duplicate removal, case rules and rename,
// in that order. The input is not modified and the function never fails.
// Rename always runs: columns missing from renames are dropped.
func Refine(rows table.RowSet, opts Options, rules []CaseRule, renames []Rename) table.RowSet {
	data := rows.Clone()
	if opts.TrimWhitespace {
		data = trim(data)
	}
	if opts.RemoveNulls {
		data = removeNulls(data)
	}
	if opts.RemoveDuplicates {
		data = removeDuplicates(data)
	}
	if len(rules) > 0 {
		data = applyCase(data, rules)
	}
	return rename(data, renames)
}

func trim(rows table.RowSet) table.RowSet {
	for i := range rows {
		r := &rows[i]
		for _, k := range r.Keys() {
			if v, _ := r.Get(k); v.IsText() {
				r.Set(k, table.Text(strings.TrimSpace(v.TextValue())))
			}
		}
	}
	return rows
}

// removeNulls drops rows holding an empty string in any present column.
func removeNulls(rows table.RowSet) table.RowSet {
	out := rows[:0]
	for _, r := range rows {
		empty := false
		r.Each(func(_ string, v table.Value) bool {
			empty = v.IsText() && v.TextValue() == ""
			return !empty
		})
		if !empty {
			out = append(out, r)
		}
	}
	return out
}

// removeDuplicates keeps the first row of every group whose sorted values
// match, ignoring column names.
func removeDuplicates(rows table.RowSet) table.RowSet {
	seen := make(map[string]bool, len(rows))
	out := rows[:0]
	for _, r := range rows {
		k := fingerprint(r)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, r)
	}
	return out
}

func fingerprint(r table.Row) string {
	vals := r.Values()
	sort.SliceStable(vals, func(i, j int) bool {
		si, sj := vals[i].String(), vals[j].String()
		if si != sj {
			return si < sj
		}
		return vals[i].Kind() < vals[j].Kind()
	})
	// JSON keeps 1 and "1" apart and escapes every separator.
	b, _ := json.Marshal(vals)
	return string(b)
}

func applyCase(rows table.RowSet, rules []CaseRule) table.RowSet {
	for i := range rows {
		r := &rows[i]
		for _, rule := range rules {
			v, ok := r.Get(rule.Column)
			if !ok || !v.IsText() {
				continue
			}
			r.Set(rule.Column, table.Text(ChangeCase(v.TextValue(), rule.Mode)))
		}
	}
	return rows
}

// ChangeCase applies mode to s. Title case upper-cases the first letter of
// every whitespace-separated word and lower-cases the rest; whitespace runs
// are kept as they are.
func ChangeCase(s string, mode Mode) string {
	// Casers keep state between calls.
	upperCaser, lowerCaser := cases.Upper(language.Und), cases.Lower(language.Und)
	switch mode {
	case Upper:
		return upperCaser.String(s)
	case Lower:
		return lowerCaser.String(s)
	case Title:
		var b strings.Builder
		for len(s) > 0 {
			r, size := utf8.DecodeRuneInString(s)
			if unicode.IsSpace(r) {
				b.WriteString(s[:size])
				s = s[size:]
				continue
			}
			end := strings.IndexFunc(s, unicode.IsSpace)
			if end < 0 {
				end = len(s)
			}
			// the rest of the word is lowered as one string so context
			// rules such as Greek final sigma apply
			b.WriteString(upperCaser.String(s[:size]))
			b.WriteString(lowerCaser.String(s[size:end]))
			s = s[end:]
		}
		return b.String()
	}
	return s
}

func rename(rows table.RowSet, renames []Rename) table.RowSet {
	out := make(table.RowSet, len(rows))
	for i, r := range rows {
		nr := table.NewRow(len(renames))
		for _, rn := range renames {
			if v, ok := r.Get(rn.From); ok {
				nr.Set(rn.To, v)
			}
		}
		out[i] = nr
	}
	return out
}
