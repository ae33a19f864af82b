package cmd

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/KaramelBytes/datavision-cli/internal/refine"
	"github.com/KaramelBytes/datavision-cli/internal/utils"
	"github.com/spf13/cobra"
)

var (
	refSample     string
	refTrim       bool
	refNulls      bool
	refDupes      bool
	refCases      []string
	refRenames    []string
	refDrop       []string
	refOutputPath string
)

var refineCmd = &cobra.Command{
	Use:   "refine [file]",
	Short: "Clean a dataset (trim, drop empty/duplicate rows, change case, rename) and export it",
	Long: `Run the refinement pipeline in its fixed order: trim whitespace, remove rows
with empty values, remove duplicate rows, apply case rules, then rename and
drop columns. The result is printed as CSV or written to --output (.csv or
.xlsx).`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := currentConfig()
		opts := refine.Options{
			TrimWhitespace:   c.TrimWhitespace,
			RemoveNulls:      c.RemoveNulls,
			RemoveDuplicates: c.RemoveDuplicates,
		}
		f := cmd.Flags()
		if f.Changed("trim") {
			opts.TrimWhitespace = refTrim
		}
		if f.Changed("remove-nulls") {
			opts.RemoveNulls = refNulls
		}
		if f.Changed("remove-duplicates") {
			opts.RemoveDuplicates = refDupes
		}

		rules, err := parseCaseRules(refCases)
		if err != nil {
			return err
		}
		overrides, err := parsePairs("--rename", refRenames)
		if err != nil {
			return err
		}

		s, err := openDataset(args, refSample)
		if err != nil {
			return err
		}
		header := s.Rows().Header()
		renames := refine.MergeRenames(header, overrides, refDrop)
		rows := s.Refine(opts, rules, renames)

		out := cmd.OutOrStdout()
		if refOutputPath == "" {
			fmt.Fprintln(out, refine.CSV(rows))
			return nil
		}
		var buf bytes.Buffer
		switch ext := strings.ToLower(filepath.Ext(refOutputPath)); ext {
		case ".xlsx":
			err = refine.WriteXLSX(&buf, rows)
		case ".csv", "":
			err = refine.WriteCSV(&buf, rows)
		default:
			return fmt.Errorf("unsupported output extension %q (use .csv or .xlsx)", ext)
		}
		if err != nil {
			return err
		}
		path := utils.ResolveOutput(c.OutputDir, refOutputPath)
		if err := utils.SafeWriteFile(path, buf.Bytes()); err != nil {
			return err
		}
		fmt.Fprintf(out, "✓ Wrote %d rows to %s\n", len(rows), path)
		return nil
	},
}

// parsePairs splits "key=value" flag values.
func parsePairs(flag string, vals []string) (map[string]string, error) {
	out := make(map[string]string, len(vals))
	for _, v := range vals {
		k, val, ok := strings.Cut(v, "=")
		if !ok || strings.TrimSpace(k) == "" {
			return nil, fmt.Errorf("invalid %s %q (want column=value)", flag, v)
		}
		out[strings.TrimSpace(k)] = strings.TrimSpace(val)
	}
	return out, nil
}

func parseCaseRules(vals []string) ([]refine.CaseRule, error) {
	rules := make([]refine.CaseRule, 0, len(vals))
	for _, v := range vals {
		col, mode, ok := strings.Cut(v, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --case %q (want column=upper|lower|title)", v)
		}
		m, ok := refine.ParseMode(mode)
		if !ok {
			return nil, fmt.Errorf("invalid case mode %q (use uppercase, lowercase or titlecase)", mode)
		}
		rules = append(rules, refine.CaseRule{Column: strings.TrimSpace(col), Mode: m})
	}
	return rules, nil
}

func init() {
	rootCmd.AddCommand(refineCmd)
	f := refineCmd.Flags()
	f.StringVar(&refSample, "sample", "", "refine a bundled sample instead of a file")
	f.BoolVar(&refTrim, "trim", true, "trim surrounding whitespace from text values (default from trim_whitespace)")
	f.BoolVar(&refNulls, "remove-nulls", false, "drop rows holding an empty value (default from remove_nulls)")
	f.BoolVar(&refDupes, "remove-duplicates", false, "drop repeated rows (default from remove_duplicates)")
	f.StringArrayVar(&refCases, "case", nil, "case rule column=upper|lower|title (repeatable, applied in order)")
	f.StringArrayVar(&refRenames, "rename", nil, "rename column old=new (repeatable)")
	f.StringSliceVar(&refDrop, "drop", nil, "columns to leave out of the output")
	f.StringVarP(&refOutputPath, "output", "o", "", "write to .csv or .xlsx instead of printing CSV")
}
