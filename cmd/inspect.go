package cmd

import (
	"fmt"
	"strings"

	"github.com/KaramelBytes/datavision-cli/internal/chart"
	"github.com/KaramelBytes/datavision-cli/internal/parser"
	"github.com/KaramelBytes/datavision-cli/internal/schema"
	"github.com/KaramelBytes/datavision-cli/internal/utils"
	"github.com/spf13/cobra"
)

var (
	insSample string
	insJSON   bool
	insRows   int
)

type inspectReport struct {
	File           string                `json:"file"`
	Format         parser.Format         `json:"format"`
	Rows           int                   `json:"rows"`
	Classification schema.Classification `json:"classification"`
	Charts         []chart.Type          `json:"charts"`
	Mapping        chart.Mapping         `json:"default_mapping"`
	Skipped        []string              `json:"skipped,omitempty"`
}

var inspectCmd = &cobra.Command{
	Use:   "inspect [file]",
	Short: "Parse a dataset and show its column classification and available charts",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openDataset(args, insSample)
		if err != nil {
			return err
		}
		rows := s.Rows()
		_, mapping := s.Chart()
		rep := inspectReport{
			File:           s.Name(),
			Format:         s.Format(),
			Rows:           len(rows),
			Classification: s.Classification(),
			Charts:         s.AvailableCharts(),
			Mapping:        mapping,
		}
		for _, sk := range s.Skipped() {
			rep.Skipped = append(rep.Skipped, sk.Error())
		}

		out := cmd.OutOrStdout()
		if insJSON {
			b, err := utils.PrettyJSON(rep)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, string(b))
			return nil
		}

		fmt.Fprintf(out, "Dataset: %s (%s, %d rows)\n", rep.File, rep.Format, rep.Rows)
		fmt.Fprintf(out, "Numeric:     %s\n", listOrNone(rep.Classification.Numeric))
		fmt.Fprintf(out, "Categorical: %s\n", listOrNone(rep.Classification.Categorical))
		labels := make([]string, len(rep.Charts))
		for i, t := range rep.Charts {
			labels[i] = string(t)
		}
		fmt.Fprintf(out, "Charts:      %s\n", strings.Join(labels, ", "))
		fmt.Fprintf(out, "Default roles: x=%s y=%s z=%s group=%s value=%s\n",
			dash(mapping.XAxis), dash(mapping.YAxis), dash(mapping.ZAxis), dash(mapping.GroupKey), dash(mapping.ValueKey))
		if len(rep.Skipped) > 0 {
			fmt.Fprintf(out, "Skipped rows (%d):\n", len(rep.Skipped))
			for _, sk := range rep.Skipped {
				fmt.Fprintf(out, "  - %s\n", sk)
			}
		}

		n := insRows
		if !cmd.Flags().Changed("rows") {
			n = currentConfig().SampleRows
		}
		if n > len(rows) {
			n = len(rows)
		}
		if n > 0 {
			b, err := utils.PrettyJSON(rows[:n])
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "First %d rows:\n%s\n", n, b)
		}
		return nil
	},
}

func listOrNone(cols []string) string {
	if len(cols) == 0 {
		return "(none)"
	}
	return strings.Join(cols, ", ")
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().StringVar(&insSample, "sample", "", "inspect a bundled sample instead of a file (see 'datavision samples')")
	inspectCmd.Flags().BoolVar(&insJSON, "json", false, "print the inspection as JSON")
	inspectCmd.Flags().IntVar(&insRows, "rows", 5, "number of leading rows to print (default from sample_rows)")
}
