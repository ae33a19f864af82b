package cmd

import (
	"fmt"

	"github.com/KaramelBytes/datavision-cli/internal/analysis"
	"github.com/KaramelBytes/datavision-cli/internal/utils"
	"github.com/spf13/cobra"
)

var (
	descSample     string
	descOutputPath string
	descSampleRows int
	descTopValues  int
	descCorr       bool
	descOutliers   bool
	descOutlierThr float64
)

var describeCmd = &cobra.Command{
	Use:   "describe [file]",
	Short: "Summarize a dataset as Markdown (schema, statistics, charts, sample rows)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := currentConfig()
		opt := analysis.DefaultOptions()
		opt.SampleRows = c.SampleRows
		f := cmd.Flags()
		if f.Changed("sample-rows") {
			opt.SampleRows = descSampleRows
		}
		if descTopValues > 0 {
			opt.TopValues = descTopValues
		}
		if f.Changed("correlations") {
			opt.Correlations = descCorr
		}
		if f.Changed("outliers") {
			opt.Outliers = descOutliers
		}
		if descOutlierThr > 0 {
			opt.OutlierThreshold = descOutlierThr
		}

		s, err := openDataset(args, descSample)
		if err != nil {
			return err
		}
		md := s.Describe(opt).Markdown()

		if descOutputPath == "" {
			fmt.Fprintln(cmd.OutOrStdout(), md)
			return nil
		}
		path := utils.ResolveOutput(c.OutputDir, descOutputPath)
		if err := utils.SafeWriteFile(path, []byte(md)); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote analysis to %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(describeCmd)
	f := describeCmd.Flags()
	f.StringVar(&descSample, "sample", "", "describe a bundled sample instead of a file")
	f.StringVarP(&descOutputPath, "output", "o", "", "optional path to write the report (Markdown)")
	f.IntVar(&descSampleRows, "sample-rows", 5, "number of sample rows to include (default from sample_rows)")
	f.IntVar(&descTopValues, "top", 5, "top values listed per categorical column")
	f.BoolVar(&descCorr, "correlations", true, "compute Pearson correlations among numeric columns")
	f.BoolVar(&descOutliers, "outliers", true, "compute robust outlier counts (MAD)")
	f.Float64Var(&descOutlierThr, "outlier-threshold", 3.5, "robust |z| threshold for outliers (MAD-based)")
}
