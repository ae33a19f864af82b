package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/KaramelBytes/datavision-cli/internal/chart"
	"github.com/KaramelBytes/datavision-cli/internal/render"
	"github.com/KaramelBytes/datavision-cli/internal/table"
	"github.com/KaramelBytes/datavision-cli/internal/utils"
	"github.com/spf13/cobra"
)

var (
	chSample string
	chType   string
	chX      string
	chY      string
	chZ      string
	chGroup  string
	chValue  string
	chFormat string
	chOutput string
	chWidth  int
	chHeight int
	chTitle  string
)

var chartCmd = &cobra.Command{
	Use:   "chart [file]",
	Short: "Reshape a dataset for a chart type and print JSON or draw an image",
	Long: `Reshape a dataset for the chosen chart type. Unset roles are filled from
the column classification. With --format json (default) the chart-ready
records are printed or written to --output; png and svg draw the chart.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := currentConfig()
		s, err := openDataset(args, chSample)
		if err != nil {
			return err
		}

		name := chType
		if !cmd.Flags().Changed("type") {
			name = c.DefaultChart
		}
		t, err := chart.ParseType(name)
		if err != nil {
			return err
		}
		m := s.DefaultMapping(t)
		f := cmd.Flags()
		if f.Changed("x") {
			m.XAxis = chX
		}
		if f.Changed("y") {
			m.YAxis = chY
		}
		if f.Changed("z") {
			m.ZAxis = chZ
		}
		if f.Changed("group") {
			m.GroupKey = chGroup
		}
		if f.Changed("value") {
			m.ValueKey = chValue
		}

		out := cmd.OutOrStdout()
		err = s.SelectChart(t, m)
		var ds table.RowSet
		if err == nil {
			ds, err = s.ChartData()
		}
		var ce *chart.ConfigurationError
		if errors.As(err, &ce) {
			// placeholder instead of a failure
			fmt.Fprintf(out, "⚠ Cannot display %s\n", ce.Error())
			return nil
		}
		if err != nil {
			return err
		}

		format := strings.ToLower(chFormat)
		if !f.Changed("format") {
			// infer from the output extension
			switch ext := strings.ToLower(filepath.Ext(chOutput)); ext {
			case ".png", ".svg":
				format = ext[1:]
			}
		}
		if format == "image" {
			format = c.RenderFormat
		}
		if format == "json" {
			b, err := utils.PrettyJSON(ds)
			if err != nil {
				return err
			}
			if chOutput == "" {
				fmt.Fprintln(out, string(b))
				return nil
			}
			path := utils.ResolveOutput(c.OutputDir, chOutput)
			if err := utils.SafeWriteFile(path, b); err != nil {
				return err
			}
			fmt.Fprintf(out, "✓ Wrote %d records to %s\n", len(ds), path)
			return nil
		}

		rf, err := render.ParseFormat(format)
		if err != nil {
			return err
		}
		opts := render.Options{Format: rf, Width: c.RenderWidth, Height: c.RenderHeight, Title: chTitle}
		if f.Changed("width") {
			opts.Width = chWidth
		}
		if f.Changed("height") {
			opts.Height = chHeight
		}
		var buf bytes.Buffer
		if err := render.Render(&buf, t, m, ds, opts); err != nil {
			return err
		}
		target := chOutput
		if target == "" {
			target = utils.DerivedName(s.Name(), string(t), string(rf))
		}
		path := utils.ResolveOutput(c.OutputDir, target)
		if err := utils.SafeWriteFile(path, buf.Bytes()); err != nil {
			return err
		}
		fmt.Fprintf(out, "✓ Wrote %s to %s\n", t.Label(), path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(chartCmd)
	f := chartCmd.Flags()
	f.StringVar(&chSample, "sample", "", "use a bundled sample instead of a file")
	f.StringVarP(&chType, "type", "t", "table", "chart type (default from default_chart), e.g. bar, stacked-bar, scatter")
	f.StringVar(&chX, "x", "", "x axis column")
	f.StringVar(&chY, "y", "", "y axis column")
	f.StringVar(&chZ, "z", "", "z axis column (bubble size)")
	f.StringVar(&chGroup, "group", "", "group column (stacked, grouped and stacked-area charts)")
	f.StringVar(&chValue, "value", "", "value column (heatmap)")
	f.StringVarP(&chFormat, "format", "f", "json", "output: json|png|svg|image (image uses render_format)")
	f.StringVarP(&chOutput, "output", "o", "", "output path (relative paths go under output_dir)")
	f.IntVar(&chWidth, "width", 1024, "image width in pixels (default from render_width)")
	f.IntVar(&chHeight, "height", 512, "image height in pixels (default from render_height)")
	f.StringVar(&chTitle, "title", "", "image title (default: chart label)")
}
