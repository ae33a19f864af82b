package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/KaramelBytes/datavision-cli/internal/analysis"
	"github.com/KaramelBytes/datavision-cli/internal/session"
	"github.com/KaramelBytes/datavision-cli/internal/utils"
	"github.com/spf13/cobra"
)

var (
	dbOutDir     string
	dbSampleRows int
	dbQuiet      bool
	dbKeepGoing  bool
)

var describeBatchCmd = &cobra.Command{
	Use:   "describe-batch <files...>",
	Short: "Describe several CSV/JSON files, one Markdown summary per file",
	Long: `Describe every file matched by the given paths or glob patterns. Each file
is loaded on its own; summaries are written as <name>.summary.md under
--out-dir (default output_dir, else the current directory). An existing
summary is never overwritten: a numeric suffix is added instead.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var files []string
		seen := map[string]struct{}{}
		for _, arg := range args {
			matches, _ := filepath.Glob(arg)
			if len(matches) == 0 {
				// treat as literal path if exists
				if _, err := os.Stat(arg); err == nil {
					matches = []string{arg}
				}
			}
			for _, m := range matches {
				if _, ok := seen[m]; ok {
					continue
				}
				seen[m] = struct{}{}
				files = append(files, m)
			}
		}
		if len(files) == 0 {
			return fmt.Errorf("no input files matched")
		}
		sort.Strings(files)

		c := currentConfig()
		opt := analysis.DefaultOptions()
		opt.SampleRows = c.SampleRows
		if cmd.Flags().Changed("sample-rows") {
			opt.SampleRows = dbSampleRows
		}
		outDir := dbOutDir
		if outDir == "" {
			outDir = c.OutputDir
		}
		if outDir == "" {
			outDir = "."
		}
		if err := utils.EnsureDir(outDir); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		total, failed := len(files), 0
		for i, path := range files {
			if !dbQuiet {
				fmt.Fprintf(out, "[%d/%d] Processing %s...\n", i+1, total, filepath.Base(path))
			}
			s := session.New(logger)
			if err := s.LoadFile(path); err != nil {
				if !dbKeepGoing {
					return fmt.Errorf("%s: %w", path, err)
				}
				failed++
				fmt.Fprintf(out, "✗ %s: %v\n", path, err)
				continue
			}
			md := s.Describe(opt).Markdown()

			base := filepath.Base(path)
			safe := strings.TrimSuffix(base, filepath.Ext(base))
			outFile := filepath.Join(outDir, safe+".summary.md")
			if _, statErr := os.Stat(outFile); statErr == nil {
				idx := 2
				for {
					cand := filepath.Join(outDir, fmt.Sprintf("%s__%d.summary.md", safe, idx))
					if _, err := os.Stat(cand); os.IsNotExist(err) {
						if !dbQuiet {
							fmt.Fprintf(out, "⚠ Detected existing summary, writing to %s to avoid overwrite.\n", filepath.Base(cand))
						}
						outFile = cand
						break
					}
					idx++
				}
			}
			if err := utils.SafeWriteFile(outFile, []byte(md)); err != nil {
				return fmt.Errorf("write summary: %w", err)
			}
			if !dbQuiet {
				fmt.Fprintf(out, "✓ Wrote %s\n", outFile)
			}
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d files failed", failed, total)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(describeBatchCmd)
	f := describeBatchCmd.Flags()
	f.StringVar(&dbOutDir, "out-dir", "", "directory for the summaries (default output_dir)")
	f.IntVar(&dbSampleRows, "sample-rows", 5, "sample rows per summary, 0 disables the section (default from sample_rows)")
	f.BoolVar(&dbQuiet, "quiet", false, "suppress progress and non-essential output")
	f.BoolVar(&dbKeepGoing, "keep-going", false, "continue past files that fail to load")
}
