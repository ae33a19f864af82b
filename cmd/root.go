package cmd

import (
	"fmt"
	"log/slog"
	"os"

	cfgpkg "github.com/KaramelBytes/datavision-cli/internal/config"
	"github.com/KaramelBytes/datavision-cli/internal/logging"
	"github.com/KaramelBytes/datavision-cli/internal/session"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile   string
	debug     bool
	logFormat string

	// Loaded configuration
	cfg    *cfgpkg.Global
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:           "datavision",
	Short:         "DataVision CLI: inspect, chart and refine CSV/JSON datasets",
	Long:          `DataVision parses CSV and JSON files, classifies their columns, reshapes them into chart-ready data for a chosen chart type, and cleans them up for export.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(loadConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.datavision/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log output format: text|json (overrides config)")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: fall back to built-in defaults
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		c = cfgpkg.Defaults()
	}
	cfg = c

	level, format := cfg.LogLevel, cfg.LogFormat
	if debug {
		level = "debug"
	}
	if logFormat != "" {
		format = logFormat
	}
	logger = logging.New(level, format, os.Stderr)
	slog.SetDefault(logger)
}

// currentConfig returns the loaded configuration, or defaults when the
// command runs without initialization.
func currentConfig() *cfgpkg.Global {
	if cfg == nil {
		return cfgpkg.Defaults()
	}
	return cfg
}

// openDataset loads either the bundled sample or the file named by args[0].
func openDataset(args []string, sample string) (*session.Session, error) {
	s := session.New(logger)
	var err error
	switch {
	case sample != "" && len(args) > 0:
		return nil, fmt.Errorf("use either a file or --sample, not both")
	case sample != "":
		err = s.LoadSample(sample)
	case len(args) == 1:
		err = s.LoadFile(args[0])
	default:
		return nil, fmt.Errorf("provide a CSV/JSON file or --sample <name>")
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}
