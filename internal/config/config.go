package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/KaramelBytes/datavision-cli/internal/chart"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	LogLevel  string `mapstructure:"log_level" yaml:"log_level" validate:"oneof=debug info warn error"`
	LogFormat string `mapstructure:"log_format" yaml:"log_format" validate:"oneof=text json"`
	OutputDir string `mapstructure:"output_dir" yaml:"output_dir"`

	// Charting
	DefaultChart string `mapstructure:"default_chart" yaml:"default_chart" validate:"chart_type"`
	RenderWidth  int    `mapstructure:"render_width" yaml:"render_width" validate:"min=64,max=8192"`
	RenderHeight int    `mapstructure:"render_height" yaml:"render_height" validate:"min=64,max=8192"`
	RenderFormat string `mapstructure:"render_format" yaml:"render_format" validate:"oneof=png svg"`

	// Refinement defaults
	TrimWhitespace   bool `mapstructure:"trim_whitespace" yaml:"trim_whitespace"`
	RemoveNulls      bool `mapstructure:"remove_nulls" yaml:"remove_nulls"`
	RemoveDuplicates bool `mapstructure:"remove_duplicates" yaml:"remove_duplicates"`

	// Number of rows shown by inspect and describe.
	SampleRows int `mapstructure:"sample_rows" yaml:"sample_rows" validate:"min=0,max=1000"`
}

// Defaults returns the built-in configuration.
func Defaults() *Global {
	return &Global{
		LogLevel:       "info",
		LogFormat:      "text",
		DefaultChart:   string(chart.Table),
		RenderWidth:    1024,
		RenderHeight:   512,
		RenderFormat:   "png",
		TrimWhitespace: true,
		SampleRows:     5,
	}
}

// Dir is the per-user configuration directory.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".datavision"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.datavision/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	if err := c.Validate(); err != nil {
		return err
	}
	path := cfgFile
	if path == "" {
		dir, err := Dir()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (cfgFile) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("DATAVISION")
	v.AutomaticEnv()

	d := Defaults()
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("log_format", d.LogFormat)
	v.SetDefault("output_dir", d.OutputDir)
	v.SetDefault("default_chart", d.DefaultChart)
	v.SetDefault("render_width", d.RenderWidth)
	v.SetDefault("render_height", d.RenderHeight)
	v.SetDefault("render_format", d.RenderFormat)
	v.SetDefault("trim_whitespace", d.TrimWhitespace)
	v.SetDefault("remove_nulls", d.RemoveNulls)
	v.SetDefault("remove_duplicates", d.RemoveDuplicates)
	v.SetDefault("sample_rows", d.SampleRows)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else {
		dir, err := Dir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		// optional read
		_ = v.ReadInConfig()
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("chart_type", func(fl validator.FieldLevel) bool {
		_, err := chart.ParseType(fl.Field().String())
		return err == nil
	})
	return v
}

// ValidationError lists the config fields that failed validation.
type ValidationError struct {
	Fields []string
	Err    error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid config: %s", strings.Join(e.Fields, ", "))
}

func (e *ValidationError) Unwrap() error { return e.Err }

// Validate checks field constraints.
func (c *Global) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate config: %w", err)
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fmt.Sprintf("%s (%s=%v)", keyOf(fe.StructField()), fe.Tag(), fe.Value()))
	}
	return &ValidationError{Fields: fields, Err: err}
}

// keys maps struct field names to config keys.
var keys = map[string]string{
	"LogLevel":         "log_level",
	"LogFormat":        "log_format",
	"OutputDir":        "output_dir",
	"DefaultChart":     "default_chart",
	"RenderWidth":      "render_width",
	"RenderHeight":     "render_height",
	"RenderFormat":     "render_format",
	"TrimWhitespace":   "trim_whitespace",
	"RemoveNulls":      "remove_nulls",
	"RemoveDuplicates": "remove_duplicates",
	"SampleRows":       "sample_rows",
}

func keyOf(field string) string {
	if k, ok := keys[field]; ok {
		return k
	}
	return field
}

// Keys returns every settable key, sorted.
func Keys() []string {
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Set assigns key from its string form and validates the result. The
// receiver is left unchanged on error.
func (c *Global) Set(key, val string) error {
	next := *c
	var err error
	switch key {
	case "log_level":
		next.LogLevel = strings.ToLower(val)
	case "log_format":
		next.LogFormat = strings.ToLower(val)
	case "output_dir":
		next.OutputDir = val
	case "default_chart":
		var t chart.Type
		if t, err = chart.ParseType(val); err == nil {
			next.DefaultChart = string(t)
		}
	case "render_width":
		next.RenderWidth, err = cast.ToIntE(val)
	case "render_height":
		next.RenderHeight, err = cast.ToIntE(val)
	case "render_format":
		next.RenderFormat = strings.ToLower(val)
	case "trim_whitespace":
		next.TrimWhitespace, err = cast.ToBoolE(val)
	case "remove_nulls":
		next.RemoveNulls, err = cast.ToBoolE(val)
	case "remove_duplicates":
		next.RemoveDuplicates, err = cast.ToBoolE(val)
	case "sample_rows":
		next.SampleRows, err = cast.ToIntE(val)
	default:
		return fmt.Errorf("unknown key: %s", key)
	}
	if err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	if err := next.Validate(); err != nil {
		return err
	}
	*c = next
	return nil
}

// Get returns the string form of key.
func (c *Global) Get(key string) (string, error) {
	switch key {
	case "log_level":
		return c.LogLevel, nil
	case "log_format":
		return c.LogFormat, nil
	case "output_dir":
		return c.OutputDir, nil
	case "default_chart":
		return c.DefaultChart, nil
	case "render_width":
		return cast.ToString(c.RenderWidth), nil
	case "render_height":
		return cast.ToString(c.RenderHeight), nil
	case "render_format":
		return c.RenderFormat, nil
	case "trim_whitespace":
		return cast.ToString(c.TrimWhitespace), nil
	case "remove_nulls":
		return cast.ToString(c.RemoveNulls), nil
	case "remove_duplicates":
		return cast.ToString(c.RemoveDuplicates), nil
	case "sample_rows":
		return cast.ToString(c.SampleRows), nil
	}
	return "", fmt.Errorf("unknown key: %s", key)
}
