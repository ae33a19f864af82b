package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	c, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.LogLevel != "info" || c.RenderFormat != "png" || c.DefaultChart != "table" {
		t.Fatalf("unexpected defaults: %+v", c)
	}
	if !c.TrimWhitespace || c.RemoveNulls || c.SampleRows != 5 {
		t.Fatalf("unexpected refine defaults: %+v", c)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	path := filepath.Join(home, "cfg.yaml")
	if err := os.WriteFile(path, []byte("render_width: 640\nlog_format: json\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("DATAVISION_LOG_FORMAT", "text")

	c, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.RenderWidth != 640 {
		t.Fatalf("render_width from file: got %d", c.RenderWidth)
	}
	if c.LogFormat != "text" {
		t.Fatalf("env should win over file, got %q", c.LogFormat)
	}
}

func TestLoadRejectsInvalidFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	path := filepath.Join(home, "cfg.yaml")
	if err := os.WriteFile(path, []byte("render_format: gif\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := Load(path)
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("want ValidationError, got %v", err)
	}
}

func TestSetAndSaveRoundTrip(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	c := Defaults()

	if err := c.Set("default_chart", "Stacked Bar Chart"); err != nil {
		t.Fatalf("set default_chart: %v", err)
	}
	if c.DefaultChart != "stacked-bar" {
		t.Fatalf("default_chart not normalised: %q", c.DefaultChart)
	}
	if err := c.Set("remove_duplicates", "true"); err != nil {
		t.Fatalf("set bool: %v", err)
	}
	if err := c.Set("render_width", "12"); err == nil {
		t.Fatalf("expected validation failure for tiny width")
	}
	if c.RenderWidth != 1024 {
		t.Fatalf("failed Set must not modify config, got %d", c.RenderWidth)
	}
	if err := c.Set("sample_rows", "many"); err == nil {
		t.Fatalf("expected parse failure")
	}
	if err := c.Set("nope", "1"); err == nil {
		t.Fatalf("expected unknown key error")
	}

	if err := Save(c, ""); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := os.Stat(filepath.Join(home, ".datavision", "config.yaml")); err != nil {
		t.Fatalf("config not written: %v", err)
	}
	got, err := Load("")
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.DefaultChart != "stacked-bar" || !got.RemoveDuplicates {
		t.Fatalf("round trip lost values: %+v", got)
	}
	if v, _ := got.Get("remove_duplicates"); v != "true" {
		t.Fatalf("get: %q", v)
	}
	if len(Keys()) != 11 {
		t.Fatalf("keys: %v", Keys())
	}
}
