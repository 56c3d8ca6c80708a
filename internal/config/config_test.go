package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Picker.VisibleItemCount != 5 {
		t.Errorf("Expected visible_item_count=5, got %d", cfg.Picker.VisibleItemCount)
	}
	if cfg.Picker.ScrollDurationMs != 150 {
		t.Errorf("Expected scroll_duration_ms=150, got %d", cfg.Picker.ScrollDurationMs)
	}
	if cfg.Picker.ClampOnShrink {
		t.Error("Expected clamp_on_shrink=false by default")
	}
	if cfg.Date.DisplayFormat != "dd/MM/yyyy" {
		t.Errorf("Expected display_format=dd/MM/yyyy, got %s", cfg.Date.DisplayFormat)
	}
	if cfg.Date.DefaultDate != "1/11/1970" {
		t.Errorf("Expected default_date=1/11/1970, got %s", cfg.Date.DefaultDate)
	}
	if !cfg.Date.ThroughToday {
		t.Error("Expected through_today=true")
	}
	if cfg.Date.Mode != "inline" {
		t.Errorf("Expected mode=inline, got %s", cfg.Date.Mode)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("Expected log.level=warn, got %s", cfg.Log.Level)
	}
}

func TestDefaultConfigIsValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("DefaultConfig should be valid: %v", err)
	}
}

func TestPickerConfigWheel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Picker.ScrollDurationMs = 300
	cfg.Picker.SelectedColor = "#FF0000"
	cfg.Picker.ClampOnShrink = true

	w := cfg.Picker.Wheel()
	if w.ScrollDuration != 300*time.Millisecond {
		t.Errorf("Expected ScrollDuration=300ms, got %v", w.ScrollDuration)
	}
	if w.SelectedStyle.Color != "#FF0000" {
		t.Errorf("Expected selected color #FF0000, got %s", w.SelectedStyle.Color)
	}
	if !w.ClampOnShrink {
		t.Error("Expected ClampOnShrink=true")
	}
	if w.EmphasisDuration != 70*time.Millisecond {
		t.Errorf("Expected EmphasisDuration=70ms, got %v", w.EmphasisDuration)
	}
}

func TestDateConfigOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Date.MaxYear = 2030
	cfg.Date.Mode = "dialog"

	opts := cfg.Date.Options()
	if opts.MaxYear != 2030 {
		t.Errorf("Expected MaxYear=2030, got %d", opts.MaxYear)
	}
	if string(opts.Mode) != "dialog" {
		t.Errorf("Expected Mode=dialog, got %s", opts.Mode)
	}
	if !opts.AllowThroughToday {
		t.Error("Expected AllowThroughToday=true")
	}
}

func TestConfigGet(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		key      string
		expected string
	}{
		{"picker.item_height", "1"},
		{"picker.visible_item_count", "5"},
		{"picker.selected_color", "#FFFFFF"},
		{"picker.selected_bold", "true"},
		{"picker.background_color", ""},
		{"picker.emphasis_duration_ms", "70"},
		{"picker.clamp_on_shrink", "false"},
		{"date.max_year", "0"},
		{"date.display_format", "dd/MM/yyyy"},
		{"date.default_date", "1/11/1970"},
		{"date.through_today", "true"},
		{"date.month_format", "MMMM"},
		{"date.mode", "inline"},
		{"log.level", "warn"},
		{"log.file", ""},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, err := cfg.Get(tt.key)
			if err != nil {
				t.Fatalf("Get(%q) error: %v", tt.key, err)
			}
			if got != tt.expected {
				t.Errorf("Get(%q) = %q, want %q", tt.key, got, tt.expected)
			}
		})
	}
}

func TestConfigSet(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"picker.item_height", "2"},
		{"picker.column_width", "14"},
		{"picker.unselected_color", "244"},
		{"picker.unselected_bold", "true"},
		{"picker.scroll_duration_ms", "0"},
		{"picker.clamp_on_shrink", "true"},
		{"date.max_year", "2030"},
		{"date.max_year", "0"},
		{"date.display_format", "yyyy-MM-dd"},
		{"date.default_date", "2000-01-01"},
		{"date.through_today", "false"},
		{"date.month_format", "MMM"},
		{"date.mode", "sheet"},
		{"log.level", "debug"},
		{"log.file", "/tmp/datewheel.log"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			cfg := DefaultConfig()
			if err := cfg.Set(tt.key, tt.value); err != nil {
				t.Fatalf("Set(%q, %q) error: %v", tt.key, tt.value, err)
			}
			got, err := cfg.Get(tt.key)
			if err != nil {
				t.Fatalf("Get(%q) error: %v", tt.key, err)
			}
			if got != tt.value {
				t.Errorf("after Set, Get(%q) = %q, want %q", tt.key, got, tt.value)
			}
		})
	}
}

func TestConfigSetModeIsNormalized(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Set("date.mode", "Dialog"); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if cfg.Date.Mode != "dialog" {
		t.Errorf("Expected mode=dialog, got %s", cfg.Date.Mode)
	}
}

func TestConfigGetInvalidKey(t *testing.T) {
	cfg := DefaultConfig()

	for _, key := range []string{
		"",
		"picker",
		"picker.item_height.extra",
		"unknown.field",
		"picker.unknown",
		"date.unknown",
		"log.unknown",
	} {
		t.Run(key, func(t *testing.T) {
			if _, err := cfg.Get(key); err == nil {
				t.Errorf("Get(%q) should fail", key)
			}
		})
	}
}

func TestConfigSetInvalidValue(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"picker.item_height", "abc"},
		{"picker.item_height", "-1"},
		{"picker.selected_bold", "maybe"},
		{"picker.unknown", "1"},
		{"date.max_year", "1969"},
		{"date.max_year", "soon"},
		{"date.display_format", "dd/QQ"},
		{"date.through_today", "2"},
		{"date.month_format", "'MMMM"},
		{"date.mode", "popup"},
		{"log.level", "verbose"},
		{"log.unknown", "x"},
		{"nosection", "x"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			cfg := DefaultConfig()
			if err := cfg.Set(tt.key, tt.value); err == nil {
				t.Errorf("Set(%q, %q) should fail", tt.key, tt.value)
			}
		})
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		errMsg string
	}{
		{"even visible count", func(c *Config) { c.Picker.VisibleItemCount = 4 }, "picker"},
		{"zero item height", func(c *Config) { c.Picker.ItemHeight = 0 }, "picker"},
		{"bad color", func(c *Config) { c.Picker.SelectedColor = "white" }, "picker"},
		{"old max year", func(c *Config) { c.Date.MaxYear = 1900 }, "date.max_year"},
		{"bad display format", func(c *Config) { c.Date.DisplayFormat = "" }, "date.display_format"},
		{"default date mismatch", func(c *Config) { c.Date.DefaultDate = "1970-11-01" }, "date.default_date"},
		{"bad month format", func(c *Config) { c.Date.MonthFormat = "QQ" }, "date.month_format"},
		{"bad mode", func(c *Config) { c.Date.Mode = "popup" }, "date.mode"},
		{"bad log level", func(c *Config) { c.Log.Level = "trace" }, "log.level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate should fail")
			}
			if !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("error %q should mention %q", err, tt.errMsg)
			}
		})
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	tests := []struct {
		name      string
		env       map[string]string
		wantLevel string
		wantMode  string
	}{
		{"none", nil, "warn", "inline"},
		{"log level", map[string]string{"DATEWHEEL_LOG_LEVEL": "info"}, "info", "inline"},
		{"invalid log level ignored", map[string]string{"DATEWHEEL_LOG_LEVEL": "loud"}, "warn", "inline"},
		{"debug wins", map[string]string{"DATEWHEEL_LOG_LEVEL": "error", "DATEWHEEL_DEBUG": "1"}, "debug", "inline"},
		{"debug false", map[string]string{"DATEWHEEL_DEBUG": "false"}, "warn", "inline"},
		{"mode", map[string]string{"DATEWHEEL_MODE": "sheet"}, "warn", "sheet"},
		{"invalid mode ignored", map[string]string{"DATEWHEEL_MODE": "popup"}, "warn", "inline"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, k := range []string{"DATEWHEEL_LOG_LEVEL", "DATEWHEEL_DEBUG", "DATEWHEEL_MODE"} {
				t.Setenv(k, tt.env[k])
			}

			cfg := DefaultConfig()
			cfg.ApplyEnvOverrides()

			if cfg.Log.Level != tt.wantLevel {
				t.Errorf("log.level = %s, want %s", cfg.Log.Level, tt.wantLevel)
			}
			if cfg.Date.Mode != tt.wantMode {
				t.Errorf("date.mode = %s, want %s", cfg.Date.Mode, tt.wantMode)
			}
		})
	}
}

func TestLoadFromFile_NonExistent(t *testing.T) {
	cfg, err := LoadFromFile("/nonexistent/path/config.yaml")
	if err != nil {
		t.Fatalf("LoadFromFile should return defaults for nonexistent file: %v", err)
	}

	if cfg.Date.DisplayFormat != "dd/MM/yyyy" {
		t.Errorf("Expected default display_format, got %s", cfg.Date.DisplayFormat)
	}
}

func TestLoadFromFile_InvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "config.yaml")

	invalidYAML := `
picker:
  item_height: [not valid yaml
  this is broken
`
	if err := os.WriteFile(configFile, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("Failed to write invalid YAML: %v", err)
	}

	if _, err := LoadFromFile(configFile); err == nil {
		t.Error("LoadFromFile should have returned an error for invalid YAML")
	}
}

func TestLoadFromFile_PartialConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "config.yaml")

	partialYAML := `
date:
  display_format: yyyy-MM-dd
  default_date: "2001-02-03"
  mode: dialog
picker:
  clamp_on_shrink: true
`
	if err := os.WriteFile(configFile, []byte(partialYAML), 0644); err != nil {
		t.Fatalf("Failed to write partial YAML: %v", err)
	}

	cfg, err := LoadFromFile(configFile)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}

	if cfg.Date.DisplayFormat != "yyyy-MM-dd" {
		t.Errorf("Expected display_format=yyyy-MM-dd, got %s", cfg.Date.DisplayFormat)
	}
	if cfg.Date.Mode != "dialog" {
		t.Errorf("Expected mode=dialog, got %s", cfg.Date.Mode)
	}
	if !cfg.Picker.ClampOnShrink {
		t.Error("Expected clamp_on_shrink=true")
	}

	// Untouched fields keep their defaults
	if cfg.Date.MonthFormat != "MMMM" {
		t.Errorf("Expected default month_format=MMMM, got %s", cfg.Date.MonthFormat)
	}
	if cfg.Picker.VisibleItemCount != 5 {
		t.Errorf("Expected default visible_item_count=5, got %d", cfg.Picker.VisibleItemCount)
	}
}

func TestLoadFromFile_InvalidValues(t *testing.T) {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "config.yaml")

	if err := os.WriteFile(configFile, []byte("picker:\n  visible_item_count: 4\n"), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	_, err := LoadFromFile(configFile)
	if err == nil {
		t.Fatal("LoadFromFile should reject an even visible_item_count")
	}
	if !strings.Contains(err.Error(), "invalid config") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoadFromFile_EmptyFile(t *testing.T) {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "config.yaml")

	if err := os.WriteFile(configFile, []byte(""), 0644); err != nil {
		t.Fatalf("Failed to write empty file: %v", err)
	}

	cfg, err := LoadFromFile(configFile)
	if err != nil {
		t.Fatalf("LoadFromFile failed for empty file: %v", err)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("Expected default log.level=warn, got %s", cfg.Log.Level)
	}
}

func TestLoadFromFile_ReadError(t *testing.T) {
	tmpDir := t.TempDir()

	subDir := filepath.Join(tmpDir, "subdir")
	if err := os.Mkdir(subDir, 0755); err != nil {
		t.Fatalf("Failed to create subdir: %v", err)
	}

	if _, err := LoadFromFile(subDir); err == nil {
		t.Error("LoadFromFile should have returned an error when reading a directory")
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	t.Setenv("DATEWHEEL_LOG_LEVEL", "")
	t.Setenv("DATEWHEEL_DEBUG", "")
	t.Setenv("DATEWHEEL_MODE", "")

	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.Picker.ItemHeight = 3
	cfg.Picker.BackgroundColor = "#101010"
	cfg.Picker.ClampOnShrink = true
	cfg.Date.MaxYear = 2040
	cfg.Date.DisplayFormat = "d MMM yyyy"
	cfg.Date.DefaultDate = "4 Jul 1999"
	cfg.Date.ThroughToday = false
	cfg.Date.Mode = "sheet"
	cfg.Log.Level = "info"
	cfg.Log.File = "/tmp/dw.log"

	if err := cfg.SaveToFile(configFile); err != nil {
		t.Fatalf("SaveToFile failed: %v", err)
	}

	loaded, err := LoadFromFile(configFile)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}

	if *loaded != *cfg {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", *loaded, *cfg)
	}
}

func TestListKeys(t *testing.T) {
	keys := ListKeys()
	if len(keys) == 0 {
		t.Fatal("ListKeys returned empty list")
	}

	seen := make(map[string]bool)
	for _, k := range keys {
		if seen[k] {
			t.Errorf("duplicate key: %s", k)
		}
		seen[k] = true
	}
}

func TestListKeysAllGettable(t *testing.T) {
	cfg := DefaultConfig()

	for _, key := range ListKeys() {
		t.Run(key, func(t *testing.T) {
			if _, err := cfg.Get(key); err != nil {
				t.Errorf("Get(%q) failed for key from ListKeys: %v", key, err)
			}
		})
	}
}

func TestListKeysAllSettable(t *testing.T) {
	// Setting a key to its current value must always succeed.
	for _, key := range ListKeys() {
		t.Run(key, func(t *testing.T) {
			cfg := DefaultConfig()
			value, err := cfg.Get(key)
			if err != nil {
				t.Fatalf("Get(%q) failed: %v", key, err)
			}
			if err := cfg.Set(key, value); err != nil {
				t.Errorf("Set(%q, %q) failed for key from ListKeys: %v", key, value, err)
			}
		})
	}
}
