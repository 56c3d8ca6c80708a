package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/runger/datewheel/internal/datepicker"
	"github.com/runger/datewheel/internal/daterange"
	"github.com/runger/datewheel/internal/wheel"
)

// Config represents the datewheel configuration.
type Config struct {
	Picker PickerConfig `yaml:"picker"`
	Date   DateConfig   `yaml:"date"`
	Log    LogConfig    `yaml:"log"`
}

// PickerConfig holds the look and motion of the wheels.
type PickerConfig struct {
	ItemHeight              int    `yaml:"item_height"`        // Rows per item
	VisibleItemCount        int    `yaml:"visible_item_count"` // Odd
	ColumnWidth             int    `yaml:"column_width"`
	ColumnGap               int    `yaml:"column_gap"`
	SelectedColor           string `yaml:"selected_color"`
	SelectedBold            bool   `yaml:"selected_bold"`
	UnselectedColor         string `yaml:"unselected_color"`
	UnselectedBold          bool   `yaml:"unselected_bold"`
	BackgroundColor         string `yaml:"background_color"` // Empty = terminal default
	SelectedRowBackground   string `yaml:"selected_row_background"`
	ContainerCornerRadius   int    `yaml:"container_corner_radius"`
	SelectedRowCornerRadius int    `yaml:"selected_row_corner_radius"`
	ScrollDurationMs        int    `yaml:"scroll_duration_ms"`   // 0 jumps
	EmphasisDurationMs      int    `yaml:"emphasis_duration_ms"` // 0 snaps
	ClampOnShrink           bool   `yaml:"clamp_on_shrink"`
}

// DateConfig holds what the picker offers and how the result is printed.
type DateConfig struct {
	MaxYear       int    `yaml:"max_year"`       // 0 = current year
	DisplayFormat string `yaml:"display_format"` // Pattern of the printed date
	DefaultDate   string `yaml:"default_date"`   // Parsed with display_format
	ThroughToday  bool   `yaml:"through_today"`  // Hide dates after today
	MonthFormat   string `yaml:"month_format"`   // MMMM, MMM, MM or M
	Mode          string `yaml:"mode"`           // inline, sheet or dialog
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`  // Log file path (overrides default)
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	w := wheel.DefaultConfig()
	return &Config{
		Picker: PickerConfig{
			ItemHeight:              w.ItemHeight,
			VisibleItemCount:        w.VisibleItemCount,
			ColumnWidth:             w.ColumnWidth,
			ColumnGap:               w.ColumnGap,
			SelectedColor:           w.SelectedStyle.Color,
			SelectedBold:            w.SelectedStyle.Bold,
			UnselectedColor:         w.UnselectedStyle.Color,
			UnselectedBold:          w.UnselectedStyle.Bold,
			BackgroundColor:         w.BackgroundColor,
			SelectedRowBackground:   w.SelectedRowBackground,
			ContainerCornerRadius:   w.ContainerCornerRadius,
			SelectedRowCornerRadius: w.SelectedRowCornerRadius,
			ScrollDurationMs:        int(w.ScrollDuration / time.Millisecond),
			EmphasisDurationMs:      int(w.EmphasisDuration / time.Millisecond),
			ClampOnShrink:           w.ClampOnShrink,
		},
		Date: DateConfig{
			DisplayFormat: daterange.DefaultDisplayFormat,
			DefaultDate:   datepicker.DefaultSelectedDate,
			ThroughToday:  true,
			MonthFormat:   daterange.DefaultMonthFormat,
			Mode:          string(datepicker.ModeInline),
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// Wheel converts the picker section.
func (p PickerConfig) Wheel() wheel.Config {
	return wheel.Config{
		ItemHeight:       p.ItemHeight,
		VisibleItemCount: p.VisibleItemCount,
		SelectedStyle: wheel.TextStyle{
			Color: p.SelectedColor,
			Bold:  p.SelectedBold,
		},
		UnselectedStyle: wheel.TextStyle{
			Color: p.UnselectedColor,
			Bold:  p.UnselectedBold,
		},
		BackgroundColor:         p.BackgroundColor,
		SelectedRowBackground:   p.SelectedRowBackground,
		ContainerCornerRadius:   p.ContainerCornerRadius,
		SelectedRowCornerRadius: p.SelectedRowCornerRadius,
		ColumnWidth:             p.ColumnWidth,
		ColumnGap:               p.ColumnGap,
		ScrollDuration:          time.Duration(p.ScrollDurationMs) * time.Millisecond,
		EmphasisDuration:        time.Duration(p.EmphasisDurationMs) * time.Millisecond,
		ClampOnShrink:           p.ClampOnShrink,
	}
}

// Options converts the date section. Callbacks, clock and logger are left
// for the caller.
func (d DateConfig) Options() datepicker.Options {
	return datepicker.Options{
		MaxYear:             d.MaxYear,
		DisplayFormat:       d.DisplayFormat,
		DefaultSelectedDate: d.DefaultDate,
		AllowThroughToday:   d.ThroughToday,
		MonthFormat:         d.MonthFormat,
		Mode:                datepicker.Mode(d.Mode),
	}
}

// Load loads configuration from the default path.
func Load() (*Config, error) {
	paths := DefaultPaths()
	return LoadFromFile(paths.ConfigFile())
}

// LoadFromFile loads configuration from the specified file.
// If the file doesn't exist, returns default configuration.
// Environment variable overrides are applied after file loading.
func LoadFromFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.ApplyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.ApplyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Save saves the configuration to the default path.
func (c *Config) Save() error {
	paths := DefaultPaths()
	return c.SaveToFile(paths.ConfigFile())
}

// SaveToFile saves the configuration to the specified file.
func (c *Config) SaveToFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Get retrieves a configuration value by dot-separated key.
// For example: "date.display_format" or "picker.clamp_on_shrink"
func (c *Config) Get(key string) (string, error) {
	parts := strings.Split(key, ".")
	if len(parts) != 2 {
		return "", errors.New("key must be in format 'section.key'")
	}

	section, field := parts[0], parts[1]

	switch section {
	case "picker":
		return c.getPickerField(field)
	case "date":
		return c.getDateField(field)
	case "log":
		return c.getLogField(field)
	default:
		return "", fmt.Errorf("unknown section: %s", section)
	}
}

// Set sets a configuration value by dot-separated key. The value is checked
// on its own; cross-field rules are left to Validate.
func (c *Config) Set(key, value string) error {
	parts := strings.Split(key, ".")
	if len(parts) != 2 {
		return errors.New("key must be in format 'section.key'")
	}

	section, field := parts[0], parts[1]

	switch section {
	case "picker":
		return c.setPickerField(field, value)
	case "date":
		return c.setDateField(field, value)
	case "log":
		return c.setLogField(field, value)
	default:
		return fmt.Errorf("unknown section: %s", section)
	}
}

func (c *Config) pickerInts() map[string]*int {
	return map[string]*int{
		"item_height":                &c.Picker.ItemHeight,
		"visible_item_count":         &c.Picker.VisibleItemCount,
		"column_width":               &c.Picker.ColumnWidth,
		"column_gap":                 &c.Picker.ColumnGap,
		"container_corner_radius":    &c.Picker.ContainerCornerRadius,
		"selected_row_corner_radius": &c.Picker.SelectedRowCornerRadius,
		"scroll_duration_ms":         &c.Picker.ScrollDurationMs,
		"emphasis_duration_ms":       &c.Picker.EmphasisDurationMs,
	}
}

func (c *Config) pickerBools() map[string]*bool {
	return map[string]*bool{
		"selected_bold":   &c.Picker.SelectedBold,
		"unselected_bold": &c.Picker.UnselectedBold,
		"clamp_on_shrink": &c.Picker.ClampOnShrink,
	}
}

func (c *Config) pickerColors() map[string]*string {
	return map[string]*string{
		"selected_color":          &c.Picker.SelectedColor,
		"unselected_color":        &c.Picker.UnselectedColor,
		"background_color":        &c.Picker.BackgroundColor,
		"selected_row_background": &c.Picker.SelectedRowBackground,
	}
}

func (c *Config) getPickerField(field string) (string, error) {
	if v, ok := c.pickerInts()[field]; ok {
		return strconv.Itoa(*v), nil
	}
	if v, ok := c.pickerBools()[field]; ok {
		return strconv.FormatBool(*v), nil
	}
	if v, ok := c.pickerColors()[field]; ok {
		return *v, nil
	}
	return "", fmt.Errorf("unknown field: picker.%s", field)
}

func (c *Config) setPickerField(field, value string) error {
	if dst, ok := c.pickerInts()[field]; ok {
		v, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid value for %s: %w", field, err)
		}
		if v < 0 {
			return fmt.Errorf("invalid %s: must be non-negative", field)
		}
		*dst = v
		return nil
	}
	if dst, ok := c.pickerBools()[field]; ok {
		v, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid value for %s: %w", field, err)
		}
		*dst = v
		return nil
	}
	if dst, ok := c.pickerColors()[field]; ok {
		*dst = value
		return nil
	}
	return fmt.Errorf("unknown field: picker.%s", field)
}

func (c *Config) getDateField(field string) (string, error) {
	switch field {
	case "max_year":
		return strconv.Itoa(c.Date.MaxYear), nil
	case "display_format":
		return c.Date.DisplayFormat, nil
	case "default_date":
		return c.Date.DefaultDate, nil
	case "through_today":
		return strconv.FormatBool(c.Date.ThroughToday), nil
	case "month_format":
		return c.Date.MonthFormat, nil
	case "mode":
		return c.Date.Mode, nil
	default:
		return "", fmt.Errorf("unknown field: date.%s", field)
	}
}

func (c *Config) setDateField(field, value string) error {
	switch field {
	case "max_year":
		v, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid value for max_year: %w", err)
		}
		if v != 0 && v < daterange.FloorYear {
			return fmt.Errorf("invalid max_year: must be 0 or >= %d", daterange.FloorYear)
		}
		c.Date.MaxYear = v
	case "display_format":
		if _, err := daterange.Compile(value); err != nil {
			return fmt.Errorf("invalid display_format: %w", err)
		}
		c.Date.DisplayFormat = value
	case "default_date":
		c.Date.DefaultDate = value
	case "through_today":
		v, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid value for through_today: %w", err)
		}
		c.Date.ThroughToday = v
	case "month_format":
		if _, err := daterange.Compile(value); err != nil {
			return fmt.Errorf("invalid month_format: %w", err)
		}
		c.Date.MonthFormat = value
	case "mode":
		m, err := datepicker.ParseMode(value)
		if err != nil {
			return err
		}
		c.Date.Mode = string(m)
	default:
		return fmt.Errorf("unknown field: date.%s", field)
	}
	return nil
}

func (c *Config) getLogField(field string) (string, error) {
	switch field {
	case "level":
		return c.Log.Level, nil
	case "file":
		return c.Log.File, nil
	default:
		return "", fmt.Errorf("unknown field: log.%s", field)
	}
}

func (c *Config) setLogField(field, value string) error {
	switch field {
	case "level":
		if !isValidLogLevel(value) {
			return fmt.Errorf("invalid level: %s (must be debug, info, warn, or error)", value)
		}
		c.Log.Level = value
	case "file":
		c.Log.File = value
	default:
		return fmt.Errorf("unknown field: log.%s", field)
	}
	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.Picker.Wheel().Validate(); err != nil {
		return fmt.Errorf("picker: %w", err)
	}

	if c.Date.MaxYear != 0 && c.Date.MaxYear < daterange.FloorYear {
		return fmt.Errorf("date.max_year must be 0 or >= %d (got: %d)", daterange.FloorYear, c.Date.MaxYear)
	}

	format, err := daterange.Compile(c.Date.DisplayFormat)
	if err != nil {
		return fmt.Errorf("date.display_format: %w", err)
	}
	if _, err := format.Parse(c.Date.DefaultDate); err != nil {
		return fmt.Errorf("date.default_date does not match date.display_format: %w", err)
	}

	if _, err := daterange.Compile(c.Date.MonthFormat); err != nil {
		return fmt.Errorf("date.month_format: %w", err)
	}

	if _, err := datepicker.ParseMode(c.Date.Mode); err != nil {
		return fmt.Errorf("date.mode: %w", err)
	}

	if !isValidLogLevel(c.Log.Level) {
		return fmt.Errorf("log.level must be debug, info, warn, or error (got: %s)", c.Log.Level)
	}

	return nil
}

func isValidLogLevel(level string) bool {
	switch level {
	case "debug", "info", "warn", "error":
		return true
	default:
		return false
	}
}

// ApplyEnvOverrides applies environment variable overrides to the config.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("DATEWHEEL_LOG_LEVEL"); v != "" {
		if isValidLogLevel(v) {
			c.Log.Level = v
		}
	}
	if v := os.Getenv("DATEWHEEL_DEBUG"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil && b {
			c.Log.Level = "debug"
		}
	}
	if v := os.Getenv("DATEWHEEL_MODE"); v != "" {
		if m, err := datepicker.ParseMode(v); err == nil {
			c.Date.Mode = string(m)
		}
	}
}

// ListKeys returns every configuration key.
func ListKeys() []string {
	return []string{
		"date.max_year",
		"date.display_format",
		"date.default_date",
		"date.through_today",
		"date.month_format",
		"date.mode",
		"picker.item_height",
		"picker.visible_item_count",
		"picker.column_width",
		"picker.column_gap",
		"picker.selected_color",
		"picker.selected_bold",
		"picker.unselected_color",
		"picker.unselected_bold",
		"picker.background_color",
		"picker.selected_row_background",
		"picker.container_corner_radius",
		"picker.selected_row_corner_radius",
		"picker.scroll_duration_ms",
		"picker.emphasis_duration_ms",
		"picker.clamp_on_shrink",
		"log.level",
		"log.file",
	}
}
