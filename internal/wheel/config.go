package wheel

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidConfig reports an unusable picker configuration.
var ErrInvalidConfig = errors.New("invalid picker config")

// TextStyle is the look of an item label. Colors are "#rrggbb" or an ANSI
// index ("0".."255").
type TextStyle struct {
	Color string `yaml:"color"`
	Bold  bool   `yaml:"bold"`
}

// Config holds layout and appearance. Heights and widths are in terminal
// cells.
type Config struct {
	ItemHeight       int       `yaml:"item_height"`
	VisibleItemCount int       `yaml:"visible_item_count"` // Must be odd
	SelectedStyle    TextStyle `yaml:"selected_style"`
	UnselectedStyle  TextStyle `yaml:"unselected_style"`

	BackgroundColor         string `yaml:"background_color"`    // Empty = terminal default
	SelectedRowBackground   string `yaml:"selected_row_background"`
	ContainerCornerRadius   int    `yaml:"container_corner_radius"`    // > 0 draws a rounded border
	SelectedRowCornerRadius int    `yaml:"selected_row_corner_radius"` // > 0 caps the selected band

	ColumnWidth int `yaml:"column_width"`
	ColumnGap   int `yaml:"column_gap"`

	ScrollDuration   time.Duration `yaml:"scroll_duration"`   // Smooth scroll length; 0 jumps
	EmphasisDuration time.Duration `yaml:"emphasis_duration"` // Style transition length; 0 snaps

	// ClampOnShrink pulls a loaded column back onto its last item when a new,
	// shorter option list leaves the offset past the end. Off by default:
	// the offset is kept and the previously picked option stays current.
	ClampOnShrink bool `yaml:"clamp_on_shrink"`
}

// DefaultConfig returns the stock look: five visible one-row items.
func DefaultConfig() Config {
	return Config{
		ItemHeight:       1,
		VisibleItemCount: 5,
		SelectedStyle: TextStyle{
			Color: "#FFFFFF",
			Bold:  true,
		},
		UnselectedStyle: TextStyle{
			Color: "#808080",
		},
		SelectedRowBackground:   "#3A3A3A",
		ContainerCornerRadius:   1,
		SelectedRowCornerRadius: 1,
		ColumnWidth:             11,
		ColumnGap:               1,
		ScrollDuration:          150 * time.Millisecond,
		EmphasisDuration:        70 * time.Millisecond,
	}
}

// Validate checks the structural invariants.
func (c Config) Validate() error {
	if c.ItemHeight < 1 {
		return fmt.Errorf("%w: item_height must be >= 1 (got %d)", ErrInvalidConfig, c.ItemHeight)
	}
	if c.VisibleItemCount < 1 || c.VisibleItemCount%2 == 0 {
		return fmt.Errorf("%w: visible_item_count must be a positive odd number (got %d)", ErrInvalidConfig, c.VisibleItemCount)
	}
	if c.ColumnWidth < 1 {
		return fmt.Errorf("%w: column_width must be >= 1 (got %d)", ErrInvalidConfig, c.ColumnWidth)
	}
	if c.ColumnGap < 0 {
		return fmt.Errorf("%w: column_gap must be >= 0 (got %d)", ErrInvalidConfig, c.ColumnGap)
	}
	if c.ContainerCornerRadius < 0 || c.SelectedRowCornerRadius < 0 {
		return fmt.Errorf("%w: corner radii must be >= 0", ErrInvalidConfig)
	}
	if c.ScrollDuration < 0 || c.EmphasisDuration < 0 {
		return fmt.Errorf("%w: durations must be >= 0", ErrInvalidConfig)
	}
	for name, color := range map[string]string{
		"selected_style.color":    c.SelectedStyle.Color,
		"unselected_style.color":  c.UnselectedStyle.Color,
		"background_color":        c.BackgroundColor,
		"selected_row_background": c.SelectedRowBackground,
	} {
		if color == "" {
			continue
		}
		if _, ok := parseColor(color); !ok {
			return fmt.Errorf("%w: %s: unrecognized color %q", ErrInvalidConfig, name, color)
		}
	}
	return nil
}

// viewportRows is the height of a column in rows.
func (c Config) viewportRows() int {
	return c.ItemHeight * c.VisibleItemCount
}
