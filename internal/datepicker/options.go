// Package datepicker hosts the day/month/year wheels: it keeps the selected
// date in a Store, feeds the derived option lists to the wheels and turns
// wheel selections back into a date.
package datepicker

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/runger/datewheel/internal/daterange"
)

// DefaultSelectedDate is shown when no date is supplied.
const DefaultSelectedDate = "1/11/1970"

// ErrInvalidMode reports an unknown presentation mode.
var ErrInvalidMode = errors.New("invalid mode")

// Mode is how the picker is presented.
type Mode string

const (
	ModeInline Mode = "inline" // Rendered in place
	ModeSheet  Mode = "sheet"  // Panel anchored to the bottom edge
	ModeDialog Mode = "dialog" // Centered box with title and buttons
)

// Modes lists the accepted modes.
var Modes = []Mode{ModeInline, ModeSheet, ModeDialog}

// ParseMode validates s.
func ParseMode(s string) (Mode, error) {
	for _, m := range Modes {
		if strings.EqualFold(s, string(m)) {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q (want inline, sheet or dialog)", ErrInvalidMode, s)
}

// Options configures the picker.
type Options struct {
	MaxYear             int    // 0 means the current year
	DisplayFormat       string // Pattern of the confirmed date and DefaultSelectedDate
	DefaultSelectedDate string
	AllowThroughToday   bool // Hide dates after today
	MonthFormat         string
	Mode                Mode
	Title               string

	// OnDateSelected receives the confirmed date formatted with
	// DisplayFormat.
	OnDateSelected func(date string)

	Clock    func() time.Time
	Location *time.Location // Calendar used to read Clock; time.Local if nil
	Logger   *slog.Logger
}

// DefaultOptions returns the stock settings.
func DefaultOptions() Options {
	return Options{
		DisplayFormat:       daterange.DefaultDisplayFormat,
		DefaultSelectedDate: DefaultSelectedDate,
		AllowThroughToday:   true,
		MonthFormat:         daterange.DefaultMonthFormat,
		Mode:                ModeInline,
	}
}

// withDefaults fills empty fields.
func (o Options) withDefaults() Options {
	if o.DisplayFormat == "" {
		o.DisplayFormat = daterange.DefaultDisplayFormat
	}
	if o.DefaultSelectedDate == "" {
		o.DefaultSelectedDate = DefaultSelectedDate
	}
	if o.MonthFormat == "" {
		o.MonthFormat = daterange.DefaultMonthFormat
	}
	if o.Mode == "" {
		o.Mode = ModeInline
	}
	if o.Clock == nil {
		o.Clock = time.Now
	}
	if o.Location == nil {
		o.Location = time.Local
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	if o.Title == "" && o.Mode == ModeDialog {
		o.Title = "Select date"
	}
	return o
}
