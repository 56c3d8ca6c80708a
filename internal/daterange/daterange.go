// Package daterange computes the day, month and year options offered by the
// date wheels, optionally capped at today's date.
package daterange

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"
)

// FloorYear is the first year ever offered.
const FloorYear = 1970

// DefaultMonthFormat renders months by their full name ("January").
const DefaultMonthFormat = "MMMM"

var (
	// ErrInvalidArgument reports a malformed year, month or day.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidRange reports a maximum year below FloorYear.
	ErrInvalidRange = errors.New("invalid range")

	// ErrParseFallback reports a month label that could not be parsed.
	// Callers of ParseMonthLabel get index 0 instead.
	ErrParseFallback = errors.New("unrecognized month label")
)

// Provider answers range questions against a clock. It holds no mutable
// state; every call reads the clock again.
type Provider struct {
	now         func() time.Time
	loc         *time.Location
	monthFormat string
	logger      *slog.Logger
}

// Option configures a Provider.
type Option func(*Provider)

// WithClock replaces time.Now as the source of "today".
func WithClock(now func() time.Time) Option {
	return func(p *Provider) {
		if now != nil {
			p.now = now
		}
	}
}

// WithLocation sets the calendar location used to read the clock.
func WithLocation(loc *time.Location) Option {
	return func(p *Provider) {
		if loc != nil {
			p.loc = loc
		}
	}
}

// WithMonthFormat sets the display pattern for month labels (e.g. "MMMM",
// "MMM", "MM").
func WithMonthFormat(format string) Option {
	return func(p *Provider) {
		if format != "" {
			p.monthFormat = format
		}
	}
}

// WithLogger sets the logger used for parse fallback warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Provider) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// New returns a Provider reading the local wall clock unless overridden.
func New(opts ...Option) *Provider {
	p := &Provider{
		now:         time.Now,
		loc:         time.Local,
		monthFormat: DefaultMonthFormat,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// MonthFormat returns the pattern used for month labels.
func (p *Provider) MonthFormat() string {
	return p.monthFormat
}

func (p *Provider) today() time.Time {
	return p.now().In(p.loc)
}

// CurrentYear returns today's year.
func (p *Provider) CurrentYear() int {
	return p.today().Year()
}

// CurrentMonthIndex returns today's month, 0-based.
func (p *Provider) CurrentMonthIndex() int {
	return int(p.today().Month()) - 1
}

// CurrentDayOfMonth returns today's day of month.
func (p *Provider) CurrentDayOfMonth() int {
	return p.today().Day()
}

// MonthsInYear returns the month labels of year. When allowThroughToday is
// set and year is the current year, months after the current one are left
// out.
func (p *Provider) MonthsInYear(year int, allowThroughToday bool) ([]string, error) {
	if year < 1 {
		return nil, fmt.Errorf("year %d: %w", year, ErrInvalidArgument)
	}
	f, err := Compile(p.monthFormat)
	if err != nil {
		return nil, err
	}

	today := p.today()
	n := 12
	if allowThroughToday && year == today.Year() {
		n = int(today.Month())
	}

	months := make([]string, 0, n)
	for i := 0; i < n; i++ {
		months = append(months, f.Format(Fields{Day: 1, Month: i, Year: year}))
	}
	return months, nil
}

// YearsUpTo returns "1970" through the effective maximum year. A maxYear
// equal to the current year is re-read from the clock, so a long-lived
// caller follows the calendar instead of a frozen value.
func (p *Provider) YearsUpTo(maxYear int) ([]string, error) {
	if maxYear < FloorYear {
		return nil, fmt.Errorf("max year %d is before %d: %w", maxYear, FloorYear, ErrInvalidRange)
	}

	ceiling := maxYear
	if maxYear == p.CurrentYear() {
		ceiling = p.CurrentYear()
	}

	years := make([]string, 0, ceiling-FloorYear+1)
	for y := FloorYear; y <= ceiling; y++ {
		years = append(years, strconv.Itoa(y))
	}
	return years, nil
}

// DaysInMonth returns "1" through the last selectable day of month (0-based)
// in year. When allowThroughToday is set and the pair is the current month,
// the list stops at today.
func (p *Provider) DaysInMonth(year, month int, allowThroughToday bool) ([]string, error) {
	if year < 1 {
		return nil, fmt.Errorf("year %d: %w", year, ErrInvalidArgument)
	}
	if month < 0 || month > 11 {
		return nil, fmt.Errorf("month index %d: %w", month, ErrInvalidArgument)
	}

	maxDay := DaysIn(year, month)
	today := p.today()
	if allowThroughToday && year == today.Year() && month == int(today.Month())-1 {
		maxDay = today.Day()
	}

	days := make([]string, 0, maxDay)
	for d := 1; d <= maxDay; d++ {
		days = append(days, strconv.Itoa(d))
	}
	return days, nil
}

// ParseMonthLabel returns the 0-based month of label, read with
// displayFormat. Unparseable labels yield 0 and a warning.
func (p *Provider) ParseMonthLabel(label, displayFormat string) int {
	m, err := ParseMonth(label, displayFormat)
	if err != nil {
		p.logger.Warn("month label fallback to January",
			"label", label,
			"format", displayFormat,
			"error", err,
		)
		return 0
	}
	return m
}

// ParseMonth is the error-returning form of ParseMonthLabel.
func ParseMonth(label, displayFormat string) (int, error) {
	f, err := Compile(displayFormat)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrParseFallback, err)
	}
	if !f.has(fieldMonth) {
		return 0, fmt.Errorf("%w: pattern %q has no month field", ErrParseFallback, displayFormat)
	}
	fields, err := f.parse(label)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrParseFallback, label, err)
	}
	if fields.Month < 0 || fields.Month > 11 {
		return 0, fmt.Errorf("%w: %q is not a month", ErrParseFallback, label)
	}
	return fields.Month, nil
}

// DaysIn returns the Gregorian length of month (0-based) in year.
func DaysIn(year, month int) int {
	// Day 0 of the following month is the last day of this one.
	return time.Date(year, time.Month(month+2), 0, 0, 0, 0, 0, time.UTC).Day()
}
