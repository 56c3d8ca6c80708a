package datepicker

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/runger/datewheel/internal/daterange"
	"github.com/runger/datewheel/internal/wheel"
)

// ErrNotReady is returned by Date while a column shows an error.
var ErrNotReady = errors.New("date columns not ready")

// Model is the Bubble Tea model of the date picker.
type Model struct {
	opts     Options
	keys     KeyMap
	help     help.Model
	provider *daterange.Provider
	format   *daterange.DateFormat
	store    *Store
	wheel    wheel.Model
	logger   *slog.Logger

	width  int
	height int
	layout layout

	result    string
	cancelled bool

	unsubscribe func()
}

// New builds the picker and positions the wheels on the default date.
func New(opts Options, cfg wheel.Config) (Model, error) {
	opts = opts.withDefaults()
	opts.Title = cleanTitle(opts.Title)
	if _, err := ParseMode(string(opts.Mode)); err != nil {
		return Model{}, err
	}
	format, err := daterange.Compile(opts.DisplayFormat)
	if err != nil {
		return Model{}, fmt.Errorf("display format: %w", err)
	}
	if _, err := daterange.Compile(opts.MonthFormat); err != nil {
		return Model{}, fmt.Errorf("month format: %w", err)
	}
	fields, err := format.Parse(opts.DefaultSelectedDate)
	if err != nil {
		return Model{}, fmt.Errorf("default date: %w", err)
	}

	logger := opts.Logger
	provider := daterange.New(
		daterange.WithClock(opts.Clock),
		daterange.WithLocation(opts.Location),
		daterange.WithMonthFormat(opts.MonthFormat),
		daterange.WithLogger(logger),
	)
	maxYear := opts.MaxYear
	if maxYear == 0 {
		maxYear = provider.CurrentYear()
	}

	store := NewStore(provider, maxYear, opts.AllowThroughToday, Selection{
		Day:   fields.Day,
		Month: fields.Month,
		Year:  fields.Year,
	})

	onChange := func(day, month, year wheel.Option) {
		sel := Selection{
			Day:   atoiOrZero(day.Label()),
			Month: provider.ParseMonthLabel(month.Label(), opts.MonthFormat),
			Year:  atoiOrZero(year.Label()),
		}
		logger.Debug("selection changed", "day", sel.Day, "month", sel.Month+1, "year", sel.Year)
		store.Set(sel)
	}
	monthMatch := func(o wheel.Option, selected string) bool {
		want, err := strconv.Atoi(selected)
		if err != nil {
			return false
		}
		return provider.ParseMonthLabel(o.Label(), opts.MonthFormat) == want
	}

	picker, err := wheel.New(cfg, onChange, wheel.WithMatcher(wheel.Second, monthMatch))
	if err != nil {
		return Model{}, err
	}

	// The initial emission may already move the store; subscribing afterwards
	// and pushing again catches that.
	push := func(Lists) { pushLists(picker, store) }
	push(store.Lists())
	unsubscribe := store.Subscribe(push)
	push(store.Lists())

	keys := DefaultKeyMap()
	m := Model{
		opts:        opts,
		keys:        keys,
		help:        help.New(),
		provider:    provider,
		format:      format,
		store:       store,
		wheel:       wheel.NewModel(picker, wheel.WithKeyMap(keys.KeyMap), wheel.WithClock(opts.Clock)),
		logger:      logger,
		unsubscribe: unsubscribe,
	}
	m.relayout()
	return m, nil
}

// pushLists hands the store's lists to the wheel, skipping unchanged ones.
// Each list is read right before it is pushed, since pushing one column can
// move the store.
func pushLists(p *wheel.Picker, s *Store) {
	push := func(i wheel.Index, get func(Lists) List, selected func(Selection) int) {
		l := get(s.Lists())
		if l.Err != nil {
			if !sameError(p.Err(i), l.Err) {
				p.SetError(i, l.Err)
			}
			return
		}
		opts := wheel.Options(l.Labels...)
		if p.Err(i) == nil && p.Loaded(i) && p.Options(i).Equal(opts) {
			return
		}
		p.SetOptions(i, opts, strconv.Itoa(selected(s.Selection())))
	}
	push(wheel.First, func(l Lists) List { return l.Days }, func(s Selection) int { return s.Day })
	push(wheel.Second, func(l Lists) List { return l.Months }, func(s Selection) int { return s.Month })
	push(wheel.Third, func(l Lists) List { return l.Years }, func(s Selection) int { return s.Year })
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.wheel.Init()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = max(0, msg.Width-4)
		m.relayout()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Confirm):
			return m.confirm()
		case key.Matches(msg, m.keys.Cancel):
			m.cancelled = true
			return m, tea.Quit
		}

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionRelease && msg.Button == tea.MouseButtonLeft {
			switch m.layout.button(msg.X, msg.Y) {
			case buttonOK:
				return m.confirm()
			case buttonCancel:
				m.cancelled = true
				return m, tea.Quit
			}
		}
	}

	var cmd tea.Cmd
	m.wheel, cmd = m.wheel.Update(msg)
	return m, cmd
}

func (m Model) confirm() (tea.Model, tea.Cmd) {
	date, err := m.Date()
	if err != nil {
		m.logger.Warn("confirm ignored", "error", err)
		return m, nil
	}
	m.result = date
	m.logger.Debug("date confirmed", "date", date)
	if m.opts.OnDateSelected != nil {
		m.opts.OnDateSelected(date)
	}
	return m, tea.Quit
}

// Date formats the current selection with DisplayFormat. A month or day
// past the end of its list is pulled back onto the last entry, so the
// result is always a date the wheels offer.
func (m Model) Date() (string, error) {
	lists := m.store.Lists()
	for _, l := range []List{lists.Days, lists.Months, lists.Years} {
		if l.Err != nil {
			return "", fmt.Errorf("%w: %v", ErrNotReady, l.Err)
		}
	}
	sel := m.store.Selection()
	days := lists.Days.Labels
	if n := len(lists.Months.Labels); sel.Month >= n {
		sel.Month = n - 1
		var err error
		days, err = m.provider.DaysInMonth(sel.Year, sel.Month, m.opts.AllowThroughToday)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrNotReady, err)
		}
	}
	if n := len(days); sel.Day > n {
		sel.Day = n
	}
	return m.format.Format(sel.Fields()), nil
}

// Selection returns the date under the wheels.
func (m Model) Selection() Selection {
	return m.store.Selection()
}

// Result returns the confirmed date, or "" if none was confirmed.
func (m Model) Result() string {
	return m.result
}

// IsCancelled reports whether the user dismissed the picker.
func (m Model) IsCancelled() bool {
	return m.cancelled
}

// Wheel returns the wheel component.
func (m Model) Wheel() wheel.Model {
	return m.wheel
}

// Close detaches the wheel from the store.
func (m Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
}

// MinWidth is the narrowest terminal the current mode fits in.
func (m Model) MinWidth() int {
	ww, _ := m.wheel.Size()
	switch m.opts.Mode {
	case ModeSheet:
		return ww + 2
	case ModeDialog:
		return ww + 4
	default:
		return ww
	}
}

func (m *Model) relayout() {
	_, m.layout = m.compose()
	m.wheel.SetOrigin(m.layout.wheelX, m.layout.wheelY)
}

// View implements tea.Model.
func (m Model) View() string {
	view, _ := m.compose()
	return view
}
