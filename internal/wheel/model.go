package wheel

import (
	"math"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// frameInterval paces the animation loop (~60 fps).
const frameInterval = time.Second / 60

// frameMsg advances animations. Only the frame matching the current
// generation is accepted.
type frameMsg struct {
	id uint64
}

// dragState tracks a left-button gesture from press to release.
type dragState struct {
	active bool
	col    Index
	row    int // viewport row of the press
	lastY  int
	moved  bool
}

// Model is the Bubble Tea component around a Picker. It handles keys for
// the focused column, mouse wheel, drag and tap, and runs the frame loop
// while anything is animating.
type Model struct {
	picker *Picker
	keys   KeyMap
	focus  Index

	// Screen position of the top-left corner of View, used for hit tests.
	originX int
	originY int

	drag dragState

	ticking bool
	frameID uint64

	now func() time.Time
}

// ModelOption configures a Model.
type ModelOption func(*Model)

// WithKeyMap replaces the default bindings.
func WithKeyMap(k KeyMap) ModelOption {
	return func(m *Model) { m.keys = k }
}

// WithClock sets the time source for animations.
func WithClock(now func() time.Time) ModelOption {
	return func(m *Model) {
		if now != nil {
			m.now = now
		}
	}
}

// WithOrigin sets where View is drawn on screen.
func WithOrigin(x, y int) ModelOption {
	return func(m *Model) { m.originX, m.originY = x, y }
}

// NewModel wraps p.
func NewModel(p *Picker, opts ...ModelOption) Model {
	m := Model{
		picker: p,
		keys:   DefaultKeyMap(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Picker returns the underlying picker.
func (m Model) Picker() *Picker { return m.picker }

// KeyMap returns the active bindings.
func (m Model) KeyMap() KeyMap { return m.keys }

// Focus returns the column receiving key input.
func (m Model) Focus() Index { return m.focus }

// SetFocus moves key input to column i.
func (m *Model) SetFocus(i Index) {
	if i.valid() {
		m.focus = i
	}
}

// SetOrigin records where View is drawn on screen.
func (m *Model) SetOrigin(x, y int) {
	m.originX, m.originY = x, y
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles input and animation frames.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		if msg.id != m.frameID {
			return m, nil
		}
		m.ticking = false
		m.picker.Advance(m.now())
	case tea.KeyMsg:
		m.handleKey(msg)
	case tea.MouseMsg:
		m.handleMouse(msg)
	}
	return m, m.ensureTicking()
}

// View renders the three columns.
func (m Model) View() string {
	return m.picker.render(m.focus)
}

// Size returns the rendered width and height.
func (m Model) Size() (width, height int) {
	return m.picker.Size()
}

func (m *Model) handleKey(msg tea.KeyMsg) {
	now := m.now()
	page := m.picker.cfg.VisibleItemCount
	switch {
	case key.Matches(msg, m.keys.Up):
		m.picker.Move(m.focus, -1, now)
	case key.Matches(msg, m.keys.Down):
		m.picker.Move(m.focus, 1, now)
	case key.Matches(msg, m.keys.PageUp):
		m.picker.Move(m.focus, -page, now)
	case key.Matches(msg, m.keys.PageDown):
		m.picker.Move(m.focus, page, now)
	case key.Matches(msg, m.keys.Top):
		m.picker.AnimateTo(m.focus, 0, now)
	case key.Matches(msg, m.keys.Bottom):
		m.picker.AnimateTo(m.focus, len(m.picker.Options(m.focus))-1, now)
	case key.Matches(msg, m.keys.Prev):
		m.focus = (m.focus + NumColumns - 1) % NumColumns
	case key.Matches(msg, m.keys.Next):
		m.focus = (m.focus + 1) % NumColumns
	}
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	now := m.now()
	col, row, inside := m.hit(msg.X, msg.Y)

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			if inside {
				m.picker.Move(col, -1, now)
			}
		case tea.MouseButtonWheelDown:
			if inside {
				m.picker.Move(col, 1, now)
			}
		case tea.MouseButtonLeft:
			if inside {
				m.focus = col
				m.drag = dragState{active: true, col: col, row: row, lastY: msg.Y}
			}
		}

	case tea.MouseActionMotion:
		if !m.drag.active {
			return
		}
		if dy := msg.Y - m.drag.lastY; dy != 0 {
			m.drag.moved = true
			m.drag.lastY = msg.Y
			// Content follows the pointer: dragging down reveals earlier items.
			m.picker.Drag(m.drag.col, float64(-dy), now)
		}

	case tea.MouseActionRelease:
		if !m.drag.active {
			return
		}
		d := m.drag
		m.drag = dragState{}
		if d.moved {
			m.picker.Release(d.col, now)
			return
		}
		m.tap(d.col, d.row, now)
	}
}

// tap centers the item under viewport row r when it is not centered yet.
func (m *Model) tap(i Index, r int, now time.Time) {
	c := m.picker.col(i)
	idx, _ := c.rowItem(r)
	if idx < 0 || idx >= len(c.options) {
		return
	}
	if centered, ok := c.nearest(); ok && centered == idx && c.scroll == nil &&
		math.Abs(c.offset-float64(idx)*c.itemHeight()) < emphasisEpsilon {
		return
	}
	m.picker.AnimateTo(i, idx, now)
}

// hit maps screen coordinates to a column and viewport row.
func (m Model) hit(x, y int) (col Index, row int, ok bool) {
	cfg := m.picker.cfg
	lx := x - m.originX - borderSize - sidePadding
	ly := y - m.originY - borderSize
	if lx < 0 || ly < 0 || ly >= cfg.viewportRows() {
		return 0, 0, false
	}
	stride := cfg.ColumnWidth + cfg.ColumnGap
	ci := lx / stride
	if ci >= NumColumns || lx%stride >= cfg.ColumnWidth {
		return 0, 0, false
	}
	return Index(ci), ly, true
}

// ensureTicking schedules the next frame when something is animating and no
// frame is pending.
func (m *Model) ensureTicking() tea.Cmd {
	if m.ticking || !m.picker.Animating() {
		return nil
	}
	m.ticking = true
	m.frameID++
	id := m.frameID
	return tea.Tick(frameInterval, func(time.Time) tea.Msg {
		return frameMsg{id: id}
	})
}
