package wheel

import (
	"fmt"
	"time"
)

// Index identifies a column, left to right.
type Index int

const (
	First Index = iota
	Second
	Third
)

// NumColumns is the number of columns in a Picker.
const NumColumns = 3

func (i Index) valid() bool {
	return i >= First && i <= Third
}

// SelectionFunc receives the picked option of every column.
type SelectionFunc func(first, second, third Option)

// Picker is the headless state of the three wheels. All methods are meant to
// be called from a single goroutine (the Bubble Tea update loop).
type Picker struct {
	cfg      Config
	cols     [NumColumns]*column
	onChange SelectionFunc

	emitted bool
	last    [NumColumns]Option
}

// PickerOption configures a Picker.
type PickerOption func(*Picker)

// WithMatcher sets how column i recognizes its selected value. The default
// is LabelMatch.
func WithMatcher(i Index, match MatchFunc) PickerOption {
	return func(p *Picker) {
		if i.valid() && match != nil {
			p.cols[i].match = match
		}
	}
}

// New returns a picker with three unloaded columns.
func New(cfg Config, onChange SelectionFunc, opts ...PickerOption) (*Picker, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	p := &Picker{cfg: cfg, onChange: onChange}
	for i := range p.cols {
		p.cols[i] = newColumn(&p.cfg)
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Config returns the picker configuration.
func (p *Picker) Config() Config {
	return p.cfg
}

// SetOptions hands column i a new list together with the externally
// selected value. Only the first non-empty list uses selected to position
// the column.
func (p *Picker) SetOptions(i Index, options OptionList, selected string) {
	c := p.col(i)
	c.err = nil
	c.setOptions(options, selected)
	p.sync()
}

// SetError puts column i into an error state. The column keeps its
// position; the error is cleared by the next SetOptions.
func (p *Picker) SetError(i Index, err error) {
	c := p.col(i)
	c.err = err
	c.setOptions(nil, c.selected)
	p.sync()
}

// Err returns the error of column i, if any.
func (p *Picker) Err(i Index) error {
	return p.col(i).err
}

// Options returns the current list of column i.
func (p *Picker) Options(i Index) OptionList {
	return p.col(i).options
}

// Loaded reports whether column i completed its initial positioning.
func (p *Picker) Loaded(i Index) bool {
	return p.col(i).loaded
}

// AllLoaded reports whether every column is loaded.
func (p *Picker) AllLoaded() bool {
	for _, c := range p.cols {
		if !c.loaded {
			return false
		}
	}
	return true
}

// Picked returns the picked option of column i. ok is false until the
// column is loaded.
func (p *Picker) Picked(i Index) (o Option, ok bool) {
	c := p.col(i)
	return c.picked, c.loaded
}

// PickedIndex returns the index of the centered item, or -1 when no item of
// the current list is centered.
func (p *Picker) PickedIndex(i Index) int {
	idx, ok := p.col(i).nearest()
	if !ok {
		return -1
	}
	return idx
}

// Offset returns the scroll offset of column i in rows.
func (p *Picker) Offset(i Index) float64 {
	return p.col(i).offset
}

// Emphasis returns the style weight (0 unselected, 1 selected) of item idx
// in column i.
func (p *Picker) Emphasis(i Index, idx int) float64 {
	return p.col(i).emphasisAt(idx)
}

// AnimateTo smoothly centers item idx of column i. A running animation of
// that column is replaced.
func (p *Picker) AnimateTo(i Index, idx int, now time.Time) {
	p.col(i).animateTo(idx, now)
	p.sync()
}

// Move scrolls column i by delta items from where it is heading.
func (p *Picker) Move(i Index, delta int, now time.Time) {
	c := p.col(i)
	if len(c.options) == 0 {
		return
	}
	c.animateTo(c.targetIndex()+delta, now)
	p.sync()
}

// Drag shifts column i by delta rows, following a pointer.
func (p *Picker) Drag(i Index, delta float64, now time.Time) {
	p.col(i).drag(delta, now)
	p.sync()
}

// Release ends a drag by settling column i on a whole item.
func (p *Picker) Release(i Index, now time.Time) {
	p.col(i).settle(now)
	p.sync()
}

// Advance steps every animation to now.
func (p *Picker) Advance(now time.Time) {
	for _, c := range p.cols {
		c.advance(now)
	}
	p.sync()
}

// Animating reports whether any column still has motion or a style
// transition pending.
func (p *Picker) Animating() bool {
	for _, c := range p.cols {
		if c.animating() {
			return true
		}
	}
	return false
}

// sync raises the selection event when every column is loaded and the
// picked triple differs from the last one reported.
func (p *Picker) sync() {
	if !p.AllLoaded() {
		return
	}
	cur := [NumColumns]Option{p.cols[0].picked, p.cols[1].picked, p.cols[2].picked}
	if p.emitted && cur == p.last {
		return
	}
	p.emitted = true
	p.last = cur
	if p.onChange != nil {
		p.onChange(cur[0], cur[1], cur[2])
	}
}

func (p *Picker) col(i Index) *column {
	if !i.valid() {
		panic(fmt.Sprintf("wheel: column index %d out of range", i))
	}
	return p.cols[i]
}
