package wheel

import (
	"math"
	"time"
)

const emphasisEpsilon = 1e-3

// tween is an eased scroll from one offset to another.
type tween struct {
	from, to float64
	start    time.Time
	dur      time.Duration
}

func (t tween) at(now time.Time) (offset float64, done bool) {
	elapsed := now.Sub(t.start)
	if t.dur <= 0 || elapsed >= t.dur {
		return t.to, true
	}
	if elapsed < 0 {
		elapsed = 0
	}
	p := float64(elapsed) / float64(t.dur)
	return t.from + (t.to-t.from)*easeOutCubic(p), false
}

func easeOutCubic(p float64) float64 {
	q := 1 - p
	return 1 - q*q*q
}

// column is the state of one wheel. offset is measured in rows from the
// position where item 0 is centered, so item i is centered at
// offset == i*ItemHeight.
type column struct {
	cfg *Config

	options  OptionList
	selected string
	match    MatchFunc
	err      error

	offset float64
	loaded bool
	picked Option

	scroll   *tween    // at most one scroll animation at a time
	emphasis []float64 // smoothed style weight per option
	lastStep time.Time
}

func newColumn(cfg *Config) *column {
	return &column{cfg: cfg, match: LabelMatch}
}

func (c *column) itemHeight() float64 {
	return float64(c.cfg.ItemHeight)
}

func (c *column) maxOffset() float64 {
	if len(c.options) == 0 {
		return 0
	}
	return float64(len(c.options)-1) * c.itemHeight()
}

// nearest returns the item index closest to the center and whether it is a
// real item of the current list.
func (c *column) nearest() (int, bool) {
	idx := int(math.Floor(c.offset/c.itemHeight() + 0.5))
	return idx, idx >= 0 && idx < len(c.options)
}

func (c *column) clampIndex(idx int) int {
	if idx < 0 {
		return 0
	}
	if n := len(c.options); idx >= n {
		return n - 1
	}
	return idx
}

// setOptions replaces the list. The first non-empty list positions the
// column on the selected value without animation; later lists leave the
// offset alone unless ClampOnShrink is set.
func (c *column) setOptions(options OptionList, selected string) {
	c.options = options
	c.selected = selected
	c.resizeEmphasis()

	if len(options) == 0 {
		return
	}

	if !c.loaded {
		idx := options.Index(func(o Option) bool { return c.match(o, selected) })
		if idx < 0 {
			idx = 0
		}
		c.scroll = nil
		c.offset = float64(idx) * c.itemHeight()
		c.loaded = true
		c.snapEmphasis()
		c.updatePicked()
		return
	}

	if c.cfg.ClampOnShrink && c.offset > c.maxOffset() {
		c.scroll = nil
		c.offset = c.maxOffset()
	}
	c.updatePicked()
}

// updatePicked re-reads the centered item. Past either end of the list
// nothing is centered and the previous pick stays.
func (c *column) updatePicked() {
	if idx, ok := c.nearest(); ok {
		c.picked = c.options[idx]
	}
}

// targetIndex is where the column is heading: the end of the running
// animation, or the nearest item.
func (c *column) targetIndex() int {
	if c.scroll != nil {
		return c.clampIndex(int(math.Floor(c.scroll.to/c.itemHeight() + 0.5)))
	}
	idx, _ := c.nearest()
	return c.clampIndex(idx)
}

// animateTo replaces any running animation with a scroll to idx starting
// from the current offset.
func (c *column) animateTo(idx int, now time.Time) {
	if len(c.options) == 0 {
		return
	}
	c.touch(now)
	to := float64(c.clampIndex(idx)) * c.itemHeight()
	if to == c.offset {
		c.scroll = nil
		return
	}
	if c.cfg.ScrollDuration <= 0 {
		c.scroll = nil
		c.offset = to
		c.updatePicked()
		return
	}
	c.scroll = &tween{from: c.offset, to: to, start: now, dur: c.cfg.ScrollDuration}
}

// drag moves the column by delta rows, cancelling any animation.
func (c *column) drag(delta float64, now time.Time) {
	if len(c.options) == 0 {
		return
	}
	c.touch(now)
	c.scroll = nil
	c.offset = math.Max(0, math.Min(c.maxOffset(), c.offset+delta))
	c.updatePicked()
}

// settle snaps to the nearest whole item inside the list.
func (c *column) settle(now time.Time) {
	idx, _ := c.nearest()
	c.animateTo(idx, now)
}

// touch starts the emphasis clock when the column leaves rest, so the first
// frame does not see the whole idle period as elapsed time.
func (c *column) touch(now time.Time) {
	if !c.animating() {
		c.lastStep = now
	}
}

// advance moves the scroll animation and emphasis to now.
func (c *column) advance(now time.Time) {
	if c.scroll != nil {
		off, done := c.scroll.at(now)
		c.offset = off
		if done {
			c.scroll = nil
		}
		c.updatePicked()
	}

	dt := now.Sub(c.lastStep)
	c.lastStep = now
	step := 1.0
	if c.cfg.EmphasisDuration > 0 {
		step = float64(dt) / float64(c.cfg.EmphasisDuration)
	}
	for i := range c.emphasis {
		target := c.emphasisTarget(i)
		cur := c.emphasis[i]
		switch {
		case cur < target:
			c.emphasis[i] = math.Min(target, cur+step)
		case cur > target:
			c.emphasis[i] = math.Max(target, cur-step)
		}
	}
}

// emphasisTarget falls linearly from 1 at the center to 0 one item away.
func (c *column) emphasisTarget(idx int) float64 {
	dist := math.Abs(float64(idx)*c.itemHeight() - c.offset)
	return math.Max(0, 1-dist/c.itemHeight())
}

func (c *column) emphasisAt(idx int) float64 {
	if idx < 0 || idx >= len(c.emphasis) {
		return 0
	}
	return c.emphasis[idx]
}

func (c *column) resizeEmphasis() {
	n := len(c.options)
	if n <= len(c.emphasis) {
		c.emphasis = c.emphasis[:n]
		return
	}
	for i := len(c.emphasis); i < n; i++ {
		c.emphasis = append(c.emphasis, c.emphasisTarget(i))
	}
}

func (c *column) snapEmphasis() {
	for i := range c.emphasis {
		c.emphasis[i] = c.emphasisTarget(i)
	}
}

func (c *column) animating() bool {
	if c.scroll != nil {
		return true
	}
	for i, e := range c.emphasis {
		if math.Abs(e-c.emphasisTarget(i)) > emphasisEpsilon {
			return true
		}
	}
	return false
}
