package wheel

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

const (
	borderSize  = 1
	sidePadding = 1
	ellipsis    = "…"
	emptyMarker = "–"
)

var errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))

// Size returns the rendered width and height of the picker.
func (p *Picker) Size() (width, height int) {
	width = 2*borderSize + 2*sidePadding + NumColumns*p.cfg.ColumnWidth + (NumColumns-1)*p.cfg.ColumnGap
	height = 2*borderSize + p.cfg.viewportRows()
	return width, height
}

// rowItem maps viewport row r to the item shown there. label is true on the
// row that carries the item's text.
func (c *column) rowItem(r int) (idx int, label bool) {
	ih := c.cfg.ItemHeight
	rows := c.cfg.viewportRows()
	content := int(math.Round(c.offset)) + ih/2 + (r - rows/2)
	idx = floorDiv(content, ih)
	return idx, content-idx*ih == ih/2
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// inBand reports whether viewport row r lies in the selected band.
func (c Config) inBand(r int) bool {
	top := c.viewportRows()/2 - c.ItemHeight/2
	return r >= top && r < top+c.ItemHeight
}

func (c Config) rowBackground(band bool) string {
	if band && c.SelectedRowBackground != "" {
		return c.SelectedRowBackground
	}
	return c.BackgroundColor
}

func withBackground(s lipgloss.Style, color string) lipgloss.Style {
	if color == "" {
		return s
	}
	return s.Background(lipgloss.Color(color))
}

// fitCenter truncates s to width cells and centers it.
func fitCenter(s string, width int) string {
	fit := runewidth.Truncate(s, width, ellipsis)
	w := runewidth.StringWidth(fit)
	left := (width - w) / 2
	return strings.Repeat(" ", left) + fit + strings.Repeat(" ", width-w-left)
}

// render draws the picker. focus is the column whose centered label is
// underlined; pass -1 for none.
func (p *Picker) render(focus Index) string {
	cfg := p.cfg
	rows := cfg.viewportRows()

	errLines := make([][]string, NumColumns)
	for i, c := range p.cols {
		if c.err != nil {
			errLines[i] = strings.Split(runewidth.Wrap(c.err.Error(), cfg.ColumnWidth), "\n")
		}
	}

	lines := make([]string, rows)
	for r := 0; r < rows; r++ {
		band := cfg.inBand(r)
		bg := cfg.rowBackground(band)
		var b strings.Builder

		b.WriteString(p.sideCell(band, true))
		for i, c := range p.cols {
			if i > 0 {
				b.WriteString(withBackground(lipgloss.NewStyle(), bg).Render(strings.Repeat(" ", cfg.ColumnGap)))
			}
			switch {
			case c.err != nil:
				b.WriteString(errorCell(errLines[i], r, rows, cfg.ColumnWidth, bg))
			case len(c.options) == 0:
				text := ""
				if r == rows/2 {
					text = emptyMarker
				}
				b.WriteString(withBackground(lipgloss.NewStyle().Faint(true), bg).Render(fitCenter(text, cfg.ColumnWidth)))
			default:
				b.WriteString(p.itemCell(c, r, bg, Index(i) == focus))
			}
		}
		b.WriteString(p.sideCell(band, false))
		lines[r] = b.String()
	}

	border := lipgloss.NormalBorder()
	if cfg.ContainerCornerRadius > 0 {
		border = lipgloss.RoundedBorder()
	}
	container := lipgloss.NewStyle().
		Border(border).
		BorderForeground(lipgloss.Color(cfg.UnselectedStyle.Color))
	if cfg.BackgroundColor != "" {
		container = container.BorderBackground(lipgloss.Color(cfg.BackgroundColor))
	}
	return container.Render(strings.Join(lines, "\n"))
}

func (p *Picker) itemCell(c *column, r int, bg string, focused bool) string {
	cfg := p.cfg
	idx, label := c.rowItem(r)
	if !label || idx < 0 || idx >= len(c.options) {
		return withBackground(lipgloss.NewStyle(), bg).Render(strings.Repeat(" ", cfg.ColumnWidth))
	}

	e := c.emphasisAt(idx)
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(blendColor(cfg.UnselectedStyle.Color, cfg.SelectedStyle.Color, e)))
	if e >= 0.5 {
		style = style.Bold(cfg.SelectedStyle.Bold)
		if focused {
			style = style.Underline(true)
		}
	} else {
		style = style.Bold(cfg.UnselectedStyle.Bold)
	}
	return withBackground(style, bg).Render(fitCenter(c.options[idx].label, cfg.ColumnWidth))
}

// sideCell is the padding cell at either edge. In the band it carries a
// rounded cap when the selected row has a corner radius.
func (p *Picker) sideCell(band, left bool) string {
	cfg := p.cfg
	if !band || cfg.SelectedRowBackground == "" {
		return withBackground(lipgloss.NewStyle(), cfg.BackgroundColor).Render(" ")
	}
	if cfg.SelectedRowCornerRadius == 0 {
		return withBackground(lipgloss.NewStyle(), cfg.SelectedRowBackground).Render(" ")
	}
	glyph := "◗"
	if left {
		glyph = "◖"
	}
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(cfg.SelectedRowBackground))
	return withBackground(style, cfg.BackgroundColor).Render(glyph)
}

// errorCell lays the wrapped message out around the middle row.
func errorCell(lines []string, r, rows, width int, bg string) string {
	start := rows/2 - len(lines)/2
	if start < 0 {
		start = 0
	}
	text := ""
	if i := r - start; i >= 0 && i < len(lines) {
		text = lines[i]
	}
	return withBackground(errorStyle, bg).Render(fitCenter(text, width))
}
