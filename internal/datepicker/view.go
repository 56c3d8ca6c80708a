package datepicker

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	handleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	frameColor  = lipgloss.Color("240")

	sheetStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), true, true, false, true).
			BorderForeground(frameColor)
	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(frameColor).
			Padding(0, 1)

	okStyle = lipgloss.NewStyle().
		Bold(true).
		Padding(0, 2).
		Foreground(lipgloss.Color("230")).
		Background(lipgloss.Color("62"))
	cancelStyle = lipgloss.NewStyle().
			Padding(0, 2).
			Foreground(lipgloss.Color("62"))
)

const (
	sheetHandle = "───"
	buttonGap   = 2
)

type button int

const (
	buttonNone button = iota
	buttonOK
	buttonCancel
)

// layout records where the interactive parts landed on screen.
type layout struct {
	wheelX, wheelY int

	buttonsY           int // -1 when there are no buttons
	cancelX0, cancelX1 int
	okX0, okX1         int
}

func (l layout) button(x, y int) button {
	if l.buttonsY < 0 || y != l.buttonsY {
		return buttonNone
	}
	switch {
	case x >= l.okX0 && x < l.okX1:
		return buttonOK
	case x >= l.cancelX0 && x < l.cancelX1:
		return buttonCancel
	}
	return buttonNone
}

// compose renders the current mode and reports its layout.
func (m Model) compose() (string, layout) {
	switch m.opts.Mode {
	case ModeSheet:
		return m.composeSheet()
	case ModeDialog:
		return m.composeDialog()
	default:
		return m.composeInline()
	}
}

func (m Model) composeInline() (string, layout) {
	var parts []string
	l := layout{buttonsY: -1}
	if m.opts.Title != "" {
		ww, _ := m.wheel.Size()
		parts = append(parts, titleStyle.Render(fitTitle(m.opts.Title, ww)))
		l.wheelY = 1
	}
	parts = append(parts, m.wheel.View(), m.help.View(m.keys))
	return strings.Join(parts, "\n"), l
}

// composeSheet draws a full-width panel with an open bottom, anchored to
// the bottom edge.
func (m Model) composeSheet() (string, layout) {
	ww, _ := m.wheel.Size()
	inner := max(m.width-2, ww)
	center := func(s string) string {
		return lipgloss.PlaceHorizontal(inner, lipgloss.Center, s)
	}

	body := []string{center(handleStyle.Render(sheetHandle))}
	if m.opts.Title != "" {
		body = append(body, center(titleStyle.Render(fitTitle(m.opts.Title, inner))))
	}
	headerRows := len(body)
	body = append(body, center(m.wheel.View()), center(m.help.View(m.keys)))

	panel := sheetStyle.Render(strings.Join(body, "\n"))
	top := max(0, m.height-lipgloss.Height(panel))

	l := layout{
		wheelX:   1 + (inner-ww)/2,
		wheelY:   top + 1 + headerRows,
		buttonsY: -1,
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Bottom, panel), l
}

// composeDialog draws a centered box with a title and OK/Cancel buttons.
func (m Model) composeDialog() (string, layout) {
	ww, _ := m.wheel.Size()
	cancel := cancelStyle.Render("Cancel")
	ok := okStyle.Render("OK")
	buttons := cancel + strings.Repeat(" ", buttonGap) + ok
	title := titleStyle.Render(fitTitle(m.opts.Title, ww))

	inner := max(ww, lipgloss.Width(buttons), lipgloss.Width(title))
	center := func(s string) string {
		return lipgloss.PlaceHorizontal(inner, lipgloss.Center, s)
	}

	body := []string{center(title), ""}
	headerRows := len(body)
	body = append(body, center(m.wheel.View()), "")
	buttonsRow := lipgloss.Height(strings.Join(body, "\n"))
	body = append(body, center(buttons))

	box := dialogStyle.Render(strings.Join(body, "\n"))
	left := max(0, (m.width-lipgloss.Width(box))/2)
	top := max(0, (m.height-lipgloss.Height(box))/2)

	// Border plus padding on the left, border on top.
	x0, y0 := left+2, top+1
	bx := x0 + (inner-lipgloss.Width(buttons))/2
	l := layout{
		wheelX:   x0 + (inner-ww)/2,
		wheelY:   y0 + headerRows,
		buttonsY: y0 + buttonsRow,
		cancelX0: bx,
		cancelX1: bx + lipgloss.Width(cancel),
		okX0:     bx + lipgloss.Width(cancel) + buttonGap,
		okX1:     bx + lipgloss.Width(cancel) + buttonGap + lipgloss.Width(ok),
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box), l
}
