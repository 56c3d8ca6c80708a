package wheel

import (
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"
)

// parseColor reads "#rgb", "#rrggbb" or an ANSI index.
func parseColor(s string) (colorful.Color, bool) {
	if strings.HasPrefix(s, "#") {
		c, err := colorful.Hex(s)
		return c, err == nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n > 255 {
		return colorful.Color{}, false
	}
	if n < 16 {
		return termenv.ConvertToRGB(termenv.ANSIColor(n)), true
	}
	return termenv.ConvertToRGB(termenv.ANSI256Color(n)), true
}

// blendColor interpolates from -> to in Lab space. Colors that cannot be
// parsed switch over at the midpoint instead.
func blendColor(from, to string, t float64) string {
	switch {
	case t <= 0 || from == to:
		return from
	case t >= 1:
		return to
	}
	a, okA := parseColor(from)
	b, okB := parseColor(to)
	if !okA || !okB {
		if t < 0.5 {
			return from
		}
		return to
	}
	return a.BlendLab(b, t).Clamped().Hex()
}
