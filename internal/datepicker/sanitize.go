package datepicker

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"
)

// ansiRE matches CSI, OSC (ended by ST or BEL) and charset escape sequences.
var ansiRE = regexp.MustCompile(`\x1b(?:` +
	`\[[0-9;?]*[A-Za-z]` +
	`|` +
	`\].*?(?:\x1b\\|\x07)` +
	`|` +
	`[()][A-B0-2]` +
	`)`)

// cleanTitle makes caller-supplied text safe to draw on a single line.
// Escape sequences and control characters are dropped, tabs and newlines
// become spaces, and invalid UTF-8 becomes U+FFFD.
func cleanTitle(s string) string {
	s = strings.ToValidUTF8(s, "�")
	s = ansiRE.ReplaceAllString(s, "")
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\t' || r == '\n' || r == '\r':
			return ' '
		case unicode.IsControl(r):
			return -1
		}
		return r
	}, s)
}

// fitTitle truncates s to width display columns.
func fitTitle(s string, width int) string {
	return runewidth.Truncate(s, width, "…")
}
