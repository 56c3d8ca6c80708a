package daterange

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// DefaultDisplayFormat is the pattern used for the picked date.
const DefaultDisplayFormat = "dd/MM/yyyy"

// Fields is a calendar date with a 0-based month.
type Fields struct {
	Day   int
	Month int
	Year  int
}

// Time returns the date at midnight in loc.
func (f Fields) Time(loc *time.Location) time.Time {
	return time.Date(f.Year, time.Month(f.Month+1), f.Day, 0, 0, 0, 0, loc)
}

type fieldKind int

const (
	fieldLiteral fieldKind = iota
	fieldDay
	fieldMonth
	fieldYear
	fieldWeekday
)

type token struct {
	kind  fieldKind
	width int    // repeat count of the pattern letter
	text  string // literal text
}

func (t token) numeric() bool {
	switch t.kind {
	case fieldDay, fieldYear:
		return true
	case fieldMonth:
		return t.width <= 2
	default:
		return false
	}
}

// DateFormat is a compiled display pattern such as "dd/MM/yyyy" or "MMMM".
//
// Letters: d (day), M (month: M/MM numeric, MMM short name, MMMM full name),
// y (year: yy two digits, otherwise full), E (weekday: EEE short, EEEE full).
// Text between single quotes is literal; '' is a quote.
type DateFormat struct {
	pattern string
	tokens  []token
}

// Compile parses a display pattern.
func Compile(pattern string) (*DateFormat, error) {
	if pattern == "" {
		return nil, fmt.Errorf("empty date pattern: %w", ErrInvalidArgument)
	}

	var tokens []token
	appendLiteral := func(s string) {
		if n := len(tokens); n > 0 && tokens[n-1].kind == fieldLiteral {
			tokens[n-1].text += s
			return
		}
		tokens = append(tokens, token{kind: fieldLiteral, text: s})
	}

	runes := []rune(pattern)
	for i := 0; i < len(runes); {
		r := runes[i]

		if r == '\'' {
			if i+1 < len(runes) && runes[i+1] == '\'' {
				appendLiteral("'")
				i += 2
				continue
			}
			var lit strings.Builder
			j, closed := i+1, false
			for j < len(runes) {
				if runes[j] == '\'' {
					if j+1 < len(runes) && runes[j+1] == '\'' {
						lit.WriteRune('\'')
						j += 2
						continue
					}
					closed = true
					break
				}
				lit.WriteRune(runes[j])
				j++
			}
			if !closed {
				return nil, fmt.Errorf("unterminated quote in %q: %w", pattern, ErrInvalidArgument)
			}
			appendLiteral(lit.String())
			i = j + 1
			continue
		}

		if !isPatternLetter(r) {
			appendLiteral(string(r))
			i++
			continue
		}

		n := 1
		for i+n < len(runes) && runes[i+n] == r {
			n++
		}
		var kind fieldKind
		switch r {
		case 'd':
			kind = fieldDay
		case 'M':
			kind = fieldMonth
		case 'y':
			kind = fieldYear
		case 'E':
			kind = fieldWeekday
		default:
			return nil, fmt.Errorf("unsupported pattern letter %q in %q: %w", r, pattern, ErrInvalidArgument)
		}
		tokens = append(tokens, token{kind: kind, width: n})
		i += n
	}

	return &DateFormat{pattern: pattern, tokens: tokens}, nil
}

// MustCompile is Compile for patterns known to be valid.
func MustCompile(pattern string) *DateFormat {
	f, err := Compile(pattern)
	if err != nil {
		panic(err)
	}
	return f
}

func isPatternLetter(r rune) bool {
	return r < unicode.MaxASCII && unicode.IsLetter(r)
}

// Pattern returns the source pattern.
func (f *DateFormat) Pattern() string {
	return f.pattern
}

func (f *DateFormat) has(kind fieldKind) bool {
	for _, t := range f.tokens {
		if t.kind == kind {
			return true
		}
	}
	return false
}

// Format renders fields.
func (f *DateFormat) Format(d Fields) string {
	var b strings.Builder
	for _, t := range f.tokens {
		switch t.kind {
		case fieldLiteral:
			b.WriteString(t.text)
		case fieldDay:
			b.WriteString(pad(d.Day, t.width))
		case fieldMonth:
			m := time.Month(d.Month + 1)
			switch {
			case t.width >= 4:
				b.WriteString(m.String())
			case t.width == 3:
				b.WriteString(m.String()[:3])
			default:
				b.WriteString(pad(d.Month+1, t.width))
			}
		case fieldYear:
			if t.width == 2 {
				b.WriteString(pad(d.Year%100, 2))
			} else {
				b.WriteString(pad(d.Year, t.width))
			}
		case fieldWeekday:
			wd := d.Time(time.UTC).Weekday().String()
			if t.width < 4 {
				wd = wd[:3]
			}
			b.WriteString(wd)
		}
	}
	return b.String()
}

// Parse reads s with the pattern. Numeric fields accept any digit count
// unless directly followed by another numeric field. Fields missing from the
// pattern default to 1 January 1970. The result is a real calendar date.
func (f *DateFormat) Parse(s string) (Fields, error) {
	d, err := f.parse(s)
	if err != nil {
		return Fields{}, err
	}
	if d.Year < 1 {
		return Fields{}, fmt.Errorf("year %d in %q: %w", d.Year, s, ErrInvalidArgument)
	}
	if d.Month < 0 || d.Month > 11 {
		return Fields{}, fmt.Errorf("month %d in %q: %w", d.Month+1, s, ErrInvalidArgument)
	}
	if d.Day < 1 || d.Day > DaysIn(d.Year, d.Month) {
		return Fields{}, fmt.Errorf("day %d in %q: %w", d.Day, s, ErrInvalidArgument)
	}
	return d, nil
}

func (f *DateFormat) parse(s string) (Fields, error) {
	d := Fields{Day: 1, Month: 0, Year: FloorYear}
	rest := strings.TrimSpace(s)

	for i, t := range f.tokens {
		switch {
		case t.kind == fieldLiteral:
			if !strings.HasPrefix(rest, t.text) {
				return Fields{}, fmt.Errorf("expected %q at %q: %w", t.text, rest, ErrInvalidArgument)
			}
			rest = rest[len(t.text):]

		case t.numeric():
			limit := 0
			if i+1 < len(f.tokens) && f.tokens[i+1].numeric() {
				limit = t.width
			}
			digits := leadingDigits(rest, limit)
			if digits == "" {
				return Fields{}, fmt.Errorf("expected number at %q: %w", rest, ErrInvalidArgument)
			}
			rest = rest[len(digits):]
			n, err := strconv.Atoi(digits)
			if err != nil {
				return Fields{}, fmt.Errorf("number %q: %w", digits, ErrInvalidArgument)
			}
			switch t.kind {
			case fieldDay:
				d.Day = n
			case fieldMonth:
				d.Month = n - 1
			case fieldYear:
				if t.width == 2 && len(digits) == 2 {
					n = expandTwoDigitYear(n)
				}
				d.Year = n
			}

		case t.kind == fieldMonth:
			m, n, ok := matchName(rest, monthNames())
			if !ok {
				return Fields{}, fmt.Errorf("expected month name at %q: %w", rest, ErrInvalidArgument)
			}
			d.Month = m
			rest = rest[n:]

		case t.kind == fieldWeekday:
			_, n, ok := matchName(rest, weekdayNames())
			if !ok {
				return Fields{}, fmt.Errorf("expected weekday at %q: %w", rest, ErrInvalidArgument)
			}
			rest = rest[n:]
		}
	}

	if rest != "" {
		return Fields{}, fmt.Errorf("unexpected trailing text %q: %w", rest, ErrInvalidArgument)
	}
	return d, nil
}

// expandTwoDigitYear maps 70..99 to the 1900s and 00..69 to the 2000s.
func expandTwoDigitYear(n int) int {
	if n >= FloorYear%100 {
		return 1900 + n
	}
	return 2000 + n
}

func leadingDigits(s string, limit int) string {
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		if limit > 0 && end == limit {
			break
		}
		end++
	}
	return s[:end]
}

func pad(n, width int) string {
	s := strconv.Itoa(n)
	for len(s) < width {
		s = "0" + s
	}
	return s
}

func monthNames() []string {
	names := make([]string, 12)
	for i := range names {
		names[i] = time.Month(i + 1).String()
	}
	return names
}

func weekdayNames() []string {
	names := make([]string, 7)
	for i := range names {
		names[i] = time.Weekday(i).String()
	}
	return names
}

// matchName finds the name (or its three-letter abbreviation) at the start of
// s, ignoring case. It returns the name index and the matched byte length.
func matchName(s string, names []string) (idx, n int, ok bool) {
	lower := strings.ToLower(s)
	for i, name := range names {
		full := strings.ToLower(name)
		if strings.HasPrefix(lower, full) {
			return i, len(full), true
		}
	}
	for i, name := range names {
		short := strings.ToLower(name[:3])
		if strings.HasPrefix(lower, short) {
			return i, len(short), true
		}
	}
	return 0, 0, false
}
