// Package wheel implements a three-column snap-scrolling picker. Each column
// scrolls independently, the item nearest the middle row is picked, and one
// combined selection event is raised once all columns are positioned.
package wheel

// Option is one selectable value. Options compare by label.
type Option struct {
	label string
}

// NewOption returns an option with the given label.
func NewOption(label string) Option {
	return Option{label: label}
}

// Label returns the displayed text.
func (o Option) Label() string {
	return o.label
}

func (o Option) String() string {
	return o.label
}

// OptionList is the ordered content of one column. Lists are replaced
// wholesale, never edited in place.
type OptionList []Option

// Options builds a list from labels.
func Options(labels ...string) OptionList {
	if len(labels) == 0 {
		return nil
	}
	l := make(OptionList, len(labels))
	for i, label := range labels {
		l[i] = NewOption(label)
	}
	return l
}

// Labels returns the labels in order.
func (l OptionList) Labels() []string {
	out := make([]string, len(l))
	for i, o := range l {
		out[i] = o.label
	}
	return out
}

// Index returns the first index whose option satisfies match, or -1.
func (l OptionList) Index(match func(Option) bool) int {
	for i, o := range l {
		if match(o) {
			return i
		}
	}
	return -1
}

// Equal reports whether both lists hold the same labels in the same order.
func (l OptionList) Equal(other OptionList) bool {
	if len(l) != len(other) {
		return false
	}
	for i := range l {
		if l[i] != other[i] {
			return false
		}
	}
	return true
}

// MatchFunc reports whether an option corresponds to an externally supplied
// selected value.
type MatchFunc func(o Option, selected string) bool

// LabelMatch matches by exact label.
func LabelMatch(o Option, selected string) bool {
	return o.label == selected
}
