package datepicker

import (
	"slices"

	"github.com/runger/datewheel/internal/daterange"
)

// Selection is the picked date. Month is 0-based.
type Selection struct {
	Day   int
	Month int
	Year  int
}

// Fields converts the selection for formatting.
func (s Selection) Fields() daterange.Fields {
	return daterange.Fields{Day: s.Day, Month: s.Month, Year: s.Year}
}

// List is the content of one column, or the error that prevented computing
// it.
type List struct {
	Labels []string
	Err    error
}

func (l List) equal(o List) bool {
	return sameError(l.Err, o.Err) && slices.Equal(l.Labels, o.Labels)
}

func sameError(a, b error) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Error() == b.Error()
}

// Lists holds the three columns.
type Lists struct {
	Days   List
	Months List
	Years  List
}

type subscriber struct {
	id int
	fn func(Lists)
}

// Store owns the selection and the option lists derived from it. Lists are
// recomputed synchronously inside Set.
type Store struct {
	provider          *daterange.Provider
	maxYear           int
	allowThroughToday bool

	sel   Selection
	lists Lists

	subs   []subscriber
	nextID int
}

// NewStore computes the initial lists for sel.
func NewStore(provider *daterange.Provider, maxYear int, allowThroughToday bool, sel Selection) *Store {
	s := &Store{
		provider:          provider,
		maxYear:           maxYear,
		allowThroughToday: allowThroughToday,
		sel:               sel,
	}
	s.lists.Years = s.years()
	s.lists.Months = s.months()
	s.lists.Days = s.days()
	return s
}

// Selection returns the current selection.
func (s *Store) Selection() Selection {
	return s.sel
}

// Lists returns the current option lists.
func (s *Store) Lists() Lists {
	return s.lists
}

// Set records sel. Months are recomputed when the year changed, days when
// the year or month changed. Subscribers hear about it only if a list
// actually changed.
func (s *Store) Set(sel Selection) {
	prev := s.sel
	s.sel = sel

	changed := false
	if sel.Year != prev.Year {
		if l := s.months(); !l.equal(s.lists.Months) {
			s.lists.Months = l
			changed = true
		}
	}
	if sel.Year != prev.Year || sel.Month != prev.Month {
		if l := s.days(); !l.equal(s.lists.Days) {
			s.lists.Days = l
			changed = true
		}
	}
	if changed {
		s.notify()
	}
}

// Subscribe registers fn for list changes. The returned func removes it.
func (s *Store) Subscribe(fn func(Lists)) (unsubscribe func()) {
	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, subscriber{id: id, fn: fn})
	return func() {
		s.subs = slices.DeleteFunc(s.subs, func(sub subscriber) bool { return sub.id == id })
	}
}

func (s *Store) notify() {
	lists := s.lists
	for _, sub := range slices.Clone(s.subs) {
		sub.fn(lists)
	}
}

func (s *Store) years() List {
	labels, err := s.provider.YearsUpTo(s.maxYear)
	return List{Labels: labels, Err: err}
}

func (s *Store) months() List {
	labels, err := s.provider.MonthsInYear(s.sel.Year, s.allowThroughToday)
	return List{Labels: labels, Err: err}
}

func (s *Store) days() List {
	labels, err := s.provider.DaysInMonth(s.sel.Year, s.sel.Month, s.allowThroughToday)
	return List{Labels: labels, Err: err}
}
