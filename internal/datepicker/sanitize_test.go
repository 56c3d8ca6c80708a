package datepicker

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanTitle(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "Birthday", "Birthday"},
		{"sgr", "\x1b[1;31mDue\x1b[0m date", "Due date"},
		{"osc title", "\x1b]0;pwned\x07Start", "Start"},
		{"charset", "\x1b(BEnd", "End"},
		{"newlines", "Pick\na\tdate", "Pick a date"},
		{"bell and nul", "a\x07b\x00c", "abc"},
		{"invalid utf8", "caf\xe9", "caf�"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cleanTitle(tt.input))
		})
	}
}

func TestFitTitle(t *testing.T) {
	assert.Equal(t, "Birthday", fitTitle("Birthday", 20))
	assert.Equal(t, "Birth…", fitTitle("Birthday", 6))
}

func TestModel_TitleIsCleaned(t *testing.T) {
	m := newTestModel(t, func(o *Options) { o.Title = "\x1b[31mTrip\x1b[0m\nstart" })
	assert.Contains(t, m.View(), "Trip start")
	assert.NotContains(t, m.View(), "\x1b[31m")
}
