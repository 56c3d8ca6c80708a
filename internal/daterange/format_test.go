package daterange

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompile_Errors(t *testing.T) {
	for _, pattern := range []string{"", "dd/QQ", "'open"} {
		_, err := Compile(pattern)
		assert.ErrorIs(t, err, ErrInvalidArgument, "pattern %q", pattern)
	}
}

func TestFormat(t *testing.T) {
	d := Fields{Day: 5, Month: 2, Year: 2024}
	tests := []struct {
		pattern string
		want    string
	}{
		{"dd/MM/yyyy", "05/03/2024"},
		{"d/M/yy", "5/3/24"},
		{"MMMM d, yyyy", "March 5, 2024"},
		{"EEE dd MMM", "Tue 05 Mar"},
		{"EEEE", "Tuesday"},
		{"yyyy-MM-dd'T'", "2024-03-05T"},
		{"dd 'o''clock'", "05 o'clock"},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			assert.Equal(t, tt.want, MustCompile(tt.pattern).Format(d))
		})
	}
}

func TestParse_Lenient(t *testing.T) {
	f := MustCompile(DefaultDisplayFormat)

	got, err := f.Parse("1/11/1970")
	require.NoError(t, err)
	assert.Equal(t, Fields{Day: 1, Month: 10, Year: 1970}, got)

	got, err = f.Parse(" 29/02/2024 ")
	require.NoError(t, err)
	assert.Equal(t, Fields{Day: 29, Month: 1, Year: 2024}, got)
}

func TestParse_AdjacentNumericFields(t *testing.T) {
	got, err := MustCompile("ddMMyyyy").Parse("15062020")
	require.NoError(t, err)
	assert.Equal(t, Fields{Day: 15, Month: 5, Year: 2020}, got)
}

func TestParse_Names(t *testing.T) {
	got, err := MustCompile("EEE, d MMMM yyyy").Parse("Mon, 15 june 2020")
	require.NoError(t, err)
	assert.Equal(t, Fields{Day: 15, Month: 5, Year: 2020}, got)
}

func TestParse_TwoDigitYear(t *testing.T) {
	f := MustCompile("d/M/yy")

	got, err := f.Parse("1/1/85")
	require.NoError(t, err)
	assert.Equal(t, 1985, got.Year)

	got, err = f.Parse("1/1/05")
	require.NoError(t, err)
	assert.Equal(t, 2005, got.Year)

	got, err = f.Parse("1/1/1999")
	require.NoError(t, err)
	assert.Equal(t, 1999, got.Year)
}

func TestParse_Defaults(t *testing.T) {
	got, err := MustCompile("MMMM").Parse("June")
	require.NoError(t, err)
	assert.Equal(t, Fields{Day: 1, Month: 5, Year: FloorYear}, got)
}

func TestParse_Rejects(t *testing.T) {
	f := MustCompile(DefaultDisplayFormat)
	for _, s := range []string{
		"",
		"31/02/2024",
		"1-11-1970",
		"1/13/1970",
		"0/1/1970",
		"1/11/1970 extra",
		"aa/bb/cccc",
	} {
		_, err := f.Parse(s)
		assert.ErrorIs(t, err, ErrInvalidArgument, "input %q", s)
	}
}

func TestFormatParseAgree(t *testing.T) {
	f := MustCompile("dd MMM yyyy")
	d := Fields{Day: 31, Month: 11, Year: 1999}
	got, err := f.Parse(f.Format(d))
	require.NoError(t, err)
	assert.Equal(t, d, got)
}
