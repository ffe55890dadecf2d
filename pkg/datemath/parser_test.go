package datemath_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zotero-notion-sync/pkg/datemath"
)

func TestNewParser(t *testing.T) {
	_, err := datemath.NewParser("Europe/Berlin")
	require.NoError(t, err)

	_, err = datemath.NewParser("Invalid/Timezone")
	assert.Error(t, err)
}

func TestParseDay(t *testing.T) {
	parser, err := datemath.NewParser("UTC")
	require.NoError(t, err)
	baseTime := time.Date(2024, 5, 1, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		name   string
		raw    string
		want   string
		wantOK bool
	}{
		{name: "ISO day", raw: "2020-03-15", want: "2020-03-15", wantOK: true},
		{name: "Surrounding spaces", raw: "  2020-03-15 ", want: "2020-03-15", wantOK: true},
		{name: "RFC3339 keeps written day", raw: "2020-03-15T23:30:00-05:00", want: "2020-03-15", wantOK: true},
		{name: "Year and month", raw: "2020-03", want: "2020-03-01", wantOK: true},
		{name: "Year only", raw: "2019", want: "2019-01-01", wantOK: true},
		{name: "Month name and year", raw: "March 2021", want: "2021-03-01", wantOK: true},
		{name: "Short month name", raw: "Mar 2021", want: "2021-03-01", wantOK: true},
		{name: "Long form", raw: "March 5, 2021", want: "2021-03-05", wantOK: true},
		{name: "Day first", raw: "5 March 2021", want: "2021-03-05", wantOK: true},
		{name: "US slashes", raw: "03/05/2021", want: "2021-03-05", wantOK: true},
		{name: "Slashes year first", raw: "2021/03/05", want: "2021-03-05", wantOK: true},
		{name: "Unpadded slashes year first", raw: "2019/5/7", want: "2019-05-07", wantOK: true},
		{name: "Unpadded dashes", raw: "2019-5-7", want: "2019-05-07", wantOK: true},
		{name: "Ordinal day", raw: "May 7th, 2019", want: "2019-05-07", wantOK: true},
		{name: "Day with time", raw: "2019-05-07 12:00", want: "2019-05-07", wantOK: true},
		{name: "Relative is absent", raw: "yesterday", wantOK: false},
		{name: "Weekday is absent", raw: "next friday", wantOK: false},
		{name: "Day without year is absent", raw: "May 7", wantOK: false},
		{name: "Ordinal without year is absent", raw: "May 7th", wantOK: false},
		{name: "Empty", raw: "", wantOK: false},
		{name: "Blank", raw: "   ", wantOK: false},
		{name: "Garbage", raw: "n.d.", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parser.ParseDay(tt.raw, baseTime)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDayIgnoresBaseTime(t *testing.T) {
	parser, err := datemath.NewParser("UTC")
	require.NoError(t, err)

	bases := []time.Time{
		time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC),
		time.Date(2027, 1, 3, 23, 59, 0, 0, time.UTC),
		time.Date(1999, 12, 31, 0, 0, 0, 0, time.UTC),
	}
	inputs := []string{
		"2019/5/7",
		"May 7th, 2019",
		"2019-05-07 12:00",
		"March 5, 2021",
		"2021",
		"yesterday",
		"May 7",
		"next friday",
	}

	for _, raw := range inputs {
		t.Run(raw, func(t *testing.T) {
			wantDay, wantOK := parser.ParseDay(raw, bases[0])
			for _, base := range bases[1:] {
				day, ok := parser.ParseDay(raw, base)
				assert.Equal(t, wantOK, ok, "base %s", base)
				assert.Equal(t, wantDay, day, "base %s", base)
			}
		})
	}
}
