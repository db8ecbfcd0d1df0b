package booking

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedParser(now time.Time) *DateTimeParser {
	return &DateTimeParser{
		Location: time.UTC,
		Now:      func() time.Time { return now },
	}
}

func TestDateTimeParser_Parse(t *testing.T) {
	p := fixedParser(time.Date(2026, time.January, 1, 10, 0, 0, 0, time.UTC))

	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{"canonical", "January 20, 2026 3:00 PM", time.Date(2026, time.January, 20, 15, 0, 0, 0, time.UTC)},
		{"with at", "January 20, 2026 at 3:00 PM", time.Date(2026, time.January, 20, 15, 0, 0, 0, time.UTC)},
		{"extra spaces and AT", "  January 20,   2026  AT 3:00 PM ", time.Date(2026, time.January, 20, 15, 0, 0, 0, time.UTC)},
		{"abbreviated month", "Jan 20, 2026 9:30 AM", time.Date(2026, time.January, 20, 9, 30, 0, 0, time.UTC)},
		{"no year uses current year", "June 1 at 12:00 PM", time.Date(2026, time.June, 1, 12, 0, 0, 0, time.UTC)},
		{"lowercase meridiem", "jan 20 3:00 pm", time.Date(2026, time.January, 20, 15, 0, 0, 0, time.UTC)},
		{"twelve am is midnight", "Feb 3, 2026 12:15 am", time.Date(2026, time.February, 3, 0, 15, 0, 0, time.UTC)},
		{"twenty four hour without comma", "January 20 2026 15:30", time.Date(2026, time.January, 20, 15, 30, 0, 0, time.UTC)},
		{"iso like", "2026-01-20 15:00", time.Date(2026, time.January, 20, 15, 0, 0, 0, time.UTC)},
		{"rfc3339", "2026-01-20T15:00:00Z", time.Date(2026, time.January, 20, 15, 0, 0, 0, time.UTC)},
		{"date only gets current year", "March 5", time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := p.Parse(tt.input)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "want %s, got %s", tt.want, got)
		})
	}
}

func TestDateTimeParser_ParseFailures(t *testing.T) {
	p := fixedParser(time.Date(2026, time.January, 1, 10, 0, 0, 0, time.UTC))

	for _, input := range []string{"blah blah", "", "next tuesday-ish", "Feb 30, 2026 3:00 PM"} {
		t.Run(input, func(t *testing.T) {
			_, err := p.Parse(input)
			require.Error(t, err)

			var parseErr *ParseError
			require.True(t, errors.As(err, &parseErr))
			assert.Equal(t, input, parseErr.Input)
		})
	}
}

func TestDateTimeParser_UsesLocation(t *testing.T) {
	loc := time.FixedZone("EST", -5*60*60)
	p := &DateTimeParser{
		Location: loc,
		Now:      func() time.Time { return time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC) },
	}

	got, err := p.Parse("January 20, 2026 3:00 PM")
	require.NoError(t, err)
	assert.True(t, time.Date(2026, time.January, 20, 20, 0, 0, 0, time.UTC).Equal(got))
}

func TestNormalizeDateText(t *testing.T) {
	assert.Equal(t, "January 20, 2026 3:00 PM", normalizeDateText("January 20, 2026 at 3:00 PM"))
	assert.Equal(t, "Saturday 4pm", normalizeDateText("Saturday   At 4pm"))
	// "at" inside a word is kept.
	assert.Equal(t, "Saturday late", normalizeDateText("Saturday late"))
}
