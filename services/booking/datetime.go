package booking

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/jinzhu/now"
)

var (
	atWordPattern = regexp.MustCompile(`(?i)\bat\b`)
	spacePattern  = regexp.MustCompile(`\s+`)
	// <Month> <Day>[,] [<Year>] <Hour>:<Minute> [AM|PM]
	monthDayTimePattern = regexp.MustCompile(`(?i)^(\w+)\s+(\d{1,2}),?\s*(\d{4})?\s*(\d{1,2}):(\d{2})\s*(AM|PM)?$`)
)

// naturalLayouts are the written-out date forms people type into the widget.
// Layouts without a year are completed with the current year.
var naturalLayouts = []string{
	"January 2, 2006 3:04 PM",
	"January 2, 2006 3:04PM",
	"January 2 2006 3:04 PM",
	"Jan 2, 2006 3:04 PM",
	"Jan 2 2006 3:04 PM",
	"Monday, January 2, 2006 3:04 PM",
	"January 2, 2006 15:04",
	"Jan 2, 2006 15:04",
	"2 January 2006 15:04",
	"2 January 2006 3:04 PM",
	"January 2, 2006",
	"Jan 2, 2006",
	"January 2 2006",
	"Jan 2 2006",
	"January 2 3:04 PM",
	"Jan 2 3:04 PM",
	"1/2/2006 3:04 PM",
	"1/2/2006 15:04",
	"2006-01-02 3:04 PM",
	"2006-01-02T15:04",
}

// ParseError reports text that no parsing strategy could turn into a time.
type ParseError struct {
	Input string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("could not parse %q as a date/time", e.Input)
}

// DateTimeParser turns loosely formatted date/time text into an absolute time.
// Times without an explicit zone are read in Location.
type DateTimeParser struct {
	Location *time.Location
	Now      func() time.Time
}

// NewDateTimeParser returns a parser for loc using the wall clock.
func NewDateTimeParser(loc *time.Location) *DateTimeParser {
	if loc == nil {
		loc = time.Local
	}
	return &DateTimeParser{Location: loc, Now: time.Now}
}

func (p *DateTimeParser) now() time.Time {
	if p.Now == nil {
		return time.Now().In(p.Location)
	}
	return p.Now().In(p.Location)
}

// Parse tries, in order: the normalized text, the original text, a
// month/day/time pattern match, and the normalized text with the current year
// appended. The first success wins.
func (p *DateTimeParser) Parse(input string) (time.Time, error) {
	current := p.now()
	normalized := normalizeDateText(input)
	if normalized == "" {
		return time.Time{}, &ParseError{Input: input}
	}

	if t, ok := p.parseGeneric(normalized, current); ok {
		return t, nil
	}
	if t, ok := p.parseGeneric(input, current); ok {
		return t, nil
	}
	if t, ok := p.parseMonthDayTime(normalized, current); ok {
		return t, nil
	}
	if t, ok := p.parseGeneric(fmt.Sprintf("%s %d", normalized, current.Year()), current); ok {
		return t, nil
	}
	return time.Time{}, &ParseError{Input: input}
}

// normalizeDateText drops the standalone word "at" and collapses whitespace.
func normalizeDateText(s string) string {
	s = atWordPattern.ReplaceAllString(s, " ")
	s = spacePattern.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

func (p *DateTimeParser) parseGeneric(s string, current time.Time) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range naturalLayouts {
		t, err := time.ParseInLocation(layout, s, p.Location)
		if err != nil {
			continue
		}
		if t.Year() == 0 {
			t = t.AddDate(current.Year(), 0, 0)
		}
		return t, true
	}

	// Numeric and RFC forms ("2026-01-20 15:00", "1/20/2026", RFC 3339, ...).
	cfg := &now.Config{
		WeekStartDay: time.Sunday,
		TimeLocation: p.Location,
		TimeFormats:  now.TimeFormats,
	}
	t, err := cfg.With(current).Parse(s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func (p *DateTimeParser) parseMonthDayTime(s string, current time.Time) (time.Time, bool) {
	m := monthDayTimePattern.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, false
	}

	month, ok := parseMonthName(m[1])
	if !ok {
		return time.Time{}, false
	}
	day, _ := strconv.Atoi(m[2])
	year := current.Year()
	if m[3] != "" {
		year, _ = strconv.Atoi(m[3])
	}
	hour, _ := strconv.Atoi(m[4])
	minute, _ := strconv.Atoi(m[5])

	switch strings.ToUpper(m[6]) {
	case "PM":
		if hour != 12 {
			hour += 12
		}
	case "AM":
		if hour == 12 {
			hour = 0
		}
	}

	if day < 1 || day > 31 || hour > 23 || minute > 59 {
		return time.Time{}, false
	}
	t := time.Date(year, month, day, hour, minute, 0, 0, p.Location)
	// time.Date normalizes overflow such as February 31; treat that as a miss.
	if t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}

func parseMonthName(name string) (time.Month, bool) {
	for _, layout := range []string{"January", "Jan"} {
		if t, err := time.Parse(layout, name); err == nil {
			return t.Month(), true
		}
	}
	return 0, false
}
