package datemath

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

// DayLayout is the ISO day format used for every parsed date.
const DayLayout = "2006-01-02"

// layouts are tried in order before falling back to natural language rules.
// Single-digit "1" and "2" accept padded and unpadded values alike.
// Partial dates resolve to the first day of the period.
var layouts = []string{
	DayLayout,
	time.RFC3339,
	"2006-1-2T15:04:05",
	"2006-1-2 15:04:05",
	"2006-1-2 15:04",
	"2006-1-2",
	"2006/1/2",
	"2006.1.2",
	"2006-1",
	"2006/1",
	"2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"January 2 2006",
	"Jan 2 2006",
	"2 January 2006",
	"2 Jan 2006",
	"2 January, 2006",
	"January, 2006",
	"January 2006",
	"Jan 2006",
	"1/2/2006",
	"2.1.2006",
}

// ordinalSuffix matches "1st", "22nd", "3rd", "7th" so "May 7th, 2019" fits a layout.
var ordinalSuffix = regexp.MustCompile(`(?i)\b(\d{1,2})(st|nd|rd|th)\b`)

// Parser converts free-form publication dates to day precision strings.
type Parser struct {
	location *time.Location
	natural  *when.Parser
}

// NewParser creates a new date parser for the given IANA timezone string.
// The timezone anchors natural language matches.
func NewParser(timezone string) (*Parser, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}

	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)

	return &Parser{location: loc, natural: w}, nil
}

// ParseDay returns raw as an ISO day string. ok is false when raw is empty or
// cannot be understood; that is never an error.
//
// The result never depends on baseTime: relative or partial expressions
// ("yesterday", "May 7th") are rejected rather than completed from the clock.
func (p *Parser) ParseDay(raw string, baseTime time.Time) (day string, ok bool) {
	raw = strings.Join(strings.Fields(raw), " ")
	if raw == "" {
		return "", false
	}
	raw = ordinalSuffix.ReplaceAllString(raw, "$1")

	for _, layout := range layouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format(DayLayout), true
		}
	}

	return p.parseNatural(raw, baseTime)
}

// parseNatural accepts a natural language match only when it resolves to the
// same day from two distant anchors and names its year explicitly.
func (p *Parser) parseNatural(raw string, baseTime time.Time) (string, bool) {
	anchors := []time.Time{
		baseTime.In(p.location),
		baseTime.In(p.location).AddDate(3, 5, 11),
	}

	var day string
	for i, anchor := range anchors {
		res, err := p.natural.Parse(raw, anchor)
		if err != nil || res == nil {
			return "", false
		}
		t := p.startOfDay(res.Time)
		if !strings.Contains(raw, strconv.Itoa(t.Year())) {
			return "", false
		}
		got := t.Format(DayLayout)
		if i > 0 && got != day {
			return "", false
		}
		day = got
	}
	return day, true
}

// startOfDay returns midnight at the start of the given day in the parser's timezone.
func (p *Parser) startOfDay(t time.Time) time.Time {
	t = t.In(p.location)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, p.location)
}
