package parse

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// DateLayout is the calendar date format used on the wire.
const DateLayout = "2006-01-02"

var dateTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

var datePrefixRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)

// Date parses a calendar date. Timestamps are accepted and truncated to
// their date part, since the backend mixes both forms in date columns.
func Date(raw string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse date: %q", raw)
}

// NormalizeDate returns the YYYY-MM-DD form of raw, or raw unchanged when it
// cannot be parsed.
func NormalizeDate(raw string) string {
	if t, err := Date(raw); err == nil {
		return t.Format(DateLayout)
	}
	if m := datePrefixRe.FindString(raw); m != "" {
		return m
	}
	return raw
}

// Today returns the current UTC date in wire format.
func Today() string {
	return time.Now().UTC().Format(DateLayout)
}

// InRange reports whether date lies within [from, to]. Empty bounds are open.
// Unparseable dates never match a bounded range.
func InRange(date, from, to string) bool {
	if from == "" && to == "" {
		return true
	}
	d, err := Date(date)
	if err != nil {
		return false
	}
	if from != "" {
		f, err := Date(from)
		if err == nil && d.Before(f) {
			return false
		}
	}
	if to != "" {
		t, err := Date(to)
		if err == nil && d.After(t) {
			return false
		}
	}
	return true
}
