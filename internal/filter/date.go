package filter

import (
	"regexp"
	"strings"
	"time"
)

var isoDateRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)

// DateLayout is the layout for date-only criteria input.
const DateLayout = "2006-01-02"

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05-0700",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	DateLayout,
}

// ParseDate parses a posting date. Only full timestamps and bare dates are
// accepted; trailing text after a valid date is an error.
func ParseDate(value string) (time.Time, error) {
	s := strings.TrimSpace(value)
	if s == "" {
		return time.Time{}, &ParseError{Value: value, Reason: "empty date"}
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}

	if isoDateRegex.MatchString(s) {
		if _, err := time.Parse(DateLayout, s[:10]); err != nil {
			return time.Time{}, &ParseError{Value: value, Reason: "invalid calendar date", Cause: err}
		}
	}

	return time.Time{}, &ParseError{Value: value, Reason: "unrecognized date format"}
}

// dayOf reduces t to its calendar day in t's own location as yyyymmdd.
func dayOf(t time.Time) int {
	y, m, d := t.Date()
	return y*10000 + int(m)*100 + d
}
