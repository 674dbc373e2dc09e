package filter

import (
	"fmt"
	"strings"
	"time"
)

// DateWindow is a posting-date preset relative to the current day.
type DateWindow string

const (
	WindowNone  DateWindow = ""
	WindowToday DateWindow = "today"
	WindowWeek  DateWindow = "week"
	WindowMonth DateWindow = "month"
)

// ParseDateWindow accepts the preset names and their menu labels
// ("Today", "Past week", "Past month"). Blank input and the "Select"
// placeholder mean no window.
func ParseDateWindow(s string) (DateWindow, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "select", "any":
		return WindowNone, nil
	case "today":
		return WindowToday, nil
	case "week", "past week":
		return WindowWeek, nil
	case "month", "past month":
		return WindowMonth, nil
	default:
		return WindowNone, fmt.Errorf("unknown date window %q", s)
	}
}

// Range returns the inclusive day range the window covers, ending on now's
// day. ok is false for WindowNone and unknown values.
func (w DateWindow) Range(now time.Time) (start, end time.Time, ok bool) {
	end = now
	switch w {
	case WindowToday:
		return end, end, true
	case WindowWeek:
		return end.AddDate(0, 0, -7), end, true
	case WindowMonth:
		return end.AddDate(0, -1, 0), end, true
	default:
		return time.Time{}, time.Time{}, false
	}
}
