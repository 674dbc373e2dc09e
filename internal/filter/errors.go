package filter

import "fmt"

// ParseError is returned when a date value cannot be parsed.
type ParseError struct {
	Value  string
	Reason string
	Cause  error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("parse date %q: %s: %v", e.Value, e.Reason, e.Cause)
	}
	return fmt.Sprintf("parse date %q: %s", e.Value, e.Reason)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// RangeError is returned for NaN, negative or inverted range bounds.
type RangeError struct {
	Field string
	Min   string
	Max   string
	Msg   string
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("invalid %s range [%s, %s]: %s", e.Field, e.Min, e.Max, e.Msg)
}
