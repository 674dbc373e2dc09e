package formatter

import "fmt"

// WriteError is returned when records cannot be written to the sink.
type WriteError struct {
	Format Format
	Cause  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write %s: %v", e.Format, e.Cause)
}

func (e *WriteError) Unwrap() error {
	return e.Cause
}
