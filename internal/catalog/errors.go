package catalog

import (
	"fmt"
	"strings"
)

// SchemaError lists the places where a catalog document violates the
// catalog schema.
type SchemaError struct {
	Errors []FieldError
}

type FieldError struct {
	Field   string
	Message string
}

func (e *SchemaError) Error() string {
	var sb strings.Builder
	sb.WriteString("catalog does not match schema:")
	for i, fe := range e.Errors {
		sb.WriteString(fmt.Sprintf("\n  %d. %s: %s", i+1, fe.Field, fe.Message))
	}
	return sb.String()
}
