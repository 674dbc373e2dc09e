// Package formatter renders job records as JSON, CSV or plain text.
//
// Every format follows models.FieldOrder. JSON output is sparse (absent
// fields are omitted); CSV and plain text are dense and render absent
// fields as empty values.
package formatter

import (
	"fmt"
	"strings"
)

type Format string

const (
	JSON   Format = "json"
	CSV    Format = "csv"
	Pretty Format = "txt"
)

// Formats lists the supported formats in menu order.
func Formats() []Format {
	return []Format{JSON, CSV, Pretty}
}

// ParseFormat accepts a format name or file extension, ignoring case and a
// leading dot.
func ParseFormat(s string) (Format, error) {
	switch strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), ".") {
	case "json":
		return JSON, nil
	case "csv":
		return CSV, nil
	case "txt", "text", "pretty":
		return Pretty, nil
	default:
		return "", fmt.Errorf("unsupported format %q", s)
	}
}

func (f Format) FileExtension() string {
	return "." + string(f)
}

func (f Format) ContentType() string {
	switch f {
	case JSON:
		return "application/json"
	case CSV:
		return "text/csv"
	default:
		return "text/plain; charset=utf-8"
	}
}

func (f Format) String() string {
	return string(f)
}
