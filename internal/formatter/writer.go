package formatter

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"jobplanner/internal/models"
)

// Encoder writes a record collection in one format.
type Encoder interface {
	Encode(w io.Writer, records []models.JobRecord) error
}

// EncoderFor returns the encoder for f.
func EncoderFor(f Format) (Encoder, error) {
	switch f {
	case JSON:
		return JSONEncoder{}, nil
	case CSV:
		return CSVEncoder{}, nil
	case Pretty:
		return PrettyEncoder{}, nil
	default:
		return nil, fmt.Errorf("unsupported format %q", f)
	}
}

// Write encodes records to w in the given format. Output is buffered and
// flushed before returning; w is not closed. Failures are *WriteError.
func Write(w io.Writer, records []models.JobRecord, format Format) error {
	enc, err := EncoderFor(format)
	if err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	if err := enc.Encode(bw, records); err != nil {
		return &WriteError{Format: format, Cause: err}
	}
	if err := bw.Flush(); err != nil {
		return &WriteError{Format: format, Cause: err}
	}
	return nil
}

// JSONEncoder writes an indented JSON array. An empty collection is "[]".
type JSONEncoder struct{}

func (JSONEncoder) Encode(w io.Writer, records []models.JobRecord) error {
	compact := make([]models.JobRecord, len(records))
	for i, record := range records {
		compact[i] = record.Compact()
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(compact)
}

// CSVEncoder writes a header row followed by one row per record. Nested
// values are flattened to their display text.
type CSVEncoder struct{}

func (CSVEncoder) Encode(w io.Writer, records []models.JobRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(models.FieldOrder); err != nil {
		return err
	}
	for _, record := range records {
		if err := cw.Write(values(record)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// PrettyEncoder writes one "Label: value" line per field, with a blank
// line between records. An empty collection writes nothing.
type PrettyEncoder struct{}

var prettyLabels = map[string]string{
	models.FieldTitle:             "Title",
	models.FieldDescription:       "Description",
	models.FieldCompany:           "Company",
	models.FieldLocation:          "Location",
	models.FieldSalaryMin:         "Salary Min",
	models.FieldSalaryMax:         "Salary Max",
	models.FieldContractTime:      "Contract Time",
	models.FieldCreated:           "Created",
	models.FieldRedirectURL:       "Redirect URL",
	models.FieldAdref:             "Adref",
	models.FieldCategory:          "Category",
	models.FieldLatitude:          "Latitude",
	models.FieldLongitude:         "Longitude",
	models.FieldID:                "ID",
	models.FieldSalaryIsPredicted: "Salary Is Predicted",
}

func (PrettyEncoder) Encode(w io.Writer, records []models.JobRecord) error {
	var sb strings.Builder
	for i, record := range records {
		sb.Reset()
		if i > 0 {
			sb.WriteString("\n")
		}
		for j, value := range values(record) {
			sb.WriteString(prettyLabels[models.FieldOrder[j]])
			sb.WriteString(": ")
			sb.WriteString(singleLine(value))
			sb.WriteString("\n")
		}
		if _, err := io.WriteString(w, sb.String()); err != nil {
			return err
		}
	}
	return nil
}

// singleLine joins the lines of v with single spaces so a value never
// spans lines or opens a blank line inside a record.
func singleLine(v string) string {
	if !strings.ContainsAny(v, "\r\n") {
		return v
	}
	lines := strings.FieldsFunc(v, func(r rune) bool { return r == '\r' || r == '\n' })
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return strings.Join(slices.DeleteFunc(lines, func(l string) bool { return l == "" }), " ")
}

// values renders record densely in models.FieldOrder.
func values(record models.JobRecord) []string {
	return []string{
		record.Title,
		record.Description,
		record.CompanyName(),
		record.LocationName(),
		formatNumber(record.SalaryMin),
		formatNumber(record.SalaryMax),
		record.ContractTime,
		record.Created,
		record.RedirectURL,
		record.Adref,
		record.CategoryLabel(),
		formatNumber(record.Latitude),
		formatNumber(record.Longitude),
		record.ID,
		record.SalaryIsPredicted,
	}
}

// formatNumber renders zero (absent) as an empty string.
func formatNumber(v float64) string {
	if v == 0 {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
