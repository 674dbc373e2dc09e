// Package catalog loads the job-posting catalog from a JSON file.
package catalog

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"

	"jobplanner/internal/models"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schema.json
var schemaJSON []byte

var compiledSchema = sync.OnceValues(func() (*gojsonschema.Schema, error) {
	return gojsonschema.NewSchema(gojsonschema.NewBytesLoader(schemaJSON))
})

// response is the job-board search response shape.
type response struct {
	Results []models.JobRecord `json:"results"`
}

// Decode validates a catalog document and decodes its records. The
// document is either an array of records or an object holding them under
// "results". Unknown fields are ignored.
func Decode(r io.Reader) ([]models.JobRecord, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	if err := validate(data); err != nil {
		return nil, err
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var jobs []models.JobRecord
		if err := json.Unmarshal(trimmed, &jobs); err != nil {
			return nil, fmt.Errorf("decode catalog: %w", err)
		}
		return compact(jobs), nil
	}

	var resp response
	if err := json.Unmarshal(trimmed, &resp); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return compact(resp.Results), nil
}

func compact(jobs []models.JobRecord) []models.JobRecord {
	for i := range jobs {
		jobs[i] = jobs[i].Compact()
	}
	return jobs
}

// Load reads and decodes the catalog file at path.
func Load(path string) ([]models.JobRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	jobs, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return jobs, nil
}

func validate(data []byte) error {
	schema, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("load catalog schema: %w", err)
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("validate catalog: %w", err)
	}
	if result.Valid() {
		return nil
	}

	schemaErr := &SchemaError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		schemaErr.Errors = append(schemaErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}
	return schemaErr
}
