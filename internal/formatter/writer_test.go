package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"jobplanner/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullRecord() models.JobRecord {
	return models.JobRecord{
		Title:             "Backend Engineer",
		Description:       "Build APIs for R&D <platform> team",
		Company:           &models.Company{DisplayName: "FooTech Inc"},
		Location:          &models.Location{DisplayName: "London, UK", Area: []string{"UK", "London"}},
		SalaryMin:         45000,
		SalaryMax:         62500.5,
		ContractTime:      "full_time",
		Created:           "2024-03-10T09:15:00Z",
		RedirectURL:       "https://example.com/jobs/1?src=feed&x=1",
		Adref:             "eyJhbGciOiJIUzI1NiJ9",
		Category:          &models.Category{Tag: "it-jobs", Label: "IT Jobs"},
		Latitude:          51.5072,
		Longitude:         -0.1276,
		ID:                "4711",
		SalaryIsPredicted: "0",
	}
}

func sparseRecord() models.JobRecord {
	return models.JobRecord{Title: "Porter", ID: "12"}
}

type failingWriter struct{ err error }

func (f failingWriter) Write([]byte) (int, error) { return 0, f.err }

func TestWrite_JSONRoundTrip(t *testing.T) {
	records := []models.JobRecord{fullRecord(), sparseRecord()}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, records, JSON))

	var decoded []models.JobRecord
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, records, decoded)
}

func TestWrite_JSONIsSparse(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, []models.JobRecord{sparseRecord()}, JSON))

	out := buf.String()
	assert.NotContains(t, out, "null")
	assert.NotContains(t, out, `"company"`)
	assert.NotContains(t, out, `"salary_min"`)
	assert.Contains(t, out, `"title": "Porter"`)
}

func TestWrite_JSONOmitsEmptyNestedValues(t *testing.T) {
	record := models.JobRecord{Title: "Cook", Company: &models.Company{}, Category: &models.Category{}, ID: "7"}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, []models.JobRecord{record}, JSON))

	assert.NotContains(t, buf.String(), `"company"`)
	assert.NotContains(t, buf.String(), `"category"`)
	assert.NotContains(t, buf.String(), "{}")
}

func TestWrite_JSONFieldOrderAndEscaping(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, []models.JobRecord{fullRecord()}, JSON))

	out := buf.String()
	last := -1
	for _, field := range models.FieldOrder {
		idx := strings.Index(out, `"`+field+`":`)
		require.NotEqual(t, -1, idx, field)
		assert.Greater(t, idx, last, "field %s out of order", field)
		last = idx
	}
	assert.Contains(t, out, "R&D <platform>")
	assert.Contains(t, out, "src=feed&x=1")
}

func TestWrite_CSV(t *testing.T) {
	records := []models.JobRecord{fullRecord(), sparseRecord()}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, records, CSV))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, models.FieldOrder, rows[0])
	assert.Equal(t, []string{
		"Backend Engineer",
		"Build APIs for R&D <platform> team",
		"FooTech Inc",
		"London, UK",
		"45000",
		"62500.5",
		"full_time",
		"2024-03-10T09:15:00Z",
		"https://example.com/jobs/1?src=feed&x=1",
		"eyJhbGciOiJIUzI1NiJ9",
		"IT Jobs",
		"51.5072",
		"-0.1276",
		"4711",
		"0",
	}, rows[1])

	require.Len(t, rows[2], len(models.FieldOrder))
	assert.Equal(t, "Porter", rows[2][0])
	assert.Equal(t, "", rows[2][2])
	assert.Equal(t, "", rows[2][4])
	assert.Equal(t, "12", rows[2][13])
}

func TestWrite_CSVQuoting(t *testing.T) {
	title := `Engineer, "Senior"` + "\nRemote"
	record := models.JobRecord{Title: title, ID: "1"}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, []models.JobRecord{record}, CSV))

	assert.Contains(t, buf.String(), `"Engineer, ""Senior""`)

	rows, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, title, rows[1][0])
}

func TestWrite_CSVCategoryFallsBackToTag(t *testing.T) {
	record := models.JobRecord{ID: "1", Category: &models.Category{Tag: "teaching-jobs"}}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, []models.JobRecord{record}, CSV))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, "teaching-jobs", rows[1][10])
}

func TestWrite_Pretty(t *testing.T) {
	records := []models.JobRecord{
		{Title: "Go Developer", Company: &models.Company{DisplayName: "Acme"}, SalaryMin: 50000, ID: "42"},
		sparseRecord(),
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, records, Pretty))

	want := "Title: Go Developer\n" +
		"Description: \n" +
		"Company: Acme\n" +
		"Location: \n" +
		"Salary Min: 50000\n" +
		"Salary Max: \n" +
		"Contract Time: \n" +
		"Created: \n" +
		"Redirect URL: \n" +
		"Adref: \n" +
		"Category: \n" +
		"Latitude: \n" +
		"Longitude: \n" +
		"ID: 42\n" +
		"Salary Is Predicted: \n" +
		"\n" +
		"Title: Porter\n" +
		"Description: \n" +
		"Company: \n" +
		"Location: \n" +
		"Salary Min: \n" +
		"Salary Max: \n" +
		"Contract Time: \n" +
		"Created: \n" +
		"Redirect URL: \n" +
		"Adref: \n" +
		"Category: \n" +
		"Latitude: \n" +
		"Longitude: \n" +
		"ID: 12\n" +
		"Salary Is Predicted: \n"
	assert.Equal(t, want, buf.String())
}

func TestWrite_PrettyMultiLineValues(t *testing.T) {
	records := []models.JobRecord{
		{Title: "Cook", Description: "line one\n\nline two\r\n  line three  \n", ID: "1"},
		{Title: "Porter", ID: "2"},
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, records, Pretty))

	assert.Contains(t, buf.String(), "Description: line one line two line three\n")

	blocks := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n\n")
	require.Len(t, blocks, 2)
	for _, block := range blocks {
		assert.Len(t, strings.Split(block, "\n"), len(models.FieldOrder))
	}
}

func TestWrite_Empty(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{format: JSON, want: "[]\n"},
		{format: CSV, want: strings.Join(models.FieldOrder, ",") + "\n"},
		{format: Pretty, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.format.String(), func(t *testing.T) {
			for _, records := range [][]models.JobRecord{nil, {}} {
				var buf bytes.Buffer
				require.NoError(t, Write(&buf, records, tt.format))
				assert.Equal(t, tt.want, buf.String())
			}
		})
	}
}

func TestWrite_SinkFailure(t *testing.T) {
	sinkErr := errors.New("disk full")
	records := []models.JobRecord{fullRecord()}

	for _, format := range Formats() {
		t.Run(format.String(), func(t *testing.T) {
			err := Write(failingWriter{err: sinkErr}, records, format)
			require.Error(t, err)

			var writeErr *WriteError
			require.True(t, errors.As(err, &writeErr))
			assert.Equal(t, format, writeErr.Format)
			assert.ErrorIs(t, err, sinkErr)
		})
	}
}

func TestWrite_LargeOutputSinkFailure(t *testing.T) {
	records := make([]models.JobRecord, 500)
	for i := range records {
		records[i] = fullRecord()
	}

	err := Write(failingWriter{err: errors.New("closed pipe")}, records, CSV)

	var writeErr *WriteError
	assert.True(t, errors.As(err, &writeErr))
}

func TestWrite_UnsupportedFormat(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, nil, Format("xml"))

	require.Error(t, err)
	assert.Zero(t, buf.Len())
}
