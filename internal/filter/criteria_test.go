package filter

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

func ptr(v float64) *float64 { return &v }

func TestCriteria_Empty(t *testing.T) {
	c := Criteria{Country: "  ", Category: "Select", Company: ""}

	assert.True(t, c.IsEmpty())

	predicates, err := c.Predicates(testNow)
	require.NoError(t, err)
	assert.Empty(t, predicates)

	got, err := c.Filter(sampleJobs(), testNow)
	require.NoError(t, err)
	assert.Equal(t, sampleJobs(), got)
}

func TestCriteria_Filter(t *testing.T) {
	tests := []struct {
		name     string
		criteria Criteria
		want     []string
	}{
		{
			name:     "country",
			criteria: Criteria{Country: "uk"},
			want:     []string{"1", "3"},
		},
		{
			name:     "category by label",
			criteria: Criteria{Category: "it jobs"},
			want:     []string{"1", "4"},
		},
		{
			name:     "category by tag",
			criteria: Criteria{Category: "engineering-jobs"},
			want:     []string{"3"},
		},
		{
			name:     "unknown category matches nothing",
			criteria: Criteria{Category: "astronaut jobs"},
			want:     []string{},
		},
		{
			name:     "company",
			criteria: Criteria{Company: "Tech"},
			want:     []string{"1", "4"},
		},
		{
			name:     "salary min only",
			criteria: Criteria{SalaryMin: ptr(35000)},
			want:     []string{"1", "2"},
		},
		{
			name:     "salary max only",
			criteria: Criteria{SalaryMax: ptr(20)},
			want:     []string{"3", "4"},
		},
		{
			name:     "role types",
			criteria: Criteria{RoleTypes: []string{"part_time", "full_time"}},
			want:     []string{"1", "2", "4"},
		},
		{
			name:     "window today",
			criteria: Criteria{Window: WindowToday},
			want:     []string{"4"},
		},
		{
			name:     "window week",
			criteria: Criteria{Window: WindowWeek},
			want:     []string{"1", "4"},
		},
		{
			name:     "window month",
			criteria: Criteria{Window: WindowMonth},
			want:     []string{"1", "2", "4"},
		},
		{
			name:     "explicit dates override window",
			criteria: Criteria{Window: WindowToday, PostedFrom: "2024-03-01", PostedTo: "2024-03-01"},
			want:     []string{"2"},
		},
		{
			name:     "open ended from",
			criteria: Criteria{PostedFrom: "2024-03-10"},
			want:     []string{"1", "4"},
		},
		{
			name:     "open ended to",
			criteria: Criteria{PostedTo: "2024-03-09"},
			want:     []string{"2"},
		},
		{
			name: "combined",
			criteria: Criteria{
				Country:   "UK",
				Category:  "IT Jobs",
				SalaryMin: ptr(50000),
				RoleTypes: []string{"FULL_TIME"},
				Window:    WindowMonth,
			},
			want: []string{"1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.criteria.Filter(sampleJobs(), testNow)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestCriteria_ValidateRange(t *testing.T) {
	tests := []struct {
		name     string
		criteria Criteria
	}{
		{name: "inverted salary", criteria: Criteria{SalaryMin: ptr(50000), SalaryMax: ptr(20000)}},
		{name: "NaN salary", criteria: Criteria{SalaryMin: ptr(math.NaN())}},
		{name: "inverted dates", criteria: Criteria{PostedFrom: "2024-03-10", PostedTo: "2024-03-01"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.criteria.Validate()
			require.Error(t, err)

			var rangeErr *RangeError
			assert.True(t, errors.As(err, &rangeErr), "got %T", err)

			_, err = tt.criteria.Filter(sampleJobs(), testNow)
			assert.Error(t, err)
		})
	}
}

func TestCriteria_ValidateStructTags(t *testing.T) {
	tests := []struct {
		name     string
		criteria Criteria
	}{
		{name: "negative salary", criteria: Criteria{SalaryMin: ptr(-1), SalaryMax: ptr(10)}},
		{name: "blank role type", criteria: Criteria{RoleTypes: []string{"full_time", ""}}},
		{name: "unknown window", criteria: Criteria{Window: DateWindow("year")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.criteria.Validate()
			require.Error(t, err)

			var validationErrs validator.ValidationErrors
			assert.True(t, errors.As(err, &validationErrs), "got %T", err)
		})
	}
}

func TestCriteria_MalformedDateInput(t *testing.T) {
	tests := []struct {
		name     string
		criteria Criteria
		value    string
	}{
		{"wrong layout", Criteria{PostedFrom: "03/10/2024"}, "03/10/2024"},
		{"trailing text on start", Criteria{PostedFrom: "2024-03-01 not a date", PostedTo: "2024-03-31"}, "2024-03-01 not a date"},
		{"trailing text on end", Criteria{PostedTo: "2024-03-31xyz"}, "2024-03-31xyz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.criteria.Predicates(testNow)
			require.Error(t, err)

			var parseErr *ParseError
			require.True(t, errors.As(err, &parseErr))
			assert.Equal(t, tt.value, parseErr.Value)
			assert.Error(t, tt.criteria.Validate())
		})
	}
}

func TestCriteria_EqualSalaryBoundsAllowed(t *testing.T) {
	c := Criteria{SalaryMin: ptr(35000), SalaryMax: ptr(35000)}

	got, err := c.Filter(sampleJobs(), testNow)
	require.NoError(t, err)
	assert.Equal(t, []string{"2"}, ids(got))
}

func TestParseDateWindow(t *testing.T) {
	tests := []struct {
		input string
		want  DateWindow
	}{
		{"", WindowNone},
		{"Select", WindowNone},
		{"any", WindowNone},
		{"Today", WindowToday},
		{"week", WindowWeek},
		{"Past week", WindowWeek},
		{"MONTH", WindowMonth},
		{" past month ", WindowMonth},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDateWindow(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseDateWindow("fortnight")
	assert.Error(t, err)
}

func TestDateWindow_Range(t *testing.T) {
	start, end, ok := WindowWeek.Range(testNow)
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 3, 8, 12, 0, 0, 0, time.UTC), start)
	assert.Equal(t, testNow, end)

	start, _, ok = WindowMonth.Range(testNow)
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 2, 15, 12, 0, 0, 0, time.UTC), start)

	_, _, ok = WindowNone.Range(testNow)
	assert.False(t, ok)
}
