package filter

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		input string
		want  time.Time
	}{
		{input: "2024-03-10T09:15:00Z", want: time.Date(2024, 3, 10, 9, 15, 0, 0, time.UTC)},
		{input: "2024-03-10T09:15:00.5Z", want: time.Date(2024, 3, 10, 9, 15, 0, 500000000, time.UTC)},
		{input: "2024-03-10T09:15:00", want: time.Date(2024, 3, 10, 9, 15, 0, 0, time.UTC)},
		{input: "2024-03-10 09:15:00", want: time.Date(2024, 3, 10, 9, 15, 0, 0, time.UTC)},
		{input: "2024-03-10", want: time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)},
		{input: " 2024-03-10 ", want: time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)},
		{input: "2024-03-10T09:15:00+0100", want: time.Date(2024, 3, 10, 8, 15, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %v", got)
		})
	}
}

func TestParseDate_Errors(t *testing.T) {
	for _, input := range []string{
		"", "yesterday", "10/03/2024", "2024-02-30",
		"2024-03-10garbage", "2024-03-01 not a date", "2024-03-10T09:15:00Zjunk",
	} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseDate(input)
			require.Error(t, err)

			var parseErr *ParseError
			assert.True(t, errors.As(err, &parseErr))
			assert.Equal(t, input, parseErr.Value)
		})
	}
}

func TestParseDate_InvalidCalendarDateKeepsCause(t *testing.T) {
	_, err := ParseDate("2024-02-30T10:00:00Z")

	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.NotNil(t, parseErr.Unwrap())
	assert.Contains(t, err.Error(), "invalid calendar date")
}
