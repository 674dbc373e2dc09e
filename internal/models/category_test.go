package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategoryFromString(t *testing.T) {
	tests := []struct {
		name  string
		label string
		want  CategoryCode
	}{
		{name: "catalog label", label: "IT Jobs", want: CategoryIT},
		{name: "lower case", label: "it jobs", want: CategoryIT},
		{name: "upper case", label: "IT JOBS", want: CategoryIT},
		{name: "underscores", label: "it_jobs", want: CategoryIT},
		{name: "tag form", label: "it-jobs", want: CategoryIT},
		{name: "extra whitespace", label: "  IT   Jobs ", want: CategoryIT},
		{name: "punctuated label", label: "Accounting & Finance Jobs", want: CategoryAccountingFinance},
		{name: "comma label", label: "PR, Advertising & Marketing Jobs", want: CategoryMarketing},
		{name: "typo", label: "IT Jbos", want: CategoryUnknown},
		{name: "empty", label: "", want: CategoryUnknown},
		{name: "sentinel label is not a category", label: "Unknown", want: CategoryUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CategoryFromString(tt.label))
		})
	}
}

func TestCategoryFromString_StableAcrossCalls(t *testing.T) {
	first := CategoryFromString("IT Jobs")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, CategoryFromString("IT Jobs"))
	}
}

func TestCategories_RoundTripThroughLabels(t *testing.T) {
	for _, code := range Categories() {
		assert.True(t, code.IsKnown(), code)
		assert.Equal(t, code, CategoryFromString(code.Label()))
		assert.Equal(t, code, CategoryFromString(string(code)))
	}
	assert.NotContains(t, Categories(), CategoryUnknown)
	assert.Len(t, CategoryOptions(), len(Categories()))
}

func TestCategoryCode_Label(t *testing.T) {
	assert.Equal(t, "IT Jobs", CategoryIT.Label())
	assert.Equal(t, "Unknown", CategoryUnknown.Label())
	assert.Equal(t, "made-up", CategoryCode("made-up").Label())
	assert.False(t, CategoryUnknown.IsKnown())
	assert.False(t, CategoryCode("made-up").IsKnown())
}

func TestIsValidCategory(t *testing.T) {
	assert.True(t, IsValidCategory("Engineering Jobs"))
	assert.False(t, IsValidCategory("Astronaut Jobs"))
}
