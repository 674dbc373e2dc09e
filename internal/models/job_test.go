package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJobRecord_AccessorsOnAbsentValues(t *testing.T) {
	var job JobRecord

	assert.Empty(t, job.CompanyName())
	assert.Empty(t, job.LocationName())
	assert.Nil(t, job.Areas())
	assert.Empty(t, job.CategoryTag())
	assert.Empty(t, job.CategoryLabel())
	assert.False(t, job.HasSalary())
}

func TestJobRecord_Accessors(t *testing.T) {
	job := JobRecord{
		Company:   &Company{DisplayName: "FooTech Inc"},
		Location:  &Location{DisplayName: "London", Area: []string{"UK", "London"}},
		Category:  &Category{Tag: "it-jobs"},
		SalaryMax: 50000,
	}

	assert.Equal(t, "FooTech Inc", job.CompanyName())
	assert.Equal(t, "London", job.LocationName())
	assert.Equal(t, []string{"UK", "London"}, job.Areas())
	assert.Equal(t, "it-jobs", job.CategoryTag())
	assert.Equal(t, "it-jobs", job.CategoryLabel(), "label falls back to tag")
	assert.True(t, job.HasSalary())
}

func TestJobRecord_Compact(t *testing.T) {
	job := JobRecord{
		Title:    "Cook",
		Company:  &Company{},
		Location: &Location{Area: []string{}},
		Category: &Category{},
	}

	got := job.Compact()
	assert.Nil(t, got.Company)
	assert.Nil(t, got.Location)
	assert.Nil(t, got.Category)
	assert.NotNil(t, job.Company, "receiver is left alone")

	full := JobRecord{Company: &Company{DisplayName: "Acme"}, Category: &Category{Tag: "it-jobs"}}
	assert.Equal(t, full, full.Compact())
}

func TestIndexByID_FirstWins(t *testing.T) {
	jobs := []JobRecord{{ID: "a"}, {ID: "b"}, {ID: "a", Title: "dup"}}

	index := IndexByID(jobs)

	assert.Equal(t, map[string]int{"a": 0, "b": 1}, index)
}

func TestFieldOrder(t *testing.T) {
	assert.Equal(t, []string{
		"title", "description", "company", "location", "salary_min", "salary_max",
		"contract_time", "created", "redirect_url", "adref", "category",
		"latitude", "longitude", "id", "salary_is_predicted",
	}, FieldOrder)
}
