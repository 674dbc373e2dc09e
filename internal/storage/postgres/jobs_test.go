package postgres

import (
	"testing"

	"jobplanner/internal/models"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestJobRow_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		job  models.JobRecord
	}{
		{
			name: "full",
			job: models.JobRecord{
				Title:             "Go Developer",
				Description:       "APIs",
				Company:           &models.Company{DisplayName: "FooTech Inc"},
				Location:          &models.Location{DisplayName: "London, UK", Area: []string{"UK", "London"}},
				SalaryMin:         40000,
				SalaryMax:         60000,
				ContractTime:      "full_time",
				Created:           "2024-03-10T09:15:00Z",
				RedirectURL:       "https://example.com/1",
				Adref:             "abc",
				Category:          &models.Category{Tag: "it-jobs", Label: "IT Jobs"},
				Latitude:          51.5,
				Longitude:         -0.12,
				ID:                "1",
				SalaryIsPredicted: "1",
			},
		},
		{
			name: "sparse",
			job:  models.JobRecord{ID: "2", Title: "Porter"},
		},
		{
			name: "location without area",
			job: models.JobRecord{
				ID:       "3",
				Location: &models.Location{DisplayName: "Remote"},
			},
		},
		{
			name: "category without label",
			job: models.JobRecord{
				ID:       "4",
				Category: &models.Category{Tag: "teaching-jobs"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.job, newJobRow(tt.job).record())
		})
	}
}

func TestNewJobRow_Flattens(t *testing.T) {
	row := newJobRow(models.JobRecord{
		ID:       "1",
		Company:  &models.Company{DisplayName: "Acme"},
		Location: &models.Location{Area: []string{"UK"}},
		Category: &models.Category{Tag: "it-jobs", Label: "IT Jobs"},
	})

	assert.Equal(t, "Acme", row.Company)
	assert.Equal(t, pq.StringArray{"UK"}, row.Area)
	assert.Equal(t, "it-jobs", row.CategoryTag)
	assert.Equal(t, "IT Jobs", row.CategoryLabel)
	assert.Nil(t, newJobRow(models.JobRecord{ID: "2"}).Area)
}

func TestOrderRows(t *testing.T) {
	rows := []jobRow{{ID: "b"}, {ID: "a"}, {ID: "c"}}

	got := orderRows(rows, []string{"c", "missing", "a", "b"})

	ids := make([]string, 0, len(got))
	for _, job := range got {
		ids = append(ids, job.ID)
	}
	assert.Equal(t, []string{"c", "a", "b"}, ids)
}
