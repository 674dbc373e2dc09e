package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"jobplanner/internal/models"

	"github.com/gocraft/dbr/v2"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

// jobRow is the flattened jobs table row.
type jobRow struct {
	ID                string         `db:"id"`
	Title             string         `db:"title"`
	Description       string         `db:"description"`
	Company           string         `db:"company"`
	Location          string         `db:"location"`
	Area              pq.StringArray `db:"area"`
	SalaryMin         float64        `db:"salary_min"`
	SalaryMax         float64        `db:"salary_max"`
	ContractTime      string         `db:"contract_time"`
	Created           string         `db:"created"`
	RedirectURL       string         `db:"redirect_url"`
	Adref             string         `db:"adref"`
	CategoryTag       string         `db:"category_tag"`
	CategoryLabel     string         `db:"category_label"`
	Latitude          float64        `db:"latitude"`
	Longitude         float64        `db:"longitude"`
	SalaryIsPredicted string         `db:"salary_is_predicted"`
	UpdatedAt         time.Time      `db:"updated_at"`
}

var jobColumns = []string{
	"id", "title", "description", "company", "location", "area",
	"salary_min", "salary_max", "contract_time", "created", "redirect_url",
	"adref", "category_tag", "category_label", "latitude", "longitude",
	"salary_is_predicted", "updated_at",
}

func newJobRow(job models.JobRecord) jobRow {
	row := jobRow{
		ID:                job.ID,
		Title:             job.Title,
		Description:       job.Description,
		Company:           job.CompanyName(),
		Location:          job.LocationName(),
		SalaryMin:         job.SalaryMin,
		SalaryMax:         job.SalaryMax,
		ContractTime:      job.ContractTime,
		Created:           job.Created,
		RedirectURL:       job.RedirectURL,
		Adref:             job.Adref,
		Latitude:          job.Latitude,
		Longitude:         job.Longitude,
		SalaryIsPredicted: job.SalaryIsPredicted,
	}
	if areas := job.Areas(); len(areas) > 0 {
		row.Area = pq.StringArray(areas)
	}
	if job.Category != nil {
		row.CategoryTag = job.Category.Tag
		row.CategoryLabel = job.Category.Label
	}
	return row
}

// record rebuilds the nested record; empty nested values stay nil.
func (r jobRow) record() models.JobRecord {
	job := models.JobRecord{
		Title:             r.Title,
		Description:       r.Description,
		SalaryMin:         r.SalaryMin,
		SalaryMax:         r.SalaryMax,
		ContractTime:      r.ContractTime,
		Created:           r.Created,
		RedirectURL:       r.RedirectURL,
		Adref:             r.Adref,
		Latitude:          r.Latitude,
		Longitude:         r.Longitude,
		ID:                r.ID,
		SalaryIsPredicted: r.SalaryIsPredicted,
	}
	if r.Company != "" {
		job.Company = &models.Company{DisplayName: r.Company}
	}
	if r.Location != "" || len(r.Area) > 0 {
		job.Location = &models.Location{DisplayName: r.Location}
		if len(r.Area) > 0 {
			job.Location.Area = []string(r.Area)
		}
	}
	if r.CategoryTag != "" || r.CategoryLabel != "" {
		job.Category = &models.Category{Tag: r.CategoryTag, Label: r.CategoryLabel}
	}
	return job
}

// UpsertJobs mirrors catalog records into the jobs table in one
// transaction. Records without an ID are skipped.
func (s *Store) UpsertJobs(ctx context.Context, jobs []models.JobRecord) (int, error) {
	tx, err := s.BeginTx(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.RollbackUnlessCommitted()

	query := `
		INSERT INTO jobs (` + strings.Join(jobColumns, ", ") + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NOW())
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			company = EXCLUDED.company,
			location = EXCLUDED.location,
			area = EXCLUDED.area,
			salary_min = EXCLUDED.salary_min,
			salary_max = EXCLUDED.salary_max,
			contract_time = EXCLUDED.contract_time,
			created = EXCLUDED.created,
			redirect_url = EXCLUDED.redirect_url,
			adref = EXCLUDED.adref,
			category_tag = EXCLUDED.category_tag,
			category_label = EXCLUDED.category_label,
			latitude = EXCLUDED.latitude,
			longitude = EXCLUDED.longitude,
			salary_is_predicted = EXCLUDED.salary_is_predicted,
			updated_at = NOW()
	`

	count := 0
	for _, job := range jobs {
		if job.ID == "" {
			continue
		}
		row := newJobRow(job)
		_, err := tx.InsertBySql(query,
			row.ID,
			row.Title,
			row.Description,
			row.Company,
			row.Location,
			row.Area,
			row.SalaryMin,
			row.SalaryMax,
			row.ContractTime,
			row.Created,
			row.RedirectURL,
			row.Adref,
			row.CategoryTag,
			row.CategoryLabel,
			row.Latitude,
			row.Longitude,
			row.SalaryIsPredicted,
		).ExecContext(ctx)
		if err != nil {
			s.logger.Error("failed to upsert job",
				zap.String("job_id", job.ID),
				zap.Error(err),
			)
			return 0, fmt.Errorf("upsert job %s: %w", job.ID, err)
		}
		count++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit jobs: %w", err)
	}

	s.logger.Info("jobs upserted", zap.Int("count", count))
	return count, nil
}

func (s *Store) GetJob(ctx context.Context, jobID string) (*models.JobRecord, error) {
	var row jobRow

	err := s.sess.
		Select(jobColumns...).
		From("jobs").
		Where("id = ?", jobID).
		LoadOneContext(ctx, &row)

	if errors.Is(err, dbr.ErrNotFound) {
		return nil, nil
	}

	if err != nil {
		s.logger.Error("failed to get job",
			zap.String("job_id", jobID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("get job: %w", err)
	}

	job := row.record()
	return &job, nil
}

// GetJobsByIDs returns the stored jobs among jobIDs, in jobIDs order.
func (s *Store) GetJobsByIDs(ctx context.Context, jobIDs []string) ([]models.JobRecord, error) {
	if len(jobIDs) == 0 {
		return []models.JobRecord{}, nil
	}

	var rows []jobRow

	_, err := s.sess.
		Select(jobColumns...).
		From("jobs").
		Where("id = ANY(?)", pq.Array(jobIDs)).
		LoadContext(ctx, &rows)

	if err != nil {
		s.logger.Error("failed to get jobs by IDs",
			zap.Int("count", len(jobIDs)),
			zap.Error(err),
		)
		return nil, fmt.Errorf("get jobs by IDs: %w", err)
	}

	return orderRows(rows, jobIDs), nil
}

func (s *Store) CountJobs(ctx context.Context) (int, error) {
	var count int

	err := s.sess.
		Select("COUNT(*)").
		From("jobs").
		LoadOneContext(ctx, &count)

	if err != nil {
		s.logger.Error("failed to count jobs", zap.Error(err))
		return 0, fmt.Errorf("count jobs: %w", err)
	}

	return count, nil
}

func orderRows(rows []jobRow, ids []string) []models.JobRecord {
	byID := make(map[string]jobRow, len(rows))
	for _, row := range rows {
		byID[row.ID] = row
	}

	jobs := make([]models.JobRecord, 0, len(rows))
	for _, id := range ids {
		if row, ok := byID[id]; ok {
			jobs = append(jobs, row.record())
		}
	}
	return jobs
}
