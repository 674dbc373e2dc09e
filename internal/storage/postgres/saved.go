package postgres

import (
	"context"
	"fmt"

	"jobplanner/internal/models"

	"github.com/gocraft/dbr/v2"
	"go.uber.org/zap"
)

// SaveJob bookmarks a job for a user. It reports false when the job was
// already saved. The job must exist in the jobs table.
func (s *Store) SaveJob(ctx context.Context, userID int64, jobID string) (bool, error) {
	query := `
		INSERT INTO saved_jobs (user_id, job_id, saved_at)
		VALUES (?, ?, NOW())
		ON CONFLICT (user_id, job_id) DO NOTHING
	`

	result, err := s.sess.
		InsertBySql(query, userID, jobID).
		ExecContext(ctx)

	if err != nil {
		s.logger.Error("failed to save job",
			zap.Int64("user_id", userID),
			zap.String("job_id", jobID),
			zap.Error(err),
		)
		return false, fmt.Errorf("save job: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	return rowsAffected > 0, nil
}

func (s *Store) RemoveSavedJob(ctx context.Context, userID int64, jobID string) (bool, error) {
	result, err := s.sess.
		DeleteFrom("saved_jobs").
		Where("user_id = ? AND job_id = ?", userID, jobID).
		ExecContext(ctx)

	if err != nil {
		s.logger.Error("failed to remove saved job",
			zap.Int64("user_id", userID),
			zap.String("job_id", jobID),
			zap.Error(err),
		)
		return false, fmt.Errorf("remove saved job: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	return rowsAffected > 0, nil
}

// ListSavedJobs returns the user's saved jobs, oldest first.
func (s *Store) ListSavedJobs(ctx context.Context, userID int64) ([]models.JobRecord, error) {
	var rows []jobRow

	cols := make([]string, len(jobColumns))
	for i, c := range jobColumns {
		cols[i] = "j." + c
	}

	_, err := s.sess.
		Select(cols...).
		From(dbr.I("jobs").As("j")).
		Join(dbr.I("saved_jobs").As("sj"), "sj.job_id = j.id").
		Where("sj.user_id = ?", userID).
		OrderBy("sj.saved_at").
		LoadContext(ctx, &rows)

	if err != nil {
		s.logger.Error("failed to list saved jobs",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("list saved jobs: %w", err)
	}

	jobs := make([]models.JobRecord, 0, len(rows))
	for _, row := range rows {
		jobs = append(jobs, row.record())
	}
	return jobs, nil
}

func (s *Store) IsJobSaved(ctx context.Context, userID int64, jobID string) (bool, error) {
	var count int

	err := s.sess.
		Select("COUNT(*)").
		From("saved_jobs").
		Where("user_id = ? AND job_id = ?", userID, jobID).
		LoadOneContext(ctx, &count)

	if err != nil {
		s.logger.Error("failed to check saved job",
			zap.Int64("user_id", userID),
			zap.String("job_id", jobID),
			zap.Error(err),
		)
		return false, fmt.Errorf("is job saved: %w", err)
	}

	return count > 0, nil
}

func (s *Store) CountSavedJobs(ctx context.Context, userID int64) (int, error) {
	var count int

	err := s.sess.
		Select("COUNT(*)").
		From("saved_jobs").
		Where("user_id = ?", userID).
		LoadOneContext(ctx, &count)

	if err != nil {
		s.logger.Error("failed to count saved jobs",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		return 0, fmt.Errorf("count saved jobs: %w", err)
	}

	return count, nil
}

func (s *Store) ClearSavedJobs(ctx context.Context, userID int64) (int64, error) {
	result, err := s.sess.
		DeleteFrom("saved_jobs").
		Where("user_id = ?", userID).
		ExecContext(ctx)

	if err != nil {
		s.logger.Error("failed to clear saved jobs",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		return 0, fmt.Errorf("clear saved jobs: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()

	s.logger.Info("saved jobs cleared",
		zap.Int64("user_id", userID),
		zap.Int64("count", rowsAffected),
	)

	return rowsAffected, nil
}
