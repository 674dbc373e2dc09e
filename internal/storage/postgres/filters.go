package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"jobplanner/internal/models"

	"go.uber.org/zap"
)

var ErrFilterNotFound = errors.New("filter not found")

const upsertFilterSQL = `
	INSERT INTO user_filters (user_id, filter_type, filter_value)
	VALUES (?, ?, ?)
	ON CONFLICT (user_id, filter_type)
	DO UPDATE SET filter_value = EXCLUDED.filter_value, created_at = NOW()
	RETURNING id, created_at
`

func checkFilterType(filterType string) error {
	if !models.IsValidFilterType(filterType) {
		return fmt.Errorf("unknown filter type %q", filterType)
	}
	return nil
}

// SaveFilter stores one criterion, replacing the user's previous value of
// the same type. ID and CreatedAt are filled in from the stored row.
func (s *Store) SaveFilter(ctx context.Context, f *models.UserFilter) error {
	if err := checkFilterType(f.FilterType); err != nil {
		return fmt.Errorf("save filter: %w", err)
	}

	row := struct {
		ID        int64     `db:"id"`
		CreatedAt time.Time `db:"created_at"`
	}{}
	err := s.sess.
		SelectBySql(upsertFilterSQL, f.UserID, f.FilterType, f.FilterValue).
		LoadOneContext(ctx, &row)
	if err != nil {
		s.logger.Error("failed to save filter",
			zap.Int64("user_id", f.UserID),
			zap.String("filter_type", f.FilterType),
			zap.Error(err),
		)
		return fmt.Errorf("save filter: %w", err)
	}

	f.ID, f.CreatedAt = row.ID, row.CreatedAt

	s.logger.Debug("filter saved",
		zap.Int64("user_id", f.UserID),
		zap.String("filter_type", f.FilterType),
		zap.String("filter_value", f.FilterValue),
	)
	return nil
}

// UpdateFilters sets and removes several criteria in one transaction, so
// related bounds such as salary_min and salary_max change together.
func (s *Store) UpdateFilters(ctx context.Context, userID int64, set map[string]string, unset ...string) error {
	for filterType := range set {
		if err := checkFilterType(filterType); err != nil {
			return fmt.Errorf("update filters: %w", err)
		}
	}

	tx, err := s.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("update filters: begin: %w", err)
	}
	defer tx.RollbackUnlessCommitted()

	for filterType, value := range set {
		if _, err := tx.InsertBySql(upsertFilterSQL, userID, filterType, value).ExecContext(ctx); err != nil {
			s.logger.Error("failed to set filter in batch",
				zap.Int64("user_id", userID),
				zap.String("filter_type", filterType),
				zap.Error(err),
			)
			return fmt.Errorf("update filters: set %s: %w", filterType, err)
		}
	}

	if len(unset) > 0 {
		_, err := tx.DeleteFrom("user_filters").
			Where("user_id = ?", userID).
			Where("filter_type IN ?", unset).
			ExecContext(ctx)
		if err != nil {
			s.logger.Error("failed to unset filters", zap.Int64("user_id", userID), zap.Error(err))
			return fmt.Errorf("update filters: unset: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("update filters: commit: %w", err)
	}

	s.logger.Debug("filters updated",
		zap.Int64("user_id", userID),
		zap.Int("set", len(set)),
		zap.Strings("unset", unset),
	)
	return nil
}

// GetUserFilters returns the user's criteria ordered by type.
func (s *Store) GetUserFilters(ctx context.Context, userID int64) ([]models.UserFilter, error) {
	var filters []models.UserFilter

	_, err := s.sess.
		Select("id", "user_id", "filter_type", "filter_value", "created_at").
		From("user_filters").
		Where("user_id = ?", userID).
		OrderBy("filter_type").
		LoadContext(ctx, &filters)
	if err != nil {
		s.logger.Error("failed to load filters", zap.Int64("user_id", userID), zap.Error(err))
		return nil, fmt.Errorf("get user filters: %w", err)
	}

	return filters, nil
}

// GetFiltersMap returns the user's criteria keyed by filter type. A user
// with no criteria gets an empty, non-nil map.
func (s *Store) GetFiltersMap(ctx context.Context, userID int64) (map[string]string, error) {
	filters, err := s.GetUserFilters(ctx, userID)
	if err != nil {
		return nil, err
	}

	byType := make(map[string]string, len(filters))
	for _, f := range filters {
		byType[f.FilterType] = f.FilterValue
	}
	return byType, nil
}

// DeleteFilter returns ErrFilterNotFound when the user had no such filter.
func (s *Store) DeleteFilter(ctx context.Context, userID int64, filterType string) error {
	result, err := s.sess.
		DeleteFrom("user_filters").
		Where("user_id = ? AND filter_type = ?", userID, filterType).
		ExecContext(ctx)
	if err != nil {
		s.logger.Error("failed to delete filter",
			zap.Int64("user_id", userID),
			zap.String("filter_type", filterType),
			zap.Error(err),
		)
		return fmt.Errorf("delete filter: %w", err)
	}

	if n, _ := result.RowsAffected(); n == 0 {
		return ErrFilterNotFound
	}
	return nil
}

// ClearUserFilters removes every criterion of the user and reports how
// many were removed.
func (s *Store) ClearUserFilters(ctx context.Context, userID int64) (int64, error) {
	result, err := s.sess.
		DeleteFrom("user_filters").
		Where("user_id = ?", userID).
		ExecContext(ctx)
	if err != nil {
		s.logger.Error("failed to clear filters", zap.Int64("user_id", userID), zap.Error(err))
		return 0, fmt.Errorf("clear user filters: %w", err)
	}

	n, _ := result.RowsAffected()
	s.logger.Info("filters cleared", zap.Int64("user_id", userID), zap.Int64("count", n))
	return n, nil
}

func (s *Store) HasFilters(ctx context.Context, userID int64) (bool, error) {
	var exists bool

	err := s.sess.
		SelectBySql("SELECT EXISTS (SELECT 1 FROM user_filters WHERE user_id = ?)", userID).
		LoadOneContext(ctx, &exists)
	if err != nil {
		s.logger.Error("failed to check filters", zap.Int64("user_id", userID), zap.Error(err))
		return false, fmt.Errorf("has filters: %w", err)
	}

	return exists, nil
}
