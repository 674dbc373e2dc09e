package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"jobplanner/internal/models"

	"github.com/gocraft/dbr/v2"
	"go.uber.org/zap"
)

var userColumns = []string{"id", "username", "first_name", "last_name", "created_at"}

// CreateUser inserts a Telegram user. A zero CreatedAt is set to now.
func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	_, err := s.sess.
		InsertInto("users").
		Columns(userColumns...).
		Record(user).
		ExecContext(ctx)
	if err != nil {
		s.logger.Error("failed to create user", zap.Int64("user_id", user.ID), zap.Error(err))
		return fmt.Errorf("create user %d: %w", user.ID, err)
	}

	s.logger.Info("new user registered",
		zap.Int64("user_id", user.ID),
		zap.Stringp("username", user.Username),
	)
	return nil
}

// GetUser returns nil, nil when the user does not exist.
func (s *Store) GetUser(ctx context.Context, userID int64) (*models.User, error) {
	var user models.User

	err := s.sess.
		Select(userColumns...).
		From("users").
		Where("id = ?", userID).
		LoadOneContext(ctx, &user)
	switch {
	case errors.Is(err, dbr.ErrNotFound):
		return nil, nil
	case err != nil:
		s.logger.Error("failed to get user", zap.Int64("user_id", userID), zap.Error(err))
		return nil, fmt.Errorf("get user %d: %w", userID, err)
	}

	return &user, nil
}

// GetOrCreateUser returns the stored user, registering user first when it
// is new. Stored profile fields are returned as they are; callers refresh
// them with UpdateUser.
func (s *Store) GetOrCreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	existing, err := s.GetUser(ctx, user.ID)
	if err != nil || existing != nil {
		return existing, err
	}

	if err := s.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateUser overwrites the profile fields Telegram reports for the user.
func (s *Store) UpdateUser(ctx context.Context, user *models.User) error {
	_, err := s.sess.
		Update("users").
		SetMap(map[string]interface{}{
			"username":   user.Username,
			"first_name": user.FirstName,
			"last_name":  user.LastName,
		}).
		Where("id = ?", user.ID).
		ExecContext(ctx)
	if err != nil {
		s.logger.Error("failed to update user", zap.Int64("user_id", user.ID), zap.Error(err))
		return fmt.Errorf("update user %d: %w", user.ID, err)
	}

	s.logger.Debug("user profile refreshed", zap.Int64("user_id", user.ID))
	return nil
}
