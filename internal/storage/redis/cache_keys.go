package redis

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Keys are namespaced per Telegram user.

const (
	RateLimitWindowTTL = 1 * time.Minute
	UserStateCacheTTL  = 30 * time.Minute
	ResultsCacheTTL    = 30 * time.Minute
	PageMessagesTTL    = 15 * time.Minute
)

func RateLimitKey(userID int64) string {
	return fmt.Sprintf("ratelimit:user:%d", userID)
}

func UserStateKey(userID int64) string {
	return fmt.Sprintf("state:user:%d", userID)
}

func ResultsKey(userID int64) string {
	return fmt.Sprintf("results:user:%d", userID)
}

func PageMessagesKey(userID int64) string {
	return fmt.Sprintf("pages:user:%d", userID)
}

func (c *Cache) IncrementUserRateLimit(ctx context.Context, userID int64) (int64, error) {
	return c.IncrementWithExpiry(ctx, RateLimitKey(userID), RateLimitWindowTTL)
}

func (c *Cache) SetUserState(ctx context.Context, userID int64, state string) error {
	return c.SetString(ctx, UserStateKey(userID), state, UserStateCacheTTL)
}

// GetUserState returns "" when the user has no pending conversation.
func (c *Cache) GetUserState(ctx context.Context, userID int64) (string, error) {
	state, err := c.GetString(ctx, UserStateKey(userID))
	if errors.Is(err, ErrCacheMiss) {
		return "", nil
	}
	return state, err
}

func (c *Cache) DeleteUserState(ctx context.Context, userID int64) error {
	return c.Delete(ctx, UserStateKey(userID))
}

// SetResults remembers the IDs of the user's last filter run for paging.
func (c *Cache) SetResults(ctx context.Context, userID int64, jobIDs []string) error {
	return c.Set(ctx, ResultsKey(userID), jobIDs, ResultsCacheTTL)
}

// GetResults returns ErrCacheMiss once the results have expired.
func (c *Cache) GetResults(ctx context.Context, userID int64) ([]string, error) {
	var jobIDs []string
	if err := c.Get(ctx, ResultsKey(userID), &jobIDs); err != nil {
		return nil, err
	}
	return jobIDs, nil
}

func (c *Cache) DeleteResults(ctx context.Context, userID int64) error {
	return c.Delete(ctx, ResultsKey(userID))
}

// SetPageMessages remembers the chat messages of the page currently shown,
// so they can be removed when another page replaces it.
func (c *Cache) SetPageMessages(ctx context.Context, userID int64, messageIDs []int) error {
	return c.Set(ctx, PageMessagesKey(userID), messageIDs, PageMessagesTTL)
}

// PopPageMessages returns and forgets the remembered page messages.
func (c *Cache) PopPageMessages(ctx context.Context, userID int64) ([]int, error) {
	var messageIDs []int
	if err := c.Take(ctx, PageMessagesKey(userID), &messageIDs); err != nil {
		return nil, err
	}
	return messageIDs, nil
}
