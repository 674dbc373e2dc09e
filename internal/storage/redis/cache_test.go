package redis

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestKeys(t *testing.T) {
	assert.Equal(t, "state:user:42", UserStateKey(42))
	assert.Equal(t, "ratelimit:user:42", RateLimitKey(42))
	assert.Equal(t, "results:user:42", ResultsKey(42))
	assert.Equal(t, "pages:user:42", PageMessagesKey(42))
}

// newTestCache connects to REDIS_TEST_ADDR and skips when it is unset.
func newTestCache(t *testing.T) *Cache {
	t.Helper()

	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set")
	}

	cache, err := New(addr, os.Getenv("REDIS_TEST_PASSWORD"), 0, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { cache.Close() })
	return cache
}

func TestCache_UserState(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()
	userID := time.Now().UnixNano()

	state, err := cache.GetUserState(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, state)

	require.NoError(t, cache.SetUserState(ctx, userID, "awaiting_country"))
	state, err = cache.GetUserState(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "awaiting_country", state)

	require.NoError(t, cache.DeleteUserState(ctx, userID))
	state, err = cache.GetUserState(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, state)
}

func TestCache_Results(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()
	userID := time.Now().UnixNano()
	t.Cleanup(func() { _ = cache.DeleteResults(context.Background(), userID) })

	_, err := cache.GetResults(ctx, userID)
	assert.True(t, errors.Is(err, ErrCacheMiss))

	require.NoError(t, cache.SetResults(ctx, userID, []string{"3", "1", "2"}))
	ids, err := cache.GetResults(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, []string{"3", "1", "2"}, ids)
}

func TestCache_RateLimit(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()
	userID := time.Now().UnixNano()
	t.Cleanup(func() { _ = cache.Delete(context.Background(), RateLimitKey(userID)) })

	for want := int64(1); want <= 3; want++ {
		got, err := cache.IncrementUserRateLimit(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestCache_PageMessages(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()
	userID := time.Now().UnixNano()

	require.NoError(t, cache.SetPageMessages(ctx, userID, []int{10, 11, 12}))

	ids, err := cache.PopPageMessages(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, []int{10, 11, 12}, ids)

	_, err = cache.PopPageMessages(ctx, userID)
	assert.ErrorIs(t, err, ErrCacheMiss)
}
