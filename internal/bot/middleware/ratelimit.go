package middleware

import (
	"context"
	"fmt"
	"time"

	"jobplanner/internal/storage/redis"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// RateCounter counts a user's requests in the current window.
type RateCounter interface {
	IncrementUserRateLimit(ctx context.Context, userID int64) (int64, error)
}

var _ RateCounter = (*redis.Cache)(nil)

// RateLimit rejects updates from users exceeding limit requests per minute.
// Counter failures let the update through.
func RateLimit(counter RateCounter, limit int, logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			user := c.Sender()
			if user == nil {
				return next(c)
			}

			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()

			count, err := counter.IncrementUserRateLimit(ctx, user.ID)
			if err != nil {
				logger.Error("failed to check rate limit",
					zap.Int64("user_id", user.ID),
					zap.Error(err),
				)
				return next(c)
			}

			if count > int64(limit) {
				logger.Warn("rate limit exceeded",
					zap.Int64("user_id", user.ID),
					zap.Int64("count", count),
				)

				// Only the first rejected update in a window gets a reply.
				if count > int64(limit)+1 {
					return nil
				}

				return c.Reply(fmt.Sprintf(
					"⚠️ Too many requests. Please wait a minute.\n"+
						"Limit: %d requests per minute.",
					limit,
				))
			}

			return next(c)
		}
	}
}
