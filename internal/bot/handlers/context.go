package handlers

import (
	"context"
	"time"

	"jobplanner/internal/catalog"
	"jobplanner/internal/config"
	"jobplanner/internal/storage/postgres"
	"jobplanner/internal/storage/redis"

	"go.uber.org/zap"
)

const (
	dbTimeout    = 10 * time.Second
	cacheTimeout = 5 * time.Second
)

// Context contains deps for all handlers
type Context struct {
	Store   *postgres.Store
	Cache   *redis.Cache
	Catalog *catalog.Catalog
	Config  *config.Config
	Logger  *zap.Logger

	// Now resolves date windows; time.Now when nil.
	Now func() time.Time
}

func (ctx *Context) now() time.Time {
	if ctx.Now != nil {
		return ctx.Now()
	}
	return time.Now()
}

func dbContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), dbTimeout)
}

func cacheContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), cacheTimeout)
}
