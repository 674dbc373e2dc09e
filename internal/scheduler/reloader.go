// Package scheduler keeps the in-memory catalog and its PostgreSQL mirror
// in step with the catalog file.
package scheduler

import (
	"context"
	"time"

	"jobplanner/internal/models"

	"go.uber.org/zap"
)

const (
	mirrorTimeout   = 2 * time.Minute
	defaultInterval = 10 * time.Minute
)

// Source is the catalog being refreshed.
type Source interface {
	Reload() (int, error)
	Jobs() []models.JobRecord
}

// Mirror receives every successfully loaded record set. Postings dropped
// from the file stay in the mirror while saved jobs reference them.
type Mirror interface {
	UpsertJobs(ctx context.Context, jobs []models.JobRecord) (int, error)
	CountJobs(ctx context.Context) (int, error)
}

type Reloader struct {
	source   Source
	mirror   Mirror
	interval time.Duration
	logger   *zap.Logger
}

// New returns a reloader; a nil mirror only refreshes the catalog.
func New(source Source, mirror Mirror, interval time.Duration, logger *zap.Logger) *Reloader {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Reloader{
		source:   source,
		mirror:   mirror,
		interval: interval,
		logger:   logger,
	}
}

// Start runs one reload immediately, then one per interval until ctx is
// cancelled.
func (r *Reloader) Start(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.logger.Info("catalog reloader started", zap.Duration("interval", r.interval))

	r.RunOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("catalog reloader stopped")
			return
		case <-ticker.C:
			r.RunOnce(ctx)
		}
	}
}

// RunOnce reloads the catalog and mirrors it. A failed reload leaves both
// the catalog and the mirror untouched.
func (r *Reloader) RunOnce(ctx context.Context) error {
	start := time.Now()

	count, err := r.source.Reload()
	if err != nil {
		r.logger.Error("catalog reload failed", zap.Error(err))
		return err
	}

	if r.mirror != nil {
		dbCtx, cancel := context.WithTimeout(ctx, mirrorTimeout)
		defer cancel()

		mirrored, err := r.mirror.UpsertJobs(dbCtx, r.source.Jobs())
		if err != nil {
			r.logger.Error("failed to mirror catalog", zap.Int("jobs", count), zap.Error(err))
			return err
		}

		stored, err := r.mirror.CountJobs(dbCtx)
		if err != nil {
			r.logger.Warn("failed to count mirrored jobs", zap.Error(err))
		}

		r.logger.Info("catalog mirrored", zap.Int("jobs", mirrored), zap.Int("stored", stored))
	}

	r.logger.Info("catalog reloaded",
		zap.Int("jobs", count),
		zap.Duration("duration", time.Since(start)),
	)

	return nil
}
