package catalog

import (
	"sync"
	"time"

	"jobplanner/internal/models"

	"go.uber.org/zap"
)

const DefaultPath = "data/jobpostings.json"

// Catalog holds the records of the most recent successful load. Reload
// replaces the record slice wholesale, so slices returned by Jobs stay
// valid and unchanged.
type Catalog struct {
	path   string
	logger *zap.Logger

	mu       sync.RWMutex
	jobs     []models.JobRecord
	index    map[string]int
	loadedAt time.Time
}

func New(path string, logger *zap.Logger) *Catalog {
	if path == "" {
		path = DefaultPath
	}
	return &Catalog{
		path:   path,
		logger: logger,
		index:  map[string]int{},
	}
}

// Reload reads the catalog file again. On failure the previous records
// are kept.
func (c *Catalog) Reload() (int, error) {
	jobs, err := Load(c.path)
	if err != nil {
		c.logger.Error("failed to load catalog",
			zap.String("path", c.path),
			zap.Error(err),
		)
		return 0, err
	}

	index := models.IndexByID(jobs)
	if len(index) != len(jobs) {
		c.logger.Warn("catalog contains duplicate ids",
			zap.String("path", c.path),
			zap.Int("records", len(jobs)),
			zap.Int("unique", len(index)),
		)
	}

	c.mu.Lock()
	c.jobs = jobs
	c.index = index
	c.loadedAt = time.Now()
	c.mu.Unlock()

	c.logger.Info("catalog loaded",
		zap.String("path", c.path),
		zap.Int("records", len(jobs)),
	)

	return len(jobs), nil
}

// Jobs returns the current records. Callers must not modify the slice.
func (c *Catalog) Jobs() []models.JobRecord {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.jobs
}

func (c *Catalog) Get(id string) (models.JobRecord, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	i, ok := c.index[id]
	if !ok {
		return models.JobRecord{}, false
	}
	return c.jobs[i], true
}

// Lookup returns the records for ids in the given order, skipping ids
// that are not in the catalog.
func (c *Catalog) Lookup(ids []string) []models.JobRecord {
	c.mu.RLock()
	defer c.mu.RUnlock()

	jobs := make([]models.JobRecord, 0, len(ids))
	for _, id := range ids {
		if i, ok := c.index[id]; ok {
			jobs = append(jobs, c.jobs[i])
		}
	}
	return jobs
}

func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.jobs)
}

func (c *Catalog) Path() string {
	return c.path
}

func (c *Catalog) LoadedAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loadedAt
}
