// Package savedjobs keeps the user's saved postings in a JSON file.
package savedjobs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"jobplanner/internal/catalog"
	"jobplanner/internal/formatter"
	"jobplanner/internal/models"

	"go.uber.org/zap"
)

const DefaultPath = "data/savedJobs.json"

// Store is a file-backed, ordered list of saved jobs, unique by ID. Every
// mutation is written back to disk before it returns.
type Store struct {
	path   string
	logger *zap.Logger

	mu        sync.Mutex
	jobs      []models.JobRecord
	ids       map[string]struct{}
	lastSaved time.Time
}

// Load opens the saved-jobs file at path. A missing file yields an empty
// store; it is created on the first mutation.
func Load(path string, logger *zap.Logger) (*Store, error) {
	if path == "" {
		path = DefaultPath
	}
	s := &Store{
		path:   path,
		logger: logger,
		ids:    map[string]struct{}{},
	}

	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		logger.Debug("no saved jobs file yet", zap.String("path", path))
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("stat saved jobs: %w", err)
	}

	jobs, err := catalog.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load saved jobs: %w", err)
	}
	s.replace(jobs)
	s.lastSaved = info.ModTime()

	logger.Info("saved jobs loaded",
		zap.String("path", path),
		zap.Int("count", len(s.jobs)),
	)
	return s, nil
}

func (s *Store) Path() string {
	return s.path
}

// LastSaved is the time of the last write, or the file's modification time
// right after Load. It is zero when nothing has been written yet.
func (s *Store) LastSaved() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSaved
}

func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.jobs)
}

func (s *Store) Contains(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.ids[id]
	return ok
}

// Jobs returns a copy of the saved jobs in the order they were added.
func (s *Store) Jobs() []models.JobRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.JobRecord, len(s.jobs))
	copy(out, s.jobs)
	return out
}

// Add appends job unless a job with the same ID is already saved. It
// reports whether the list changed.
func (s *Store) Add(job models.JobRecord) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.ids[job.ID]; ok {
		return false, nil
	}

	next := make([]models.JobRecord, len(s.jobs), len(s.jobs)+1)
	copy(next, s.jobs)
	return true, s.commit(append(next, job))
}

// Remove deletes the job with the given ID and reports whether it was
// saved.
func (s *Store) Remove(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.ids[id]; !ok {
		return false, nil
	}

	kept := make([]models.JobRecord, 0, len(s.jobs)-1)
	for _, job := range s.jobs {
		if job.ID != id {
			kept = append(kept, job)
		}
	}
	return true, s.commit(kept)
}

// Set replaces the saved list. Later duplicates are dropped.
func (s *Store) Set(jobs []models.JobRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.commit(unique(jobs))
}

func (s *Store) Clear() error {
	return s.Set(nil)
}

// Save writes the current list to disk.
func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(s.jobs)
}

// commit writes jobs and makes them the in-memory list only once the
// write succeeded. jobs must hold unique IDs. Callers hold s.mu.
func (s *Store) commit(jobs []models.JobRecord) error {
	if err := s.write(jobs); err != nil {
		return err
	}
	s.replace(jobs)
	return nil
}

func (s *Store) replace(jobs []models.JobRecord) {
	s.jobs = unique(jobs)
	s.ids = make(map[string]struct{}, len(s.jobs))
	for _, job := range s.jobs {
		s.ids[job.ID] = struct{}{}
	}
}

// unique drops later records whose ID was already seen.
func unique(jobs []models.JobRecord) []models.JobRecord {
	seen := make(map[string]struct{}, len(jobs))
	out := make([]models.JobRecord, 0, len(jobs))
	for _, job := range jobs {
		if _, ok := seen[job.ID]; ok {
			continue
		}
		seen[job.ID] = struct{}{}
		out = append(out, job)
	}
	return out
}

// write stores jobs in a temporary file in the same directory and renames
// it over the target. Callers hold s.mu.
func (s *Store) write(jobs []models.JobRecord) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create saved jobs dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := formatter.Write(tmp, jobs, formatter.JSON); err != nil {
		tmp.Close()
		return fmt.Errorf("write saved jobs: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace saved jobs: %w", err)
	}

	s.lastSaved = time.Now()
	s.logger.Debug("saved jobs written",
		zap.String("path", s.path),
		zap.Int("count", len(jobs)),
	)
	return nil
}
