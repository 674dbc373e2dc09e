package savedjobs

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"jobplanner/internal/catalog"
	"jobplanner/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func job(id, title string) models.JobRecord {
	return models.JobRecord{
		ID:        id,
		Title:     title,
		Company:   &models.Company{DisplayName: "Acme"},
		Location:  &models.Location{DisplayName: "Leeds", Area: []string{"UK", "Leeds"}},
		SalaryMin: 30000,
		SalaryMax: 35000,
	}
}

func newStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data", "savedJobs.json")
	s, err := Load(path, zap.NewNop())
	require.NoError(t, err)
	return s, path
}

func TestLoad_MissingFile(t *testing.T) {
	s, path := newStore(t)

	assert.Zero(t, s.Count())
	assert.Empty(t, s.Jobs())
	assert.True(t, s.LastSaved().IsZero())
	assert.NoFileExists(t, path)
}

func TestStore_AddPersists(t *testing.T) {
	s, path := newStore(t)

	added, err := s.Add(job("1", "Welder"))
	require.NoError(t, err)
	assert.True(t, added)

	added, err = s.Add(job("1", "Welder again"))
	require.NoError(t, err)
	assert.False(t, added)

	_, err = s.Add(job("2", "Plumber"))
	require.NoError(t, err)

	assert.Equal(t, 2, s.Count())
	assert.False(t, s.LastSaved().IsZero())

	onDisk, err := catalog.Load(path)
	require.NoError(t, err)
	assert.Equal(t, s.Jobs(), onDisk)
	assert.Equal(t, "Welder", onDisk[0].Title)
}

func TestStore_ReloadFromDisk(t *testing.T) {
	s, path := newStore(t)
	_, err := s.Add(job("1", "Welder"))
	require.NoError(t, err)
	_, err = s.Add(job("2", "Plumber"))
	require.NoError(t, err)

	reloaded, err := Load(path, zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, s.Jobs(), reloaded.Jobs())
	assert.True(t, reloaded.Contains("2"))
	assert.False(t, reloaded.LastSaved().IsZero())
}

func TestStore_Remove(t *testing.T) {
	s, path := newStore(t)
	require.NoError(t, s.Set([]models.JobRecord{job("1", "a"), job("2", "b"), job("3", "c")}))

	removed, err := s.Remove("2")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = s.Remove("2")
	require.NoError(t, err)
	assert.False(t, removed)

	onDisk, err := catalog.Load(path)
	require.NoError(t, err)
	require.Len(t, onDisk, 2)
	assert.Equal(t, "1", onDisk[0].ID)
	assert.Equal(t, "3", onDisk[1].ID)
}

func TestStore_SetDropsDuplicates(t *testing.T) {
	s, _ := newStore(t)

	require.NoError(t, s.Set([]models.JobRecord{job("1", "first"), job("1", "second"), job("2", "b")}))

	jobs := s.Jobs()
	require.Len(t, jobs, 2)
	assert.Equal(t, "first", jobs[0].Title)
}

func TestStore_Clear(t *testing.T) {
	s, path := newStore(t)
	_, err := s.Add(job("1", "a"))
	require.NoError(t, err)

	require.NoError(t, s.Clear())

	assert.Zero(t, s.Count())
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(data))
}

func TestStore_JobsReturnsCopy(t *testing.T) {
	s, _ := newStore(t)
	_, err := s.Add(job("1", "a"))
	require.NoError(t, err)

	jobs := s.Jobs()
	jobs[0].Title = "changed"

	assert.Equal(t, "a", s.Jobs()[0].Title)
}

func TestLoad_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "savedJobs.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := Load(path, zap.NewNop())
	assert.Error(t, err)
}

func TestStore_ConcurrentAdd(t *testing.T) {
	s, _ := newStore(t)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Add(job("same", "dup"))
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, s.Count())
}

// blockDir replaces the directory holding path with a regular file so the
// next write fails.
func blockDir(t *testing.T, path string) {
	t.Helper()
	dir := filepath.Dir(path)
	require.NoError(t, os.RemoveAll(dir))
	require.NoError(t, os.WriteFile(dir, []byte("not a directory"), 0o644))
}

func TestStore_FailedWriteLeavesListUnchanged(t *testing.T) {
	s, path := newStore(t)

	_, err := s.Add(job("1", "Welder"))
	require.NoError(t, err)

	blockDir(t, path)

	added, err := s.Add(job("2", "Plumber"))
	assert.Error(t, err)
	assert.True(t, added)
	assert.False(t, s.Contains("2"))

	removed, err := s.Remove("1")
	assert.Error(t, err)
	assert.True(t, removed)
	assert.True(t, s.Contains("1"))

	assert.Error(t, s.Set([]models.JobRecord{job("3", "Chef")}))
	assert.Equal(t, []models.JobRecord{job("1", "Welder")}, s.Jobs())
}
