package backup

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RiPetitor/rCleaner/internal/types"
	"github.com/RiPetitor/rCleaner/internal/utils"
)

func newTestStore(t *testing.T, maxSize uint64) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "backups"), maxSize)
	require.NoError(t, err)

	clock := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	s.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	return s
}

func fileItem(path string) types.CleanupItem {
	return types.NewItem(path, filepath.Base(path), path, 0, types.CategoryTempFiles, types.FileSystemSource())
}

func writeFile(t *testing.T, path string, size int) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, make([]byte, size), 0o644))
}

// seedGeneration writes a generation with only metadata, the way an older
// run would have left it.
func seedGeneration(t *testing.T, s *Store, id string, ts time.Time, size uint64) {
	t.Helper()
	dir := filepath.Join(s.dir, id)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	data, err := json.Marshal(Backup{ID: id, Timestamp: ts, Items: []BackupItem{}, Size: size})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, metadataFile), data, 0o644))
}

func ids(backups []Backup) []string {
	out := make([]string, len(backups))
	for i, b := range backups {
		out[i] = b.ID
	}
	return out
}

func TestCreate_NothingToBackUp(t *testing.T) {
	s := newTestStore(t, 0)

	blocked := fileItem("/tmp/whatever")
	blocked.Block("no")
	pkg := types.NewItem("apt:foo", "foo", "", 10, types.CategoryOldPackages, types.PackageSource("apt"))

	b, err := s.Create([]types.CleanupItem{blocked, pkg})
	require.NoError(t, err)
	assert.Nil(t, b)

	entries, err := os.ReadDir(s.dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestCreate_SingleFileChecksumMatchesSource(t *testing.T) {
	s := newTestStore(t, 0)
	src := filepath.Join(t.TempDir(), "tmp", "x")
	writeFile(t, src, 100)

	b, err := s.Create([]types.CleanupItem{fileItem(src)})
	require.NoError(t, err)
	require.NotNil(t, b)
	require.Len(t, b.Items, 1)

	want, err := utils.HashPath(src)
	require.NoError(t, err)

	item := b.Items[0]
	assert.Equal(t, src, item.OriginalPath)
	assert.Equal(t, uint64(100), item.Size)
	assert.Equal(t, want, item.Checksum)
	assert.Equal(t, uint64(100), b.Size)
	assert.Equal(t, filepath.Join(s.dir, b.ID, sanitizePath(src)), item.BackupPath)

	copied, err := utils.HashPath(item.BackupPath)
	require.NoError(t, err)
	assert.Equal(t, want, copied)
}

func TestCreate_DeduplicatesNestedPaths(t *testing.T) {
	s := newTestStore(t, 0)
	root := filepath.Join(t.TempDir(), "cache")
	writeFile(t, filepath.Join(root, "a", "one"), 10)
	writeFile(t, filepath.Join(root, "b"), 20)
	sibling := root + "-sibling"
	writeFile(t, sibling, 5)

	items := []types.CleanupItem{
		fileItem(filepath.Join(root, "a", "one")),
		fileItem(filepath.Join(root, "b")),
		fileItem(root),
		fileItem(sibling),
		fileItem(root + "/"),
	}

	b, err := s.Create(items)
	require.NoError(t, err)
	require.NotNil(t, b)

	var originals []string
	for _, item := range b.Items {
		originals = append(originals, item.OriginalPath)
	}
	assert.ElementsMatch(t, []string{root, sibling}, originals)
	assert.Equal(t, uint64(35), b.Size)
}

func TestCreate_SkipsMissingSources(t *testing.T) {
	s := newTestStore(t, 0)
	present := filepath.Join(t.TempDir(), "present")
	writeFile(t, present, 3)

	b, err := s.Create([]types.CleanupItem{fileItem(present), fileItem(filepath.Join(t.TempDir(), "gone"))})
	require.NoError(t, err)
	require.NotNil(t, b)
	assert.Len(t, b.Items, 1)
}

func TestCreate_AllSourcesMissingLeavesNoGeneration(t *testing.T) {
	s := newTestStore(t, 0)

	b, err := s.Create([]types.CleanupItem{fileItem(filepath.Join(t.TempDir(), "gone"))})
	require.NoError(t, err)
	assert.Nil(t, b)

	backups, err := s.List()
	require.NoError(t, err)
	assert.Empty(t, backups)
}

func TestCreate_EvictsOldestToMakeRoom(t *testing.T) {
	s := newTestStore(t, 10)
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	seedGeneration(t, s, "backup-old", base, 5)
	seedGeneration(t, s, "backup-mid", base.Add(time.Hour), 5)
	seedGeneration(t, s, "backup-new", base.Add(2*time.Hour), 5)

	src := filepath.Join(t.TempDir(), "incoming")
	writeFile(t, src, 4)

	b, err := s.Create([]types.CleanupItem{fileItem(src)})
	require.NoError(t, err)
	require.NotNil(t, b)

	backups, err := s.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"backup-new", b.ID}, ids(backups))

	total, err := s.TotalSize()
	require.NoError(t, err)
	assert.Equal(t, uint64(9), total)
}

func TestCreate_OverBudgetDeletesNothing(t *testing.T) {
	s := newTestStore(t, 10)
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	seedGeneration(t, s, "backup-a", base, 5)
	seedGeneration(t, s, "backup-b", base.Add(time.Minute), 5)

	src := filepath.Join(t.TempDir(), "huge")
	writeFile(t, src, 11)

	b, err := s.Create([]types.CleanupItem{fileItem(src)})
	assert.Nil(t, b)
	assert.ErrorIs(t, err, types.ErrBackup)

	backups, err := s.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"backup-a", "backup-b"}, ids(backups))
}

func TestEnsureCapacity_ZeroBudgetIsUnbounded(t *testing.T) {
	s := newTestStore(t, 0)
	seedGeneration(t, s, "backup-a", time.Now(), 1<<40)

	assert.NoError(t, s.ensureCapacity(1<<41))
	backups, err := s.List()
	require.NoError(t, err)
	assert.Len(t, backups, 1)
}

func TestEnforceMaxSize_EvictsUntilUnderBudget(t *testing.T) {
	s := newTestStore(t, 10)
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	seedGeneration(t, s, "backup-1", base, 6)
	seedGeneration(t, s, "backup-2", base.Add(time.Second), 6)
	seedGeneration(t, s, "backup-3", base.Add(2*time.Second), 3)

	require.NoError(t, s.enforceMaxSize())

	backups, err := s.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"backup-2", "backup-3"}, ids(backups))
}

func TestList_SkipsCorruptGenerationsAndSortsByTime(t *testing.T) {
	s := newTestStore(t, 0)
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	seedGeneration(t, s, "backup-later", base.Add(time.Hour), 1)
	seedGeneration(t, s, "backup-earlier", base, 1)

	require.NoError(t, os.MkdirAll(filepath.Join(s.dir, "partial"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(s.dir, "corrupt"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(s.dir, "corrupt", metadataFile), []byte("{"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(s.dir, "stray-file"), []byte("x"), 0o644))

	backups, err := s.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"backup-earlier", "backup-later"}, ids(backups))
}

func TestListThenLoad_RoundTrip(t *testing.T) {
	s := newTestStore(t, 0)
	dir := t.TempDir()
	for _, name := range []string{"a", "b", "c"} {
		p := filepath.Join(dir, name)
		writeFile(t, p, 7)
		_, err := s.Create([]types.CleanupItem{fileItem(p)})
		require.NoError(t, err)
	}

	backups, err := s.List()
	require.NoError(t, err)
	require.Len(t, backups, 3)

	for _, listed := range backups {
		loaded, err := s.Load(listed.ID)
		require.NoError(t, err)
		assert.Equal(t, listed.ID, loaded.ID)
		assert.True(t, listed.Timestamp.Equal(loaded.Timestamp))
		assert.Equal(t, listed.Items, loaded.Items)
		assert.Equal(t, listed.Size, loaded.Size)
	}
}

func TestLoad_NotFound(t *testing.T) {
	s := newTestStore(t, 0)

	for _, id := range []string{"backup-missing", "", "..", "../etc", "a/b"} {
		_, err := s.Load(id)
		assert.ErrorIs(t, err, types.ErrNotFound, id)
	}
}

func TestDelete_IsIdempotent(t *testing.T) {
	s := newTestStore(t, 0)
	seedGeneration(t, s, "backup-x", time.Now(), 1)

	require.NoError(t, s.Delete("backup-x"))
	require.NoError(t, s.Delete("backup-x"))
	require.NoError(t, s.Delete("backup-never-existed"))

	_, err := s.Load("backup-x")
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestNewGeneration_UniqueWithinSameSecond(t *testing.T) {
	s := newTestStore(t, 0)
	fixed := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)
	s.now = func() time.Time { return fixed }
	s.pid = 4242

	id1, _, err := s.newGeneration()
	require.NoError(t, err)
	id2, _, err := s.newGeneration()
	require.NoError(t, err)

	assert.Equal(t, "backup-20260304050607-4242", id1)
	assert.Equal(t, "backup-20260304050607-4242-1", id2)
}

func TestSanitizePath(t *testing.T) {
	assert.Equal(t, filepath.Join("tmp", "x"), sanitizePath("/tmp/x"))
	assert.Equal(t, filepath.Join("etc", "passwd"), sanitizePath("/tmp/../../etc/passwd"))
	assert.Equal(t, filepath.Join("a", "b"), sanitizePath("./a/./b"))
	assert.Equal(t, "", sanitizePath("/"))
}

func TestDedupRoots_ComponentBoundaries(t *testing.T) {
	roots := dedupRoots([]string{"/tmp/ab", "/tmp/a", "/tmp/a/c"})
	assert.Equal(t, []string{"/tmp/a", "/tmp/ab"}, roots)
}
