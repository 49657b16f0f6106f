package scancache

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RiPetitor/rCleaner/internal/types"
)

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	c := New(filepath.Join(t.TempDir(), "nested", fileName))
	c.now = func() time.Time { return time.Unix(1700000000, 0) }
	return c
}

func TestLoad_MissingFileReturnsNil(t *testing.T) {
	snap, err := newTestCache(t).Load()

	assert.NoError(t, err)
	assert.Nil(t, snap)
}

func TestSaveThenLoad(t *testing.T) {
	c := newTestCache(t)
	item := types.NewItem("/tmp/x", "x", "/tmp/x", 42, types.CategoryTempFiles, types.FileSystemSource())
	blocked := types.NewItem("apt:libfoo", "libfoo", "", 10, types.CategoryOldPackages, types.PackageSource("apt"))
	blocked.Dependencies = []string{"bar"}
	blocked.Block("Package has dependents")

	require.NoError(t, c.Save([]types.CleanupItem{item, blocked}))
	snap, err := c.Load()

	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Equal(t, time.Unix(1700000000, 0), snap.CreatedAt)
	assert.Equal(t, []types.CleanupItem{item, blocked}, snap.Items)
}

func TestLoad_OtherVersionIgnored(t *testing.T) {
	c := newTestCache(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(c.Path()), 0o755))
	require.NoError(t, os.WriteFile(c.Path(), []byte(`{"version": 99, "created_at": 1, "items": []}`), 0o644))

	snap, err := c.Load()

	assert.NoError(t, err)
	assert.Nil(t, snap)
}

func TestLoad_CorruptFile(t *testing.T) {
	c := newTestCache(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(c.Path()), 0o755))
	require.NoError(t, os.WriteFile(c.Path(), []byte("{"), 0o644))

	_, err := c.Load()

	assert.ErrorIs(t, err, types.ErrSerialization)
}

func TestSave_EmptyWritesEmptyList(t *testing.T) {
	c := newTestCache(t)

	require.NoError(t, c.Save(nil))
	data, err := os.ReadFile(c.Path())
	require.NoError(t, err)

	assert.Contains(t, string(data), `"items": []`)
	assert.Contains(t, string(data), `"version": 1`)
}

func TestClear(t *testing.T) {
	c := newTestCache(t)
	require.NoError(t, c.Save(nil))

	require.NoError(t, c.Clear())
	assert.NoFileExists(t, c.Path())
	assert.NoError(t, c.Clear())
}

func TestDefaultPath_HonoursXDG(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/xdg/cache")

	assert.Equal(t, "/xdg/cache/rcleaner/scan_cache.json", DefaultPath())
}
