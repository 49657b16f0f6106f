package scancache

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/RiPetitor/rCleaner/internal/config"
	"github.com/RiPetitor/rCleaner/internal/types"
)

const (
	// Version is bumped whenever the item layout changes.
	Version  = 1
	fileName = "scan_cache.json"
)

type payload struct {
	Version   int                 `json:"version"`
	CreatedAt int64               `json:"created_at"`
	Items     []types.CleanupItem `json:"items"`
}

// Snapshot is a previously saved scan.
type Snapshot struct {
	CreatedAt time.Time
	Items     []types.CleanupItem
}

// Age reports how long ago the snapshot was taken.
func (s *Snapshot) Age() time.Duration {
	return time.Since(s.CreatedAt)
}

type Cache struct {
	path string
	now  func() time.Time
}

func New(path string) *Cache {
	return &Cache{path: path, now: time.Now}
}

// Default is the cache under config.DefaultCacheDir.
func Default() *Cache {
	return New(DefaultPath())
}

func DefaultPath() string {
	return filepath.Join(config.DefaultCacheDir(), fileName)
}

func (c *Cache) Path() string { return c.path }

// Load returns nil, nil when no cache exists or it was written by another
// version.
func (c *Cache) Load() (*Snapshot, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, types.NewError(types.KindIO, "read scan cache", err)
	}

	var p payload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, types.NewError(types.KindSerialization, "decode scan cache", err)
	}
	if p.Version != Version {
		return nil, nil
	}
	return &Snapshot{CreatedAt: time.Unix(p.CreatedAt, 0), Items: p.Items}, nil
}

func (c *Cache) Save(items []types.CleanupItem) error {
	if items == nil {
		items = []types.CleanupItem{}
	}
	data, err := json.MarshalIndent(payload{
		Version:   Version,
		CreatedAt: c.now().Unix(),
		Items:     items,
	}, "", "  ")
	if err != nil {
		return types.NewError(types.KindSerialization, "encode scan cache", err)
	}

	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return types.NewError(types.KindIO, "create cache dir", err)
	}
	if err := os.WriteFile(c.path, data, 0o644); err != nil {
		return types.NewError(types.KindIO, "write scan cache", err)
	}
	return nil
}

// Clear removes the cache file. A missing file is not an error.
func (c *Cache) Clear() error {
	if err := os.Remove(c.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return types.NewError(types.KindIO, "remove scan cache", err)
	}
	return nil
}
