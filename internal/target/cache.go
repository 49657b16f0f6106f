package target

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/RiPetitor/rCleaner/internal/types"
	"github.com/RiPetitor/rCleaner/internal/utils"
)

var userCacheDirs = []struct {
	name string
	rel  string
}{
	{"User cache", ""},
	{"Thumbnails", "thumbnails"},
	{"Firefox cache", "mozilla/firefox"},
	{"Chrome cache", "google-chrome"},
	{"Chromium cache", "chromium"},
	{"Brave cache", "BraveSoftware"},
	{"Shader cache", "mesa_shader_cache"},
}

// CacheTarget cleans per-user application caches under ~/.cache and the
// cache directories of flatpak apps under ~/.var/app.
type CacheTarget struct {
	home     func() string
	backuper Backuper
}

func NewCacheTarget(b Backuper) *CacheTarget {
	return &CacheTarget{home: utils.HomeDir, backuper: b}
}

func (t *CacheTarget) Name() string { return "Cache Cleaner" }

func (t *CacheTarget) Category() types.Category { return types.CategoryCache }

func (t *CacheTarget) Scan(ctx context.Context) ([]types.CleanupItem, error) {
	home := t.home()
	if home == "" {
		return nil, nil
	}
	return scanPathsParallel(ctx, t.specs(home), t.Category()), nil
}

func (t *CacheTarget) specs(home string) []pathSpec {
	cacheRoot := filepath.Join(home, ".cache")
	specs := make([]pathSpec, 0, len(userCacheDirs))
	for _, d := range userCacheDirs {
		p := filepath.Join(cacheRoot, d.rel)
		specs = append(specs, pathSpec{path: p, name: d.name, description: "Cache directory: " + p})
	}

	apps, err := os.ReadDir(filepath.Join(home, ".var", "app"))
	if err != nil {
		return specs
	}
	for _, app := range apps {
		if !app.IsDir() {
			continue
		}
		p := filepath.Join(home, ".var", "app", app.Name(), "cache")
		specs = append(specs, pathSpec{
			path:        p,
			name:        "Flatpak cache: " + strings.TrimSpace(app.Name()),
			description: "Flatpak cache directory: " + p,
		})
	}
	return specs
}

func (t *CacheTarget) Clean(items []types.CleanupItem, dryRun bool) (*types.CleanupResult, error) {
	if err := backupBeforeClean(t.backuper, items, dryRun); err != nil {
		return nil, err
	}
	return cleanPaths(items, dryRun, os.RemoveAll), nil
}
