package target

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"sync"

	"github.com/RiPetitor/rCleaner/internal/logger"
	"github.com/RiPetitor/rCleaner/internal/types"
	"github.com/RiPetitor/rCleaner/internal/utils"
)

// getMaxWorkers returns the optimal number of workers based on CPU cores
func getMaxWorkers(numCPU int) int {
	if numCPU > 16 {
		return 16
	}
	if numCPU < 4 {
		return 4
	}
	return numCPU
}

// pathSpec describes a directory a filesystem target looks at.
type pathSpec struct {
	path        string
	name        string
	description string
}

// scanPathsParallel sizes every spec concurrently and returns an item for
// each one that exists and is not empty, ordered by path.
func scanPathsParallel(ctx context.Context, specs []pathSpec, cat types.Category) []types.CleanupItem {
	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		items []types.CleanupItem
	)

	sem := make(chan struct{}, getMaxWorkers(runtime.NumCPU()))

	for _, spec := range specs {
		if ctx.Err() != nil {
			break
		}
		sem <- struct{}{}
		wg.Add(1)
		go func(s pathSpec) {
			defer wg.Done()
			defer func() { <-sem }()

			item, ok := scanPath(s, cat)
			if !ok {
				return
			}

			mu.Lock()
			items = append(items, item)
			mu.Unlock()
		}(spec)
	}
	wg.Wait()

	sort.Slice(items, func(i, j int) bool {
		return items[i].Path < items[j].Path
	})
	return items
}

func scanPath(s pathSpec, cat types.Category) (types.CleanupItem, bool) {
	info, err := os.Stat(s.path)
	if err != nil || !info.IsDir() {
		return types.CleanupItem{}, false
	}
	size, err := utils.DirSize(s.path)
	if err != nil {
		logger.Debug("size scan failed", "path", s.path, "error", err)
		return types.CleanupItem{}, false
	}
	if size == 0 {
		return types.CleanupItem{}, false
	}

	item := types.NewItem(s.path, s.name, s.path, size, cat, types.FileSystemSource())
	item.Description = s.description
	return item, true
}

// removeContents deletes everything inside dir and keeps dir itself.
func removeContents(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	var firstErr error
	for _, e := range entries {
		if err := os.RemoveAll(filepath.Join(dir, e.Name())); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// cleanPaths is the common clean loop for filesystem targets. remove is
// called once per path, parents before children. An item inside a path that
// was already removed in this batch counts as cleaned without adding to the
// freed bytes.
func cleanPaths(items []types.CleanupItem, dryRun bool, remove func(path string) error) *types.CleanupResult {
	result := types.NewCleanupResult()

	order := make([]int, len(items))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return len(items[order[a]].Path) < len(items[order[b]].Path)
	})

	var removed []string
	for _, idx := range order {
		item := items[idx]
		if !item.CanClean || !item.HasPath() {
			result.SkippedItems++
			continue
		}
		path := filepath.Clean(item.Path)
		if withinAny(path, removed) {
			result.CleanedItems++
			continue
		}
		if dryRun {
			logger.Info("dry run: would clean", "path", path, "size", item.Size)
		} else if err := remove(path); err != nil {
			result.AddError("%s: %v", path, err)
			continue
		}
		removed = append(removed, path)
		result.CleanedItems++
		result.FreedBytes += item.Size
	}
	return result
}

func withinAny(path string, roots []string) bool {
	for _, r := range roots {
		if utils.IsWithin(path, r) {
			return true
		}
	}
	return false
}
