// Package target holds the cleanup backends. Each one owns a category: it
// scans for removable items and removes the ones it is handed.
package target

import (
	"context"

	"github.com/RiPetitor/rCleaner/internal/backup"
	"github.com/RiPetitor/rCleaner/internal/types"
)

type Target interface {
	Name() string
	Category() types.Category
	// Scan lists candidates without changing the system. Backends whose
	// tools are missing return an empty list.
	Scan(ctx context.Context) ([]types.CleanupItem, error)
	// Clean removes the cleanable items. With dryRun nothing is changed but
	// the result matches what a real run would report.
	Clean(items []types.CleanupItem, dryRun bool) (*types.CleanupResult, error)
}

// Backuper snapshots items before they are removed.
type Backuper interface {
	Create(items []types.CleanupItem) (*backup.Backup, error)
}

var _ Backuper = (*backup.Store)(nil)

type Registry struct {
	targets map[types.Category]Target
}

func NewRegistry() *Registry {
	return &Registry{targets: make(map[types.Category]Target)}
}

// Register replaces any target already registered for the same category.
func (r *Registry) Register(t Target) {
	r.targets[t.Category()] = t
}

func (r *Registry) Get(cat types.Category) (Target, bool) {
	t, ok := r.targets[cat]
	return t, ok
}

// All returns the registered targets in clean order.
func (r *Registry) All() []Target {
	result := make([]Target, 0, len(r.targets))
	for _, cat := range types.CategoryOrder {
		if t, ok := r.targets[cat]; ok {
			result = append(result, t)
		}
	}
	return result
}

func (r *Registry) Len() int { return len(r.targets) }

// backupBeforeClean snapshots items unless this is a dry run.
func backupBeforeClean(b Backuper, items []types.CleanupItem, dryRun bool) error {
	if dryRun || b == nil {
		return nil
	}
	_, err := b.Create(items)
	return err
}
