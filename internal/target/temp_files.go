package target

import (
	"context"
	"path/filepath"

	"github.com/RiPetitor/rCleaner/internal/types"
	"github.com/RiPetitor/rCleaner/internal/utils"
)

// TempFilesTarget empties the system temp directories and the user's trash.
// The directories themselves are kept.
type TempFilesTarget struct {
	specs    func() []pathSpec
	backuper Backuper
}

func NewTempFilesTarget(b Backuper) *TempFilesTarget {
	return &TempFilesTarget{specs: defaultTempSpecs, backuper: b}
}

func defaultTempSpecs() []pathSpec {
	specs := []pathSpec{
		{path: "/tmp", name: "Temporary files (/tmp)", description: "Temporary directory: /tmp"},
		{path: "/var/tmp", name: "Temporary files (/var/tmp)", description: "Temporary directory: /var/tmp"},
	}
	if home := utils.HomeDir(); home != "" {
		trash := filepath.Join(home, ".local", "share", "Trash")
		specs = append(specs, pathSpec{path: trash, name: "Trash", description: "Temporary directory: " + trash})
	}
	return specs
}

func (t *TempFilesTarget) Name() string { return "Temp Files Cleaner" }

func (t *TempFilesTarget) Category() types.Category { return types.CategoryTempFiles }

func (t *TempFilesTarget) Scan(ctx context.Context) ([]types.CleanupItem, error) {
	return scanPathsParallel(ctx, t.specs(), t.Category()), nil
}

func (t *TempFilesTarget) Clean(items []types.CleanupItem, dryRun bool) (*types.CleanupResult, error) {
	if err := backupBeforeClean(t.backuper, items, dryRun); err != nil {
		return nil, err
	}
	return cleanPaths(items, dryRun, removeContents), nil
}
