package target

import (
	"context"

	"github.com/RiPetitor/rCleaner/internal/logger"
	"github.com/RiPetitor/rCleaner/internal/pkgmgr"
	"github.com/RiPetitor/rCleaner/internal/types"
)

// OldPackagesTarget offers packages the package manager itself considers
// orphaned: apt autoremove candidates, dnf unneeded packages, pacman orphans.
type OldPackagesTarget struct {
	managers []pkgmgr.Manager
	backuper Backuper
}

func NewOldPackagesTarget(b Backuper) *OldPackagesTarget {
	return &OldPackagesTarget{
		managers: []pkgmgr.Manager{pkgmgr.NewApt(), pkgmgr.NewDnf(), pkgmgr.NewPacman(), pkgmgr.NewRpm()},
		backuper: b,
	}
}

func (t *OldPackagesTarget) Name() string { return "Old Packages Cleaner" }

func (t *OldPackagesTarget) Category() types.Category { return types.CategoryOldPackages }

var orphanDescriptions = map[string]string{
	"apt":    "APT autoremove candidate",
	"dnf":    "DNF unneeded package",
	"pacman": "Pacman orphan package",
}

func (t *OldPackagesTarget) Scan(ctx context.Context) ([]types.CleanupItem, error) {
	var items []types.CleanupItem
	for _, m := range t.managers {
		ol, ok := m.(pkgmgr.OrphanLister)
		if !ok || !m.Available() {
			continue
		}
		names, err := ol.Orphans(ctx)
		if err != nil {
			logger.Warn("orphan scan failed", "manager", m.Name(), "error", err)
			continue
		}
		for _, name := range names {
			item := types.NewItem(m.Name()+":"+name, name, "", 0, t.Category(), types.PackageSource(m.Name()))
			item.Description = orphanDescriptions[m.Name()]
			items = append(items, item)
		}
	}
	return items, nil
}

func (t *OldPackagesTarget) Clean(items []types.CleanupItem, dryRun bool) (*types.CleanupResult, error) {
	return removePackageItems(t.managers, t.backuper, items, dryRun)
}

// removePackageItems removes package-sourced items with one call per
// manager. Items from unknown managers or other sources are skipped. The
// first manager failure stops the clean.
func removePackageItems(managers []pkgmgr.Manager, b Backuper, items []types.CleanupItem, dryRun bool) (*types.CleanupResult, error) {
	if err := backupBeforeClean(b, items, dryRun); err != nil {
		return nil, err
	}

	byName := make(map[string]pkgmgr.Manager, len(managers))
	for _, m := range managers {
		byName[m.Name()] = m
	}

	result := types.NewCleanupResult()
	groups := newBatches()
	for _, item := range items {
		if !item.CanClean || !item.Source.IsPackage() || byName[item.Source.Name] == nil {
			result.SkippedItems++
			continue
		}
		groups.add(item)
	}

	ctx := context.Background()
	for _, g := range groups.list {
		if err := byName[g.backend].RemovePackages(ctx, g.names, dryRun); err != nil {
			return result, err
		}
		g.addTo(result)
	}
	return result, nil
}
