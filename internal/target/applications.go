package target

import (
	"context"
	"fmt"

	"github.com/RiPetitor/rCleaner/internal/logger"
	"github.com/RiPetitor/rCleaner/internal/pkgmgr"
	"github.com/RiPetitor/rCleaner/internal/types"
)

// ImageRuntime is a container CLI that can list and remove images.
type ImageRuntime interface {
	Name() string
	Available() bool
	ListImages(ctx context.Context) ([]pkgmgr.Image, error)
	RemoveImages(ctx context.Context, refs []string, dryRun bool) error
}

var _ ImageRuntime = (*pkgmgr.Runtime)(nil)

// ApplicationsTarget offers sandboxed apps (flatpak, snap) and container
// images for removal.
type ApplicationsTarget struct {
	apps     []pkgmgr.Manager
	runtimes []ImageRuntime
	backuper Backuper
}

func NewApplicationsTarget(b Backuper) *ApplicationsTarget {
	rts := pkgmgr.Runtimes()
	runtimes := make([]ImageRuntime, len(rts))
	for i, rt := range rts {
		runtimes[i] = rt
	}
	return &ApplicationsTarget{
		apps:     []pkgmgr.Manager{pkgmgr.NewFlatpak(), pkgmgr.NewSnap()},
		runtimes: runtimes,
		backuper: b,
	}
}

func (t *ApplicationsTarget) Name() string { return "Applications Cleaner" }

func (t *ApplicationsTarget) Category() types.Category { return types.CategoryApplications }

func (t *ApplicationsTarget) Scan(ctx context.Context) ([]types.CleanupItem, error) {
	var items []types.CleanupItem

	for _, m := range t.apps {
		if !m.Available() {
			continue
		}
		pkgs, err := listWithSizes(ctx, m)
		if err != nil {
			logger.Warn("application scan failed", "manager", m.Name(), "error", err)
			continue
		}
		for _, p := range pkgs {
			item := types.NewItem(m.Name()+":"+p.Name, p.Name, "", p.Size, t.Category(), types.PackageSource(m.Name()))
			item.Description = appDescription(m.Name())
			items = append(items, item)
		}
	}

	for _, rt := range t.runtimes {
		if !rt.Available() {
			continue
		}
		images, err := rt.ListImages(ctx)
		if err != nil {
			logger.Warn("image scan failed", "runtime", rt.Name(), "error", err)
			continue
		}
		for _, img := range images {
			item := types.NewItem(rt.Name()+":"+img.Ref, img.Ref, "", img.Size, t.Category(), types.ContainerSource(rt.Name()))
			item.Description = fmt.Sprintf("Container image (%s)", rt.Name())
			items = append(items, item)
		}
	}
	return items, nil
}

func appDescription(manager string) string {
	switch manager {
	case "flatpak":
		return "Flatpak application"
	case "snap":
		return "Snap application"
	}
	return "Application (" + manager + ")"
}

func listWithSizes(ctx context.Context, m pkgmgr.Manager) ([]pkgmgr.Package, error) {
	if sl, ok := m.(pkgmgr.SizedLister); ok {
		return sl.ListWithSizes(ctx)
	}
	names, err := m.ListInstalled(ctx)
	if err != nil {
		return nil, err
	}
	pkgs := make([]pkgmgr.Package, len(names))
	for i, n := range names {
		pkgs[i] = pkgmgr.Package{Name: n}
	}
	return pkgs, nil
}

// Clean removes apps and images in one call per backend. The first backend
// failure stops the clean; the result so far is returned with the error.
func (t *ApplicationsTarget) Clean(items []types.CleanupItem, dryRun bool) (*types.CleanupResult, error) {
	if err := backupBeforeClean(t.backuper, items, dryRun); err != nil {
		return nil, err
	}

	ctx := context.Background()
	result := types.NewCleanupResult()
	apps := newBatches()
	images := newBatches()

	for _, item := range items {
		switch {
		case !item.CanClean:
			result.SkippedItems++
		case item.Source.Kind == types.SourcePackageManager && t.manager(item.Source.Name) != nil:
			apps.add(item)
		case item.Source.Kind == types.SourceContainer && t.runtime(item.Source.Name) != nil:
			images.add(item)
		default:
			result.SkippedItems++
		}
	}

	for _, b := range apps.list {
		if err := t.manager(b.backend).RemovePackages(ctx, b.names, dryRun); err != nil {
			return result, err
		}
		b.addTo(result)
	}
	for _, b := range images.list {
		if err := t.runtime(b.backend).RemoveImages(ctx, b.names, dryRun); err != nil {
			return result, err
		}
		b.addTo(result)
	}
	return result, nil
}

func (t *ApplicationsTarget) manager(name string) pkgmgr.Manager {
	for _, m := range t.apps {
		if m.Name() == name {
			return m
		}
	}
	return nil
}

func (t *ApplicationsTarget) runtime(name string) ImageRuntime {
	for _, rt := range t.runtimes {
		if rt.Name() == name {
			return rt
		}
	}
	return nil
}

// batch collects the names to remove through one backend.
type batch struct {
	backend string
	names   []string
	size    uint64
}

func (b *batch) addTo(r *types.CleanupResult) {
	r.CleanedItems += len(b.names)
	r.FreedBytes += b.size
}

// batches groups items by source name, keeping first-seen order.
type batches struct {
	list  []*batch
	index map[string]*batch
}

func newBatches() *batches {
	return &batches{index: make(map[string]*batch)}
}

func (bs *batches) add(item types.CleanupItem) {
	b, ok := bs.index[item.Source.Name]
	if !ok {
		b = &batch{backend: item.Source.Name}
		bs.index[item.Source.Name] = b
		bs.list = append(bs.list, b)
	}
	b.names = append(b.names, item.Name)
	b.size += item.Size
}
