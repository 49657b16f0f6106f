package target

import (
	"context"
	"sort"
	"strings"

	"github.com/RiPetitor/rCleaner/internal/logger"
	"github.com/RiPetitor/rCleaner/internal/pkgmgr"
	"github.com/RiPetitor/rCleaner/internal/types"
	"github.com/RiPetitor/rCleaner/internal/version"
)

// kernelPrefixes are stripped from package names to find the kernel version.
// Longer prefixes come first.
var kernelPrefixes = []string{
	"kernel-modules-",
	"kernel-core-",
	"kernel-",
	"linux-image-unsigned-",
	"linux-image-",
}

var kernelDescriptions = map[string]string{
	"rpm": "Old kernel package (RPM)",
	"apt": "Old kernel package (APT)",
}

// OldKernelsTarget offers installed kernels other than the running one,
// keeping the newest few.
type OldKernelsTarget struct {
	managers []pkgmgr.Manager
	// keep is the number of kernels to keep, the running one included.
	keep     int
	backuper Backuper
}

func NewOldKernelsTarget(keep int, b Backuper) *OldKernelsTarget {
	return &OldKernelsTarget{
		managers: []pkgmgr.Manager{pkgmgr.NewRpm(), pkgmgr.NewApt()},
		keep:     keep,
		backuper: b,
	}
}

func (t *OldKernelsTarget) Name() string { return "Old Kernels Cleaner" }

func (t *OldKernelsTarget) Category() types.Category { return types.CategoryOldKernels }

func (t *OldKernelsTarget) Scan(ctx context.Context) ([]types.CleanupItem, error) {
	current := currentKernel(ctx)
	if current == "" {
		// Without the running version nothing can be ruled out safely.
		return nil, nil
	}

	seen := make(map[string]bool)
	var items []types.CleanupItem
	for _, m := range t.managers {
		kl, ok := m.(pkgmgr.KernelLister)
		if !ok || !m.Available() {
			continue
		}
		pkgs, err := kl.Kernels(ctx)
		if err != nil {
			logger.Warn("kernel scan failed", "manager", m.Name(), "error", err)
			continue
		}
		for _, pkg := range t.removable(pkgs, current) {
			if seen[pkg] {
				continue
			}
			seen[pkg] = true
			item := types.NewItem(m.Name()+":"+pkg, pkg, "", 0, t.Category(), types.PackageSource(m.Name()))
			item.Description = kernelDescriptions[m.Name()]
			items = append(items, item)
		}
	}
	return items, nil
}

// removable groups pkgs by kernel version and returns the packages of every
// version beyond the newest keep-1, never touching the running kernel.
func (t *OldKernelsTarget) removable(pkgs []string, current string) []string {
	byVersion := make(map[string][]string)
	var versions []string
	for _, pkg := range pkgs {
		if strings.Contains(pkg, current) {
			continue
		}
		v := kernelVersion(pkg)
		if v == "" || v[0] < '0' || v[0] > '9' {
			continue
		}
		if _, ok := byVersion[v]; !ok {
			versions = append(versions, v)
		}
		byVersion[v] = append(byVersion[v], pkg)
	}

	sort.Slice(versions, func(i, j int) bool {
		return version.Compare(versions[i], versions[j]) > 0
	})

	keepOthers := t.keep - 1
	if keepOthers < 0 {
		keepOthers = 0
	}
	if keepOthers >= len(versions) {
		return nil
	}

	var out []string
	for _, v := range versions[keepOthers:] {
		out = append(out, byVersion[v]...)
	}
	return out
}

func (t *OldKernelsTarget) Clean(items []types.CleanupItem, dryRun bool) (*types.CleanupResult, error) {
	return removePackageItems(t.managers, t.backuper, items, dryRun)
}

func currentKernel(ctx context.Context) string {
	out, err := commandOutput(ctx, "uname", "-r")
	if err != nil {
		logger.Warn("uname failed", "error", err)
		return ""
	}
	return strings.TrimSpace(out)
}

func kernelVersion(pkg string) string {
	for _, p := range kernelPrefixes {
		if v, ok := strings.CutPrefix(pkg, p); ok {
			return v
		}
	}
	return ""
}
