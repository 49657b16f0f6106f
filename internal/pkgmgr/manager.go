// Package pkgmgr wraps the system package managers and container runtimes
// behind one small interface. Every call shells out to the native tool.
package pkgmgr

import (
	"context"
	"strings"

	"github.com/RiPetitor/rCleaner/internal/types"
	"github.com/RiPetitor/rCleaner/internal/utils"
)

type Manager interface {
	Name() string
	// Available reports whether the manager's tool is installed.
	Available() bool
	Version(ctx context.Context) (string, error)
	ListInstalled(ctx context.Context) ([]string, error)
	// CheckDependencies lists installed packages that require pkg.
	CheckDependencies(ctx context.Context, pkg string) ([]string, error)
	RemovePackages(ctx context.Context, names []string, dryRun bool) error
}

// Package is an installed package with a best-effort size in bytes.
type Package struct {
	Name string
	Size uint64
}

// SizedLister is implemented by managers that can report package sizes.
type SizedLister interface {
	ListWithSizes(ctx context.Context) ([]Package, error)
}

// OrphanLister is implemented by managers that know which packages are no
// longer needed by anything.
type OrphanLister interface {
	Orphans(ctx context.Context) ([]string, error)
}

// KernelLister is implemented by managers that install kernel packages.
type KernelLister interface {
	Kernels(ctx context.Context) ([]string, error)
}

// Lookup returns the manager registered under name.
func Lookup(name string) (Manager, bool) {
	switch name {
	case "apt":
		return NewApt(), true
	case "dnf":
		return NewDnf(), true
	case "pacman":
		return NewPacman(), true
	case "rpm":
		return NewRpm(), true
	case "flatpak":
		return NewFlatpak(), true
	case "snap":
		return NewSnap(), true
	}
	return nil, false
}

// All returns every known manager, installed or not.
func All() []Manager {
	return []Manager{NewApt(), NewDnf(), NewPacman(), NewRpm(), NewFlatpak(), NewSnap()}
}

// Detect returns the managers whose tools are installed.
func Detect() []Manager {
	var found []Manager
	for _, m := range All() {
		if m.Available() {
			found = append(found, m)
		}
	}
	return found
}

func commandAvailable(tool string) bool {
	return utils.CommandExists(tool)
}

// ensureNoDependents refuses removal when any package still has dependents.
func ensureNoDependents(ctx context.Context, m Manager, names []string) error {
	for _, name := range names {
		deps, err := m.CheckDependencies(ctx, name)
		if err != nil {
			return err
		}
		if len(deps) > 0 {
			return types.Errorf(types.KindDependency, "package %s is required by: %s", name, strings.Join(deps, ", "))
		}
	}
	return nil
}

func versionOf(ctx context.Context, tool string, args ...string) (string, error) {
	out, err := runChecked(ctx, tool, args...)
	if err != nil {
		return "", err
	}
	return firstLine(out.stdout), nil
}

func removeArgs(prefix []string, names []string) []string {
	args := make([]string, 0, len(prefix)+len(names))
	args = append(args, prefix...)
	return append(args, names...)
}
