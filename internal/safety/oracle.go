package safety

import (
	"context"

	"github.com/RiPetitor/rCleaner/internal/pkgmgr"
)

// DependencyOracle answers which installed packages depend on pkg within the
// named backend.
type DependencyOracle interface {
	CheckDependencies(ctx context.Context, backend, pkg string) ([]string, error)
}

// SystemOracle queries the real package managers.
type SystemOracle struct {
	lookup func(name string) (pkgmgr.Manager, bool)
}

func NewSystemOracle() *SystemOracle {
	return &SystemOracle{lookup: pkgmgr.Lookup}
}

// CheckDependencies returns nothing for unknown backends or when the backend's
// tool is not installed.
func (o *SystemOracle) CheckDependencies(ctx context.Context, backend, pkg string) ([]string, error) {
	m, ok := o.lookup(backend)
	if !ok || !m.Available() {
		return nil, nil
	}
	return m.CheckDependencies(ctx, pkg)
}
