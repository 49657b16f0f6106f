package target

import (
	"github.com/RiPetitor/rCleaner/internal/config"
)

// Deps are the collaborators shared by the built-in targets.
type Deps struct {
	Config   *config.Config
	Backuper Backuper
}

// DefaultRegistry registers the six built-in targets.
func DefaultRegistry(deps Deps) *Registry {
	cfg := deps.Config
	if cfg == nil {
		cfg = config.Default()
	}

	r := NewRegistry()
	r.Register(NewCacheTarget(deps.Backuper))
	r.Register(NewApplicationsTarget(deps.Backuper))
	r.Register(NewTempFilesTarget(deps.Backuper))
	r.Register(NewLogsTarget(deps.Backuper))
	r.Register(NewOldPackagesTarget(deps.Backuper))
	r.Register(NewOldKernelsTarget(cfg.CurrentProfile().KeepRecentKernels, deps.Backuper))
	return r
}
