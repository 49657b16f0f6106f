package cli

import (
	"github.com/RiPetitor/rCleaner/internal/backup"
	"github.com/RiPetitor/rCleaner/internal/cleaner"
	"github.com/RiPetitor/rCleaner/internal/config"
	"github.com/RiPetitor/rCleaner/internal/safety"
	"github.com/RiPetitor/rCleaner/internal/scancache"
	"github.com/RiPetitor/rCleaner/internal/target"
)

// App bundles the components one run works with. It is built once from an
// immutable config snapshot.
type App struct {
	Config  *config.Config
	Store   *backup.Store
	Checker *safety.Checker
	Service *cleaner.Service
	Cache   *scancache.Cache
}

func NewApp(cfg *config.Config) (*App, error) {
	store, err := backup.NewFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	checker := safety.NewChecker(cfg, safety.NewSystemOracle())
	registry := target.DefaultRegistry(target.Deps{Config: cfg, Backuper: store})

	return &App{
		Config:  cfg,
		Store:   store,
		Checker: checker,
		Service: cleaner.NewService(registry, checker),
		Cache:   scancache.Default(),
	}, nil
}
