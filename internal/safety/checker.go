package safety

import (
	"context"

	"github.com/RiPetitor/rCleaner/internal/config"
	"github.com/RiPetitor/rCleaner/internal/logger"
	"github.com/RiPetitor/rCleaner/internal/types"
)

const (
	reasonPermission = "Insufficient permissions to clean path"
	reasonDependents = "Package has dependents"
)

// Checker runs the permission, rule and dependency stages against items.
type Checker struct {
	cfg    *config.Config
	rules  *RuleSet
	oracle DependencyOracle
}

// NewChecker builds a checker from a config snapshot. A nil oracle disables
// the dependency stage.
func NewChecker(cfg *config.Config, oracle DependencyOracle) *Checker {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Checker{cfg: cfg, rules: RuleSetFromConfig(cfg), oracle: oracle}
}

func (c *Checker) Rules() *RuleSet { return c.rules }

// disabled reports whether safety is switched off and the caller is allowed
// to switch it off.
func (c *Checker) disabled() bool {
	s := c.cfg.Safety
	return !s.Enabled && (!s.OnlyRootCanDisable || isRoot())
}

// Apply blocks item when any stage objects. All stages run so that
// Dependencies is filled in, but the first reason recorded is kept.
// An oracle error is returned after the earlier stages have been applied.
func (c *Checker) Apply(ctx context.Context, item *types.CleanupItem) error {
	if c.disabled() {
		return nil
	}

	if item.HasPath() && !CanCleanPath(item.Path) {
		item.Block(reasonPermission)
	}
	if reason, blocked := c.rules.CheckItemReason(item); blocked {
		item.Block(reason)
	}

	if item.Source.IsPackage() && c.oracle != nil {
		deps, err := c.oracle.CheckDependencies(ctx, item.Source.Name, item.Name)
		if err != nil {
			return err
		}
		if len(deps) > 0 {
			item.Dependencies = deps
			item.Block(reasonDependents)
		}
	}

	if !item.CanClean {
		logger.Debug("item blocked", "id", item.ID, "reason", item.BlockedReason)
	}
	return nil
}

// IsSafe evaluates item without modifying it.
func (c *Checker) IsSafe(ctx context.Context, item *types.CleanupItem) (bool, error) {
	probe := *item
	probe.CanClean = true
	probe.BlockedReason = ""
	probe.Dependencies = nil
	if err := c.Apply(ctx, &probe); err != nil {
		return false, err
	}
	return probe.CanClean, nil
}
