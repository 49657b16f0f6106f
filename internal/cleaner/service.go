package cleaner

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/RiPetitor/rCleaner/internal/logger"
	"github.com/RiPetitor/rCleaner/internal/safety"
	"github.com/RiPetitor/rCleaner/internal/target"
	"github.com/RiPetitor/rCleaner/internal/types"
	"github.com/RiPetitor/rCleaner/internal/utils"
)

const scanConcurrency = 4

var diskFree = utils.DiskFree

// ProgressFunc receives the fraction of groups already processed and the
// name of the backend about to run.
type ProgressFunc func(fraction float64, name string)

// Callbacks holds callback functions for cleaning progress.
type Callbacks struct {
	OnProgress  ProgressFunc
	OnGroupDone func(types.GroupResult)
}

// Service drives every registered target through scan and clean.
type Service struct {
	registry *target.Registry
	checker  *safety.Checker
	diskPath string
}

// NewService creates a Service. A nil checker leaves scanned items unchecked.
func NewService(registry *target.Registry, checker *safety.Checker) *Service {
	return &Service{
		registry: registry,
		checker:  checker,
		diskPath: "/",
	}
}

// ScanAll scans all targets concurrently and returns their items in
// category order. A failing target is logged and contributes nothing.
func (s *Service) ScanAll(ctx context.Context) ([]types.CleanupItem, error) {
	targets := s.registry.All()
	found := make([][]types.CleanupItem, len(targets))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(scanConcurrency)
	for i, tg := range targets {
		g.Go(func() error {
			items, err := tg.Scan(gctx)
			if err != nil {
				logger.Warn("scan failed", "target", tg.Name(), "error", err)
				return nil
			}
			logger.Debug("scan finished", "target", tg.Name(), "items", len(items))
			found[i] = items
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var all []types.CleanupItem
	for _, items := range found {
		all = append(all, items...)
	}
	s.applySafety(ctx, all)
	return all, nil
}

func (s *Service) applySafety(ctx context.Context, items []types.CleanupItem) {
	if s.checker == nil {
		return
	}
	for i := range items {
		if err := s.checker.Apply(ctx, &items[i]); err != nil {
			logger.Warn("safety check failed", "item", items[i].ID, "error", err)
			items[i].Block(fmt.Sprintf("Safety check failed: %v", err))
		}
	}
}

// CleanSelected cleans items without progress reporting.
func (s *Service) CleanSelected(items []types.CleanupItem, dryRun bool) (*types.CleanupResult, error) {
	return s.CleanSelectedWithProgress(context.Background(), items, dryRun, nil)
}

// CleanSelectedWithProgress groups the selected items by category and cleans each group
// with its target, in category order. A target error is recorded and the
// remaining groups still run. Cancellation is checked between groups.
func (s *Service) CleanSelectedWithProgress(
	ctx context.Context,
	items []types.CleanupItem,
	dryRun bool,
	onProgress ProgressFunc,
) (*types.CleanupResult, error) {
	result, _ := s.run(ctx, items, dryRun, Callbacks{OnProgress: onProgress})
	return result, nil
}

// Clean cleans the selected items and builds a report with disk usage
// measured before and after.
func (s *Service) Clean(ctx context.Context, items []types.CleanupItem, dryRun bool, callbacks Callbacks) *types.Report {
	start := time.Now()
	report := &types.Report{DryRun: dryRun, TotalItems: countSelected(items)}
	report.BeforeFree = s.freeSpace()

	result, groups := s.run(ctx, items, dryRun, callbacks)

	report.Result = *result
	report.Groups = groups
	report.AfterFree = s.freeSpace()
	report.Duration = time.Since(start)

	logger.Info("clean completed",
		"dryRun", dryRun,
		"cleaned", result.CleanedItems,
		"skipped", result.SkippedItems,
		"freed", result.FreedBytes,
		"errors", len(result.Errors))
	return report
}

func (s *Service) freeSpace() uint64 {
	free, err := diskFree(s.diskPath)
	if err != nil {
		logger.Debug("disk usage unavailable", "path", s.diskPath, "error", err)
		return 0
	}
	return free
}

type group struct {
	target target.Target
	items  []types.CleanupItem
}

// groups buckets the selected items by category in CategoryOrder. Items of
// categories without a registered target are returned separately.
func (s *Service) groups(items []types.CleanupItem) ([]group, []types.CleanupItem) {
	byCategory := make(map[types.Category][]types.CleanupItem)
	for _, item := range items {
		if !item.Selected {
			continue
		}
		byCategory[item.Category] = append(byCategory[item.Category], item)
	}

	var groups []group
	var orphaned []types.CleanupItem
	for _, cat := range types.CategoryOrder {
		selected := byCategory[cat]
		if len(selected) == 0 {
			continue
		}
		tg, ok := s.registry.Get(cat)
		if !ok {
			orphaned = append(orphaned, selected...)
			continue
		}
		groups = append(groups, group{target: tg, items: selected})
	}
	return groups, orphaned
}

func (s *Service) run(ctx context.Context, items []types.CleanupItem, dryRun bool, callbacks Callbacks) (*types.CleanupResult, []types.GroupResult) {
	result := types.NewCleanupResult()
	groups, orphaned := s.groups(items)
	for _, item := range orphaned {
		result.SkippedItems++
		result.AddError("no cleaner registered for %s", item.Category)
	}

	steps := max(1, len(groups))
	var done []types.GroupResult

	for i, g := range groups {
		if ctx.Err() != nil {
			result.AddError("cancelled")
			break
		}

		name := g.target.Name()
		if callbacks.OnProgress != nil {
			callbacks.OnProgress(float64(i)/float64(steps), name)
		}

		partial, err := g.target.Clean(g.items, dryRun)
		if partial == nil {
			partial = types.NewCleanupResult()
		}
		if err != nil {
			logger.Error("clean failed", "target", name, "error", err)
			partial.AddError("%s: %v", name, err)
		}
		result.Merge(partial)

		gr := types.GroupResult{Category: g.target.Category(), Name: name, Result: *partial}
		done = append(done, gr)
		if callbacks.OnGroupDone != nil {
			callbacks.OnGroupDone(gr)
		}
	}

	if callbacks.OnProgress != nil {
		callbacks.OnProgress(1.0, "Done")
	}
	return result, done
}

func countSelected(items []types.CleanupItem) int {
	n := 0
	for _, item := range items {
		if item.Selected {
			n++
		}
	}
	return n
}
