package cli

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/RiPetitor/rCleaner/internal/logger"
	"github.com/RiPetitor/rCleaner/internal/types"
	"github.com/RiPetitor/rCleaner/internal/utils"
)

func newScanCommand(opts *rootOptions) *cobra.Command {
	var cached bool

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "List what could be cleaned",
		Long:  "Scan every backend, run the safety checks and print the cleanable items. Nothing is modified.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := opts.app()
			if err != nil {
				return err
			}
			p := newPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr())

			items, fromCache, err := scanItems(cmd.Context(), app, cached)
			if err != nil {
				return err
			}
			if fromCache {
				p.Info("Showing cached scan results")
			}
			printItems(p, items)
			return nil
		},
	}
	cmd.Flags().BoolVar(&cached, "cached", false, "Use the last saved scan when available")
	return cmd
}

// scanItems returns the cached scan when asked for and present, otherwise
// scans and refreshes the cache.
func scanItems(ctx context.Context, app *App, useCache bool) ([]types.CleanupItem, bool, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if useCache && app.Cache != nil {
		snap, err := app.Cache.Load()
		if err != nil {
			logger.Warn("scan cache unreadable", "error", err)
		} else if snap != nil {
			return snap.Items, true, nil
		}
	}

	items, err := app.Service.ScanAll(ctx)
	if err != nil {
		return nil, false, err
	}
	if app.Cache != nil {
		if err := app.Cache.Save(items); err != nil {
			logger.Warn("scan cache not saved", "error", err)
		}
	}
	return items, false, nil
}

func printItems(p *printer, items []types.CleanupItem) {
	if len(items) == 0 {
		p.Info("Nothing to clean.")
		return
	}

	byCategory := make(map[types.Category][]types.CleanupItem)
	for _, item := range items {
		byCategory[item.Category] = append(byCategory[item.Category], item)
	}

	var cleanable, blocked uint64
	for _, cat := range types.CategoryOrder {
		group := byCategory[cat]
		if len(group) == 0 {
			continue
		}
		sort.SliceStable(group, func(i, j int) bool { return group[i].Size > group[j].Size })

		p.Step("%s (%d)", cat, len(group))
		for _, item := range group {
			line := fmt.Sprintf("%-40s %10s", clip(item.Name, 40), utils.FormatSize(item.Size))
			if item.CanClean {
				cleanable += item.Size
				p.Line("  %s", line)
				continue
			}
			blocked += item.Size
			p.Line("  %s  %s", line, colorWarning.Sprint("blocked: "+item.BlockedReason))
			if len(item.Dependencies) > 0 {
				p.Line("      required by: %s", strings.Join(item.Dependencies, ", "))
			}
		}
	}

	fmt.Fprintln(p.out)
	p.Success("Cleanable: %s", utils.FormatSize(cleanable))
	if blocked > 0 {
		p.Warning("Protected: %s", utils.FormatSize(blocked))
	}
}
