package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/RiPetitor/rCleaner/internal/cleaner"
	"github.com/RiPetitor/rCleaner/internal/types"
	"github.com/RiPetitor/rCleaner/internal/userconfig"
	"github.com/RiPetitor/rCleaner/internal/utils"
)

var errNoProfile = errors.New("no saved selection found. Run rcleaner in interactive mode first to create one")

// loadUserConfig is swapped in tests.
var loadUserConfig = userconfig.Load

type cleanOptions struct {
	dryRun     bool
	profile    bool
	yes        bool
	cached     bool
	categories []string
}

func newCleanCommand(opts *rootOptions) *cobra.Command {
	var co cleanOptions

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Back up and remove selected items",
		Long: `Scan, select and clean in one go. Without --profile every cleanable item
of the chosen categories is selected. With --profile the selection saved by
the interactive UI is reused.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := opts.app()
			if err != nil {
				return err
			}
			report, err := runClean(cmd.Context(), app, co, cmd.InOrStdin(), newPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr()))
			if err != nil {
				return err
			}
			if report != nil {
				fmt.Fprint(cmd.OutOrStdout(), FormatReport(report))
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.BoolVar(&co.dryRun, "dry-run", false, "Show what would be cleaned without deleting anything")
	flags.BoolVar(&co.profile, "profile", false, "Reuse the selection saved by the interactive UI")
	flags.BoolVarP(&co.yes, "yes", "y", false, "Do not ask for confirmation")
	flags.BoolVar(&co.cached, "cached", false, "Select from the last saved scan instead of rescanning")
	flags.StringSliceVar(&co.categories, "category", nil, "Limit to categories (Cache, Applications, TempFiles, Logs, OldPackages, OldKernels)")
	return cmd
}

// runClean returns a nil report when nothing was cleaned because the
// selection was empty or the operator declined.
func runClean(ctx context.Context, app *App, co cleanOptions, in io.Reader, p *printer) (*types.Report, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	cats, err := parseCategories(co.categories)
	if err != nil {
		return nil, err
	}

	var userCfg *userconfig.UserConfig
	if co.profile {
		userCfg, err = loadUserConfig()
		if err != nil {
			return nil, fmt.Errorf("failed to load selection: %w", err)
		}
		if !userCfg.HasLastSelection() {
			return nil, errNoProfile
		}
	}

	p.Step("Scanning")
	items, _, err := scanItems(ctx, app, co.cached)
	if err != nil {
		return nil, err
	}

	selected := selectItems(items, cats, userCfg)
	if len(selected) == 0 {
		p.Info("Nothing to clean.")
		return nil, nil
	}
	printPreview(p, selected)

	if !co.dryRun && !co.yes && !app.Config.CurrentProfile().AutoConfirm {
		if !confirm(in, p, fmt.Sprintf("Back up and delete %d items?", len(selected))) {
			p.Info("Cancelled.")
			return nil, nil
		}
	}

	if co.dryRun {
		p.Step("Dry run")
	} else {
		p.Step("Cleaning")
	}
	report := app.Service.Clean(ctx, selected, co.dryRun, cleaner.Callbacks{
		OnGroupDone: func(g types.GroupResult) { printGroup(p, g) },
	})
	return report, nil
}

func parseCategories(names []string) ([]types.Category, error) {
	cats := make([]types.Category, 0, len(names))
	for _, name := range names {
		cat, err := types.ParseCategory(strings.TrimSpace(name))
		if err != nil {
			return nil, err
		}
		cats = append(cats, cat)
	}
	return cats, nil
}

// selectItems marks and returns the cleanable items to work on. A saved
// selection narrows the result to the items it names.
func selectItems(items []types.CleanupItem, cats []types.Category, userCfg *userconfig.UserConfig) []types.CleanupItem {
	if userCfg != nil {
		userCfg.ApplySelection(items)
	}

	var selected []types.CleanupItem
	for _, item := range items {
		if !item.CanClean {
			continue
		}
		if len(cats) > 0 && !slices.Contains(cats, item.Category) {
			continue
		}
		if userCfg != nil && !item.Selected {
			continue
		}
		item.Selected = true
		selected = append(selected, item)
	}
	return selected
}

func printPreview(p *printer, items []types.CleanupItem) {
	sizes := make(map[types.Category]uint64)
	counts := make(map[types.Category]int)
	var total uint64
	for _, item := range items {
		sizes[item.Category] += item.Size
		counts[item.Category]++
		total += item.Size
	}

	p.Step("Preview")
	for _, cat := range types.CategoryOrder {
		if counts[cat] == 0 {
			continue
		}
		p.Line("  %-20s %5d items %10s", cat, counts[cat], utils.FormatSize(sizes[cat]))
	}
	p.Line(separator)
	p.Line("  Total: %s (%d items)", utils.FormatSize(total), len(items))
}

func printGroup(p *printer, g types.GroupResult) {
	size := utils.FormatSize(g.Result.FreedBytes)
	switch {
	case len(g.Result.Errors) == 0:
		p.Success("%-30s %10s", g.Name, size)
	case g.Result.CleanedItems > 0:
		p.Warning("%-30s %10s (%d errors)", g.Name, size, len(g.Result.Errors))
	default:
		p.Error("%-30s failed", g.Name)
	}
}

func confirm(in io.Reader, p *printer, question string) bool {
	fmt.Fprintf(p.out, "%s [y/N]: ", question)
	input, _ := bufio.NewReader(in).ReadString('\n')
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes"
}
