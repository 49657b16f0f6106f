package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/RiPetitor/rCleaner/internal/backup"
	"github.com/RiPetitor/rCleaner/internal/utils"
)

func newBackupCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Inspect and prune backups taken before cleaning",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List backups, oldest first",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				app, err := opts.app()
				if err != nil {
					return err
				}
				return listBackups(app.Store, newPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr()))
			},
		},
		&cobra.Command{
			Use:   "show <id>",
			Short: "Show the items stored in a backup",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				app, err := opts.app()
				if err != nil {
					return err
				}
				return showBackup(app.Store, args[0], newPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr()))
			},
		},
		&cobra.Command{
			Use:   "delete <id>...",
			Short: "Delete backups",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				app, err := opts.app()
				if err != nil {
					return err
				}
				p := newPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr())
				for _, id := range args {
					if err := app.Store.Delete(id); err != nil {
						return err
					}
					p.Success("Deleted %s", id)
				}
				return nil
			},
		},
	)
	return cmd
}

func listBackups(store *backup.Store, p *printer) error {
	backups, err := store.List()
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		p.Info("No backups in %s", store.Dir())
		return nil
	}

	var total uint64
	p.Line("%-36s  %-20s  %6s  %10s", "ID", "CREATED", "ITEMS", "SIZE")
	for _, b := range backups {
		total += b.Size
		p.Line("%-36s  %-20s  %6d  %10s",
			b.ID,
			b.Timestamp.Local().Format(time.DateTime),
			len(b.Items),
			utils.FormatSize(b.Size))
	}
	p.Line(separator)

	usage := utils.FormatSize(total)
	if limit := store.MaxSize(); limit > 0 {
		usage = fmt.Sprintf("%s of %s (%s)", usage, utils.FormatSize(limit), utils.FormatPercent(total, limit))
	}
	p.Line("Total: %s", usage)
	return nil
}

func showBackup(store *backup.Store, id string, p *printer) error {
	b, err := store.Load(id)
	if err != nil {
		return err
	}

	p.Step("%s", b.ID)
	p.Line("Created: %s (%s ago)", b.Timestamp.Local().Format(time.DateTime), utils.FormatAge(b.Timestamp))
	p.Line("Size:    %s", utils.FormatSize(b.Size))
	for _, item := range b.Items {
		p.Line("  %10s  %s", utils.FormatSize(item.Size), item.OriginalPath)
		p.Line("  %10s  sha256 %s", "", item.Checksum)
	}
	return nil
}
