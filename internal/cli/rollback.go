package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/RiPetitor/rCleaner/internal/backup"
)

func newRollbackCommand(opts *rootOptions) *cobra.Command {
	var ro backup.RollbackOptions

	cmd := &cobra.Command{
		Use:   "rollback <id>",
		Short: "Restore every item of a backup to its original location",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.app()
			if err != nil {
				return err
			}
			return runRollback(app.Store, args[0], ro, newPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr()))
		},
	}
	cmd.Flags().BoolVar(&ro.Verify, "verify", false, "Refuse to restore items whose stored copy fails its checksum")
	return cmd
}

func runRollback(store *backup.Store, id string, opts backup.RollbackOptions, p *printer) error {
	result, err := backup.Rollback(store, id, opts)
	if err != nil {
		return err
	}

	p.Success("Restored %d items from %s", result.Restored, id)
	if result.Skipped > 0 {
		p.Warning("Skipped %d items with no stored copy", result.Skipped)
	}
	for _, e := range result.Errors {
		p.Error("%s", e)
	}
	if len(result.Errors) > 0 {
		return fmt.Errorf("rollback finished with %d errors", len(result.Errors))
	}
	return nil
}
