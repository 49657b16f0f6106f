package backup

import (
	"fmt"
	"os"

	"github.com/RiPetitor/rCleaner/internal/logger"
	"github.com/RiPetitor/rCleaner/internal/utils"
)

type RollbackOptions struct {
	// Verify recomputes the checksum of each stored copy and refuses to
	// restore items whose copy no longer matches.
	Verify bool
}

type RollbackResult struct {
	Restored int
	Skipped  int
	Errors   []string
}

// Rollback copies every item of generation id back onto its original path,
// recreating missing parents. Items whose stored copy is gone are skipped;
// a failed item is recorded and the rest are still restored.
func Rollback(store *Store, id string, opts RollbackOptions) (*RollbackResult, error) {
	b, err := store.Load(id)
	if err != nil {
		return nil, err
	}

	result := &RollbackResult{Errors: make([]string, 0)}
	for _, item := range b.Items {
		if _, err := os.Lstat(item.BackupPath); err != nil {
			logger.Warn("rollback: stored copy missing", "backup", id, "path", item.BackupPath)
			result.Skipped++
			continue
		}

		if opts.Verify {
			sum, err := utils.HashPath(item.BackupPath)
			if err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("%s: verify: %v", item.OriginalPath, err))
				continue
			}
			if sum != item.Checksum {
				result.Errors = append(result.Errors, fmt.Sprintf("%s: checksum mismatch", item.OriginalPath))
				continue
			}
		}

		if err := utils.CopyPath(item.BackupPath, item.OriginalPath); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", item.OriginalPath, err))
			continue
		}
		result.Restored++
	}

	logger.Info("rollback completed",
		"backup", id,
		"restored", result.Restored,
		"skipped", result.Skipped,
		"errors", len(result.Errors),
	)
	return result, nil
}
