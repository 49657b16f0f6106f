package target

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/RiPetitor/rCleaner/internal/logger"
	"github.com/RiPetitor/rCleaner/internal/types"
	"github.com/RiPetitor/rCleaner/internal/utils"
)

const journalItemID = "systemd-journal"

var removeFile = os.Remove

var rotatedExtensions = map[string]bool{
	".gz":  true,
	".xz":  true,
	".bz2": true,
	".zip": true,
	".old": true,
}

// LogsTarget removes rotated log files and vacuums the systemd journal.
// Live log files are never touched.
type LogsTarget struct {
	logDir   string
	backuper Backuper
}

func NewLogsTarget(b Backuper) *LogsTarget {
	return &LogsTarget{logDir: "/var/log", backuper: b}
}

func (t *LogsTarget) Name() string { return "Logs Cleaner" }

func (t *LogsTarget) Category() types.Category { return types.CategoryLogs }

func (t *LogsTarget) Scan(ctx context.Context) ([]types.CleanupItem, error) {
	var items []types.CleanupItem

	files, err := rotatedLogs(t.logDir)
	if err != nil {
		logger.Debug("log scan failed", "path", t.logDir, "error", err)
	}
	if size := sumFileSizes(files); size > 0 {
		item := types.NewItem(t.logDir, "System logs", t.logDir, size, t.Category(), types.FileSystemSource())
		item.Description = t.logDir
		items = append(items, item)
	}

	if item, ok := t.scanJournal(ctx); ok {
		items = append(items, item)
	}
	return items, nil
}

func (t *LogsTarget) scanJournal(ctx context.Context) (types.CleanupItem, bool) {
	if !utils.CommandExists("journalctl") {
		return types.CleanupItem{}, false
	}
	out, err := commandOutput(ctx, "journalctl", "--disk-usage")
	if err != nil {
		logger.Debug("journal usage failed", "error", err)
		return types.CleanupItem{}, false
	}
	size, ok := parseJournalSize(out)
	if !ok {
		return types.CleanupItem{}, false
	}
	item := types.NewItem(journalItemID, "systemd journal", "", size, t.Category(), types.FileSystemSource())
	item.Description = strings.TrimSpace(out)
	return item, true
}

func (t *LogsTarget) Clean(items []types.CleanupItem, dryRun bool) (*types.CleanupResult, error) {
	result := types.NewCleanupResult()

	var journal []types.CleanupItem
	var dirs []types.CleanupItem
	for _, item := range items {
		switch {
		case !item.CanClean:
			result.SkippedItems++
		case item.ID == journalItemID:
			journal = append(journal, item)
		case item.HasPath():
			dirs = append(dirs, item)
		default:
			result.SkippedItems++
		}
	}

	if !dryRun {
		if err := backupBeforeClean(t.backuper, rotatedLogItems(dirs), dryRun); err != nil {
			return nil, err
		}
	}

	for _, item := range journal {
		if dryRun {
			logger.Info("dry run: would vacuum systemd journal", "size", item.Size)
		} else if _, err := commandOutput(context.Background(), "journalctl", "--vacuum-time=7d"); err != nil {
			result.AddError("%s: %v", item.Name, err)
			continue
		}
		result.CleanedItems++
		result.FreedBytes += item.Size
	}

	for _, item := range dirs {
		if dryRun {
			logger.Info("dry run: would clean", "path", item.Path, "size", item.Size)
			result.CleanedItems++
			result.FreedBytes += item.Size
			continue
		}
		// Cleaned only when every rotated file was removed. Freed bytes
		// count whatever did go.
		freed, errs := removeRotatedLogs(item.Path)
		result.FreedBytes += freed
		if len(errs) > 0 {
			for _, err := range errs {
				result.AddError("%v", err)
			}
			continue
		}
		result.CleanedItems++
	}
	return result, nil
}

type logFile struct {
	path string
	size uint64
}

func isRotatedLog(name string) bool {
	if rotatedExtensions[filepath.Ext(name)] {
		return true
	}
	for _, suffix := range []string{".1", ".2", ".3", ".4", ".5"} {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return false
}

// rotatedLogs walks dir and returns the rotated regular files under it.
// Unreadable sub-directories are skipped.
func rotatedLogs(dir string) ([]logFile, error) {
	var files []logFile
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return err
			}
			return nil
		}
		if !d.Type().IsRegular() || !isRotatedLog(d.Name()) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		files = append(files, logFile{path: path, size: uint64(info.Size())})
		return nil
	})
	if os.IsNotExist(err) {
		return nil, nil
	}
	return files, err
}

func sumFileSizes(files []logFile) uint64 {
	var total uint64
	for _, f := range files {
		total += f.size
	}
	return total
}

// rotatedLogItems expands log directory items into one item per rotated file
// so only what is about to be removed gets backed up.
func rotatedLogItems(dirs []types.CleanupItem) []types.CleanupItem {
	var items []types.CleanupItem
	for _, d := range dirs {
		files, _ := rotatedLogs(d.Path)
		for _, f := range files {
			items = append(items, types.NewItem(f.path, filepath.Base(f.path), f.path, f.size, d.Category, d.Source))
		}
	}
	return items
}

func removeRotatedLogs(dir string) (uint64, []error) {
	files, err := rotatedLogs(dir)
	if err != nil {
		return 0, []error{err}
	}
	var freed uint64
	var errs []error
	for _, f := range files {
		if err := removeFile(f.path); err != nil {
			errs = append(errs, err)
			continue
		}
		freed += f.size
	}
	return freed, errs
}

// parseJournalSize extracts the first size token from journalctl
// --disk-usage output. journalctl prints single-letter units that are
// powers of 1024.
func parseJournalSize(output string) (uint64, bool) {
	for _, token := range strings.Fields(output) {
		token = strings.TrimRight(token, ".,")
		if !strings.ContainsAny(token, "0123456789") || !strings.ContainsFunc(token, isLetter) {
			continue
		}
		last := token[len(token)-1]
		if strings.ContainsRune("KMGTkmgt", rune(last)) {
			token += "iB"
		}
		if size, err := utils.ParseSize(token); err == nil {
			return size, true
		}
	}
	return 0, false
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
