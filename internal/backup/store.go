// Package backup snapshots items before deletion and restores them on demand.
//
// Every generation lives in its own directory under the store root together
// with a metadata.json sidecar. A directory without readable metadata is not a
// generation and is ignored by List.
package backup

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/RiPetitor/rCleaner/internal/config"
	"github.com/RiPetitor/rCleaner/internal/logger"
	"github.com/RiPetitor/rCleaner/internal/types"
	"github.com/RiPetitor/rCleaner/internal/utils"
)

const metadataFile = "metadata.json"

type Backup struct {
	ID        string       `json:"id"`
	Timestamp time.Time    `json:"timestamp"`
	Items     []BackupItem `json:"items"`
	Size      uint64       `json:"size"`
}

type BackupItem struct {
	OriginalPath string `json:"original_path"`
	BackupPath   string `json:"backup_path"`
	Size         uint64 `json:"size"`
	Checksum     string `json:"checksum"`
}

// Store owns the backup directory tree. It does no locking: callers run at
// most one Create at a time.
type Store struct {
	dir     string
	maxSize uint64
	now     func() time.Time
	pid     int
}

// New creates dir if needed. A maxSize of 0 disables the capacity budget.
func New(dir string, maxSize uint64) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, types.NewError(types.KindIO, "create backup dir", err)
	}
	return &Store{
		dir:     dir,
		maxSize: maxSize,
		now:     time.Now,
		pid:     os.Getpid(),
	}, nil
}

func NewFromConfig(cfg *config.Config) (*Store, error) {
	return New(config.DefaultBackupDir(), cfg.MaxBackupBytes())
}

func (s *Store) Dir() string { return s.dir }

func (s *Store) MaxSize() uint64 { return s.maxSize }

// Create copies the cleanable items with a path into a new generation.
// It returns nil, nil when there is nothing to back up.
func (s *Store) Create(items []types.CleanupItem) (*Backup, error) {
	roots := dedupRoots(collectPaths(items))
	if len(roots) == 0 {
		return nil, nil
	}

	var estimate uint64
	for _, p := range roots {
		size, err := utils.PathSize(p)
		if err != nil {
			return nil, types.NewError(types.KindIO, "estimate backup size", err)
		}
		estimate += size
	}
	if err := s.ensureCapacity(estimate); err != nil {
		return nil, err
	}

	id, genDir, err := s.newGeneration()
	if err != nil {
		return nil, err
	}

	backup := &Backup{ID: id, Items: make([]BackupItem, 0, len(roots))}
	for _, src := range roots {
		item, ok, err := copyItem(src, genDir)
		if err != nil {
			os.RemoveAll(genDir)
			return nil, types.NewError(types.KindBackup, "copy "+src, err)
		}
		if !ok {
			logger.Debug("backup source vanished", "path", src)
			continue
		}
		backup.Items = append(backup.Items, item)
		backup.Size += item.Size
	}

	if len(backup.Items) == 0 {
		os.RemoveAll(genDir)
		return nil, nil
	}

	backup.Timestamp = s.now().UTC()
	if err := writeMetadata(genDir, backup); err != nil {
		os.RemoveAll(genDir)
		return nil, err
	}

	logger.Info("backup created", "id", backup.ID, "items", len(backup.Items), "size", backup.Size)

	if err := s.enforceMaxSize(); err != nil {
		return backup, err
	}
	return backup, nil
}

// List returns every readable generation, oldest first.
func (s *Store) List() ([]Backup, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, types.NewError(types.KindIO, "list backups", err)
	}

	backups := make([]Backup, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		b, err := readMetadata(filepath.Join(s.dir, entry.Name()))
		if err != nil {
			logger.Debug("skipping backup without metadata", "dir", entry.Name(), "error", err)
			continue
		}
		backups = append(backups, *b)
	}

	sort.Slice(backups, func(i, j int) bool {
		if backups[i].Timestamp.Equal(backups[j].Timestamp) {
			return backups[i].ID < backups[j].ID
		}
		return backups[i].Timestamp.Before(backups[j].Timestamp)
	})
	return backups, nil
}

func (s *Store) Load(id string) (*Backup, error) {
	if !validID(id) {
		return nil, types.Errorf(types.KindNotFound, "backup %q", id)
	}
	b, err := readMetadata(filepath.Join(s.dir, id))
	if err != nil {
		return nil, types.NewError(types.KindNotFound, "backup "+id, err)
	}
	return b, nil
}

// Delete removes a generation. Deleting a missing id succeeds.
func (s *Store) Delete(id string) error {
	if !validID(id) {
		return types.Errorf(types.KindNotFound, "backup %q", id)
	}
	if err := os.RemoveAll(filepath.Join(s.dir, id)); err != nil {
		return types.NewError(types.KindIO, "delete backup "+id, err)
	}
	return nil
}

func (s *Store) TotalSize() (uint64, error) {
	backups, err := s.List()
	if err != nil {
		return 0, err
	}
	return sumSizes(backups), nil
}

// ensureCapacity evicts the oldest generations until incoming fits the
// budget. When incoming alone exceeds the budget nothing is deleted.
func (s *Store) ensureCapacity(incoming uint64) error {
	if s.maxSize == 0 {
		return nil
	}
	if incoming > s.maxSize {
		return types.Errorf(types.KindBackup, "backup size %d exceeds limit %d", incoming, s.maxSize)
	}

	backups, err := s.List()
	if err != nil {
		return err
	}
	total := sumSizes(backups)
	for _, b := range backups {
		if total+incoming <= s.maxSize {
			break
		}
		if err := s.evict(b); err != nil {
			return err
		}
		total = saturatingSub(total, b.Size)
	}

	if total+incoming > s.maxSize {
		return types.Errorf(types.KindBackup, "insufficient backup capacity for size %d", incoming)
	}
	return nil
}

// enforceMaxSize evicts the oldest generations while the store is over budget.
func (s *Store) enforceMaxSize() error {
	if s.maxSize == 0 {
		return nil
	}
	backups, err := s.List()
	if err != nil {
		return err
	}
	total := sumSizes(backups)
	for _, b := range backups {
		if total <= s.maxSize {
			break
		}
		if err := s.evict(b); err != nil {
			return err
		}
		total = saturatingSub(total, b.Size)
	}
	return nil
}

func (s *Store) evict(b Backup) error {
	logger.Info("evicting backup", "id", b.ID, "size", b.Size)
	return s.Delete(b.ID)
}

// newGeneration reserves a fresh directory named backup-<time>-<pid>,
// adding a numeric suffix when that name is taken.
func (s *Store) newGeneration() (string, string, error) {
	base := fmt.Sprintf("backup-%s-%d", s.now().UTC().Format("20060102150405"), s.pid)
	id := base
	for n := 1; ; n++ {
		dir := filepath.Join(s.dir, id)
		err := os.Mkdir(dir, 0o755)
		if err == nil {
			return id, dir, nil
		}
		if !os.IsExist(err) {
			return "", "", types.NewError(types.KindIO, "create generation", err)
		}
		id = fmt.Sprintf("%s-%d", base, n)
	}
}

func collectPaths(items []types.CleanupItem) []string {
	var paths []string
	for i := range items {
		if !items[i].CanClean || !items[i].HasPath() {
			continue
		}
		paths = append(paths, filepath.Clean(items[i].Path))
	}
	return paths
}

// dedupRoots keeps only the shallowest of any nested paths.
func dedupRoots(paths []string) []string {
	sorted := append([]string(nil), paths...)
	sort.SliceStable(sorted, func(i, j int) bool { return len(sorted[i]) < len(sorted[j]) })

	var roots []string
	for _, p := range sorted {
		covered := false
		for _, r := range roots {
			if utils.IsWithin(p, r) {
				covered = true
				break
			}
		}
		if !covered {
			roots = append(roots, p)
		}
	}
	return roots
}

// sanitizePath turns an absolute path into a relative one with root, "." and
// ".." components removed so it cannot escape the generation directory.
func sanitizePath(p string) string {
	parts := strings.Split(filepath.ToSlash(p), "/")
	kept := parts[:0]
	for _, part := range parts {
		if part == "" || part == "." || part == ".." {
			continue
		}
		kept = append(kept, part)
	}
	return filepath.Join(kept...)
}

// copyItem copies src into genDir. ok is false when src no longer exists.
func copyItem(src, genDir string) (BackupItem, bool, error) {
	if _, err := os.Lstat(src); err != nil {
		if os.IsNotExist(err) {
			return BackupItem{}, false, nil
		}
		return BackupItem{}, false, err
	}

	rel := sanitizePath(src)
	if rel == "" {
		return BackupItem{}, false, fmt.Errorf("refusing to back up %s", src)
	}
	dst := filepath.Join(genDir, rel)

	if err := utils.CopyPath(src, dst); err != nil {
		return BackupItem{}, false, err
	}
	size, err := utils.PathSize(src)
	if err != nil {
		return BackupItem{}, false, err
	}
	sum, err := utils.HashPath(src)
	if err != nil {
		return BackupItem{}, false, err
	}

	return BackupItem{
		OriginalPath: src,
		BackupPath:   dst,
		Size:         size,
		Checksum:     sum,
	}, true, nil
}

func writeMetadata(genDir string, b *Backup) error {
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return types.NewError(types.KindSerialization, "encode metadata", err)
	}

	tmp, err := os.CreateTemp(genDir, ".metadata-*.tmp")
	if err != nil {
		return types.NewError(types.KindIO, "write metadata", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return types.NewError(types.KindIO, "write metadata", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return types.NewError(types.KindIO, "write metadata", err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(genDir, metadataFile)); err != nil {
		os.Remove(tmp.Name())
		return types.NewError(types.KindIO, "write metadata", err)
	}
	return nil
}

func readMetadata(genDir string) (*Backup, error) {
	data, err := os.ReadFile(filepath.Join(genDir, metadataFile))
	if err != nil {
		return nil, err
	}
	var b Backup
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, err
	}
	if b.ID == "" {
		return nil, errors.New("metadata has no id")
	}
	return &b, nil
}

func validID(id string) bool {
	return id != "" && id != "." && id != ".." &&
		!strings.ContainsRune(id, '/') && !strings.Contains(id, "..")
}

func sumSizes(backups []Backup) uint64 {
	var total uint64
	for _, b := range backups {
		total += b.Size
	}
	return total
}

func saturatingSub(a, b uint64) uint64 {
	if b > a {
		return 0
	}
	return a - b
}
