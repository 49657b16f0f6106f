package types

import (
	"fmt"
	"strings"
	"time"
)

// Category identifies the backend group an item belongs to.
type Category int

const (
	CategoryCache Category = iota
	CategoryApplications
	CategoryTempFiles
	CategoryLogs
	CategoryOldPackages
	CategoryOldKernels
)

// CategoryOrder is the fixed order in which category groups are cleaned.
var CategoryOrder = []Category{
	CategoryCache,
	CategoryApplications,
	CategoryTempFiles,
	CategoryLogs,
	CategoryOldPackages,
	CategoryOldKernels,
}

var categoryLabels = map[Category]string{
	CategoryCache:        "Cache",
	CategoryApplications: "Applications",
	CategoryTempFiles:    "TempFiles",
	CategoryLogs:         "Logs",
	CategoryOldPackages:  "OldPackages",
	CategoryOldKernels:   "OldKernels",
}

func (c Category) String() string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return fmt.Sprintf("Category(%d)", int(c))
}

// MarshalText encodes the category by label so cached scans stay readable.
func (c Category) MarshalText() ([]byte, error) {
	label, ok := categoryLabels[c]
	if !ok {
		return nil, fmt.Errorf("unknown category %d", int(c))
	}
	return []byte(label), nil
}

func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseCategory parses a category label (case-insensitive).
func ParseCategory(s string) (Category, error) {
	for cat, label := range categoryLabels {
		if strings.EqualFold(label, strings.TrimSpace(s)) {
			return cat, nil
		}
	}
	return 0, fmt.Errorf("unknown category %q", s)
}

// SourceKind tells where an item comes from.
type SourceKind string

const (
	SourceFileSystem     SourceKind = "filesystem"
	SourcePackageManager SourceKind = "package_manager"
	SourceContainer      SourceKind = "container"
)

// Source is the origin of an item. Name holds the package manager or
// container runtime name and is empty for filesystem items.
type Source struct {
	Kind SourceKind `json:"kind"`
	Name string     `json:"name,omitempty"`
}

func FileSystemSource() Source { return Source{Kind: SourceFileSystem} }

func PackageSource(manager string) Source {
	return Source{Kind: SourcePackageManager, Name: manager}
}

func ContainerSource(runtime string) Source {
	return Source{Kind: SourceContainer, Name: runtime}
}

func (s Source) IsPackage() bool { return s.Kind == SourcePackageManager }

func (s Source) String() string {
	if s.Name == "" {
		return string(s.Kind)
	}
	return string(s.Kind) + "(" + s.Name + ")"
}

// SortOrder represents the sorting criterion for items
type SortOrder string

const (
	SortBySize SortOrder = "size" // Size descending (default)
	SortByName SortOrder = "name" // Name ascending (A→Z)
)

// Next returns the next sort order in the rotation cycle
func (s SortOrder) Next() SortOrder {
	if s == SortBySize {
		return SortByName
	}
	return SortBySize
}

// Label returns the display label for the sort order
func (s SortOrder) Label() string {
	if s == SortByName {
		return "Name"
	}
	return "Size ↓"
}

// CleanupItem is a candidate for deletion. It is created fresh on every scan,
// mutated by the safety checker and only read by targets during Clean.
type CleanupItem struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Path          string   `json:"path,omitempty"`
	Size          uint64   `json:"size"`
	Description   string   `json:"description"`
	Category      Category `json:"category"`
	Source        Source   `json:"source"`
	Selected      bool     `json:"selected"`
	CanClean      bool     `json:"can_clean"`
	BlockedReason string   `json:"blocked_reason,omitempty"`
	Dependencies  []string `json:"dependencies,omitempty"`
}

// NewItem returns an item that is cleanable until a safety check says otherwise.
func NewItem(id, name, path string, size uint64, cat Category, src Source) CleanupItem {
	return CleanupItem{
		ID:       id,
		Name:     name,
		Path:     path,
		Size:     size,
		Category: cat,
		Source:   src,
		CanClean: true,
	}
}

func (i *CleanupItem) HasPath() bool { return i.Path != "" }

// Block marks the item as not cleanable. The first reason is kept.
func (i *CleanupItem) Block(reason string) {
	i.CanClean = false
	if i.BlockedReason == "" {
		i.BlockedReason = reason
	}
}

// CleanupResult accumulates the outcome of a clean call.
type CleanupResult struct {
	CleanedItems int      `json:"cleaned_items"`
	SkippedItems int      `json:"skipped_items"`
	FreedBytes   uint64   `json:"freed_bytes"`
	Errors       []string `json:"errors,omitempty"`
}

func NewCleanupResult() *CleanupResult {
	return &CleanupResult{Errors: make([]string, 0)}
}

// Merge adds other into r. Totals are independent of merge order.
func (r *CleanupResult) Merge(other *CleanupResult) {
	if other == nil {
		return
	}
	r.CleanedItems += other.CleanedItems
	r.SkippedItems += other.SkippedItems
	r.FreedBytes += other.FreedBytes
	r.Errors = append(r.Errors, other.Errors...)
}

func (r *CleanupResult) AddError(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// MergeResults folds results left to right into a new result.
func MergeResults(results ...*CleanupResult) *CleanupResult {
	total := NewCleanupResult()
	for _, r := range results {
		total.Merge(r)
	}
	return total
}

// GroupResult is the outcome of cleaning one category group.
type GroupResult struct {
	Category Category
	Name     string
	Result   CleanupResult
}

type Report struct {
	Result     CleanupResult
	Groups     []GroupResult
	TotalItems int
	BeforeFree uint64
	AfterFree  uint64
	DryRun     bool
	Duration   time.Duration
}
