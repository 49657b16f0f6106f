package types

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategory_StringAndParse(t *testing.T) {
	for _, cat := range CategoryOrder {
		parsed, err := ParseCategory(cat.String())
		require.NoError(t, err)
		assert.Equal(t, cat, parsed)
	}

	parsed, err := ParseCategory("oldkernels")
	require.NoError(t, err)
	assert.Equal(t, CategoryOldKernels, parsed)

	_, err = ParseCategory("Downloads")
	assert.Error(t, err)
	assert.Equal(t, "Category(42)", Category(42).String())
}

func TestCategoryOrder_IsFixed(t *testing.T) {
	assert.Equal(t, []Category{
		CategoryCache,
		CategoryApplications,
		CategoryTempFiles,
		CategoryLogs,
		CategoryOldPackages,
		CategoryOldKernels,
	}, CategoryOrder)
}

func TestCleanupItem_JSONUsesCategoryLabel(t *testing.T) {
	item := NewItem("apt:foo", "foo", "", 10, CategoryOldPackages, PackageSource("apt"))

	data, err := json.Marshal(item)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"category":"OldPackages"`)
	assert.NotContains(t, string(data), `"path"`)

	var decoded CleanupItem
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, item, decoded)
}

func TestCleanupItem_BlockKeepsFirstReason(t *testing.T) {
	item := NewItem("/tmp/x", "x", "/tmp/x", 1, CategoryTempFiles, FileSystemSource())
	assert.True(t, item.CanClean)
	assert.True(t, item.HasPath())

	item.Block("first")
	item.Block("second")

	assert.False(t, item.CanClean)
	assert.Equal(t, "first", item.BlockedReason)
}

func TestSource(t *testing.T) {
	assert.Equal(t, "filesystem", FileSystemSource().String())
	assert.Equal(t, "package_manager(dnf)", PackageSource("dnf").String())
	assert.True(t, PackageSource("dnf").IsPackage())
	assert.False(t, ContainerSource("docker").IsPackage())
}

func TestSortOrder_NextAndLabel(t *testing.T) {
	assert.Equal(t, SortByName, SortBySize.Next())
	assert.Equal(t, SortBySize, SortByName.Next())
	assert.Equal(t, "Name", SortByName.Label())
	assert.Equal(t, "Size ↓", SortBySize.Label())
}

func result(cleaned, skipped int, freed uint64, errs ...string) *CleanupResult {
	return &CleanupResult{CleanedItems: cleaned, SkippedItems: skipped, FreedBytes: freed, Errors: errs}
}

func TestCleanupResult_MergeIsAssociative(t *testing.T) {
	a := result(1, 0, 100, "a")
	b := result(2, 1, 200)
	c := result(0, 3, 50, "c1", "c2")

	left := MergeResults(MergeResults(a, b), c)
	right := MergeResults(a, MergeResults(b, c))

	assert.Equal(t, left, right)
	assert.Equal(t, 3, left.CleanedItems)
	assert.Equal(t, 4, left.SkippedItems)
	assert.Equal(t, uint64(350), left.FreedBytes)
	assert.Equal(t, []string{"a", "c1", "c2"}, left.Errors)
}

func TestCleanupResult_MergeTotalsAreCommutative(t *testing.T) {
	a := result(1, 2, 300, "x")
	b := result(4, 0, 7, "y")

	ab := MergeResults(a, b)
	ba := MergeResults(b, a)

	assert.Equal(t, ab.CleanedItems, ba.CleanedItems)
	assert.Equal(t, ab.SkippedItems, ba.SkippedItems)
	assert.Equal(t, ab.FreedBytes, ba.FreedBytes)
	assert.ElementsMatch(t, ab.Errors, ba.Errors)
}

func TestCleanupResult_MergeNilAndAddError(t *testing.T) {
	r := NewCleanupResult()
	r.Merge(nil)
	r.AddError("%s: %d", "apt", 3)

	assert.Equal(t, []string{"apt: 3"}, r.Errors)
	assert.Zero(t, r.CleanedItems)
}

func TestError_IsMatchesKind(t *testing.T) {
	err := NewError(KindNotFound, "load backup", os.ErrNotExist)
	wrapped := fmt.Errorf("rollback: %w", err)

	assert.True(t, errors.Is(wrapped, ErrNotFound))
	assert.False(t, errors.Is(wrapped, ErrBackup))
	assert.True(t, errors.Is(wrapped, os.ErrNotExist))
	assert.Equal(t, "not found error: load backup: file does not exist", err.Error())

	kind, ok := KindOf(wrapped)
	require.True(t, ok)
	assert.Equal(t, KindNotFound, kind)

	_, ok = KindOf(errors.New("plain"))
	assert.False(t, ok)
}

func TestErrorf(t *testing.T) {
	err := Errorf(KindBackup, "backup size %d exceeds limit %d", 20, 10)
	assert.ErrorIs(t, err, ErrBackup)
	assert.Equal(t, "backup error: backup size 20 exceeds limit 10", err.Error())
}
