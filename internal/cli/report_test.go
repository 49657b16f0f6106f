package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"

	"github.com/RiPetitor/rCleaner/internal/types"
)

func TestFormatReport_Nil(t *testing.T) {
	assert.Equal(t, "No report available.\n", FormatReport(nil))
}

func TestFormatReport_DryRunNoItems(t *testing.T) {
	t.Setenv("COLUMNS", "80")
	report := &types.Report{
		Result:   *types.NewCleanupResult(),
		DryRun:   true,
		Duration: 50 * time.Millisecond,
	}

	output := FormatReport(report)

	assert.Contains(t, output, "Dry Run Report")
	assert.Contains(t, output, "Summary")
	assert.Contains(t, output, "Largest")
	assert.Contains(t, output, "Nothing was cleaned.")
	assert.Contains(t, output, "No items to clean.")
	assert.Contains(t, output, "Would free")
	assert.Contains(t, output, "nothing was removed")
	assert.Contains(t, output, "Time: 50ms")
}

func TestFormatReport_IncludesGroups(t *testing.T) {
	t.Setenv("COLUMNS", "100")
	report := &types.Report{
		Result: types.CleanupResult{CleanedItems: 2, FreedBytes: 1024, Errors: []string{"Logs Cleaner: failed to remove"}},
		Groups: []types.GroupResult{
			{
				Category: types.CategoryCache,
				Name:     "Cache Cleaner",
				Result:   types.CleanupResult{CleanedItems: 1, FreedBytes: 1024},
			},
			{
				Category: types.CategoryLogs,
				Name:     "Logs Cleaner",
				Result:   types.CleanupResult{CleanedItems: 1, Errors: []string{"Logs Cleaner: failed to remove"}},
			},
			{
				Category: types.CategoryTempFiles,
				Name:     "Temp Files Cleaner",
			},
		},
		BeforeFree: 10 * 1024 * 1024,
		AfterFree:  11 * 1024 * 1024,
	}

	output := FormatReport(report)

	assert.Contains(t, output, "Cleanup Report")
	assert.Contains(t, output, "Recovered")
	assert.Contains(t, output, "Details")
	assert.Contains(t, output, "STATUS")
	assert.Contains(t, output, "Cache Cleaner")
	assert.Contains(t, output, "WARN")
	assert.Contains(t, output, "failed to remove")
	assert.Contains(t, output, "Disk free:")
	assert.NotContains(t, output, "Temp Files Cleaner")
}

func TestFormatReport_NarrowLayoutStacksGroups(t *testing.T) {
	t.Setenv("COLUMNS", "50")
	report := &types.Report{
		Groups: []types.GroupResult{
			{Name: "Old Kernels Cleaner", Result: types.CleanupResult{Errors: []string{"rpm failed"}}},
		},
	}

	output := FormatReport(report)

	assert.NotContains(t, output, "STATUS")
	assert.Contains(t, output, "FAIL")
	assert.Contains(t, output, "Old Kernels Cleaner: ")
}

func TestFormatReport_MediumWidthUsesTable(t *testing.T) {
	t.Setenv("COLUMNS", "70")
	report := &types.Report{
		Groups: []types.GroupResult{
			{Name: "Cache Cleaner", Result: types.CleanupResult{CleanedItems: 1, FreedBytes: 10}},
		},
	}

	output := FormatReport(report)

	assert.Contains(t, output, "STATUS")
	assert.Contains(t, output, "1. Cache Cleaner")
	assert.Contains(t, output, "(1 item)")
}

func TestLayoutFor(t *testing.T) {
	assert.Equal(t, layoutStacked, layoutFor(40))
	assert.Equal(t, layoutTable, layoutFor(70))
	assert.Equal(t, layoutColumns, layoutFor(90))
}

func TestLargestGroups_DoesNotReorderInput(t *testing.T) {
	groups := []types.GroupResult{
		{Name: "small", Result: types.CleanupResult{FreedBytes: 1}},
		{Name: "big", Result: types.CleanupResult{FreedBytes: 100}},
	}

	lines := largestGroups(reportStyles{}, groups, 3)

	assert.Len(t, lines, 2)
	assert.Contains(t, lines[0], "big")
	assert.Equal(t, "small", groups[0].Name)
}

func TestStatusLabel(t *testing.T) {
	assert.Equal(t, "OK", statusLabel(types.CleanupResult{CleanedItems: 1}))
	assert.Equal(t, "WARN", statusLabel(types.CleanupResult{CleanedItems: 1, Errors: []string{"x"}}))
	assert.Equal(t, "FAIL", statusLabel(types.CleanupResult{Errors: []string{"x"}}))
}

func TestClip(t *testing.T) {
	assert.Equal(t, "abc", clip("abc", 5))
	assert.Equal(t, "ab...", clip("abcdefgh", 5))
	assert.Empty(t, clip("abc", 0))

	assert.Equal(t, "abc", clipLeft("abc", 5))
	tail := clipLeft("abcdefgh", 5)
	assert.True(t, strings.HasSuffix(tail, "gh"))
	assert.True(t, strings.HasPrefix(tail, "..."))
	assert.LessOrEqual(t, ansi.StringWidth(tail), 5)
}
