package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"

	"github.com/RiPetitor/rCleaner/internal/types"
)

func TestTruncateToWidth(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		width   int
		fromEnd bool
		want    string
	}{
		{"fits", "short", 10, false, "short"},
		{"keeps head", "abcdefghij", 6, false, "abcd.."},
		{"zero width", "abc", 0, false, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncateToWidth(tt.in, tt.width, tt.fromEnd)
			assert.Equal(t, tt.want, got)
			assert.LessOrEqual(t, lipgloss.Width(got), max(tt.width, 0))
		})
	}
}

func TestTruncateToWidthKeepsTail(t *testing.T) {
	got := truncateToWidth("/very/long/path/file", 10, true)
	assert.True(t, strings.HasPrefix(got, "..."))
	assert.True(t, strings.HasSuffix(got, "/file"))
	assert.LessOrEqual(t, lipgloss.Width(got), 10)
}

func TestPadToWidth(t *testing.T) {
	assert.Equal(t, "ab   ", padToWidth("ab", 5))
	assert.Equal(t, "abcdef", padToWidth("abcdef", 3))
}

func TestWithGroup(t *testing.T) {
	assert.Equal(t, "Logs: boom", withGroup("Logs", "boom"))
	assert.Equal(t, "Logs: boom", withGroup("Logs", "Logs: boom"))
	assert.Equal(t, "cancelled", withGroup("", "cancelled"))
}

func TestPluralize(t *testing.T) {
	assert.Equal(t, "1 item", pluralize(1, "item", "items"))
	assert.Equal(t, "0 items", pluralize(0, "item", "items"))
}

func TestCategoryCheckbox(t *testing.T) {
	assert.Contains(t, categoryCheckbox(0, 0), "[!]")
	assert.Contains(t, categoryCheckbox(2, 2), "[x]")
	assert.Contains(t, categoryCheckbox(2, 1), "[-]")
	assert.Equal(t, "[ ]", categoryCheckbox(2, 0))
}

func TestGroupIcon(t *testing.T) {
	assert.Contains(t, groupIcon(types.CleanupResult{CleanedItems: 1}), "✓")
	assert.Contains(t, groupIcon(types.CleanupResult{CleanedItems: 1, Errors: []string{"x"}}), "△")
	assert.Contains(t, groupIcon(types.CleanupResult{Errors: []string{"x"}}), "✗")
}
