package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/RiPetitor/rCleaner/internal/styles"
	"github.com/RiPetitor/rCleaner/internal/types"
	"github.com/RiPetitor/rCleaner/internal/utils"
)

const (
	colSize = 10

	// listPrefixWidth: cursor(2) + indent(2) + checkbox(3) + space(1)
	listPrefixWidth = 8
)

func formatSize(bytes uint64) string {
	return utils.FormatSize(bytes)
}

func pluralize(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}

// checkbox renders the selection mark for an item.
func (m *Model) checkbox(item *types.CleanupItem) string {
	switch {
	case !item.CanClean:
		return styles.DangerStyle.Render("[!]")
	case m.isExcluded(item):
		return styles.MutedStyle.Render("[~]")
	case item.Selected:
		return styles.SelectedStyle.Render("[x]")
	default:
		return "[ ]"
	}
}

// categoryCheckbox renders [x], [-] or [ ] for a category header.
func categoryCheckbox(selectable, selected int) string {
	switch {
	case selectable == 0:
		return styles.MutedStyle.Render("[!]")
	case selected == selectable:
		return styles.SelectedStyle.Render("[x]")
	case selected > 0:
		return styles.SelectedStyle.Render("[-]")
	default:
		return "[ ]"
	}
}

// groupIcon summarizes a cleaned group: full success, partial or failure.
func groupIcon(r types.CleanupResult) string {
	switch {
	case len(r.Errors) == 0:
		return styles.SuccessStyle.Render("✓")
	case r.CleanedItems > 0:
		return styles.WarningStyle.Render("△")
	default:
		return styles.DangerStyle.Render("✗")
	}
}

// withGroup prefixes msg with the group name unless it already has it.
func withGroup(name, msg string) string {
	if name == "" || strings.HasPrefix(msg, name+":") {
		return msg
	}
	return name + ": " + msg
}

// shortenPath truncates path to fit within maxWidth display columns.
func shortenPath(path string, maxWidth int) string {
	if home := utils.HomeDir(); home != "" {
		if abs, err := filepath.Abs(home); err == nil && strings.HasPrefix(path, abs+"/") {
			path = "~" + path[len(abs):]
		}
	}
	return truncateToWidth(path, maxWidth, true)
}

// truncateToWidth truncates s to maxWidth display columns. With fromEnd the
// tail is kept behind a "..." prefix, otherwise the head is kept with "..".
func truncateToWidth(s string, maxWidth int, fromEnd bool) string {
	if maxWidth <= 0 {
		return ""
	}
	width := ansi.StringWidth(s)
	if width <= maxWidth {
		return s
	}
	if fromEnd {
		return ansi.TruncateLeft(s, width-maxWidth+3, "...")
	}
	return ansi.Truncate(s, maxWidth, "..")
}

// padToWidth pads string with spaces to reach exactly targetWidth display columns.
func padToWidth(s string, targetWidth int) string {
	currentWidth := lipgloss.Width(s)
	if currentWidth >= targetWidth {
		return s
	}
	return s + strings.Repeat(" ", targetWidth-currentWidth)
}
