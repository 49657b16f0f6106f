package tui

import (
	"fmt"
	"strings"

	"github.com/RiPetitor/rCleaner/internal/styles"
	"github.com/RiPetitor/rCleaner/internal/types"
	"github.com/RiPetitor/rCleaner/internal/utils"
)

func (m *Model) listHeader() string {
	var b strings.Builder

	title := "rCleaner"
	if m.version != "" {
		title += " " + m.version
	}
	b.WriteString(styles.HeaderStyle.Render(title))
	switch {
	case m.scanning:
		b.WriteString(fmt.Sprintf("  %s Scanning...", m.spinner.View()))
	case m.fromCache:
		b.WriteString(styles.MutedStyle.Render(fmt.Sprintf("  cached %s ago", utils.FormatAge(m.scannedAt))))
	}
	b.WriteString("\n")

	summary := fmt.Sprintf("Available: %s", styles.SizeStyle.Render(formatSize(m.getAvailableSize())))
	if m.hasSelection() {
		selected := m.selectedItems()
		summary += fmt.Sprintf("  │  Selected: %s (%d)",
			styles.SizeStyle.Render(formatSize(m.getSelectedSize())), len(selected))
	}
	if n := m.protectedCount(); n > 0 {
		summary += "  │  " + styles.DangerStyle.Render(fmt.Sprintf("Protected: %d", n))
	}
	if m.dryRun {
		summary += "  │  " + styles.WarningStyle.Render("DRY RUN")
	}
	b.WriteString(summary + "\n")

	meta := "Sort: " + m.sortOrder.Label()
	switch m.filterState {
	case FilterTyping:
		b.WriteString(styles.MutedStyle.Render(meta) + "\n")
		b.WriteString(m.filterInput.View() + "\n")
	case FilterApplied:
		b.WriteString(styles.MutedStyle.Render(meta+"  │  Filter: "+m.filterText) + "\n")
	default:
		b.WriteString(styles.MutedStyle.Render(meta) + "\n")
	}

	b.WriteString(styles.Divider(60) + "\n")
	return b.String()
}

func (m *Model) listFooter() string {
	var b strings.Builder

	b.WriteString("\n")
	if detail := m.cursorDetail(); detail != "" {
		b.WriteString(detail + "\n")
	}
	if m.statusMessage != "" {
		b.WriteString(styles.WarningStyle.Render(m.statusMessage) + "\n")
	}
	if m.filterState == FilterTyping {
		b.WriteString(styles.HelpStyle.Render(FilterTypingFooter))
		return b.String()
	}
	b.WriteString(m.help.View(ListKeyMap))
	return b.String()
}

// cursorDetail describes the item under the cursor.
func (m *Model) cursorDetail() string {
	rows := m.rows()
	if m.cursor >= len(rows) || rows[m.cursor].isHeader() {
		return ""
	}
	item := &m.items[rows[m.cursor].item]

	var parts []string
	if item.HasPath() {
		parts = append(parts, shortenPath(item.Path, m.nameWidth(0)))
	} else {
		parts = append(parts, item.Source.String())
	}
	if item.Description != "" {
		parts = append(parts, item.Description)
	}
	line := styles.MutedStyle.Render(strings.Join(parts, "  │  "))
	if !item.CanClean {
		line += "\n" + styles.DangerStyle.Render("blocked: "+item.BlockedReason)
		if len(item.Dependencies) > 0 {
			line += "\n" + styles.MutedStyle.Render("required by: "+strings.Join(item.Dependencies, ", "))
		}
	}
	return line
}

func (m *Model) viewList() string {
	header := m.listHeader()
	footer := m.listFooter()
	visible := m.bodyLines(header, footer)

	var b strings.Builder
	b.WriteString(header)
	b.WriteString(m.renderListBody(visible))
	b.WriteString(footer)
	return b.String()
}

func (m *Model) renderListBody(visible int) string {
	rows := m.rows()
	if len(rows) == 0 {
		switch {
		case m.scanning:
			return styles.MutedStyle.Render("  Looking for things to clean...") + "\n"
		case m.filterState == FilterApplied:
			return styles.MutedStyle.Render("  No items match the filter") + "\n"
		case m.scanErr != nil:
			return styles.DangerStyle.Render("  Scan failed, press r to retry") + "\n"
		default:
			return styles.SuccessStyle.Render("  Nothing to clean") + "\n"
		}
	}

	m.scroll = scrollTo(m.cursor, m.scroll, visible)
	end := min(len(rows), m.scroll+visible)

	var b strings.Builder
	for i := m.scroll; i < end; i++ {
		b.WriteString(m.renderRow(rows[i], i == m.cursor))
		b.WriteString("\n")
	}
	if remaining := len(rows) - end; remaining > 0 {
		b.WriteString(styles.MutedStyle.Render(fmt.Sprintf("  ↓ %d more", remaining)))
		b.WriteString("\n")
	}
	return b.String()
}

func (m *Model) renderRow(r row, isCursor bool) string {
	cursor := "  "
	if isCursor {
		cursor = styles.CursorStyle.Render("▸ ")
	}

	if r.isHeader() {
		return cursor + m.renderCategoryRow(r.category, isCursor)
	}

	item := &m.items[r.item]
	nameWidth := m.nameWidth(listPrefixWidth)
	name := item.Name
	if !item.CanClean {
		name += " (" + item.BlockedReason + ")"
	}
	name = padToWidth(truncateToWidth(name, nameWidth, false), nameWidth)
	size := fmt.Sprintf("%*s", colSize, formatSize(item.Size))

	switch {
	case !item.CanClean || m.isExcluded(item):
		name = styles.MutedStyle.Render(name)
		size = styles.MutedStyle.Render(size)
	case isCursor:
		name = styles.SelectedStyle.Render(name)
		size = styles.SizeStyle.Render(size)
	default:
		size = styles.SizeStyle.Render(size)
	}
	return fmt.Sprintf("%s  %s %s %s", cursor, m.checkbox(item), name, size)
}

func (m *Model) renderCategoryRow(cat types.Category, isCursor bool) string {
	selectable, selected := m.categoryState(cat)
	count := len(m.categoryIndices(cat))

	nameWidth := m.nameWidth(listPrefixWidth) + 2
	label := fmt.Sprintf("%s (%d)", cat, count)
	label = padToWidth(truncateToWidth(label, nameWidth, false), nameWidth)
	if isCursor {
		label = styles.SelectedStyle.Render(label)
	} else {
		label = styles.TextStyle.Bold(true).Render(label)
	}
	size := styles.SizeStyle.Render(fmt.Sprintf("%*s", colSize, formatSize(m.categorySize(cat))))
	return fmt.Sprintf("%s %s %s", categoryCheckbox(selectable, selected), label, size)
}
