package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/RiPetitor/rCleaner/internal/styles"
	"github.com/RiPetitor/rCleaner/internal/types"
)

// confirmGroup is one category line of the confirm screen.
type confirmGroup struct {
	category types.Category
	count    int
	size     uint64
}

func (m *Model) confirmGroups() []confirmGroup {
	byCat := make(map[types.Category]*confirmGroup)
	for _, item := range m.selectedItems() {
		g, ok := byCat[item.Category]
		if !ok {
			g = &confirmGroup{category: item.Category}
			byCat[item.Category] = g
		}
		g.count++
		g.size += item.Size
	}

	var groups []confirmGroup
	for _, cat := range types.CategoryOrder {
		if g, ok := byCat[cat]; ok {
			groups = append(groups, *g)
		}
	}
	return groups
}

func (m *Model) viewConfirm() string {
	var b strings.Builder

	title := "Confirm Cleanup"
	if m.dryRun {
		title = "Confirm Dry Run"
	}
	b.WriteString(styles.HeaderStyle.Render(title))
	b.WriteString("\n\n")

	if m.dryRun {
		b.WriteString(styles.WarningStyle.Render("  → Nothing will be removed, sizes are estimates"))
	} else {
		b.WriteString(styles.SuccessStyle.Render("  → Files are backed up before removal"))
	}
	b.WriteString("\n\n")
	b.WriteString(styles.Divider(50) + "\n\n")

	selected := m.selectedItems()
	b.WriteString(fmt.Sprintf("  %s in %s will be cleaned.\n\n",
		styles.DangerStyle.Render(formatSize(m.getSelectedSize())),
		pluralize(len(selected), "item", "items")))

	for _, g := range m.confirmGroups() {
		size := fmt.Sprintf("%*s", colSize, formatSize(g.size))
		b.WriteString(fmt.Sprintf("  %-16s %4d  %s\n", g.category, g.count, styles.SizeStyle.Render(size)))
	}

	b.WriteString("\n" + styles.Divider(50) + "\n\n")
	if !m.dryRun {
		b.WriteString(styles.MutedStyle.Render("  Restore later with: rcleaner rollback <id>"))
		b.WriteString("\n\n")
	}
	b.WriteString(fmt.Sprintf("  %s Press y or Enter to continue\n", styles.SuccessStyle.Render("▸")))
	b.WriteString(fmt.Sprintf("  %s Press n or Esc to cancel\n", styles.DangerStyle.Render("▸")))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, b.String())
}
