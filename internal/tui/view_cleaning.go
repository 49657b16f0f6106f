package tui

import (
	"fmt"
	"strings"

	"github.com/RiPetitor/rCleaner/internal/styles"
)

func (m *Model) viewCleaning() string {
	var b strings.Builder

	title := "Cleaning..."
	if m.dryRun {
		title = "Dry Run..."
	}
	b.WriteString(styles.HeaderStyle.Render(title))
	b.WriteString("\n\n")

	nameWidth := m.nameWidth(2)

	for _, g := range m.cleaningCompleted {
		displayName := padToWidth(truncateToWidth(g.Name, nameWidth, false), nameWidth)
		if g.Result.CleanedItems == 0 && len(g.Result.Errors) > 0 {
			b.WriteString(fmt.Sprintf("%s %s %s\n",
				groupIcon(g.Result), displayName, styles.MutedStyle.Render("failed")))
			continue
		}
		size := fmt.Sprintf("%*s", colSize, formatSize(g.Result.FreedBytes))
		b.WriteString(fmt.Sprintf("%s %s %s\n",
			groupIcon(g.Result), displayName, styles.SizeStyle.Render(size)))
	}

	// Current group
	if m.cleaningName != "" && m.cleaningFraction < 1 {
		b.WriteString(fmt.Sprintf("%s %s\n", m.spinner.View(), m.cleaningName))
	}

	if m.recentErrors.Len() > 0 {
		b.WriteString("\n")
		b.WriteString(styles.MutedStyle.Render("Recent errors:"))
		b.WriteString("\n")
		b.WriteString(m.renderRecentErrors())
	}

	b.WriteString("\n")
	m.cleaningProgress.Width = max(20, min(m.width, 80))
	b.WriteString(m.cleaningProgress.ViewAs(m.cleaningFraction))
	b.WriteString("\n")
	b.WriteString(styles.MutedStyle.Render(fmt.Sprintf("%d%% (%s)",
		int(m.cleaningFraction*100), pluralize(m.cleaningTotal, "item", "items"))))
	b.WriteString("\n")

	if m.statusMessage != "" {
		b.WriteString("\n" + styles.WarningStyle.Render(m.statusMessage) + "\n")
	}
	b.WriteString("\n" + m.help.View(CleaningKeyMap))
	return b.String()
}

func (m *Model) renderRecentErrors() string {
	var b strings.Builder
	width := m.nameWidth(4) + colSize
	for _, e := range m.recentErrors.Items() {
		line := truncateToWidth(withGroup(e.Group, e.Msg), width, false)
		b.WriteString(fmt.Sprintf("  %s %s\n", styles.DangerStyle.Render("✗"), styles.MutedStyle.Render(line)))
	}
	return b.String()
}
