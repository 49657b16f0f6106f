package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/RiPetitor/rCleaner/internal/styles"
)

func (m *Model) viewHelp() string {
	groups := keyMapFor(m.helpPreviousView).FullHelp()

	// 60% of terminal width, clamped to 40..60
	boxWidth := min(60, max(40, m.width*6/10))
	contentWidth := boxWidth - 6 // borders(2) + padding(4)

	keyStyle := lipgloss.NewStyle().Foreground(styles.ColorPrimary).Width(12)
	descStyle := lipgloss.NewStyle().Foreground(styles.ColorText)

	var b strings.Builder
	b.WriteString(styles.HeaderStyle.Render("Keyboard Shortcuts"))
	b.WriteString("\n\n")

	for i, group := range groups {
		for _, binding := range group {
			if !binding.Enabled() {
				continue
			}
			h := binding.Help()
			b.WriteString("  " + keyStyle.Render(h.Key) + descStyle.Render(h.Desc) + "\n")
		}
		if i < len(groups)-1 {
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(styles.Divider(contentWidth) + "\n\n")
	b.WriteString(styles.HelpStyle.Render("Press Esc or ? to close"))

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.ColorBorder).
		Padding(1, 2).
		Width(boxWidth)

	content := boxStyle.Render(b.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}
