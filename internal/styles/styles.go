// Package styles holds the palette shared by the TUI and the CLI report.
package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	ColorPrimary   = lipgloss.Color("#2563EB")
	ColorSecondary = lipgloss.Color("#14B8A6")
	ColorSuccess   = lipgloss.Color("#22C55E")
	ColorWarning   = lipgloss.Color("#EAB308")
	ColorDanger    = lipgloss.Color("#DC2626")
	ColorMuted     = lipgloss.Color("#78716C")
	ColorText      = lipgloss.Color("#FAFAF9")
	ColorBorder    = lipgloss.Color("#44403C")
)

var (
	TextStyle     = lipgloss.NewStyle().Foreground(ColorText)
	MutedStyle    = lipgloss.NewStyle().Foreground(ColorMuted)
	SuccessStyle  = lipgloss.NewStyle().Foreground(ColorSuccess)
	WarningStyle  = lipgloss.NewStyle().Foreground(ColorWarning)
	DangerStyle   = lipgloss.NewStyle().Foreground(ColorDanger)
	SelectedStyle = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
	CursorStyle   = lipgloss.NewStyle().Foreground(ColorSecondary).Bold(true)
	SizeStyle     = lipgloss.NewStyle().Foreground(ColorSecondary)
	HelpStyle     = lipgloss.NewStyle().Foreground(ColorMuted).MarginTop(1)
	DividerStyle  = lipgloss.NewStyle().Foreground(ColorBorder)

	// HeaderStyle renders screen titles as a filled badge.
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText).
			Background(ColorPrimary).
			Padding(0, 1)
)

// Divider renders a horizontal rule of width cells.
func Divider(width int) string {
	if width <= 0 {
		return ""
	}
	return DividerStyle.Render(strings.Repeat("─", width))
}
