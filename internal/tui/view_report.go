package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/RiPetitor/rCleaner/internal/styles"
)

func (m *Model) reportHeader() string {
	var b strings.Builder
	r := m.report

	title := "Cleanup Complete"
	freedLabel := "Freed:    "
	if r.DryRun {
		title = "Dry Run Complete"
		freedLabel = "Would free:"
	}
	b.WriteString(styles.HeaderStyle.Render(title))
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("%s %s\n", freedLabel, styles.SizeStyle.Render(formatSize(r.Result.FreedBytes))))
	b.WriteString(fmt.Sprintf("Cleaned:    %s\n", styles.SuccessStyle.Render(fmt.Sprintf("%d", r.Result.CleanedItems))))
	if r.Result.SkippedItems > 0 {
		b.WriteString(fmt.Sprintf("Skipped:    %s\n", styles.WarningStyle.Render(fmt.Sprintf("%d", r.Result.SkippedItems))))
	}
	if n := len(r.Result.Errors); n > 0 {
		b.WriteString(fmt.Sprintf("Errors:     %s\n", styles.DangerStyle.Render(fmt.Sprintf("%d", n))))
	}
	if r.BeforeFree > 0 && r.AfterFree > 0 {
		b.WriteString(fmt.Sprintf("Disk free:  %s → %s\n", formatSize(r.BeforeFree), formatSize(r.AfterFree)))
	}
	b.WriteString(fmt.Sprintf("Time:       %s\n\n", r.Duration.Round(time.Millisecond)))

	b.WriteString(styles.Divider(50) + "\n")
	return b.String()
}

func (m *Model) reportFooter() string {
	return "\n" + m.help.View(ReportKeyMap)
}

func (m *Model) viewReport() string {
	if m.report == nil {
		return ""
	}
	if m.reportLines == nil {
		m.reportLines = m.buildReportLines()
	}

	header := m.reportHeader()
	footer := m.reportFooter()
	visible := m.bodyLines(header, footer) - 2

	var b strings.Builder
	b.WriteString(header)

	total := len(m.reportLines)
	m.reportScroll = min(m.reportScroll, max(0, total-visible))
	end := min(total, m.reportScroll+visible)

	if m.reportScroll > 0 {
		b.WriteString(styles.MutedStyle.Render(fmt.Sprintf("  ↑ %d more lines above\n", m.reportScroll)))
	} else {
		b.WriteString("\n")
	}
	for i := m.reportScroll; i < end; i++ {
		b.WriteString(m.reportLines[i])
		b.WriteString("\n")
	}
	if remaining := total - end; remaining > 0 {
		b.WriteString(styles.MutedStyle.Render(fmt.Sprintf("  ↓ %d more lines below\n", remaining)))
	} else {
		b.WriteString("\n")
	}

	b.WriteString(footer)
	return b.String()
}

// buildReportLines lists groups in clean order, then every error with its
// group. Errors not tied to a group, such as cancellation, come last.
func (m *Model) buildReportLines() []string {
	var lines []string

	if len(m.report.Groups) > 0 {
		lines = append(lines, styles.TextStyle.Bold(true).Render("Groups:"))
	}
	grouped := make(map[string]int)
	for _, g := range m.report.Groups {
		size := fmt.Sprintf("%*s", colSize, formatSize(g.Result.FreedBytes))
		counts := fmt.Sprintf("%d cleaned", g.Result.CleanedItems)
		if g.Result.SkippedItems > 0 {
			counts += fmt.Sprintf(", %d skipped", g.Result.SkippedItems)
		}
		lines = append(lines, fmt.Sprintf("  %s %-24s %s  %s",
			groupIcon(g.Result), g.Name, styles.SizeStyle.Render(size), styles.MutedStyle.Render(counts)))
		for _, e := range g.Result.Errors {
			grouped[e]++
		}
	}

	if len(m.report.Result.Errors) == 0 {
		return lines
	}
	if len(lines) > 0 {
		lines = append(lines, "")
	}
	lines = append(lines, styles.DangerStyle.Render("Errors:"))
	for _, g := range m.report.Groups {
		for _, e := range g.Result.Errors {
			lines = append(lines, errorLine(withGroup(g.Name, e)))
		}
	}
	for _, e := range m.report.Result.Errors {
		if grouped[e] > 0 {
			grouped[e]--
			continue
		}
		lines = append(lines, errorLine(e))
	}
	return lines
}

func errorLine(msg string) string {
	return styles.MutedStyle.Render("    └ " + truncateToWidth(msg, 70, false))
}
