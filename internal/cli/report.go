package cli

import (
	"cmp"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/fatih/color"
	"golang.org/x/sys/unix"

	"github.com/RiPetitor/rCleaner/internal/styles"
	"github.com/RiPetitor/rCleaner/internal/types"
	"github.com/RiPetitor/rCleaner/internal/utils"
)

const (
	maxReportWidth = 90
	minColumnWidth = 28
	columnGap      = 2
	largestLimit   = 3
)

type reportLayout int

const (
	layoutStacked reportLayout = iota // one line per group, no table
	layoutTable
	layoutColumns // table plus side-by-side overview blocks
)

func layoutFor(width int) reportLayout {
	switch {
	case width >= 2*minColumnWidth+columnGap && width >= 80:
		return layoutColumns
	case width >= 60:
		return layoutTable
	default:
		return layoutStacked
	}
}

// FormatReport renders a finished run for terminal output.
func FormatReport(report *types.Report) string {
	if report == nil {
		return "No report available.\n"
	}
	st := newReportStyles()
	width := terminalWidth()
	layout := layoutFor(width)
	groups := activeGroups(report.Groups)

	var b strings.Builder
	writeHeader(&b, st, report.DryRun)
	b.WriteString(overview(st, report, groups, layout, width))
	b.WriteString("\n")
	if len(groups) == 0 {
		b.WriteString(st.Muted("No items to clean.") + "\n")
		return b.String()
	}

	b.WriteString("\n" + st.Section("Details") + "\n")
	if layout == layoutStacked {
		b.WriteString(groupList(st, groups, width))
	} else {
		b.WriteString(groupTable(st, groups, width))
	}
	return b.String()
}

func writeHeader(b *strings.Builder, st reportStyles, dryRun bool) {
	title, mode := "Cleanup Report", "Mode: Clean"
	if dryRun {
		title, mode = "Dry Run Report", "Mode: Dry Run (nothing was removed)"
	}
	fmt.Fprintln(b, st.Title(title))
	fmt.Fprintln(b, st.Muted(strings.Repeat("=", len(title))))
	fmt.Fprintln(b, st.Muted(mode))
}

// activeGroups drops groups that neither cleaned nor failed anything.
func activeGroups(groups []types.GroupResult) []types.GroupResult {
	return slices.DeleteFunc(slices.Clone(groups), func(g types.GroupResult) bool {
		return g.Result.CleanedItems == 0 && len(g.Result.Errors) == 0
	})
}

func overview(st reportStyles, report *types.Report, groups []types.GroupResult, layout reportLayout, width int) string {
	summary := summaryLines(st, report)
	largest := largestGroups(st, groups, largestLimit)
	if layout == layoutColumns {
		col := (width - columnGap) / 2
		return lipgloss.JoinHorizontal(lipgloss.Top,
			block(st, "Summary", summary, col),
			strings.Repeat(" ", columnGap),
			block(st, "Largest", largest, col),
		)
	}
	return block(st, "Summary", summary, width) + "\n\n" + block(st, "Largest", largest, width)
}

func summaryLines(st reportStyles, report *types.Report) []string {
	r := report.Result
	label := "Recovered"
	if report.DryRun {
		label = "Would free"
	}
	lines := []string{
		label + ": " + st.Success(utils.FormatSize(r.FreedBytes)),
		fmt.Sprintf("Cleaned: %d  Skipped: %d  Errors: %d", r.CleanedItems, r.SkippedItems, len(r.Errors)),
	}
	if report.BeforeFree > 0 && report.AfterFree > 0 {
		lines = append(lines, "Disk free: "+utils.FormatSize(report.BeforeFree)+" -> "+utils.FormatSize(report.AfterFree))
	}
	if report.Duration > 0 {
		lines = append(lines, "Time: "+report.Duration.Round(time.Millisecond).String())
	}
	return lines
}

// largestGroups lists the top groups by freed bytes without reordering groups.
func largestGroups(st reportStyles, groups []types.GroupResult, limit int) []string {
	if len(groups) == 0 {
		return []string{st.Muted("Nothing was cleaned.")}
	}
	sorted := slices.Clone(groups)
	slices.SortStableFunc(sorted, func(a, b types.GroupResult) int {
		return cmp.Compare(b.Result.FreedBytes, a.Result.FreedBytes)
	})
	sorted = sorted[:min(limit, len(sorted))]

	lines := make([]string, len(sorted))
	for i, g := range sorted {
		lines[i] = fmt.Sprintf("%d. %s  %s (%s)", i+1, g.Name,
			utils.FormatSize(g.Result.FreedBytes), itemCount(g.Result.CleanedItems))
	}
	return lines
}

func groupTable(st reportStyles, groups []types.GroupResult, width int) string {
	const (
		statusW = 6
		itemsW  = 7
		sizeW   = 10
		gap     = "  "
	)
	nameW := max(16, width-statusW-itemsW-sizeW-3*len(gap))

	cell := func(w int, pos lipgloss.Position) lipgloss.Style {
		return lipgloss.NewStyle().Width(w).Align(pos)
	}
	status, name := cell(statusW, lipgloss.Left), cell(nameW, lipgloss.Left)
	items, size := cell(itemsW, lipgloss.Right), cell(sizeW, lipgloss.Right)

	row := func(s, n, i, z string) string {
		return status.Render(s) + gap + name.Render(n) + gap + items.Render(i) + gap + size.Render(z)
	}

	var b strings.Builder
	b.WriteString(st.Muted(row("STATUS", "CATEGORY", "ITEMS", "SIZE")) + "\n")
	for _, g := range groups {
		b.WriteString(row(
			st.Status(statusLabel(g.Result)),
			clip(g.Name, nameW),
			strconv.Itoa(g.Result.CleanedItems),
			utils.FormatSize(g.Result.FreedBytes),
		) + "\n")
		writeErrors(&b, st, g.Result.Errors, width-6)
	}
	return b.String()
}

func groupList(st reportStyles, groups []types.GroupResult, width int) string {
	var b strings.Builder
	for _, g := range groups {
		fmt.Fprintf(&b, "%s %s: %s (%s)\n", st.Status(statusLabel(g.Result)), g.Name,
			utils.FormatSize(g.Result.FreedBytes), itemCount(g.Result.CleanedItems))
		writeErrors(&b, st, g.Result.Errors, width-4)
	}
	return b.String()
}

func writeErrors(b *strings.Builder, st reportStyles, errs []string, width int) {
	for _, err := range errs {
		b.WriteString(st.Muted("  - "+clipLeft(err, width)) + "\n")
	}
}

func itemCount(n int) string {
	if n == 1 {
		return "1 item"
	}
	return strconv.Itoa(n) + " items"
}

func statusLabel(r types.CleanupResult) string {
	switch {
	case len(r.Errors) == 0:
		return "OK"
	case r.CleanedItems > 0:
		return "WARN"
	default:
		return "FAIL"
	}
}

func block(st reportStyles, title string, lines []string, width int) string {
	line := lipgloss.NewStyle().Width(width)
	out := make([]string, 0, len(lines)+1)
	out = append(out, line.Render(st.Section(title)))
	for _, l := range lines {
		out = append(out, line.Render(clip(l, width)))
	}
	return strings.Join(out, "\n")
}

// reportStyles paints report text, or leaves it plain when color is off.
type reportStyles struct {
	enabled bool
	title   lipgloss.Style
	section lipgloss.Style
	status  map[string]lipgloss.Style
	muted   lipgloss.Style
}

func newReportStyles() reportStyles {
	bold := func(c lipgloss.Color) lipgloss.Style { return lipgloss.NewStyle().Foreground(c).Bold(true) }
	return reportStyles{
		enabled: !color.NoColor,
		title:   bold(styles.ColorPrimary),
		section: bold(styles.ColorSecondary),
		status: map[string]lipgloss.Style{
			"OK":   bold(styles.ColorSuccess),
			"WARN": bold(styles.ColorWarning),
			"FAIL": bold(styles.ColorDanger),
		},
		muted: lipgloss.NewStyle().Foreground(styles.ColorMuted),
	}
}

func (s reportStyles) paint(style lipgloss.Style, text string) string {
	if !s.enabled {
		return text
	}
	return style.Render(text)
}

func (s reportStyles) Title(text string) string   { return s.paint(s.title, text) }
func (s reportStyles) Section(text string) string { return s.paint(s.section, text) }
func (s reportStyles) Muted(text string) string   { return s.paint(s.muted, text) }
func (s reportStyles) Success(text string) string { return s.paint(s.status["OK"], text) }

// Status colors an OK/WARN/FAIL label.
func (s reportStyles) Status(label string) string {
	style, ok := s.status[label]
	if !ok {
		return label
	}
	return s.paint(style, label)
}

// terminalWidth prefers $COLUMNS, then the stdout window size, capped at
// maxReportWidth.
func terminalWidth() int {
	width := maxReportWidth
	if n, err := strconv.Atoi(os.Getenv("COLUMNS")); err == nil && n > 0 {
		width = n
	} else if ws, err := unix.IoctlGetWinsize(int(os.Stdout.Fd()), unix.TIOCGWINSZ); err == nil && ws.Col > 0 {
		width = int(ws.Col)
	}
	return min(width, maxReportWidth)
}

// clip keeps the head of s within width cells.
func clip(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return ansi.Truncate(s, width, "...")
}

// clipLeft keeps the tail of s within width cells behind a "..." prefix.
func clipLeft(s string, width int) string {
	if width <= 0 {
		return ""
	}
	w := ansi.StringWidth(s)
	if w <= width {
		return s
	}
	if width <= 3 {
		return ansi.TruncateLeft(s, w-width, "")
	}
	return ansi.TruncateLeft(s, w-width+3, "...")
}
