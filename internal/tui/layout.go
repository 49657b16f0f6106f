package tui

import "strings"

const (
	defaultWidth = 80
	minBodyLines = 3
	minPageRows  = 5
)

func lineCount(s string) int {
	if s == "" {
		return 0
	}
	return strings.Count(s, "\n") + 1
}

// bodyLines is the room left between a rendered header and footer.
func (m *Model) bodyLines(header, footer string) int {
	return max(minBodyLines, m.height-lineCount(header)-lineCount(footer))
}

// pageSize is how far PgUp/PgDown moves the cursor.
func (m *Model) pageSize() int {
	return max(minPageRows, (m.height-10)*4/5)
}

// scrollTo returns the scroll offset that keeps cursor inside a window of
// visible rows starting at scroll.
func scrollTo(cursor, scroll, visible int) int {
	switch {
	case cursor < scroll:
		return cursor
	case cursor >= scroll+visible:
		return cursor - visible + 1
	default:
		return scroll
	}
}

// nameWidth is the column left for names once the prefix and size column
// are taken.
func (m *Model) nameWidth(prefix int) int {
	width := m.width
	if width <= 0 {
		width = defaultWidth
	}
	return max(20, width-prefix-colSize-2)
}
