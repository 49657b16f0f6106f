package tui

import (
	"sort"
	"strings"

	"github.com/RiPetitor/rCleaner/internal/types"
)

// matchesFilter reports whether item matches query.
// Supports space-separated AND matching: "cache chrome" matches items
// containing both "cache" AND "chrome" anywhere in Name, Path or Description.
// Case-insensitive. An empty query matches everything.
func matchesFilter(item *types.CleanupItem, query string) bool {
	terms := strings.Fields(strings.ToLower(query))
	if len(terms) == 0 {
		return true
	}
	combined := strings.ToLower(item.Name + " " + item.Path + " " + item.Description)
	for _, term := range terms {
		if !strings.Contains(combined, term) {
			return false
		}
	}
	return true
}

// sortIndices orders item indices by the current sort order without
// touching the items themselves.
func (m *Model) sortIndices(indices []int) {
	switch m.sortOrder {
	case types.SortByName:
		sort.SliceStable(indices, func(a, b int) bool {
			return strings.ToLower(m.items[indices[a]].Name) < strings.ToLower(m.items[indices[b]].Name)
		})
	default:
		sort.SliceStable(indices, func(a, b int) bool {
			return m.items[indices[a]].Size > m.items[indices[b]].Size
		})
	}
}

// rows builds the list view: one header per non-empty category in clean
// order followed by its matching items.
func (m *Model) rows() []row {
	var rows []row
	for _, cat := range types.CategoryOrder {
		var indices []int
		for _, i := range m.categoryIndices(cat) {
			if matchesFilter(&m.items[i], m.filterText) {
				indices = append(indices, i)
			}
		}
		if len(indices) == 0 {
			continue
		}
		m.sortIndices(indices)
		rows = append(rows, row{category: cat, item: -1})
		for _, i := range indices {
			rows = append(rows, row{category: cat, item: i})
		}
	}
	return rows
}

func (m *Model) clampCursor() {
	n := len(m.rows())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) startFilter() {
	m.filterState = FilterTyping
	m.filterInput.SetValue(m.filterText)
	m.filterInput.Focus()
}

func (m *Model) applyFilter() {
	m.filterText = strings.TrimSpace(m.filterInput.Value())
	m.filterInput.Blur()
	if m.filterText == "" {
		m.filterState = FilterNone
	} else {
		m.filterState = FilterApplied
	}
	m.cursor = 0
	m.scroll = 0
}

func (m *Model) clearFilter() {
	m.filterText = ""
	m.filterInput.SetValue("")
	m.filterInput.Blur()
	m.filterState = FilterNone
	m.cursor = 0
	m.scroll = 0
}
