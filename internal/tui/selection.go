package tui

import (
	"slices"

	"github.com/RiPetitor/rCleaner/internal/logger"
	"github.com/RiPetitor/rCleaner/internal/types"
)

// Selection state management

// selectable reports whether the item at i may be selected.
func (m *Model) selectable(i int) bool {
	item := &m.items[i]
	return item.CanClean && !m.isExcluded(item)
}

func (m *Model) toggleItem(i int) {
	item := &m.items[i]
	switch {
	case !item.CanClean:
		m.statusMessage = "Protected: " + item.BlockedReason
	case m.isExcluded(item):
		m.statusMessage = "Excluded, press x to include it again"
	default:
		item.Selected = !item.Selected
	}
}

// toggleCategory selects every selectable item of cat, or clears them all
// when they are already selected.
func (m *Model) toggleCategory(cat types.Category) {
	indices := m.categoryIndices(cat)
	all := true
	found := false
	for _, i := range indices {
		if !m.selectable(i) {
			continue
		}
		found = true
		if !m.items[i].Selected {
			all = false
		}
	}
	if !found {
		m.statusMessage = "Nothing selectable in " + cat.String()
		return
	}
	for _, i := range indices {
		if m.selectable(i) {
			m.items[i].Selected = !all
		}
	}
}

func (m *Model) selectAll() {
	for i := range m.items {
		if m.selectable(i) {
			m.items[i].Selected = true
		}
	}
}

func (m *Model) selectNone() {
	for i := range m.items {
		m.items[i].Selected = false
	}
}

// restoreSelection applies the selection saved by the previous clean.
func (m *Model) restoreSelection() {
	if m.userConfig == nil || !m.userConfig.HasLastSelection() {
		m.statusMessage = "No saved selection"
		return
	}
	m.selectNone()
	n := m.userConfig.ApplySelection(m.items)
	m.statusMessage = pluralize(n, "item", "items") + " restored from last selection"
}

// categoryState returns how many selectable items of cat exist and how many
// of them are selected.
func (m *Model) categoryState(cat types.Category) (selectable, selected int) {
	for _, i := range m.categoryIndices(cat) {
		if !m.selectable(i) {
			continue
		}
		selectable++
		if m.items[i].Selected {
			selected++
		}
	}
	return selectable, selected
}

func (m *Model) categoryIndices(cat types.Category) []int {
	var indices []int
	for i := range m.items {
		if m.items[i].Category == cat {
			indices = append(indices, i)
		}
	}
	return indices
}

func (m *Model) categorySize(cat types.Category) uint64 {
	var total uint64
	for _, i := range m.categoryIndices(cat) {
		if m.items[i].CanClean {
			total += m.items[i].Size
		}
	}
	return total
}

// selectedItems returns copies of the items that will be cleaned.
func (m *Model) selectedItems() []types.CleanupItem {
	var selected []types.CleanupItem
	for i := range m.items {
		if m.items[i].Selected && m.selectable(i) {
			selected = append(selected, m.items[i])
		}
	}
	return selected
}

func (m *Model) hasSelection() bool {
	return len(m.selectedItems()) > 0
}

func (m *Model) getSelectedSize() uint64 {
	var total uint64
	for _, item := range m.selectedItems() {
		total += item.Size
	}
	return total
}

func (m *Model) getAvailableSize() uint64 {
	var total uint64
	for i := range m.items {
		if m.items[i].CanClean {
			total += m.items[i].Size
		}
	}
	return total
}

func (m *Model) protectedCount() int {
	n := 0
	for i := range m.items {
		if !m.items[i].CanClean {
			n++
		}
	}
	return n
}

// Exclusion management

func (m *Model) isExcluded(item *types.CleanupItem) bool {
	if m.userConfig == nil {
		return false
	}
	return m.userConfig.IsExcluded(item.Category.String(), item.Path)
}

// toggleExclude adds or removes the item's path from the persisted
// exclusion list. Pathless items cannot be excluded.
func (m *Model) toggleExclude(i int) {
	item := &m.items[i]
	if m.userConfig == nil {
		m.statusMessage = "Exclusions are unavailable"
		return
	}
	if !item.HasPath() {
		m.statusMessage = "Only path items can be excluded"
		return
	}

	key := item.Category.String()
	paths := m.userConfig.GetExcludedPaths(key)
	if idx := slices.Index(paths, item.Path); idx >= 0 {
		paths = slices.Delete(slices.Clone(paths), idx, idx+1)
	} else {
		paths = append(slices.Clone(paths), item.Path)
		item.Selected = false
	}
	m.userConfig.SetExcludedPaths(key, paths)

	if err := m.userConfig.Save(); err != nil {
		logger.Warn("failed to save exclusions", "error", err)
		m.statusMessage = "Failed to save exclusions: " + err.Error()
	}
}
