package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.view {
	case ViewList:
		return m.handleListKey(msg)
	case ViewConfirm:
		return m.handleConfirmKey(msg)
	case ViewCleaning:
		if key.Matches(msg, CleaningKeyMap.Cancel) {
			m.cancelClean()
		}
	case ViewReport:
		return m.handleReportKey(msg)
	case ViewHelp:
		return m.handleHelpKey(msg)
	}
	return m, nil
}

func (m *Model) openHelp() {
	m.helpPreviousView = m.view
	m.view = ViewHelp
}

func (m *Model) handleHelpKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc", "?", "q":
		m.view = m.helpPreviousView
	}
	return m, nil
}

func (m *Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.filterState == FilterTyping {
		return m.handleFilterKey(msg)
	}
	m.statusMessage = ""

	rows := m.rows()
	switch {
	case m.scanning && key.Matches(msg, ScanningKeyMap.Cancel):
		m.cancelScan()
	case msg.String() == "esc" && m.filterState == FilterApplied:
		m.clearFilter()
	case key.Matches(msg, ListKeyMap.Quit):
		if m.scanCancel != nil {
			m.scanCancel()
		}
		return m, tea.Quit
	case key.Matches(msg, ListKeyMap.Help):
		m.openHelp()
	case key.Matches(msg, ListKeyMap.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, ListKeyMap.Down):
		if m.cursor < len(rows)-1 {
			m.cursor++
		}
	case key.Matches(msg, ListKeyMap.PageUp):
		m.cursor = max(0, m.cursor-m.pageSize())
	case key.Matches(msg, ListKeyMap.PageDown):
		m.cursor = max(0, min(len(rows)-1, m.cursor+m.pageSize()))
	case key.Matches(msg, ListKeyMap.Select):
		if m.cursor < len(rows) {
			r := rows[m.cursor]
			if r.isHeader() {
				m.toggleCategory(r.category)
			} else {
				m.toggleItem(r.item)
			}
		}
	case key.Matches(msg, ListKeyMap.All):
		m.selectAll()
	case key.Matches(msg, ListKeyMap.None):
		m.selectNone()
	case key.Matches(msg, ListKeyMap.Restore):
		m.restoreSelection()
	case key.Matches(msg, ListKeyMap.Exclude):
		if m.cursor < len(rows) && !rows[m.cursor].isHeader() {
			m.toggleExclude(rows[m.cursor].item)
		}
	case key.Matches(msg, ListKeyMap.DryRun):
		m.dryRun = !m.dryRun
	case key.Matches(msg, ListKeyMap.Sort):
		m.sortOrder = m.sortOrder.Next()
	case key.Matches(msg, ListKeyMap.Search):
		m.startFilter()
	case key.Matches(msg, ListKeyMap.Rescan):
		return m, m.requestScan()
	case key.Matches(msg, ListKeyMap.Clean):
		return m, m.confirmOrClean()
	}
	return m, nil
}

func (m *Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.applyFilter()
		return m, nil
	case "esc":
		m.clearFilter()
		return m, nil
	case "ctrl+c":
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	return m, cmd
}

func (m *Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "ctrl+c":
		return m, tea.Quit
	case key.Matches(msg, ConfirmKeyMap.Confirm):
		return m, m.doClean()
	case key.Matches(msg, ConfirmKeyMap.Cancel):
		m.view = ViewList
	case key.Matches(msg, ConfirmKeyMap.Help):
		m.openHelp()
	}
	return m, nil
}

func (m *Model) handleReportKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, ReportKeyMap.Quit):
		return m, tea.Quit
	case key.Matches(msg, ReportKeyMap.Help):
		m.openHelp()
	case key.Matches(msg, ReportKeyMap.Up):
		if m.reportScroll > 0 {
			m.reportScroll--
		}
	case key.Matches(msg, ReportKeyMap.Down):
		visible := max(5, m.height-12)
		maxScroll := max(0, len(m.reportLines)-visible)
		if m.reportScroll < maxScroll {
			m.reportScroll++
		}
	case key.Matches(msg, ReportKeyMap.Enter):
		// Return to main screen and rescan
		m.resetForRescan()
		return m, m.requestScan()
	}
	return m, nil
}

func (m *Model) resetForRescan() {
	m.view = ViewList
	m.selectNone()
	m.cursor = 0
	m.scroll = 0
	m.report = nil
	m.reportScroll = 0
	m.reportLines = nil
}
