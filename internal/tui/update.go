package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/RiPetitor/rCleaner/internal/logger"
	"github.com/RiPetitor/rCleaner/internal/types"
)

// requestScan starts a scan and the spinner. It returns nil when a scan is
// already running.
func (m *Model) requestScan() tea.Cmd {
	cmd := m.startScan()
	if cmd == nil {
		return nil
	}
	return tea.Batch(m.spinner.Tick, cmd)
}

// startScan runs ScanAll as a single command yielding one scanDoneMsg.
func (m *Model) startScan() tea.Cmd {
	if m.scanning {
		m.statusMessage = "Scan already in progress"
		return nil
	}
	if m.engine == nil {
		return nil
	}

	m.scanGen++
	gen := m.scanGen
	ctx, cancel := context.WithCancel(context.Background())
	m.scanCancel = cancel
	m.scanning = true
	m.scanErr = nil
	m.statusMessage = ""

	engine := m.engine
	return func() tea.Msg {
		items, err := engine.ScanAll(ctx)
		return scanDoneMsg{gen: gen, items: items, err: err}
	}
}

// cancelScan forgets the running scan. Its result is dropped when it arrives.
func (m *Model) cancelScan() {
	if !m.scanning {
		return
	}
	if m.scanCancel != nil {
		m.scanCancel()
		m.scanCancel = nil
	}
	m.scanGen++
	m.scanning = false
	m.statusMessage = "Scan cancelled"
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil
	case spinner.TickMsg:
		if m.scanning || m.view == ViewCleaning {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	case scanDoneMsg:
		m.handleScanDone(msg)
	case cleanProgressMsg:
		m.cleaningName = msg.name
		m.cleaningFraction = msg.fraction
		return m, m.waitForCleanProgress()
	case cleanGroupDoneMsg:
		m.cleaningCompleted = append(m.cleaningCompleted, msg.group)
		for _, e := range msg.group.Result.Errors {
			m.recentErrors.Push(errorEntry{Group: msg.group.Name, Msg: e})
		}
		return m, m.waitForCleanProgress()
	case cleanDoneMsg:
		m.finishClean(msg.report)
	}
	return m, nil
}

func (m *Model) handleScanDone(msg scanDoneMsg) {
	if msg.gen != m.scanGen {
		logger.Debug("stale scan result dropped", "gen", msg.gen, "current", m.scanGen)
		return
	}
	m.scanning = false
	if m.scanCancel != nil {
		m.scanCancel()
		m.scanCancel = nil
	}
	if msg.err != nil {
		m.scanErr = msg.err
		m.statusMessage = "Scan failed: " + msg.err.Error()
		return
	}

	m.items = carrySelection(m.items, msg.items)
	m.fromCache = false
	m.scannedAt = time.Now()
	m.clampCursor()

	if m.cache != nil {
		if err := m.cache.Save(m.items); err != nil {
			logger.Warn("failed to save scan cache", "path", m.cache.Path(), "error", err)
		}
	}
}

// carrySelection marks items in next that were selected in prev, by ID.
// Items that became blocked stay unselected.
func carrySelection(prev, next []types.CleanupItem) []types.CleanupItem {
	selected := make(map[string]bool)
	for _, item := range prev {
		if item.Selected {
			selected[item.ID] = true
		}
	}
	for i := range next {
		next[i].Selected = next[i].CanClean && selected[next[i].ID]
	}
	return next
}
