package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/RiPetitor/rCleaner/internal/cleaner"
	"github.com/RiPetitor/rCleaner/internal/logger"
	"github.com/RiPetitor/rCleaner/internal/types"
)

// confirmOrClean opens the confirm view, or starts cleaning right away when
// the profile auto-confirms.
func (m *Model) confirmOrClean() tea.Cmd {
	if m.scanning {
		m.statusMessage = "Wait for the scan to finish"
		return nil
	}
	if len(m.selectedItems()) == 0 {
		m.statusMessage = "Nothing selected"
		return nil
	}
	if m.autoConfirm {
		return m.doClean()
	}
	m.view = ViewConfirm
	return nil
}

func (m *Model) doClean() tea.Cmd {
	if m.engine == nil {
		return nil
	}
	items := m.selectedItems()
	m.rememberSelection()

	m.view = ViewCleaning
	m.cleaningTotal = len(items)
	m.cleaningFraction = 0
	m.cleaningName = ""
	m.cleaningCompleted = nil
	m.cancelRequested = false
	m.recentErrors.Clear()
	m.report = nil
	m.reportLines = nil
	m.reportScroll = 0

	// Events are delivered in the order the engine emits them.
	events := make(chan tea.Msg, 4)
	m.cleanEvents = events

	callbacks := cleaner.Callbacks{
		OnProgress: func(fraction float64, name string) {
			events <- cleanProgressMsg{fraction: fraction, name: name}
		},
		OnGroupDone: func(g types.GroupResult) {
			events <- cleanGroupDoneMsg{group: g}
		},
	}

	ctx, cancel := context.WithCancel(context.Background())
	m.cleanCancel = cancel
	engine, dryRun := m.engine, m.dryRun

	go func() {
		report := engine.Clean(ctx, items, dryRun, callbacks)
		events <- cleanDoneMsg{report: report}
	}()

	return tea.Batch(m.spinner.Tick, m.waitForCleanProgress())
}

// waitForCleanProgress returns a command that waits for the next progress or done message
func (m *Model) waitForCleanProgress() tea.Cmd {
	events := m.cleanEvents
	return func() tea.Msg {
		return <-events
	}
}

// cancelClean stops the run before its next group.
func (m *Model) cancelClean() {
	if m.cleanCancel == nil || m.cancelRequested {
		return
	}
	m.cancelRequested = true
	m.cleanCancel()
	m.statusMessage = "Cancelling after the current group..."
}

func (m *Model) finishClean(report *types.Report) {
	if m.cleanCancel != nil {
		m.cleanCancel()
		m.cleanCancel = nil
	}
	if report == nil {
		report = &types.Report{DryRun: m.dryRun}
	}
	m.report = report
	m.reportLines = nil
	m.reportScroll = 0
	m.statusMessage = ""
	m.view = ViewReport
}

func (m *Model) rememberSelection() {
	if m.userConfig == nil {
		return
	}
	m.userConfig.RememberSelection(m.items)
	if err := m.userConfig.Save(); err != nil {
		logger.Warn("failed to save selection", "error", err)
	}
}
