package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/RiPetitor/rCleaner/internal/cleaner"
	"github.com/RiPetitor/rCleaner/internal/logger"
	"github.com/RiPetitor/rCleaner/internal/scancache"
	"github.com/RiPetitor/rCleaner/internal/styles"
	"github.com/RiPetitor/rCleaner/internal/types"
	"github.com/RiPetitor/rCleaner/internal/userconfig"
)

const defaultRecentErrorsCapacity = 5

// Engine scans and cleans. *cleaner.Service satisfies it.
type Engine interface {
	ScanAll(ctx context.Context) ([]types.CleanupItem, error)
	Clean(ctx context.Context, items []types.CleanupItem, dryRun bool, callbacks cleaner.Callbacks) *types.Report
}

// Options configures a Model.
type Options struct {
	Engine Engine
	// Cache, when set, provides items shown before the first scan finishes
	// and receives every fresh scan.
	Cache *scancache.Cache
	// UserConfig persists exclusions and the last selection. Nil disables both.
	UserConfig  *userconfig.UserConfig
	AutoConfirm bool
	Version     string
}

// Model is the main TUI model
type Model struct {
	configState
	dataState
	selectionState
	layoutState
	scanState
	listState
	filterStateData
	cleaningState
	reportState
}

// NewModel creates a new model
func NewModel(opts Options) *Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(styles.ColorPrimary)

	ti := textinput.New()
	ti.Placeholder = "filter..."
	ti.CharLimit = 64
	ti.Prompt = "/ "

	p := progress.New(progress.WithGradient(string(styles.ColorPrimary), string(styles.ColorSecondary)))

	m := &Model{
		configState: configState{
			engine:      opts.Engine,
			cache:       opts.Cache,
			userConfig:  opts.UserConfig,
			autoConfirm: opts.AutoConfirm,
			version:     opts.Version,
		},
		layoutState: layoutState{
			view: ViewList,
			help: help.New(),
		},
		scanState:       scanState{spinner: s},
		listState:       listState{sortOrder: types.SortBySize},
		filterStateData: filterStateData{filterInput: ti},
		cleaningState: cleaningState{
			cleaningProgress: p,
			recentErrors:     NewRingBuffer[errorEntry](defaultRecentErrorsCapacity),
		},
	}
	m.loadCached()
	return m
}

func (m *Model) loadCached() {
	if m.cache == nil {
		return
	}
	snap, err := m.cache.Load()
	if err != nil {
		logger.Warn("scan cache unreadable", "path", m.cache.Path(), "error", err)
		return
	}
	if snap == nil {
		return
	}
	for i := range snap.Items {
		snap.Items[i].Selected = false
	}
	m.items = snap.Items
	m.fromCache = true
	m.scannedAt = snap.CreatedAt
}

// Init starts the first background scan.
func (m *Model) Init() tea.Cmd {
	return m.requestScan()
}

// View renders the UI
func (m *Model) View() string {
	switch m.view {
	case ViewConfirm:
		return m.viewConfirm()
	case ViewCleaning:
		return m.viewCleaning()
	case ViewReport:
		return m.viewReport()
	case ViewHelp:
		return m.viewHelp()
	default:
		return m.viewList()
	}
}
