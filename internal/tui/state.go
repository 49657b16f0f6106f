package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/RiPetitor/rCleaner/internal/scancache"
	"github.com/RiPetitor/rCleaner/internal/types"
	"github.com/RiPetitor/rCleaner/internal/userconfig"
)

type configState struct {
	engine      Engine
	cache       *scancache.Cache
	userConfig  *userconfig.UserConfig
	autoConfirm bool
	version     string
}

type dataState struct {
	items     []types.CleanupItem
	fromCache bool
	scannedAt time.Time
}

type selectionState struct {
	cursor int
	dryRun bool
}

type layoutState struct {
	view             View
	helpPreviousView View
	width            int
	height           int
	scroll           int
	statusMessage    string
	help             help.Model
}

type scanState struct {
	scanning   bool
	scanGen    int
	scanCancel context.CancelFunc
	spinner    spinner.Model
	scanErr    error
}

type listState struct {
	sortOrder types.SortOrder
}

type filterStateData struct {
	filterState FilterState
	filterText  string
	filterInput textinput.Model
}

type cleaningState struct {
	cleaningName      string
	cleaningFraction  float64
	cleaningTotal     int
	cleaningCompleted []types.GroupResult
	cleaningProgress  progress.Model
	cleanCancel       context.CancelFunc
	cancelRequested   bool
	cleanEvents       chan tea.Msg
	recentErrors      *RingBuffer[errorEntry]
}

type reportState struct {
	report       *types.Report
	reportScroll int
	reportLines  []string
}
