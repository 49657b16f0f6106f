package tui

import "github.com/RiPetitor/rCleaner/internal/types"

// View state
type View int

const (
	ViewList View = iota
	ViewConfirm
	ViewCleaning
	ViewReport
	ViewHelp
)

// FilterState represents the search/filter mode state
type FilterState int

const (
	FilterNone    FilterState = iota // No filter active
	FilterTyping                     // User is typing search query
	FilterApplied                    // Filter is applied
)

// Messages
type (
	// scanDoneMsg carries the outcome of one background scan. gen identifies
	// the request so stale results can be dropped.
	scanDoneMsg struct {
		gen   int
		items []types.CleanupItem
		err   error
	}
	cleanProgressMsg struct {
		fraction float64
		name     string
	}
	cleanGroupDoneMsg struct{ group types.GroupResult }
	cleanDoneMsg      struct{ report *types.Report }
)

// row is one line of the list view: a category header when item is -1,
// otherwise an index into Model.items.
type row struct {
	category types.Category
	item     int
}

func (r row) isHeader() bool { return r.item < 0 }

// errorEntry is a recent clean error shown while cleaning.
type errorEntry struct {
	Group string
	Msg   string
}
