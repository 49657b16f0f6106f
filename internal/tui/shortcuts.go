package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
)

// ListKeys defines key bindings for list view
type ListKeys struct {
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Select   key.Binding
	All      key.Binding
	None     key.Binding
	Restore  key.Binding
	Exclude  key.Binding
	DryRun   key.Binding
	Sort     key.Binding
	Search   key.Binding
	Rescan   key.Binding
	Clean    key.Binding
	Quit     key.Binding
	Help     key.Binding
}

func (k ListKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Select, k.Clean, k.Search, k.Quit, k.Help}
}

func (k ListKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown},
		{k.Select, k.All, k.None, k.Restore, k.Exclude},
		{k.Search, k.Sort, k.DryRun, k.Rescan},
		{k.Clean, k.Quit, k.Help},
	}
}

var ListKeyMap = ListKeys{
	Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	PageUp:   key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
	PageDown: key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "page down")),
	Select:   key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "select")),
	All:      key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "select all")),
	None:     key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "select none")),
	Restore:  key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "last selection")),
	Exclude:  key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "exclude path")),
	DryRun:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "dry run")),
	Sort:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort")),
	Search:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
	Rescan:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rescan")),
	Clean:    key.NewBinding(key.WithKeys("enter", "y"), key.WithHelp("enter", "clean")),
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
}

// ScanningKeys are active on the list view while a scan runs.
type ScanningKeys struct {
	Cancel key.Binding
}

var ScanningKeyMap = ScanningKeys{
	Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel scan")),
}

// ConfirmKeys defines key bindings for confirm view
type ConfirmKeys struct {
	Confirm key.Binding
	Cancel  key.Binding
	Help    key.Binding
}

func (k ConfirmKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Confirm, k.Cancel, k.Help}
}

func (k ConfirmKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Confirm, k.Cancel, k.Help}}
}

var ConfirmKeyMap = ConfirmKeys{
	Confirm: key.NewBinding(key.WithKeys("y", "enter"), key.WithHelp("y/enter", "clean")),
	Cancel:  key.NewBinding(key.WithKeys("n", "esc"), key.WithHelp("n/esc", "cancel")),
	Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
}

// CleaningKeys defines key bindings for cleaning view
type CleaningKeys struct {
	Cancel key.Binding
}

func (k CleaningKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Cancel}
}

func (k CleaningKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Cancel}}
}

var CleaningKeyMap = CleaningKeys{
	Cancel: key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "stop after current group")),
}

// ReportKeys defines key bindings for report view
type ReportKeys struct {
	Up    key.Binding
	Down  key.Binding
	Enter key.Binding
	Quit  key.Binding
	Help  key.Binding
}

func (k ReportKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Enter, k.Quit, k.Help}
}

func (k ReportKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Enter, k.Quit, k.Help},
	}
}

var ReportKeyMap = ReportKeys{
	Up:    key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:  key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Enter: key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "rescan")),
	Quit:  key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Help:  key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
}

// keyMapFor returns the bindings shown for a view.
func keyMapFor(v View) help.KeyMap {
	switch v {
	case ViewConfirm:
		return ConfirmKeyMap
	case ViewCleaning:
		return CleaningKeyMap
	case ViewReport:
		return ReportKeyMap
	default:
		return ListKeyMap
	}
}

// FilterTypingFooter is shown while the user types a filter query.
var FilterTypingFooter = formatFooter([][2]string{
	{"enter", "apply"},
	{"esc", "cancel"},
})

func formatFooter(pairs [][2]string) string {
	parts := make([]string, 0, len(pairs))
	for _, p := range pairs {
		parts = append(parts, p[0]+" "+p[1])
	}
	return strings.Join(parts, "  ")
}
