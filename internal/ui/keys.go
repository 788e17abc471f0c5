package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	ForceQuit  key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Refresh    key.Binding
	Escape     key.Binding

	// Filters
	FocusQuery key.Binding
	FocusDate  key.Binding
	ClearDate  key.Binding
	Confirm    key.Binding

	// Pages
	NextPage     key.Binding
	PrevPage     key.Binding
	PageSizeUp   key.Binding
	PageSizeDown key.Binding

	// Rows
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding
	Open   key.Binding

	// Detail pane
	DetailDown key.Binding
	DetailUp   key.Binding

	// Log overlay
	Logs      key.Binding
	LogFollow key.Binding
	LogLevel  key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "Quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Reload containers"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Leave input / close detail"),
		),

		FocusQuery: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "Search"),
		),
		FocusDate: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "Departure date"),
		),
		ClearDate: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("ctrl+x", "Clear date"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Search by date"),
		),

		NextPage: key.NewBinding(
			key.WithKeys("n", "right", "l"),
			key.WithHelp("n/→", "Next page"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("p", "left", "h"),
			key.WithHelp("p/←", "Previous page"),
		),
		PageSizeUp: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "Larger pages"),
		),
		PageSizeDown: key.NewBinding(
			key.WithKeys("S"),
			key.WithHelp("S", "Smaller pages"),
		),

		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "Move down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "First row"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Last row"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Open detail"),
		),

		DetailDown: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("ctrl+d", "Scroll detail down"),
		),
		DetailUp: key.NewBinding(
			key.WithKeys("ctrl+u"),
			key.WithHelp("ctrl+u", "Scroll detail up"),
		),

		Logs: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "Toggle log"),
		),
		LogFollow: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "Follow log"),
		),
		LogLevel: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "Cycle log level"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns key bindings grouped the way the help overlay shows them.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.FocusQuery, k.FocusDate, k.Confirm, k.ClearDate, k.Escape},
		{k.NextPage, k.PrevPage, k.PageSizeUp, k.PageSizeDown},
		{k.Down, k.Up, k.Top, k.Bottom, k.Open, k.DetailDown, k.DetailUp},
		{k.Logs, k.LogFollow, k.LogLevel},
		{k.Refresh, k.CycleTheme, k.Help, k.Quit},
	}
}
