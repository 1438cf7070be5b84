package cmd

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the keyboard bindings for the main view. Overlay views
// (lightbox, crop editor) have their own small maps.
type keyMap struct {
	Generate     key.Binding
	CycleAspect  key.Binding
	ClearForm    key.Binding
	HistoryUp    key.Binding
	HistoryDown  key.Binding
	ReuseItem    key.Binding
	ClearHistory key.Binding
	Download     key.Binding
	Edit         key.Binding
	Lightbox     key.Binding
	Help         key.Binding
	Quit         key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Generate: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "generate"),
		),
		CycleAspect: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "aspect ratio"),
		),
		ClearForm: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "clear form"),
		),
		HistoryUp: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑/↓", "history"),
		),
		HistoryDown: key.NewBinding(
			key.WithKeys("down"),
		),
		ReuseItem: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "reuse item"),
		),
		ClearHistory: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("ctrl+x", "clear history"),
		),
		Download: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "download"),
		),
		Edit: key.NewBinding(
			key.WithKeys("ctrl+e"),
			key.WithHelp("ctrl+e", "crop"),
		),
		Lightbox: key.NewBinding(
			key.WithKeys("ctrl+f"),
			key.WithHelp("ctrl+f", "fullscreen"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("f1", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "ctrl+q"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// ShortHelp is the single-line help shown in the footer.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Generate, k.CycleAspect, k.Edit, k.Lightbox, k.Download, k.Help, k.Quit}
}

// FullHelp is the expanded help toggled with f1.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Generate, k.CycleAspect, k.ClearForm},
		{k.HistoryUp, k.ReuseItem, k.ClearHistory},
		{k.Download, k.Edit, k.Lightbox},
		{k.Help, k.Quit},
	}
}
