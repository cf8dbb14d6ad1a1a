package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

type keyMap struct {
	Up          key.Binding
	Down        key.Binding
	Toggle      key.Binding
	SelectAll   key.Binding
	NewFile     key.Binding
	NewFolder   key.Binding
	UploadFile  key.Binding
	UploadDir   key.Binding
	Rename      key.Binding
	Delete      key.Binding
	SortKey     key.Binding
	SortOrder   key.Binding
	Filter      key.Binding
	Reload      key.Binding
	Help        key.Binding
	Quit        key.Binding
	CloseAll    key.Binding
	Close       key.Binding
	HeaderClose key.Binding
	Accept      key.Binding
	SwitchFocus key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Toggle:      key.NewBinding(key.WithKeys(" ", "space"), key.WithHelp("space", "check entry")),
		SelectAll:   key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "select all")),
		NewFile:     key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new file")),
		NewFolder:   key.NewBinding(key.WithKeys("N"), key.WithHelp("N", "new folder")),
		UploadFile:  key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "upload file")),
		UploadDir:   key.NewBinding(key.WithKeys("U"), key.WithHelp("U", "upload folder")),
		Rename:      key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "rename")),
		Delete:      key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "delete checked")),
		SortKey:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort by name/size")),
		SortOrder:   key.NewBinding(key.WithKeys("S"), key.WithHelp("S", "reverse sort")),
		Filter:      key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
		Reload:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		CloseAll:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close all dialogs")),
		Close:       key.NewBinding(key.WithKeys("ctrl+g"), key.WithHelp("ctrl+g", "close dialog")),
		HeaderClose: key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "close dialog")),
		Accept:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
		SwitchFocus: key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "switch button")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NewFile, k.NewFolder, k.Toggle, k.SelectAll, k.Delete, k.Filter, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Toggle, k.SelectAll, k.Filter, k.SortKey, k.SortOrder, k.Reload},
		{k.NewFile, k.NewFolder, k.Rename, k.UploadFile, k.UploadDir, k.Delete},
		{k.Accept, k.SwitchFocus, k.Close, k.HeaderClose, k.CloseAll, k.Help, k.Quit},
	}
}

// helpMarkdown renders the key map as the cheat sheet shown in the help dialog.
func helpMarkdown(k keyMap) string {
	sections := []string{"Browse", "Create, rename and delete", "Dialogs"}
	var b strings.Builder
	b.WriteString("# Keys\n")
	for i, group := range k.FullHelp() {
		title := "More"
		if i < len(sections) {
			title = sections[i]
		}
		fmt.Fprintf(&b, "\n## %s\n\n| key | action |\n|---|---|\n", title)
		for _, kb := range group {
			h := kb.Help()
			fmt.Fprintf(&b, "| `%s` | %s |\n", h.Key, h.Desc)
		}
	}
	b.WriteString("\nUploading is not available yet; `u` and `U` only report that.\n")
	return b.String()
}
