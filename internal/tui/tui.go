package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the interactive library browser and blocks until the user quits.
func Run(opts Options) error {
	applyColorProfilePreference()
	applyThemePreference(opts.Theme)
	applyGlyphPreference()
	m := newAppModel(opts)
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	return err
}
