package tui

import (
	"errors"
	"fmt"

	"filelib-cli/internal/controller"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
)

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.input.Width = modalBodyWidth(msg.Width) - 4
		if controller.IsActive(m.state, controller.ModalHelp) {
			m.refreshHelpView()
		}
		return m, nil

	case spinner.TickMsg:
		if !m.busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case filesLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.loadErr = msg.err
			logrus.WithError(msg.err).Warn("list files")
			var effects []controller.Effect
			m.state, effects = controller.ShowAlert(m.state, fmt.Sprintf("Could not load %s: %v", m.ctrl.LibraryPath(), msg.err))
			return m.applyEffects(effects)
		}
		m.loadErr = nil
		m.applyListing(msg.entries)
		return m, nil

	case touchDoneMsg:
		var effects []controller.Effect
		m.state, effects = controller.FinishSubmit(m.state, msg.res)
		return m.applyEffects(effects)

	case renameDoneMsg:
		var effects []controller.Effect
		m.state, effects = controller.FinishRename(m.state, msg.res)
		return m.applyEffects(effects)

	case deleteDoneMsg:
		var effects []controller.Effect
		m.state, effects = controller.FinishDelete(m.state, msg.res)
		return m.applyEffects(effects)

	case tea.MouseMsg:
		return m.updateMouse(msg)

	case tea.KeyMsg:
		return m.updateKey(msg)
	}
	return m, nil
}

func (m appModel) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m.quit()
	}
	// Escape closes every dialog wherever focus is.
	if key.Matches(msg, m.keys.CloseAll) {
		m.state = controller.HandleKey(m.state, msg.String())
		m.filtering = false
		m.filterInput.Blur()
		m.syncFocus()
		return m, nil
	}

	switch controller.TopModal(m.state) {
	case controller.ModalAlert:
		return m.updateAlert(msg)
	case controller.ModalHelp:
		return m.updateHelp(msg)
	case controller.ModalConfirmDelete:
		return m.updateConfirmDelete(msg)
	case controller.ModalPrompt:
		return m.updatePrompt(msg)
	}

	if m.filtering {
		return m.updateFilter(msg)
	}
	return m.updateList(msg)
}

func (m appModel) dismiss(control controller.DismissControl, owner controller.ModalID) appModel {
	m.state = controller.Dismiss(m.state, control, owner)
	m.syncFocus()
	return m
}

func (m appModel) updateAlert(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Accept), msg.String() == " ":
		return m.dismiss(controller.DismissFooterButton, controller.ModalAlert), nil
	case key.Matches(msg, m.keys.HeaderClose):
		return m.dismiss(controller.DismissHeaderDelete, controller.ModalAlert), nil
	case key.Matches(msg, m.keys.Close), msg.String() == "q":
		return m.dismiss(controller.DismissCloseIcon, controller.ModalAlert), nil
	}
	return m, nil
}

func (m appModel) updateHelp(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Accept):
		return m.dismiss(controller.DismissFooterButton, controller.ModalHelp), nil
	case key.Matches(msg, m.keys.HeaderClose):
		return m.dismiss(controller.DismissHeaderDelete, controller.ModalHelp), nil
	case key.Matches(msg, m.keys.Close), key.Matches(msg, m.keys.Help), msg.String() == "q":
		return m.dismiss(controller.DismissCloseIcon, controller.ModalHelp), nil
	}
	var cmd tea.Cmd
	m.helpView, cmd = m.helpView.Update(msg)
	return m, cmd
}

func (m appModel) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.SwitchFocus):
		m.confirmFocus = m.confirmFocus.toggle()
		return m, nil
	case msg.String() == "y":
		return m.confirmDelete()
	case msg.String() == "n":
		return m.dismiss(controller.DismissFooterButton, controller.ModalConfirmDelete), nil
	case key.Matches(msg, m.keys.Accept):
		if m.confirmFocus == confirmFocusConfirm {
			return m.confirmDelete()
		}
		return m.dismiss(controller.DismissFooterButton, controller.ModalConfirmDelete), nil
	case key.Matches(msg, m.keys.HeaderClose):
		return m.dismiss(controller.DismissHeaderDelete, controller.ModalConfirmDelete), nil
	case key.Matches(msg, m.keys.Close):
		return m.dismiss(controller.DismissCloseIcon, controller.ModalConfirmDelete), nil
	}
	return m, nil
}

func (m appModel) confirmDelete() (tea.Model, tea.Cmd) {
	next, targets, err := controller.ConfirmDelete(m.state)
	if err != nil {
		logrus.WithError(err).Debug("confirm delete")
		return m, nil
	}
	m.state = next
	if len(targets) == 0 {
		return m, nil
	}
	return m, tea.Batch(m.deleteCmd(targets), m.spinner.Tick)
}

func (m appModel) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Close):
		return m.dismiss(controller.DismissCloseIcon, controller.ModalPrompt), nil
	case key.Matches(msg, m.keys.Accept):
		m.state = controller.SetPromptValue(m.state, m.input.Value())
		if controller.Renaming(m.state) {
			return m.beginRename()
		}
		next, req, err := controller.BeginSubmit(m.state)
		if err != nil {
			// Enter pressed again while the first request is still pending.
			logrus.WithError(err).Debug("submit ignored")
			return m, nil
		}
		m.state = next
		return m, tea.Batch(m.submitCmd(req), m.spinner.Tick)
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.state = controller.SetPromptValue(m.state, m.input.Value())
	return m, cmd
}

func (m appModel) beginRename() (tea.Model, tea.Cmd) {
	next, req, err := controller.BeginRename(m.state)
	switch {
	case errors.Is(err, controller.ErrSubmitInFlight):
		logrus.WithError(err).Debug("rename ignored")
		return m, nil
	case err != nil:
		var effects []controller.Effect
		m.state, effects = controller.ShowAlert(m.state, "Could not rename: "+err.Error())
		return m.applyEffects(effects)
	}
	m.state = next
	return m, tea.Batch(m.renameCmd(req), m.spinner.Tick)
}

func (m appModel) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Accept) {
		m.filtering = false
		m.filterInput.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	cur := m.cursorPath()
	m.state = controller.SetFilter(m.state, m.filterInput.Value())
	m.moveCursorToPath(cur)
	return m, cmd
}

func (m appModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Up):
		m.cursor--
		m.clampCursor()
	case key.Matches(msg, m.keys.Down):
		m.cursor++
		m.clampCursor()
	case key.Matches(msg, m.keys.Toggle):
		vis := controller.Visible(m.state)
		if m.cursor >= 0 && m.cursor < len(vis) {
			m.state = controller.ToggleItem(m.state, vis[m.cursor])
		}
	case key.Matches(msg, m.keys.SelectAll):
		m.state = controller.ToggleSelectAll(m.state, !m.state.SelectAll)
	case key.Matches(msg, m.keys.NewFile):
		return m.touch(controller.TypeFile)
	case key.Matches(msg, m.keys.NewFolder):
		return m.touch(controller.TypeFolder)
	case key.Matches(msg, m.keys.UploadFile):
		return m.upload(controller.TypeFile)
	case key.Matches(msg, m.keys.UploadDir):
		return m.upload(controller.TypeFolder)
	case key.Matches(msg, m.keys.Rename):
		vis := controller.Visible(m.state)
		if m.cursor >= 0 && m.cursor < len(vis) {
			var effects []controller.Effect
			m.state, effects = controller.Rename(m.state, vis[m.cursor])
			return m.applyEffects(effects)
		}
	case key.Matches(msg, m.keys.SortKey):
		m.setSort(m.sort.NextKey())
	case key.Matches(msg, m.keys.SortOrder):
		o := m.sort
		o.Descending = !o.Descending
		m.setSort(o)
	case key.Matches(msg, m.keys.Delete):
		m.confirmFocus = confirmFocusCancel
		m.state, _ = controller.RequestDelete(m.state)
	case key.Matches(msg, m.keys.Filter):
		m.filtering = true
		m.filterInput.SetValue(m.state.Filter)
		m.filterInput.CursorEnd()
		return m, m.filterInput.Focus()
	case key.Matches(msg, m.keys.Reload):
		if m.loading {
			return m, nil
		}
		m.loading = true
		return m, tea.Batch(m.loadCmd(), m.spinner.Tick)
	case key.Matches(msg, m.keys.Help):
		m.state = controller.OpenModal(m.state, controller.ModalHelp)
		m.refreshHelpView()
		m.helpView.GotoTop()
	}
	return m, nil
}

func (m appModel) touch(typ string) (tea.Model, tea.Cmd) {
	var effects []controller.Effect
	m.state, effects = controller.Touch(m.state, typ)
	return m.applyEffects(effects)
}

func (m appModel) upload(typ string) (tea.Model, tea.Cmd) {
	err := m.ctrl.Upload(typ)
	if err == nil {
		return m, nil
	}
	var effects []controller.Effect
	m.state, effects = controller.ShowAlert(m.state, err.Error())
	return m.applyEffects(effects)
}

// updateMouse treats a click outside the top dialog as a click on its background.
func (m appModel) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	top := controller.TopModal(m.state)
	if top == "" {
		return m, nil
	}
	x, y, w, h := centeredBounds(m.width, m.height, m.renderModal(top))
	inside := msg.X >= x && msg.X < x+w && msg.Y >= y && msg.Y < y+h
	if inside {
		return m, nil
	}
	return m.dismiss(controller.DismissBackground, top), nil
}
