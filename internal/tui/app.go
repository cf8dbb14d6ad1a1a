package tui

import (
	"context"
	"time"

	"filelib-cli/internal/controller"
	"filelib-cli/internal/model"
	"filelib-cli/internal/store"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
)

const defaultRequestTimeout = 30 * time.Second

type Options struct {
	Controller *controller.Controller
	// Store keeps the cursor and filter per directory between runs. A zero Store disables it.
	Store   store.Store
	Server  string
	Timeout time.Duration
	Theme   string
}

type filesLoadedMsg struct {
	entries []model.FileEntry
	err     error
}

type touchDoneMsg struct {
	res controller.SubmitResult
}

type deleteDoneMsg struct {
	res controller.DeleteResult
}

type renameDoneMsg struct {
	res controller.RenameResult
}

type appModel struct {
	ctrl    *controller.Controller
	store   store.Store
	server  string
	timeout time.Duration

	width  int
	height int

	state controller.State
	// sort survives reloads, unlike the rest of the state.
	sort model.SortOrder

	// cursor indexes into controller.Visible(state).
	cursor int

	input        textinput.Model
	filterInput  textinput.Model
	filtering    bool
	confirmFocus confirmModalFocus

	keys     keyMap
	help     help.Model
	spinner  spinner.Model
	helpView viewport.Model

	loading  bool
	loadErr  error
	restored bool
	tuiState *store.TUIState
}

func newAppModel(opts Options) appModel {
	m := appModel{
		ctrl:    opts.Controller,
		store:   opts.Store,
		server:  opts.Server,
		timeout: opts.Timeout,
		state:   controller.NewState(),
		keys:    newKeyMap(),
		help:    help.New(),
		loading: true,
	}
	if m.timeout <= 0 {
		m.timeout = defaultRequestTimeout
	}

	m.input = textinput.New()
	m.input.CharLimit = 255
	m.input.Width = 40

	m.filterInput = textinput.New()
	m.filterInput.Prompt = "/"
	m.filterInput.Placeholder = "filter"
	m.filterInput.CharLimit = 120

	m.spinner = spinner.New()
	m.spinner.Spinner = spinner.MiniDot

	m.helpView = viewport.New(modalBodyWidth(80), 16)

	st, err := m.store.LoadTUIState()
	if err != nil {
		logrus.WithError(err).Debug("tui state unavailable")
		st = &store.TUIState{Version: 1}
	}
	m.tuiState = st
	if k, err := model.ParseSortKey(st.Sort); err == nil {
		m.sort = model.SortOrder{Key: k, Descending: st.SortDescending}
	}
	return m
}

func (m appModel) Init() tea.Cmd {
	return tea.Batch(m.loadCmd(), m.spinner.Tick)
}

func requestContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (m appModel) loadCmd() tea.Cmd {
	ctrl := m.ctrl
	timeout := m.timeout
	return func() tea.Msg {
		ctx, cancel := requestContext(timeout)
		defer cancel()
		entries, err := ctrl.Load(ctx)
		return filesLoadedMsg{entries: entries, err: err}
	}
}

func (m appModel) submitCmd(req model.TouchRequest) tea.Cmd {
	ctrl := m.ctrl
	timeout := m.timeout
	return func() tea.Msg {
		ctx, cancel := requestContext(timeout)
		defer cancel()
		return touchDoneMsg{res: ctrl.Submit(ctx, req)}
	}
}

func (m appModel) renameCmd(req model.MoveRequest) tea.Cmd {
	ctrl := m.ctrl
	timeout := m.timeout
	return func() tea.Msg {
		ctx, cancel := requestContext(timeout)
		defer cancel()
		return renameDoneMsg{res: ctrl.Move(ctx, req)}
	}
}

func (m appModel) deleteCmd(entries []model.FileEntry) tea.Cmd {
	ctrl := m.ctrl
	timeout := m.timeout
	return func() tea.Msg {
		ctx, cancel := requestContext(timeout)
		defer cancel()
		return deleteDoneMsg{res: ctrl.DeleteEntries(ctx, entries)}
	}
}

func (m appModel) busy() bool {
	return m.loading || m.state.Submitting || m.state.Deleting
}

// applyEffects carries out what a transition asked for outside the state.
func (m appModel) applyEffects(effects []controller.Effect) (appModel, tea.Cmd) {
	var cmds []tea.Cmd
	for _, e := range effects {
		switch e.Kind {
		case controller.EffectFocusInput:
			m.input.Placeholder = m.state.Prompt.Placeholder
			m.input.SetValue(m.state.Prompt.Value)
			m.input.CursorEnd()
			cmds = append(cmds, m.input.Focus())
		case controller.EffectReload:
			m.loading = true
			cmds = append(cmds, m.loadCmd(), m.spinner.Tick)
		case controller.EffectAlert:
			logrus.WithField("alert", e.Message).Debug("alert shown")
		}
	}
	m.syncFocus()
	return m, tea.Batch(cmds...)
}

// syncFocus keeps the text input focused only while the prompt is the top modal.
func (m *appModel) syncFocus() {
	if controller.TopModal(m.state) == controller.ModalPrompt {
		if !m.input.Focused() {
			m.input.Focus()
		}
		return
	}
	m.input.Blur()
}

func (m *appModel) applyListing(entries []model.FileEntry) {
	curPath := m.cursorPath()
	m.state = controller.SetSort(controller.Reload(entries), m.sort)

	key := store.LocationKey(m.ctrl.LibraryID(), m.ctrl.LibraryPath())
	if !m.restored {
		m.restored = true
		if q := m.tuiState.Filter[key]; q != "" {
			m.state = controller.SetFilter(m.state, q)
			m.filterInput.SetValue(q)
		}
		curPath = m.tuiState.Cursor[key]
	} else {
		m.filterInput.SetValue("")
	}
	m.filtering = false
	m.filterInput.Blur()
	m.input.Blur()
	m.moveCursorToPath(curPath)
}

func (m appModel) cursorPath() string {
	vis := controller.Visible(m.state)
	if m.cursor < 0 || m.cursor >= len(vis) {
		return ""
	}
	return m.state.Items[vis[m.cursor]].Entry.Path
}

// setSort reorders the listing and keeps the cursor on the same entry.
func (m *appModel) setSort(o model.SortOrder) {
	cur := m.cursorPath()
	m.sort = o
	m.state = controller.SetSort(m.state, o)
	m.moveCursorToPath(cur)
}

func (m *appModel) moveCursorToPath(p string) {
	vis := controller.Visible(m.state)
	m.cursor = 0
	for i, idx := range vis {
		if m.state.Items[idx].Entry.Path == p {
			m.cursor = i
			return
		}
	}
}

func (m *appModel) clampCursor() {
	n := len(controller.Visible(m.state))
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *appModel) rememberLocation() {
	if m.tuiState == nil {
		return
	}
	key := store.LocationKey(m.ctrl.LibraryID(), m.ctrl.LibraryPath())
	if m.tuiState.Cursor == nil {
		m.tuiState.Cursor = map[string]string{}
	}
	if m.tuiState.Filter == nil {
		m.tuiState.Filter = map[string]string{}
	}
	if p := m.cursorPath(); p != "" {
		m.tuiState.Cursor[key] = p
	} else {
		delete(m.tuiState.Cursor, key)
	}
	if m.state.Filter != "" {
		m.tuiState.Filter[key] = m.state.Filter
	} else {
		delete(m.tuiState.Filter, key)
	}
	m.tuiState.Sort = string(m.sort.Key)
	m.tuiState.SortDescending = m.sort.Descending
}

func (m appModel) quit() (tea.Model, tea.Cmd) {
	m.rememberLocation()
	if err := m.store.SaveTUIState(m.tuiState); err != nil {
		logrus.WithError(err).Warn("save tui state")
	}
	return m, tea.Quit
}

func (m *appModel) refreshHelpView() {
	w := modalBodyWidth(m.width)
	h := m.height - 10
	if h < 6 {
		h = 6
	}
	m.helpView.Width = w
	m.helpView.Height = h
	m.helpView.SetContent(renderMarkdown(helpMarkdown(m.keys), w))
}
