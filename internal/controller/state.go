// Package controller holds the library UI state and the transitions over it.
//
// State is a plain value. Transition functions take a State and return the next one
// without mutating their input, so the same logic drives the terminal UI, the CLI and tests.
// Anything that must happen outside the state (focusing an input, re-fetching the listing,
// raising an alert) is reported as an Effect for the caller to apply.
package controller

import "filelib-cli/internal/model"

type ModalID string

const (
	ModalPrompt        ModalID = "prompt"
	ModalConfirmDelete ModalID = "confirm-delete"
	ModalHelp          ModalID = "help"
	ModalAlert         ModalID = "alert"
)

// modalOrder is the stacking order, bottom first.
var modalOrder = []ModalID{ModalPrompt, ModalConfirmDelete, ModalHelp, ModalAlert}

type Item struct {
	Entry   model.FileEntry
	Checked bool
}

// PromptState backs the create-entry prompt. Touch writes Placeholder, Title and Type;
// Submit reads Value and Type. Nothing clears it on dismissal.
type PromptState struct {
	Value       string
	Placeholder string
	Title       string
	Type        string
	// RenameFrom is set while the prompt renames an entry instead of creating one.
	RenameFrom string
}

type State struct {
	Items     []Item
	SelectAll bool

	// Modals holds the active marker per modal; a modal is visible iff its entry is true.
	Modals map[ModalID]bool

	Prompt PromptState

	// Revealed stays false until the first listing is in place.
	Revealed bool

	// Submitting guards against a second touch while one request is pending.
	Submitting bool
	// Deleting is the same guard for bulk deletes.
	Deleting bool

	Alert  string
	Filter string
	Sort   model.SortOrder
}

type EffectKind int

const (
	EffectFocusInput EffectKind = iota + 1
	EffectReload
	EffectAlert
)

type Effect struct {
	Kind    EffectKind
	Message string
}

func NewState() State {
	return State{Modals: map[ModalID]bool{}}
}

// clone copies the slice and map so transitions never share backing storage with their input.
func (s State) clone() State {
	out := s
	if s.Items != nil {
		out.Items = make([]Item, len(s.Items))
		copy(out.Items, s.Items)
	}
	out.Modals = make(map[ModalID]bool, len(s.Modals))
	for k, v := range s.Modals {
		if v {
			out.Modals[k] = true
		}
	}
	return out
}

// Ready reveals the listing. Calling it again has no effect.
func Ready(s State) State {
	if s.Revealed {
		return s
	}
	out := s.clone()
	out.Revealed = true
	return out
}

// Reload replaces the whole state with a fresh one built from entries, the way a page reload
// discards client-side selection, modals, filter and sort.
func Reload(entries []model.FileEntry) State {
	out := NewState()
	out.Items = make([]Item, 0, len(entries))
	for _, e := range entries {
		out.Items = append(out.Items, Item{Entry: e})
	}
	return Ready(out)
}
