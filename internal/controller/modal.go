package controller

// DismissControl enumerates the controls inside a modal that close it on click.
type DismissControl int

const (
	DismissBackground DismissControl = iota
	DismissCloseIcon
	DismissHeaderDelete
	DismissFooterButton
)

func (d DismissControl) String() string {
	switch d {
	case DismissBackground:
		return "background"
	case DismissCloseIcon:
		return "close"
	case DismissHeaderDelete:
		return "header-delete"
	case DismissFooterButton:
		return "footer-button"
	default:
		return "unknown"
	}
}

func OpenModal(s State, id ModalID) State {
	if id == "" {
		return s
	}
	out := s.clone()
	out.Modals[id] = true
	return out
}

// CloseModal removes the active marker. An empty id (no enclosing modal) is a no-op.
func CloseModal(s State, id ModalID) State {
	if id == "" || !s.Modals[id] {
		return s
	}
	out := s.clone()
	delete(out.Modals, id)
	return out
}

func CloseAllModals(s State) State {
	out := s
	for _, id := range ActiveModals(s) {
		out = CloseModal(out, id)
	}
	return out
}

func IsActive(s State, id ModalID) bool {
	return s.Modals[id]
}

// ActiveModals returns the visible modals, bottom of the stack first.
func ActiveModals(s State) []ModalID {
	var out []ModalID
	seen := map[ModalID]bool{}
	for _, id := range modalOrder {
		seen[id] = true
		if s.Modals[id] {
			out = append(out, id)
		}
	}
	// Ids outside the known set still count; they sit on top in no particular order.
	for id, on := range s.Modals {
		if on && !seen[id] {
			out = append(out, id)
		}
	}
	return out
}

// TopModal returns the modal that receives input, or "" when none is open.
func TopModal(s State) ModalID {
	active := ActiveModals(s)
	if len(active) == 0 {
		return ""
	}
	return active[len(active)-1]
}

// Dismiss handles a click on one of the dismiss controls of owner.
func Dismiss(s State, control DismissControl, owner ModalID) State {
	switch control {
	case DismissBackground, DismissCloseIcon, DismissHeaderDelete, DismissFooterButton:
		return CloseModal(s, owner)
	default:
		return s
	}
}

// HandleKey applies the global key bindings: escape closes every modal wherever focus is.
func HandleKey(s State, key string) State {
	if key == "esc" {
		return CloseAllModals(s)
	}
	return s
}
