package controller

import "filelib-cli/internal/model"

// ToggleSelectAll sets the select-all control and mirrors it onto every item.
func ToggleSelectAll(s State, checked bool) State {
	out := s.clone()
	out.SelectAll = checked
	for i := range out.Items {
		out.Items[i].Checked = checked
	}
	return out
}

// ToggleItem flips one item. The select-all control is left untouched.
func ToggleItem(s State, index int) State {
	if index < 0 || index >= len(s.Items) {
		return s
	}
	out := s.clone()
	out.Items[index].Checked = !out.Items[index].Checked
	return out
}

// Selected returns the checked entries in listing order.
func Selected(s State) []model.FileEntry {
	var out []model.FileEntry
	for _, it := range s.Items {
		if it.Checked {
			out = append(out, it.Entry)
		}
	}
	return out
}
