package controller

const (
	TypeFile   = "file"
	TypeFolder = "folder"
)

// Touch opens the create-entry prompt for typ. Any typ other than "file" gets the folder
// wording; unknown values are passed through to the server unchanged.
func Touch(s State, typ string) (State, []Effect) {
	out := OpenModal(s, ModalPrompt)
	out.Prompt.Type = typ
	out.Prompt.RenameFrom = ""
	if typ == TypeFile {
		out.Prompt.Placeholder = "myfile.txt"
		out.Prompt.Title = "Enter file name"
	} else {
		out.Prompt.Placeholder = "My Folder"
		out.Prompt.Title = "Enter folder name"
	}
	return out, []Effect{{Kind: EffectFocusInput}}
}

// Rename opens the same prompt to rename the item at index, prefilled with its name.
// An out-of-range index is a no-op.
func Rename(s State, index int) (State, []Effect) {
	if index < 0 || index >= len(s.Items) {
		return s, nil
	}
	e := s.Items[index].Entry
	out := OpenModal(s, ModalPrompt)
	out.Prompt.RenameFrom = e.Path
	out.Prompt.Value = e.Name()
	out.Prompt.Placeholder = e.Name()
	out.Prompt.Title = "Rename " + e.Name()
	return out, []Effect{{Kind: EffectFocusInput}}
}

// Renaming reports whether the open prompt renames an entry.
func Renaming(s State) bool {
	return s.Prompt.RenameFrom != ""
}

// SetPromptValue records what the user typed into the prompt input.
func SetPromptValue(s State, v string) State {
	if s.Prompt.Value == v {
		return s
	}
	out := s.clone()
	out.Prompt.Value = v
	return out
}

func kindLabel(typ string) string {
	if typ == TypeFile {
		return "file"
	}
	return "folder"
}
