package store

import (
	"encoding/json"
	"errors"
	"os"
	"strings"
)

// TUIState stores small, user-facing UI state for restoring the last screen on relaunch.
//
// It is best effort: callers should tolerate missing or invalid data.
type TUIState struct {
	Version int `json:"version"`

	// Cursor maps a location key (see LocationKey) to the entry under the cursor, as listed
	// (relative to that directory).
	Cursor map[string]string `json:"cursor,omitempty"`

	// Filter maps a location key to the last filter query.
	Filter map[string]string `json:"filter,omitempty"`

	// Sort is the listing order shared by every location ("name" or "size").
	Sort           string `json:"sort,omitempty"`
	SortDescending bool   `json:"sortDescending,omitempty"`
}

// LocationKey identifies one directory of one library.
func LocationKey(libraryID, dir string) string {
	return strings.TrimSpace(libraryID) + ":" + dir
}

func (s Store) LoadTUIState() (*TUIState, error) {
	if strings.TrimSpace(s.Dir) == "" {
		return &TUIState{Version: 1}, nil
	}
	b, err := os.ReadFile(s.tuiStatePath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &TUIState{Version: 1}, nil
		}
		return nil, err
	}
	var st TUIState
	if err := json.Unmarshal(b, &st); err != nil {
		// Corrupted state is treated as missing.
		return &TUIState{Version: 1}, nil
	}
	if st.Version == 0 {
		st.Version = 1
	}
	return &st, nil
}

func (s Store) SaveTUIState(st *TUIState) error {
	if st == nil {
		return nil
	}
	if strings.TrimSpace(s.Dir) == "" {
		return nil
	}
	if err := s.Ensure(); err != nil {
		return err
	}
	if st.Version == 0 {
		st.Version = 1
	}
	b, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	path := s.tuiStatePath()
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
