package store

import (
	"os"
	"path/filepath"
)

const (
	journalFileName  = "journal.sqlite"
	tuiStateFileName = "tui_state.json"
)

// Store is the local data directory (journal database and TUI state).
type Store struct {
	Dir string
}

func (s Store) Ensure() error {
	return os.MkdirAll(s.Dir, 0o755)
}

func (s Store) journalPath() string {
	return filepath.Join(s.Dir, journalFileName)
}

func (s Store) tuiStatePath() string {
	return filepath.Join(s.Dir, tuiStateFileName)
}
