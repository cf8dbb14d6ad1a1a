package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// TouchRecord is one create attempt as kept in the local journal.
type TouchRecord struct {
	ID         int64     `json:"id"`
	At         time.Time `json:"at"`
	LibraryID  string    `json:"libraryId"`
	Path       string    `json:"path"`
	Type       string    `json:"type"`
	Filename   string    `json:"filename"`
	OK         bool      `json:"ok"`
	StatusCode int       `json:"statusCode,omitempty"`
	Error      string    `json:"error,omitempty"`
}

func (s Store) openSQLite(ctx context.Context) (*sql.DB, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", s.journalPath())
	if err != nil {
		return nil, err
	}
	// WAL + busy_timeout: the TUI and CLI invocations may write concurrently.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := migrateJournal(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func migrateJournal(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS touches (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			at_unixms INTEGER NOT NULL,
			library_id TEXT NOT NULL,
			path TEXT NOT NULL,
			type TEXT NOT NULL,
			filename TEXT NOT NULL,
			ok INTEGER NOT NULL,
			status_code INTEGER NOT NULL,
			error TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_touches_library ON touches(library_id, at_unixms);`,
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

func (s Store) RecordTouch(ctx context.Context, rec TouchRecord) error {
	if strings.TrimSpace(rec.LibraryID) == "" {
		return errors.New("journal: library id is empty")
	}
	if rec.At.IsZero() {
		rec.At = time.Now().UTC()
	}
	db, err := s.openSQLite(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	ok := 0
	if rec.OK {
		ok = 1
	}
	_, err = db.ExecContext(ctx,
		`INSERT INTO touches(at_unixms, library_id, path, type, filename, ok, status_code, error) VALUES(?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.At.UnixMilli(), rec.LibraryID, rec.Path, rec.Type, rec.Filename, ok, rec.StatusCode, rec.Error,
	)
	return err
}

// ListTouches returns the newest records first. An empty libraryID lists every library;
// limit <= 0 means no limit.
func (s Store) ListTouches(ctx context.Context, libraryID string, limit int) ([]TouchRecord, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	q := `SELECT id, at_unixms, library_id, path, type, filename, ok, status_code, error FROM touches`
	var args []any
	if id := strings.TrimSpace(libraryID); id != "" {
		q += ` WHERE library_id = ?`
		args = append(args, id)
	}
	q += ` ORDER BY at_unixms DESC, id DESC`
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []TouchRecord{}
	for rows.Next() {
		var rec TouchRecord
		var atMS int64
		var ok int
		if err := rows.Scan(&rec.ID, &atMS, &rec.LibraryID, &rec.Path, &rec.Type, &rec.Filename, &ok, &rec.StatusCode, &rec.Error); err != nil {
			return nil, err
		}
		rec.At = time.UnixMilli(atMS).UTC()
		rec.OK = ok != 0
		out = append(out, rec)
	}
	return out, rows.Err()
}
