// Package history records decode attempts to a SQLite database so past
// scans can be reviewed with `qrsnap history`.
package history

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// History records every decode attempt to a SQLite database.
type History struct {
	db *sql.DB
}

// Entry is one recorded decode attempt.
type Entry struct {
	TS      string
	File    string
	OK      bool
	Err     string
	Grade   float64
	Bytes   int
	Version int
	Mode    string
	EC      string
}

// New opens (or creates) the SQLite database at dbPath and ensures the
// scan_history table exists.
func New(dbPath string) (*History, error) {
	dsn := "file:" + dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("history: open db: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS scan_history (
		id      INTEGER PRIMARY KEY AUTOINCREMENT,
		ts      TEXT    NOT NULL,
		file    TEXT    NOT NULL,
		ok      INTEGER NOT NULL,
		err     TEXT    NOT NULL,
		grade   REAL    NOT NULL,
		bytes   INTEGER NOT NULL,
		version INTEGER NOT NULL,
		mode    TEXT    NOT NULL,
		ec      TEXT    NOT NULL
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("history: create table: %w", err)
	}
	return &History{db: db}, nil
}

// Record inserts one row. It is safe to call concurrently.
func (h *History) Record(e Entry) error {
	ts := time.Now().UTC().Format(time.RFC3339)
	_, err := h.db.Exec(
		`INSERT INTO scan_history (ts, file, ok, err, grade, bytes, version, mode, ec)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		ts, e.File, e.OK, e.Err, e.Grade, e.Bytes, e.Version, e.Mode, e.EC,
	)
	return err
}

// List returns the most recent entries, newest first.
func (h *History) List(limit int) ([]Entry, error) {
	rows, err := h.db.Query(
		`SELECT ts, file, ok, err, grade, bytes, version, mode, ec
		 FROM scan_history ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.TS, &e.File, &e.OK, &e.Err, &e.Grade, &e.Bytes, &e.Version, &e.Mode, &e.EC); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Close closes the underlying database connection.
func (h *History) Close() error {
	return h.db.Close()
}
