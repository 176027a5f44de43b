// Package sqlite provides SQLite-based persistent storage for FlexBreak.
// Uses WAL mode for concurrent reads and crash-safe writes.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver (no CGO required)
)

// DB wraps a SQLite connection with WAL mode and migrations.
type DB struct {
	db *sql.DB
}

// Open creates or opens the SQLite database at dir/state.db.
// Enables WAL mode, foreign keys, and 5-second busy timeout.
func Open(dir string) (*DB, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	dbPath := filepath.Join(dir, "state.db")
	dsn := dbPath + "?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	// Connection pool settings for SQLite
	db.SetMaxOpenConns(1) // SQLite is single-writer
	db.SetMaxIdleConns(1)

	d := &DB{db: db}
	if err := d.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return d, nil
}

// Close cleanly shuts down the database.
func (d *DB) Close() error {
	return d.db.Close()
}

// Ping checks database connectivity.
func (d *DB) Ping() error {
	return d.db.Ping()
}

// migrate runs idempotent schema migrations.
func (d *DB) migrate() error {
	migrations := []string{
		// Whole-document records. The progress aggregate is one JSON blob
		// under a fixed key; each write is a wholesale overwrite.
		`CREATE TABLE IF NOT EXISTS records (
			key        TEXT PRIMARY KEY,
			document   TEXT NOT NULL,
			updated_at INTEGER NOT NULL
		)`,

		// Boolean flags held apart from the record so an explicit reset can
		// reinitialize the record while preserving them (premium access,
		// testing access).
		`CREATE TABLE IF NOT EXISTS flags (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,
	}

	for _, m := range migrations {
		if _, err := d.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
		}
	}
	return nil
}

// ─── Record Documents ───────────────────────────────────────────────────────

// PutRecord stores a JSON document wholesale under the given key.
func (d *DB) PutRecord(key, document string, at time.Time) error {
	_, err := d.db.Exec(
		`INSERT INTO records (key, document, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET document=excluded.document, updated_at=excluded.updated_at`,
		key, document, at.Unix(),
	)
	return err
}

// GetRecord retrieves a JSON document by key.
// Returns ("", false, nil) if the key is absent.
func (d *DB) GetRecord(key string) (string, bool, error) {
	var document string
	err := d.db.QueryRow(`SELECT document FROM records WHERE key = ?`, key).Scan(&document)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return document, true, nil
}

// DeleteRecord removes a document. Missing keys are not an error.
func (d *DB) DeleteRecord(key string) error {
	_, err := d.db.Exec(`DELETE FROM records WHERE key = ?`, key)
	return err
}

// ─── Flags ──────────────────────────────────────────────────────────────────

// SetFlag stores a boolean flag.
func (d *DB) SetFlag(key string, value bool) error {
	v := "0"
	if value {
		v = "1"
	}
	_, err := d.db.Exec(
		`INSERT INTO flags (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value=excluded.value`,
		key, v,
	)
	return err
}

// GetFlag retrieves a boolean flag. Absent keys read as false.
func (d *DB) GetFlag(key string) (bool, error) {
	var value string
	err := d.db.QueryRow(`SELECT value FROM flags WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return value == "1", nil
}
