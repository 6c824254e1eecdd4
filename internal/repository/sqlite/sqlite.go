// Package sqlite implements the repository interfaces on top of SQLite.
//
// The store is embedded: one file on disk, or ":memory:" in tests. It uses
// modernc.org/sqlite, a pure Go translation of SQLite, so the binaries
// build without a C toolchain.
//
// Two tables back the whole app:
//   - habits    the registry, in creation order
//   - checkins  the ledger, one row per (day, habit) cell that was ever set
//
// checkins.habit_id is deliberately not a foreign key: deleting a habit
// keeps its history, and rep totals keep counting it.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	// Registers the "sqlite" driver with database/sql.
	_ "modernc.org/sqlite"
)

// DB wraps a sql.DB connection pool and implements the habit, check-in and
// snapshot repositories.
type DB struct {
	conn *sql.DB
}

// New opens the database at dbPath and runs migrations.
//
// dbPath examples:
//   - "data/habits.db"  file-based, persistent
//   - ":memory:"        in-memory, gone on Close
//
// sql.Open only creates the pool; Ping forces a real connection so a bad
// path fails here instead of on the first request.
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	// An in-memory database lives in a single connection; a second pooled
	// connection would see an empty database.
	if dbPath == ":memory:" {
		conn.SetMaxOpenConns(1)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// WAL lets readers (analytics snapshots) run while a toggle is written.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}

	db := &DB{conn: conn}

	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// Close closes the connection pool. Callers defer it right after New.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Ping checks that the database still answers. The health endpoint uses it.
func (db *DB) Ping(ctx context.Context) error {
	return db.conn.PingContext(ctx)
}

// migrate creates the schema. Every step is idempotent, so it runs on each
// start against new and existing files alike.
func (db *DB) migrate() error {
	// position keeps registry order stable even when two habits share a
	// created_at timestamp.
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS habits (
			id         TEXT PRIMARY KEY,
			position   INTEGER NOT NULL,
			name       TEXT NOT NULL,
			icon       TEXT NOT NULL DEFAULT '',
			color      TEXT NOT NULL DEFAULT '',
			schedule   TEXT NOT NULL DEFAULT 'daily',
			why        TEXT NOT NULL DEFAULT '',
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_habits_position ON habits(position);
	`)
	if err != nil {
		return fmt.Errorf("creating habits table: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS checkins (
			day        TEXT NOT NULL,
			habit_id   TEXT NOT NULL,
			done       INTEGER NOT NULL DEFAULT 0,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (day, habit_id)
		);
		CREATE INDEX IF NOT EXISTS idx_checkins_habit_id ON checkins(habit_id);
	`)
	if err != nil {
		return fmt.Errorf("creating checkins table: %w", err)
	}

	return nil
}
