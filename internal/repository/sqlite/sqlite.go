// Package sqlite implements the repository interfaces using SQLite as the storage backend.
//
// WHY SQLITE?
// SQLite is an embedded database — the whole directory lives in a single file
// next to the binary. No separate database server to install, configure, or
// manage, which is exactly right for an internal tool with a handful of rows.
//
// WHY modernc.org/sqlite INSTEAD OF github.com/mattn/go-sqlite3?
// mattn/go-sqlite3 uses CGo, which means you need a C compiler installed and
// cross-compilation becomes painful. modernc.org/sqlite is a pure Go
// translation of the SQLite C code — no C compiler needed, works everywhere
// Go works, and ":memory:" databases make the repository tests trivial.
package sqlite

import (
	"database/sql"
	"fmt"

	// BLANK IMPORT:
	// Side-effect only import — the package's init() registers itself with
	// database/sql as a driver named "sqlite". After this import,
	// sql.Open("sqlite", ...) knows how to talk to SQLite.
	_ "modernc.org/sqlite"
)

// DB wraps a sql.DB connection pool and provides the repository methods.
// Wrapping (rather than exposing *sql.DB) lets us attach methods, control the
// lifecycle, and satisfy repository.EmployeeRepository.
type DB struct {
	conn *sql.DB
}

// New opens (or creates) the database at dbPath and ensures the schema exists.
//
// dbPath examples:
//   - "data/directory.db" → file-based database (persistent)
//   - ":memory:"          → in-memory database (used by tests, lost on close)
//
// sql.Open does not actually connect — it creates a pool manager. We Ping()
// to force an immediate connection so a bad path fails here, at startup,
// rather than on the first query.
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// WAL mode allows concurrent reads while a write is in progress.
	// Without it SQLite locks the whole file for every write, which would
	// make the public listing stall whenever an admin saves a record.
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

// Close closes the database connection pool.
// Wherever you call New(), immediately defer Close() — it flushes the WAL
// and releases the file lock.
func (db *DB) Close() error {
	return db.conn.Close()
}

// migrate idempotently ensures the employees table exists.
// Safe to call on every process start: CREATE TABLE IF NOT EXISTS won't
// error when the table is already there.
//
// AUTOINCREMENT (as opposed to plain INTEGER PRIMARY KEY) guarantees that
// ids of deleted rows are never handed out again. The id appears in photo
// and QR URLs; a recycled id could serve one person's contact card from a
// link saved for another.
func (db *DB) migrate() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS employees (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			name        TEXT NOT NULL,
			email       TEXT NOT NULL,
			phone       TEXT NOT NULL DEFAULT '',
			domain      TEXT NOT NULL DEFAULT '',
			linkedin    TEXT NOT NULL DEFAULT '',
			photo_path  TEXT NOT NULL DEFAULT '',
			created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_employees_name ON employees(name);
		CREATE INDEX IF NOT EXISTS idx_employees_domain ON employees(domain);
	`)
	if err != nil {
		return fmt.Errorf("creating employees table: %w", err)
	}

	return nil
}
