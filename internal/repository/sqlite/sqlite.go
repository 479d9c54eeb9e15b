// Package sqlite implements the repository interfaces using SQLite as the
// storage backend.
//
// We use modernc.org/sqlite rather than mattn/go-sqlite3 because it is a
// pure-Go translation of SQLite — no CGo, no C compiler, painless
// cross-compilation. Tests open ":memory:" databases, so the whole store
// can be exercised without touching disk.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/xid"

	// Side-effect import: registers the "sqlite" driver with database/sql.
	_ "modernc.org/sqlite"
)

// DB wraps a sql.DB connection pool and provides the repository methods.
// The server owns the lifecycle: New creates it, Close releases it on
// shutdown.
type DB struct {
	conn *sql.DB

	// keeper pins an in-memory database for the lifetime of this DB.
	// nil for file-backed databases.
	keeper *sql.Conn
}

// New opens the SQLite database at dbPath (or ":memory:") and runs the
// schema migrations.
func New(dbPath string) (*DB, error) {
	// A bare ":memory:" DSN gives every pooled connection its OWN private
	// empty database — migrations would run on one connection and later
	// queries could land on a fresh one that has no tables at all. A
	// uniquely named shared-cache database makes every connection in this
	// pool attach to the same store (unique so separate DB instances, e.g.
	// parallel tests, stay isolated). SQLite frees a shared in-memory
	// database when its last connection closes, so New pins one connection
	// (keeper, below) until Close.
	dsn := dbPath
	inMemory := dbPath == ":memory:"
	if inMemory {
		dsn = fmt.Sprintf("file:%s?mode=memory&cache=shared", xid.New().String())
	}

	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	// Force an immediate connection so a bad path or permission problem
	// surfaces here instead of on the first query.
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// WAL mode allows concurrent reads while a write is in progress —
	// without it SQLite locks the whole file for every write.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}

	db := &DB{conn: conn}

	if inMemory {
		keeper, err := conn.Conn(context.Background())
		if err != nil {
			conn.Close()
			return nil, fmt.Errorf("sqlite: pinning in-memory database: %w", err)
		}
		db.keeper = keeper
	}

	if err := db.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// Close closes the database connection pool, releasing the pinned
// connection first so an in-memory database is freed with it.
func (db *DB) Close() error {
	if db.keeper != nil {
		db.keeper.Close()
	}
	return db.conn.Close()
}

// migrate creates the tables. CREATE TABLE IF NOT EXISTS is idempotent, so
// this is safe to run on every startup.
//
// Note that users.email carries NO unique constraint: duplicate prevention
// is the create path's conditional insert, which matches
// the service's "already registered" semantics rather than a hard schema
// invariant.
func (db *DB) migrate() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id         TEXT PRIMARY KEY,
			username   TEXT NOT NULL,
			email      TEXT NOT NULL,
			password   TEXT NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_users_email ON users(email);
	`)
	if err != nil {
		return fmt.Errorf("creating users table: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS products (
			id          TEXT PRIMARY KEY,
			name        TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			price       REAL NOT NULL DEFAULT 0,
			created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		return fmt.Errorf("creating products table: %w", err)
	}

	return nil
}
