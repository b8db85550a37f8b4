// Package store is the persistence boundary of the ledger: a SQLite
// database holding the accounts, transactions, budgets, and period_locks
// tables. Uniqueness and referential integrity live in the schema; domain
// rules live in the services. Amounts are stored as exact decimal strings
// and aggregated with decimal arithmetic, never floats.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	sqlite3 "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS accounts(
    account_id      INTEGER PRIMARY KEY AUTOINCREMENT,
    name            TEXT NOT NULL,
    type            TEXT NOT NULL CHECK (type IN ('asset','liability','equity','income','expense')),
    opening_balance TEXT NOT NULL DEFAULT '0',
    created_at      TEXT NOT NULL,
    UNIQUE(name, type)
);

CREATE TABLE IF NOT EXISTS transactions(
    txn_id            INTEGER PRIMARY KEY AUTOINCREMENT,
    date              TEXT NOT NULL,
    amount            TEXT NOT NULL CHECK (CAST(amount AS REAL) > 0),
    debit_account_id  INTEGER NOT NULL REFERENCES accounts(account_id),
    credit_account_id INTEGER NOT NULL REFERENCES accounts(account_id),
    notes             TEXT NOT NULL DEFAULT '',
    created_at        TEXT NOT NULL,
    updated_at        TEXT NOT NULL,
    CHECK (debit_account_id <> credit_account_id)
);

CREATE TABLE IF NOT EXISTS budgets(
    budget_id INTEGER PRIMARY KEY AUTOINCREMENT,
    category  TEXT NOT NULL,
    period    TEXT NOT NULL,
    amount    TEXT NOT NULL,
    UNIQUE(period, category)
);

CREATE TABLE IF NOT EXISTS period_locks(
    period    TEXT PRIMARY KEY,
    locked_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS meta(
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
INSERT OR IGNORE INTO meta(key, value) VALUES ('schema_version', '1');

CREATE INDEX IF NOT EXISTS idx_txn_date   ON transactions(date);
CREATE INDEX IF NOT EXISTS idx_txn_debit  ON transactions(debit_account_id);
CREATE INDEX IF NOT EXISTS idx_txn_credit ON transactions(credit_account_id);
`

// Store is an open ledger database. One Store is created at startup and
// handed to each service; there is no package-level connection.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens (or creates) the SQLite database at path, enables foreign key
// enforcement, and ensures the schema exists.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", "file:"+path+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}
	return &Store{db: db, path: path}, nil
}

// OpenMemory opens a private in-memory ledger. Tests use this.
func OpenMemory() (*Store, error) {
	db, err := sql.Open("sqlite3", "file::memory:?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening in-memory database: %w", err)
	}
	// A memory database vanishes when its last connection closes.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}
	return &Store{db: db, path: ":memory:"}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// InTx runs fn inside a database transaction, committing on nil and
// rolling back on error so a failed unit of work leaves no partial rows.
func (s *Store) InTx(fn func(*sql.Tx) error) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w (rollback also failed: %v)", err, rbErr)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// isUniqueViolation reports whether err is a SQLite unique constraint error.
func isUniqueViolation(err error) bool {
	var serr sqlite3.Error
	return errors.As(err, &serr) && serr.ExtendedCode == sqlite3.ErrConstraintUnique
}
