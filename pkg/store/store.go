// Package store persists compiled functions in a SQLite artifact
// database, keyed by link name with a content hash of the canonical
// CBOR encoding for change detection.
package store

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/cinderlang/cinder/pkg/ir"
)

// ErrNotFound indicates the requested function doesn't exist.
var ErrNotFound = errors.New("function not found")

// Store handles SQLite storage for compiled functions. It implements
// lower.Backend so a compilation run can write straight into it.
type Store struct {
	db     *sql.DB
	dbPath string
	mu     sync.Mutex
}

// Open creates or opens an artifact database at the given path.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Set busy timeout for concurrent access
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS functions (
		link_name   TEXT PRIMARY KEY,
		hash        TEXT NOT NULL,
		param_count INTEGER NOT NULL,
		code        BLOB NOT NULL
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating functions table: %w", err)
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS types (
		name TEXT PRIMARY KEY,
		id   INTEGER NOT NULL
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating types table: %w", err)
	}

	return &Store{db: db, dbPath: dbPath}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// DeclareType records a type declaration.
func (s *Store) DeclareType(name string, id ir.TypeID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(
		`INSERT INTO types (name, id) VALUES (?, ?)
		 ON CONFLICT(name) DO UPDATE SET id = excluded.id`,
		name, int(id))
	if err != nil {
		return fmt.Errorf("declaring type %s: %w", name, err)
	}
	return nil
}

// Emit stores one compiled function, replacing any previous version
// under the same link name.
func (s *Store) Emit(fn *ir.Function) error {
	data, err := ir.MarshalFunction(fn)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", fn.LinkName, err)
	}
	sum := sha256.Sum256(data)

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err = s.db.Exec(
		`INSERT INTO functions (link_name, hash, param_count, code) VALUES (?, ?, ?, ?)
		 ON CONFLICT(link_name) DO UPDATE SET
		   hash = excluded.hash,
		   param_count = excluded.param_count,
		   code = excluded.code`,
		fn.LinkName, hex.EncodeToString(sum[:]), fn.ParamCount, data)
	if err != nil {
		return fmt.Errorf("storing %s: %w", fn.LinkName, err)
	}
	return nil
}

// Get loads a stored function by link name.
func (s *Store) Get(linkName string) (*ir.Function, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var data []byte
	err := s.db.QueryRow(
		`SELECT code FROM functions WHERE link_name = ?`, linkName).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, linkName)
	}
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", linkName, err)
	}

	return ir.UnmarshalFunction(data)
}

// Hash returns the stored content hash for a link name.
func (s *Store) Hash(linkName string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var hash string
	err := s.db.QueryRow(
		`SELECT hash FROM functions WHERE link_name = ?`, linkName).Scan(&hash)
	if err == sql.ErrNoRows {
		return "", fmt.Errorf("%w: %s", ErrNotFound, linkName)
	}
	if err != nil {
		return "", fmt.Errorf("loading hash for %s: %w", linkName, err)
	}
	return hash, nil
}

// List returns the stored link names in sorted order.
func (s *Store) List() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`SELECT link_name FROM functions ORDER BY link_name`)
	if err != nil {
		return nil, fmt.Errorf("listing functions: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}
