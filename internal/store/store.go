// Package store persists index records in a SQLite catalog so they can be
// listed and keyword-searched without reloading the index document.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

// Record is one catalog row. Position preserves source order within a
// category; Context holds the record's context subtree as JSON.
type Record struct {
	ID       string
	Category string
	Position int
	Text     string
	Keywords []string
	Context  string
}

// Store wraps the SQLite catalog.
type Store struct {
	db   *sql.DB
	path string
}

// Open creates or opens the catalog at the given path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating catalog directory: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening catalog: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging catalog: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

// OpenMemory creates an in-memory catalog (useful for testing).
func OpenMemory() (*Store, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("opening in-memory catalog: %w", err)
	}
	s := &Store{db: db, path: ":memory:"}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	_, err := s.db.Exec(schema)
	return err
}

const schema = `
CREATE TABLE IF NOT EXISTS records (
    id       TEXT PRIMARY KEY,
    category TEXT NOT NULL,
    position INTEGER NOT NULL,
    text     TEXT NOT NULL,
    keywords TEXT NOT NULL,
    context  TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_records_category ON records(category, position);
`

// ReplaceAll atomically replaces the catalog contents with the given
// records. Ingesting an index is a full refresh, never a merge.
func (s *Store) ReplaceAll(records []Record) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM records`); err != nil {
		return fmt.Errorf("clearing catalog: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO records (id, category, position, text, keywords, context) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		keywords, err := json.Marshal(r.Keywords)
		if err != nil {
			return fmt.Errorf("encoding keywords for %s: %w", r.ID, err)
		}
		if _, err := stmt.Exec(r.ID, r.Category, r.Position, r.Text, string(keywords), r.Context); err != nil {
			return fmt.Errorf("inserting record %s: %w", r.ID, err)
		}
	}

	return tx.Commit()
}

// ByCategory returns a category's records in source order.
func (s *Store) ByCategory(category string) ([]Record, error) {
	rows, err := s.db.Query(
		`SELECT id, category, position, text, keywords, context FROM records WHERE category = ? ORDER BY position`,
		category,
	)
	if err != nil {
		return nil, fmt.Errorf("querying category %s: %w", category, err)
	}
	defer rows.Close()
	return scanRecords(rows)
}

// SearchKeyword returns records whose text or keywords contain the query,
// case-insensitively, optionally restricted to one category.
func (s *Store) SearchKeyword(query, category string, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 10
	}
	pattern := "%" + escapeLike(strings.ToLower(query)) + "%"

	var (
		rows *sql.Rows
		err  error
	)
	base := `SELECT id, category, position, text, keywords, context FROM records
		WHERE (lower(text) LIKE ? ESCAPE '\' OR lower(keywords) LIKE ? ESCAPE '\')`
	if category != "" {
		rows, err = s.db.Query(base+` AND category = ? ORDER BY category, position LIMIT ?`,
			pattern, pattern, category, limit)
	} else {
		rows, err = s.db.Query(base+` ORDER BY category, position LIMIT ?`,
			pattern, pattern, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("keyword search: %w", err)
	}
	defer rows.Close()
	return scanRecords(rows)
}

// Categories returns the record count per category.
func (s *Store) Categories() (map[string]int, error) {
	rows, err := s.db.Query(`SELECT category, COUNT(*) FROM records GROUP BY category`)
	if err != nil {
		return nil, fmt.Errorf("counting categories: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var (
			category string
			n        int
		)
		if err := rows.Scan(&category, &n); err != nil {
			return nil, err
		}
		counts[category] = n
	}
	return counts, rows.Err()
}

// Count returns the total number of records.
func (s *Store) Count() (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM records`).Scan(&n)
	return n, err
}

func scanRecords(rows *sql.Rows) ([]Record, error) {
	var out []Record
	for rows.Next() {
		var (
			r        Record
			keywords string
		)
		if err := rows.Scan(&r.ID, &r.Category, &r.Position, &r.Text, &keywords, &r.Context); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(keywords), &r.Keywords); err != nil {
			return nil, fmt.Errorf("decoding keywords for %s: %w", r.ID, err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func escapeLike(s string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(s)
}
