// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history records build runs in a local SQLite database so past
// builds can be listed and compared.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const dbFile = "history.db"

// Record is one build run.
type Record struct {
	ID        int64
	StartedAt time.Time
	Output    string
	Sources   []string
	Language  string
	TexOnly   bool
	Succeeded bool
}

// Store manages the build history database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the history database under dir, bootstrapping
// the schema when needed.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	dbPath := filepath.Join(dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	const stmt = `CREATE TABLE IF NOT EXISTS builds (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		started_at TEXT NOT NULL,
		output TEXT NOT NULL,
		sources TEXT NOT NULL,
		language TEXT,
		tex_only INTEGER NOT NULL,
		succeeded INTEGER NOT NULL
	)`
	if _, err := s.db.Exec(stmt); err != nil {
		return fmt.Errorf("executing schema statement: %w", err)
	}
	return nil
}

// Add inserts one build record.
func (s *Store) Add(r Record) error {
	_, err := s.db.Exec(
		`INSERT INTO builds (started_at, output, sources, language, tex_only, succeeded)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		r.StartedAt.UTC().Format(time.RFC3339),
		r.Output,
		strings.Join(r.Sources, "\n"),
		r.Language,
		boolInt(r.TexOnly),
		boolInt(r.Succeeded),
	)
	if err != nil {
		return fmt.Errorf("recording build: %w", err)
	}
	return nil
}

// Recent returns up to limit build records, newest first.
func (s *Store) Recent(limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(
		`SELECT id, started_at, output, sources, language, tex_only, succeeded
		 FROM builds ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying builds: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		var started, sources string
		var texOnly, succeeded int
		if err := rows.Scan(&r.ID, &started, &r.Output, &sources, &r.Language, &texOnly, &succeeded); err != nil {
			return nil, fmt.Errorf("scanning build row: %w", err)
		}
		r.StartedAt, err = time.Parse(time.RFC3339, started)
		if err != nil {
			return nil, fmt.Errorf("parsing timestamp of build %d: %w", r.ID, err)
		}
		if sources != "" {
			r.Sources = strings.Split(sources, "\n")
		}
		r.TexOnly = texOnly != 0
		r.Succeeded = succeeded != 0
		records = append(records, r)
	}
	return records, rows.Err()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
