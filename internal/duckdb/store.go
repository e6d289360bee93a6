// Package duckdb persists best-hit results across runs so they can be
// aggregated into cross-genome and cross-family summaries.
package duckdb

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/marcboeker/go-duckdb"
)

// Store manages a DuckDB connection for accumulated best-hit results.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens or creates a DuckDB database at the given path.
// Use an empty string for an in-memory database.
func Open(path string) (*Store, error) {
	if path != "" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create results directory: %w", err)
		}
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB for direct access.
func (s *Store) DB() *sql.DB {
	return s.db
}

// ensureSchema creates tables if they don't exist.
func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS best_hits (
		genome VARCHAR,
		protein_family VARCHAR,
		query_id VARCHAR,
		subject_id VARCHAR,
		pident DOUBLE,
		length BIGINT,
		mismatch BIGINT,
		gapopen BIGINT,
		qstart BIGINT,
		qend BIGINT,
		sstart BIGINT,
		send BIGINT,
		evalue DOUBLE,
		bitscore DOUBLE,
		qlen BIGINT,
		slen BIGINT,
		qcovs DOUBLE,
		significance VARCHAR,
		PRIMARY KEY (genome, protein_family, query_id)
	)`)
	return err
}
