package backend

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// ErrBackendClosed is returned when delivering to a closed SQLite backend.
var ErrBackendClosed = errors.New("backend: closed")

// SQLite is a Backend that appends records to a local SQLite database.
//
// It is meant for development and offline capture: same delivery contract as
// the network backend, records land in a `records` table instead of a stream.
type SQLite struct {
	db     *sql.DB
	mu     sync.Mutex
	closed bool
}

// NewSQLite opens (or creates) the database at path.
// The path should be a file path (e.g., "./events.db").
func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Enable WAL mode for better concurrent read performance
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS records (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			stream TEXT NOT NULL,
			partition_key TEXT NOT NULL,
			data BLOB NOT NULL,
			created_at TEXT NOT NULL
		)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create table: %w", err)
	}

	if _, err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_records_stream
		ON records(stream)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create index: %w", err)
	}

	return &SQLite{db: db}, nil
}

// Deliver implements Backend.
func (s *SQLite) Deliver(ctx context.Context, stream string, data []byte, partitionKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrBackendClosed
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO records (stream, partition_key, data, created_at)
		VALUES (?, ?, ?, ?)
	`, stream, partitionKey, data, time.Now().UTC().Format(time.RFC3339Nano))

	if err != nil {
		return fmt.Errorf("insert record: %w", err)
	}
	return nil
}

// Records returns all records delivered to the given stream, oldest first.
func (s *SQLite) Records(ctx context.Context, stream string) ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrBackendClosed
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT stream, partition_key, data FROM records
		WHERE stream = ?
		ORDER BY id
	`, stream)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.Stream, &r.PartitionKey, &r.Data); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Close closes the underlying database. Subsequent deliveries fail with
// ErrBackendClosed.
func (s *SQLite) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}
