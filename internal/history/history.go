// Package history records completed captures in a local SQLite database.
// Recording is best-effort: a broken or absent database never fails a scan.
package history

import (
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schema string

// Entry represents one recorded capture.
type Entry struct {
	ID        int64
	Path      string
	Format    string
	SizeBytes int64
	Pages     int
	Simulated bool
	Renamed   bool
	Duration  time.Duration
	CreatedAt time.Time
}

// Store persists capture records.
type Store struct {
	db *sql.DB
}

// NewStore wraps an existing database handle. The schema must already be
// applied.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Open opens the history database at path, creating the file, its parent
// directories and the schema as needed.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create history dir: %w", err)
	}
	db, err := sql.Open("sqlite", path+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

// DefaultPath returns the XDG-compliant default database location.
func DefaultPath() string {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "./scango-history.db"
		}
		stateHome = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(stateHome, "scango", "history.db")
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Add inserts a new capture record and fills in its ID and timestamp.
func (s *Store) Add(e *Entry) error {
	now := time.Now()
	result, err := s.db.Exec(`
		INSERT INTO scans (path, format, size_bytes, pages, simulated, renamed, duration_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.Path, e.Format, e.SizeBytes, e.Pages, e.Simulated, e.Renamed, e.Duration.Milliseconds(), now,
	)
	if err != nil {
		return fmt.Errorf("insert scan: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}

	e.ID = id
	e.CreatedAt = now
	return nil
}

// Recent returns the most recent entries, newest first. A limit of zero or
// less returns everything.
func (s *Store) Recent(limit int) ([]*Entry, error) {
	query := `SELECT id, path, format, size_bytes, pages, simulated, renamed, duration_ms, created_at
		FROM scans ORDER BY id DESC`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("list scans: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []*Entry
	for rows.Next() {
		e := &Entry{}
		var durationMS int64
		if err := rows.Scan(&e.ID, &e.Path, &e.Format, &e.SizeBytes, &e.Pages, &e.Simulated, &e.Renamed, &durationMS, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		e.Duration = time.Duration(durationMS) * time.Millisecond
		results = append(results, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate scans: %w", err)
	}

	return results, nil
}
