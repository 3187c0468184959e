package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStore is the default on-disk backend. Writes are serialized with a
// mutex since the sqlite driver does not tolerate concurrent writers.
type SQLiteStore struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLite opens (or creates) the database file and prepares the schema
func NewSQLite(path string) (*SQLiteStore, error) {
	if path == "" {
		return nil, errors.New("sqlite path is empty")
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS analytics_records (
			key        TEXT PRIMARY KEY,
			kind       TEXT NOT NULL,
			value      BLOB NOT NULL,
			created_at INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_analytics_records_kind
			ON analytics_records(kind, created_at);
	`)
	return err
}

func (s *SQLiteStore) Append(ctx context.Context, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO analytics_records (key, kind, value, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			kind = excluded.kind,
			value = excluded.value,
			created_at = excluded.created_at
	`, rec.Key, string(rec.Kind), rec.Value, rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("sqlite append: %w", err)
	}

	return nil
}

func (s *SQLiteStore) Get(ctx context.Context, kind Kind, key string) (Record, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT key, kind, value, created_at
		FROM analytics_records
		WHERE key = ? AND kind = ?
	`, key, string(kind))

	var rec Record
	var k string
	if err := row.Scan(&rec.Key, &k, &rec.Value, &rec.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Record{}, ErrNotFound
		}
		return Record{}, fmt.Errorf("sqlite get: %w", err)
	}
	rec.Kind = Kind(k)

	return rec, nil
}

func (s *SQLiteStore) List(ctx context.Context, kind Kind) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT key, kind, value, created_at
		FROM analytics_records
		WHERE kind = ?
		ORDER BY created_at, key
	`, string(kind))
	if err != nil {
		return nil, fmt.Errorf("sqlite list: %w", err)
	}
	defer rows.Close()

	var recs []Record
	for rows.Next() {
		var rec Record
		var k string
		if err := rows.Scan(&rec.Key, &k, &rec.Value, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("sqlite scan: %w", err)
		}
		rec.Kind = Kind(k)
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite rows: %w", err)
	}

	return recs, nil
}

func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}
