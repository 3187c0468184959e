package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/lib/pq"
)

// PostgresStore backs the record store with a shared postgres instance
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres connects, verifies the connection and prepares the schema
func NewPostgres(connectionString string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS analytics_records (
			key        TEXT PRIMARY KEY,
			kind       TEXT NOT NULL,
			value      BYTEA NOT NULL,
			created_at BIGINT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_analytics_records_kind
			ON analytics_records(kind, created_at);
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) Append(ctx context.Context, rec Record) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO analytics_records (key, kind, value, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (key) DO UPDATE SET
			kind = EXCLUDED.kind,
			value = EXCLUDED.value,
			created_at = EXCLUDED.created_at
	`, rec.Key, string(rec.Kind), rec.Value, rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("postgres append: %w", err)
	}

	return nil
}

func (s *PostgresStore) Get(ctx context.Context, kind Kind, key string) (Record, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT key, kind, value, created_at
		FROM analytics_records
		WHERE key = $1 AND kind = $2
	`, key, string(kind))

	var rec Record
	var k string
	if err := row.Scan(&rec.Key, &k, &rec.Value, &rec.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Record{}, ErrNotFound
		}
		return Record{}, fmt.Errorf("postgres get: %w", err)
	}
	rec.Kind = Kind(k)

	return rec, nil
}

func (s *PostgresStore) List(ctx context.Context, kind Kind) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT key, kind, value, created_at
		FROM analytics_records
		WHERE kind = $1
		ORDER BY created_at, key
	`, string(kind))
	if err != nil {
		return nil, fmt.Errorf("postgres list: %w", err)
	}
	defer rows.Close()

	var recs []Record
	for rows.Next() {
		var rec Record
		var k string
		if err := rows.Scan(&rec.Key, &k, &rec.Value, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("postgres scan: %w", err)
		}
		rec.Kind = Kind(k)
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres rows: %w", err)
	}

	return recs, nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}
