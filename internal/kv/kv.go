// Package kv provides the durable key-value store that backs every
// collection repository. Values are JSON-encoded strings, one key per
// collection, persisted in a single SQLite table.
package kv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned by Get when the key has never been written.
// It is distinct from a stored empty string.
var ErrNotFound = errors.New("kv: key not found")

// ErrQuotaExceeded is returned by Set and SetMulti when the write would push
// the total stored size past the store's quota. The write is not applied.
var ErrQuotaExceeded = errors.New("kv: storage quota exceeded")

// DefaultQuota is the total value-byte budget. Items carry inlined images,
// so collections are capped to keep the store from growing unbounded.
const DefaultQuota = 10 << 20

const schema = `
CREATE TABLE IF NOT EXISTS kv (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`

// Store is a durable string key-value store over SQLite.
type Store struct {
	db    *sql.DB
	quota int64
}

// Option configures a Store.
type Option func(*Store)

// WithQuota sets the total value-byte budget. Zero disables the quota.
func WithQuota(bytes int64) Option {
	return func(s *Store) { s.quota = bytes }
}

// Open opens (creating if needed) the store at path and configures pragmas.
func Open(path string, opts ...Option) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}

	// Each pooled connection to :memory: would get its own database.
	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	// Set pragmas for performance and correctness.
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("setting pragma %q: %w", p, err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	s := &Store{db: db, quota: DefaultQuota}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Get returns the value stored under key, or ErrNotFound.
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM kv WHERE key = ?`, key,
	).Scan(&value)
	if err == sql.ErrNoRows {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("getting %q: %w", key, err)
	}
	return value, nil
}

// Set stores value under key. The write is committed before Set returns; on
// ErrQuotaExceeded nothing is written.
func (s *Store) Set(ctx context.Context, key, value string) error {
	return s.SetMulti(ctx, map[string]string{key: value})
}

// SetMulti stores all entries in a single transaction. Either every key is
// written or none is, so composite operations never persist half-applied.
func (s *Store) SetMulti(ctx context.Context, entries map[string]string) error {
	if len(entries) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning write: %w", err)
	}
	defer tx.Rollback()

	for key, value := range entries {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO kv (key, value) VALUES (?, ?)
			 ON CONFLICT (key) DO UPDATE SET value = excluded.value`,
			key, value,
		); err != nil {
			return fmt.Errorf("setting %q: %w", key, err)
		}
	}

	if s.quota > 0 {
		// LENGTH on TEXT counts characters; the BLOB cast measures bytes.
		var total int64
		if err := tx.QueryRowContext(ctx,
			`SELECT COALESCE(SUM(LENGTH(CAST(value AS BLOB))), 0) FROM kv`,
		).Scan(&total); err != nil {
			return fmt.Errorf("checking quota: %w", err)
		}
		if total > s.quota {
			return ErrQuotaExceeded
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing write: %w", err)
	}
	return nil
}

// Delete removes key. Deleting an absent key is a no-op.
func (s *Store) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("deleting %q: %w", key, err)
	}
	return nil
}

// DataVersion returns SQLite's data_version counter, which changes whenever
// another connection commits to the same database file. It is the primitive
// behind cross-process change detection; same-connection writes do not bump it.
func (s *Store) DataVersion(ctx context.Context) (int64, error) {
	var version int64
	if err := s.db.QueryRowContext(ctx, `PRAGMA data_version`).Scan(&version); err != nil {
		return 0, fmt.Errorf("reading data version: %w", err)
	}
	return version, nil
}
