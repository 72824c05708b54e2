// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"divvy/internal/models"
	"divvy/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite. Each ledger key maps
// to one row holding the JSON-serialized state.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Save upserts the serialized ledger state under the given key.
func (s *SQLiteStore) Save(ctx context.Context, key string, state *models.LedgerState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode ledger state: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO ledgers (key, state, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET state = excluded.state, updated_at = excluded.updated_at`,
		key, string(raw), time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to save ledger state: %w", err)
	}

	return nil
}

// Load retrieves the ledger state for the given key.
// Returns (nil, nil) if no state has been saved under the key.
func (s *SQLiteStore) Load(ctx context.Context, key string) (*models.LedgerState, error) {
	var raw string
	err := s.db.QueryRowContext(ctx,
		"SELECT state FROM ledgers WHERE key = ?",
		key,
	).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger state: %w", err)
	}

	state := &models.LedgerState{}
	if err := json.Unmarshal([]byte(raw), state); err != nil {
		return nil, fmt.Errorf("failed to decode ledger state: %w", err)
	}

	return state, nil
}

// Clear removes the state stored under the given key.
func (s *SQLiteStore) Clear(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM ledgers WHERE key = ?", key)
	if err != nil {
		return fmt.Errorf("failed to clear ledger state: %w", err)
	}
	return nil
}
