// Package storage provides abstractions for persistent ledger storage.
package storage

import (
	"context"

	"divvy/internal/models"
)

// Store defines the key-value contract for ledger state persistence.
// This abstraction allows swapping storage backends (SQLite, in-memory)
// without changing the engine or service layers.
//
// Store failures are treated as non-fatal by callers: the in-memory
// ledger remains authoritative for the lifetime of the process.
type Store interface {
	// Save persists the serialized ledger state under the given key,
	// replacing any previous state.
	Save(ctx context.Context, key string, state *models.LedgerState) error

	// Load retrieves the ledger state for the given key.
	// Returns (nil, nil) if no state has been saved under the key.
	Load(ctx context.Context, key string) (*models.LedgerState, error)

	// Clear removes the state stored under the given key, if any.
	Clear(ctx context.Context, key string) error

	// Close releases any resources held by the store.
	Close() error
}
