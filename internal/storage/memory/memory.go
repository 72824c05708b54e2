// Package memory provides an in-memory implementation of storage.Store,
// used by tests and as an ephemeral backend.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"divvy/internal/models"
	"divvy/internal/storage"
)

// Ensure Store implements storage.Store
var _ storage.Store = (*Store)(nil)

// Store keeps serialized ledger states in a map.
type Store struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{data: make(map[string][]byte)}
}

// Save serializes the state and stores it under key.
func (s *Store) Save(_ context.Context, key string, state *models.LedgerState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode ledger state: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = raw
	return nil
}

// Load returns the state stored under key, or (nil, nil) if absent.
func (s *Store) Load(_ context.Context, key string) (*models.LedgerState, error) {
	s.mu.RLock()
	raw, ok := s.data[key]
	s.mu.RUnlock()
	if !ok {
		return nil, nil
	}

	state := &models.LedgerState{}
	if err := json.Unmarshal(raw, state); err != nil {
		return nil, fmt.Errorf("failed to decode ledger state: %w", err)
	}
	return state, nil
}

// Clear removes the state stored under key.
func (s *Store) Clear(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

// Close is a no-op for the in-memory store.
func (s *Store) Close() error {
	return nil
}
