package memory

import (
	"bytes"
	"context"
	"sync"

	"github.com/dejobratic/tomoca/internal/cart/ports"
)

// Store keeps snapshots in process memory. Useful for local development and tests.
type Store struct {
	mu    sync.RWMutex
	items map[string][]byte
}

// NewStore creates a new in-memory snapshot store.
func NewStore() *Store {
	return &Store{items: make(map[string][]byte)}
}

// Get returns a copy of the snapshot stored under key.
func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.items[key]
	if !ok {
		return nil, ports.ErrSnapshotNotFound
	}
	return bytes.Clone(value), nil
}

// Put stores or overwrites the snapshot for key.
func (s *Store) Put(_ context.Context, key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = bytes.Clone(data)
	return nil
}
