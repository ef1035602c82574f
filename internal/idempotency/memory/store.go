package memory

import (
	"bytes"
	"context"
	"sync"
	"time"

	"github.com/dejobratic/tomoca/internal/checkout/ports"
)

type entry struct {
	response ports.StoredResponse
	savedAt  time.Time
}

// Store retains checkout submission responses for replaying duplicate requests.
type Store struct {
	mu    sync.RWMutex
	items map[string]entry
	ttl   time.Duration
	now   func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// NewStore creates an in-memory idempotency store. A ttl of zero or less uses ports.DefaultIdempotencyTTL.
func NewStore(ttl time.Duration, opts ...Option) *Store {
	if ttl <= 0 {
		ttl = ports.DefaultIdempotencyTTL
	}
	s := &Store{items: make(map[string]entry), ttl: ttl, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns the stored response for key, or nil when the key is unused or expired.
func (s *Store) Get(_ context.Context, key string) (*ports.StoredResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.items[key]
	if !ok || s.expired(e) {
		return nil, nil
	}
	response := e.response
	response.Body = bytes.Clone(response.Body)
	return &response, nil
}

// Save keeps the first response stored for a live key, matching the postgres store.
func (s *Store) Save(_ context.Context, key string, response ports.StoredResponse) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, exists := s.items[key]; exists && !s.expired(e) {
		return nil
	}
	response.Body = bytes.Clone(response.Body)
	s.items[key] = entry{response: response, savedAt: s.now()}
	s.prune()
	return nil
}

func (s *Store) expired(e entry) bool {
	return s.now().Sub(e.savedAt) >= s.ttl
}

// prune drops expired keys. Callers hold the write lock.
func (s *Store) prune() {
	for key, e := range s.items {
		if s.expired(e) {
			delete(s.items, key)
		}
	}
}
