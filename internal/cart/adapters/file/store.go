package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/dejobratic/tomoca/internal/cart/ports"
)

// Store keeps every key in one JSON object on disk, values held as strings the way a
// browser's local storage holds them. Writes replace the file atomically.
type Store struct {
	mu   sync.Mutex
	path string
}

// NewStore returns a store backed by the file at path. The file is created on first Put.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Get returns the value stored under key.
func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.read()
	if err != nil {
		return nil, err
	}
	value, ok := entries[key]
	if !ok {
		return nil, ports.ErrSnapshotNotFound
	}
	return []byte(value), nil
}

// Put stores data under key, keeping every other key in the file. An unreadable file is replaced.
func (s *Store) Put(_ context.Context, key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.read()
	if err != nil {
		if !errors.Is(err, ports.ErrSnapshotCorrupt) {
			return err
		}
		entries = map[string]string{}
	}
	entries[key] = string(data)

	return s.write(entries)
}

func (s *Store) read() (map[string]string, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}

	entries := map[string]string{}
	if len(raw) == 0 {
		return entries, nil
	}
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", ports.ErrSnapshotCorrupt, s.path, err)
	}
	return entries, nil
}

func (s *Store) write(entries map[string]string) error {
	raw, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode %s: %w", s.path, err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace %s: %w", s.path, err)
	}
	return nil
}
