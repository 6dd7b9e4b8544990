package main

import (
	"context"
	"sync"
)

// Store is the narrow persistence contract shared by the window state cache,
// the recent image list and startup restore. Values are JSON documents.
// Absence is reported through the middle return value, never as an error.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
}

// Persisted store keys. The JSON shapes stored under these keys must
// round-trip exactly for state restored across restarts to be usable.
const (
	keyMainWindowState    = "main_window_state"
	keyCompareWindowState = "compare_window_state"
	keyLastImage          = "last_image"
	keyLastImagePath      = "last_image_path"
	keyRecentImages       = "recent_images"
)

// memStore keeps values in memory only. It backs tests and serves as the
// fallback backend when no durable location is available.
type memStore struct {
	mu     sync.RWMutex
	values map[string][]byte
}

func newMemStore() *memStore {
	return &memStore{values: make(map[string][]byte)}
}

func (s *memStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	if !ok {
		return nil, false, nil
	}
	return v, true, nil
}

func (s *memStore) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := make([]byte, len(value))
	copy(copied, value)
	s.values[key] = copied
	return nil
}

func (s *memStore) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}
