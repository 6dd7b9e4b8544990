//go:build !js

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
)

const storeFile = "store.json"

// fileStore persists values as a single JSON object under the user's config
// directory. Every Set and Remove writes through to disk.
type fileStore struct {
	mu     sync.Mutex
	path   string
	values map[string]json.RawMessage
}

// newDefaultStore selects the desktop backend. When no config directory is
// available the store degrades to memory-only; nothing persists, but the
// application keeps working.
func newDefaultStore() Store {
	configDir, err := os.UserConfigDir()
	if err != nil {
		log.Printf("Warning: no config directory, state will not persist: %v", err)
		return newMemStore()
	}
	return newFileStore(filepath.Join(configDir, "mockover", storeFile))
}

// newFileStore opens the store at path, loading any existing contents.
// A missing file is a first run; a corrupt file is logged and replaced on the
// next write.
func newFileStore(path string) *fileStore {
	s := &fileStore{
		path:   path,
		values: make(map[string]json.RawMessage),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return s
	}
	if err := json.Unmarshal(data, &s.values); err != nil {
		log.Printf("Warning: corrupt store file %s, starting fresh: %v", path, err)
		s.values = make(map[string]json.RawMessage)
	}
	return s
}

func (s *fileStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	if !ok {
		return nil, false, nil
	}
	return v, true, nil
}

func (s *fileStore) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !json.Valid(value) {
		return fmt.Errorf("store: value for %q is not valid JSON", key)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := make(json.RawMessage, len(value))
	copy(copied, value)
	s.values[key] = copied
	return s.flush()
}

func (s *fileStore) Remove(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.values[key]; !ok {
		return nil
	}
	delete(s.values, key)
	return s.flush()
}

// flush writes the whole store to disk. Caller holds the mutex.
func (s *fileStore) flush() error {
	data, err := json.MarshalIndent(s.values, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o644)
}
