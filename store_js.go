//go:build js

package main

import (
	"context"
	"fmt"
	"log"
	"syscall/js"
)

// localStorePrefix namespaces our keys within the page origin's storage.
const localStorePrefix = "mockover."

// localStore persists values in the browser's localStorage for the wasm
// build. The same key layout as the desktop backend applies.
type localStore struct {
	storage js.Value
}

// newDefaultStore selects the browser backend. Pages loaded in contexts
// without localStorage (some sandboxed iframes) degrade to memory-only.
func newDefaultStore() Store {
	storage := js.Global().Get("localStorage")
	if storage.IsUndefined() || storage.IsNull() {
		log.Printf("Warning: localStorage unavailable, state will not persist")
		return newMemStore()
	}
	return &localStore{storage: storage}
}

func (s *localStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	v := s.storage.Call("getItem", localStorePrefix+key)
	if v.IsNull() {
		return nil, false, nil
	}
	return []byte(v.String()), true, nil
}

func (s *localStore) Set(ctx context.Context, key string, value []byte) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	// setItem throws when the quota is exceeded; surface that as an error
	// instead of a panic.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("localStorage setItem %s: %v", key, r)
		}
	}()
	s.storage.Call("setItem", localStorePrefix+key, string(value))
	return nil
}

func (s *localStore) Remove(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.storage.Call("removeItem", localStorePrefix+key)
	return nil
}
