package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
)

// Mode identifies which of the two window modes is active.
type Mode int

const (
	// ModeNormal is the standard opaque editor window.
	ModeNormal Mode = iota
	// ModeCompare is the borderless, always-on-top overlay window.
	ModeCompare
)

func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeCompare:
		return "compare"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// stateKey returns the store key holding the mode's last-known geometry.
func (m Mode) stateKey() string {
	if m == ModeCompare {
		return keyCompareWindowState
	}
	return keyMainWindowState
}

// Size is a window's width and height in screen units.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Position is a window's top-left corner in screen coordinates.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// WindowGeometry is a snapshot of a native window's placement. A snapshot is
// captured when a mode is exited and applied when that mode is entered again.
type WindowGeometry struct {
	Size     Size     `json:"size"`
	Position Position `json:"position"`
}

// WindowStateCache records and restores window geometry per mode, one store
// key per mode, last write wins. Geometry is persisted as-is; clamping
// off-screen placements is left to the window manager.
type WindowStateCache struct {
	store Store
}

// NewWindowStateCache creates a cache backed by store.
func NewWindowStateCache(store Store) *WindowStateCache {
	return &WindowStateCache{store: store}
}

// SaveState writes geom under the key for mode.
func (c *WindowStateCache) SaveState(ctx context.Context, mode Mode, geom WindowGeometry) error {
	data, err := json.Marshal(geom)
	if err != nil {
		return fmt.Errorf("encoding %s geometry: %w", mode, err)
	}
	if err := c.store.Set(ctx, mode.stateKey(), data); err != nil {
		return fmt.Errorf("saving %s geometry: %w", mode, err)
	}
	return nil
}

// LoadState returns the most recently saved geometry for mode. The second
// return is false when nothing has ever been saved; that is a normal first-run
// outcome, not an error. Corrupt persisted state is logged and reported as
// absent.
func (c *WindowStateCache) LoadState(ctx context.Context, mode Mode) (WindowGeometry, bool, error) {
	data, ok, err := c.store.Get(ctx, mode.stateKey())
	if err != nil {
		return WindowGeometry{}, false, fmt.Errorf("loading %s geometry: %w", mode, err)
	}
	if !ok {
		return WindowGeometry{}, false, nil
	}
	var geom WindowGeometry
	if err := json.Unmarshal(data, &geom); err != nil {
		log.Printf("Warning: corrupt %s geometry %q, ignoring: %v", mode, data, err)
		return WindowGeometry{}, false, nil
	}
	return geom, true, nil
}
