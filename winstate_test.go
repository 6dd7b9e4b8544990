package main

import (
	"context"
	"encoding/json"
	"testing"
)

func TestWindowStateCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	cache := NewWindowStateCache(newMemStore())

	tests := []struct {
		name string
		mode Mode
		geom WindowGeometry
	}{
		{"normal", ModeNormal, WindowGeometry{
			Size:     Size{Width: 1200, Height: 800},
			Position: Position{X: 100, Y: 50},
		}},
		{"compare", ModeCompare, WindowGeometry{
			Size:     Size{Width: 750, Height: 900},
			Position: Position{X: -10, Y: 0},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := cache.SaveState(ctx, tt.mode, tt.geom); err != nil {
				t.Fatalf("SaveState failed: %v", err)
			}
			got, ok, err := cache.LoadState(ctx, tt.mode)
			if err != nil {
				t.Fatalf("LoadState failed: %v", err)
			}
			if !ok {
				t.Fatal("expected saved geometry to be present")
			}
			if got != tt.geom {
				t.Errorf("got %+v, want %+v", got, tt.geom)
			}
		})
	}
}

func TestWindowStateCacheModesAreIndependent(t *testing.T) {
	ctx := context.Background()
	cache := NewWindowStateCache(newMemStore())

	normal := WindowGeometry{Size: Size{Width: 1200, Height: 800}, Position: Position{X: 1, Y: 2}}
	compare := WindowGeometry{Size: Size{Width: 750, Height: 600}, Position: Position{X: 3, Y: 4}}

	if err := cache.SaveState(ctx, ModeNormal, normal); err != nil {
		t.Fatalf("SaveState failed: %v", err)
	}
	if err := cache.SaveState(ctx, ModeCompare, compare); err != nil {
		t.Fatalf("SaveState failed: %v", err)
	}

	got, _, _ := cache.LoadState(ctx, ModeNormal)
	if got != normal {
		t.Errorf("normal geometry overwritten: got %+v", got)
	}
	got, _, _ = cache.LoadState(ctx, ModeCompare)
	if got != compare {
		t.Errorf("compare geometry overwritten: got %+v", got)
	}
}

func TestWindowStateCacheAbsentIsNotError(t *testing.T) {
	ctx := context.Background()
	cache := NewWindowStateCache(newMemStore())

	_, ok, err := cache.LoadState(ctx, ModeCompare)
	if err != nil {
		t.Fatalf("LoadState on empty store: %v", err)
	}
	if ok {
		t.Error("expected absence on empty store")
	}
}

func TestWindowStateCacheCorruptIsAbsent(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	if err := store.Set(ctx, keyMainWindowState, []byte(`"not a geometry"`)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	cache := NewWindowStateCache(store)
	_, ok, err := cache.LoadState(ctx, ModeNormal)
	if err != nil {
		t.Fatalf("corrupt state should not be an error, got %v", err)
	}
	if ok {
		t.Error("corrupt state should be reported as absent")
	}
}

func TestWindowGeometryPersistedShape(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	cache := NewWindowStateCache(store)

	geom := WindowGeometry{
		Size:     Size{Width: 640, Height: 480},
		Position: Position{X: 20, Y: 30},
	}
	if err := cache.SaveState(ctx, ModeNormal, geom); err != nil {
		t.Fatalf("SaveState failed: %v", err)
	}

	data, ok, _ := store.Get(ctx, keyMainWindowState)
	if !ok {
		t.Fatal("nothing persisted under main_window_state")
	}

	var raw map[string]map[string]int
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("persisted geometry is not the expected shape: %v", err)
	}
	if raw["size"]["width"] != 640 || raw["size"]["height"] != 480 {
		t.Errorf("unexpected size: %+v", raw["size"])
	}
	if raw["position"]["x"] != 20 || raw["position"]["y"] != 30 {
		t.Errorf("unexpected position: %+v", raw["position"])
	}
}
