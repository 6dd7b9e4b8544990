package main

import (
	"context"
	"path/filepath"
	"testing"
)

func newTestGame(t *testing.T, win *fakeWindow) *Game {
	t.Helper()
	g := &Game{
		ctx:     context.Background(),
		cfg:     loadConfigFromPath(filepath.Join(t.TempDir(), "none.json")).Config,
		window:  win,
		opacity: 0.4,
		invert:  true,
	}
	g.controller = NewModeController(win, NewWindowStateCache(newMemStore()), func() bool { return true })
	return g
}

func TestSessionConfigCapturesEditorWindowSize(t *testing.T) {
	win := newFakeWindow(1024, 700, 0, 0)
	g := newTestGame(t, win)

	cfg := g.sessionConfig()
	if cfg.WindowWidth != 1024 || cfg.WindowHeight != 700 {
		t.Errorf("window = %dx%d, want live 1024x700", cfg.WindowWidth, cfg.WindowHeight)
	}
	if cfg.Opacity != 0.4 || !cfg.InvertColors {
		t.Errorf("appearance settings not carried: opacity=%v invert=%v", cfg.Opacity, cfg.InvertColors)
	}
}

func TestSessionConfigSkipsOverlaySize(t *testing.T) {
	win := newFakeWindow(1024, 700, 0, 0)
	g := newTestGame(t, win)

	if err := g.controller.EnterCompare(g.ctx); err != nil {
		t.Fatalf("EnterCompare failed: %v", err)
	}
	// The window is now at the overlay width; a stuck compare mode must not
	// leak it into the editor size.
	cfg := g.sessionConfig()
	if cfg.WindowWidth != g.cfg.WindowWidth || cfg.WindowHeight != g.cfg.WindowHeight {
		t.Errorf("window = %dx%d, want configured %dx%d",
			cfg.WindowWidth, cfg.WindowHeight, g.cfg.WindowWidth, g.cfg.WindowHeight)
	}
}
