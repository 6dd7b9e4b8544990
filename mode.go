package main

import (
	"context"
	"errors"
	"fmt"
	"log"
)

var errTransitionPending = errors.New("mode transition already in flight")

// ModeController drives the Normal/Compare round trip. It is the single
// owner of the mode state and the only component that mutates the native
// window's geometry or its compare-only flags. Construct one at startup and
// pass it to whatever needs it.
//
// Transitions are not re-entrant: a call arriving while another transition
// is in flight is rejected with errTransitionPending rather than queued.
type ModeController struct {
	window   NativeWindow
	cache    *WindowStateCache
	hasImage func() bool

	mode          Mode
	transitioning bool

	compareWidth int
	clickThrough bool
}

// NewModeController creates a controller in Normal mode. hasImage reports
// whether a mock is currently selected; it gates EnterCompare and may be nil
// when no such precondition applies.
func NewModeController(window NativeWindow, cache *WindowStateCache, hasImage func() bool) *ModeController {
	return &ModeController{
		window:       window,
		cache:        cache,
		hasImage:     hasImage,
		mode:         ModeNormal,
		compareWidth: defaultCompareWidth,
	}
}

// SetCompareWidth overrides the overlay width used on the first-ever compare
// entry, before any compare geometry has been cached.
func (mc *ModeController) SetCompareWidth(width int) {
	if width > 0 {
		mc.compareWidth = width
	}
}

// SetClickThrough controls whether the overlay window ignores mouse input.
// Takes effect on the next transition.
func (mc *ModeController) SetClickThrough(enabled bool) {
	mc.clickThrough = enabled
}

// Mode reports the active mode.
func (mc *ModeController) Mode() Mode {
	return mc.mode
}

// EnterCompare switches the window into the compare overlay: the live Normal
// geometry is persisted, the cached Compare geometry (or the default overlay
// width with the live height and position) is applied, and the overlay flags
// are raised. With no mock selected, or outside Normal mode, the call is a
// logged no-op.
//
// On a native-window failure the transition aborts and the mode stays
// Normal. The Normal geometry may already have been persisted at that point;
// that write is deliberately not rolled back.
func (mc *ModeController) EnterCompare(ctx context.Context) error {
	if mc.transitioning {
		return errTransitionPending
	}
	if mc.mode != ModeNormal {
		log.Printf("EnterCompare ignored: already in %s mode", mc.mode)
		return nil
	}
	if mc.hasImage != nil && !mc.hasImage() {
		log.Printf("EnterCompare ignored: no mock selected")
		return nil
	}
	mc.transitioning = true
	defer func() { mc.transitioning = false }()

	live, err := captureGeometry(ctx, mc.window)
	if err != nil {
		return fmt.Errorf("querying window geometry: %w", err)
	}
	if err := mc.cache.SaveState(ctx, ModeNormal, live); err != nil {
		// Store failures degrade to session-only state; the transition goes on.
		log.Printf("Warning: %v", err)
	}

	target, ok, err := mc.cache.LoadState(ctx, ModeCompare)
	if err != nil {
		log.Printf("Warning: %v", err)
		ok = false
	}
	if !ok {
		// First entry: fixed overlay width, live height and position.
		target = live
		target.Size.Width = mc.compareWidth
	}

	if err := applyGeometry(ctx, mc.window, target); err != nil {
		mc.restoreGeometry(ctx, live)
		return fmt.Errorf("entering compare mode: %w", err)
	}
	if err := mc.setOverlayFlags(ctx, true); err != nil {
		mc.restoreGeometry(ctx, live)
		return fmt.Errorf("entering compare mode: %w", err)
	}
	mc.mode = ModeCompare
	return nil
}

// ExitCompare restores the Normal window: the live Compare geometry is
// persisted, the cached Normal geometry is applied and the overlay flags are
// reset to their defaults. Outside Compare mode the call is a logged no-op.
func (mc *ModeController) ExitCompare(ctx context.Context) error {
	if mc.transitioning {
		return errTransitionPending
	}
	if mc.mode != ModeCompare {
		log.Printf("ExitCompare ignored: not in compare mode")
		return nil
	}
	mc.transitioning = true
	defer func() { mc.transitioning = false }()

	live, err := captureGeometry(ctx, mc.window)
	if err != nil {
		return fmt.Errorf("querying window geometry: %w", err)
	}
	if err := mc.cache.SaveState(ctx, ModeCompare, live); err != nil {
		log.Printf("Warning: %v", err)
	}

	// Normal geometry is always saved before Compare is first entered, so
	// absence only happens when the store was wiped mid-session; the window
	// keeps its current placement then.
	target, ok, err := mc.cache.LoadState(ctx, ModeNormal)
	if err != nil {
		log.Printf("Warning: %v", err)
		ok = false
	}
	if ok {
		if err := applyGeometry(ctx, mc.window, target); err != nil {
			mc.restoreGeometry(ctx, live)
			return fmt.Errorf("exiting compare mode: %w", err)
		}
	}

	if err := mc.setOverlayFlags(ctx, false); err != nil {
		mc.restoreGeometry(ctx, live)
		return fmt.Errorf("exiting compare mode: %w", err)
	}
	mc.mode = ModeNormal
	return nil
}

// setOverlayFlags raises or resets the compare-only window flags.
func (mc *ModeController) setOverlayFlags(ctx context.Context, overlay bool) error {
	if err := mc.window.SetAlwaysOnTop(ctx, overlay); err != nil {
		return err
	}
	if err := mc.window.SetDecorated(ctx, !overlay); err != nil {
		return err
	}
	return mc.window.SetMousePassthrough(ctx, overlay && mc.clickThrough)
}

// restoreGeometry is the best-effort rollback after a partial transition
// failure, keeping the live window consistent with the reported mode.
func (mc *ModeController) restoreGeometry(ctx context.Context, geom WindowGeometry) {
	if err := applyGeometry(ctx, mc.window, geom); err != nil {
		log.Printf("Warning: could not restore window geometry: %v", err)
	}
}
