package main

import (
	"context"

	"github.com/hajimehoshi/ebiten/v2"
)

// NativeWindow is the capability the mode controller needs from the
// platform's window: placement queries, placement mutations and the
// compare-mode flags. Operations may fail on platforms that refuse them;
// the Ebitengine implementation never does, but the controller does not
// assume that.
type NativeWindow interface {
	Size(ctx context.Context) (width, height int, err error)
	Position(ctx context.Context) (x, y int, err error)
	SetSize(ctx context.Context, width, height int) error
	SetPosition(ctx context.Context, x, y int) error
	SetAlwaysOnTop(ctx context.Context, onTop bool) error
	SetDecorated(ctx context.Context, decorated bool) error
	SetMousePassthrough(ctx context.Context, passthrough bool) error
}

// captureGeometry reads the window's live placement as one snapshot.
func captureGeometry(ctx context.Context, w NativeWindow) (WindowGeometry, error) {
	width, height, err := w.Size(ctx)
	if err != nil {
		return WindowGeometry{}, err
	}
	x, y, err := w.Position(ctx)
	if err != nil {
		return WindowGeometry{}, err
	}
	return WindowGeometry{
		Size:     Size{Width: width, Height: height},
		Position: Position{X: x, Y: y},
	}, nil
}

// applyGeometry moves and resizes the window to geom.
func applyGeometry(ctx context.Context, w NativeWindow, geom WindowGeometry) error {
	if err := w.SetSize(ctx, geom.Size.Width, geom.Size.Height); err != nil {
		return err
	}
	return w.SetPosition(ctx, geom.Position.X, geom.Position.Y)
}

// ebitenWindow adapts the Ebitengine window functions to NativeWindow.
// The underlying calls cannot fail, so every error return is nil.
type ebitenWindow struct{}

func (ebitenWindow) Size(context.Context) (int, int, error) {
	w, h := ebiten.WindowSize()
	return w, h, nil
}

func (ebitenWindow) Position(context.Context) (int, int, error) {
	x, y := ebiten.WindowPosition()
	return x, y, nil
}

func (ebitenWindow) SetSize(_ context.Context, width, height int) error {
	ebiten.SetWindowSize(width, height)
	return nil
}

func (ebitenWindow) SetPosition(_ context.Context, x, y int) error {
	ebiten.SetWindowPosition(x, y)
	return nil
}

func (ebitenWindow) SetAlwaysOnTop(_ context.Context, onTop bool) error {
	ebiten.SetWindowFloating(onTop)
	return nil
}

func (ebitenWindow) SetDecorated(_ context.Context, decorated bool) error {
	ebiten.SetWindowDecorated(decorated)
	return nil
}

func (ebitenWindow) SetMousePassthrough(_ context.Context, passthrough bool) error {
	ebiten.SetWindowMousePassthrough(passthrough)
	return nil
}
