package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// InputHandler processes all keyboard and mouse input for the current frame.
type InputHandler struct {
	inputActions InputActions
	inputState   InputState
	keys         *KeybindingManager
	mouse        *MousebindingManager

	// Drag-pan tracking
	dragging    bool
	dragEngaged bool
	dragStartX  int
	dragStartY  int
	dragLastX   int
	dragLastY   int
}

// NewInputHandler creates a new InputHandler
func NewInputHandler(inputActions InputActions, inputState InputState, keys *KeybindingManager, mouse *MousebindingManager) *InputHandler {
	return &InputHandler{
		inputActions: inputActions,
		inputState:   inputState,
		keys:         keys,
		mouse:        mouse,
	}
}

// HandleInput processes all input for the current frame.
// Returns true if any input was processed, false otherwise
func (h *InputHandler) HandleInput() bool {
	processed := false

	for _, action := range actionDefinitions {
		if h.keys.ExecuteAction(action.Name, h.inputActions, h.inputState) {
			processed = true
		}
		if h.mouse.ExecuteAction(action.Name, h.inputActions, h.inputState) {
			processed = true
		}
	}

	return h.handleDragPan() || processed
}

// handleDragPan lets the user align the overlay by dragging it with the left
// button. Only active in compare mode; a small threshold keeps clicks from
// nudging the mock.
func (h *InputHandler) handleDragPan() bool {
	settings := h.mouse.GetSettings()
	if !settings.EnableMouse || !settings.EnableDragPan || h.inputState.Mode() != ModeCompare {
		h.dragging = false
		h.dragEngaged = false
		return false
	}

	if !ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		h.dragging = false
		h.dragEngaged = false
		return false
	}

	x, y := ebiten.CursorPosition()

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		h.dragging = true
		h.dragEngaged = false
		h.dragStartX, h.dragStartY = x, y
		h.dragLastX, h.dragLastY = x, y
		return false
	}
	if !h.dragging {
		return false
	}

	if !h.dragEngaged {
		dx, dy := x-h.dragStartX, y-h.dragStartY
		if dx*dx+dy*dy < settings.DragThreshold*settings.DragThreshold {
			return false
		}
		h.dragEngaged = true
		h.dragLastX, h.dragLastY = x, y
		return false
	}

	dx, dy := x-h.dragLastX, y-h.dragLastY
	if dx == 0 && dy == 0 {
		return false
	}
	h.dragLastX, h.dragLastY = x, y
	h.inputActions.PanBy(float64(dx)*settings.DragSensitivity, float64(dy)*settings.DragSensitivity)
	return true
}
