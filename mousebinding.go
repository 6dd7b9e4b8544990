package main

import (
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// MouseSettings contains mouse-specific configuration
type MouseSettings struct {
	WheelSensitivity float64 `json:"wheel_sensitivity"`
	DoubleClickTime  int     `json:"double_click_time"` // milliseconds
	DragThreshold    int     `json:"drag_threshold"`    // pixels
	EnableMouse      bool    `json:"enable_mouse"`
	WheelInverted    bool    `json:"wheel_inverted"`
	EnableDragPan    bool    `json:"enable_drag_pan"`  // drag to align the mock
	DragSensitivity  float64 `json:"drag_sensitivity"` // drag movement sensitivity
}

// GetDefaultMouseSettings returns the default mouse settings
func GetDefaultMouseSettings() MouseSettings {
	return MouseSettings{
		WheelSensitivity: 1.0,
		DoubleClickTime:  300,
		DragThreshold:    5,
		EnableMouse:      true,
		WheelInverted:    false,
		EnableDragPan:    true,
		DragSensitivity:  1.0,
	}
}

// MouseCombination represents a mouse action with optional modifiers
type MouseCombination struct {
	Button        ebiten.MouseButton
	IsWheel       bool
	WheelDeltaY   float64
	IsDoubleClick bool
	Mod           modifiers
}

// doubleClickTracker tracks click timing for double-click detection
type doubleClickTracker struct {
	lastClickTime   time.Time
	lastClickButton ebiten.MouseButton
	clickCount      int
}

// MousebindingManager resolves configured mouse action strings against the
// current frame's mouse state.
type MousebindingManager struct {
	mousebindings map[string][]string
	mouseMapping  map[string]ebiten.MouseButton
	settings      MouseSettings
	doubleClick   doubleClickTracker
}

// NewMousebindingManager creates a new MousebindingManager
func NewMousebindingManager(mousebindings map[string][]string, settings MouseSettings) *MousebindingManager {
	return &MousebindingManager{
		mousebindings: mousebindings,
		mouseMapping: map[string]ebiten.MouseButton{
			"LeftClick":   ebiten.MouseButtonLeft,
			"RightClick":  ebiten.MouseButtonRight,
			"MiddleClick": ebiten.MouseButtonMiddle,
		},
		settings:    settings,
		doubleClick: doubleClickTracker{lastClickTime: time.Now()},
	}
}

// parseMouseString parses a mouse string like "Shift+WheelUp" or
// "DoubleLeftClick" into a MouseCombination
func (mm *MousebindingManager) parseMouseString(mouseStr string) (MouseCombination, bool) {
	parts := strings.Split(mouseStr, "+")
	if len(parts) == 0 {
		return MouseCombination{}, false
	}

	combination := MouseCombination{Mod: parseModifiers(parts)}
	actionName := parts[len(parts)-1]

	switch {
	case strings.HasPrefix(actionName, "Wheel"):
		combination.IsWheel = true
		switch actionName {
		case "WheelUp":
			combination.WheelDeltaY = 1.0
		case "WheelDown":
			combination.WheelDeltaY = -1.0
		default:
			return MouseCombination{}, false
		}
	case strings.HasPrefix(actionName, "Double"):
		combination.IsDoubleClick = true
		button, exists := mm.mouseMapping[strings.TrimPrefix(actionName, "Double")]
		if !exists {
			return MouseCombination{}, false
		}
		combination.Button = button
	default:
		button, exists := mm.mouseMapping[actionName]
		if !exists {
			return MouseCombination{}, false
		}
		combination.Button = button
	}

	return combination, true
}

// isMouseActionTriggered checks if a mouse combination fired this frame
func (mm *MousebindingManager) isMouseActionTriggered(combination MouseCombination) bool {
	if !mm.settings.EnableMouse {
		return false
	}
	if !combination.Mod.pressed() {
		return false
	}

	if combination.IsWheel {
		_, wheelY := ebiten.Wheel()
		if mm.settings.WheelInverted {
			wheelY = -wheelY
		}
		wheelY *= mm.settings.WheelSensitivity
		return (combination.WheelDeltaY > 0 && wheelY > 0) ||
			(combination.WheelDeltaY < 0 && wheelY < 0)
	}

	if combination.IsDoubleClick {
		return mm.checkDoubleClick(combination.Button)
	}

	return inpututil.IsMouseButtonJustPressed(combination.Button)
}

// checkDoubleClick checks if a double-click occurred for the given button
func (mm *MousebindingManager) checkDoubleClick(button ebiten.MouseButton) bool {
	if !inpututil.IsMouseButtonJustPressed(button) {
		return false
	}

	now := time.Now()
	sinceLast := now.Sub(mm.doubleClick.lastClickTime)

	if mm.doubleClick.lastClickButton == button &&
		sinceLast <= time.Duration(mm.settings.DoubleClickTime)*time.Millisecond {
		mm.doubleClick.clickCount++
		if mm.doubleClick.clickCount == 2 {
			mm.doubleClick.clickCount = 0
			mm.doubleClick.lastClickTime = now
			return true
		}
	} else {
		mm.doubleClick.clickCount = 1
		mm.doubleClick.lastClickButton = button
	}

	mm.doubleClick.lastClickTime = now
	return false
}

// CheckAction checks if any mouse binding for the given action is triggered
func (mm *MousebindingManager) CheckAction(action string) bool {
	for _, mouseStr := range mm.mousebindings[action] {
		combination, valid := mm.parseMouseString(mouseStr)
		if valid && mm.isMouseActionTriggered(combination) {
			return true
		}
	}
	return false
}

// ExecuteAction executes the given action if one of its mouse bindings fired
func (mm *MousebindingManager) ExecuteAction(action string, inputActions InputActions, inputState InputState) bool {
	if !mm.CheckAction(action) {
		return false
	}
	return globalActionExecutor.ExecuteAction(action, inputActions, inputState)
}

// GetMousebindings returns the current mouse bindings map (for display
// purposes)
func (mm *MousebindingManager) GetMousebindings() map[string][]string {
	return mm.mousebindings
}

// GetSettings returns the current mouse settings
func (mm *MousebindingManager) GetSettings() MouseSettings {
	return mm.settings
}
