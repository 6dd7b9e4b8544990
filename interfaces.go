package main

import "time"

// RenderState provides read-only access to application state for the
// renderer.
type RenderState interface {
	// Mode and selection
	Mode() Mode
	Selected() *SelectedImage
	PageIndex() int
	PageCount() int

	// Overlay appearance
	Opacity() float64
	InvertColors() bool
	ClickThrough() bool
	PanOffset() (x, y float64)

	// UI state
	ShowingHelp() bool
	ShowingRecent() bool
	RecentEntries() []RecentImage
	RecentSelection() int
	OverlayMessage() (string, time.Time)

	// Display data
	ConfigStatus() ConfigLoadResult
	Keybindings() map[string][]string
}

// InputActions provides action methods for the input handler
type InputActions interface {
	// Application control
	Exit()
	ToggleHelp()

	// Mode
	ToggleCompare()

	// Overlay appearance
	OpacityUp()
	OpacityDown()
	OpacityReset()
	ToggleInvert()
	ToggleClickThrough()
	PanBy(dx, dy float64)
	PanReset()

	// Bundle pages
	NextPage()
	PreviousPage()

	// Recent images
	ToggleRecentPanel()
	RecentNext()
	RecentPrevious()
	RecentOpen()
	RecentRemove()

	// Selection
	ClearImage()

	// Window
	ResetWindowSize()

	// Messages
	ShowOverlayMessage(message string)
}

// InputState provides read-only access to input-related state, used to gate
// context-dependent bindings.
type InputState interface {
	Mode() Mode
	RecentPanelOpen() bool
}
