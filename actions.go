package main

// ActionDefinition defines an action with its default keybindings, mouse
// bindings, and description
type ActionDefinition struct {
	Name         string
	Keys         []string
	MouseActions []string
	Description  string
}

// actionDefinitions contains all action definitions with default bindings
// and descriptions
var actionDefinitions = []ActionDefinition{
	{"exit", []string{"KeyQ"}, []string{}, "Quit application"},
	{"escape", []string{"Escape"}, []string{}, "Leave compare mode, or quit"},
	{"help", []string{"Shift+Slash"}, []string{"Alt+RightClick"}, "Show/hide help"},
	{"toggle_compare", []string{"KeyC", "Enter"}, []string{"DoubleLeftClick"}, "Toggle compare overlay"},

	{"opacity_up", []string{"Equal", "Shift+Equal"}, []string{"WheelUp"}, "Increase mock opacity"},
	{"opacity_down", []string{"Minus"}, []string{"WheelDown"}, "Decrease mock opacity"},
	{"opacity_reset", []string{"Key0"}, []string{"MiddleClick"}, "Reset mock opacity"},
	{"invert", []string{"KeyI"}, []string{}, "Invert mock colors"},
	{"click_through", []string{"KeyT"}, []string{}, "Toggle overlay click-through"},

	{"next_page", []string{"Space", "KeyN"}, []string{"Shift+WheelDown"}, "Next bundle page"},
	{"previous_page", []string{"Backspace", "KeyP"}, []string{"Shift+WheelUp"}, "Previous bundle page"},

	{"recent_panel", []string{"KeyR"}, []string{}, "Show/hide recent images"},
	{"recent_next", []string{"KeyJ"}, []string{}, "Select next recent image"},
	{"recent_previous", []string{"KeyK"}, []string{}, "Select previous recent image"},
	{"recent_open", []string{"KeyO"}, []string{}, "Open selected recent image"},
	{"recent_remove", []string{"KeyX"}, []string{}, "Remove selected recent image"},

	{"clear_image", []string{"Shift+KeyX"}, []string{}, "Clear current mock"},
	{"reset_window", []string{"Shift+KeyW"}, []string{}, "Reset window size"},

	// Pan actions for aligning the overlay with the content underneath
	{"pan_up", []string{"ArrowUp"}, []string{}, "Pan mock up"},
	{"pan_down", []string{"ArrowDown"}, []string{}, "Pan mock down"},
	{"pan_left", []string{"ArrowLeft"}, []string{}, "Pan mock left"},
	{"pan_right", []string{"ArrowRight"}, []string{}, "Pan mock right"},
	{"pan_reset", []string{"Shift+Key0"}, []string{}, "Reset pan offset"},
}

// panStep is how far a single pan key press moves the mock, in pixels.
const panStep = 1.0

// ActionExecutor maps action names onto InputActions calls. Both the
// keybinding and the mousebinding manager route through the same instance so
// the dispatch logic exists once.
type ActionExecutor struct{}

// ExecuteAction executes the given action using the InputActions interface
func (ae *ActionExecutor) ExecuteAction(action string, inputActions InputActions, inputState InputState) bool {
	switch action {
	case "exit":
		inputActions.Exit()
	case "escape":
		// Escape backs out of the overlay first and only quits from the
		// editor window.
		if inputState.Mode() == ModeCompare {
			inputActions.ToggleCompare()
		} else {
			inputActions.Exit()
		}
	case "help":
		inputActions.ToggleHelp()
	case "toggle_compare":
		inputActions.ToggleCompare()
	case "opacity_up":
		inputActions.OpacityUp()
	case "opacity_down":
		inputActions.OpacityDown()
	case "opacity_reset":
		inputActions.OpacityReset()
	case "invert":
		inputActions.ToggleInvert()
	case "click_through":
		inputActions.ToggleClickThrough()
	case "next_page":
		inputActions.NextPage()
	case "previous_page":
		inputActions.PreviousPage()
	case "recent_panel":
		inputActions.ToggleRecentPanel()
	case "recent_next":
		inputActions.RecentNext()
	case "recent_previous":
		inputActions.RecentPrevious()
	case "recent_open":
		inputActions.RecentOpen()
	case "recent_remove":
		inputActions.RecentRemove()
	case "clear_image":
		inputActions.ClearImage()
	case "reset_window":
		inputActions.ResetWindowSize()
	case "pan_up":
		inputActions.PanBy(0, -panStep)
	case "pan_down":
		inputActions.PanBy(0, panStep)
	case "pan_left":
		inputActions.PanBy(-panStep, 0)
	case "pan_right":
		inputActions.PanBy(panStep, 0)
	case "pan_reset":
		inputActions.PanReset()
	default:
		return false
	}

	return true
}

// globalActionExecutor is shared by the keybinding and mousebinding managers.
var globalActionExecutor = &ActionExecutor{}

// GetActionDescriptions returns a map of action names to their descriptions
func GetActionDescriptions() map[string]string {
	descriptions := make(map[string]string)
	for _, action := range actionDefinitions {
		descriptions[action.Name] = action.Description
	}
	return descriptions
}

// GetDefaultKeybindings returns a map of action names to their default
// keybindings
func GetDefaultKeybindings() map[string][]string {
	keybindings := make(map[string][]string)
	for _, action := range actionDefinitions {
		keybindings[action.Name] = action.Keys
	}
	return keybindings
}

// GetDefaultMousebindings returns a map of action names to their default
// mouse bindings
func GetDefaultMousebindings() map[string][]string {
	mousebindings := make(map[string][]string)
	for _, action := range actionDefinitions {
		mousebindings[action.Name] = action.MouseActions
	}
	return mousebindings
}
