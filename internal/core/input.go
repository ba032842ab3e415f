package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone     Action = iota
	ActionLeft            // Left arrow, H - shift piece left
	ActionRight           // Right arrow, L - shift piece right
	ActionRotate          // Up arrow, K - rotate clockwise
	ActionSoftDrop        // Down arrow, J - drop one row
	ActionHardDrop        // Space - drop and lock
	ActionPause           // P, Escape - pause/unpause game
	ActionAutoPlay        // A - toggle the autoplayer
	ActionRestart         // R key - restart game
	ActionQuit            // Q, Ctrl+C - exit game
	ActionUp              // menu navigation
	ActionDown            // menu navigation
	ActionConfirm         // Enter - confirm selection in menu
)

var actionNames = map[Action]string{
	ActionNone:     "None",
	ActionLeft:     "Left",
	ActionRight:    "Right",
	ActionRotate:   "Rotate",
	ActionSoftDrop: "SoftDrop",
	ActionHardDrop: "HardDrop",
	ActionPause:    "Pause",
	ActionAutoPlay: "AutoPlay",
	ActionRestart:  "Restart",
	ActionQuit:     "Quit",
	ActionUp:       "Up",
	ActionDown:     "Down",
	ActionConfirm:  "Confirm",
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "Unknown"
}

// InputFrame collects the actions triggered since the previous simulation tick.
type InputFrame struct {
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	return f.Actions[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	clear(f.Actions)
}
