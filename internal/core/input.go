package core

// Action represents a semantic game action, abstracted from physical key presses.
// Screens work with high-level intents rather than raw input.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // W, Up arrow
	ActionDown           // S, Down arrow
	ActionLeft           // A, Left arrow
	ActionRight          // D, Right arrow
	ActionConfirm        // Enter, Space
	ActionBack           // Escape, Backspace
	ActionPause          // P
	ActionRestart        // R
	ActionMenu           // M
	ActionUndo           // U, Z
	ActionQuit           // Q, Ctrl+C
)

var actionNames = [...]string{
	ActionNone:    "None",
	ActionUp:      "Up",
	ActionDown:    "Down",
	ActionLeft:    "Left",
	ActionRight:   "Right",
	ActionConfirm: "Confirm",
	ActionBack:    "Back",
	ActionPause:   "Pause",
	ActionRestart: "Restart",
	ActionMenu:    "Menu",
	ActionUndo:    "Undo",
	ActionQuit:    "Quit",
}

func (a Action) String() string {
	if a < 0 || int(a) >= len(actionNames) {
		return "Unknown"
	}
	return actionNames[a]
}

// InputFrame represents the input state during one simulation tick.
// Terminals report key presses and auto-repeat, not key releases, so a
// held key shows up as the same action arriving on consecutive frames.
type InputFrame struct {
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// FrameOf builds a frame with the given actions set.
func FrameOf(actions ...Action) InputFrame {
	f := NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has reports whether a was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	return f.Actions[a]
}

// Direction returns the grid direction requested this frame, if any.
// Vertical input wins over horizontal when both arrive in one frame.
func (f InputFrame) Direction() (Point, bool) {
	switch {
	case f.Has(ActionUp):
		return DirUp, true
	case f.Has(ActionDown):
		return DirDown, true
	case f.Has(ActionLeft):
		return DirLeft, true
	case f.Has(ActionRight):
		return DirRight, true
	}
	return Point{}, false
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	clear(f.Actions)
}
