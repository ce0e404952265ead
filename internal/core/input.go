package core

import "maps"

// Action represents a semantic game action, abstracted from physical key presses.
// This allows the game to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone       Action = iota
	ActionUp                // W, Up arrow - move toward the top of the map
	ActionDown              // S, Down arrow - move toward the bottom of the map
	ActionLeft              // A, Left arrow
	ActionRight             // D, Right arrow
	ActionInteract          // E, Space - pick up a nearby item
	ActionExtinguish        // F - spray the nearest fire
	ActionConfirm           // Enter - continue after a level is cleared
	ActionDismiss           // X - close the tip popup
	ActionBack              // B - leave the level for the menu
	ActionRestart           // R - restart the level
	ActionQuit              // Q, Ctrl+C - exit
	ActionPause             // P, Escape - pause/unpause
)

var actionNames = [...]string{
	ActionNone:       "None",
	ActionUp:         "Up",
	ActionDown:       "Down",
	ActionLeft:       "Left",
	ActionRight:      "Right",
	ActionInteract:   "Interact",
	ActionExtinguish: "Extinguish",
	ActionConfirm:    "Confirm",
	ActionDismiss:    "Dismiss",
	ActionBack:       "Back",
	ActionRestart:    "Restart",
	ActionQuit:       "Quit",
	ActionPause:      "Pause",
}

func (a Action) String() string {
	if a < 0 || int(a) >= len(actionNames) {
		return "Unknown"
	}
	return actionNames[a]
}

// InputFrame represents the input state for a single simulation tick.
// Key presses arriving between two ticks accumulate in Count so that a
// fast typist does not lose movement steps.
type InputFrame struct {
	Actions map[Action]int
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]int),
	}
}

// Set records one press of an action for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]int)
	}
	f.Actions[a]++
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	return f.Count(a) > 0
}

// Count returns how many times the action was pressed this frame.
func (f InputFrame) Count(a Action) int {
	if f.Actions == nil {
		return 0
	}
	return f.Actions[a]
}

// Clear empties the frame for the next tick.
func (f *InputFrame) Clear() {
	clear(f.Actions)
}

// Clone copies the frame so the caller can keep it past Clear.
func (f InputFrame) Clone() InputFrame {
	if f.Actions == nil {
		return NewInputFrame()
	}
	return InputFrame{Actions: maps.Clone(f.Actions)}
}
