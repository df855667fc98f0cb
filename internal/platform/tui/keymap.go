package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-sokoban/internal/core"
)

// hardQuitKey exits the program from any state.
const hardQuitKey = "ctrl+c"

var bindingTable = []struct {
	action core.Action
	keys   []string
}{
	{core.ActionUp, []string{"w", "up", "k"}},
	{core.ActionDown, []string{"s", "down", "j"}},
	{core.ActionLeft, []string{"a", "left", "h"}},
	{core.ActionRight, []string{"d", "right", "l"}},
	{core.ActionConfirm, []string{"enter", " "}},
	{core.ActionBack, []string{"esc", "backspace"}},
	{core.ActionPause, []string{"p"}},
	{core.ActionRestart, []string{"r"}},
	{core.ActionMenu, []string{"m"}},
	{core.ActionUndo, []string{"u", "z", "ctrl+z"}},
	{core.ActionQuit, []string{"q", hardQuitKey}},
}

// KeyMapper translates Bubble Tea key messages to game actions.
type KeyMapper struct {
	bindings map[string]core.Action
}

func NewKeyMapper() *KeyMapper {
	km := &KeyMapper{bindings: make(map[string]core.Action)}
	for _, b := range bindingTable {
		for _, k := range b.keys {
			km.bindings[k] = b.action
		}
	}
	return km
}

// MapKey returns the action bound to msg, or ActionNone. isQuit is set only
// for Ctrl+C; Q is an ordinary action left to the current state.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	k := msg.String()
	action, ok := km.bindings[k]
	if !ok {
		return core.ActionNone, false
	}
	return action, k == hardQuitKey
}

// MapKeyToFrame records the bound action in frame and reports a hard quit.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)
	if action != core.ActionNone {
		frame.Set(action)
	}
	return isQuit
}
