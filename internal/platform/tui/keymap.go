package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/puzzlebit/internal/core"
)

// gameBindings maps key names to game actions. Quit keys are handled
// separately so the platform can stop the program.
var gameBindings = map[string]core.Action{
	"w": core.ActionUp, "up": core.ActionUp, "k": core.ActionUp,
	"s": core.ActionDown, "down": core.ActionDown, "j": core.ActionDown,
	"a": core.ActionLeft, "left": core.ActionLeft,
	"d": core.ActionRight, "right": core.ActionRight, "l": core.ActionRight,
	" ": core.ActionSelect, "enter": core.ActionConfirm,
	"h": core.ActionHint, "?": core.ActionHint,
	"b": core.ActionBack, "esc": core.ActionBack,
	"n": core.ActionNext, "p": core.ActionPause, "r": core.ActionRestart,
}

// MenuAction is a menu command derived from a key.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionScoreboard
	MenuActionQuit
)

var menuBindings = map[string]MenuAction{
	"ctrl+c": MenuActionQuit, "q": MenuActionQuit,
	"w": MenuActionUp, "up": MenuActionUp, "k": MenuActionUp,
	"s": MenuActionDown, "down": MenuActionDown, "j": MenuActionDown,
	"enter": MenuActionSelect, " ": MenuActionSelect,
	"b": MenuActionBack, "esc": MenuActionBack,
	"tab": MenuActionScoreboard,
}

// KeyMapper translates Bubble Tea key and mouse messages to game actions.
type KeyMapper struct{}

// NewKeyMapper creates a key mapper with the default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to a game action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	k := msg.String()
	if k == "ctrl+c" || k == "q" {
		return core.ActionQuit, true
	}
	return gameBindings[k], false
}

// MapKeyToFrame updates an input frame based on a key message.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)
	if action != core.ActionNone {
		frame.Set(action)
	}
	return isQuit
}

// MapMouseToFrame records a left button press as a click.
// Returns true if the message was a click.
func (km *KeyMapper) MapMouseToFrame(msg tea.MouseMsg, frame *core.InputFrame) bool {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return false
	}
	frame.SetClick(msg.X, msg.Y)
	return true
}

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	return menuBindings[msg.String()]
}
