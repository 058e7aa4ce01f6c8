package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// holdFrames is how many ticks a movement key stays active after its
// last press. Terminals report key repeats rather than key-up events,
// so held arrows arrive as a stream of presses with gaps between
// repeats; the hold window bridges those gaps.
const holdFrames = 8

// KeyMapper translates Bubble Tea key messages to game actions.
// Movement actions are latched for a few ticks, one-shot actions fire
// on the next tick only.
type KeyMapper struct {
	held    map[core.Action]int
	oneShot core.InputFrame
}

// NewKeyMapper creates a key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{
		held:    make(map[core.Action]int),
		oneShot: core.NewInputFrame(),
	}
}

// MapKey translates a key message to an action. Returns the action
// (may be ActionNone) and whether it is a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	switch msg.String() {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	case "a", "left":
		return core.ActionLeft, false
	case "d", "right":
		return core.ActionRight, false
	case " ", "w", "up":
		return core.ActionJump, false
	case "enter":
		return core.ActionConfirm, false
	case "p", "esc":
		return core.ActionPause, false
	case "r":
		return core.ActionRestart, false
	}
	return core.ActionNone, false
}

// Press records a key press. Returns true on a quit request.
func (km *KeyMapper) Press(msg tea.KeyMsg) bool {
	action, isQuit := km.MapKey(msg)
	if isQuit {
		return true
	}
	switch action {
	case core.ActionLeft, core.ActionRight:
		km.held[action] = holdFrames
		// opposite direction releases immediately
		if action == core.ActionLeft {
			delete(km.held, core.ActionRight)
		} else {
			delete(km.held, core.ActionLeft)
		}
	case core.ActionNone:
	default:
		km.oneShot.Set(action)
	}
	return false
}

// Frame builds the input frame for the next tick and consumes the
// pending one-shot actions.
func (km *KeyMapper) Frame() core.InputFrame {
	frame := km.oneShot.Clone()
	for action := range km.held {
		frame.Set(action)
	}
	km.oneShot.Clear()
	return frame
}

// Decay ages held movement actions by one tick.
func (km *KeyMapper) Decay() {
	for action, ttl := range km.held {
		if ttl <= 1 {
			delete(km.held, action)
		} else {
			km.held[action] = ttl - 1
		}
	}
}

// Reset drops all held and pending input.
func (km *KeyMapper) Reset() {
	km.held = make(map[core.Action]int)
	km.oneShot.Clear()
}
