package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

func keyMsg(s string) tea.KeyMsg {
	if len(s) == 1 {
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
	switch s {
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMapKeyQuit(t *testing.T) {
	km := NewKeyMapper()
	action, isQuit := km.MapKey(keyMsg("q"))
	if !isQuit || action != core.ActionQuit {
		t.Errorf("q mapped to (%v, %v), want (ActionQuit, true)", action, isQuit)
	}
}

func TestMovementHeldAcrossTicks(t *testing.T) {
	km := NewKeyMapper()
	km.Press(keyMsg("d"))

	for i := 0; i < holdFrames; i++ {
		frame := km.Frame()
		if !frame.Has(core.ActionRight) {
			t.Fatalf("tick %d: right not held", i)
		}
		km.Decay()
	}

	if km.Frame().Has(core.ActionRight) {
		t.Error("right still held after hold window expired")
	}
}

func TestOppositeDirectionReleases(t *testing.T) {
	km := NewKeyMapper()
	km.Press(keyMsg("d"))
	km.Press(keyMsg("a"))

	frame := km.Frame()
	if frame.Has(core.ActionRight) {
		t.Error("right still held after pressing left")
	}
	if !frame.Has(core.ActionLeft) {
		t.Error("left not held")
	}
}

func TestJumpFiresOnce(t *testing.T) {
	km := NewKeyMapper()
	km.Press(keyMsg("space"))

	if !km.Frame().Has(core.ActionJump) {
		t.Fatal("jump not in first frame")
	}
	if km.Frame().Has(core.ActionJump) {
		t.Error("jump repeated in second frame")
	}
}

func TestResetDropsInput(t *testing.T) {
	km := NewKeyMapper()
	km.Press(keyMsg("d"))
	km.Press(keyMsg("space"))
	km.Reset()

	frame := km.Frame()
	if frame.Has(core.ActionRight) || frame.Has(core.ActionJump) {
		t.Errorf("input survived reset: %v", frame.Actions)
	}
}
