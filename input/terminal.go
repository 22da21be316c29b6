package input

import (
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
)

// DefaultHold covers the gap before a terminal's key auto-repeat starts.
const DefaultHold = 350 * time.Millisecond

// Action is what a terminal key asks the front-end to do.
type Action int

const (
	ActionNone Action = iota
	ActionReset
	ActionQuit
)

var terminalKeys = map[tcell.Key]string{
	tcell.KeyLeft:  "ArrowLeft",
	tcell.KeyRight: "ArrowRight",
	tcell.KeyUp:    "ArrowUp",
	tcell.KeyDown:  "ArrowDown",
	tcell.KeyEnter: "Enter",
}

// Terminal feeds tcell key events into a Keyboard. Terminals report key
// presses and auto-repeats but never key releases, so every press holds the
// key for Hold and repeats extend it.
type Terminal struct {
	Keyboard *Keyboard
	Hold     time.Duration
	ResetKey string
}

// NewTerminal returns an adapter that presses keys on kb.
func NewTerminal(kb *Keyboard) *Terminal {
	return &Terminal{Keyboard: kb, Hold: DefaultHold, ResetKey: "r"}
}

// HandleEvent applies a tcell event. Non-key events are ignored.
func (t *Terminal) HandleEvent(ev tcell.Event, now time.Time) Action {
	key, ok := ev.(*tcell.EventKey)
	if !ok {
		return ActionNone
	}
	return t.HandleKey(key.Key(), key.Rune(), now)
}

// HandleKey applies one key press. Letters are matched case-insensitively
// and pressed under their lower case name, so caps lock or shift still move
// the player.
func (t *Terminal) HandleKey(key tcell.Key, r rune, now time.Time) Action {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return ActionQuit
	case tcell.KeyRune:
		name := strings.ToLower(string(r))
		if name == "q" {
			return ActionQuit
		}
		if strings.EqualFold(name, t.ResetKey) {
			return ActionReset
		}
		t.press(name, now)
		return ActionNone
	}

	if name, ok := terminalKeys[key]; ok {
		t.press(name, now)
	}
	return ActionNone
}

func (t *Terminal) press(name string, now time.Time) {
	// A press of the opposite arrow cancels the current one; terminals
	// cannot tell us it was released.
	if opposite, ok := oppositeKeys[name]; ok {
		t.Keyboard.Release(opposite)
	}
	t.Keyboard.Release(name)
	t.Keyboard.PressFor(name, now.Add(t.Hold))
}

var oppositeKeys = map[string]string{
	"ArrowLeft":  "ArrowRight",
	"ArrowRight": "ArrowLeft",
	"ArrowUp":    "ArrowDown",
	"ArrowDown":  "ArrowUp",
}
