package input_test

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/mirrorworld/input"
	"github.com/stretchr/testify/assert"
)

func TestTerminalKeys(t *testing.T) {
	now := time.Unix(1000, 0)

	tests := []struct {
		name    string
		key     tcell.Key
		r       rune
		action  input.Action
		pressed string
	}{
		{"left arrow", tcell.KeyLeft, 0, input.ActionNone, "ArrowLeft"},
		{"right arrow", tcell.KeyRight, 0, input.ActionNone, "ArrowRight"},
		{"up arrow", tcell.KeyUp, 0, input.ActionNone, "ArrowUp"},
		{"down arrow", tcell.KeyDown, 0, input.ActionNone, "ArrowDown"},
		{"letter", tcell.KeyRune, 'a', input.ActionNone, "a"},
		{"upper case letter", tcell.KeyRune, 'W', input.ActionNone, "w"},
		{"reset", tcell.KeyRune, 'r', input.ActionReset, ""},
		{"reset with caps lock", tcell.KeyRune, 'R', input.ActionReset, ""},
		{"quit with q", tcell.KeyRune, 'q', input.ActionQuit, ""},
		{"quit with Q", tcell.KeyRune, 'Q', input.ActionQuit, ""},
		{"quit with escape", tcell.KeyEscape, 0, input.ActionQuit, ""},
		{"quit with ctrl-c", tcell.KeyCtrlC, 0, input.ActionQuit, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kb := input.NewKeyboard()
			term := input.NewTerminal(kb)

			assert.Equal(t, tt.action, term.HandleKey(tt.key, tt.r, now))
			if tt.pressed == "" {
				assert.Empty(t, kb.Held())
			} else {
				assert.Equal(t, []string{tt.pressed}, kb.Held())
			}
		})
	}
}

func TestTerminalHoldExpires(t *testing.T) {
	now := time.Unix(1000, 0)
	kb := input.NewKeyboard()
	term := input.NewTerminal(kb)
	term.Hold = 200 * time.Millisecond

	term.HandleKey(tcell.KeyRight, 0, now)
	kb.Expire(now.Add(150 * time.Millisecond))
	assert.True(t, kb.IsKeyPressed("ArrowRight"))

	// Auto-repeat extends the hold.
	term.HandleKey(tcell.KeyRight, 0, now.Add(150*time.Millisecond))
	kb.Expire(now.Add(300 * time.Millisecond))
	assert.True(t, kb.IsKeyPressed("ArrowRight"))

	kb.Expire(now.Add(350 * time.Millisecond))
	assert.False(t, kb.IsKeyPressed("ArrowRight"))
}

func TestTerminalOppositeArrowCancels(t *testing.T) {
	now := time.Unix(1000, 0)
	kb := input.NewKeyboard()
	term := input.NewTerminal(kb)

	term.HandleKey(tcell.KeyLeft, 0, now)
	term.HandleKey(tcell.KeyUp, 0, now)
	term.HandleKey(tcell.KeyRight, 0, now)

	assert.Equal(t, []string{"ArrowRight", "ArrowUp"}, kb.Held())
}

func TestTerminalHandleEvent(t *testing.T) {
	now := time.Unix(1000, 0)
	kb := input.NewKeyboard()
	term := input.NewTerminal(kb)

	assert.Equal(t, input.ActionNone, term.HandleEvent(tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone), now))
	assert.True(t, kb.IsKeyPressed("ArrowDown"))

	assert.Equal(t, input.ActionNone, term.HandleEvent(tcell.NewEventResize(80, 24), now))
}

func TestTerminalResetKeyIgnoresCase(t *testing.T) {
	term := input.NewTerminal(input.NewKeyboard())
	term.ResetKey = "X"
	now := time.Unix(1000, 0)

	assert.Equal(t, input.ActionReset, term.HandleKey(tcell.KeyRune, 'x', now))
	assert.Equal(t, input.ActionReset, term.HandleKey(tcell.KeyRune, 'X', now))
	assert.Equal(t, input.ActionNone, term.HandleKey(tcell.KeyRune, 'r', now))
	assert.Equal(t, []string{"r"}, term.Keyboard.Held())
}
