package main

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/mirrorworld/config"
	"github.com/plus3/mirrorworld/game"
	"github.com/plus3/mirrorworld/render/termrender"
)

func newSession(t *testing.T) (*Session, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("")
	require.NoError(t, screen.Init())
	screen.SetSize(81, 25)
	t.Cleanup(screen.Fini)

	cfg := config.Default()
	display := termrender.NewDisplay(screen, cfg.World.Width, cfg.World.Height)
	g, err := game.New(cfg, game.Options{Targets: display.RenderTargets()})
	require.NoError(t, err)
	t.Cleanup(g.Close)

	return NewSession(g, display), screen
}

func statusLine(screen tcell.SimulationScreen) string {
	w, h := screen.Size()
	line := make([]rune, w)
	for x := range w {
		line[x], _, _, _ = screen.GetContent(x, h-1)
	}
	return string(line)
}

func TestSessionAppliesKeys(t *testing.T) {
	s, screen := newSession(t)
	now := time.Unix(10, 0)

	s.Events <- tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone)
	require.True(t, s.Poll(now))
	assert.True(t, s.Game.Keyboard.IsKeyPressed("ArrowLeft"))
	assert.Contains(t, statusLine(screen), "Level 1")

	require.True(t, s.Poll(now.Add(time.Second)))
	assert.False(t, s.Game.Keyboard.IsKeyPressed("ArrowLeft"), "held keys expire")
}

func TestSessionQuit(t *testing.T) {
	s, _ := newSession(t)

	s.Events <- tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)
	assert.False(t, s.Poll(time.Now()))
}

func TestSessionReset(t *testing.T) {
	s, _ := newSession(t)
	before := s.Game.World.Generation()

	s.Events <- tcell.NewEventKey(tcell.KeyRune, 'r', tcell.ModNone)
	require.True(t, s.Poll(time.Now()))
	assert.Greater(t, s.Game.World.Generation(), before, "reset reloads the level")
}

func TestSessionResize(t *testing.T) {
	s, screen := newSession(t)
	assert.Equal(t, 40, s.Display.Left.Cols)

	screen.SetSize(121, 31)
	s.Events <- tcell.NewEventResize(121, 31)
	require.True(t, s.Poll(time.Now()))

	assert.Equal(t, 60, s.Display.Left.Cols)
	assert.Equal(t, 30, s.Display.Right.Rows)
}
