// Command mirrorworld-tui runs the mirror puzzle in a terminal.
//
// Arrow keys move both players, r restarts the level and q or Escape quits.
// Logs go to the -log file, or nowhere, so they never draw over the game.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/plus3/mirrorworld/audio"
	"github.com/plus3/mirrorworld/game"
	"github.com/plus3/mirrorworld/input"
	"github.com/plus3/mirrorworld/render/termrender"
)

// Session owns the terminal side of a running game. Events arrive from the
// tcell polling goroutine and are applied on the loop goroutine in Poll.
type Session struct {
	Game     *game.Game
	Display  *termrender.Display
	Terminal *input.Terminal
	Events   chan tcell.Event
}

func NewSession(g *game.Game, display *termrender.Display) *Session {
	terminal := input.NewTerminal(g.Keyboard)
	terminal.ResetKey = g.Config.Keys.Reset
	return &Session{
		Game:     g,
		Display:  display,
		Terminal: terminal,
		Events:   make(chan tcell.Event, 64),
	}
}

// Listen forwards screen events to Events until the screen is finalised.
func (s *Session) Listen(screen tcell.Screen) {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		s.Events <- ev
	}
}

// Poll applies queued events, expires held keys and refreshes the status
// line. It returns false when the user asked to quit.
func (s *Session) Poll(now time.Time) bool {
	for {
		select {
		case ev := <-s.Events:
			if _, ok := ev.(*tcell.EventResize); ok {
				s.Display.Resize()
				s.Display.Screen.Sync()
				continue
			}

			switch s.Terminal.HandleEvent(ev, now) {
			case input.ActionQuit:
				return false
			case input.ActionReset:
				if err := s.Game.Reset(); err != nil {
					log.Printf("[Main] Reset failed: %v", err)
				}
			}
		default:
			s.Game.Keyboard.Expire(now)
			s.Display.Status(s.Game.Status())
			return true
		}
	}
}

func main() {
	var flags game.Flags
	flags.Register(flag.CommandLine)
	fps := flag.Int("fps", 30, "Frames drawn per second.")
	hold := flag.Duration("hold", input.DefaultHold, "How long a key press counts as held.")
	flag.Parse()

	if err := run(&flags, *fps, *hold); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(flags *game.Flags, fps int, hold time.Duration) error {
	logs, err := flags.SetupLog(io.Discard)
	if err != nil {
		return err
	}
	defer logs.Close()

	cfg, err := flags.Config()
	if err != nil {
		return err
	}
	if fps <= 0 {
		return fmt.Errorf("fps must be positive, got %d", fps)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	defer screen.Fini()
	screen.HideCursor()

	display := termrender.NewDisplay(screen, cfg.World.Width, cfg.World.Height)

	g, err := game.New(cfg, game.Options{
		Targets:  display.RenderTargets(),
		Progress: game.OpenProgress(cfg),
	})
	if err != nil {
		return err
	}
	defer g.Close()

	if cfg.Audio.Enabled {
		speaker := audio.NewSpeaker()
		if err := speaker.Open(); err != nil {
			log.Printf("[Audio] Sound disabled: %v", err)
		} else {
			defer speaker.Close()
			chimes := audio.NewChimes(speaker, cfg.Audio.Volume)
			chimes.Attach(g.Events)
			defer chimes.Detach()
		}
	}

	session := NewSession(g, display)
	session.Terminal.Hold = hold
	go session.Listen(screen)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log.Printf("[Main] Starting %s", g.Status())
	g.AfterFrame = func(time.Time) { display.Show() }
	return g.Run(ctx, time.Second/time.Duration(fps), session.Poll)
}
