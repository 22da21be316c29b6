// Package game wires the world, systems, loop and level sequencing into one
// application object shared by the front-ends.
package game

import (
	"context"
	"errors"
	"fmt"
	"log"
	"runtime/debug"
	"time"

	"github.com/plus3/mirrorworld/config"
	"github.com/plus3/mirrorworld/ecs"
	"github.com/plus3/mirrorworld/input"
	"github.com/plus3/mirrorworld/level"
	"github.com/plus3/mirrorworld/systems"
)

// ErrTickPanic wraps a panic raised by a system during a tick. The loop is
// stopped when it is returned.
var ErrTickPanic = errors.New("game: panic during tick")

// Options supplies what differs between front-ends.
type Options struct {
	// Targets receive the drawing of each layer. Missing layers are not
	// drawn.
	Targets map[ecs.Layer]systems.RenderTarget
	// Pack overrides the configured level pack.
	Pack *level.Pack
	// Progress persists level progress. Nil disables it.
	Progress level.ProgressStore
}

// Game wires the world, systems, level manager and loop together for a
// front-end to drive.
type Game struct {
	Config config.Config

	World    *ecs.World
	Events   *ecs.EventBus
	Loop     *ecs.Loop
	Keyboard *input.Keyboard

	Input    *systems.InputSystem
	Movement *systems.MovementSystem
	Physics  *systems.PhysicsSystem
	Render   *systems.RenderSystem

	Pack   *level.Pack
	Loader *level.Loader
	Levels *level.Manager

	// AfterFrame runs after every successful frame driven by Run.
	AfterFrame func(now time.Time)

	err error
}

// New builds a game and loads its first level. The loop is left stopped.
func New(cfg config.Config, opts Options) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	pack := opts.Pack
	if pack == nil {
		var err error
		if pack, err = loadPack(cfg.Levels.Path); err != nil {
			return nil, err
		}
	} else if err := pack.Validate(); err != nil {
		return nil, fmt.Errorf("game: level pack: %w", err)
	}

	g := &Game{
		Config:   cfg,
		World:    ecs.NewWorld(),
		Events:   ecs.NewEventBus(),
		Keyboard: input.NewKeyboard(),
		Pack:     pack,
	}

	g.Input = systems.NewInputSystem(g.Keyboard, cfg.Keys.KeyBindings)
	g.Movement = systems.NewMovementSystem()
	g.Physics = systems.NewPhysicsSystem(g.Events)
	g.Render = systems.NewRenderSystem(opts.Targets, cfg.Backgrounds(), cfg.Render.Interpolate)

	g.World.AddSystem(g.Input)
	g.World.AddSystem(g.Movement)
	g.World.AddSystem(g.Physics)
	g.World.AddSystem(g.Render)

	g.Loader = level.NewLoader(g.World, cfg.LoaderOptions())
	g.Levels = level.NewManager(pack, g.Loader, g.Events)
	g.Levels.TransitionDelay = cfg.Levels.TransitionDelay
	g.Levels.Progress = opts.Progress

	g.Loop = ecs.NewLoop(g.World, cfg.Loop.Step, cfg.Loop.MaxFrame)
	g.Loop.OnStep(g.afterStep)

	if err := g.Levels.Start(cfg.Levels.Resume); err != nil {
		g.Levels.Close()
		return nil, fmt.Errorf("game: load first level: %w", err)
	}
	return g, nil
}

func loadPack(path string) (*level.Pack, error) {
	if path == "" {
		return level.DefaultPack(), nil
	}
	return level.LoadPackFile(path)
}

func (g *Game) afterStep(dt float64) {
	if err := g.Levels.Update(dt); err != nil && g.err == nil {
		g.err = err
	}
}

// Start starts the loop clock at now.
func (g *Game) Start(now time.Time) {
	g.Loop.Start(now)
	log.Printf("[Game] Started at %.0f steps/s", 1/g.Loop.Step())
}

// Stop halts the loop. Frames are ignored until Start is called again.
func (g *Game) Stop() {
	g.Loop.Stop()
}

// Frame advances the game by the wall-clock time since the last frame.
func (g *Game) Frame(now time.Time) error {
	return g.guard(func() { g.Loop.Frame(now) })
}

// Advance feeds delta seconds to the loop, for front-ends that keep their
// own clock.
func (g *Game) Advance(delta float64) error {
	return g.guard(func() { g.Loop.Advance(delta) })
}

// guard turns a panic in fn into ErrTickPanic and stops the loop. Errors
// recorded by step hooks are returned once.
func (g *Game) guard(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[Game] Panic during tick: %v\n%s", r, debug.Stack())
			g.Loop.Stop()
			err = fmt.Errorf("%w: %v", ErrTickPanic, r)
		}
	}()

	fn()

	err, g.err = g.err, nil
	return err
}

// Reset reloads the current level.
func (g *Game) Reset() error {
	return g.Levels.Reset()
}

// Run drives the game from a ticker until ctx is done, poll returns false
// or a frame fails. poll runs before every frame on the same goroutine and
// is where front-ends apply queued input.
func (g *Game) Run(ctx context.Context, interval time.Duration, poll func(now time.Time) bool) error {
	var err error
	g.Start(time.Now())
	defer g.Stop()

	g.Loop.Run(ctx, interval, func(now time.Time) bool {
		if poll != nil && !poll(now) {
			return false
		}
		if err = g.Frame(now); err != nil {
			return false
		}
		if g.AfterFrame != nil {
			g.AfterFrame(now)
		}
		return true
	})
	return err
}

// Status is a one-line summary for HUDs.
func (g *Game) Status() string {
	l := g.Levels.CurrentLevel()
	status := fmt.Sprintf("%s (%d/%d) | Entities: %d | Runs: %d",
		l.Title(), g.Levels.Current()+1, g.Pack.Len(), g.World.Len(), g.Levels.Runs())
	if g.Levels.State() != level.StateIdle {
		status += " | Level complete!"
	}
	return status
}

// Close releases the event subscriptions held by the game.
func (g *Game) Close() {
	g.Levels.Close()
}
