package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"runtime"
	"time"

	"github.com/pkg/profile"

	"github.com/plus3/mirrorworld/config"
	"github.com/plus3/mirrorworld/ecs"
	"github.com/plus3/mirrorworld/input"
	"github.com/plus3/mirrorworld/level"
	"github.com/plus3/mirrorworld/render"
	"github.com/plus3/mirrorworld/systems"
)

type options struct {
	duration       time.Duration
	rooms          int
	walls          int
	seed           int64
	gcPauseMetrics bool
	profile        string
}

func main() {
	var opts options
	flag.DurationVar(&opts.duration, "duration", 10*time.Second, "The total duration the test should run for.")
	flag.IntVar(&opts.rooms, "rooms", 100, "The number of mirrored rooms to load. Each room adds two players.")
	flag.IntVar(&opts.walls, "walls", 20, "Walls per room.")
	flag.Int64Var(&opts.seed, "seed", 1, "Random seed for room layout and input.")
	flag.BoolVar(&opts.gcPauseMetrics, "gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.StringVar(&opts.profile, "profile", "", "Write a profile to the working directory: cpu or mem.")
	flag.Parse()

	if err := run(opts, os.Stdout); err != nil {
		log.Printf("Stress test failed: %v", err)
		os.Exit(1)
	}
	log.Println("Stress test complete.")
}

// run returns instead of exiting so the profile is always flushed.
func run(opts options, out io.Writer) error {
	switch opts.profile {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	default:
		return fmt.Errorf("unknown profile mode %q", opts.profile)
	}

	log.Println("Starting ECS stress test...")

	rng := rand.New(rand.NewSource(opts.seed))
	cfg := config.Default()

	// 1. World, systems and a headless render target per layer
	world := ecs.NewWorld()
	bus := ecs.NewEventBus()
	keyboard := input.NewKeyboard()
	targets := map[ecs.Layer]systems.RenderTarget{
		ecs.LayerLeft:  &render.Null{},
		ecs.LayerRight: &render.Null{},
	}

	world.AddSystem(systems.NewInputSystem(keyboard, cfg.Keys.KeyBindings))
	world.AddSystem(systems.NewMovementSystem())
	world.AddSystem(systems.NewPhysicsSystem(bus))
	world.AddSystem(systems.NewRenderSystem(targets, cfg.Backgrounds(), cfg.Render.Interpolate))

	var collisions, completions int
	bus.Subscribe(ecs.EventCollision, func(ecs.Event) { collisions++ })
	bus.Subscribe(ecs.EventLevelCompleted, func(ecs.Event) { completions++ })

	// 2. Populate the world with random rooms
	log.Printf("Populating world with %d rooms...\n", opts.rooms)
	loader := level.NewLoader(world, cfg.LoaderOptions())
	for i := range opts.rooms {
		if err := loader.Load(RandomLevel(rng, i+1, opts.walls, cfg)); err != nil {
			return fmt.Errorf("load room %d: %w", i+1, err)
		}
	}
	log.Printf("Population complete: %d entities.\n", world.Len())

	// 3. Run the simulation loop
	report := &Report{
		Duration:       opts.duration,
		Rooms:          opts.rooms,
		WallsPerRoom:   opts.walls,
		Entities:       world.Len(),
		GCPauseMetrics: opts.gcPauseMetrics,
		UpdateTime: Stats{
			Samples: make([]time.Duration, 0),
		},
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	log.Printf("Running simulation for %s...\n", opts.duration)
	ctx, cancel := context.WithTimeout(context.Background(), opts.duration)
	defer cancel()

	loop := ecs.NewLoop(world, cfg.Loop.Step, cfg.Loop.MaxFrame)
	keys := []string{cfg.Keys.Left, cfg.Keys.Right, cfg.Keys.Up, cfg.Keys.Down}

	startTime := time.Now()
	var totalFrames int64

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			if totalFrames%30 == 0 {
				keyboard.ReleaseAll()
				keyboard.Press(keys[rng.Intn(len(keys))])
			}

			frameStart := time.Now()
			loop.Advance(cfg.Loop.Step)
			report.UpdateTime.Samples = append(report.UpdateTime.Samples, time.Since(frameStart))
			totalFrames++
		}
	}

	report.TotalTime = time.Since(startTime)
	report.TotalFrames = totalFrames
	report.TotalSteps = loop.Steps()
	report.Collisions = collisions
	report.Completions = completions
	report.World = world.Stats()
	report.UpdateTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	log.Println("Simulation finished.")

	// 4. Generate Report
	fmt.Fprintln(out, "\n\n--- Stress Test Report ---")
	if err := report.Generate(out); err != nil {
		return fmt.Errorf("generate report: %w", err)
	}
	fmt.Fprintln(out, "--- End of Report ---")
	return nil
}

// RandomLevel builds a room with walls scattered over the left half of the
// world. The exit and start sit in opposite corners.
func RandomLevel(rng *rand.Rand, id, walls int, cfg config.Config) *level.Level {
	width, height := cfg.World.Width/2, cfg.World.Height
	l := &level.Level{
		ID:    id,
		Name:  fmt.Sprintf("stress-%d", id),
		Start: level.Point{X: 10, Y: 10},
		Exit:  level.Point{X: width - cfg.Player.ExitSize - 10, Y: height - cfg.Player.ExitSize - 10},
	}
	for range walls {
		w := 10 + rng.Float64()*100
		h := 10 + rng.Float64()*100
		l.Walls = append(l.Walls, level.Rect{
			X: rng.Float64() * (width - w),
			Y: rng.Float64() * (height - h),
			W: w,
			H: h,
		})
	}
	return l
}
