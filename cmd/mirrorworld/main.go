// Command mirrorworld runs the mirror puzzle in a desktop window.
//
// Arrow keys move both players; the right one mirrors horizontally. R
// restarts the level, F1 toggles the debug overlay when -debug is set and
// Escape quits.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/plus3/mirrorworld/audio"
	"github.com/plus3/mirrorworld/ecs/debugui"
	debugui_ebiten "github.com/plus3/mirrorworld/ecs/debugui/ebiten"
	"github.com/plus3/mirrorworld/game"
	"github.com/plus3/mirrorworld/input"
	"github.com/plus3/mirrorworld/render/ebitenrender"
)

const windowTitle = "Mirror World"

// App adapts game.Game to ebiten.Game.
type App struct {
	game       *game.Game
	compositor *ebitenrender.Compositor
	poller     *input.EbitenPoller
	imgui      *debugui_ebiten.ImguiBackend
	started    bool
}

func (a *App) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	if a.imgui != nil {
		if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
			a.imgui.Overlay.Toggle()
		}
		a.imgui.Update()
	}

	if a.imgui == nil || !a.imgui.WantsKeyboard() {
		a.poller.Poll()
		if a.poller.JustPressed(a.game.Config.Keys.Reset) {
			if err := a.game.Reset(); err != nil {
				return err
			}
		}
	} else {
		a.game.Keyboard.ReleaseAll()
	}

	now := time.Now()
	if !a.started {
		a.game.Start(now)
		a.started = true
	}
	return a.game.Frame(now)
}

func (a *App) Draw(screen *ebiten.Image) {
	a.compositor.Draw(screen)
	ebitenutil.DebugPrint(screen, fmt.Sprintf("%s | FPS: %.0f", a.game.Status(), ebiten.ActualFPS()))

	if a.imgui != nil {
		a.imgui.Draw(screen)
	}
}

func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	if a.imgui != nil {
		a.imgui.Layout(outsideWidth, outsideHeight)
	}
	return a.compositor.Layout.ScreenSize()
}

func main() {
	var flags game.Flags
	flags.Register(flag.CommandLine)
	debug := flag.Bool("debug", false, "Enable the ImGui debug overlay (toggle with F1).")
	flag.Parse()

	if err := run(&flags, *debug); err != nil {
		log.Printf("[Main] %v", err)
		os.Exit(1)
	}
}

func run(flags *game.Flags, debug bool) error {
	logs, err := flags.SetupLog(os.Stderr)
	if err != nil {
		return err
	}
	defer logs.Close()

	cfg, err := flags.Config()
	if err != nil {
		return err
	}

	compositor := ebitenrender.NewCompositor(ebitenrender.Layout{
		WorldWidth:  int(cfg.World.Width),
		WorldHeight: int(cfg.World.Height),
		Gap:         4,
	})

	g, err := game.New(cfg, game.Options{
		Targets:  compositor.RenderTargets(),
		Progress: game.OpenProgress(cfg),
	})
	if err != nil {
		return err
	}
	defer g.Close()

	poller, unknown := input.NewEbitenPoller(g.Keyboard, cfg.WatchedKeys()...)
	for _, name := range unknown {
		log.Printf("[Input] Unknown key %q in config, ignored", name)
	}

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

	app := &App{game: g, compositor: compositor, poller: poller}
	width, height := compositor.Layout.ScreenSize()

	if debug {
		overlay := debugui.NewOverlay(g.World)
		overlay.Visible = true
		app.imgui = debugui_ebiten.NewImguiBackend(windowTitle, width, height, overlay)
	} else {
		ebiten.SetWindowSize(width, height)
		ebiten.SetWindowTitle(windowTitle)
	}
	ebiten.SetTPS(int(math.Round(1 / cfg.Loop.Step)))

	log.Printf("[Main] Starting %s", g.Status())
	err = ebiten.RunGame(app)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}
