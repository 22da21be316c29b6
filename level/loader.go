package level

import (
	"image/color"

	"github.com/plus3/mirrorworld/ecs"
)

// Options sizes and colours the entities a Loader builds.
type Options struct {
	WorldWidth  float64
	PlayerSize  float64
	ExitSize    float64
	PlayerSpeed float64

	WallColor         color.RGBA
	ExitColor         color.RGBA
	PlayerColor       color.RGBA
	MirrorPlayerColor color.RGBA
}

// DefaultOptions returns the options used by the default level pack.
func DefaultOptions() Options {
	return Options{
		WorldWidth:  800,
		PlayerSize:  32,
		ExitSize:    48,
		PlayerSpeed: ecs.DefaultPlayerSpeed,

		WallColor:         color.RGBA{0x66, 0x66, 0x66, 0xff},
		ExitColor:         color.RGBA{0x00, 0xff, 0x00, 0xff},
		PlayerColor:       color.RGBA{0xff, 0x00, 0x00, 0xff},
		MirrorPlayerColor: color.RGBA{0x00, 0x00, 0xff, 0xff},
	}
}

// Loader builds levels into a world. Every level is built twice: as
// authored on the left layer, and reflected around the vertical centre line
// on the right layer, where the player also has its X input inverted.
type Loader struct {
	World   *ecs.World
	Options Options
}

// NewLoader returns a loader that builds levels into world.
func NewLoader(world *ecs.World, opts Options) *Loader {
	if world == nil {
		panic("level: nil world")
	}
	return &Loader{World: world, Options: opts}
}

// MirrorX returns the right-layer X of a box of the given width.
func (ld *Loader) MirrorX(x, width float64) float64 {
	return ld.Options.WorldWidth - x - width
}

// Load adds the level's entities to the world. It does not clear the world.
func (ld *Loader) Load(l *Level) error {
	if err := l.Validate(); err != nil {
		return err
	}
	for _, layer := range ecs.Layers {
		ld.build(l, layer)
	}
	return nil
}

func (ld *Loader) build(l *Level, layer ecs.Layer) {
	mirrored := layer == ecs.LayerRight
	x := func(x, width float64) float64 {
		if mirrored {
			return ld.MirrorX(x, width)
		}
		return x
	}
	opts := ld.Options

	for _, wall := range l.Walls {
		ld.World.CreateEntity().
			AddComponent(ecs.NewTransform(x(wall.X, wall.W), wall.Y)).
			AddComponent(ecs.NewSprite(opts.WallColor, wall.W, wall.H)).
			AddComponent(ecs.NewCollider(wall.W, wall.H, false, ecs.TagWall)).
			AddComponent(&ecs.WorldLayer{Layer: layer})
	}

	ld.World.CreateEntity().
		AddComponent(ecs.NewTransform(x(l.Exit.X, opts.ExitSize), l.Exit.Y)).
		AddComponent(ecs.NewSprite(opts.ExitColor, opts.ExitSize, opts.ExitSize)).
		AddComponent(ecs.NewCollider(opts.ExitSize, opts.ExitSize, true, ecs.TagExit)).
		AddComponent(&ecs.WorldLayer{Layer: layer})

	playerColor := opts.PlayerColor
	if mirrored {
		playerColor = opts.MirrorPlayerColor
	}
	player := ld.World.CreateEntity().
		AddComponent(ecs.NewTransform(x(l.Start.X, opts.PlayerSize), l.Start.Y)).
		AddComponent(&ecs.Velocity{}).
		AddComponent(ecs.NewSprite(playerColor, opts.PlayerSize, opts.PlayerSize)).
		AddComponent(ecs.NewCollider(opts.PlayerSize, opts.PlayerSize, false, ecs.TagPlayer)).
		AddComponent(&ecs.PlayerControl{PlayerIndex: int(layer), Speed: opts.PlayerSpeed}).
		AddComponent(&ecs.WorldLayer{Layer: layer})

	if mirrored {
		player.AddComponent(&ecs.MirrorMovement{InvertX: true})
	}
}
