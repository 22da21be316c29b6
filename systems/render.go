package systems

import (
	"image/color"

	"github.com/plus3/mirrorworld/ecs"
)

// RenderSystem draws sprites onto one target per world layer.
type RenderSystem struct {
	ecs.BaseSystem
	Targets     map[ecs.Layer]RenderTarget
	Backgrounds map[ecs.Layer]color.RGBA

	// Interpolate blends between the previous and current step positions
	// using the loop's alpha. When false the raw position is drawn.
	Interpolate bool
}

// NewRenderSystem draws each layer to its target in targets, cleared to the
// layer colour in backgrounds. interpolate blends the previous and current
// positions by the loop alpha.
func NewRenderSystem(targets map[ecs.Layer]RenderTarget, backgrounds map[ecs.Layer]color.RGBA, interpolate bool) *RenderSystem {
	return &RenderSystem{
		Targets:     targets,
		Backgrounds: backgrounds,
		Interpolate: interpolate,
	}
}

// Render draws every sprite to the target of its layer. Layers without a
// target are skipped.
func (s *RenderSystem) Render(alpha float64) {
	for _, layer := range ecs.Layers {
		if target := s.Targets[layer]; target != nil {
			target.Clear(s.Backgrounds[layer])
		}
	}

	for _, e := range s.World.EntitiesWith(ecs.KindTransform, ecs.KindSprite, ecs.KindWorldLayer) {
		sprite := ecs.Get[ecs.Sprite](e)
		if !sprite.Visible {
			continue
		}
		target := s.Targets[ecs.Get[ecs.WorldLayer](e).Layer]
		if target == nil {
			continue
		}

		transform := ecs.Get[ecs.Transform](e)
		pos := transform.Position
		if s.Interpolate {
			pos = transform.Previous.Lerp(transform.Position, alpha)
		}

		target.FillRect(pos.X, pos.Y,
			sprite.Width*transform.Scale.X,
			sprite.Height*transform.Scale.Y,
			sprite.Color)
	}
}
