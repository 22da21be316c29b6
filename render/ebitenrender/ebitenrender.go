// Package ebitenrender draws the two mirror worlds onto ebiten images and
// composes them side by side on the screen.
package ebitenrender

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/mirrorworld/ecs"
	"github.com/plus3/mirrorworld/systems"
)

// Target is an offscreen image for one world layer.
type Target struct {
	Image *ebiten.Image
}

func NewTarget(width, height int) *Target {
	return &Target{Image: ebiten.NewImage(width, height)}
}

func (t *Target) Clear(c color.RGBA) {
	t.Image.Fill(c)
}

func (t *Target) FillRect(x, y, w, h float64, c color.RGBA) {
	vector.DrawFilledRect(t.Image, float32(x), float32(y), float32(w), float32(h), c, false)
}

// Layout places the two world images next to each other with a gap.
type Layout struct {
	WorldWidth  int
	WorldHeight int
	Gap         int
}

// ScreenSize is the logical screen size holding both worlds.
func (l Layout) ScreenSize() (width, height int) {
	return 2*l.WorldWidth + l.Gap, l.WorldHeight
}

// Offset returns the top-left screen position of a layer.
func (l Layout) Offset(layer ecs.Layer) (x, y int) {
	if layer == ecs.LayerRight {
		return l.WorldWidth + l.Gap, 0
	}
	return 0, 0
}

// Compositor owns one Target per layer and draws them to the screen.
type Compositor struct {
	Layout  Layout
	Targets map[ecs.Layer]*Target
	Divider color.RGBA
}

func NewCompositor(layout Layout) *Compositor {
	c := &Compositor{
		Layout:  layout,
		Targets: make(map[ecs.Layer]*Target, len(ecs.Layers)),
		Divider: color.RGBA{0x1a, 0x1a, 0x2e, 0xff},
	}
	for _, layer := range ecs.Layers {
		c.Targets[layer] = NewTarget(layout.WorldWidth, layout.WorldHeight)
	}
	return c
}

// RenderTargets returns the targets keyed by layer for the render system.
func (c *Compositor) RenderTargets() map[ecs.Layer]systems.RenderTarget {
	out := make(map[ecs.Layer]systems.RenderTarget, len(c.Targets))
	for layer, t := range c.Targets {
		out[layer] = t
	}
	return out
}

func (c *Compositor) Draw(screen *ebiten.Image) {
	screen.Fill(c.Divider)
	for _, layer := range ecs.Layers {
		x, y := c.Layout.Offset(layer)
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(float64(x), float64(y))
		screen.DrawImage(c.Targets[layer].Image, op)
	}
}
