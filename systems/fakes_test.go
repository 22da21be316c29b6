package systems_test

import (
	"image/color"

	"github.com/plus3/mirrorworld/ecs"
)

type keySet map[string]bool

func (k keySet) IsKeyPressed(key string) bool { return k[key] }

type rect struct {
	X, Y, W, H float64
	Color      color.RGBA
}

type recordingTarget struct {
	clears []color.RGBA
	rects  []rect
}

func (t *recordingTarget) Clear(c color.RGBA) {
	t.clears = append(t.clears, c)
	t.rects = nil
}

func (t *recordingTarget) FillRect(x, y, w, h float64, c color.RGBA) {
	t.rects = append(t.rects, rect{x, y, w, h, c})
}

func addPlayer(w *ecs.World, x, y float64, layer ecs.Layer) *ecs.Entity {
	return w.CreateEntity().
		AddComponent(ecs.NewTransform(x, y)).
		AddComponent(&ecs.Velocity{}).
		AddComponent(ecs.NewCollider(32, 32, false, ecs.TagPlayer)).
		AddComponent(&ecs.WorldLayer{Layer: layer})
}

func addWall(w *ecs.World, x, y, width, height float64, layer ecs.Layer) *ecs.Entity {
	return w.CreateEntity().
		AddComponent(ecs.NewTransform(x, y)).
		AddComponent(ecs.NewCollider(width, height, false, ecs.TagWall)).
		AddComponent(&ecs.WorldLayer{Layer: layer})
}

func addExit(w *ecs.World, x, y float64, layer ecs.Layer) *ecs.Entity {
	return w.CreateEntity().
		AddComponent(ecs.NewTransform(x, y)).
		AddComponent(ecs.NewCollider(48, 48, true, ecs.TagExit)).
		AddComponent(&ecs.WorldLayer{Layer: layer})
}
