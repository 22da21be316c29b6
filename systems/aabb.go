package systems

import (
	"math"

	"github.com/plus3/mirrorworld/ecs"
)

// Box is an axis-aligned bounding box.
type Box struct {
	Left, Top, Right, Bottom float64
}

// BoundsOf returns the box of a collider anchored at the transform position.
func BoundsOf(t *ecs.Transform, c *ecs.Collider) Box {
	return Box{
		Left:   t.Position.X,
		Top:    t.Position.Y,
		Right:  t.Position.X + c.Width,
		Bottom: t.Position.Y + c.Height,
	}
}

// Center returns the box centre.
func (b Box) Center() ecs.Vector2 {
	return ecs.Vec2((b.Left+b.Right)/2, (b.Top+b.Bottom)/2)
}

// Intersects reports whether two boxes overlap. Touching edges count.
func (b Box) Intersects(o Box) bool {
	return !(o.Left > b.Right ||
		o.Right < b.Left ||
		o.Top > b.Bottom ||
		o.Bottom < b.Top)
}

// Penetration returns the minimum translation that moves b out of o.
// The push is along X only when the X overlap is strictly smaller; ties
// resolve along Y.
func (b Box) Penetration(o Box) ecs.Vector2 {
	bc, oc := b.Center(), o.Center()
	dx := bc.X - oc.X
	dy := bc.Y - oc.Y

	overlapX := (b.Right-b.Left)/2 + (o.Right-o.Left)/2 - math.Abs(dx)
	overlapY := (b.Bottom-b.Top)/2 + (o.Bottom-o.Top)/2 - math.Abs(dy)

	if overlapX < overlapY {
		if dx > 0 {
			return ecs.Vec2(overlapX, 0)
		}
		return ecs.Vec2(-overlapX, 0)
	}
	if dy > 0 {
		return ecs.Vec2(0, overlapY)
	}
	return ecs.Vec2(0, -overlapY)
}
