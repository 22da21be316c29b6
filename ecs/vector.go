package ecs

// Vector2 is a 2D vector value type.
type Vector2 struct {
	X, Y float64
}

// Vec2 is shorthand for Vector2{X: x, Y: y}.
func Vec2(x, y float64) Vector2 {
	return Vector2{X: x, Y: y}
}

// Add returns v + o.
func (v Vector2) Add(o Vector2) Vector2 {
	return Vector2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vector2) Sub(o Vector2) Vector2 {
	return Vector2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale returns v * s.
func (v Vector2) Scale(s float64) Vector2 {
	return Vector2{X: v.X * s, Y: v.Y * s}
}

// Lerp interpolates linearly between v (t=0) and to (t=1).
func (v Vector2) Lerp(to Vector2, t float64) Vector2 {
	return Vector2{
		X: v.X + (to.X-v.X)*t,
		Y: v.Y + (to.Y-v.Y)*t,
	}
}
