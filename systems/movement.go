package systems

import "github.com/plus3/mirrorworld/ecs"

// MovementSystem integrates velocity into position. It knows nothing about
// collisions; PhysicsSystem corrects overlaps later in the same step.
type MovementSystem struct {
	ecs.BaseSystem
}

// NewMovementSystem returns a movement system.
func NewMovementSystem() *MovementSystem {
	return &MovementSystem{}
}

// Update integrates velocity into position, keeping the previous position
// for render interpolation.
func (s *MovementSystem) Update(dt float64) {
	s.World.Each(func(e *ecs.Entity) bool {
		transform := ecs.Get[ecs.Transform](e)
		transform.Previous = transform.Position

		if velocity := ecs.Get[ecs.Velocity](e); velocity != nil {
			transform.Position = transform.Position.Add(velocity.Velocity.Scale(dt))
		}
		return true
	}, ecs.KindTransform)
}
