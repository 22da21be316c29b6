package systems

import "github.com/plus3/mirrorworld/ecs"

// InputSystem turns held keys into player velocity. Velocity is overwritten
// every step: input is the velocity, not an impulse.
type InputSystem struct {
	ecs.BaseSystem
	Keys     KeyState
	Bindings KeyBindings
}

// NewInputSystem reads keys through the given bindings.
func NewInputSystem(keys KeyState, bindings KeyBindings) *InputSystem {
	return &InputSystem{Keys: keys, Bindings: bindings}
}

// Direction returns the signed input axes for the current key state.
func (s *InputSystem) Direction() (dx, dy float64) {
	if s.Keys == nil {
		return 0, 0
	}
	if s.Keys.IsKeyPressed(s.Bindings.Left) {
		dx--
	}
	if s.Keys.IsKeyPressed(s.Bindings.Right) {
		dx++
	}
	if s.Keys.IsKeyPressed(s.Bindings.Up) {
		dy--
	}
	if s.Keys.IsKeyPressed(s.Bindings.Down) {
		dy++
	}
	return dx, dy
}

// Update sets the velocity of every player controlled entity from the held
// keys. MirrorMovement inverts the axes it names.
func (s *InputSystem) Update(dt float64) {
	dx, dy := s.Direction()

	for _, e := range s.World.EntitiesWith(ecs.KindPlayerControl, ecs.KindVelocity) {
		control := ecs.Get[ecs.PlayerControl](e)
		velocity := ecs.Get[ecs.Velocity](e)

		ex, ey := dx, dy
		if mirror := ecs.Get[ecs.MirrorMovement](e); mirror != nil {
			if mirror.InvertX {
				ex = -ex
			}
			if mirror.InvertY {
				ey = -ey
			}
		}

		velocity.Velocity = ecs.Vec2(ex*control.Speed, ey*control.Speed)
	}
}
