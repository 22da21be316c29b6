package systems

import (
	"math"

	"github.com/plus3/mirrorworld/ecs"
)

// TouchEpsilon is the largest penetration treated as touching edges.
const TouchEpsilon = 1e-9

// PhysicsSystem pushes players out of walls and detects the win condition:
// every player standing in an exit of its own world layer.
//
// Only entities sharing a layer interact. An entity without a WorldLayer
// interacts with every layer.
type PhysicsSystem struct {
	ecs.BaseSystem
	Events *ecs.EventBus

	playersInExit int
	playerCount   int

	// won latches the win condition so LevelCompleted is published on the
	// step the condition becomes true, once per world generation.
	won           bool
	wonGeneration uint64

	pending []ecs.Event
}

// NewPhysicsSystem publishes collision, movement and win events on bus.
// bus may be nil.
func NewPhysicsSystem(bus *ecs.EventBus) *PhysicsSystem {
	return &PhysicsSystem{Events: bus}
}

// PlayersInExit returns how many players stood in an exit after the last
// update, and how many players there were.
func (s *PhysicsSystem) PlayersInExit() (inExit, total int) {
	return s.playersInExit, s.playerCount
}

type body struct {
	entity    *ecs.Entity
	transform *ecs.Transform
	collider  *ecs.Collider
	layer     *ecs.WorldLayer
}

func sameLayer(a, b body) bool {
	if a.layer == nil || b.layer == nil {
		return true
	}
	return a.layer.Layer == b.layer.Layer
}

// Update pushes players out of walls on their own layer and counts players
// standing in an exit. Collision, PlayerMoved and LevelCompleted events are
// published after the whole pass.
func (s *PhysicsSystem) Update(dt float64) {
	var players, walls, exits []body

	for _, e := range s.World.EntitiesWith(ecs.KindTransform, ecs.KindCollider) {
		b := body{
			entity:    e,
			transform: ecs.Get[ecs.Transform](e),
			collider:  ecs.Get[ecs.Collider](e),
			layer:     ecs.Get[ecs.WorldLayer](e),
		}
		switch b.collider.Tag {
		case ecs.TagPlayer:
			players = append(players, b)
		case ecs.TagWall:
			walls = append(walls, b)
		case ecs.TagExit:
			exits = append(exits, b)
		}
	}

	s.pending = s.pending[:0]
	inExit := 0

	for _, player := range players {
		for _, wall := range walls {
			if !sameLayer(player, wall) {
				continue
			}
			if push, hit := s.resolve(player, wall); hit {
				s.pending = append(s.pending, ecs.Collision{
					Player: player.entity.Id(),
					Other:  wall.entity.Id(),
					Layer:  layerOf(player),
					Push:   push,
				})
			}
		}

		pBox := BoundsOf(player.transform, player.collider)
		for _, exit := range exits {
			if !sameLayer(player, exit) {
				continue
			}
			if pBox.Intersects(BoundsOf(exit.transform, exit.collider)) {
				inExit++
				break
			}
		}

		if player.transform.Position != player.transform.Previous {
			s.pending = append(s.pending, ecs.PlayerMoved{
				Player: player.entity.Id(),
				From:   player.transform.Previous,
				To:     player.transform.Position,
			})
		}
	}

	s.playersInExit = inExit
	s.playerCount = len(players)

	gen := s.World.Generation()
	if gen != s.wonGeneration {
		s.won = false
		s.wonGeneration = gen
	}

	allIn := len(players) > 0 && inExit == len(players)
	if allIn && !s.won {
		s.pending = append(s.pending, ecs.LevelCompleted{Generation: gen})
	}
	s.won = allIn

	// Publish only after iteration so handlers never observe a half-resolved
	// step.
	if s.Events != nil {
		for _, ev := range s.pending {
			s.Events.Publish(ev)
		}
	}
	clear(s.pending)
	s.pending = s.pending[:0]
}

// resolve pushes player out of obstacle along the axis of least
// penetration. Solid obstacles only; triggers never block.
func (s *PhysicsSystem) resolve(player, obstacle body) (ecs.Vector2, bool) {
	if obstacle.collider.IsTrigger {
		return ecs.Vector2{}, false
	}

	pBox := BoundsOf(player.transform, player.collider)
	oBox := BoundsOf(obstacle.transform, obstacle.collider)
	if !pBox.Intersects(oBox) {
		return ecs.Vector2{}, false
	}

	push := pBox.Penetration(oBox)
	if math.Abs(push.X) < TouchEpsilon && math.Abs(push.Y) < TouchEpsilon {
		// Touching edges, or rounding residue the position cannot absorb.
		return ecs.Vector2{}, false
	}

	player.transform.Position = player.transform.Position.Add(push)

	if velocity := ecs.Get[ecs.Velocity](player.entity); velocity != nil {
		if push.X != 0 {
			velocity.Velocity.X = 0
		}
		if push.Y != 0 {
			velocity.Velocity.Y = 0
		}
	}
	return push, true
}

func layerOf(b body) ecs.Layer {
	if b.layer == nil {
		return ecs.LayerLeft
	}
	return b.layer.Layer
}
