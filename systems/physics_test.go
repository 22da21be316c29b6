package systems_test

import (
	"testing"

	"github.com/plus3/mirrorworld/ecs"
	"github.com/plus3/mirrorworld/systems"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type physicsFixture struct {
	world      *ecs.World
	bus        *ecs.EventBus
	physics    *systems.PhysicsSystem
	collisions []ecs.Collision
	completed  []ecs.LevelCompleted
}

func newPhysicsFixture() *physicsFixture {
	f := &physicsFixture{world: ecs.NewWorld(), bus: ecs.NewEventBus()}
	f.physics = systems.NewPhysicsSystem(f.bus)
	f.world.AddSystem(f.physics)

	f.bus.Subscribe(ecs.EventCollision, func(ev ecs.Event) {
		f.collisions = append(f.collisions, ev.(ecs.Collision))
	})
	f.bus.Subscribe(ecs.EventLevelCompleted, func(ev ecs.Event) {
		f.completed = append(f.completed, ev.(ecs.LevelCompleted))
	})
	return f
}

func (f *physicsFixture) step() {
	f.world.Update(ecs.DefaultStep)
}

func position(e *ecs.Entity) ecs.Vector2 {
	return ecs.Get[ecs.Transform](e).Position
}

func TestPhysicsPushesPlayerOutOfWall(t *testing.T) {
	f := newPhysicsFixture()
	wall := addWall(f.world, 0, 0, 32, 600, ecs.LayerLeft)
	player := addPlayer(f.world, 28, 100, ecs.LayerLeft)
	ecs.Get[ecs.Velocity](player).Velocity = ecs.Vec2(-200, 50)

	f.step()

	assert.Equal(t, ecs.Vec2(32, 100), position(player))
	assert.Equal(t, ecs.Vec2(0, 50), ecs.Get[ecs.Velocity](player).Velocity,
		"velocity into the wall is cancelled")

	require.Len(t, f.collisions, 1)
	assert.Equal(t, player.Id(), f.collisions[0].Player)
	assert.Equal(t, wall.Id(), f.collisions[0].Other)
	assert.Equal(t, ecs.LayerLeft, f.collisions[0].Layer)
	assert.Equal(t, ecs.Vec2(4, 0), f.collisions[0].Push)
}

func TestPhysicsResolutionIsIdempotent(t *testing.T) {
	f := newPhysicsFixture()
	addWall(f.world, 0, 0, 800, 32, ecs.LayerLeft)
	addWall(f.world, 0, 0, 32, 600, ecs.LayerLeft)
	player := addPlayer(f.world, 20, 20, ecs.LayerLeft)

	f.step()
	resolved := position(player)
	assert.Equal(t, ecs.Vec2(32, 32), resolved, "corner overlap is resolved against both walls")
	assert.Len(t, f.collisions, 2)

	f.step()
	f.step()
	assert.Equal(t, resolved, position(player), "a resolved player touching walls stays put")
	assert.Len(t, f.collisions, 2, "touching edges need no resolution")
}

func TestPhysicsResolutionIsIdempotentWithFractions(t *testing.T) {
	for i := range 200 {
		f := newPhysicsFixture()
		wallX := 100 + float64(i)*0.0137
		addWall(f.world, wallX, 90.3, 32.3, 64.7, ecs.LayerLeft)
		player := addPlayer(f.world, wallX+32.3-3.33, 100.7, ecs.LayerLeft)
		ecs.Get[ecs.Velocity](player).Velocity = ecs.Vec2(-200, 30)

		f.step()
		require.Len(t, f.collisions, 1, "wall at %v", wallX)
		resolved := position(player)

		ecs.Get[ecs.Velocity](player).Velocity = ecs.Vec2(0, 30)
		f.step()
		f.step()

		assert.Equal(t, resolved, position(player), "wall at %v", wallX)
		assert.Len(t, f.collisions, 1, "a settled player raises no more collisions (wall at %v)", wallX)
		assert.Equal(t, ecs.Vec2(0, 30), ecs.Get[ecs.Velocity](player).Velocity, "wall at %v", wallX)
	}
}

func TestPhysicsRespectsLayers(t *testing.T) {
	tests := []struct {
		name      string
		wallLayer *ecs.Layer
		want      ecs.Vector2
	}{
		{"same layer collides", layerPtr(ecs.LayerLeft), ecs.Vec2(32, 100)},
		{"other layer is ignored", layerPtr(ecs.LayerRight), ecs.Vec2(28, 100)},
		{"no layer matches every layer", nil, ecs.Vec2(32, 100)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newPhysicsFixture()
			wall := f.world.CreateEntity().
				AddComponent(ecs.NewTransform(0, 0)).
				AddComponent(ecs.NewCollider(32, 600, false, ecs.TagWall))
			if tt.wallLayer != nil {
				wall.AddComponent(&ecs.WorldLayer{Layer: *tt.wallLayer})
			}
			player := addPlayer(f.world, 28, 100, ecs.LayerLeft)

			f.step()
			assert.Equal(t, tt.want, position(player))
		})
	}
}

func layerPtr(l ecs.Layer) *ecs.Layer { return &l }

func TestPhysicsTriggersDoNotBlock(t *testing.T) {
	f := newPhysicsFixture()
	f.world.CreateEntity().
		AddComponent(ecs.NewTransform(0, 0)).
		AddComponent(ecs.NewCollider(100, 100, true, ecs.TagWall)).
		AddComponent(&ecs.WorldLayer{Layer: ecs.LayerLeft})
	player := addPlayer(f.world, 10, 10, ecs.LayerLeft)

	f.step()
	assert.Equal(t, ecs.Vec2(10, 10), position(player))
	assert.Empty(t, f.collisions)
}

func TestPhysicsEventsPublishedAfterResolution(t *testing.T) {
	f := newPhysicsFixture()
	addWall(f.world, 0, 0, 32, 600, ecs.LayerLeft)
	addWall(f.world, 0, 0, 32, 600, ecs.LayerRight)
	left := addPlayer(f.world, 28, 100, ecs.LayerLeft)
	right := addPlayer(f.world, 28, 100, ecs.LayerRight)

	var seen []ecs.Vector2
	f.bus.Subscribe(ecs.EventCollision, func(ev ecs.Event) {
		seen = append(seen, position(left), position(right))
	})

	f.step()

	require.Len(t, seen, 4)
	for _, pos := range seen {
		assert.Equal(t, ecs.Vec2(32, 100), pos, "handlers observe every player already resolved")
	}
}

func TestPhysicsWinCondition(t *testing.T) {
	tests := []struct {
		name      string
		leftAt    ecs.Vector2
		rightAt   ecs.Vector2
		wantWin   bool
		wantInExt int
	}{
		{"both in their exits", ecs.Vec2(700, 500), ecs.Vec2(700, 500), true, 2},
		{"only the left player", ecs.Vec2(700, 500), ecs.Vec2(300, 300), false, 1},
		{"neither", ecs.Vec2(300, 300), ecs.Vec2(300, 300), false, 0},
		{"touching the exit edge counts", ecs.Vec2(668, 500), ecs.Vec2(748, 548), true, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newPhysicsFixture()
			addExit(f.world, 700, 500, ecs.LayerLeft)
			addExit(f.world, 700, 500, ecs.LayerRight)
			addPlayer(f.world, tt.leftAt.X, tt.leftAt.Y, ecs.LayerLeft)
			addPlayer(f.world, tt.rightAt.X, tt.rightAt.Y, ecs.LayerRight)

			f.step()

			inExit, total := f.physics.PlayersInExit()
			assert.Equal(t, tt.wantInExt, inExit)
			assert.Equal(t, 2, total)
			assert.Equal(t, tt.wantWin, len(f.completed) == 1)
		})
	}
}

func TestPhysicsExitOfOtherLayerDoesNotCount(t *testing.T) {
	f := newPhysicsFixture()
	addExit(f.world, 700, 500, ecs.LayerRight)
	addExit(f.world, 100, 100, ecs.LayerLeft)
	addPlayer(f.world, 700, 500, ecs.LayerLeft)
	addPlayer(f.world, 700, 500, ecs.LayerRight)

	f.step()
	assert.Empty(t, f.completed)
}

func TestPhysicsNoPlayersNeverWins(t *testing.T) {
	f := newPhysicsFixture()
	addExit(f.world, 0, 0, ecs.LayerLeft)

	f.step()
	assert.Empty(t, f.completed)
}

func TestPhysicsWinIsEdgeTriggered(t *testing.T) {
	f := newPhysicsFixture()
	addExit(f.world, 700, 500, ecs.LayerLeft)
	player := addPlayer(f.world, 700, 500, ecs.LayerLeft)

	f.step()
	f.step()
	f.step()
	assert.Len(t, f.completed, 1, "standing in the exit reports the win once")

	ecs.Get[ecs.Transform](player).Position = ecs.Vec2(100, 100)
	f.step()
	ecs.Get[ecs.Transform](player).Position = ecs.Vec2(700, 500)
	f.step()
	assert.Len(t, f.completed, 2, "re-entering the exit reports again")
}

func TestPhysicsWinLatchResetsWithGeneration(t *testing.T) {
	f := newPhysicsFixture()
	addExit(f.world, 700, 500, ecs.LayerLeft)
	addPlayer(f.world, 700, 500, ecs.LayerLeft)
	f.step()
	require.Len(t, f.completed, 1)

	f.world.Clear()
	addExit(f.world, 700, 500, ecs.LayerLeft)
	addPlayer(f.world, 700, 500, ecs.LayerLeft)
	f.step()

	require.Len(t, f.completed, 2)
	assert.Equal(t, f.world.Generation(), f.completed[1].Generation)
}

func TestPhysicsWithoutBus(t *testing.T) {
	world := ecs.NewWorld()
	world.AddSystem(systems.NewPhysicsSystem(nil))
	addWall(world, 0, 0, 32, 600, ecs.LayerLeft)
	player := addPlayer(world, 28, 100, ecs.LayerLeft)

	assert.NotPanics(t, func() { world.Update(ecs.DefaultStep) })
	assert.Equal(t, ecs.Vec2(32, 100), position(player))
}
