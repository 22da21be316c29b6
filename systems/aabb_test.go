package systems_test

import (
	"testing"

	"github.com/plus3/mirrorworld/ecs"
	"github.com/plus3/mirrorworld/systems"
	"github.com/stretchr/testify/assert"
)

func TestBoxIntersects(t *testing.T) {
	base := systems.Box{Left: 0, Top: 0, Right: 10, Bottom: 10}

	tests := []struct {
		name  string
		other systems.Box
		want  bool
	}{
		{"overlapping", systems.Box{Left: 5, Top: 5, Right: 15, Bottom: 15}, true},
		{"contained", systems.Box{Left: 2, Top: 2, Right: 4, Bottom: 4}, true},
		{"touching right edge", systems.Box{Left: 10, Top: 0, Right: 20, Bottom: 10}, true},
		{"touching corner", systems.Box{Left: 10, Top: 10, Right: 20, Bottom: 20}, true},
		{"separated on x", systems.Box{Left: 11, Top: 0, Right: 20, Bottom: 10}, false},
		{"separated on y", systems.Box{Left: 0, Top: -20, Right: 10, Bottom: -1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, base.Intersects(tt.other))
			assert.Equal(t, tt.want, tt.other.Intersects(base), "intersection is symmetric")
		})
	}
}

func TestBoxPenetration(t *testing.T) {
	wall := systems.Box{Left: 0, Top: 0, Right: 32, Bottom: 600}

	tests := []struct {
		name   string
		player systems.Box
		want   ecs.Vector2
	}{
		{"pushed right out of a left wall", systems.Box{Left: 28, Top: 100, Right: 60, Bottom: 132}, ecs.Vec2(4, 0)},
		{"pushed left when centred left", systems.Box{Left: -30, Top: 100, Right: 2, Bottom: 132}, ecs.Vec2(-2, 0)},
		{"pushed down out of the bottom", systems.Box{Left: 0, Top: 590, Right: 32, Bottom: 622}, ecs.Vec2(0, 10)},
		{"pushed up out of the top", systems.Box{Left: 0, Top: -20, Right: 32, Bottom: 12}, ecs.Vec2(0, -12)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.player.Penetration(wall))
		})
	}
}

func TestBoxPenetrationTieResolvesOnY(t *testing.T) {
	a := systems.Box{Left: 0, Top: 0, Right: 10, Bottom: 10}
	b := systems.Box{Left: 5, Top: 5, Right: 15, Bottom: 15}

	assert.Equal(t, ecs.Vec2(0, -5), a.Penetration(b))
}
