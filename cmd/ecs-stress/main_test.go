package main

import (
	"bytes"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/mirrorworld/config"
	"github.com/plus3/mirrorworld/ecs"
	"github.com/plus3/mirrorworld/level"
)

func TestRandomLevelIsLoadable(t *testing.T) {
	cfg := config.Default()
	rng := rand.New(rand.NewSource(7))
	world := ecs.NewWorld()
	loader := level.NewLoader(world, cfg.LoaderOptions())

	for id := 1; id <= 10; id++ {
		l := RandomLevel(rng, id, 5, cfg)
		require.NoError(t, l.Validate())
		for _, w := range l.Walls {
			assert.GreaterOrEqual(t, w.X, 0.0)
			assert.LessOrEqual(t, w.X+w.W, cfg.World.Width/2)
		}
		require.NoError(t, loader.Load(l))
	}

	// Each room: 5 walls, one exit and one player per layer.
	assert.Equal(t, 10*2*(5+2), world.Len())
}

func TestReportGenerate(t *testing.T) {
	world := ecs.NewWorld()
	world.CreateEntity().AddComponent(ecs.NewTransform(0, 0))

	report := &Report{
		Duration:    time.Second,
		Rooms:       1,
		Entities:    1,
		TotalFrames: 3,
		UpdateTime:  Stats{Samples: []time.Duration{time.Millisecond, 3 * time.Millisecond}},
		World:       world.Stats(),
	}
	report.UpdateTime.Finalize()
	assert.Equal(t, 2*time.Millisecond, report.UpdateTime.Avg)

	var buf bytes.Buffer
	require.NoError(t, report.Generate(&buf))
	assert.Contains(t, buf.String(), "**Frames:** 3")
	assert.Contains(t, buf.String(), "- Transform: 1")
}

func TestRunReportsErrors(t *testing.T) {
	var out bytes.Buffer
	err := run(options{duration: time.Millisecond, rooms: 1, walls: 1, profile: "heap"}, &out)
	assert.ErrorContains(t, err, `unknown profile mode "heap"`)
	assert.Empty(t, out.String(), "nothing runs after a bad flag")
}

func TestRunWritesReport(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run(options{duration: 20 * time.Millisecond, rooms: 2, walls: 3, seed: 1}, &out))
	assert.Contains(t, out.String(), "--- Stress Test Report ---")
	assert.Contains(t, out.String(), "--- End of Report ---")
}
