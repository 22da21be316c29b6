package config_test

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/plus3/mirrorworld/config"
	"github.com/plus3/mirrorworld/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 800.0, cfg.World.Width)
	assert.Equal(t, "ArrowLeft", cfg.Keys.Left)
	assert.Equal(t, "r", cfg.Keys.Reset)
	assert.Equal(t, time.Second, cfg.Levels.TransitionDelay)
}

func TestParseOverridesDefaults(t *testing.T) {
	cfg, err := config.Parse([]byte(`
loop:
  step: 0.02
player:
  speed: 150
levels:
  transition_delay: 250ms
  resume: true
render:
  interpolate: false
  colors:
    wall: "#123456"
keys:
  left: a
  right: d
audio:
  enabled: false
`))
	require.NoError(t, err)

	assert.Equal(t, 0.02, cfg.Loop.Step)
	assert.Equal(t, ecs.DefaultMaxFrame, cfg.Loop.MaxFrame, "unset keys keep defaults")
	assert.Equal(t, 150.0, cfg.Player.Speed)
	assert.Equal(t, 250*time.Millisecond, cfg.Levels.TransitionDelay)
	assert.True(t, cfg.Levels.Resume)
	assert.False(t, cfg.Render.Interpolate)
	assert.Equal(t, "a", cfg.Keys.Left)
	assert.Equal(t, "ArrowUp", cfg.Keys.Up)
	assert.False(t, cfg.Audio.Enabled)

	opts := cfg.LoaderOptions()
	assert.Equal(t, color.RGBA{0x12, 0x34, 0x56, 0xff}, opts.WallColor)
	assert.Equal(t, 150.0, opts.PlayerSpeed)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"zero width", "world: {width: 0}"},
		{"negative step", "loop: {step: -1}"},
		{"max frame below step", "loop: {step: 0.5, max_frame: 0.25}"},
		{"zero speed", "player: {speed: 0}"},
		{"negative delay", "levels: {transition_delay: -1s}"},
		{"loud", "audio: {volume: 2}"},
		{"bad colour", `render: {colors: {exit: "green"}}`},
		{"short colour", `render: {colors: {player: "#ff"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.Parse([]byte(tt.yaml))
			assert.ErrorIs(t, err, config.ErrInvalidConfig)
		})
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		hex     string
		want    color.RGBA
		wantErr bool
	}{
		{"#666", color.RGBA{0x66, 0x66, 0x66, 0xff}, false},
		{"#0f0", color.RGBA{0, 0xff, 0, 0xff}, false},
		{"#16213e", color.RGBA{0x16, 0x21, 0x3e, 0xff}, false},
		{"16213e", color.RGBA{}, true},
		{"#zzz", color.RGBA{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.hex, func(t *testing.T) {
			got, err := config.ParseColor(tt.hex)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBackgrounds(t *testing.T) {
	cfg := config.Default()
	bg := cfg.Backgrounds()
	assert.Equal(t, color.RGBA{0x16, 0x21, 0x3e, 0xff}, bg[ecs.LayerLeft])
	assert.Equal(t, color.RGBA{0x0f, 0x34, 0x60, 0xff}, bg[ecs.LayerRight])
}

func TestLoad(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)

	path := filepath.Join(t.TempDir(), "mirrorworld.yaml")
	require.NoError(t, os.WriteFile(path, []byte("world: {width: 640, height: 480}\n"), 0o644))

	cfg, err = config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 640.0, cfg.World.Width)

	_, err = config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWatchedKeys(t *testing.T) {
	cfg := config.Default()
	assert.Equal(t, []string{"ArrowLeft", "ArrowRight", "ArrowUp", "ArrowDown", "r"}, cfg.WatchedKeys())
}
