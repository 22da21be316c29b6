// Package config loads the game configuration from YAML.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"

	"github.com/plus3/mirrorworld/ecs"
	"github.com/plus3/mirrorworld/level"
	"github.com/plus3/mirrorworld/systems"
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config is the full game configuration, loaded from YAML.
type Config struct {
	World  WorldConfig  `yaml:"world"`
	Loop   LoopConfig   `yaml:"loop"`
	Player PlayerConfig `yaml:"player"`
	Levels LevelsConfig `yaml:"levels"`
	Render RenderConfig `yaml:"render"`
	Keys   KeysConfig   `yaml:"keys"`
	Audio  AudioConfig  `yaml:"audio"`
}

type WorldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type LoopConfig struct {
	// Step is the fixed simulation step in seconds.
	Step float64 `yaml:"step"`
	// MaxFrame caps the real time a single frame may feed the simulation.
	MaxFrame float64 `yaml:"max_frame"`
}

type PlayerConfig struct {
	Speed    float64 `yaml:"speed"`
	Size     float64 `yaml:"size"`
	ExitSize float64 `yaml:"exit_size"`
}

type LevelsConfig struct {
	// Path is an optional .txtar or .yaml level pack. Empty selects the
	// built-in levels.
	Path            string        `yaml:"path"`
	TransitionDelay time.Duration `yaml:"transition_delay"`
	Resume          bool          `yaml:"resume"`
	// SaveApp names the per-user data directory for progress. Empty
	// disables saving.
	SaveApp string `yaml:"save_app"`
}

type RenderConfig struct {
	Interpolate bool   `yaml:"interpolate"`
	Colors      Colors `yaml:"colors"`
}

// Colors are "#rgb" or "#rrggbb" strings.
type Colors struct {
	LeftBackground  string `yaml:"left_background"`
	RightBackground string `yaml:"right_background"`
	Wall            string `yaml:"wall"`
	Exit            string `yaml:"exit"`
	Player          string `yaml:"player"`
	MirrorPlayer    string `yaml:"mirror_player"`
}

type KeysConfig struct {
	systems.KeyBindings `yaml:",inline"`
	Reset               string `yaml:"reset"`
}

type AudioConfig struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		World: WorldConfig{Width: 800, Height: 600},
		Loop:  LoopConfig{Step: ecs.DefaultStep, MaxFrame: ecs.DefaultMaxFrame},
		Player: PlayerConfig{
			Speed:    ecs.DefaultPlayerSpeed,
			Size:     32,
			ExitSize: 48,
		},
		Levels: LevelsConfig{
			TransitionDelay: level.DefaultTransitionDelay,
			SaveApp:         "mirrorworld",
		},
		Render: RenderConfig{
			Interpolate: true,
			Colors: Colors{
				LeftBackground:  "#16213e",
				RightBackground: "#0f3460",
				Wall:            "#666",
				Exit:            "#0f0",
				Player:          "#f00",
				MirrorPlayer:    "#00f",
			},
		},
		Keys: KeysConfig{
			KeyBindings: systems.DefaultKeyBindings(),
			Reset:       "r",
		},
		Audio: AudioConfig{Enabled: true, Volume: 0.5},
	}
}

// Parse reads YAML over the defaults. Keys missing from data keep their
// default values.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads the file at path. An empty path returns the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports the first invalid setting. Errors wrap ErrInvalidConfig.
func (c *Config) Validate() error {
	positive := []struct {
		name  string
		value float64
	}{
		{"world.width", c.World.Width},
		{"world.height", c.World.Height},
		{"loop.step", c.Loop.Step},
		{"loop.max_frame", c.Loop.MaxFrame},
		{"player.speed", c.Player.Speed},
		{"player.size", c.Player.Size},
		{"player.exit_size", c.Player.ExitSize},
	}
	for _, p := range positive {
		if p.value <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %g", ErrInvalidConfig, p.name, p.value)
		}
	}
	if c.Loop.MaxFrame < c.Loop.Step {
		return fmt.Errorf("%w: loop.max_frame %g is shorter than loop.step %g", ErrInvalidConfig, c.Loop.MaxFrame, c.Loop.Step)
	}
	if c.Levels.TransitionDelay < 0 {
		return fmt.Errorf("%w: levels.transition_delay must not be negative", ErrInvalidConfig)
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		return fmt.Errorf("%w: audio.volume %g is outside [0, 1]", ErrInvalidConfig, c.Audio.Volume)
	}

	colors := c.Render.Colors
	for name, hex := range map[string]string{
		"left_background":  colors.LeftBackground,
		"right_background": colors.RightBackground,
		"wall":             colors.Wall,
		"exit":             colors.Exit,
		"player":           colors.Player,
		"mirror_player":    colors.MirrorPlayer,
	} {
		if _, err := ParseColor(hex); err != nil {
			return fmt.Errorf("%w: render.colors.%s: %w", ErrInvalidConfig, name, err)
		}
	}
	return nil
}

// ParseColor parses an opaque "#rgb" or "#rrggbb" colour.
func ParseColor(hex string) (color.RGBA, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.RGBA{}, err
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}, nil
}

// mustColor is only used on colours Validate has accepted.
func mustColor(hex string) color.RGBA {
	c, err := ParseColor(hex)
	if err != nil {
		panic(err)
	}
	return c
}

// LoaderOptions returns level building options. c must be valid.
func (c *Config) LoaderOptions() level.Options {
	colors := c.Render.Colors
	return level.Options{
		WorldWidth:        c.World.Width,
		PlayerSize:        c.Player.Size,
		ExitSize:          c.Player.ExitSize,
		PlayerSpeed:       c.Player.Speed,
		WallColor:         mustColor(colors.Wall),
		ExitColor:         mustColor(colors.Exit),
		PlayerColor:       mustColor(colors.Player),
		MirrorPlayerColor: mustColor(colors.MirrorPlayer),
	}
}

// Backgrounds returns the clear colour of each layer. c must be valid.
func (c *Config) Backgrounds() map[ecs.Layer]color.RGBA {
	return map[ecs.Layer]color.RGBA{
		ecs.LayerLeft:  mustColor(c.Render.Colors.LeftBackground),
		ecs.LayerRight: mustColor(c.Render.Colors.RightBackground),
	}
}

// WatchedKeys lists every key name the game reads.
func (c *Config) WatchedKeys() []string {
	k := c.Keys
	return []string{k.Left, k.Right, k.Up, k.Down, k.Reset}
}
