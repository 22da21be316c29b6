package systems

import "image/color"

// KeyState reads the set of currently held keys. Keys are platform key
// names such as "ArrowLeft".
type KeyState interface {
	IsKeyPressed(key string) bool
}

// KeyBindings names the keys that move a player.
type KeyBindings struct {
	Left  string `yaml:"left"`
	Right string `yaml:"right"`
	Up    string `yaml:"up"`
	Down  string `yaml:"down"`
}

// DefaultKeyBindings are the arrow keys.
func DefaultKeyBindings() KeyBindings {
	return KeyBindings{
		Left:  "ArrowLeft",
		Right: "ArrowRight",
		Up:    "ArrowUp",
		Down:  "ArrowDown",
	}
}

// RenderTarget is a 2D drawing surface for one world layer.
type RenderTarget interface {
	Clear(c color.RGBA)
	FillRect(x, y, w, h float64, c color.RGBA)
}
