package input

import (
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

var ebitenKeys = map[string]ebiten.Key{
	"ArrowLeft":  ebiten.KeyArrowLeft,
	"ArrowRight": ebiten.KeyArrowRight,
	"ArrowUp":    ebiten.KeyArrowUp,
	"ArrowDown":  ebiten.KeyArrowDown,
	"Escape":     ebiten.KeyEscape,
	"Enter":      ebiten.KeyEnter,
	" ":          ebiten.KeySpace,
	"F1":         ebiten.KeyF1,
}

// EbitenKey maps a key name to an ebiten key. Single characters map to
// their letter or digit key, so "r" and "R" are both ebiten.KeyR.
func EbitenKey(name string) (ebiten.Key, bool) {
	if key, ok := ebitenKeys[name]; ok {
		return key, true
	}
	var key ebiten.Key
	if err := key.UnmarshalText([]byte(strings.ToUpper(name))); err != nil {
		return 0, false
	}
	return key, true
}

// EbitenPoller copies ebiten's key state into a Keyboard once per tick.
// Only the watched keys are polled.
type EbitenPoller struct {
	Keyboard *Keyboard
	watched  map[string]ebiten.Key
}

// NewEbitenPoller watches the named keys. Unknown names are returned so
// the caller can report them.
func NewEbitenPoller(kb *Keyboard, names ...string) (*EbitenPoller, []string) {
	p := &EbitenPoller{Keyboard: kb, watched: make(map[string]ebiten.Key, len(names))}
	var unknown []string
	for _, name := range names {
		key, ok := EbitenKey(name)
		if !ok {
			unknown = append(unknown, name)
			continue
		}
		p.watched[name] = key
	}
	return p, unknown
}

func (p *EbitenPoller) Poll() {
	for name, key := range p.watched {
		if ebiten.IsKeyPressed(key) {
			p.Keyboard.Press(name)
		} else {
			p.Keyboard.Release(name)
		}
	}
}

// JustPressed reports whether the named key went down this tick.
func (p *EbitenPoller) JustPressed(name string) bool {
	key, ok := p.watched[name]
	if !ok {
		return false
	}
	return inpututil.IsKeyJustPressed(key)
}
