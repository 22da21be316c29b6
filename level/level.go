// Package level describes puzzle levels, builds them into a world as two
// mirrored layers and sequences play through a pack of levels.
package level

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyPack    = errors.New("level: pack has no levels")
	ErrInvalidLevel = errors.New("level: invalid level")
	ErrLevelIndex   = errors.New("level: index out of range")
)

// Point is a position in world units.
type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Rect is an axis aligned box with its origin at the top left.
type Rect struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

// Level is a single puzzle, authored in left-layer coordinates. The right
// layer is derived from it by reflection.
type Level struct {
	ID    int    `yaml:"id"`
	Name  string `yaml:"name,omitempty"`
	Start Point  `yaml:"start"`
	Exit  Point  `yaml:"exit"`
	Walls []Rect `yaml:"walls"`
}

// Title is the display name of the level.
func (l *Level) Title() string {
	if l.Name != "" {
		return fmt.Sprintf("Level %d: %s", l.ID, l.Name)
	}
	return fmt.Sprintf("Level %d", l.ID)
}

// Validate reports a level with a non-positive id or a wall without area.
// Errors wrap ErrInvalidLevel.
func (l *Level) Validate() error {
	if l.ID <= 0 {
		return fmt.Errorf("%w: id %d must be positive", ErrInvalidLevel, l.ID)
	}
	for i, w := range l.Walls {
		if w.W <= 0 || w.H <= 0 {
			return fmt.Errorf("%w: level %d wall %d has size %gx%g", ErrInvalidLevel, l.ID, i, w.W, w.H)
		}
	}
	return nil
}

// Pack is an ordered list of levels played in sequence.
type Pack struct {
	Levels []*Level `yaml:"levels"`
}

// Len returns the number of levels in the pack.
func (p *Pack) Len() int {
	return len(p.Levels)
}

// At returns the level at index i.
func (p *Pack) At(i int) (*Level, error) {
	if i < 0 || i >= len(p.Levels) {
		return nil, fmt.Errorf("%w: %d of %d", ErrLevelIndex, i, len(p.Levels))
	}
	return p.Levels[i], nil
}

// Validate checks every level and rejects empty packs and duplicate ids.
func (p *Pack) Validate() error {
	if len(p.Levels) == 0 {
		return ErrEmptyPack
	}
	seen := make(map[int]bool, len(p.Levels))
	for _, l := range p.Levels {
		if l == nil {
			return fmt.Errorf("%w: nil level", ErrInvalidLevel)
		}
		if err := l.Validate(); err != nil {
			return err
		}
		if seen[l.ID] {
			return fmt.Errorf("%w: duplicate id %d", ErrInvalidLevel, l.ID)
		}
		seen[l.ID] = true
	}
	return nil
}
