package ecs

import "image/color"

// Kind identifies a component type. The set of kinds is closed: every
// component an entity can carry is declared here, which lets entities keep
// their components in a fixed-size array indexed by kind.
type Kind uint8

const (
	KindTransform Kind = iota
	KindVelocity
	KindSprite
	KindCollider
	KindPlayerControl
	KindMirrorMovement
	KindWorldLayer

	kindCount
)

var kindNames = [kindCount]string{
	KindTransform:      "Transform",
	KindVelocity:       "Velocity",
	KindSprite:         "Sprite",
	KindCollider:       "Collider",
	KindPlayerControl:  "PlayerControl",
	KindMirrorMovement: "MirrorMovement",
	KindWorldLayer:     "WorldLayer",
}

func (k Kind) String() string {
	if k >= kindCount {
		return "Kind(?)"
	}
	return kindNames[k]
}

// AllKinds returns every component kind in ordinal order.
func AllKinds() []Kind {
	kinds := make([]Kind, kindCount)
	for i := range kinds {
		kinds[i] = Kind(i)
	}
	return kinds
}

// Component is a plain data holder. Components never read each other;
// coupling between them lives in systems.
type Component interface {
	Kind() Kind
}

// Transform places an entity in its world layer.
type Transform struct {
	Position Vector2
	Scale    Vector2
	Rotation float64

	// Previous is the position at the start of the current fixed step,
	// used to interpolate rendering between steps.
	Previous Vector2
}

// NewTransform returns a transform at (x, y) with unit scale.
func NewTransform(x, y float64) *Transform {
	pos := Vec2(x, y)
	return &Transform{
		Position: pos,
		Scale:    Vec2(1, 1),
		Previous: pos,
	}
}

func (*Transform) Kind() Kind { return KindTransform }

// Velocity is expressed in world units per second.
type Velocity struct {
	Velocity Vector2
}

func (*Velocity) Kind() Kind { return KindVelocity }

// Sprite is drawn as a filled rectangle.
type Sprite struct {
	Color   color.RGBA
	Width   float64
	Height  float64
	Visible bool
}

// NewSprite returns a visible sprite.
func NewSprite(c color.RGBA, width, height float64) *Sprite {
	return &Sprite{Color: c, Width: width, Height: height, Visible: true}
}

func (*Sprite) Kind() Kind { return KindSprite }

// Tag classifies colliders. It is an open set; the constants below are the
// tags the physics system understands.
type Tag string

const (
	TagPlayer   Tag = "player"
	TagWall     Tag = "wall"
	TagExit     Tag = "exit"
	TagHazard   Tag = "hazard"
	TagObstacle Tag = "obstacle"
)

// Collider is an axis-aligned box anchored at the transform position.
// Trigger colliders are detected but never block.
type Collider struct {
	Width     float64
	Height    float64
	IsTrigger bool
	Tag       Tag
}

// NewCollider returns a collider, defaulting an empty tag to TagObstacle.
func NewCollider(width, height float64, isTrigger bool, tag Tag) *Collider {
	if tag == "" {
		tag = TagObstacle
	}
	return &Collider{Width: width, Height: height, IsTrigger: isTrigger, Tag: tag}
}

func (*Collider) Kind() Kind { return KindCollider }

// DefaultPlayerSpeed is the movement speed in world units per second.
const DefaultPlayerSpeed = 200

// PlayerControl marks an entity as driven by keyboard input.
type PlayerControl struct {
	PlayerIndex int
	Speed       float64
}

// NewPlayerControl returns a control component with the default speed.
func NewPlayerControl(playerIndex int) *PlayerControl {
	return &PlayerControl{PlayerIndex: playerIndex, Speed: DefaultPlayerSpeed}
}

func (*PlayerControl) Kind() Kind { return KindPlayerControl }

// MirrorMovement inverts the input axes of a player.
type MirrorMovement struct {
	InvertX bool
	InvertY bool
}

func (*MirrorMovement) Kind() Kind { return KindMirrorMovement }

// Layer is one of the two mirror worlds.
type Layer uint8

const (
	LayerLeft Layer = iota
	LayerRight
)

// Layers lists both layers in draw order.
var Layers = [...]Layer{LayerLeft, LayerRight}

func (l Layer) String() string {
	switch l {
	case LayerLeft:
		return "left"
	case LayerRight:
		return "right"
	default:
		return "Layer(?)"
	}
}

// WorldLayer assigns an entity to a mirror world. It selects both the render
// target and the collision partition.
type WorldLayer struct {
	Layer Layer
}

func (*WorldLayer) Kind() Kind { return KindWorldLayer }
