package ecs

// System is any value implementing at least one of Initializer, Updater or
// Renderer. Systems are level independent: they survive World.Clear.
type System any

// Initializer is called once by World.AddSystem with the owning world.
type Initializer interface {
	Init(world *World)
}

// Updater advances simulation state by one fixed step of dt seconds.
type Updater interface {
	Update(dt float64)
}

// Renderer draws the current state. alpha is the fraction of a fixed step
// accumulated since the last update, in [0, 1).
type Renderer interface {
	Render(alpha float64)
}

// BaseSystem keeps the back-reference to the world. Embed it to get Init
// for free.
type BaseSystem struct {
	World *World
}

// Init implements Initializer.
func (b *BaseSystem) Init(world *World) {
	b.World = world
}
