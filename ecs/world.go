package ecs

import (
	"time"

	"github.com/kamstrup/intmap"
)

// World owns the live entities and the ordered list of systems.
type World struct {
	entities []*Entity
	index    *intmap.Map[EntityId, *Entity]
	nextId   EntityId

	systems     []System
	systemStats []*systemStatsInternal

	commands   *Commands
	generation uint64
}

// NewWorld creates an empty world.
func NewWorld() *World {
	return &World{
		index:    intmap.New[EntityId, *Entity](64),
		nextId:   1,
		commands: newCommands(),
	}
}

// CreateEntity allocates and registers an entity with no components.
func (w *World) CreateEntity() *Entity {
	e := &Entity{id: w.nextId}
	w.nextId++
	w.entities = append(w.entities, e)
	w.index.Put(e.id, e)
	return e
}

// RemoveEntity queues e for destruction at the start of the next Update.
// Removing an entity twice, or one that is no longer live, does nothing.
func (w *World) RemoveEntity(e *Entity) {
	if e == nil || !w.Alive(e) || w.commands.Pending(e) {
		return
	}
	w.commands.Delete(e)
}

// Defer runs fn at the start of the next Update, before systems.
func (w *World) Defer(fn func()) {
	w.commands.Defer(fn)
}

// IsPendingRemoval reports whether e is queued for destruction.
func (w *World) IsPendingRemoval(e *Entity) bool {
	return w.commands.Pending(e)
}

// Alive reports whether e is in the live set.
func (w *World) Alive(e *Entity) bool {
	if e == nil {
		return false
	}
	found, ok := w.index.Get(e.id)
	return ok && found == e
}

// Entity looks up a live entity by id.
func (w *World) Entity(id EntityId) (*Entity, bool) {
	return w.index.Get(id)
}

// Entities returns the live entities in insertion order. The slice must not
// be modified.
func (w *World) Entities() []*Entity {
	return w.entities
}

// Len returns the number of live entities.
func (w *World) Len() int {
	return len(w.entities)
}

// Generation is incremented by every Clear.
func (w *World) Generation() uint64 {
	return w.generation
}

// AddSystem appends s to the execution order and initializes it.
// It panics when s implements none of Initializer, Updater or Renderer.
func (w *World) AddSystem(s System) {
	_, isInit := s.(Initializer)
	_, isUpdate := s.(Updater)
	_, isRender := s.(Renderer)
	if !isInit && !isUpdate && !isRender {
		panic("ecs: system implements neither Update nor Render")
	}

	w.systems = append(w.systems, s)
	w.systemStats = append(w.systemStats, newSystemStats(s))

	if init, ok := s.(Initializer); ok {
		init.Init(w)
	}
}

// Systems returns the registered systems in execution order.
func (w *World) Systems() []System {
	return w.systems
}

// Update drains the pending removals, then runs every Updater in
// registration order.
func (w *World) Update(dt float64) {
	w.commands.Flush(w)

	for i, s := range w.systems {
		u, ok := s.(Updater)
		if !ok {
			continue
		}
		start := time.Now()
		u.Update(dt)
		w.systemStats[i].update.record(time.Since(start))
	}
}

// Render runs every Renderer in registration order.
func (w *World) Render(alpha float64) {
	for i, s := range w.systems {
		r, ok := s.(Renderer)
		if !ok {
			continue
		}
		start := time.Now()
		r.Render(alpha)
		w.systemStats[i].render.record(time.Since(start))
	}
}

// EntitiesWith returns the live entities carrying every listed kind, in
// insertion order. Entities queued for removal stay visible until the next
// Update drains them.
func (w *World) EntitiesWith(kinds ...Kind) []*Entity {
	out := make([]*Entity, 0, len(w.entities))
	for _, e := range w.entities {
		if e.HasAll(kinds...) {
			out = append(out, e)
		}
	}
	return out
}

// Each calls fn for every live entity carrying every listed kind, stopping
// when fn returns false. It does not allocate.
func (w *World) Each(fn func(*Entity) bool, kinds ...Kind) {
	for _, e := range w.entities {
		if e.HasAll(kinds...) && !fn(e) {
			return
		}
	}
}

// Clear drops every entity immediately, along with pending removals.
// Systems are kept.
func (w *World) Clear() {
	clear(w.entities)
	w.entities = w.entities[:0]
	w.index.Clear()
	w.commands.reset()
	w.generation++
}

func (w *World) removeNow(doomed []*Entity) {
	drop := intmap.New[EntityId, struct{}](len(doomed))
	for _, e := range doomed {
		if w.Alive(e) {
			drop.Put(e.id, struct{}{})
			w.index.Del(e.id)
		}
	}
	if drop.Len() == 0 {
		return
	}

	kept := w.entities[:0]
	for _, e := range w.entities {
		if _, gone := drop.Get(e.id); !gone {
			kept = append(kept, e)
		}
	}
	clear(w.entities[len(kept):])
	w.entities = kept
}
