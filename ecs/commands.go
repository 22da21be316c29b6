package ecs

import "github.com/kamstrup/intmap"

// Commands buffers structural changes so they are applied between ticks and
// never while systems iterate over the entity list.
type Commands struct {
	deletes []*Entity
	pending *intmap.Map[EntityId, struct{}]
	defers  []func()
}

func newCommands() *Commands {
	return &Commands{pending: intmap.New[EntityId, struct{}](16)}
}

// Delete queues an entity for removal. Queuing the same entity twice is a
// no-op.
func (c *Commands) Delete(e *Entity) {
	if c.Pending(e) {
		return
	}
	c.deletes = append(c.deletes, e)
	c.pending.Put(e.id, struct{}{})
}

// Defer queues a function to run when the buffer is flushed.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Pending reports whether e is queued for removal.
func (c *Commands) Pending(e *Entity) bool {
	if e == nil {
		return false
	}
	_, ok := c.pending.Get(e.id)
	return ok
}

// Len returns the number of queued operations.
func (c *Commands) Len() int {
	return len(c.deletes) + len(c.defers)
}

// Flush applies all queued operations to the world and resets the buffer.
// Deletes are applied before deferred functions.
func (c *Commands) Flush(w *World) {
	deletes, defers := c.deletes, c.defers
	c.reset()

	if len(deletes) > 0 {
		w.removeNow(deletes)
	}
	for _, fn := range defers {
		fn()
	}
}

// reset drops queued operations without applying them.
func (c *Commands) reset() {
	c.deletes = nil
	c.defers = nil
	c.pending.Clear()
}
