package ecs

import "strconv"

// EntityId is an opaque identifier, unique within a World. Zero is never
// handed out.
type EntityId uint64

func (id EntityId) String() string {
	return "#" + strconv.FormatUint(uint64(id), 10)
}

// Entity is an identity plus at most one component of each kind.
// Entities are created and owned by a World.
type Entity struct {
	id         EntityId
	components [kindCount]Component
}

// Id returns the entity identifier.
func (e *Entity) Id() EntityId {
	return e.id
}

// AddComponent stores c under its kind, replacing any existing component of
// that kind. It returns the entity so construction can be chained.
func (e *Entity) AddComponent(c Component) *Entity {
	e.components[c.Kind()] = c
	return e
}

// RemoveComponent drops the component of the given kind, if any.
func (e *Entity) RemoveComponent(k Kind) {
	if k < kindCount {
		e.components[k] = nil
	}
}

// GetComponent returns the component of the given kind or nil.
// A nil result means the entity does not take part in that behavior.
func (e *Entity) GetComponent(k Kind) Component {
	if k >= kindCount {
		return nil
	}
	return e.components[k]
}

// HasComponent reports whether the entity carries a component of kind k.
func (e *Entity) HasComponent(k Kind) bool {
	return k < kindCount && e.components[k] != nil
}

// HasAll reports whether the entity carries every listed kind.
func (e *Entity) HasAll(kinds ...Kind) bool {
	for _, k := range kinds {
		if !e.HasComponent(k) {
			return false
		}
	}
	return true
}

// Kinds returns the kinds present on the entity in ordinal order.
func (e *Entity) Kinds() []Kind {
	kinds := make([]Kind, 0, kindCount)
	for k, c := range e.components {
		if c != nil {
			kinds = append(kinds, Kind(k))
		}
	}
	return kinds
}

// Get returns the typed component of the entity, or nil when absent.
//
//	t := ecs.Get[ecs.Transform](e)
func Get[T any, P interface {
	*T
	Component
}](e *Entity) *T {
	if e == nil {
		return nil
	}
	var probe P
	c := e.components[probe.Kind()]
	if c == nil {
		return nil
	}
	p, ok := c.(P)
	if !ok {
		return nil
	}
	return (*T)(p)
}
