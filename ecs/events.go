package ecs

// EventType names an event on the bus.
type EventType string

const (
	EventLevelCompleted EventType = "level_completed"
	EventCollision      EventType = "collision"
	EventPlayerMoved    EventType = "player_moved"
	EventGameOver       EventType = "game_over"
)

// Event is anything published on the bus.
type Event interface {
	Type() EventType
}

// LevelCompleted is published when every player stands in an exit.
type LevelCompleted struct {
	Generation uint64
}

func (LevelCompleted) Type() EventType { return EventLevelCompleted }

// Collision is published when a player is pushed out of a wall.
type Collision struct {
	Player EntityId
	Other  EntityId
	Layer  Layer
	Push   Vector2
}

func (Collision) Type() EventType { return EventCollision }

// PlayerMoved is published when a player ends a step at a new position.
type PlayerMoved struct {
	Player   EntityId
	From, To Vector2
}

func (PlayerMoved) Type() EventType { return EventPlayerMoved }

// GameOver is published after the last level of a pack is completed.
type GameOver struct {
	Runs int
}

func (GameOver) Type() EventType { return EventGameOver }

// EventHandler processes one event.
type EventHandler func(Event)

// Subscription identifies a handler registration.
type Subscription struct {
	eventType EventType
	id        uint64
}

type subscriber struct {
	id      uint64
	handler EventHandler
}

// EventBus is a synchronous publish/subscribe hub. Publish calls every
// handler before returning; there is no queue.
type EventBus struct {
	subscribers map[EventType][]subscriber
	nextId      uint64
}

// NewEventBus creates an empty bus.
func NewEventBus() *EventBus {
	return &EventBus{
		subscribers: make(map[EventType][]subscriber),
	}
}

// Subscribe registers handler for eventType.
func (b *EventBus) Subscribe(eventType EventType, handler EventHandler) Subscription {
	b.nextId++
	b.subscribers[eventType] = append(b.subscribers[eventType], subscriber{id: b.nextId, handler: handler})
	return Subscription{eventType: eventType, id: b.nextId}
}

// Unsubscribe removes a registration. Unknown subscriptions are ignored.
func (b *EventBus) Unsubscribe(sub Subscription) {
	subs := b.subscribers[sub.eventType]
	for i, s := range subs {
		if s.id != sub.id {
			continue
		}
		// Copy so an in-flight Publish keeps iterating its own slice.
		next := make([]subscriber, 0, len(subs)-1)
		next = append(next, subs[:i]...)
		next = append(next, subs[i+1:]...)
		if len(next) == 0 {
			delete(b.subscribers, sub.eventType)
		} else {
			b.subscribers[sub.eventType] = next
		}
		return
	}
}

// Publish dispatches event to the handlers subscribed to its type, in
// subscription order.
func (b *EventBus) Publish(event Event) {
	subs := b.subscribers[event.Type()]
	for _, s := range subs {
		s.handler(event)
	}
}

// HandlerCount returns the number of handlers registered for eventType.
func (b *EventBus) HandlerCount(eventType EventType) int {
	return len(b.subscribers[eventType])
}
