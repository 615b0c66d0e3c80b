// pkg/event/event.go
package event

import (
	"sync"
)

// Type represents the type of event
type Type string

// Match event types
const (
	MatchStarted Type = "match_started"
	MatchStopped Type = "match_stopped"
	ServeStarted Type = "serve_started"
	PointScored  Type = "point_scored"
	ShotReleased Type = "shot_released"
	ChargeHealed Type = "charge_healed"
)

// Event is the base interface for all events
type Event interface {
	GetType() Type
	GetSource() interface{}
}

// BaseEvent provides common functionality for all events
type BaseEvent struct {
	EventType Type
	Source    interface{}
}

// GetType returns the event type
func (e *BaseEvent) GetType() Type {
	return e.EventType
}

// GetSource returns the event source
func (e *BaseEvent) GetSource() interface{} {
	return e.Source
}

// Handler is a function that handles events
type Handler func(Event)

type subscriber struct {
	id      uint64
	handler Handler
}

// Bus manages event subscriptions and dispatching. Handlers run synchronously
// on the publishing goroutine, in subscription order.
type Bus struct {
	handlers map[Type][]subscriber
	nextID   uint64
	mu       sync.RWMutex
}

// Subscription identifies a registered handler. Cancel removes it;
// cancelling twice is harmless.
type Subscription struct {
	ID     uint64
	Cancel func()
}

// NewEventBus creates a new event bus
func NewEventBus() *Bus {
	return &Bus{
		handlers: make(map[Type][]subscriber),
		nextID:   1,
	}
}

// Subscribe registers a handler for a specific event type
func (b *Bus) Subscribe(eventType Type, handler Handler) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.handlers[eventType] = append(b.handlers[eventType], subscriber{id: id, handler: handler})

	return &Subscription{
		ID:     id,
		Cancel: func() { b.unsubscribe(eventType, id) },
	}
}

func (b *Bus) unsubscribe(eventType Type, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.handlers[eventType]
	for i, sub := range subs {
		if sub.id == id {
			kept := make([]subscriber, 0, len(subs)-1)
			kept = append(kept, subs[:i]...)
			b.handlers[eventType] = append(kept, subs[i+1:]...)
			return
		}
	}
}

// HandlerCount returns the number of handlers registered for eventType.
func (b *Bus) HandlerCount(eventType Type) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.handlers[eventType])
}

// Publish sends an event to all subscribed handlers
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	subs, ok := b.handlers[event.GetType()]
	b.mu.RUnlock()

	if !ok {
		return
	}

	for _, sub := range subs {
		sub.handler(event)
	}
}

// Specific event implementations

// ScoreEvent reports a point.
type ScoreEvent struct {
	BaseEvent
	PlayerID uint64
	Total    int
	// BallX is where the ball landed.
	BallX float64
}

// NewScoreEvent creates a new score event
func NewScoreEvent(source interface{}, playerID uint64, total int, ballX float64) *ScoreEvent {
	return &ScoreEvent{
		BaseEvent: BaseEvent{
			EventType: PointScored,
			Source:    source,
		},
		PlayerID: playerID,
		Total:    total,
		BallX:    ballX,
	}
}

// PlayerEvent carries a player-related event: a released shot or a healed charge.
type PlayerEvent struct {
	BaseEvent
	PlayerID uint64
	// Value is the charge released or the out-of-range value that was healed.
	Value float64
	Angle float64
}

// NewPlayerEvent creates a new player event
func NewPlayerEvent(eventType Type, source interface{}, playerID uint64, value, angle float64) *PlayerEvent {
	return &PlayerEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		PlayerID: playerID,
		Value:    value,
		Angle:    angle,
	}
}

// MatchEvent carries a match lifecycle event.
type MatchEvent struct {
	BaseEvent
	MatchID string
	Tick    uint64
}

// NewMatchEvent creates a new match event
func NewMatchEvent(eventType Type, source interface{}, matchID string, tick uint64) *MatchEvent {
	return &MatchEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		MatchID: matchID,
		Tick:    tick,
	}
}
