package ecs

import "github.com/go-gl/mathgl/mgl64"

// Event is a generic world event payload.
type Event struct {
	Type string
	Data any
}

const EventThrow = "throw"

// ThrowEvent is emitted once per dice release.
type ThrowEvent struct {
	Charge  float64
	Origin  mgl64.Vec3
	Impulse mgl64.Vec3
}

// EventQueue is a simple FIFO queue drained once per frame by the game loop.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}
