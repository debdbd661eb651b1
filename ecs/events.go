package ecs

// Event is a generic ECS event payload.
type Event struct {
	Type string
	Data any
}

const (
	EventRaycastHit          = "raycast_hit"
	EventWaterSourceDepleted = "water_source_depleted"
)

// RaycastHit is the payload of EventRaycastHit.
type RaycastHit struct {
	Shooter Entity
	Target  Entity
	X, Y    float64
	Toi     float64
}

// EventQueue is a simple FIFO queue. Undrained events are dropped at the end
// of each scheduler pass.
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

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}
