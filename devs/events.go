package devs

// EventType classifies scheduled events.
type EventType string

const (
	// EventTypeInternal fires an actor's output function and internal transition.
	EventTypeInternal EventType = "Internal"
)

// Event is a pending entry in the simulator's event heap.
type Event interface {
	Timestamp() Time
	EventID() uint64
	Type() EventType
	// Priority orders simultaneous events; lower fires first.
	Priority() int
}

// BaseEvent provides common event fields
type BaseEvent struct {
	timestamp Time
	eventID   uint64
	eventType EventType
}

func newBaseEvent(timestamp Time, id uint64, eventType EventType) BaseEvent {
	return BaseEvent{
		timestamp: timestamp,
		eventID:   id,
		eventType: eventType,
	}
}

func (e *BaseEvent) Timestamp() Time {
	return e.timestamp
}

func (e *BaseEvent) EventID() uint64 {
	return e.eventID
}

func (e *BaseEvent) Type() EventType {
	return e.eventType
}

// InternalEvent schedules an actor's next internal transition.
// generation lets the simulator discard events superseded by a reschedule.
type InternalEvent struct {
	BaseEvent
	Actor      *Atomic
	generation uint64
}

// NewInternalEvent creates an internal event for actor at timestamp.
func NewInternalEvent(timestamp Time, id uint64, actor *Atomic, generation uint64) *InternalEvent {
	return &InternalEvent{
		BaseEvent:  newBaseEvent(timestamp, id, EventTypeInternal),
		Actor:      actor,
		generation: generation,
	}
}

// Priority is the actor's declaration order.
func (e *InternalEvent) Priority() int {
	return e.Actor.order
}
