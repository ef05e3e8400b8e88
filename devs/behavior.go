package devs

import "math"

// Time is simulated time in seconds. It doubles as a duration.
type Time float64

// Infinity is the time advance of a passive actor.
var Infinity = Time(math.Inf(1))

// IsInfinite reports whether t is the passive time advance.
func (t Time) IsInfinite() bool {
	return math.IsInf(float64(t), 1)
}

// Bag maps a port index to the payload carried on that port in one step.
type Bag map[int]any

// Behavior is the part of the actor contract every actor implements.
//
// TimeAdvance is measured from the actor's most recent transition.
// Output is called immediately before InternalTransition.
type Behavior interface {
	TimeAdvance() Time
	InternalTransition(now Time)
	Output() Bag
}

// Reactive is a Behavior that accepts input. Actors without input ports
// only need to implement Behavior.
type Reactive interface {
	Behavior
	ExternalTransition(now, elapsed Time, inputs Bag)
}
