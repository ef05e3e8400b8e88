package actor

import (
	"math/rand"
	"strings"

	"github.com/likhithkanigolla/CAPS-IIITH/devs"
)

// SensorState is the state of a sensor actor.
type SensorState struct {
	State
	// Sigma is the time left until the next reading is emitted.
	Sigma    devs.Time
	Readings int
}

// Sensor emits a synthetic reading every Interval seconds.
type Sensor struct {
	Name   string
	params Params
	state  SensorState
	rng    *rand.Rand

	low, high float64
}

// NewSensor creates a sensor with its first reading already staged.
func NewSensor(name string, p Params, rng *rand.Rand) *Sensor {
	if p.Interval <= 0 {
		p.Interval = DefaultSensorInterval
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	s := &Sensor{Name: name, params: p, rng: rng, low: 0, high: 100}
	if strings.Contains(strings.ToLower(name), "temperature") {
		s.low, s.high = 15, 30
	}
	s.state.Sigma = p.Interval
	s.state.PendingOutput = s.reading()
	return s
}

// State returns a copy of the current state.
func (s *Sensor) State() SensorState {
	return s.state
}

// TimeAdvance returns the time to the next reading while one is staged.
func (s *Sensor) TimeAdvance() devs.Time {
	if s.state.PendingOutput == nil {
		return devs.Infinity
	}
	return s.state.Sigma
}

// InternalTransition advances the clock by one interval and stages a new reading.
func (s *Sensor) InternalTransition(now devs.Time) {
	s.state.LastEventTime += s.params.Interval
	s.state.Sigma = s.params.Interval
	s.state.Readings++
	s.state.PendingOutput = s.reading()
}

// ExternalTransition keeps the pending schedule; sensors ignore input.
func (s *Sensor) ExternalTransition(now, elapsed devs.Time, inputs devs.Bag) {
	s.state.Sigma -= elapsed
	if s.state.Sigma < 0 {
		s.state.Sigma = 0
	}
}

// Output emits the staged reading on the first output port, or on all of
// them when fan-out is enabled.
func (s *Sensor) Output() devs.Bag {
	if s.state.PendingOutput == nil || s.params.OutPorts == 0 {
		return nil
	}
	out := devs.Bag{0: s.state.PendingOutput}
	if s.params.FanOut {
		for p := 1; p < s.params.OutPorts; p++ {
			out[p] = s.state.PendingOutput
		}
	}
	return out
}

func (s *Sensor) reading() *Message {
	value := s.low + s.rng.Float64()*(s.high-s.low)
	return NewReading(s.Name, float64(s.state.LastEventTime+s.params.Interval), value)
}
