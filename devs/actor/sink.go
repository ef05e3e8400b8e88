package actor

import (
	"github.com/sirupsen/logrus"

	"github.com/likhithkanigolla/CAPS-IIITH/devs"
)

// SinkName is the actor name of the shared terminal sink.
const SinkName = "Sink"

// Sink accepts and discards any payload.
type Sink struct {
	Received int
}

// NewSink creates the terminal sink.
func NewSink() *Sink {
	return &Sink{}
}

func (s *Sink) TimeAdvance() devs.Time           { return devs.Infinity }
func (s *Sink) InternalTransition(now devs.Time) {}
func (s *Sink) Output() devs.Bag                 { return nil }

func (s *Sink) ExternalTransition(now, elapsed devs.Time, inputs devs.Bag) {
	for _, port := range bagPorts(inputs) {
		s.Received++
		logrus.Debugf("[t=%010.3f] Sink received: %v", now, inputs[port])
	}
}
