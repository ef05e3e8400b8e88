package actor

import (
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/likhithkanigolla/CAPS-IIITH/devs"
)

// ActuatorState is the state of an actuator actor.
type ActuatorState struct {
	State
	Actuated bool
	Commands int
	Rejected int
}

// Actuator is purely reactive: commands toggle its actuated flag.
type Actuator struct {
	Name   string
	params Params
	state  ActuatorState
}

// NewActuator creates an idle actuator.
func NewActuator(name string, p Params) *Actuator {
	return &Actuator{Name: name, params: p}
}

// State returns a copy of the current state.
func (a *Actuator) State() ActuatorState {
	return a.state
}

// TimeAdvance is always infinite.
func (a *Actuator) TimeAdvance() devs.Time {
	return devs.Infinity
}

// InternalTransition is unreachable for a passive actor.
func (a *Actuator) InternalTransition(now devs.Time) {
	a.state.advanceTo(now)
}

// ExternalTransition applies each received command in port order.
// Unparseable commands are logged and leave the state unchanged.
func (a *Actuator) ExternalTransition(now, elapsed devs.Time, inputs devs.Bag) {
	a.state.advanceTo(now)
	for _, port := range bagPorts(inputs) {
		actuated, err := ParseCommand(inputs[port], a.state.Actuated)
		if err != nil {
			a.state.Rejected++
			logrus.Warnf("[t=%010.3f] %s ignored command on port %d: %v", now, a.Name, port, err)
			continue
		}
		a.state.Commands++
		a.state.Actuated = actuated
		logrus.Debugf("[t=%010.3f] %s actuated=%v", now, a.Name, actuated)
	}
}

// Output produces nothing.
func (a *Actuator) Output() devs.Bag {
	return nil
}

func bagPorts(b devs.Bag) []int {
	ports := make([]int, 0, len(b))
	for p := range b {
		ports = append(ports, p)
	}
	sort.Ints(ports)
	return ports
}
