package actor

import "github.com/likhithkanigolla/CAPS-IIITH/devs"

// RelayState is the state of a generic actor.
type RelayState struct {
	State
	Buffer []any
}

// Relay is the generic behaviour: inputs are forwarded unchanged on the
// first output port at the next step.
type Relay struct {
	Name   string
	params Params
	state  RelayState
}

// NewRelay creates an idle relay.
func NewRelay(name string, p Params) *Relay {
	return &Relay{Name: name, params: p}
}

// State returns a copy of the current state.
func (r *Relay) State() RelayState {
	return r.state
}

func (r *Relay) TimeAdvance() devs.Time {
	if len(r.state.Buffer) == 0 {
		return devs.Infinity
	}
	return 0
}

func (r *Relay) InternalTransition(now devs.Time) {
	r.state.advanceTo(now)
	if len(r.state.Buffer) > 0 {
		r.state.Buffer = r.state.Buffer[1:]
	}
	r.syncPending()
}

func (r *Relay) ExternalTransition(now, elapsed devs.Time, inputs devs.Bag) {
	r.state.advanceTo(now)
	for _, port := range bagPorts(inputs) {
		r.state.Buffer = append(r.state.Buffer, inputs[port])
	}
	r.syncPending()
}

func (r *Relay) Output() devs.Bag {
	if len(r.state.Buffer) == 0 || r.params.OutPorts == 0 {
		return nil
	}
	return devs.Bag{0: r.state.Buffer[0]}
}

func (r *Relay) syncPending() {
	r.state.PendingOutput = nil
	if len(r.state.Buffer) > 0 {
		r.state.PendingOutput = r.state.Buffer[0]
	}
}
