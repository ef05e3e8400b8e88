package actor

import "github.com/likhithkanigolla/CAPS-IIITH/devs"

// GatewayState is the state of an interface actor.
type GatewayState struct {
	State
	Buffer    []any
	Sigma     devs.Time
	Forwarded int
}

// Gateway forwards each input after a fixed processing delay, wrapped in a
// processed envelope. Inputs arriving while busy queue in FIFO order.
type Gateway struct {
	Name   string
	params Params
	state  GatewayState
}

// NewGateway creates an idle gateway.
func NewGateway(name string, p Params) *Gateway {
	if p.Delay < 0 {
		p.Delay = DefaultGatewayDelay
	}
	return &Gateway{Name: name, params: p}
}

// State returns a copy of the current state.
func (g *Gateway) State() GatewayState {
	return g.state
}

// TimeAdvance returns the remaining processing delay of the buffer head.
func (g *Gateway) TimeAdvance() devs.Time {
	if len(g.state.Buffer) == 0 {
		return devs.Infinity
	}
	return g.state.Sigma
}

// InternalTransition drops the forwarded head and starts on the next item.
func (g *Gateway) InternalTransition(now devs.Time) {
	g.state.advanceTo(now)
	if len(g.state.Buffer) > 0 {
		g.state.Buffer = g.state.Buffer[1:]
		g.state.Forwarded++
	}
	g.state.Sigma = g.params.Delay
	g.syncPending()
}

// ExternalTransition buffers every input; an idle gateway starts its delay.
func (g *Gateway) ExternalTransition(now, elapsed devs.Time, inputs devs.Bag) {
	g.state.advanceTo(now)
	if len(g.state.Buffer) == 0 {
		g.state.Sigma = g.params.Delay
	} else {
		g.state.Sigma -= elapsed
		if g.state.Sigma < 0 {
			g.state.Sigma = 0
		}
	}
	for _, port := range bagPorts(inputs) {
		g.state.Buffer = append(g.state.Buffer, inputs[port])
	}
	g.syncPending()
}

// Output wraps the buffer head in a processed envelope on the first output port.
func (g *Gateway) Output() devs.Bag {
	if len(g.state.Buffer) == 0 || g.params.OutPorts == 0 {
		return nil
	}
	return devs.Bag{0: NewEnvelope(g.state.Buffer[0], float64(g.state.LastEventTime+g.state.Sigma))}
}

func (g *Gateway) syncPending() {
	if len(g.state.Buffer) == 0 {
		g.state.PendingOutput = nil
		return
	}
	g.state.PendingOutput = g.state.Buffer[0]
}
