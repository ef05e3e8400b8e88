package codegen

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/likhithkanigolla/CAPS-IIITH/arch"
	"github.com/likhithkanigolla/CAPS-IIITH/devs"
	"github.com/likhithkanigolla/CAPS-IIITH/devs/actor"
)

// Wire couples an output port to an input port.
type Wire struct {
	From     string
	FromPort int
	To       string
	ToPort   int
}

// Topology is the assembled network: every plan once, in extraction order.
// Each output port has either its resolved wires or exactly one sink wire.
type Topology struct {
	Name  string
	Plans []ActorPlan
	// Wires come from resolved connections.
	Wires []Wire
	// SinkWires cover every output port without a resolved wire; each uses
	// its own sink input port.
	SinkWires []Wire
	// Dropped lists connections that could not be wired.
	Dropped []error
}

// Assemble wires every resolved connection between synthesized plans,
// fan-out included, and routes each output port left without a wire to the
// sink. Fallback connections are not wired; repeated identical connections
// are wired once.
func Assemble(name string, plans []ActorPlan, conns []arch.ConnectionRecord) *Topology {
	t := &Topology{Name: name, Plans: plans}
	byName := make(map[string]*ActorPlan, len(plans))
	for i := range plans {
		byName[plans[i].Name()] = &plans[i]
	}
	wired := make(map[devs.PortRef]bool)
	seen := make(map[Wire]bool)

	for _, c := range conns {
		if c.Fallback {
			continue
		}
		if err := checkConnection(byName, c); err != nil {
			logrus.Warnf("Not wiring %v: %v", c, err)
			t.Dropped = append(t.Dropped, fmt.Errorf("%v: %w", c, err))
			continue
		}
		w := Wire{From: c.SourceComponent, FromPort: c.SourcePort, To: c.TargetComponent, ToPort: c.TargetPort}
		if seen[w] {
			logrus.Debugf("Connection %v repeats an existing wire", c)
			continue
		}
		seen[w] = true
		wired[devs.PortRef{Actor: w.From, Port: w.FromPort}] = true
		t.Wires = append(t.Wires, w)
	}

	for _, p := range plans {
		for port := 0; port < p.Params.OutPorts; port++ {
			if wired[devs.PortRef{Actor: p.Name(), Port: port}] {
				continue
			}
			t.SinkWires = append(t.SinkWires, Wire{From: p.Name(), FromPort: port, To: actor.SinkName, ToPort: len(t.SinkWires)})
		}
	}
	return t
}

func checkConnection(byName map[string]*ActorPlan, c arch.ConnectionRecord) error {
	src, ok := byName[c.SourceComponent]
	if !ok {
		return fmt.Errorf("source component %q was not synthesized", c.SourceComponent)
	}
	dst, ok := byName[c.TargetComponent]
	if !ok {
		return fmt.Errorf("target component %q was not synthesized", c.TargetComponent)
	}
	if c.SourcePort < 0 || c.SourcePort >= src.Params.OutPorts {
		return fmt.Errorf("%s has no output port %d", c.SourceComponent, c.SourcePort)
	}
	if c.TargetPort < 0 || c.TargetPort >= dst.Params.InPorts {
		return fmt.Errorf("%s has no input port %d", c.TargetComponent, c.TargetPort)
	}
	return nil
}

// AllWires returns the resolved wires followed by the sink wires.
func (t *Topology) AllWires() []Wire {
	out := make([]Wire, 0, len(t.Wires)+len(t.SinkWires))
	out = append(out, t.Wires...)
	return append(out, t.SinkWires...)
}

// HasSink reports whether any output port is routed to the sink.
func (t *Topology) HasSink() bool { return len(t.SinkWires) > 0 }

// Build instantiates the topology as a coupled model. Sensors draw from
// per-actor streams of a PartitionedRNG seeded with seed.
func (t *Topology) Build(seed int64) (*devs.Coupled, *actor.Sink, error) {
	rng := devs.NewPartitionedRNG(devs.NewSimulationKey(seed))
	m := devs.NewCoupled(t.Name)
	for _, p := range t.Plans {
		b, err := actor.New(p.Role, p.Name(), p.Params, rng.ForActor(p.Name()))
		if err != nil {
			return nil, nil, err
		}
		if _, err := m.AddActor(p.Name(), p.Params.InPorts, p.Params.OutPorts, b); err != nil {
			return nil, nil, err
		}
	}
	var sink *actor.Sink
	if t.HasSink() {
		sink = actor.NewSink()
		if _, err := m.AddActor(actor.SinkName, len(t.SinkWires), 0, sink); err != nil {
			return nil, nil, err
		}
	}
	for _, w := range t.AllWires() {
		if err := m.Connect(w.From, w.FromPort, w.To, w.ToPort); err != nil {
			return nil, nil, err
		}
	}
	if err := m.Validate(); err != nil {
		return nil, nil, err
	}
	return m, sink, nil
}
