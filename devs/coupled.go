package devs

import "fmt"

// Atomic is one actor instance inside a coupled model.
type Atomic struct {
	Name     string
	NumIn    int
	NumOut   int
	Behavior Behavior

	order int
}

// Order returns the position at which the actor was added to its model.
func (a *Atomic) Order() int {
	return a.order
}

// PortRef names one port on one actor.
type PortRef struct {
	Actor string
	Port  int
}

// Coupling connects an output port to an input port.
type Coupling struct {
	From PortRef
	To   PortRef
}

// Coupled is a network of atomic actors and the couplings between them.
type Coupled struct {
	Name string

	actors    []*Atomic
	byName    map[string]*Atomic
	couplings []Coupling
	fanout    map[PortRef][]PortRef
}

// NewCoupled creates an empty coupled model.
func NewCoupled(name string) *Coupled {
	return &Coupled{
		Name:   name,
		byName: make(map[string]*Atomic),
		fanout: make(map[PortRef][]PortRef),
	}
}

// AddActor registers an actor. Names must be unique within the model.
func (c *Coupled) AddActor(name string, numIn, numOut int, b Behavior) (*Atomic, error) {
	if b == nil {
		return nil, fmt.Errorf("actor %q: nil behavior", name)
	}
	if _, exists := c.byName[name]; exists {
		return nil, fmt.Errorf("actor %q already added to %s", name, c.Name)
	}
	if numIn < 0 || numOut < 0 {
		return nil, fmt.Errorf("actor %q: negative port count", name)
	}
	if numIn > 0 {
		if _, ok := b.(Reactive); !ok {
			return nil, fmt.Errorf("actor %q declares %d input ports but %T has no external transition", name, numIn, b)
		}
	}
	a := &Atomic{Name: name, NumIn: numIn, NumOut: numOut, Behavior: b, order: len(c.actors)}
	c.actors = append(c.actors, a)
	c.byName[name] = a
	return a, nil
}

// Connect couples output port fromPort of actor from to input port toPort
// of actor to.
func (c *Coupled) Connect(from string, fromPort int, to string, toPort int) error {
	src, ok := c.byName[from]
	if !ok {
		return fmt.Errorf("connect: unknown source actor %q", from)
	}
	dst, ok := c.byName[to]
	if !ok {
		return fmt.Errorf("connect: unknown target actor %q", to)
	}
	if fromPort < 0 || fromPort >= src.NumOut {
		return fmt.Errorf("connect: %s has no output port %d", from, fromPort)
	}
	if toPort < 0 || toPort >= dst.NumIn {
		return fmt.Errorf("connect: %s has no input port %d", to, toPort)
	}
	cp := Coupling{From: PortRef{Actor: from, Port: fromPort}, To: PortRef{Actor: to, Port: toPort}}
	c.couplings = append(c.couplings, cp)
	c.fanout[cp.From] = append(c.fanout[cp.From], cp.To)
	return nil
}

// Actor returns the actor registered under name, or nil.
func (c *Coupled) Actor(name string) *Atomic {
	return c.byName[name]
}

// Actors returns the actors in the order they were added.
func (c *Coupled) Actors() []*Atomic {
	return c.actors
}

// Couplings returns the couplings in the order they were declared.
func (c *Coupled) Couplings() []Coupling {
	return c.couplings
}

// Influencees returns the input ports fed by the given output port.
func (c *Coupled) Influencees(from PortRef) []PortRef {
	return c.fanout[from]
}

// Validate reports output ports with no coupling. A model in which every
// output port is coupled is well-connected.
func (c *Coupled) Validate() error {
	for _, a := range c.actors {
		for p := 0; p < a.NumOut; p++ {
			if len(c.fanout[PortRef{Actor: a.Name, Port: p}]) == 0 {
				return fmt.Errorf("%s: output port %d of %s is not coupled", c.Name, p, a.Name)
			}
		}
	}
	return nil
}
