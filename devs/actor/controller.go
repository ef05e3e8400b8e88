package actor

import (
	"github.com/sirupsen/logrus"

	"github.com/likhithkanigolla/CAPS-IIITH/devs"
)

// ControllerState is the state of a controller actor.
type ControllerState struct {
	State
	// OutPort is the output port the staged command goes to.
	OutPort   int
	LastValue float64
	Decision  string
}

// Controller evaluates threshold conditions against received readings and
// emits the matching command on the very next step.
type Controller struct {
	Name   string
	params Params
	state  ControllerState
}

// NewController creates an idle controller.
func NewController(name string, p Params) *Controller {
	return &Controller{Name: name, params: p}
}

// State returns a copy of the current state.
func (c *Controller) State() ControllerState {
	return c.state
}

// TimeAdvance is zero while a command is staged, infinite otherwise.
func (c *Controller) TimeAdvance() devs.Time {
	if c.state.PendingOutput == nil {
		return devs.Infinity
	}
	return 0
}

// InternalTransition clears the command that was just emitted.
func (c *Controller) InternalTransition(now devs.Time) {
	c.state.advanceTo(now)
	c.state.PendingOutput = nil
	c.state.Decision = ""
}

// ExternalTransition reads the value of the first input and stages the
// action of the first condition that holds. No match clears the stage.
func (c *Controller) ExternalTransition(now, elapsed devs.Time, inputs devs.Bag) {
	c.state.advanceTo(now)
	ports := bagPorts(inputs)
	if len(ports) == 0 {
		return
	}
	payload := inputs[ports[0]]
	value, err := ExtractValue(payload, c.params.ValueField)
	if err != nil {
		logrus.Warnf("[t=%010.3f] %s could not read value: %v", now, c.Name, err)
		c.clear()
		return
	}
	c.state.LastValue = value
	for _, cond := range c.params.Conditions {
		if !cond.Holds(value) {
			continue
		}
		content := ""
		if m, ok := Unwrap(payload).(*Message); ok {
			content = m.Content
		}
		c.state.Decision = cond.Action
		c.state.OutPort = cond.Port
		c.state.PendingOutput = &Message{
			Labels:    []string{c.Name},
			Command:   cond.Action,
			Content:   content,
			Timestamp: float64(now),
		}
		logrus.Debugf("[t=%010.3f] %s value %g matched %s", now, c.Name, value, cond)
		return
	}
	logrus.Debugf("[t=%010.3f] %s value %g in normal range: no action", now, c.Name, value)
	c.clear()
}

// Output emits the staged command on its selected port.
func (c *Controller) Output() devs.Bag {
	if c.state.PendingOutput == nil || c.state.OutPort >= c.params.OutPorts {
		return nil
	}
	return devs.Bag{c.state.OutPort: c.state.PendingOutput}
}

func (c *Controller) clear() {
	c.state.PendingOutput = nil
	c.state.Decision = ""
}
