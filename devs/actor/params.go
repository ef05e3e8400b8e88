package actor

import (
	"fmt"
	"math"

	"github.com/likhithkanigolla/CAPS-IIITH/devs"
)

// Default construction parameters per role.
const (
	DefaultSensorInterval devs.Time = 5.0
	DefaultGatewayDelay   devs.Time = 1.0
	DefaultValueField               = 2
)

// Params are the construction parameters of one actor.
type Params struct {
	InPorts  int
	OutPorts int

	// Interval between sensor readings, in seconds.
	Interval devs.Time
	// FanOut makes a sensor emit on every output port instead of the first.
	FanOut bool
	// Delay is the gateway processing delay, in seconds.
	Delay devs.Time
	// ValueField is the position of the numeric value in a reading's content.
	ValueField int
	// Conditions are evaluated in order; the first that holds wins.
	Conditions []Condition
}

// Validate checks the parameters required by role.
func (p Params) Validate(role Role) error {
	if p.InPorts < 0 || p.OutPorts < 0 {
		return fmt.Errorf("negative port count (in=%d, out=%d)", p.InPorts, p.OutPorts)
	}
	switch role {
	case RoleSensor:
		if err := validateFinitePositive("interval", p.Interval); err != nil {
			return err
		}
	case RoleInterface:
		if p.Delay < 0 || math.IsNaN(float64(p.Delay)) || p.Delay.IsInfinite() {
			return fmt.Errorf("delay must be a finite non-negative number, got %v", p.Delay)
		}
	case RoleController:
		if p.ValueField < 0 {
			return fmt.Errorf("value field must be non-negative, got %d", p.ValueField)
		}
		for i, c := range p.Conditions {
			if c.Action == "" {
				return fmt.Errorf("condition[%d] %q has no action", i, c.String())
			}
			if p.OutPorts > 0 && (c.Port < 0 || c.Port >= p.OutPorts) {
				return fmt.Errorf("condition[%d] targets output port %d; component has %d", i, c.Port, p.OutPorts)
			}
		}
	case RoleActuator, RoleGeneric:
	default:
		return fmt.Errorf("unknown role %q", role)
	}
	return nil
}

func validateFinitePositive(name string, val devs.Time) error {
	if math.IsNaN(float64(val)) || val.IsInfinite() {
		return fmt.Errorf("%s must be a finite number, got %v", name, val)
	}
	if val <= 0 {
		return fmt.Errorf("%s must be positive, got %v", name, val)
	}
	return nil
}
