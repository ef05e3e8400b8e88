package actor

import (
	"fmt"
	"math/rand"

	"github.com/likhithkanigolla/CAPS-IIITH/devs"
)

// New builds the behaviour for role. rng is only used by sensors.
func New(role Role, name string, p Params, rng *rand.Rand) (devs.Reactive, error) {
	if err := p.Validate(role); err != nil {
		return nil, fmt.Errorf("%s %q: %w", role, name, err)
	}
	switch role {
	case RoleSensor:
		return NewSensor(name, p, rng), nil
	case RoleActuator:
		return NewActuator(name, p), nil
	case RoleController:
		return NewController(name, p), nil
	case RoleInterface:
		return NewGateway(name, p), nil
	case RoleGeneric:
		return NewRelay(name, p), nil
	}
	return nil, fmt.Errorf("unknown role %q", role)
}
