package arch

import (
	"strings"

	"github.com/likhithkanigolla/CAPS-IIITH/devs/actor"
)

// Layer is the precedence layer a rule belongs to.
type Layer int

const (
	LayerNaming Layer = iota
	LayerBehavior
	LayerCardinality
	LayerDefault
)

func (l Layer) String() string {
	switch l {
	case LayerNaming:
		return "naming"
	case LayerBehavior:
		return "behaviour"
	case LayerCardinality:
		return "cardinality"
	}
	return "default"
}

// ClassificationRule maps a pure predicate over a component to a role.
type ClassificationRule struct {
	Name  string
	Layer Layer
	Role  actor.Role
	Match func(ComponentRecord) bool
}

// DefaultRules returns the rule list in precedence order: naming
// conventions, then behaviour keywords, then port cardinality, then generic.
func DefaultRules() []ClassificationRule {
	return []ClassificationRule{
		{"sensor-name", LayerNaming, actor.RoleSensor, nameContains("sensor", "temperature", "humid")},
		{"actuator-name", LayerNaming, actor.RoleActuator, nameContains("actuator", "window", "fan", "valve")},
		{"controller-name", LayerNaming, actor.RoleController, nameContains("controller", "control")},
		{"interface-name", LayerNaming, actor.RoleInterface, nameContains("server", "gateway", "interface")},

		{"sense-behaviour", LayerBehavior, actor.RoleSensor, behaviorMatches(func(b Behavior) bool {
			return strings.Contains(b.Kind, "Sense") || isTimer(b)
		})},
		{"actuate-behaviour", LayerBehavior, actor.RoleActuator, behaviorKindContains("Actuate")},
		{"choice-behaviour", LayerBehavior, actor.RoleController, behaviorKindContains("Choice", "Branch")},
		{"server-behaviour", LayerBehavior, actor.RoleInterface, behaviorKindContains("Server", "Respond")},

		{"outputs-only", LayerCardinality, actor.RoleSensor, func(c ComponentRecord) bool {
			return c.HasOutputs() && !c.HasInputs()
		}},
		{"inputs-only", LayerCardinality, actor.RoleActuator, func(c ComponentRecord) bool {
			return c.HasInputs() && !c.HasOutputs()
		}},
		{"inputs-and-outputs", LayerCardinality, actor.RoleController, func(c ComponentRecord) bool {
			return c.HasInputs() && c.HasOutputs()
		}},

		{"generic", LayerDefault, actor.RoleGeneric, func(ComponentRecord) bool { return true }},
	}
}

func behaviorMatches(pred func(Behavior) bool) func(ComponentRecord) bool {
	return func(c ComponentRecord) bool {
		for _, b := range c.Behaviors {
			if pred(b) {
				return true
			}
		}
		return false
	}
}

func behaviorKindContains(words ...string) func(ComponentRecord) bool {
	return behaviorMatches(func(b Behavior) bool {
		for _, w := range words {
			if strings.Contains(b.Kind, w) {
				return true
			}
		}
		return false
	})
}

func nameContains(words ...string) func(ComponentRecord) bool {
	return func(c ComponentRecord) bool {
		lower := strings.ToLower(c.Name)
		for _, w := range words {
			if strings.Contains(lower, w) {
				return true
			}
		}
		return false
	}
}

// Classifier assigns roles using an ordered rule list; the first rule that
// matches wins.
type Classifier struct {
	Rules []ClassificationRule
}

// NewClassifier returns a classifier over DefaultRules.
func NewClassifier() *Classifier {
	return &Classifier{Rules: DefaultRules()}
}

// Classify returns the role of c and the rule that decided it. c is not
// modified.
func (cl *Classifier) Classify(c ComponentRecord) (actor.Role, ClassificationRule) {
	for _, r := range cl.Rules {
		if r.Match(c) {
			return r.Role, r
		}
	}
	return actor.RoleGeneric, ClassificationRule{Name: "generic", Layer: LayerDefault, Role: actor.RoleGeneric}
}

// ClassifyAll returns a copy of components with Role set on each.
func (cl *Classifier) ClassifyAll(components []ComponentRecord) []ComponentRecord {
	out := make([]ComponentRecord, len(components))
	for i, c := range components {
		c.Role, _ = cl.Classify(c)
		out[i] = c
	}
	return out
}
