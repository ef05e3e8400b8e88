package actor

import (
	"fmt"
	"regexp"
	"strconv"
)

// Condition is one threshold rule of a controller.
type Condition struct {
	Variable  string
	Operator  string
	Threshold float64
	Action    string
	Port      int
}

var conditionPattern = regexp.MustCompile(`^\s*([A-Za-z_]\w*)?\s*(>=|<=|==|!=|>|<)\s*(-?\d+(?:\.\d+)?)\s*(?:(?:->|→)\s*(\w+))?\s*$`)

// ParseCondition parses "value > 25" or "value > 25 -> open". The variable
// defaults to "value"; the action is empty when not given.
func ParseCondition(expr string) (Condition, error) {
	m := conditionPattern.FindStringSubmatch(expr)
	if m == nil {
		return Condition{}, fmt.Errorf("malformed condition %q", expr)
	}
	threshold, err := strconv.ParseFloat(m[3], 64)
	if err != nil {
		return Condition{}, fmt.Errorf("condition %q: %w", expr, err)
	}
	c := Condition{Variable: m[1], Operator: m[2], Threshold: threshold, Action: m[4]}
	if c.Variable == "" {
		c.Variable = "value"
	}
	return c, nil
}

// Holds evaluates the condition against v.
func (c Condition) Holds(v float64) bool {
	switch c.Operator {
	case ">":
		return v > c.Threshold
	case ">=":
		return v >= c.Threshold
	case "<":
		return v < c.Threshold
	case "<=":
		return v <= c.Threshold
	case "==":
		return v == c.Threshold
	case "!=":
		return v != c.Threshold
	}
	return false
}

func (c Condition) String() string {
	return fmt.Sprintf("%s %s %g -> %s", c.Variable, c.Operator, c.Threshold, c.Action)
}
