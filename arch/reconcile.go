package arch

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/sirupsen/logrus"
)

// Matcher decides whether a hardware node describes a software component.
type Matcher interface {
	Match(component, node string) bool
}

// ContainmentMatcher matches when, with whitespace removed, either name
// contains the other. Comparison is case-sensitive.
type ContainmentMatcher struct{}

func (ContainmentMatcher) Match(component, node string) bool {
	c, n := stripSpace(component), stripSpace(node)
	if c == "" || n == "" {
		return c == n
	}
	return strings.Contains(c, n) || strings.Contains(n, c)
}

// ExactMatcher matches identical names after whitespace removal.
type ExactMatcher struct{}

func (ExactMatcher) Match(component, node string) bool {
	return stripSpace(component) == stripSpace(node)
}

// Matcher names accepted by NewMatcher.
const (
	MatcherContainment = "containment"
	MatcherExact       = "exact"
)

var validMatchers = map[string]bool{
	MatcherContainment: true,
	MatcherExact:       true,
	"":                 true, // empty defaults to containment
}

// IsValidMatcher reports whether name selects a known matcher.
func IsValidMatcher(name string) bool {
	return validMatchers[name]
}

// NewMatcher returns the matcher registered under name.
func NewMatcher(name string) (Matcher, error) {
	switch name {
	case "", MatcherContainment:
		return ContainmentMatcher{}, nil
	case MatcherExact:
		return ExactMatcher{}, nil
	}
	return nil, fmt.Errorf("unknown matcher %q; valid: containment, exact", name)
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// Binding ties a hardware node to the index of the record it merged into
// or created.
type Binding struct {
	Node      HardwareSpec
	Component int
}

// Reconcile merges hardware nodes onto software components. Each node is
// matched against the records present so far, in order; the first match
// takes the hardware detail and becomes "both". Unmatched nodes become new
// hardware-only records with one input and one output port. The inputs are
// not modified.
func Reconcile(sw []ComponentRecord, hw []HardwareSpec, m Matcher) ([]ComponentRecord, []Binding) {
	if m == nil {
		m = ContainmentMatcher{}
	}
	out := make([]ComponentRecord, len(sw), len(sw)+len(hw))
	copy(out, sw)
	bindings := make([]Binding, 0, len(hw))
	for _, node := range hw {
		spec := node
		idx := -1
		for i := range out {
			if m.Match(out[i].Name, node.Node) {
				idx = i
				break
			}
		}
		if idx >= 0 {
			logrus.Debugf("Node %q matched component %q", node.Node, out[idx].Name)
			out[idx].Hardware = &spec
			out[idx].Provenance = ProvenanceBoth
		} else {
			logrus.Debugf("Node %q has no software counterpart; creating component", node.Node)
			out = append(out, ComponentRecord{
				Name:     node.Node,
				InPorts:  []int{0},
				OutPorts: []int{0},
				Ports: []PortDecl{
					{Position: 0, Direction: DirectionInput, Index: 0},
					{Position: 1, Direction: DirectionOutput, Index: 0},
				},
				Hardware:   &spec,
				Provenance: ProvenanceHardware,
				Position:   -1,
			})
			idx = len(out) - 1
		}
		bindings = append(bindings, Binding{Node: spec, Component: idx})
	}
	return out, bindings
}
