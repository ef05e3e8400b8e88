package arch

import (
	"fmt"

	"github.com/likhithkanigolla/CAPS-IIITH/devs/actor"
)

// Direction of a port.
type Direction string

const (
	DirectionInput  Direction = "input"
	DirectionOutput Direction = "output"
)

// Provenance records which documents contributed a component.
type Provenance string

const (
	ProvenanceSoftware Provenance = "software-only"
	ProvenanceHardware Provenance = "hardware-only"
	ProvenanceBoth     Provenance = "both"
)

// PortDecl is one declared port.
type PortDecl struct {
	// Position is the index among all ports children, as used by reference paths.
	Position  int
	Direction Direction
	// Index is dense within Direction.
	Index int
}

// Behavior is one behavioural element declared under a component's modes.
type Behavior struct {
	// Kind is the type discriminator without its namespace prefix.
	Kind      string
	Name      string
	PeriodMs  int
	HasPeriod bool
	Condition string
}

// HardwareSpec is the hardware detail of one node.
type HardwareSpec struct {
	Node            string
	MACProtocol     string
	RoutingProtocol string
	Processor       string
	// Frequency is the attribute as declared; FrequencyHz is its parsed value,
	// zero when absent or unparseable.
	Frequency    string
	FrequencyHz  float64
	MemoryKind   string
	MemorySize   string
	MemorySizeKB float64
}

// ComponentRecord is one reconciled component.
type ComponentRecord struct {
	Name string
	Role actor.Role

	InPorts  []int
	OutPorts []int
	Ports    []PortDecl

	Behaviors []Behavior
	Hardware  *HardwareSpec

	// DataIntervalSeconds is set by a timer behaviour's period; zero means
	// the configured default applies.
	DataIntervalSeconds float64

	Provenance Provenance
	// Position is the index among SAElements; -1 for hardware-only records.
	Position int
}

// Interval returns the data interval, falling back to def when unset.
func (c ComponentRecord) Interval(def float64) float64 {
	if c.DataIntervalSeconds > 0 {
		return c.DataIntervalSeconds
	}
	return def
}

// HasInputs reports whether the component declares any input port.
func (c ComponentRecord) HasInputs() bool { return len(c.InPorts) > 0 }

// HasOutputs reports whether the component declares any output port.
func (c ComponentRecord) HasOutputs() bool { return len(c.OutPorts) > 0 }

// ConnectionRecord is one resolved or fallback connection.
type ConnectionRecord struct {
	SourceComponent string
	SourcePort      int
	SourceDirection Direction
	TargetComponent string
	TargetPort      int
	TargetDirection Direction

	// SourceTag and TargetTag carry "<mac>/<routing>" protocol tags on
	// fallback connections.
	SourceTag string
	TargetTag string
	Fallback  bool
}

func (c ConnectionRecord) String() string {
	if c.Fallback {
		return fmt.Sprintf("%s (%s) <-> %s (%s)", c.SourceComponent, c.SourceTag, c.TargetComponent, c.TargetTag)
	}
	return fmt.Sprintf("From: %s (Port %d - %s) -> To: %s (Port %d - %s)",
		c.SourceComponent, c.SourcePort, c.SourceDirection, c.TargetComponent, c.TargetPort, c.TargetDirection)
}
