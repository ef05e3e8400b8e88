package codegen

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/likhithkanigolla/CAPS-IIITH/arch"
)

var summaryTmpl = template.Must(template.New("summary").Parse(summaryTemplate))

// Summary is the content of the README written next to the generated code.
type Summary struct {
	Name         string
	RunID        string
	GeneratedAt  string
	SoftwarePath string
	HardwarePath string
	Seed         int64

	Plans     []ActorPlan
	Wires     []Wire
	SinkWires []Wire
	Fallback  []arch.ConnectionRecord
	// Problems are dropped connections and failed components, one line each.
	Problems []string
}

// HardwareSection renders the hardware detail block of one plan, or "".
func (s Summary) HardwareSection(p ActorPlan) string {
	hw := p.Component.Hardware
	if hw == nil {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "### %s hardware\n\n", p.Name())
	fmt.Fprintf(&b, "- Node: %s\n", hw.Node)
	if hw.Processor != "" {
		fmt.Fprintf(&b, "- Processor: %s\n", hw.Processor)
		fmt.Fprintf(&b, "  - Frequency: %s\n", describeFrequency(hw))
	}
	if hw.MemoryKind != "" {
		fmt.Fprintf(&b, "- Memory: %s\n", hw.MemoryKind)
		fmt.Fprintf(&b, "  - Size: %s\n", describeMemory(hw))
	}
	fmt.Fprintf(&b, "- MAC protocol: %s\n", hw.MACProtocol)
	fmt.Fprintf(&b, "- Routing protocol: %s\n", hw.RoutingProtocol)
	return b.String()
}

// RenderSummary renders the README.
func RenderSummary(s Summary) ([]byte, error) {
	var buf bytes.Buffer
	if err := summaryTmpl.Execute(&buf, s); err != nil {
		return nil, fmt.Errorf("render summary: %w", err)
	}
	return buf.Bytes(), nil
}
