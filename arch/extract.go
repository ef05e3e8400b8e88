package arch

import (
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

const unknown = "Unknown"

// ExtractSoftware returns one record per SAElements element typed Component,
// in document order.
func ExtractSoftware(doc *Document) []ComponentRecord {
	var out []ComponentRecord
	for i, el := range doc.Select("SAElements") {
		if !strings.Contains(el.TypeName(), "Component") {
			continue
		}
		rec := ComponentRecord{
			Name:       el.Attr("name"),
			Provenance: ProvenanceSoftware,
			Position:   i,
		}
		extractPorts(el, &rec)
		extractBehaviors(el, &rec)
		logrus.Debugf("Extracted component %q: in=%v out=%v behaviours=%d", rec.Name, rec.InPorts, rec.OutPorts, len(rec.Behaviors))
		out = append(out, rec)
	}
	return out
}

func extractPorts(el *Element, rec *ComponentRecord) {
	rec.InPorts = []int{}
	rec.OutPorts = []int{}
	for j, port := range el.Elements("ports") {
		typ := port.TypeName()
		switch {
		case strings.Contains(typ, "InMessagePort"):
			idx := len(rec.InPorts)
			rec.InPorts = append(rec.InPorts, idx)
			rec.Ports = append(rec.Ports, PortDecl{Position: j, Direction: DirectionInput, Index: idx})
		case strings.Contains(typ, "OutMessagePort"):
			idx := len(rec.OutPorts)
			rec.OutPorts = append(rec.OutPorts, idx)
			rec.Ports = append(rec.Ports, PortDecl{Position: j, Direction: DirectionOutput, Index: idx})
		default:
			logrus.Debugf("Component %q: ignoring port %d of type %q", rec.Name, j, typ)
		}
	}
}

func extractBehaviors(el *Element, rec *ComponentRecord) {
	for _, b := range el.Select("modes/behaviouralElements") {
		kind := b.TypeLocal()
		if kind == "" {
			continue
		}
		beh := Behavior{Kind: kind, Name: b.Attr("name"), Condition: b.Attr("condition")}
		if p, ok := b.LookupAttr("period"); ok {
			ms, err := strconv.Atoi(strings.TrimSpace(p))
			if err != nil || ms <= 0 {
				logrus.Warnf("Component %q: behaviour %q has invalid period %q; ignored", rec.Name, beh.Name, p)
			} else {
				beh.PeriodMs, beh.HasPeriod = ms, true
				if isTimer(beh) && rec.DataIntervalSeconds == 0 {
					rec.DataIntervalSeconds = float64(ms) / 1000
				}
			}
		}
		rec.Behaviors = append(rec.Behaviors, beh)
	}
}

func isTimer(b Behavior) bool {
	return strings.Contains(b.Kind, "Timer") || strings.Contains(b.Name, "Timer")
}

// ExtractHardware returns one spec per nodes element, in document order.
// Absent protocols default to "Unknown"; unparseable numeric attributes are
// kept verbatim with a zero parsed value.
func ExtractHardware(doc *Document) []HardwareSpec {
	var out []HardwareSpec
	for _, node := range doc.Select("nodes") {
		hw := HardwareSpec{
			Node:            node.Attr("name"),
			MACProtocol:     node.AttrOr("macProtocol", unknown),
			RoutingProtocol: node.AttrOr("routingProtocol", unknown),
		}
		for _, p := range node.Select("microcontroller/processors") {
			hw.Processor = p.AttrOr("name", unknown)
			hw.Frequency = p.AttrOr("frequency", unknown)
			if f, err := ParseFrequency(hw.Frequency); err == nil {
				hw.FrequencyHz = f
			} else {
				logrus.Debugf("Node %q: %v", hw.Node, err)
			}
		}
		for _, m := range node.Select("microcontroller/memory") {
			hw.MemoryKind = m.AttrOr("name", unknown)
			hw.MemorySize = m.AttrOr("size", unknown)
			if kb, err := ParseMemorySize(hw.MemorySize); err == nil {
				hw.MemorySizeKB = kb
			} else {
				logrus.Debugf("Node %q: %v", hw.Node, err)
			}
		}
		logrus.Debugf("Extracted node %q: mac=%s routing=%s", hw.Node, hw.MACProtocol, hw.RoutingProtocol)
		out = append(out, hw)
	}
	return out
}
