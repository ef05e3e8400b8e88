package arch

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

var portRefPattern = regexp.MustCompile(`^//@SAElements\.(\d+)/@ports\.(\d+)$`)

// PortRef is a parsed structural reference path.
type PortRef struct {
	Element int
	Port    int
}

func (r PortRef) String() string {
	return fmt.Sprintf("//@SAElements.%d/@ports.%d", r.Element, r.Port)
}

// ParsePortRef parses "//@SAElements.<i>/@ports.<j>".
func ParsePortRef(ref string) (PortRef, error) {
	m := portRefPattern.FindStringSubmatch(strings.TrimSpace(ref))
	if m == nil {
		return PortRef{}, fmt.Errorf("malformed port reference %q", ref)
	}
	i, err := strconv.Atoi(m[1])
	if err != nil {
		return PortRef{}, fmt.Errorf("port reference %q: %w", ref, err)
	}
	j, err := strconv.Atoi(m[2])
	if err != nil {
		return PortRef{}, fmt.Errorf("port reference %q: %w", ref, err)
	}
	return PortRef{Element: i, Port: j}, nil
}

type endpoint struct {
	component string
	index     int
	direction Direction
}

// portIndex maps reference paths to ports of the reconciled components.
type portIndex map[PortRef]endpoint

func newPortIndex(components []ComponentRecord) portIndex {
	idx := make(portIndex)
	for _, c := range components {
		if c.Position < 0 {
			continue
		}
		for _, p := range c.Ports {
			idx[PortRef{Element: c.Position, Port: p.Position}] = endpoint{component: c.Name, index: p.Index, direction: p.Direction}
		}
	}
	return idx
}

func (idx portIndex) resolve(conn int, ref string) (endpoint, error) {
	pr, err := ParsePortRef(ref)
	if err != nil {
		return endpoint{}, &UnresolvedReferenceError{Connection: conn, Ref: ref}
	}
	ep, ok := idx[pr]
	if !ok {
		return endpoint{}, &UnresolvedReferenceError{Connection: conn, Ref: ref}
	}
	return ep, nil
}

// ResolveConnections resolves every SAElements element typed Connection
// against the reconciled components, in document order. Endpoints that do
// not resolve, and connections between two ports of the same direction, are
// dropped and returned as errors alongside the resolved records. A
// connection declared from an input to an output is reversed.
func ResolveConnections(doc *Document, components []ComponentRecord) ([]ConnectionRecord, []error) {
	idx := newPortIndex(components)
	var out []ConnectionRecord
	var dropped []error
	for i, el := range doc.Select("SAElements") {
		if !strings.Contains(el.TypeName(), "Connection") {
			continue
		}
		src, srcErr := idx.resolve(i, el.Attr("source"))
		dst, dstErr := idx.resolve(i, el.Attr("target"))
		if err := errors.Join(srcErr, dstErr); err != nil {
			logrus.Warnf("Dropping connection %d: %v", i, err)
			dropped = append(dropped, err)
			continue
		}
		if src.direction == DirectionInput && dst.direction == DirectionOutput {
			logrus.Debugf("Connection %d declared input to output; reversing", i)
			src, dst = dst, src
		}
		if src.direction == dst.direction {
			err := fmt.Errorf("connection %d joins two %s ports (%s.%d, %s.%d)", i, src.direction, src.component, src.index, dst.component, dst.index)
			logrus.Warnf("Dropping %v", err)
			dropped = append(dropped, err)
			continue
		}
		out = append(out, ConnectionRecord{
			SourceComponent: src.component,
			SourcePort:      src.index,
			SourceDirection: src.direction,
			TargetComponent: dst.component,
			TargetPort:      dst.index,
			TargetDirection: dst.direction,
		})
	}
	return out, dropped
}

// FallbackConnections derives one connection per unordered pair of bound
// hardware nodes, tagged with each node's protocols. Hardware documents
// declare no connections, so the result is a degenerate all-pairs topology;
// the records are flagged and are never wired.
func FallbackConnections(bindings []Binding, components []ComponentRecord) []ConnectionRecord {
	var out []ConnectionRecord
	for i := 0; i < len(bindings); i++ {
		for j := i + 1; j < len(bindings); j++ {
			a, b := bindings[i], bindings[j]
			if a.Component < 0 || a.Component >= len(components) || b.Component < 0 || b.Component >= len(components) {
				continue
			}
			out = append(out, ConnectionRecord{
				SourceComponent: components[a.Component].Name,
				SourceTag:       protocolTag(a.Node),
				TargetComponent: components[b.Component].Name,
				TargetTag:       protocolTag(b.Node),
				Fallback:        true,
			})
		}
	}
	return out
}

func protocolTag(h HardwareSpec) string {
	return h.MACProtocol + "/" + h.RoutingProtocol
}
