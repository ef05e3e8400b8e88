// Package testutil provides shared test infrastructure for capsgen.
// It builds SAML and HWML documents and locates the repository testdata.
package testutil

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// Port is one port declaration of a fixture component.
type Port struct {
	Name string
	In   bool
	// Type overrides the xsi:type, for ports that are neither in nor out.
	Type string
}

// Behaviour is one behaviouralElements declaration.
type Behaviour struct {
	Kind      string
	Name      string
	Period    string
	Condition string
}

// Component is one SAElements element typed Component.
type Component struct {
	Name       string
	Ports      []Port
	Behaviours []Behaviour
}

// Connection is one SAElements element typed Connection.
type Connection struct {
	Source string
	Target string
}

// In and Out are shorthands for port declarations.
func In(name string) Port  { return Port{Name: name, In: true} }
func Out(name string) Port { return Port{Name: name} }

// PortRef returns the structural reference path of port j of element i.
func PortRef(i, j int) string {
	return fmt.Sprintf("//@SAElements.%d/@ports.%d", i, j)
}

// SAML renders a software document. elements must be Component or
// Connection values; their order is the SAElements order.
func SAML(elements ...any) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString(`<components:Model xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance" xmlns:components="components" name="fixture">` + "\n")
	for _, e := range elements {
		switch v := e.(type) {
		case Component:
			fmt.Fprintf(&b, "  <SAElements xsi:type=\"components:Component\" name=\"%s\">\n", esc(v.Name))
			for _, p := range v.Ports {
				typ := p.Type
				if typ == "" {
					typ = "components:OutMessagePort"
					if p.In {
						typ = "components:InMessagePort"
					}
				}
				fmt.Fprintf(&b, "    <ports xsi:type=\"%s\" name=\"%s\"/>\n", esc(typ), esc(p.Name))
			}
			if len(v.Behaviours) > 0 {
				b.WriteString("    <modes name=\"default\">\n")
				for _, beh := range v.Behaviours {
					fmt.Fprintf(&b, "      <behaviouralElements xsi:type=\"components:%s\" name=\"%s\"", esc(beh.Kind), esc(beh.Name))
					if beh.Period != "" {
						fmt.Fprintf(&b, " period=\"%s\"", esc(beh.Period))
					}
					if beh.Condition != "" {
						fmt.Fprintf(&b, " condition=\"%s\"", esc(beh.Condition))
					}
					b.WriteString("/>\n")
				}
				b.WriteString("    </modes>\n")
			}
			b.WriteString("  </SAElements>\n")
		case Connection:
			fmt.Fprintf(&b, "  <SAElements xsi:type=\"components:Connection\" source=\"%s\" target=\"%s\"/>\n", esc(v.Source), esc(v.Target))
		default:
			panic(fmt.Sprintf("testutil.SAML: unsupported element %T", e))
		}
	}
	b.WriteString("</components:Model>\n")
	return b.String()
}

// Node is one hardware node.
type Node struct {
	Name      string
	MAC       string
	Routing   string
	Processor string
	Frequency string
	Memory    string
	Size      string
}

// HWML renders a hardware document.
func HWML(nodes ...Node) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString(`<hwml:Hardware xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance" xmlns:hwml="hwml">` + "\n")
	for _, n := range nodes {
		fmt.Fprintf(&b, "  <nodes name=\"%s\"", esc(n.Name))
		if n.MAC != "" {
			fmt.Fprintf(&b, " macProtocol=\"%s\"", esc(n.MAC))
		}
		if n.Routing != "" {
			fmt.Fprintf(&b, " routingProtocol=\"%s\"", esc(n.Routing))
		}
		b.WriteString(">\n")
		if n.Processor != "" || n.Memory != "" {
			b.WriteString("    <microcontroller>\n")
			if n.Processor != "" {
				fmt.Fprintf(&b, "      <processors name=\"%s\" frequency=\"%s\"/>\n", esc(n.Processor), esc(n.Frequency))
			}
			if n.Memory != "" {
				fmt.Fprintf(&b, "      <memory name=\"%s\" size=\"%s\"/>\n", esc(n.Memory), esc(n.Size))
			}
			b.WriteString("    </microcontroller>\n")
		}
		b.WriteString("  </nodes>\n")
	}
	b.WriteString("</hwml:Hardware>\n")
	return b.String()
}

func esc(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

// WriteFile writes content to dir/name and returns the path.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write fixture %s: %v", path, err)
	}
	return path
}

// TestdataPath returns the path of a file in the repository testdata directory.
// The path is resolved relative to this source file: internal/testutil/ → testdata/.
func TestdataPath(t *testing.T, name string) string {
	t.Helper()
	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	return filepath.Join(filepath.Dir(thisFile), "..", "..", "testdata", name)
}

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}
