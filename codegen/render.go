package codegen

import (
	"bytes"
	"fmt"
	"go/format"
	"strconv"
	"strings"
	"text/template"

	"github.com/likhithkanigolla/CAPS-IIITH/arch"
	"github.com/likhithkanigolla/CAPS-IIITH/devs/actor"
)

// ModulePath is the import path generated programs use for the runtime packages.
const ModulePath = "github.com/likhithkanigolla/CAPS-IIITH"

var (
	componentTmpl  = template.Must(template.New("component").Parse(componentTemplate))
	sinkTmpl       = template.Must(template.New("sink").Parse(sinkTemplate))
	modelTmpl      = template.Must(template.New("model").Parse(modelTemplate))
	entryPointTmpl = template.Must(template.New("main").Parse(entryPointTemplate))
)

var roleConsts = map[actor.Role]string{
	actor.RoleSensor:     "RoleSensor",
	actor.RoleActuator:   "RoleActuator",
	actor.RoleController: "RoleController",
	actor.RoleInterface:  "RoleInterface",
	actor.RoleGeneric:    "RoleGeneric",
}

type conditionLiteral struct {
	Variable  string
	Operator  string
	Threshold string
	Action    string
	Port      int
}

type componentData struct {
	ModulePath string
	TypeName   string
	Name       string
	Role       actor.Role
	RoleConst  string
	Details    []string
	InPorts    int
	OutPorts   int
	Interval   string
	FanOut     bool
	Delay      string
	ValueField int
	Conditions []conditionLiteral
	HasInputs  bool
}

// RenderComponent renders the wrapper type and constructor of one plan.
func RenderComponent(p ActorPlan) ([]byte, error) {
	data := componentData{
		ModulePath: ModulePath,
		TypeName:   p.TypeName,
		Name:       p.Name(),
		Role:       p.Role,
		RoleConst:  roleConsts[p.Role],
		Details:    componentDetails(p.Component),
		InPorts:    p.Params.InPorts,
		OutPorts:   p.Params.OutPorts,
		Interval:   floatLiteral(float64(p.Params.Interval)),
		FanOut:     p.Params.FanOut,
		Delay:      floatLiteral(float64(p.Params.Delay)),
		ValueField: p.Params.ValueField,
		HasInputs:  p.Params.InPorts > 0,
	}
	for _, c := range p.Params.Conditions {
		data.Conditions = append(data.Conditions, conditionLiteral{
			Variable:  c.Variable,
			Operator:  c.Operator,
			Threshold: floatLiteral(c.Threshold),
			Action:    c.Action,
			Port:      c.Port,
		})
	}
	return renderGo(componentTmpl, data)
}

type sinkData struct {
	ModulePath string
	SinkWires  []Wire
}

// RenderSink renders the terminal sink constructor.
func RenderSink(t *Topology) ([]byte, error) {
	return renderGo(sinkTmpl, sinkData{ModulePath: ModulePath, SinkWires: t.SinkWires})
}

type modelData struct {
	ModulePath string
	Name       string
	SinkName   string
	Plans      []ActorPlan
	SinkWires  []Wire
	Wires      []Wire
}

// RenderModel renders the coupled model constructor.
func RenderModel(t *Topology) ([]byte, error) {
	return renderGo(modelTmpl, modelData{
		ModulePath: ModulePath,
		Name:       t.Name,
		SinkName:   actor.SinkName,
		Plans:      t.Plans,
		SinkWires:  t.SinkWires,
		Wires:      t.AllWires(),
	})
}

type entryPointData struct {
	ModulePath string
	Command    string
	Horizon    string
	Seed       int64
}

// RenderEntryPoint renders main.go, a CLI that runs the model.
func RenderEntryPoint(command string, horizon float64, seed int64) ([]byte, error) {
	return renderGo(entryPointTmpl, entryPointData{
		ModulePath: ModulePath,
		Command:    command,
		Horizon:    floatLiteral(horizon),
		Seed:       seed,
	})
}

func renderGo(tmpl *template.Template, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render %s: %w", tmpl.Name(), err)
	}
	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("format %s: %w", tmpl.Name(), err)
	}
	return src, nil
}

// floatLiteral formats v as a Go floating-point constant.
func floatLiteral(v float64) string {
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// componentDetails returns the doc-comment lines describing where a
// component came from.
func componentDetails(c arch.ComponentRecord) []string {
	var out []string
	out = append(out, fmt.Sprintf("Provenance: %s.", c.Provenance))
	for _, b := range c.Behaviors {
		line := fmt.Sprintf("Behaviour %s %q", b.Kind, b.Name)
		if b.HasPeriod {
			line += fmt.Sprintf(", period %d ms", b.PeriodMs)
		}
		if b.Condition != "" {
			line += fmt.Sprintf(", condition %q", b.Condition)
		}
		out = append(out, commentSafe(line)+".")
	}
	if hw := c.Hardware; hw != nil {
		out = append(out, commentSafe(fmt.Sprintf("Hardware node %q: MAC %s, routing %s.", hw.Node, hw.MACProtocol, hw.RoutingProtocol)))
		if hw.Processor != "" {
			out = append(out, commentSafe(fmt.Sprintf("Processor: %s, frequency %s.", hw.Processor, describeFrequency(hw))))
		}
		if hw.MemoryKind != "" {
			out = append(out, commentSafe(fmt.Sprintf("Memory: %s, size %s.", hw.MemoryKind, describeMemory(hw))))
		}
	}
	return out
}

func describeFrequency(hw *arch.HardwareSpec) string {
	if hw.FrequencyHz <= 0 {
		return hw.Frequency
	}
	return fmt.Sprintf("%s (%g MHz)", hw.Frequency, hw.FrequencyHz/1e6)
}

func describeMemory(hw *arch.HardwareSpec) string {
	if hw.MemorySizeKB <= 0 {
		return hw.MemorySize
	}
	return fmt.Sprintf("%s (%g KB)", hw.MemorySize, hw.MemorySizeKB)
}

func commentSafe(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
