package codegen

const generatedHeader = "// Code generated by capsgen. DO NOT EDIT.\n\n"

const componentTemplate = generatedHeader + `package main

import (
	"math/rand"

	"{{.ModulePath}}/devs"
	"{{.ModulePath}}/devs/actor"
)

// {{.TypeName}} is the {{.Role}} actor of component {{printf "%q" .Name}}.
{{- if .Details}}
//
{{- range .Details}}
// {{.}}
{{- end}}
{{- end}}
type {{.TypeName}} struct {
	behavior devs.Reactive
}

// New{{.TypeName}} creates the actor with its synthesized parameters.
func New{{.TypeName}}(rng *rand.Rand) (*{{.TypeName}}, error) {
	b, err := actor.New(actor.{{.RoleConst}}, {{printf "%q" .Name}}, actor.Params{
		InPorts:    {{.InPorts}},
		OutPorts:   {{.OutPorts}},
		Interval:   {{.Interval}},
		FanOut:     {{.FanOut}},
		Delay:      {{.Delay}},
		ValueField: {{.ValueField}},
{{- if .Conditions}}
		Conditions: []actor.Condition{
{{- range .Conditions}}
			{Variable: {{printf "%q" .Variable}}, Operator: {{printf "%q" .Operator}}, Threshold: {{.Threshold}}, Action: {{printf "%q" .Action}}, Port: {{.Port}}},
{{- end}}
		},
{{- end}}
	}, rng)
	if err != nil {
		return nil, err
	}
	return &{{.TypeName}}{behavior: b}, nil
}

// TimeAdvance returns the time until the next internal transition.
func (a *{{.TypeName}}) TimeAdvance() devs.Time {
	return a.behavior.TimeAdvance()
}

// InternalTransition runs after Output when the actor is imminent.
func (a *{{.TypeName}}) InternalTransition(now devs.Time) {
	a.behavior.InternalTransition(now)
}
{{if .HasInputs}}
// ExternalTransition handles inputs arriving on its {{.InPorts}} input port(s).
func (a *{{.TypeName}}) ExternalTransition(now, elapsed devs.Time, inputs devs.Bag) {
	a.behavior.ExternalTransition(now, elapsed, inputs)
}
{{end}}
// Output returns the payloads to emit, keyed by output port.
func (a *{{.TypeName}}) Output() devs.Bag {
	return a.behavior.Output()
}
`

const sinkTemplate = generatedHeader + `package main

import "{{.ModulePath}}/devs/actor"

{{if .SinkWires -}}
// NewSink returns the terminal sink. Its input ports receive:
{{- range .SinkWires}}
//   - port {{.ToPort}}: output port {{.FromPort}} of {{.From}}
{{- end}}
{{- else -}}
// NewSink returns the terminal sink. No output port is routed to it.
{{- end}}
func NewSink() *actor.Sink {
	return actor.NewSink()
}
`

const modelTemplate = generatedHeader + `package main

import (
	"fmt"

	"{{.ModulePath}}/devs"
)

// ModelName is the name of the coupled model.
const ModelName = {{printf "%q" .Name}}

// NewModel assembles the actor network. seed drives every sensor reading.
func NewModel(seed int64) (*devs.Coupled, error) {
	rng := devs.NewPartitionedRNG(devs.NewSimulationKey(seed))
	m := devs.NewCoupled(ModelName)
{{- if not .Plans}}
	_ = rng
{{- end}}
{{range .Plans}}
	{{.VarName}}, err := New{{.TypeName}}(rng.ForActor({{printf "%q" .Name}}))
	if err != nil {
		return nil, err
	}
	if _, err := m.AddActor({{printf "%q" .Name}}, {{.Params.InPorts}}, {{.Params.OutPorts}}, {{.VarName}}); err != nil {
		return nil, err
	}
{{end}}
{{- if .SinkWires}}
	if _, err := m.AddActor({{printf "%q" .SinkName}}, {{len .SinkWires}}, 0, NewSink()); err != nil {
		return nil, err
	}
{{end}}
	couplings := []struct {
		from     string
		fromPort int
		to       string
		toPort   int
	}{
{{- range .Wires}}
		{ {{- printf "%q" .From}}, {{.FromPort}}, {{printf "%q" .To}}, {{.ToPort -}} },
{{- end}}
	}
	for _, c := range couplings {
		if err := m.Connect(c.from, c.fromPort, c.to, c.toPort); err != nil {
			return nil, fmt.Errorf("coupling %s.%d -> %s.%d: %w", c.from, c.fromPort, c.to, c.toPort, err)
		}
	}
	return m, m.Validate()
}
`

const entryPointTemplate = generatedHeader + `package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"{{.ModulePath}}/devs"
)

var (
	horizon  float64
	seed     int64
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   {{printf "%q" .Command}},
	Short: "Run the generated actor network",
	Run: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		model, err := NewModel(seed)
		if err != nil {
			logrus.Fatalf("Failed to assemble %s: %v", ModelName, err)
		}
		sim, err := devs.NewSimulator(model, devs.Time(horizon))
		if err != nil {
			logrus.Fatalf("Failed to create simulator: %v", err)
		}
		sim.Run()
	},
}

func main() {
	rootCmd.Flags().Float64Var(&horizon, "horizon", {{.Horizon}}, "Simulated time in seconds")
	rootCmd.Flags().Int64Var(&seed, "seed", {{.Seed}}, "Seed for sensor readings")
	rootCmd.Flags().StringVar(&logLevel, "log", "info", "Log level (trace, debug, info, warn, error, fatal, panic)")
	if err := rootCmd.Execute(); err != nil {
		logrus.Fatalf("%v", err)
	}
}
`

const summaryTemplate = `# {{.Name}}

Generated by capsgen on {{.GeneratedAt}} (run {{.RunID}}).

- Software document: ` + "`{{.SoftwarePath}}`" + `
- Hardware document: {{if .HardwarePath}}` + "`{{.HardwarePath}}`" + `{{else}}none{{end}}
- Seed: {{.Seed}}

## Components

| Component | Role | Inputs | Outputs | Provenance | File |
|---|---|---|---|---|---|
{{- range .Plans}}
| {{.Name}} | {{.Role}} | {{.Params.InPorts}} | {{.Params.OutPorts}} | {{.Component.Provenance}} | ` + "`{{.FileName}}`" + ` |
{{- end}}
{{range .Plans}}{{with $.HardwareSection .}}
{{.}}{{end}}{{end}}
## Connections
{{if .Wires}}
{{range .Wires}}- {{.From}} (Port {{.FromPort}} - output) → {{.To}} (Port {{.ToPort}} - input)
{{end}}{{else}}
No resolved connections.
{{end}}
{{- if .SinkWires}}
Output ports routed to the default sink:

{{range .SinkWires}}- {{.From}} (Port {{.FromPort}} - output) → {{.To}} (Port {{.ToPort}} - input)
{{end}}{{end}}
{{- if .Fallback}}
## Hardware fallback connections

The hardware document declares no connections. Every pair of nodes is listed
below as a degenerate all-pairs topology; these connections are not wired.

{{range .Fallback}}- {{.SourceComponent}} ({{.SourceTag}}) ↔ {{.TargetComponent}} ({{.TargetTag}})
{{end}}{{end}}
{{- if .Problems}}
## Problems

{{range .Problems}}- {{.}}
{{end}}{{end}}`
