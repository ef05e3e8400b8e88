package cmd

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/likhithkanigolla/CAPS-IIITH/arch"
	"github.com/likhithkanigolla/CAPS-IIITH/codegen"
	"github.com/likhithkanigolla/CAPS-IIITH/devs"
	"github.com/likhithkanigolla/CAPS-IIITH/devs/actor"
	"github.com/likhithkanigolla/CAPS-IIITH/devs/trace"
)

// simulateCmd assembles the network in-process and runs it to the horizon
var simulateCmd = &cobra.Command{
	Use:   "simulate <software.saml>",
	Short: "Run the synthesized network in-process",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()
		cfg := resolveConfig(cmd)
		a, err := loadArchitecture(args[0], hwmlPath, cfg)
		if err != nil {
			logrus.Fatalf("Failed to load documents: %v", err)
		}
		res, err := simulateNetwork(a, cfg)
		if err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}
		printSimulation(cmd.OutOrStdout(), res)
	},
}

// simulationResult is the outcome of one in-process run.
type simulationResult struct {
	Topology  *codegen.Topology
	Simulator *devs.Simulator
	Sink      *actor.Sink
	Failures  []codegen.SynthesisFailure
}

func simulateNetwork(a *arch.Architecture, cfg Config) (*simulationResult, error) {
	plans, failures := codegen.Synthesize(a.Components, cfg.SynthConfig())
	topo := codegen.Assemble(codegen.ModelName(a), plans, a.Connections)
	model, sink, err := topo.Build(cfg.Simulation.Seed)
	if err != nil {
		return nil, err
	}
	s, err := devs.NewSimulator(model, devs.Time(cfg.Simulation.HorizonS))
	if err != nil {
		return nil, err
	}
	level := trace.TraceLevel(cfg.Simulation.Trace)
	if level == "" {
		level = trace.TraceLevelNone
	}
	s.Trace = trace.NewTrace(level)

	logrus.Infof("Simulating %s: %d actors, %d wires, horizon=%gs, seed=%d",
		topo.Name, len(model.Actors()), len(topo.AllWires()), cfg.Simulation.HorizonS, cfg.Simulation.Seed)
	s.Run()
	return &simulationResult{Topology: topo, Simulator: s, Sink: sink, Failures: failures}, nil
}

func printSimulation(w io.Writer, res *simulationResult) {
	s := res.Simulator
	fmt.Fprintf(w, "=== Simulation %s ===\n", res.Topology.Name)
	fmt.Fprintf(w, "Clock:    %.3f s\n", float64(s.Clock))
	fmt.Fprintf(w, "Steps:    %d\n", s.Steps)
	if res.Sink != nil {
		fmt.Fprintf(w, "Sink received: %d\n", res.Sink.Received)
	}
	for _, f := range res.Failures {
		fmt.Fprintf(w, "Skipped: %v\n", f)
	}
	if !s.Trace.Enabled() {
		return
	}
	summary := trace.Summarize(s.Trace)
	fmt.Fprintf(w, "\n=== Transitions (%d) ===\n", summary.TotalTransitions)
	fmt.Fprintf(w, "%-24s %8s %8s %8s %10s\n", "ACTOR", "OUTPUT", "INTERNAL", "EXTERNAL", "LAST")
	names := make([]string, 0, len(res.Topology.Plans)+1)
	for _, p := range res.Topology.Plans {
		names = append(names, p.Name())
	}
	if res.Sink != nil {
		names = append(names, actor.SinkName)
	}
	for _, name := range names {
		c := summary.PerActor[name]
		fmt.Fprintf(w, "%-24s %8d %8d %8d %10.3f\n", name, c.Outputs, c.Internal, c.External, c.LastClock)
	}
}
