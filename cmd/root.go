package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/likhithkanigolla/CAPS-IIITH/arch"
	"github.com/likhithkanigolla/CAPS-IIITH/codegen"
)

var (
	hwmlPath   string  // Hardware document path
	outDir     string  // Output directory for generated artifacts
	configPath string  // capsgen.yaml path
	logLevel   string  // Log verbosity level
	seed       int64   // Seed baked into the generated network
	horizon    float64 // Simulated time, in seconds
	matcher    string  // Hardware-to-software name matcher
	traceLevel string  // Transition trace level for simulate
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "capsgen",
	Short: "Generate DEVS actor networks from CAPS architecture documents",
}

// generateCmd writes the component, sink, model, entry-point and summary artifacts
var generateCmd = &cobra.Command{
	Use:   "generate <software.saml>",
	Short: "Generate a runnable DEVS network from a SAML document and an optional HWML document",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()
		cfg := resolveConfig(cmd)

		report, err := generate(cmd.Context(), args[0], hwmlPath, outDir, cfg)
		if err != nil {
			logrus.Fatalf("Generation failed: %v", err)
		}
		if err := report.Err(); err != nil {
			logrus.Warnf("Generation finished with problems:\n%v", err)
		}
		printReport(cmd.OutOrStdout(), report)
		if !report.Succeeded() {
			logrus.Errorf("Not every mandatory artifact was written; the network in %s is incomplete", report.OutDir)
		}
	},
}

func printReport(w io.Writer, report *codegen.Report) {
	fmt.Fprintf(w, "Generated %d artifacts for %s in %s (run %s)\n",
		len(report.Written), report.Topology.Name, report.OutDir, report.RunID)
	for _, name := range report.Written {
		fmt.Fprintf(w, "  %s\n", filepath.Join(report.OutDir, name))
	}
	for _, err := range report.WriteErrors {
		fmt.Fprintf(w, "  failed: %v\n", err)
	}
}

func generate(ctx context.Context, softwarePath, hardwarePath, out string, cfg Config) (*codegen.Report, error) {
	opts, err := cfg.ArchOptions()
	if err != nil {
		return nil, err
	}
	synth := cfg.SynthConfig()
	logrus.Infof("Generating from %s (hardware=%q, matcher=%s, seed=%d, horizon=%gs)",
		softwarePath, hardwarePath, cfg.Matcher, cfg.Simulation.Seed, cfg.Simulation.HorizonS)
	return codegen.NewGenerator(codegen.Config{
		SoftwarePath: softwarePath,
		HardwarePath: hardwarePath,
		OutDir:       out,
		Arch:         opts,
		Synth:        &synth,
		Seed:         cfg.Simulation.Seed,
		Horizon:      cfg.Simulation.HorizonS,
	}).Run(ctx)
}

func setupLogging() {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", logLevel)
	}
	logrus.SetLevel(level)
}

// resolveConfig loads --config and applies explicitly set flags on top.
func resolveConfig(cmd *cobra.Command) Config {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		logrus.Fatalf("%v", err)
	}
	if err := cfg.applyFlags(cmd); err != nil {
		logrus.Fatalf("Invalid flags: %v", err)
	}
	return cfg
}

// loadArchitecture runs the document stages for the inspection commands.
func loadArchitecture(softwarePath, hardwarePath string, cfg Config) (*arch.Architecture, error) {
	opts, err := cfg.ArchOptions()
	if err != nil {
		return nil, err
	}
	return arch.Load(softwarePath, hardwarePath, opts)
}

// Execute runs the CLI root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// addDocumentFlags registers the flags shared by every subcommand.
func addDocumentFlags(c *cobra.Command) {
	c.Flags().StringVar(&hwmlPath, "hwml", "", "Hardware (HWML) document path")
	c.Flags().StringVar(&configPath, "config", "", "Path to capsgen.yaml")
	c.Flags().StringVar(&logLevel, "log", "info", "Log level (trace, debug, info, warn, error, fatal, panic)")
	c.Flags().StringVar(&matcher, "matcher", arch.MatcherContainment, "Hardware node matcher (containment, exact)")
}

// init sets up CLI flags and subcommands
func init() {
	addDocumentFlags(generateCmd)
	generateCmd.Flags().StringVar(&outDir, "out", "", "Output directory (default generated_<timestamp>)")
	generateCmd.Flags().Int64Var(&seed, "seed", 42, "Seed baked into the generated network")
	generateCmd.Flags().Float64Var(&horizon, "horizon", codegen.DefaultHorizon, "Default simulation horizon of the generated program (seconds)")

	addDocumentFlags(simulateCmd)
	simulateCmd.Flags().Int64Var(&seed, "seed", 42, "Seed for the actors' random streams")
	simulateCmd.Flags().Float64Var(&horizon, "horizon", codegen.DefaultHorizon, "Simulation horizon (seconds)")
	simulateCmd.Flags().StringVar(&traceLevel, "trace", "none", "Transition trace level (none, transitions)")

	addDocumentFlags(connectionsCmd)
	addDocumentFlags(classifyCmd)

	rootCmd.AddCommand(generateCmd, simulateCmd, connectionsCmd, classifyCmd)
}
