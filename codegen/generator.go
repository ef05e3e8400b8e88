package codegen

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/xid"
	"github.com/sirupsen/logrus"

	"github.com/likhithkanigolla/CAPS-IIITH/arch"
)

// Fixed artifact names. All but SummaryFile are mandatory.
const (
	SinkFile    = "sink.go"
	ModelFile   = "model.go"
	MainFile    = "main.go"
	SummaryFile = "README.md"
)

// DefaultHorizon is the default simulated time of the generated program, in seconds.
const DefaultHorizon = 3600.0

// Config configures one generation run.
type Config struct {
	SoftwarePath string
	HardwarePath string
	// OutDir defaults to DefaultOutDir(Now()).
	OutDir string

	Arch arch.Options
	// Synth nil selects DefaultSynthConfig().
	Synth *SynthConfig

	Seed    int64
	Horizon float64

	// Now defaults to time.Now.
	Now func() time.Time
}

// Report describes the outcome of a run.
type Report struct {
	OutDir      string
	RunID       string
	GeneratedAt time.Time

	Architecture *arch.Architecture
	Topology     *Topology
	Failures     []SynthesisFailure
	Written      []string
	WriteErrors  []error
}

// Succeeded reports whether at least one component was extracted and every
// mandatory artifact was written: the component files, the sink, the model
// and the entry point. The README is not mandatory.
func (r *Report) Succeeded() bool {
	if r == nil || r.Architecture == nil || len(r.Architecture.Components) == 0 || r.Topology == nil {
		return false
	}
	written := make(map[string]bool, len(r.Written))
	for _, name := range r.Written {
		written[name] = true
	}
	for _, name := range r.mandatory() {
		if !written[name] {
			return false
		}
	}
	return true
}

func (r *Report) mandatory() []string {
	names := make([]string, 0, len(r.Topology.Plans)+3)
	for _, p := range r.Topology.Plans {
		names = append(names, p.FileName)
	}
	return append(names, SinkFile, ModelFile, MainFile)
}

// Err joins every non-fatal problem of the run, or returns nil.
func (r *Report) Err() error {
	var errs []error
	for _, f := range r.Failures {
		errs = append(errs, f)
	}
	if r.Architecture != nil {
		errs = append(errs, r.Architecture.Dropped...)
	}
	if r.Topology != nil {
		errs = append(errs, r.Topology.Dropped...)
	}
	errs = append(errs, r.WriteErrors...)
	return errors.Join(errs...)
}

// Generator runs the full document-to-artifacts pipeline.
type Generator struct {
	cfg Config
}

// NewGenerator returns a generator with defaults filled in.
func NewGenerator(cfg Config) *Generator {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Horizon <= 0 {
		cfg.Horizon = DefaultHorizon
	}
	if cfg.Synth == nil {
		def := DefaultSynthConfig()
		cfg.Synth = &def
	}
	return &Generator{cfg: cfg}
}

// Run loads the documents and writes every artifact. A returned error is
// fatal and means nothing useful was produced; per-artifact and
// per-component problems are reported in the Report instead.
func (g *Generator) Run(ctx context.Context) (*Report, error) {
	now := g.cfg.Now()
	report := &Report{
		RunID:       xid.New().String(),
		GeneratedAt: now,
		OutDir:      g.cfg.OutDir,
	}
	if report.OutDir == "" {
		report.OutDir = DefaultOutDir(now)
	}

	a, err := arch.Load(g.cfg.SoftwarePath, g.cfg.HardwarePath, g.cfg.Arch)
	if err != nil {
		return nil, err
	}
	report.Architecture = a

	plans, failures := Synthesize(a.Components, *g.cfg.Synth)
	report.Failures = failures
	report.Topology = Assemble(ModelName(a), plans, a.Connections)
	logrus.Infof("Synthesized %d of %d components; %d wires, %d sink wires",
		len(plans), len(a.Components), len(report.Topology.Wires), len(report.Topology.SinkWires))

	w, err := NewArtifactWriter(report.OutDir)
	if err != nil {
		return report, err
	}
	defer func() { report.Written = w.Written() }()

	emit := func(name string, render func() ([]byte, error)) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		data, err := render()
		if err == nil {
			err = w.Write(name, data)
		} else {
			err = &ArtifactWriteError{Artifact: name, Path: filepath.Join(w.Dir, name), Err: err}
		}
		if err != nil {
			logrus.Warnf("Skipping %v", err)
			report.WriteErrors = append(report.WriteErrors, err)
		}
		return nil
	}

	for _, p := range plans {
		if err := emit(p.FileName, func() ([]byte, error) { return RenderComponent(p) }); err != nil {
			return report, err
		}
	}
	steps := []struct {
		name   string
		render func() ([]byte, error)
	}{
		{SinkFile, func() ([]byte, error) { return RenderSink(report.Topology) }},
		{ModelFile, func() ([]byte, error) { return RenderModel(report.Topology) }},
		{MainFile, func() ([]byte, error) {
			return RenderEntryPoint(strings.ToLower(report.Topology.Name), g.cfg.Horizon, g.cfg.Seed)
		}},
		{SummaryFile, func() ([]byte, error) { return RenderSummary(g.summary(report)) }},
	}
	for _, s := range steps {
		if err := emit(s.name, s.render); err != nil {
			return report, err
		}
	}

	g.copyInput(w, report, a.Software.Path)
	if a.Hardware != nil {
		g.copyInput(w, report, a.Hardware.Path)
	}

	if len(w.written) == 0 {
		return report, fmt.Errorf("no artifact could be written to %s: %w", report.OutDir, errors.Join(report.WriteErrors...))
	}
	logrus.Infof("Wrote %d artifacts to %s", len(w.written), report.OutDir)
	return report, nil
}

func (g *Generator) copyInput(w *ArtifactWriter, report *Report, src string) {
	if err := w.Copy(src, filepath.Base(src)); err != nil {
		logrus.Warnf("Skipping input copy: %v", err)
		report.WriteErrors = append(report.WriteErrors, err)
	}
}

func (g *Generator) summary(r *Report) Summary {
	s := Summary{
		Name:         r.Topology.Name,
		RunID:        r.RunID,
		GeneratedAt:  r.GeneratedAt.Format("2006-01-02 15:04:05"),
		SoftwarePath: g.cfg.SoftwarePath,
		Seed:         g.cfg.Seed,
		Plans:        r.Topology.Plans,
		Wires:        r.Topology.Wires,
		SinkWires:    r.Topology.SinkWires,
		Fallback:     r.Architecture.Fallback,
	}
	if r.Architecture.Hardware != nil {
		s.HardwarePath = g.cfg.HardwarePath
	}
	for _, err := range r.Architecture.Dropped {
		s.Problems = append(s.Problems, "Dropped connection: "+err.Error())
	}
	for _, err := range r.Topology.Dropped {
		s.Problems = append(s.Problems, "Not wired: "+err.Error())
	}
	for _, f := range r.Failures {
		s.Problems = append(s.Problems, "Failed component: "+f.Error())
	}
	return s
}

// ModelName is the software document's root name attribute, or the
// document file name without extension.
func ModelName(a *arch.Architecture) string {
	if name := exportedIdent(a.Software.Root.Attr("name")); name != "" {
		return name
	}
	base := filepath.Base(a.Software.Path)
	if name := exportedIdent(strings.TrimSuffix(base, filepath.Ext(base))); name != "" {
		return name
	}
	return "Network"
}
