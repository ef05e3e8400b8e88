package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/likhithkanigolla/CAPS-IIITH/arch"
	"github.com/likhithkanigolla/CAPS-IIITH/codegen"
	"github.com/likhithkanigolla/CAPS-IIITH/devs/actor"
	"github.com/likhithkanigolla/CAPS-IIITH/devs/trace"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	// Report yaml keys instead of Go field names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// Config represents the full capsgen.yaml structure.
// All sections must be listed to satisfy KnownFields(true) strict parsing.
type Config struct {
	ReservedNames []string         `yaml:"reserved_names" validate:"dive,required"`
	RenamePrefix  string           `yaml:"rename_prefix" validate:"required,alphanum"`
	Matcher       string           `yaml:"matcher"`
	Sensor        SensorConfig     `yaml:"sensor"`
	Gateway       GatewayConfig    `yaml:"gateway"`
	Controller    ControllerConfig `yaml:"controller"`
	Simulation    SimulationConfig `yaml:"simulation"`
}

type SensorConfig struct {
	IntervalS float64 `yaml:"interval_s" validate:"gt=0"`
	FanOut    bool    `yaml:"fan_out"`
}

type GatewayConfig struct {
	DelayS float64 `yaml:"delay_s" validate:"gte=0"`
}

type ControllerConfig struct {
	ValueField int `yaml:"value_field" validate:"gte=0"`
	// Conditions read "value > 25 -> open"; used by controllers that declare none.
	Conditions []string `yaml:"conditions" validate:"min=1,dive,required"`
}

type SimulationConfig struct {
	HorizonS float64 `yaml:"horizon_s" validate:"gt=0"`
	Seed     int64   `yaml:"seed"`
	Trace    string  `yaml:"trace"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	synth := codegen.DefaultSynthConfig()
	return Config{
		ReservedNames: append([]string(nil), arch.DefaultReservedNames...),
		RenamePrefix:  arch.DefaultRenamePrefix,
		Matcher:       arch.MatcherContainment,
		Sensor:        SensorConfig{IntervalS: synth.SensorInterval, FanOut: synth.SensorFanOut},
		Gateway:       GatewayConfig{DelayS: synth.GatewayDelay},
		Controller:    ControllerConfig{ValueField: synth.ValueField, Conditions: synth.Conditions},
		Simulation: SimulationConfig{
			HorizonS: codegen.DefaultHorizon,
			Seed:     42,
			Trace:    string(trace.TraceLevelNone),
		},
	}
}

// LoadConfig reads path over the defaults. An empty path yields the defaults.
// Unknown keys are rejected.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks struct constraints, then the registry-backed enums and
// the controller conditions.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return formatValidationError(err)
	}
	if !arch.IsValidMatcher(c.Matcher) {
		return fmt.Errorf("matcher: unknown matcher %q; valid: %s, %s", c.Matcher, arch.MatcherContainment, arch.MatcherExact)
	}
	if c.Simulation.Trace != "" && !trace.IsValidTraceLevel(c.Simulation.Trace) {
		return fmt.Errorf("simulation.trace: unknown trace level %q; valid: %s, %s", c.Simulation.Trace, trace.TraceLevelNone, trace.TraceLevelTransitions)
	}
	for i, expr := range c.Controller.Conditions {
		cond, err := actor.ParseCondition(expr)
		if err != nil {
			return fmt.Errorf("controller.conditions[%d]: %w", i, err)
		}
		if cond.Action == "" {
			return fmt.Errorf("controller.conditions[%d]: %q has no action", i, expr)
		}
	}
	return nil
}

func formatValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.TrimPrefix(fe.Namespace(), "Config.")
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s: failed %s=%s (got %v)", field, fe.Tag(), fe.Param(), fe.Value()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s: failed %s (got %v)", field, fe.Tag(), fe.Value()))
		}
	}
	return errors.New(strings.Join(msgs, "; "))
}

// applyFlags overrides file values with flags the user set explicitly.
func (c *Config) applyFlags(cmd *cobra.Command) error {
	flags := cmd.Flags()
	var err error
	if flags.Changed("seed") {
		if c.Simulation.Seed, err = flags.GetInt64("seed"); err != nil {
			return err
		}
	}
	if flags.Changed("horizon") {
		if c.Simulation.HorizonS, err = flags.GetFloat64("horizon"); err != nil {
			return err
		}
	}
	if flags.Changed("matcher") {
		if c.Matcher, err = flags.GetString("matcher"); err != nil {
			return err
		}
	}
	if flags.Changed("trace") {
		if c.Simulation.Trace, err = flags.GetString("trace"); err != nil {
			return err
		}
	}
	return c.Validate()
}

// ArchOptions builds the document-stage strategies.
func (c Config) ArchOptions() (arch.Options, error) {
	m, err := arch.NewMatcher(c.Matcher)
	if err != nil {
		return arch.Options{}, err
	}
	return arch.Options{
		Matcher:    m,
		Renamer:    arch.NewRenamer(c.ReservedNames, c.RenamePrefix),
		Classifier: arch.NewClassifier(),
	}, nil
}

// SynthConfig returns the role parameters for synthesis.
func (c Config) SynthConfig() codegen.SynthConfig {
	return codegen.SynthConfig{
		SensorInterval: c.Sensor.IntervalS,
		SensorFanOut:   c.Sensor.FanOut,
		GatewayDelay:   c.Gateway.DelayS,
		ValueField:     c.Controller.ValueField,
		Conditions:     append([]string(nil), c.Controller.Conditions...),
	}
}
