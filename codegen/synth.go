package codegen

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/sirupsen/logrus"

	"github.com/likhithkanigolla/CAPS-IIITH/arch"
	"github.com/likhithkanigolla/CAPS-IIITH/devs"
	"github.com/likhithkanigolla/CAPS-IIITH/devs/actor"
)

// DefaultConditions apply to controllers that declare none.
var DefaultConditions = []string{"value > 25 -> open", "value < 18 -> close"}

// SynthConfig holds the role parameters used during synthesis.
type SynthConfig struct {
	SensorInterval float64
	SensorFanOut   bool
	GatewayDelay   float64
	ValueField     int
	// Conditions are used for controllers without declared conditions.
	Conditions []string
}

// DefaultSynthConfig returns the built-in role parameters.
func DefaultSynthConfig() SynthConfig {
	return SynthConfig{
		SensorInterval: float64(actor.DefaultSensorInterval),
		GatewayDelay:   float64(actor.DefaultGatewayDelay),
		ValueField:     actor.DefaultValueField,
		Conditions:     append([]string(nil), DefaultConditions...),
	}
}

// ActorPlan is one component ready to be instantiated and rendered.
type ActorPlan struct {
	Component arch.ComponentRecord
	Role      actor.Role
	Params    actor.Params
	// TypeName is the exported Go identifier of the generated wrapper type.
	TypeName string
	// FileName is the lower-cased, whitespace-free component name plus ".go".
	FileName string
	// VarName is the local variable holding the instance in the model.
	VarName string
}

// Name returns the component name, which is also the actor name.
func (p ActorPlan) Name() string { return p.Component.Name }

// SynthesisFailure records a component that could not be synthesized.
type SynthesisFailure struct {
	Component string
	Err       error
}

func (f SynthesisFailure) Error() string {
	return fmt.Sprintf("component %q: %v", f.Component, f.Err)
}

func (f SynthesisFailure) Unwrap() error { return f.Err }

// reservedTypeNames are identifiers the generated package already declares,
// or whose New-prefixed constructor would collide with one.
var reservedTypeNames = map[string]bool{
	"Model":     true,
	"ModelName": true,
	"NewModel":  true,
	"Sink":      true,
	"NewSink":   true,
	"Main":      true,
	"RootCmd":   true,
}

// Synthesize plans one actor per component, in order. Failures are collected
// and do not affect the other components.
func Synthesize(components []arch.ComponentRecord, cfg SynthConfig) ([]ActorPlan, []SynthesisFailure) {
	var plans []ActorPlan
	var failures []SynthesisFailure
	typeNames := make(map[string]string)
	constructors := make(map[string]string)
	fileNames := make(map[string]string)
	actorNames := make(map[string]bool)

	for _, c := range components {
		plan, err := planFor(c, cfg)
		if err == nil && actorNames[c.Name] {
			err = fmt.Errorf("duplicate component name")
		}
		if err == nil {
			if other, ok := typeNames[plan.TypeName]; ok {
				err = fmt.Errorf("type name %s collides with component %q", plan.TypeName, other)
			} else if other, ok := typeNames["New"+plan.TypeName]; ok {
				err = fmt.Errorf("constructor New%s collides with the type of component %q", plan.TypeName, other)
			} else if other, ok := constructors[plan.TypeName]; ok {
				err = fmt.Errorf("type name %s collides with the constructor of component %q", plan.TypeName, other)
			} else if other, ok := fileNames[plan.FileName]; ok {
				err = fmt.Errorf("file name %s collides with component %q", plan.FileName, other)
			}
		}
		if err != nil {
			logrus.Warnf("Skipping component %q: %v", c.Name, err)
			failures = append(failures, SynthesisFailure{Component: c.Name, Err: err})
			continue
		}
		typeNames[plan.TypeName] = c.Name
		constructors["New"+plan.TypeName] = c.Name
		fileNames[plan.FileName] = c.Name
		actorNames[c.Name] = true
		logrus.Debugf("Planned %s %q as %s (%s)", plan.Role, c.Name, plan.TypeName, plan.FileName)
		plans = append(plans, plan)
	}
	return plans, failures
}

func planFor(c arch.ComponentRecord, cfg SynthConfig) (ActorPlan, error) {
	role := c.Role
	if role == "" {
		role = actor.RoleGeneric
	}
	if !actor.IsValidRole(string(role)) {
		return ActorPlan{}, fmt.Errorf("unknown role %q", role)
	}
	typeName := exportedIdent(c.Name)
	if typeName == "" {
		return ActorPlan{}, fmt.Errorf("name %q yields no Go identifier", c.Name)
	}
	if reservedTypeNames[typeName] {
		return ActorPlan{}, fmt.Errorf("type name %s is reserved by the generated program", typeName)
	}
	fileName := FileNameFor(c.Name)
	if fileName == "sink.go" || fileName == "model.go" || fileName == "main.go" {
		return ActorPlan{}, fmt.Errorf("file name %s is reserved by the generated program", fileName)
	}

	p := actor.Params{
		InPorts:    len(c.InPorts),
		OutPorts:   len(c.OutPorts),
		Interval:   devs.Time(c.Interval(cfg.SensorInterval)),
		FanOut:     cfg.SensorFanOut,
		Delay:      devs.Time(cfg.GatewayDelay),
		ValueField: cfg.ValueField,
	}
	if role == actor.RoleController {
		conds, err := conditionsFor(c, cfg, p.OutPorts)
		if err != nil {
			return ActorPlan{}, err
		}
		p.Conditions = conds
	}
	if err := p.Validate(role); err != nil {
		return ActorPlan{}, err
	}
	return ActorPlan{
		Component: c,
		Role:      role,
		Params:    p,
		TypeName:  typeName,
		FileName:  fileName,
		VarName:   unexportedIdent(typeName),
	}, nil
}

// conditionsFor parses the component's declared conditions, or the
// configured defaults when it declares none. The i-th condition is routed
// to output port i mod outPorts.
func conditionsFor(c arch.ComponentRecord, cfg SynthConfig, outPorts int) ([]actor.Condition, error) {
	var exprs []string
	for _, b := range c.Behaviors {
		if b.Condition == "" {
			continue
		}
		expr := b.Condition
		if !strings.Contains(expr, "->") && !strings.Contains(expr, "→") && b.Name != "" {
			expr += " -> " + b.Name
		}
		exprs = append(exprs, expr)
	}
	if len(exprs) == 0 {
		exprs = cfg.Conditions
	}
	conds := make([]actor.Condition, 0, len(exprs))
	for i, expr := range exprs {
		cond, err := actor.ParseCondition(expr)
		if err != nil {
			return nil, err
		}
		if cond.Action == "" {
			return nil, fmt.Errorf("condition %q has no action", expr)
		}
		if outPorts > 0 {
			cond.Port = i % outPorts
		}
		conds = append(conds, cond)
	}
	return conds, nil
}

// FileNameFor returns the artifact name of a component.
func FileNameFor(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), "")) + ".go"
}

func exportedIdent(name string) string {
	var b strings.Builder
	upperNext := true
	for _, r := range name {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			upperNext = true
			continue
		}
		if b.Len() == 0 && unicode.IsDigit(r) {
			b.WriteString("C")
		}
		if upperNext {
			r = unicode.ToUpper(r)
			upperNext = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

func unexportedIdent(typeName string) string {
	if typeName == "" {
		return ""
	}
	runes := []rune(typeName)
	runes[0] = unicode.ToLower(runes[0])
	ident := string(runes)
	if goKeywords[ident] || generatedIdents[ident] {
		ident += "Actor"
	}
	return ident
}

// generatedIdents are package and local names used by the generated model.
var generatedIdents = map[string]bool{
	"m": true, "rng": true, "err": true, "seed": true, "c": true, "couplings": true,
	"devs": true, "actor": true, "rand": true, "fmt": true,
}

var goKeywords = map[string]bool{
	"break": true, "case": true, "chan": true, "const": true, "continue": true,
	"default": true, "defer": true, "else": true, "fallthrough": true, "for": true,
	"func": true, "go": true, "goto": true, "if": true, "import": true,
	"interface": true, "map": true, "package": true, "range": true, "return": true,
	"select": true, "struct": true, "switch": true, "type": true, "var": true,
}
