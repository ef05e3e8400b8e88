package trace

// TraceLevel controls the verbosity of transition tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelTransitions captures every output, internal and external transition.
	TraceLevelTransitions TraceLevel = "transitions"
)

var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:        true,
	TraceLevelTransitions: true,
	"":                    true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// Trace collects transition records during a run.
type Trace struct {
	Level       TraceLevel
	Transitions []TransitionRecord
}

// NewTrace creates a Trace ready for recording.
func NewTrace(level TraceLevel) *Trace {
	return &Trace{
		Level:       level,
		Transitions: make([]TransitionRecord, 0),
	}
}

// Enabled reports whether records are kept. Safe on a nil Trace.
func (t *Trace) Enabled() bool {
	return t != nil && t.Level == TraceLevelTransitions
}

// Record appends a transition record when tracing is enabled.
func (t *Trace) Record(r TransitionRecord) {
	if !t.Enabled() {
		return
	}
	t.Transitions = append(t.Transitions, r)
}

// ForActor returns the records of one actor in recording order.
func (t *Trace) ForActor(actor string) []TransitionRecord {
	if t == nil {
		return nil
	}
	var out []TransitionRecord
	for _, r := range t.Transitions {
		if r.Actor == actor {
			out = append(out, r)
		}
	}
	return out
}
