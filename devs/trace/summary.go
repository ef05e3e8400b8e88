package trace

// ActorCounts holds per-actor transition counts.
type ActorCounts struct {
	Outputs   int
	Internal  int
	External  int
	LastClock float64
}

// TraceSummary aggregates statistics from a Trace.
type TraceSummary struct {
	TotalTransitions int
	EndClock         float64
	PerActor         map[string]ActorCounts
}

// Summarize computes aggregate statistics from a Trace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(t *Trace) *TraceSummary {
	summary := &TraceSummary{
		PerActor: make(map[string]ActorCounts),
	}
	if t == nil {
		return summary
	}

	summary.TotalTransitions = len(t.Transitions)
	for _, r := range t.Transitions {
		c := summary.PerActor[r.Actor]
		switch r.Kind {
		case KindOutput:
			c.Outputs++
		case KindInternal:
			c.Internal++
		case KindExternal:
			c.External++
		}
		if r.Clock > c.LastClock {
			c.LastClock = r.Clock
		}
		summary.PerActor[r.Actor] = c
		if r.Clock > summary.EndClock {
			summary.EndClock = r.Clock
		}
	}
	return summary
}
