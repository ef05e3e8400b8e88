package devs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/likhithkanigolla/CAPS-IIITH/devs/trace"
)

func newPipeline(t *testing.T, limit int) (*Coupled, *recorder) {
	t.Helper()
	m := NewCoupled("pipeline")
	rec := &recorder{}
	_, err := m.AddActor("src", 0, 1, &ticker{period: 5, limit: limit})
	require.NoError(t, err)
	_, err = m.AddActor("dst", 1, 0, rec)
	require.NoError(t, err)
	require.NoError(t, m.Connect("src", 0, "dst", 0))
	return m, rec
}

func TestSimulator_Run_DeliversOutputsAtInternalTimes(t *testing.T) {
	// GIVEN a ticker with period 5 and three outputs feeding a recorder
	m, rec := newPipeline(t, 3)
	sim, err := NewSimulator(m, 100)
	require.NoError(t, err)

	// WHEN the network runs to quiescence
	sim.Run()

	// THEN each output arrives at the time of the producing internal transition
	assert.Equal(t, []any{0, 1, 2}, rec.received)
	assert.Equal(t, []Time{5, 10, 15}, rec.times)
	assert.Equal(t, []Time{5, 5, 5}, rec.elapsed)
	assert.Equal(t, Time(15), sim.Clock)
	assert.Equal(t, 3, sim.Steps)
	assert.True(t, sim.NextEventTime().IsInfinite())
}

func TestSimulator_Run_StopsAtHorizon(t *testing.T) {
	m, rec := newPipeline(t, 100)
	sim, err := NewSimulator(m, 12)
	require.NoError(t, err)

	sim.Run()

	assert.Len(t, rec.received, 2)
	assert.Equal(t, Time(10), sim.Clock)
	assert.Equal(t, Time(15), sim.NextEventTime(), "next event stays pending past the horizon")
}

func TestSimulator_SimultaneousInternals_FireInDeclarationOrder(t *testing.T) {
	// GIVEN two tickers imminent at identical times
	var order []string
	m := NewCoupled("tie")
	rec := &recorder{}
	_, err := m.AddActor("a", 0, 1, &ticker{period: 5, limit: 2, log: &order, name: "a"})
	require.NoError(t, err)
	_, err = m.AddActor("b", 0, 1, &ticker{period: 5, limit: 2, log: &order, name: "b"})
	require.NoError(t, err)
	_, err = m.AddActor("dst", 2, 0, rec)
	require.NoError(t, err)
	require.NoError(t, m.Connect("a", 0, "dst", 0))
	require.NoError(t, m.Connect("b", 0, "dst", 1))

	sim, err := NewSimulator(m, 100)
	require.NoError(t, err)

	// WHEN run
	sim.Run()

	// THEN the earlier-declared actor always fires first
	assert.Equal(t, []string{"a", "b", "a", "b"}, order)
}

func TestSimulator_ZeroDelayChain_DeliversAtSameTime(t *testing.T) {
	// GIVEN src -> echo -> dst where echo forwards with zero delay
	m := NewCoupled("chain")
	rec := &recorder{}
	_, err := m.AddActor("src", 0, 1, &ticker{period: 2, limit: 1})
	require.NoError(t, err)
	_, err = m.AddActor("echo", 1, 1, &echo{})
	require.NoError(t, err)
	_, err = m.AddActor("dst", 1, 0, rec)
	require.NoError(t, err)
	require.NoError(t, m.Connect("src", 0, "echo", 0))
	require.NoError(t, m.Connect("echo", 0, "dst", 0))

	sim, err := NewSimulator(m, 10)
	require.NoError(t, err)
	sim.Trace = trace.NewTrace(trace.TraceLevelTransitions)

	sim.Run()

	// THEN the payload reaches dst at the time it left src
	assert.Equal(t, []any{0}, rec.received)
	assert.Equal(t, []Time{2}, rec.times)
	assert.Equal(t, 2, sim.Steps)

	kinds := []trace.TransitionKind{}
	for _, r := range sim.Trace.Transitions {
		kinds = append(kinds, r.Kind)
	}
	assert.Equal(t, []trace.TransitionKind{
		trace.KindOutput, trace.KindInternal, trace.KindExternal,
		trace.KindOutput, trace.KindInternal, trace.KindExternal,
	}, kinds)
	assert.Len(t, sim.Trace.ForActor("dst"), 1)
}

func TestSimulator_FanOut_DeliversToEveryInfluencee(t *testing.T) {
	m := NewCoupled("fan")
	r1, r2 := &recorder{}, &recorder{}
	_, err := m.AddActor("src", 0, 1, &ticker{period: 1, limit: 1})
	require.NoError(t, err)
	_, err = m.AddActor("r1", 1, 0, r1)
	require.NoError(t, err)
	_, err = m.AddActor("r2", 1, 0, r2)
	require.NoError(t, err)
	require.NoError(t, m.Connect("src", 0, "r1", 0))
	require.NoError(t, m.Connect("src", 0, "r2", 0))

	sim, err := NewSimulator(m, 10)
	require.NoError(t, err)
	sim.Run()

	assert.Equal(t, []any{0}, r1.received)
	assert.Equal(t, []any{0}, r2.received)
}

type negative struct{ ticker }

func (n *negative) TimeAdvance() Time { return -1 }

func TestSimulator_NegativeTimeAdvance_Panics(t *testing.T) {
	m := NewCoupled("bad")
	_, err := m.AddActor("neg", 0, 0, &negative{})
	require.NoError(t, err)
	sim, err := NewSimulator(m, 10)
	require.NoError(t, err)

	assert.Panics(t, func() { sim.Initialize() })
}

func TestNewSimulator_InvalidArguments_ReturnError(t *testing.T) {
	_, err := NewSimulator(nil, 10)
	assert.Error(t, err)
	_, err = NewSimulator(NewCoupled("m"), -1)
	assert.Error(t, err)
}

func TestSimulator_EmptyModel_IsQuiescent(t *testing.T) {
	sim, err := NewSimulator(NewCoupled("empty"), 10)
	require.NoError(t, err)
	assert.False(t, sim.Step())
	assert.Equal(t, 0, sim.Steps)
}
