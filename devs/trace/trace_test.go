package trace

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrace_Record_DisabledLevel_KeepsNothing(t *testing.T) {
	tr := NewTrace(TraceLevelNone)
	tr.Record(TransitionRecord{Clock: 1, Actor: "a", Kind: KindInternal, Port: -1})
	assert.Empty(t, tr.Transitions)
}

func TestTrace_Record_NilTrace_IsNoop(t *testing.T) {
	var tr *Trace
	assert.NotPanics(t, func() { tr.Record(TransitionRecord{Actor: "a"}) })
	assert.False(t, tr.Enabled())
	assert.Nil(t, tr.ForActor("a"))
}

func TestTrace_ForActor_FiltersInOrder(t *testing.T) {
	// GIVEN a trace with interleaved actors
	tr := NewTrace(TraceLevelTransitions)
	tr.Record(TransitionRecord{Clock: 1, Actor: "a", Kind: KindOutput})
	tr.Record(TransitionRecord{Clock: 1, Actor: "b", Kind: KindExternal})
	tr.Record(TransitionRecord{Clock: 2, Actor: "a", Kind: KindInternal})

	// WHEN filtered
	got := tr.ForActor("a")

	// THEN only a's records remain in recording order
	assert.Len(t, got, 2)
	assert.Equal(t, KindOutput, got[0].Kind)
	assert.Equal(t, KindInternal, got[1].Kind)
}

func TestIsValidTraceLevel(t *testing.T) {
	assert.True(t, IsValidTraceLevel("none"))
	assert.True(t, IsValidTraceLevel("transitions"))
	assert.True(t, IsValidTraceLevel(""))
	assert.False(t, IsValidTraceLevel("verbose"))
}

func TestSummarize_CountsPerActor(t *testing.T) {
	tr := NewTrace(TraceLevelTransitions)
	tr.Record(TransitionRecord{Clock: 5, Actor: "s", Kind: KindOutput})
	tr.Record(TransitionRecord{Clock: 5, Actor: "s", Kind: KindInternal})
	tr.Record(TransitionRecord{Clock: 5, Actor: "g", Kind: KindExternal})
	tr.Record(TransitionRecord{Clock: 6, Actor: "g", Kind: KindOutput})

	s := Summarize(tr)

	assert.Equal(t, 4, s.TotalTransitions)
	assert.Equal(t, 6.0, s.EndClock)
	assert.Equal(t, ActorCounts{Outputs: 1, Internal: 1, LastClock: 5}, s.PerActor["s"])
	assert.Equal(t, ActorCounts{Outputs: 1, External: 1, LastClock: 6}, s.PerActor["g"])
}

func TestSummarize_Nil_ReturnsZero(t *testing.T) {
	s := Summarize(nil)
	assert.Equal(t, 0, s.TotalTransitions)
	assert.NotNil(t, s.PerActor)
}
