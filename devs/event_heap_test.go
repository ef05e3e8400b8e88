package devs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHeapActor(name string, order int) *Atomic {
	return &Atomic{Name: name, order: order}
}

func TestEventHeap_TimestampOrdering(t *testing.T) {
	h := NewEventHeap()
	a := newHeapActor("a", 0)
	h.Schedule(NewInternalEvent(10, 1, a, 0))
	h.Schedule(NewInternalEvent(5, 2, a, 0))
	h.Schedule(NewInternalEvent(15, 3, a, 0))

	assert.Equal(t, Time(5), h.PopNext().Timestamp())
	assert.Equal(t, Time(10), h.PopNext().Timestamp())
	assert.Equal(t, Time(15), h.PopNext().Timestamp())
	assert.Equal(t, 0, h.Len())
}

func TestEventHeap_SimultaneousEvents_DeclarationOrderWins(t *testing.T) {
	// GIVEN two actors imminent at the same time, the later-declared one scheduled first
	h := NewEventHeap()
	first := newHeapActor("first", 0)
	second := newHeapActor("second", 1)
	h.Schedule(NewInternalEvent(5, 1, second, 0))
	h.Schedule(NewInternalEvent(5, 2, first, 0))

	// WHEN popped
	// THEN the earlier-declared actor fires first regardless of event ID
	assert.Equal(t, "first", h.PopNext().(*InternalEvent).Actor.Name)
	assert.Equal(t, "second", h.PopNext().(*InternalEvent).Actor.Name)
}

func TestEventHeap_SameActorSameTime_EventIDBreaksTie(t *testing.T) {
	h := NewEventHeap()
	a := newHeapActor("a", 0)
	h.Schedule(NewInternalEvent(5, 9, a, 0))
	h.Schedule(NewInternalEvent(5, 3, a, 0))

	assert.Equal(t, uint64(3), h.PopNext().EventID())
	assert.Equal(t, uint64(9), h.PopNext().EventID())
}

func TestEventHeap_PeekEmpty_ReturnsNil(t *testing.T) {
	h := NewEventHeap()
	assert.Nil(t, h.Peek())
	h.Schedule(NewInternalEvent(1, 1, newHeapActor("a", 0), 0))
	require.NotNil(t, h.Peek())
	assert.Equal(t, 1, h.Len(), "Peek must not remove the event")
}
