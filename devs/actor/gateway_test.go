package actor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/likhithkanigolla/CAPS-IIITH/devs"
)

func TestGateway_ForwardsAfterDelayInEnvelope(t *testing.T) {
	// GIVEN an idle gateway with delay 1
	g := NewGateway("Gateway", Params{InPorts: 1, OutPorts: 1, Delay: 1})
	require.True(t, g.TimeAdvance().IsInfinite())

	// WHEN a reading arrives at t=5
	reading := NewReading("s", 5, 21)
	g.ExternalTransition(5, 5, devs.Bag{0: reading})

	// THEN it is forwarded one second later, wrapped as processed
	assert.Equal(t, devs.Time(1), g.TimeAdvance())
	out := g.Output()
	env := out[0].(*Message)
	assert.True(t, env.Processed)
	assert.Same(t, reading, env.Original)
	assert.Equal(t, 6.0, env.Timestamp)

	g.InternalTransition(6)
	assert.True(t, g.TimeAdvance().IsInfinite())
	assert.Equal(t, 1, g.State().Forwarded)
}

func TestGateway_QueuedInputs_ForwardFIFO(t *testing.T) {
	// GIVEN a gateway busy with one item
	g := NewGateway("g", Params{InPorts: 1, OutPorts: 1, Delay: 2})
	g.ExternalTransition(0, 0, devs.Bag{0: "first"})

	// WHEN a second item arrives half-way through
	g.ExternalTransition(1, 1, devs.Bag{0: "second"})

	// THEN the first still completes on schedule and the second follows
	assert.Equal(t, devs.Time(1), g.TimeAdvance())
	assert.Equal(t, "first", g.Output()[0].(*Message).Original)
	g.InternalTransition(2)
	assert.Equal(t, devs.Time(2), g.TimeAdvance())
	assert.Equal(t, "second", g.Output()[0].(*Message).Original)
}

func TestRelay_ForwardsUnchangedWithZeroDelay(t *testing.T) {
	r := NewRelay("r", Params{InPorts: 1, OutPorts: 1})
	r.ExternalTransition(3, 3, devs.Bag{0: 42})

	assert.Equal(t, devs.Time(0), r.TimeAdvance())
	assert.Equal(t, devs.Bag{0: 42}, r.Output())
	r.InternalTransition(3)
	assert.True(t, r.TimeAdvance().IsInfinite())
}

func TestSink_CountsReceived(t *testing.T) {
	s := NewSink()
	s.ExternalTransition(1, 1, devs.Bag{0: "a", 1: "b"})
	assert.Equal(t, 2, s.Received)
	assert.True(t, s.TimeAdvance().IsInfinite())
}
