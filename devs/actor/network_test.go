package actor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/likhithkanigolla/CAPS-IIITH/devs"
	"github.com/likhithkanigolla/CAPS-IIITH/devs/trace"
)

func TestNetwork_SensorGatewayControllerActuator(t *testing.T) {
	// GIVEN sensor -> gateway -> controller -> actuator, with the controller's
	// second port feeding the sink
	rng := devs.NewPartitionedRNG(devs.NewSimulationKey(42))
	m := devs.NewCoupled("network")

	open, err := ParseCondition("value > 25 -> open")
	require.NoError(t, err)
	closeC, err := ParseCondition("value < 18 -> close")
	require.NoError(t, err)
	closeC.Port = 1

	sensor, err := New(RoleSensor, "TemperatureSensor", Params{OutPorts: 1, Interval: 5}, rng.ForActor("TemperatureSensor"))
	require.NoError(t, err)
	gw, err := New(RoleInterface, "Gateway", Params{InPorts: 1, OutPorts: 1, Delay: 1}, nil)
	require.NoError(t, err)
	ctl, err := New(RoleController, "Controller", Params{InPorts: 1, OutPorts: 2, ValueField: DefaultValueField, Conditions: []Condition{open, closeC}}, nil)
	require.NoError(t, err)
	act, err := New(RoleActuator, "Valve", Params{InPorts: 1}, nil)
	require.NoError(t, err)
	sink := NewSink()

	for _, a := range []struct {
		name    string
		in, out int
		b       devs.Behavior
	}{
		{"TemperatureSensor", 0, 1, sensor},
		{"Gateway", 1, 1, gw},
		{"Controller", 1, 2, ctl},
		{"Valve", 1, 0, act},
		{SinkName, 1, 0, sink},
	} {
		_, err := m.AddActor(a.name, a.in, a.out, a.b)
		require.NoError(t, err)
	}
	require.NoError(t, m.Connect("TemperatureSensor", 0, "Gateway", 0))
	require.NoError(t, m.Connect("Gateway", 0, "Controller", 0))
	require.NoError(t, m.Connect("Controller", 0, "Valve", 0))
	require.NoError(t, m.Connect("Controller", 1, SinkName, 0))
	require.NoError(t, m.Validate())

	sim, err := devs.NewSimulator(m, 60)
	require.NoError(t, err)
	sim.Trace = trace.NewTrace(trace.TraceLevelTransitions)

	// WHEN run for a minute
	sim.Run()

	// THEN the sensor produced one reading per interval and each was forwarded
	s := sensor.(*Sensor)
	g := gw.(*Gateway)
	assert.Equal(t, 12, s.State().Readings)
	assert.Equal(t, 11, g.State().Forwarded, "the reading at t=60 is still in flight")

	// AND every emitted command reached its port's consumer
	summary := trace.Summarize(sim.Trace)
	ctlOut := summary.PerActor["Controller"].Outputs
	assert.Equal(t, ctlOut, act.(*Actuator).State().Commands+sink.Received)
	assert.Nil(t, ctl.(*Controller).State().PendingOutput)
}
