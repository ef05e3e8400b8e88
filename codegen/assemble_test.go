package codegen

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/likhithkanigolla/CAPS-IIITH/arch"
	"github.com/likhithkanigolla/CAPS-IIITH/devs"
	"github.com/likhithkanigolla/CAPS-IIITH/devs/actor"
)

func conn(src string, sp int, dst string, dp int) arch.ConnectionRecord {
	return arch.ConnectionRecord{
		SourceComponent: src, SourcePort: sp, SourceDirection: arch.DirectionOutput,
		TargetComponent: dst, TargetPort: dp, TargetDirection: arch.DirectionInput,
	}
}

func plansFor(t *testing.T, comps ...arch.ComponentRecord) []ActorPlan {
	t.Helper()
	plans, failures := Synthesize(comps, DefaultSynthConfig())
	require.Empty(t, failures)
	return plans
}

func TestAssemble_UnwiredOutputsGoToSink(t *testing.T) {
	// GIVEN a controller with two outputs, only one connected
	plans := plansFor(t,
		record("Controller", actor.RoleController, 1, 2),
		record("Window", actor.RoleActuator, 1, 0),
	)

	// WHEN assembled
	topo := Assemble("m", plans, []arch.ConnectionRecord{conn("Controller", 0, "Window", 0)})

	// THEN the other output port is routed to its own sink input
	assert.Equal(t, []Wire{{From: "Controller", FromPort: 0, To: "Window", ToPort: 0}}, topo.Wires)
	assert.Equal(t, []Wire{{From: "Controller", FromPort: 1, To: actor.SinkName, ToPort: 0}}, topo.SinkWires)
	assert.Empty(t, topo.Dropped)
}

func TestAssemble_DropsUnwireableConnections(t *testing.T) {
	plans := plansFor(t,
		record("S", actor.RoleSensor, 0, 1),
		record("A", actor.RoleActuator, 1, 0),
	)
	fallback := arch.ConnectionRecord{SourceComponent: "S", TargetComponent: "A", Fallback: true}

	topo := Assemble("m", plans, []arch.ConnectionRecord{
		conn("S", 0, "A", 0),
		conn("S", 3, "A", 0), // no such output
		conn("Ghost", 0, "A", 0),
		fallback,
	})

	assert.Equal(t, []Wire{{From: "S", FromPort: 0, To: "A", ToPort: 0}}, topo.Wires)
	assert.Empty(t, topo.SinkWires)
	assert.Len(t, topo.Dropped, 2)
}

func TestAssemble_FanOut_WiresEveryConnection(t *testing.T) {
	// GIVEN one sensor output connected to two actuators, once repeated
	plans := plansFor(t,
		record("S", actor.RoleSensor, 0, 1),
		record("A", actor.RoleActuator, 1, 0),
		record("B", actor.RoleActuator, 1, 0),
	)

	// WHEN assembled
	topo := Assemble("m", plans, []arch.ConnectionRecord{
		conn("S", 0, "A", 0),
		conn("S", 0, "B", 0),
		conn("S", 0, "A", 0),
	})

	// THEN both targets are wired and the port gets no sink wire
	assert.Equal(t, []Wire{
		{From: "S", FromPort: 0, To: "A", ToPort: 0},
		{From: "S", FromPort: 0, To: "B", ToPort: 0},
	}, topo.Wires)
	assert.Empty(t, topo.SinkWires)
	assert.Empty(t, topo.Dropped)
}

func TestTopology_Build_FanOutDeliversToEveryTarget(t *testing.T) {
	// GIVEN a sensor fanned out to a relay and an actuator
	topo := Assemble("m", plansFor(t,
		record("TemperatureSensor", actor.RoleSensor, 0, 1),
		record("Window", actor.RoleActuator, 1, 0),
		record("Relay", actor.RoleGeneric, 1, 1),
	), []arch.ConnectionRecord{
		conn("TemperatureSensor", 0, "Window", 0),
		conn("TemperatureSensor", 0, "Relay", 0),
	})

	// WHEN run for 20 seconds
	model, sink, err := topo.Build(7)
	require.NoError(t, err)
	sim, err := devs.NewSimulator(model, 20)
	require.NoError(t, err)
	sim.Run()

	// THEN the relay forwarded each reading to the sink
	require.NotNil(t, sink)
	assert.Equal(t, 4, sink.Received)
	assert.Len(t, model.Influencees(devs.PortRef{Actor: "TemperatureSensor", Port: 0}), 2)
}

func TestAssemble_OutputPortsGetWiresOrOneSinkWire(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("each output port has resolved wires or exactly one sink wire", prop.ForAll(
		func(outs []int, picks []int) bool {
			var comps []arch.ComponentRecord
			names := []string{"A", "B", "C", "D"}
			for i, n := range outs {
				if i >= len(names) {
					break
				}
				comps = append(comps, record(names[i], actor.RoleGeneric, 2, n))
			}
			plans, failures := Synthesize(comps, DefaultSynthConfig())
			if len(failures) > 0 {
				return false
			}
			var conns []arch.ConnectionRecord
			for i := 0; i+3 < len(picks) && len(comps) > 0; i += 4 {
				src := comps[picks[i]%len(comps)].Name
				dst := comps[picks[i+2]%len(comps)].Name
				conns = append(conns, conn(src, picks[i+1], dst, picks[i+3]%2))
			}
			topo := Assemble("m", plans, conns)
			resolved := make(map[devs.PortRef]int)
			for _, w := range topo.Wires {
				resolved[devs.PortRef{Actor: w.From, Port: w.FromPort}]++
			}
			toSink := make(map[devs.PortRef]int)
			for _, w := range topo.SinkWires {
				toSink[devs.PortRef{Actor: w.From, Port: w.FromPort}]++
			}
			for _, p := range plans {
				for port := 0; port < p.Params.OutPorts; port++ {
					ref := devs.PortRef{Actor: p.Name(), Port: port}
					if resolved[ref] > 0 && toSink[ref] != 0 {
						return false
					}
					if resolved[ref] == 0 && toSink[ref] != 1 {
						return false
					}
				}
			}
			return len(topo.Wires)+len(topo.Dropped) <= len(conns)
		},
		gen.SliceOf(gen.IntRange(0, 3)),
		gen.SliceOf(gen.IntRange(0, 3)),
	))

	properties.TestingRun(t)
}

func TestTopology_Build_RunsSensorIntoSink(t *testing.T) {
	// GIVEN one temperature sensor and nothing else
	c := record("TemperatureSensor", actor.RoleSensor, 0, 1)
	topo := Assemble("m", plansFor(t, c), nil)
	require.Len(t, topo.SinkWires, 1)

	// WHEN built and run for 20 seconds
	model, sink, err := topo.Build(42)
	require.NoError(t, err)
	require.NotNil(t, sink)
	sim, err := devs.NewSimulator(model, 20)
	require.NoError(t, err)
	sim.Run()

	// THEN every 5-second reading reached the sink
	assert.Equal(t, 4, sink.Received)
	sensor := model.Actor("TemperatureSensor").Behavior
	assert.Equal(t, actor.DefaultSensorInterval, sensor.TimeAdvance())
}

func TestTopology_Build_NoSinkWhenAllWired(t *testing.T) {
	topo := Assemble("m", plansFor(t,
		record("S", actor.RoleSensor, 0, 1),
		record("A", actor.RoleActuator, 1, 0),
	), []arch.ConnectionRecord{conn("S", 0, "A", 0)})

	model, sink, err := topo.Build(1)

	require.NoError(t, err)
	assert.Nil(t, sink)
	assert.Nil(t, model.Actor(actor.SinkName))
}
