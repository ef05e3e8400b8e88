package arch

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContainmentMatcher(t *testing.T) {
	m := ContainmentMatcher{}
	tests := []struct {
		component, node string
		want            bool
	}{
		{"TemperatureSensor", "Temperature Sensor", true},
		{"TemperatureSensor", "Sensor", true},
		{"Sensor", "TemperatureSensor", true},
		{"TemperatureSensor", "temperature sensor", false},
		{"Window", "Server", false},
		{"", "Server", false},
	}
	for _, tt := range tests {
		t.Run(tt.component+"/"+tt.node, func(t *testing.T) {
			assert.Equal(t, tt.want, m.Match(tt.component, tt.node))
		})
	}
}

func TestExactMatcher(t *testing.T) {
	m := ExactMatcher{}
	assert.True(t, m.Match("Temperature Sensor", "TemperatureSensor"))
	assert.False(t, m.Match("TemperatureSensor", "Sensor"))
}

func TestNewMatcher(t *testing.T) {
	m, err := NewMatcher("")
	require.NoError(t, err)
	assert.IsType(t, ContainmentMatcher{}, m)
	m, err = NewMatcher(MatcherExact)
	require.NoError(t, err)
	assert.IsType(t, ExactMatcher{}, m)
	_, err = NewMatcher("fuzzy")
	assert.Error(t, err)
	assert.False(t, IsValidMatcher("fuzzy"))
}

func TestReconcile_MatchedNodeMergesIntoComponent(t *testing.T) {
	// GIVEN a software component and a node whose name contains it after whitespace removal
	sw := []ComponentRecord{{Name: "TemperatureSensor", OutPorts: []int{0}, Provenance: ProvenanceSoftware}}
	hw := []HardwareSpec{{Node: "Temperature Sensor", MACProtocol: "CSMA"}}

	// WHEN reconciled
	out, bindings := Reconcile(sw, hw, ContainmentMatcher{})

	// THEN the hardware merges and provenance becomes both, inputs untouched
	require.Len(t, out, 1)
	assert.Equal(t, ProvenanceBoth, out[0].Provenance)
	require.NotNil(t, out[0].Hardware)
	assert.Equal(t, "CSMA", out[0].Hardware.MACProtocol)
	assert.Equal(t, []Binding{{Node: hw[0], Component: 0}}, bindings)
	assert.Nil(t, sw[0].Hardware)
	assert.Equal(t, ProvenanceSoftware, sw[0].Provenance)
}

func TestReconcile_UnmatchedNodeBecomesHardwareOnlyComponent(t *testing.T) {
	out, bindings := Reconcile(
		[]ComponentRecord{{Name: "Window", InPorts: []int{0}}},
		[]HardwareSpec{{Node: "Server"}},
		ContainmentMatcher{},
	)

	require.Len(t, out, 2)
	srv := out[1]
	assert.Equal(t, "Server", srv.Name)
	assert.Equal(t, []int{0}, srv.InPorts)
	assert.Equal(t, []int{0}, srv.OutPorts)
	assert.Equal(t, ProvenanceHardware, srv.Provenance)
	assert.Equal(t, -1, srv.Position)
	assert.Equal(t, 1, bindings[0].Component)
}

func TestReconcile_FirstMatchWins(t *testing.T) {
	out, _ := Reconcile(
		[]ComponentRecord{{Name: "RoomSensor"}, {Name: "Sensor"}},
		[]HardwareSpec{{Node: "Sensor"}},
		ContainmentMatcher{},
	)
	assert.NotNil(t, out[0].Hardware)
	assert.Nil(t, out[1].Hardware)
}

func TestReconcile_ExactMatcherAvoidsCrossMatch(t *testing.T) {
	out, _ := Reconcile(
		[]ComponentRecord{{Name: "RoomSensor"}},
		[]HardwareSpec{{Node: "Sensor"}},
		ExactMatcher{},
	)
	require.Len(t, out, 2)
	assert.Nil(t, out[0].Hardware)
}

func TestRenamer_Apply(t *testing.T) {
	r := NewRenamer(nil, "")
	assert.Equal(t, "DataServer", r.Apply("Server"))
	assert.Equal(t, "DataModel", r.Apply("Model"))
	assert.Equal(t, "DataSimulator", r.Apply("Simulator"))
	assert.Equal(t, "WebServer", r.Apply("WebServer"), "only exact matches are renamed")
	assert.Equal(t, "server", r.Apply("server"))
}

func TestRenamer_RenameAll_DoesNotMutateInput(t *testing.T) {
	in := []ComponentRecord{{Name: "Server"}, {Name: "Window"}}
	out := NewRenamer(nil, "").RenameAll(in)
	assert.Equal(t, "DataServer", out[0].Name)
	assert.Equal(t, "Window", out[1].Name)
	assert.Equal(t, "Server", in[0].Name)
}

func TestRenamer_RenameAll_AvoidsExistingNames(t *testing.T) {
	// GIVEN a reserved Server next to a component already called DataServer
	in := []ComponentRecord{{Name: "Server"}, {Name: "DataServer"}, {Name: "Model"}, {Name: "DataModel"}, {Name: "DataDataModel"}}

	// WHEN renamed
	out := NewRenamer(nil, "").RenameAll(in)

	// THEN the existing names are kept and the renamed ones move past them
	names := make([]string, len(out))
	for i, c := range out {
		names[i] = c.Name
	}
	assert.Equal(t, []string{"DataDataServer", "DataServer", "DataDataDataModel", "DataModel", "DataDataModel"}, names)
}

func TestRenamer_Properties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	r := NewRenamer([]string{"Server", "Model", "Simulator", "DataServer"}, "Data")
	names := gen.OneGenOf(
		gen.OneConstOf("Server", "Model", "Simulator", "DataServer", "DataModel"),
		gen.AlphaString(),
	)

	properties.Property("rename is idempotent", prop.ForAll(
		func(name string) bool {
			once := r.Apply(name)
			return r.Apply(once) == once
		},
		names,
	))

	properties.Property("renamed names are never reserved", prop.ForAll(
		func(name string) bool {
			return !r.reserved[r.Apply(name)]
		},
		names,
	))

	properties.Property("RenameAll keeps distinct names distinct", prop.ForAll(
		func(raw []string) bool {
			seen := make(map[string]bool)
			var in []ComponentRecord
			for _, n := range raw {
				if !seen[n] {
					seen[n] = true
					in = append(in, ComponentRecord{Name: n})
				}
			}
			out := r.RenameAll(in)
			names := make(map[string]bool, len(out))
			for _, c := range out {
				if names[c.Name] || r.reserved[c.Name] {
					return false
				}
				names[c.Name] = true
			}
			return true
		},
		gen.SliceOf(names),
	))

	properties.Property("non-reserved names are unchanged", prop.ForAll(
		func(name string) bool {
			if r.reserved[name] {
				return true
			}
			return r.Apply(name) == name
		},
		names,
	))

	properties.TestingRun(t)
}
