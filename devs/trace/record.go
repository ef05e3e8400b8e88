// Package trace provides transition recording for actor-network runs.
// It has no dependencies on devs/ and stores pure data types.
package trace

// TransitionKind names the actor operation a record captures.
type TransitionKind string

const (
	KindOutput   TransitionKind = "output"
	KindInternal TransitionKind = "internal"
	KindExternal TransitionKind = "external"
)

// TransitionRecord captures one actor operation.
type TransitionRecord struct {
	Clock   float64
	Actor   string
	Kind    TransitionKind
	Port    int    // output or input port; -1 for internal transitions
	Payload string // %v rendering of the payload, empty for internal transitions
}
