// Package devs provides the sequential discrete-event kernel that executes
// networks of synthesized actors.
//
// # Reading Guide
//
//   - behavior.go: the actor contract (time advance, internal transition,
//     external transition, output function)
//   - coupled.go: the coupled model (actors plus port-to-port couplings)
//   - simulator.go: the classic-DEVS coordinator loop
//   - event_heap.go: deterministic ordering of pending internal events
//
// # Tie-breaking
//
// When several actors are imminent at the same instant the simulator fires
// them one at a time, ordered by timestamp, then by the order in which the
// actors were added to the coupled model, then by event sequence number.
// Role behaviours live in devs/actor; decision traces in devs/trace.
package devs
