// Package arch reads CAPS architecture documents and turns them into
// reconciled, classified component records and resolved connections.
//
// # Reading Guide
//
// The pipeline runs in this order, one file per stage:
//
//   - document.go: XML element tree with namespace-aware type lookup
//   - extract.go: software components and hardware nodes
//   - reconcile.go: hardware-onto-software matching (Matcher strategies)
//   - rename.go: reserved-identifier collision rule
//   - classify.go: ordered ClassificationRule list
//   - connection.go: reference-path resolution and the hardware fallback
//
// Every stage consumes the previous stage's output and never mutates it
// after reconciliation and renaming have finished.
package arch
