// Package codegen turns reconciled components into actor plans, assembles
// them into a topology and renders the generated Go program.
//
// Generation is a single linear pass:
//
//	Synthesize -> Assemble -> Render* -> ArtifactWriter
//
// A component whose synthesis fails is reported by name and left out; its
// siblings are still generated. Generator.Run drives the whole pass and
// returns a Report.
package codegen
