// Package orchestrator wires the loader → validator → emitter pipeline,
// providing dependency injection friendly helpers for consumers that prefer a
// single entry point from registry document to generated source units.
package orchestrator
