// Package workflow implements the order workflow engine: the closed event
// vocabulary, the static transition table with guarded alternatives for
// branch states, the per-order instance runtime, and the precomputed replay
// paths that the recovery engine uses to rebuild an instance from a persisted
// state name.
package workflow
