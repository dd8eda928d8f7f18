// Package scheduler turns an acyclic dependency graph into execution levels.
//
// It runs Kahn's algorithm, but instead of releasing one node at a time each
// pass collects every node whose dependencies have all been scheduled into a
// single level. Nodes in the same level have no dependency edges between them
// and are candidates for concurrent execution.
//
// # State Machine
//
// The retry loop is an explicit state machine with a fixed budget, so it
// terminates by construction:
//
//	COLLECTING_READY ──(ready nodes)──────────────▶ COLLECTING_READY
//	COLLECTING_READY ──(none ready, nodes left)───▶ CYCLE_FOUND
//	CYCLE_FOUND      ──(edge removed)─────────────▶ COLLECTING_READY
//	CYCLE_FOUND      ──(no cycle to break)────────▶ FORCED_TERMINATION
//	COLLECTING_READY ──(level budget spent)───────▶ FORCED_TERMINATION
//	COLLECTING_READY ──(nothing left)─────────────▶ DONE
//	FORCED_TERMINATION ───────────────────────────▶ DONE
//
// Level passes are capped at node count + 1. Each cycle break removes one
// edge, so the number of breaks is bounded by the edge count. In-degrees are
// recomputed from scratch after every break.
package scheduler
