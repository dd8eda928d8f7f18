// Package dag holds the dependency graph a plan is scheduled from.
//
// Nodes are plan node names. An edge from -> to means "to depends on from":
// data flows from the dependency to its dependent. The graph remembers the
// order in which nodes and edges were added and every traversal follows that
// order, so identical input always produces identical output.
//
// The graph may be cyclic while it is being built. FindCycle and BreakCycle
// let the scheduler repair it one edge at a time.
package dag
