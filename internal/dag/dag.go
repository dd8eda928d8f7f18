package dag

import (
	"fmt"
	"slices"
	"strings"
)

// New creates and returns an initialized, empty Graph.
func New() *Graph {
	return &Graph{
		nodes: make(map[string]*node),
	}
}

// AddNode adds a new node with the given ID to the graph. If a node with
// the same ID already exists, the function does nothing.
func (g *Graph) AddNode(id string) {
	if _, ok := g.nodes[id]; ok {
		return
	}
	g.order = append(g.order, id)
	g.nodes[id] = &node{id: id}
}

// AddEdge creates a directed edge from the `fromID` node to the `toID` node.
// This signifies that `toID` has a dependency on `fromID`. An error is returned
// if either node does not exist or if the edge would create a self-reference.
// Adding an existing edge is a no-op.
func (g *Graph) AddEdge(fromID, toID string) error {
	if fromID == toID {
		return fmt.Errorf("self-referential edge not allowed: %s -> %s", fromID, fromID)
	}

	fromNode, ok := g.nodes[fromID]
	if !ok {
		return fmt.Errorf("source node not found: %s", fromID)
	}

	toNode, ok := g.nodes[toID]
	if !ok {
		return fmt.Errorf("destination node not found: %s", toID)
	}

	if slices.Contains(toNode.deps, fromID) {
		return nil
	}
	toNode.deps = append(toNode.deps, fromID)
	fromNode.dependents = append(fromNode.dependents, toID)

	return nil
}

// RemoveEdge deletes the edge fromID -> toID. It reports whether the edge existed.
func (g *Graph) RemoveEdge(fromID, toID string) bool {
	fromNode, ok := g.nodes[fromID]
	if !ok {
		return false
	}
	toNode, ok := g.nodes[toID]
	if !ok {
		return false
	}

	i := slices.Index(toNode.deps, fromID)
	if i < 0 {
		return false
	}
	toNode.deps = slices.Delete(toNode.deps, i, i+1)
	if j := slices.Index(fromNode.dependents, toID); j >= 0 {
		fromNode.dependents = slices.Delete(fromNode.dependents, j, j+1)
	}
	return true
}

// HasEdge reports whether toID depends on fromID.
func (g *Graph) HasEdge(fromID, toID string) bool {
	n, ok := g.nodes[toID]
	return ok && slices.Contains(n.deps, fromID)
}

// Has reports whether the node exists.
func (g *Graph) Has(id string) bool {
	_, ok := g.nodes[id]
	return ok
}

// Nodes returns all node IDs in insertion order.
func (g *Graph) Nodes() []string {
	return slices.Clone(g.order)
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return len(g.order)
}

// Dependencies returns the IDs the given node depends on.
func (g *Graph) Dependencies(id string) ([]string, error) {
	n, ok := g.nodes[id]
	if !ok {
		return nil, fmt.Errorf("node not found: %s", id)
	}
	return slices.Clone(n.deps), nil
}

// Dependents returns the IDs that depend on the given node.
func (g *Graph) Dependents(id string) ([]string, error) {
	n, ok := g.nodes[id]
	if !ok {
		return nil, fmt.Errorf("node not found: %s", id)
	}
	return slices.Clone(n.dependents), nil
}

// DetectCycles checks the whole graph for cycles. It returns a non-nil error
// naming the nodes of the first cycle found.
func (g *Graph) DetectCycles() error {
	if cycle := g.FindCycle(nil); cycle != nil {
		return fmt.Errorf("cycle detected: %s", FormatCycle(cycle))
	}
	return nil
}

// FormatCycle renders a cycle path as "a -> b -> c -> a".
func FormatCycle(path []string) string {
	if len(path) == 0 {
		return ""
	}
	return strings.Join(append(slices.Clone(path), path[0]), " -> ")
}
