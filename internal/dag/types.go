package dag

// Graph is an insertion-ordered directed graph. It is built and consumed by a
// single planning request and is not safe for concurrent use.
type Graph struct {
	// order lists node IDs in insertion order.
	order []string
	// nodes stores all nodes in the graph, keyed by their unique ID.
	nodes map[string]*node
}

// node represents a single vertex in the graph. It is un-exported to
// enforce interaction with the graph via the public API (using string IDs),
// not by direct struct manipulation.
type node struct {
	id string
	// deps holds the IDs this node depends on (predecessors), in edge order.
	deps []string
	// dependents holds the IDs that depend on this node (successors).
	dependents []string
}

// Edge is a single dependency: To depends on From.
type Edge struct {
	From string
	To   string
}
