package dag

import "slices"

// FindCycle runs a depth-first search along data-flow edges (dependency to
// dependent) over the nodes in `within`, or over every node when `within` is
// nil. Edges leaving the set are ignored.
//
// When the search reaches a node that is still on its recursion stack, it
// returns the path from that node's first occurrence to the point of
// rediscovery: path[i+1] depends on path[i], and path[0] depends on the last
// element. It returns nil when the set is acyclic.
func (g *Graph) FindCycle(within map[string]bool) []string {
	in := func(id string) bool {
		return within == nil || within[id]
	}

	visited := make(map[string]bool)
	onStack := make(map[string]bool)
	var path []string

	var visit func(id string) []string
	visit = func(id string) []string {
		visited[id] = true
		onStack[id] = true
		path = append(path, id)

		for _, next := range g.nodes[id].dependents {
			if !in(next) {
				continue
			}
			if onStack[next] {
				start := slices.Index(path, next)
				return slices.Clone(path[start:])
			}
			if !visited[next] {
				if cycle := visit(next); cycle != nil {
					return cycle
				}
			}
		}

		path = path[:len(path)-1]
		onStack[id] = false
		return nil
	}

	for _, id := range g.order {
		if in(id) && !visited[id] {
			if cycle := visit(id); cycle != nil {
				return cycle
			}
		}
	}
	return nil
}

// BreakCycle removes the dependency of the path's second node on its first
// node. It returns the removed edge and false when nothing was removed.
//
// The cut depends only on DFS discovery order, not on which edge matters
// least.
func (g *Graph) BreakCycle(path []string) (Edge, bool) {
	if len(path) < 2 {
		return Edge{}, false
	}
	e := Edge{From: path[0], To: path[1]}
	if !g.RemoveEdge(e.From, e.To) {
		return Edge{}, false
	}
	return e, true
}
