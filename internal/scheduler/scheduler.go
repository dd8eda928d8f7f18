package scheduler

import (
	"context"

	"github.com/specialistvlad/callplan/internal/ctxlog"
	"github.com/specialistvlad/callplan/internal/dag"
)

type state int

const (
	stateCollectingReady state = iota
	stateCycleFound
	stateForcedTermination
	stateDone
)

func (s state) String() string {
	switch s {
	case stateCollectingReady:
		return "COLLECTING_READY"
	case stateCycleFound:
		return "CYCLE_FOUND"
	case stateForcedTermination:
		return "FORCED_TERMINATION"
	case stateDone:
		return "DONE"
	}
	return "UNKNOWN"
}

// Result is the outcome of a scheduling run.
type Result struct {
	// Levels is the execution order; every node appears exactly once.
	Levels [][]string
	// Broken lists the edges removed to restore acyclicity, in removal order.
	Broken []dag.Edge
	// Forced is true when the remaining nodes had to be dumped into a final
	// level without a valid ordering.
	Forced bool
}

// run holds the mutable bookkeeping of a single Schedule call.
type run struct {
	g         *dag.Graph
	order     []string
	remaining map[string]bool
	inDegree  map[string]int
}

// Schedule levels the graph, breaking cycles in place when it has to. The
// graph passed in is mutated: broken edges are removed from it.
func Schedule(ctx context.Context, g *dag.Graph) Result {
	return schedule(ctx, g, g.Len()+1)
}

func schedule(ctx context.Context, g *dag.Graph, budget int) Result {
	logger := ctxlog.FromContext(ctx)

	r := &run{
		g:         g,
		order:     g.Nodes(),
		remaining: make(map[string]bool, g.Len()),
	}
	for _, id := range r.order {
		r.remaining[id] = true
	}
	r.recomputeInDegrees()

	res := Result{Levels: [][]string{}}
	passes := 0

	st := stateCollectingReady
	for st != stateDone {
		switch st {
		case stateCollectingReady:
			if len(r.remaining) == 0 {
				st = stateDone
				continue
			}
			if passes >= budget {
				st = stateForcedTermination
				continue
			}

			ready := r.ready()
			if len(ready) == 0 {
				st = stateCycleFound
				continue
			}
			passes++
			res.Levels = append(res.Levels, ready)
			r.release(ready)

		case stateCycleFound:
			cycle := g.FindCycle(r.remaining)
			edge, ok := g.BreakCycle(cycle)
			if !ok {
				logger.Debug("No breakable cycle among remaining nodes.", "state", st)
				st = stateForcedTermination
				continue
			}
			logger.Warn("Dependency cycle detected; removing one edge to continue.",
				"cycle", cycle,
				"removed_dependency", edge.From,
				"of_node", edge.To,
			)
			res.Broken = append(res.Broken, edge)
			r.recomputeInDegrees()
			st = stateCollectingReady

		case stateForcedTermination:
			rest := r.pending()
			logger.Warn("Unable to resolve remaining dependencies; forcing nodes into a final level.",
				"nodes", rest,
			)
			res.Levels = append(res.Levels, rest)
			res.Forced = true
			r.release(rest)
			st = stateDone
		}
	}

	logger.Debug("Scheduling complete.", "levels", len(res.Levels), "broken_edges", len(res.Broken))
	return res
}

// Levels is a convenience wrapper returning only the execution order.
func Levels(ctx context.Context, g *dag.Graph) [][]string {
	return Schedule(ctx, g).Levels
}

// recomputeInDegrees counts, for every remaining node, the dependencies that
// are themselves still remaining.
func (r *run) recomputeInDegrees() {
	r.inDegree = make(map[string]int, len(r.remaining))
	for id := range r.remaining {
		deps, _ := r.g.Dependencies(id)
		for _, dep := range deps {
			if r.remaining[dep] {
				r.inDegree[id]++
			}
		}
	}
}

// ready returns remaining nodes with no unscheduled dependency, in insertion order.
func (r *run) ready() []string {
	var out []string
	for _, id := range r.order {
		if r.remaining[id] && r.inDegree[id] == 0 {
			out = append(out, id)
		}
	}
	return out
}

// pending returns all remaining nodes in insertion order.
func (r *run) pending() []string {
	var out []string
	for _, id := range r.order {
		if r.remaining[id] {
			out = append(out, id)
		}
	}
	return out
}

// release removes the given nodes from the remaining set and decrements the
// in-degree of their dependents.
func (r *run) release(ids []string) {
	for _, id := range ids {
		delete(r.remaining, id)
	}
	for _, id := range ids {
		dependents, _ := r.g.Dependents(id)
		for _, d := range dependents {
			if r.remaining[d] {
				r.inDegree[d]--
			}
		}
	}
}
