// Package plan holds the planner's input and output types: the proposed calls
// handed in by the decision-maker and the Plan handed on to an executor.
//
// A Plan is built once per planning request and never mutated afterward.
// Executors may run every node of a level concurrently, but every node of a
// level must finish before the next level starts.
package plan

import (
	"fmt"
	"strings"
)

// ExecutionMode is informational: it tells an executor whether a node shares
// its level with other nodes.
type ExecutionMode string

const (
	Sequential ExecutionMode = "sequential"
	Parallel   ExecutionMode = "parallel"
)

// Call is a single operation proposed by the upstream decision-maker.
type Call struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments,omitempty"`
	// DependsOn names other nodes of the same request that must run first.
	// Entries are merged with the inferred dependencies.
	DependsOn []string `json:"depends_on,omitempty"`
}

// Node is one scheduled call.
type Node struct {
	Name         string         `json:"name"`
	Operation    string         `json:"operation"`
	Arguments    map[string]any `json:"arguments,omitempty"`
	Dependencies []string       `json:"dependencies"`
	Mode         ExecutionMode  `json:"execution_mode"`
}

// Plan is the planner's output: the nodes keyed by name and the level order in
// which they run.
type Plan struct {
	Nodes          map[string]*Node `json:"nodes"`
	ExecutionOrder [][]string       `json:"execution_order"`
}

// New returns an empty plan.
func New() *Plan {
	return &Plan{
		Nodes:          make(map[string]*Node),
		ExecutionOrder: [][]string{},
	}
}

// IsEmpty reports whether the plan contains no nodes.
func (p *Plan) IsEmpty() bool {
	return len(p.Nodes) == 0
}

// Node returns the node with the given name.
func (p *Plan) Node(name string) (*Node, bool) {
	n, ok := p.Nodes[name]
	return n, ok
}

// HasParallelism reports whether any level holds more than one node.
func (p *Plan) HasParallelism() bool {
	for _, level := range p.ExecutionOrder {
		if len(level) > 1 {
			return true
		}
	}
	return false
}

// LevelOf returns the index of the level containing name, or -1.
func (p *Plan) LevelOf(name string) int {
	for i, level := range p.ExecutionOrder {
		for _, n := range level {
			if n == name {
				return i
			}
		}
	}
	return -1
}

// Summary renders the execution order for logs, one line per level.
func (p *Plan) Summary() string {
	if p.IsEmpty() {
		return "Execution plan: no operations"
	}

	var sb strings.Builder
	sb.WriteString("Execution plan:")
	for i, level := range p.ExecutionOrder {
		if len(level) > 1 {
			fmt.Fprintf(&sb, "\n  Step %d: [parallel] %s", i+1, strings.Join(level, ", "))
		} else {
			fmt.Fprintf(&sb, "\n  Step %d: %s", i+1, strings.Join(level, ", "))
		}
	}
	return sb.String()
}

// Validate checks that the execution order partitions the nodes exactly once
// and that every dependency sits in a strictly earlier level.
func (p *Plan) Validate() error {
	level := make(map[string]int, len(p.Nodes))
	for i, names := range p.ExecutionOrder {
		for _, name := range names {
			if _, ok := p.Nodes[name]; !ok {
				return fmt.Errorf("level %d references unknown node %q", i, name)
			}
			if prev, seen := level[name]; seen {
				return fmt.Errorf("node %q scheduled twice (levels %d and %d)", name, prev, i)
			}
			level[name] = i
		}
	}
	for name, n := range p.Nodes {
		at, ok := level[name]
		if !ok {
			return fmt.Errorf("node %q is not scheduled", name)
		}
		for _, dep := range n.Dependencies {
			depAt, ok := level[dep]
			if !ok {
				return fmt.Errorf("node %q depends on unscheduled node %q", name, dep)
			}
			if depAt >= at {
				return fmt.Errorf("node %q (level %d) depends on %q (level %d)", name, at, dep, depAt)
			}
		}
	}
	return nil
}
