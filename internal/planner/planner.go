// Package planner turns an ordered list of proposed calls into a Plan.
//
// It is the only entry point most callers need: it names the nodes, asks the
// analyzer for inferred dependencies, merges explicit ones, and hands the
// graph to the scheduler. Planning is synchronous, deterministic and free of
// I/O. A Planner may be shared between goroutines as long as its catalog is
// not modified while plans are being built.
package planner

import (
	"context"
	"fmt"
	"maps"

	"github.com/specialistvlad/callplan/internal/analyzer"
	"github.com/specialistvlad/callplan/internal/catalog"
	"github.com/specialistvlad/callplan/internal/ctxlog"
	"github.com/specialistvlad/callplan/internal/dag"
	"github.com/specialistvlad/callplan/internal/placeholder"
	"github.com/specialistvlad/callplan/internal/plan"
	"github.com/specialistvlad/callplan/internal/scheduler"
)

// UnknownOperation is the node name base used for calls without a name.
const UnknownOperation = "unknown"

// Planner builds plans against a catalog it owns.
type Planner struct {
	catalog  *catalog.Catalog
	analyzer *analyzer.Analyzer
}

type options struct {
	detector placeholder.Detector
}

// Option configures a Planner.
type Option func(*options)

// WithDetector replaces the default placeholder detector.
func WithDetector(d placeholder.Detector) Option {
	return func(o *options) {
		o.detector = d
	}
}

// New creates a Planner. A nil catalog selects the default table.
func New(cat *catalog.Catalog, opts ...Option) *Planner {
	if cat == nil {
		cat = catalog.New()
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return &Planner{
		catalog:  cat,
		analyzer: analyzer.New(cat, o.detector),
	}
}

// Catalog returns the catalog the planner reads from.
func (p *Planner) Catalog() *catalog.Catalog {
	return p.catalog
}

// Plan builds the execution plan for calls. It never fails: cycles are broken
// and logged, malformed calls are planned as unknown operations.
func (p *Planner) Plan(ctx context.Context, calls []plan.Call) *plan.Plan {
	logger := ctxlog.FromContext(ctx)
	out := plan.New()

	switch len(calls) {
	case 0:
		logger.Debug("No calls to plan.")
		return out
	case 1:
		name := baseName(calls[0])
		out.Nodes[name] = newNode(name, calls[0], nil, plan.Sequential)
		out.ExecutionOrder = [][]string{{name}}
		return out
	}

	names := nodeNames(calls)
	index := make(map[string]int, len(names))
	g := dag.New()
	entries := make([]analyzer.Entry, len(calls))
	for i, c := range calls {
		index[names[i]] = i
		g.AddNode(names[i])
		entries[i] = analyzer.Entry{Node: names[i], Operation: c.Name, Arguments: c.Arguments}
	}

	for _, e := range p.analyzer.Analyze(ctx, entries) {
		if err := g.AddEdge(e.From, e.To); err != nil {
			logger.Debug("Skipping inferred dependency.", "error", err)
		}
	}
	for i, c := range calls {
		for _, dep := range c.DependsOn {
			if err := g.AddEdge(dep, names[i]); err != nil {
				logger.Warn("Ignoring explicit dependency.", "node", names[i], "depends_on", dep, "error", err)
			}
		}
	}

	res := scheduler.Schedule(ctx, g)
	out.ExecutionOrder = res.Levels
	for _, level := range res.Levels {
		mode := plan.Sequential
		if len(level) > 1 {
			mode = plan.Parallel
		}
		for _, name := range level {
			deps, _ := g.Dependencies(name)
			out.Nodes[name] = newNode(name, calls[index[name]], deps, mode)
		}
	}

	logger.Debug("Plan built.", "nodes", len(out.Nodes), "levels", len(out.ExecutionOrder), "broken_edges", len(res.Broken))
	return out
}

func newNode(name string, c plan.Call, deps []string, mode plan.ExecutionMode) *plan.Node {
	if deps == nil {
		deps = []string{}
	}
	return &plan.Node{
		Name:         name,
		Operation:    c.Name,
		Arguments:    maps.Clone(c.Arguments),
		Dependencies: deps,
		Mode:         mode,
	}
}

func baseName(c plan.Call) string {
	if c.Name == "" {
		return UnknownOperation
	}
	return c.Name
}

// nodeNames assigns a unique name to every call. Operation types that occur
// more than once get their input position as a suffix.
func nodeNames(calls []plan.Call) []string {
	counts := make(map[string]int, len(calls))
	for _, c := range calls {
		counts[baseName(c)]++
	}

	used := make(map[string]bool, len(calls))
	names := make([]string, len(calls))
	for i, c := range calls {
		name := baseName(c)
		if counts[name] > 1 {
			name = fmt.Sprintf("%s_%d", name, i)
		}
		for used[name] {
			name = fmt.Sprintf("%s_%d", name, i)
		}
		used[name] = true
		names[i] = name
	}
	return names
}
