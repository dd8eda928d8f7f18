// Package analyzer infers data-flow dependencies between proposed calls.
//
// The input order of calls is a hint from the decision-maker: an earlier call
// may feed a later one, never the reverse. For every pair (earlier E, later L)
// three rules are tried in order and the first one that fires adds E -> L:
//
//  1. Role match: L requires a role that E provides.
//  2. Placeholder argument: one of L's path arguments (attachment, file_path,
//     image_path) is unresolved and E produces a file path.
//  3. Empty content: L requires content or data, the matching argument is
//     missing, empty or a placeholder, and E produces data.
//
// Role and category lookups use the operation type, never the disambiguated
// node name.
package analyzer

import (
	"context"

	"github.com/specialistvlad/callplan/internal/catalog"
	"github.com/specialistvlad/callplan/internal/ctxlog"
	"github.com/specialistvlad/callplan/internal/placeholder"
)

// Rule names the heuristic that produced an edge.
type Rule string

const (
	RuleRoleMatch    Rule = "role_match"
	RulePlaceholder  Rule = "placeholder_argument"
	RuleEmptyContent Rule = "empty_content"
)

var (
	pathArguments    = []string{catalog.RoleAttachment, catalog.RoleFilePath, catalog.RoleImagePath}
	contentArguments = []string{catalog.RoleContent, catalog.RoleData}
)

// Entry is one call as seen by the analyzer.
type Entry struct {
	// Node is the unique node name used for graph bookkeeping.
	Node string
	// Operation is the operation type looked up in the catalog.
	Operation string
	Arguments map[string]any
}

// Edge is an inferred dependency: To depends on From.
type Edge struct {
	From string
	To   string
	Rule Rule
}

// Analyzer infers edges between entries using a catalog and a placeholder
// detector.
type Analyzer struct {
	catalog  *catalog.Catalog
	detector placeholder.Detector
}

// New creates an Analyzer. A nil detector selects the default pattern detector.
func New(cat *catalog.Catalog, detector placeholder.Detector) *Analyzer {
	if detector == nil {
		detector = placeholder.NewPatternDetector()
	}
	return &Analyzer{catalog: cat, detector: detector}
}

// Analyze returns the inferred forward edges in a stable order: grouped by
// the later entry, then by the earlier one.
func (a *Analyzer) Analyze(ctx context.Context, entries []Entry) []Edge {
	logger := ctxlog.FromContext(ctx)

	specs := make([]catalog.Spec, len(entries))
	for i, e := range entries {
		specs[i] = a.catalog.Lookup(e.Operation)
	}

	var edges []Edge
	for li := range entries {
		later, laterSpec := entries[li], specs[li]
		pathPending := a.pendingPathArgument(later)
		contentPending := a.pendingContent(later, laterSpec)

		for ei := 0; ei < li; ei++ {
			earlier, earlierSpec := entries[ei], specs[ei]

			rule, ok := inferRule(earlierSpec, laterSpec, pathPending, contentPending)
			if !ok {
				continue
			}
			logger.Debug("Inferred dependency.", "from", earlier.Node, "to", later.Node, "rule", rule)
			edges = append(edges, Edge{From: earlier.Node, To: later.Node, Rule: rule})
		}
	}
	return edges
}

func inferRule(earlier, later catalog.Spec, pathPending, contentPending bool) (Rule, bool) {
	for _, role := range later.Requires {
		if earlier.CanProvide(role) {
			return RuleRoleMatch, true
		}
	}
	if pathPending && earlier.Output == catalog.CategoryFilePath {
		return RulePlaceholder, true
	}
	if contentPending && earlier.Output == catalog.CategoryData {
		return RuleEmptyContent, true
	}
	return "", false
}

// pendingPathArgument reports whether any path argument is present but unresolved.
func (a *Analyzer) pendingPathArgument(e Entry) bool {
	for _, name := range pathArguments {
		v, ok := e.Arguments[name]
		if ok && a.detector.IsPlaceholder(name, v) {
			return true
		}
	}
	return false
}

// pendingContent reports whether a required content or data argument is
// missing, empty or a placeholder.
func (a *Analyzer) pendingContent(e Entry, spec catalog.Spec) bool {
	for _, name := range contentArguments {
		if !spec.Needs(name) {
			continue
		}
		v, ok := e.Arguments[name]
		if !ok || a.detector.IsPlaceholder(name, v) {
			return true
		}
	}
	return false
}
