package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/callplan/internal/catalog"
	"github.com/specialistvlad/callplan/internal/ctxlog"
	"github.com/specialistvlad/callplan/internal/fsutil"
	"github.com/specialistvlad/callplan/internal/plan"
)

// Model is everything read from a set of HCL files.
type Model struct {
	Operations []catalog.Spec
	Calls      []plan.Call
}

// Loader reads operation and call blocks from .hcl files.
type Loader struct{}

// NewLoader creates a new HCL configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses every .hcl file found under paths. Files and directories are
// both accepted; directories are searched recursively.
func (l *Loader) Load(ctx context.Context, paths ...string) (*Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	files, err := fsutil.CollectFiles(paths, ".hcl")
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	model := &Model{}
	parser := hclparse.NewParser()

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var root fileRoot
		diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}

		for _, op := range root.Operations {
			spec, err := translateOperation(op)
			if err != nil {
				return nil, fmt.Errorf("in file %s: %w", file, err)
			}
			model.Operations = append(model.Operations, spec)
		}
		for _, c := range root.Calls {
			call, err := translateCall(c)
			if err != nil {
				return nil, fmt.Errorf("in file %s: %w", file, err)
			}
			model.Calls = append(model.Calls, call)
		}
	}

	logger.Debug("HCL loading complete.", "operations", len(model.Operations), "calls", len(model.Calls))
	return model, nil
}

func translateOperation(b *operationBlock) (catalog.Spec, error) {
	output, err := catalog.ParseCategory(b.Output)
	if err != nil {
		return catalog.Spec{}, fmt.Errorf("operation %q: %w", b.Name, err)
	}
	return catalog.Spec{
		Name:        b.Name,
		Output:      output,
		Provides:    nonEmpty(b.Provides),
		Requires:    nonEmpty(b.Requires),
		Description: b.Description,
	}, nil
}

func translateCall(b *callBlock) (plan.Call, error) {
	args, err := argumentsToNative(b.Arguments)
	if err != nil {
		return plan.Call{}, fmt.Errorf("call %q: %w", b.Name, err)
	}
	return plan.Call{
		Name:      b.Name,
		Arguments: args,
		DependsOn: b.DependsOn,
	}, nil
}

func nonEmpty(roles []string) []string {
	if len(roles) == 0 {
		return nil
	}
	return roles
}
