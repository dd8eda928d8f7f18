package app

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/specialistvlad/callplan/internal/catalog"
	"github.com/specialistvlad/callplan/internal/ctxlog"
	"github.com/specialistvlad/callplan/internal/plan"
	"github.com/specialistvlad/callplan/internal/planner"
)

// Run loads the catalog and the proposed calls, builds the plan, renders it,
// and publishes it when a publisher is configured.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	cat := catalog.New()
	if a.config.NoDefaults {
		cat = catalog.Empty()
	}

	if len(a.config.CatalogPaths) > 0 {
		model, err := a.loader.Load(ctx, a.config.CatalogPaths...)
		if err != nil {
			return fmt.Errorf("failed to load catalog: %w", err)
		}
		for _, spec := range model.Operations {
			cat.Register(spec)
		}
		if len(model.Calls) > 0 {
			a.logger.Warn("Ignoring call blocks found in catalog files.", "count", len(model.Calls))
		}
	}

	calls, err := a.loadCalls(ctx, cat)
	if err != nil {
		return err
	}
	a.logger.Info("Planning calls.", "calls", len(calls), "operations", cat.Len())

	p := planner.New(cat, planner.WithDetector(a.detector)).Plan(ctx, calls)
	if err := p.Validate(); err != nil {
		a.logger.Warn("Plan violates ordering invariants.", "error", err)
	}

	if err := a.render(p); err != nil {
		return err
	}

	if a.publisher != nil {
		if err := a.publisher.Publish(ctx, p); err != nil {
			return fmt.Errorf("failed to publish plan: %w", err)
		}
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}

// loadCalls reads the calls file. HCL files may also declare operations,
// which are registered into cat before planning.
func (a *App) loadCalls(ctx context.Context, cat *catalog.Catalog) ([]plan.Call, error) {
	path := a.config.CallsPath
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open calls file: %w", err)
		}
		defer f.Close()
		return decodeCalls(f)
	case ".hcl":
	default:
		return nil, fmt.Errorf("unsupported calls file extension %q: expected .hcl or .json", ext)
	}

	model, err := a.loader.Load(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to load calls: %w", err)
	}
	for _, spec := range model.Operations {
		cat.Register(spec)
	}
	return model.Calls, nil
}

func (a *App) render(p *plan.Plan) error {
	switch a.config.OutputFormat {
	case "json":
		enc := json.NewEncoder(a.outW)
		enc.SetIndent("", "  ")
		if err := enc.Encode(p); err != nil {
			return fmt.Errorf("failed to write plan: %w", err)
		}
	default:
		if _, err := fmt.Fprintln(a.outW, p.Summary()); err != nil {
			return fmt.Errorf("failed to write plan: %w", err)
		}
	}
	return nil
}
