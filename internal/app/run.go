package app

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/zclconf/go-cty/cty"

	"github.com/byavkin/pulsegen/internal/ctxlog"
	"github.com/byavkin/pulsegen/internal/generation"
)

// Run executes the requested command.
func (a *App) Run(ctx context.Context, cfg *Config) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.", "command", cfg.Command)

	switch cfg.Command {
	case CommandList:
		return a.runList(ctx)
	case CommandParams:
		return a.runParams(ctx, cfg.Operation)
	case CommandGenerate:
		return a.runGenerate(ctx, cfg)
	default:
		return fmt.Errorf("unknown command %q", cfg.Command)
	}
}

// runList prints every registered operation with its description.
func (a *App) runList(_ context.Context) error {
	names := a.registry.OperationNames()
	if len(names) == 0 {
		fmt.Fprintln(a.outW, "No generate operations registered.")
		return nil
	}
	for _, name := range names {
		description := ""
		if def, ok := a.registry.Definition(name); ok {
			description = def.Description
		}
		fmt.Fprintf(a.outW, "%-20s %s\n", name, description)
	}
	return nil
}

// runParams prints the parameter table of one operation in manifest order.
func (a *App) runParams(_ context.Context, operation string) error {
	params, ok := a.registry.Parameters(operation)
	if !ok {
		return fmt.Errorf("unknown operation %q", operation)
	}

	fmt.Fprintf(a.outW, "Parameters of %s:\n", operation)
	if len(params) == 0 {
		fmt.Fprintln(a.outW, "  (none)")
		return nil
	}
	for _, param := range params {
		line := fmt.Sprintf("  %-16s %-8s", param.Name, param.Type.FriendlyName())
		if param.Default != nil {
			line += fmt.Sprintf(" default=%-12s", formatValue(*param.Default))
		} else {
			line += fmt.Sprintf(" %-21s", "required")
		}
		fmt.Fprintf(a.outW, "%s %s\n", line, param.Description)
	}
	return nil
}

// runGenerate invokes one operation, files the result in the session store,
// prints a summary and optionally dumps the entity records as JSON.
//
// Arguments arrive as raw strings; the registry converts them to the types
// the manifest declares, so there is exactly one conversion path for CLI
// input and manifest defaults alike.
func (a *App) runGenerate(ctx context.Context, cfg *Config) error {
	args := make(map[string]cty.Value, len(cfg.OpArgs))
	for key, raw := range cfg.OpArgs {
		args[key] = cty.StringVal(raw)
	}

	result, err := a.registry.Invoke(ctx, cfg.Operation, args)
	if err != nil {
		return err
	}
	if result == nil {
		result = &generation.Result{}
	}

	a.store.Absorb(result)
	a.logger.Info("Generate operation finished.",
		"operation", cfg.Operation,
		"blocks", len(result.Blocks),
		"ensembles", len(result.Ensembles),
		"sequences", len(result.Sequences))

	a.printSummary(result)

	if cfg.OutputDir != "" {
		return a.dumpResult(ctx, cfg.OutputDir, result)
	}
	return nil
}

func (a *App) printSummary(result *generation.Result) {
	fmt.Fprintf(a.outW, "Created %d block(s), %d ensemble(s), %d sequence(s).\n",
		len(result.Blocks), len(result.Ensembles), len(result.Sequences))
	for _, b := range result.Blocks {
		fmt.Fprintf(a.outW, "  block    %-24s elements=%d duration=%gs\n",
			b.Name(), b.Len(), b.TotalDuration())
	}
	for _, e := range result.Ensembles {
		fmt.Fprintf(a.outW, "  ensemble %-24s steps=%d\n", e.Name(), e.Len())
	}
	for _, s := range result.Sequences {
		playback := "finite"
		if !s.IsFinite() {
			playback = "infinite"
		}
		fmt.Fprintf(a.outW, "  sequence %-24s steps=%d %s\n", s.Name(), s.Len(), playback)
	}
}

// dumpResult writes one pretty-printed JSON record per created entity to
// <dir>/<kind>/<name>.json.
func (a *App) dumpResult(ctx context.Context, dir string, result *generation.Result) error {
	for _, b := range result.Blocks {
		if err := writeRecord(dir, "blocks", b.Name(), b.Record()); err != nil {
			return err
		}
	}
	for _, e := range result.Ensembles {
		if err := writeRecord(dir, "ensembles", e.Name(), e.Record()); err != nil {
			return err
		}
	}
	for _, s := range result.Sequences {
		if err := writeRecord(dir, "sequences", s.Name(), s.Record()); err != nil {
			return err
		}
	}
	ctxlog.FromContext(ctx).Info("Entity records written.", "dir", dir)
	return nil
}

func writeRecord(dir, kind, name string, record any) error {
	kindDir := filepath.Join(dir, kind)
	if err := os.MkdirAll(kindDir, 0o755); err != nil {
		return fmt.Errorf("creating record directory: %w", err)
	}
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding record %s/%s: %w", kind, name, err)
	}
	path := filepath.Join(kindDir, name+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing record: %w", err)
	}
	return nil
}

// formatValue renders a manifest default for the parameter table.
func formatValue(v cty.Value) string {
	switch v.Type() {
	case cty.String:
		return fmt.Sprintf("%q", v.AsString())
	case cty.Number:
		return v.AsBigFloat().Text('g', -1)
	case cty.Bool:
		return fmt.Sprintf("%t", v.True())
	default:
		return v.GoString()
	}
}
