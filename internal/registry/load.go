package registry

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/byavkin/pulsegen/internal/ctxlog"
	"github.com/byavkin/pulsegen/internal/fsutil"
	"github.com/byavkin/pulsegen/internal/hcl"
)

// LoadDefinitions walks the given manifest locations and loads every .hcl
// operation manifest found. A location that does not exist is logged and
// skipped, so an optional extra directory costs nothing when absent; a
// manifest that fails to parse aborts the load. Definitions loaded later
// override earlier ones of the same operation name, mirroring how generator
// registration resolves collisions.
func (r *Registry) LoadDefinitions(ctx context.Context, locations ...string) error {
	logger := ctxlog.FromContext(ctx)

	for _, root := range locations {
		if root == "" {
			continue
		}
		if !fsutil.DirExists(root) {
			logger.Error("Unable to load operation manifests, path does not exist.", "path", root)
			continue
		}

		filePaths, err := fsutil.FindFilesByExtension(root, ".hcl")
		if err != nil {
			return fmt.Errorf("walking manifest path %s: %w", root, err)
		}
		if len(filePaths) == 0 {
			logger.Warn("No .hcl manifests found in path.", "path", root)
			continue
		}

		parser := hclparse.NewParser()
		for _, filePath := range filePaths {
			file, diags := parser.ParseHCLFile(filePath)
			if diags.HasErrors() {
				return fmt.Errorf("parsing manifest %s: %w", filePath, diags)
			}

			defs, defDiags := hcl.ParseDefinitionsFile(ctx, file, filePath)
			if defDiags.HasErrors() {
				return fmt.Errorf("reading manifest %s: %w", filePath, defDiags)
			}

			for _, def := range defs {
				if _, exists := r.definitions[def.Name]; exists {
					logger.Debug("Overriding operation definition.",
						"operation", def.Name, "file", filePath)
				}
				r.definitions[def.Name] = def
			}
			logger.Debug("Loaded manifest file.", "file", filePath, "operations", len(defs))
		}
	}

	logger.Info("Operation definitions loaded.", "count", len(r.definitions))
	return nil
}
