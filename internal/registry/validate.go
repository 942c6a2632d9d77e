package registry

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/zclconf/go-cty/cty/gocty"

	"github.com/byavkin/pulsegen/internal/config"
	"github.com/byavkin/pulsegen/internal/ctxlog"
)

// Validate cross-checks harvested operations against the loaded manifest
// definitions. Every operation must have a definition and vice versa, and
// for each operation the manifest parameters must match the `gen` tagged
// fields of the argument struct in both name and type. All mismatches are
// collected and reported in one error.
func (r *Registry) Validate(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	var errs []string

	for name, op := range r.operations {
		def, ok := r.definitions[name]
		if !ok {
			errs = append(errs, fmt.Sprintf(
				"operation %q (%s.%s) has no manifest definition", name, op.Source, op.Method))
			continue
		}
		errs = append(errs, checkParams(op, def.Params)...)
	}

	for name := range r.definitions {
		if _, ok := r.operations[name]; !ok {
			errs = append(errs, fmt.Sprintf(
				"manifest defines operation %q but no generator provides it", name))
		}
	}

	if len(errs) > 0 {
		sort.Strings(errs)
		return fmt.Errorf("registry validation failed:\n%s", strings.Join(errs, "\n"))
	}

	logger.Debug("Registry validated.", "operations", len(r.operations))
	return nil
}

// checkParams verifies that the manifest parameters and the argument struct
// fields of one operation agree in both directions.
func checkParams(op *Operation, params []config.ParamDefinition) []string {
	var errs []string
	declared := make(map[string]bool, len(params))

	for _, param := range params {
		declared[param.Name] = true
		idx, ok := op.fields[param.Name]
		if !ok {
			errs = append(errs, fmt.Sprintf(
				"operation %q: manifest param %q has no matching field in %s",
				op.Name, param.Name, op.args))
			continue
		}

		fieldType := op.args.Field(idx).Type
		implied, err := gocty.ImpliedType(reflect.Zero(fieldType).Interface())
		if err != nil {
			errs = append(errs, fmt.Sprintf(
				"operation %q: param %q: field type %s is not representable: %v",
				op.Name, param.Name, fieldType, err))
			continue
		}
		if !implied.Equals(param.Type) {
			errs = append(errs, fmt.Sprintf(
				"operation %q: param %q: manifest type %s does not match field type %s",
				op.Name, param.Name, param.Type.FriendlyName(), fieldType))
		}
	}

	for tag := range op.fields {
		if !declared[tag] {
			errs = append(errs, fmt.Sprintf(
				"operation %q: field tag %q is not declared in the manifest", op.Name, tag))
		}
	}
	return errs
}
