package registry

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"

	"github.com/byavkin/pulsegen/internal/generation"
)

var (
	// ErrUnknownOperation reports an operation name no generator provides.
	ErrUnknownOperation = errors.New("registry: unknown operation")
	// ErrMissingParam reports a required parameter that was neither passed
	// nor defaulted in the manifest.
	ErrMissingParam = errors.New("registry: missing parameter")
	// ErrUnknownParam reports an argument the manifest does not declare.
	ErrUnknownParam = errors.New("registry: unknown parameter")
)

// Invoke runs one operation with the given arguments. Missing arguments are
// filled from manifest defaults, values are converted to the declared
// parameter types, and arguments the manifest does not declare are rejected.
func (r *Registry) Invoke(ctx context.Context, name string, args map[string]cty.Value) (*generation.Result, error) {
	op, ok := r.operations[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownOperation, name)
	}
	def, ok := r.definitions[name]
	if !ok {
		return nil, fmt.Errorf("operation %q has no manifest definition", name)
	}

	for key := range args {
		if _, declared := def.Param(key); !declared {
			return nil, fmt.Errorf("%w: operation %q does not take %q", ErrUnknownParam, name, key)
		}
	}

	argsPtr := reflect.New(op.args)
	argsVal := argsPtr.Elem()
	for _, param := range def.Params {
		value, passed := args[param.Name]
		if !passed {
			if param.Default == nil {
				return nil, fmt.Errorf("%w: operation %q requires %q", ErrMissingParam, name, param.Name)
			}
			value = *param.Default
		}

		converted, err := convert.Convert(value, param.Type)
		if err != nil {
			return nil, fmt.Errorf("operation %q: parameter %q: %w", name, param.Name, err)
		}

		idx, bound := op.fields[param.Name]
		if !bound {
			return nil, fmt.Errorf("operation %q: parameter %q is not bound to a field", name, param.Name)
		}
		if err := gocty.FromCtyValue(converted, argsVal.Field(idx).Addr().Interface()); err != nil {
			return nil, fmt.Errorf("operation %q: parameter %q: %w", name, param.Name, err)
		}
	}

	out := op.fn.Call([]reflect.Value{reflect.ValueOf(ctx), argsPtr})
	if errVal := out[1]; !errVal.IsNil() {
		return nil, fmt.Errorf("operation %q: %w", name, errVal.Interface().(error))
	}
	result, _ := out[0].Interface().(*generation.Result)
	return result, nil
}
