package config

import "github.com/zclconf/go-cty/cty"

// OperationDefinition is the manifest side of one generate operation: its
// public name, a description and the declared parameters in manifest order.
// The matching Go method is found by name through the registry.
type OperationDefinition struct {
	// Name is the operation key, e.g. "rabi".
	Name string

	// Description is an optional human-readable summary.
	Description string

	// Params lists the parameters in declaration order. Order is preserved
	// because front-ends render parameter forms from it.
	Params []ParamDefinition
}

// Param looks a parameter up by name.
func (d *OperationDefinition) Param(name string) (ParamDefinition, bool) {
	for _, p := range d.Params {
		if p.Name == name {
			return p, true
		}
	}
	return ParamDefinition{}, false
}

// ParamDefinition declares a single operation parameter.
type ParamDefinition struct {
	// Name is the parameter name as callers supply it, e.g. "tau_start".
	Name string

	// Type is the declared value type.
	Type cty.Type

	// Description is an optional human-readable summary.
	Description string

	// Default is the literal default value, or nil when the parameter is
	// required.
	Default *cty.Value
}
