package hcl

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
)

// typeFromExpr converts an HCL expression holding a type keyword into its
// cty.Type. Only the primitive keywords string, number and bool are accepted.
func typeFromExpr(expr hcl.Expression) (cty.Type, hcl.Diagnostics) {
	var diags hcl.Diagnostics

	traversal, travDiags := hcl.AbsTraversalForExpr(expr)
	if travDiags.HasErrors() || len(traversal) != 1 {
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Invalid type specification",
			Detail:   "The 'type' attribute must be a plain type keyword: string, number or bool.",
			Subject:  expr.Range().Ptr(),
		})
		return cty.NilType, diags
	}

	switch name := traversal.RootName(); name {
	case "string":
		return cty.String, diags
	case "number":
		return cty.Number, diags
	case "bool":
		return cty.Bool, diags
	default:
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Unsupported parameter type",
			Detail:   fmt.Sprintf("The keyword %q is not a supported parameter type. Supported types are: string, number, bool.", name),
			Subject:  expr.Range().Ptr(),
		})
		return cty.NilType, diags
	}
}
