package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"

	"github.com/byavkin/pulsegen/internal/config"
	"github.com/byavkin/pulsegen/internal/ctxlog"
)

// definitionsRootSchema expects one or more 'operation' blocks at the top
// level of a manifest file.
type definitionsRootSchema struct {
	Operations []*hclOperation `hcl:"operation,block"`
}

// hclOperation is the raw form of a single 'operation' block; the body is
// decoded in a second pass against operationBodySchema.
type hclOperation struct {
	Name string   `hcl:"name,label"`
	Body hcl.Body `hcl:",remain"`
}

// operationBodySchema describes the body of an 'operation' block.
var operationBodySchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "description"},
	},
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "param", LabelNames: []string{"name"}},
	},
}

// paramBodySchema describes the body of a 'param' block.
var paramBodySchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "type"},
		{Name: "description"},
		{Name: "default"},
	},
}

// ParseDefinitionsFile decodes a manifest file holding operation blocks.
func ParseDefinitionsFile(ctx context.Context, file *hcl.File, filePath string) ([]*config.OperationDefinition, hcl.Diagnostics) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Parsing operation definitions", "file_path", filePath)

	var allDiags hcl.Diagnostics
	if file == nil {
		return nil, append(allDiags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "HCL file is nil",
		})
	}

	root := &definitionsRootSchema{}
	diags := gohcl.DecodeBody(file.Body, nil, root)
	allDiags = append(allDiags, diags...)
	if diags.HasErrors() {
		return nil, allDiags
	}

	definitions := make([]*config.OperationDefinition, 0, len(root.Operations))
	for _, rawOp := range root.Operations {
		bodyContent, contentDiags := rawOp.Body.Content(operationBodySchema)
		allDiags = append(allDiags, contentDiags...)
		if contentDiags.HasErrors() {
			continue
		}

		def := &config.OperationDefinition{Name: rawOp.Name}

		if attr, exists := bodyContent.Attributes["description"]; exists {
			exprDiags := gohcl.DecodeExpression(attr.Expr, nil, &def.Description)
			allDiags = append(allDiags, exprDiags...)
		}

		params, paramDiags := parseParams(bodyContent.Blocks)
		allDiags = append(allDiags, paramDiags...)
		def.Params = params

		definitions = append(definitions, def)
	}

	if allDiags.HasErrors() {
		return nil, allDiags
	}

	logger.Debug("Parsed operation definitions", "file_path", filePath, "count", len(definitions))
	return definitions, nil
}

// parseParams decodes all 'param' blocks of one operation body, preserving
// declaration order.
func parseParams(blocks hcl.Blocks) ([]config.ParamDefinition, hcl.Diagnostics) {
	var diags hcl.Diagnostics
	var params []config.ParamDefinition
	seen := make(map[string]struct{})

	for _, block := range blocks.OfType("param") {
		paramName := block.Labels[0]

		if _, exists := seen[paramName]; exists {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Duplicate param definition",
				Detail:   fmt.Sprintf("A param named %q has already been defined for this operation.", paramName),
				Subject:  &block.DefRange,
			})
			continue
		}
		seen[paramName] = struct{}{}

		bodyContent, contentDiags := block.Body.Content(paramBodySchema)
		diags = append(diags, contentDiags...)
		if contentDiags.HasErrors() {
			continue
		}

		typeAttr, exists := bodyContent.Attributes["type"]
		if !exists {
			missingItemRange := block.Body.MissingItemRange()
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Missing 'type' attribute",
				Detail:   "The 'type' attribute is required for all param blocks.",
				Subject:  &missingItemRange,
			})
			continue
		}
		ctyType, typeDiags := typeFromExpr(typeAttr.Expr)
		diags = append(diags, typeDiags...)
		if typeDiags.HasErrors() {
			continue
		}

		def := config.ParamDefinition{Name: paramName, Type: ctyType}

		if descAttr, exists := bodyContent.Attributes["description"]; exists {
			evalDiags := gohcl.DecodeExpression(descAttr.Expr, nil, &def.Description)
			diags = append(diags, evalDiags...)
		}

		if defaultAttr, exists := bodyContent.Attributes["default"]; exists {
			// Defaults are literals; no evaluation context.
			val, valDiags := defaultAttr.Expr.Value(nil)
			diags = append(diags, valDiags...)
			if valDiags.HasErrors() {
				continue
			}
			if !val.Type().Equals(ctyType) {
				diags = append(diags, &hcl.Diagnostic{
					Severity: hcl.DiagError,
					Summary:  "Invalid default value type",
					Detail:   fmt.Sprintf("The default for %q does not match its declared type %q.", paramName, ctyType.FriendlyName()),
					Subject:  defaultAttr.Expr.Range().Ptr(),
				})
				continue
			}
			def.Default = &val
		}

		params = append(params, def)
	}

	return params, diags
}
