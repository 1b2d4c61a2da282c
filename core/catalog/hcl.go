package catalog

import (
	"encoding/json"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"plan-pricing/core/pricing"
	"plan-pricing/internal/errors"
)

// planBlockSchema describes the top level of an HCL catalog:
//
//	plan "pro" {
//	  licenses      = 5
//	  monthly_price = 29
//	  annual_price  = 290
//	}
var planBlockSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "plan", LabelNames: []string{"id"}},
	},
}

func parseHCL(filename string, src []byte) ([]*pricing.Pricing, error) {
	parser := hclparse.NewParser()

	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, diagnosticsError(filename, diags)
	}

	content, diags := file.Body.Content(planBlockSchema)
	if diags.HasErrors() {
		return nil, diagnosticsError(filename, diags)
	}

	plans := make([]*pricing.Pricing, 0, len(content.Blocks))
	for _, block := range content.Blocks {
		attrs, diags := block.Body.JustAttributes()
		if diags.HasErrors() {
			return nil, diagnosticsError(filename, diags)
		}

		record := map[string]any{pricing.KeyPlanID: block.Labels[0]}
		for name, attr := range attrs {
			val, diags := attr.Expr.Value(nil)
			if diags.HasErrors() {
				return nil, diagnosticsError(filename, diags)
			}
			record[name] = ctyToGo(val)
		}

		plans = append(plans, pricing.New(record))
	}

	return plans, nil
}

// ctyToGo converts an evaluated attribute value into the loosely typed
// form plan records use. Numbers become json.Number so their exact text
// survives until decimal arithmetic.
func ctyToGo(val cty.Value) any {
	if !val.IsKnown() || val.IsNull() {
		return nil
	}

	ty := val.Type()
	switch {
	case ty == cty.String:
		return val.AsString()
	case ty == cty.Number:
		return json.Number(val.AsBigFloat().Text('f', -1))
	case ty == cty.Bool:
		return val.True()
	case ty.IsListType() || ty.IsSetType() || ty.IsTupleType():
		out := make([]any, 0, val.LengthInt())
		for it := val.ElementIterator(); it.Next(); {
			_, v := it.Element()
			out = append(out, ctyToGo(v))
		}
		return out
	case ty.IsMapType() || ty.IsObjectType():
		out := make(map[string]any)
		for it := val.ElementIterator(); it.Next(); {
			k, v := it.Element()
			out[k.AsString()] = ctyToGo(v)
		}
		return out
	default:
		return nil
	}
}

func diagnosticsError(filename string, diags hcl.Diagnostics) error {
	e := errors.Parsing(fmt.Sprintf("failed to parse %s", filename), diags).
		WithContext("file", filename)
	for _, d := range diags {
		if d.Severity == hcl.DiagError && d.Subject != nil {
			e.WithContext("line", d.Subject.Start.Line)
			break
		}
	}
	return e
}
