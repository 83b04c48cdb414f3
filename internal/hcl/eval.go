package hcl

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// objectVariable is the root name under which objects are exposed to
// expressions.
const objectVariable = "object"

// newEvalContext exposes every known object as object.<name>.
func newEvalContext(names []string) *hcl.EvalContext {
	objects := cty.EmptyObjectVal
	if len(names) > 0 {
		attrs := make(map[string]cty.Value, len(names))
		for _, name := range names {
			attrs[name] = cty.StringVal(name)
		}
		objects = cty.ObjectVal(attrs)
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{objectVariable: objects},
	}
}

// isExprDefined checks if an HCL expression was actually present in the
// source. The decoder populates omitted optional attributes with zero-width
// placeholder expressions, so a nil check is not enough.
func isExprDefined(expr hcl.Expression) bool {
	if expr == nil {
		return false
	}
	r := expr.Range()
	return r.End.Byte > r.Start.Byte
}

func exprDiag(expr hcl.Expression, summary, detail string) *hcl.Diagnostic {
	rng := expr.Range()
	return &hcl.Diagnostic{
		Severity: hcl.DiagError,
		Summary:  summary,
		Detail:   detail,
		Subject:  &rng,
	}
}

// requireExpr reports a missing argument against the enclosing block, since
// an omitted attribute has no range of its own.
func requireExpr(expr hcl.Expression, attr string, block hcl.Range) hcl.Diagnostics {
	if isExprDefined(expr) {
		return nil
	}
	return hcl.Diagnostics{{
		Severity: hcl.DiagError,
		Summary:  "Missing required argument",
		Detail:   fmt.Sprintf("The argument %q is required, but no definition was found.", attr),
		Subject:  &block,
	}}
}

// nameScope is the set of object names a reference may resolve to.
type nameScope map[string]struct{}

func newNameScope(names ...string) nameScope {
	scope := make(nameScope, len(names))
	scope.add(names...)
	return scope
}

func (s nameScope) add(names ...string) {
	for _, name := range names {
		s[name] = struct{}{}
	}
}

// checkNames rejects names that are not in scope. References written as
// plain strings bypass the object.<name> namespace and are caught here.
func checkNames(expr hcl.Expression, attr string, scope nameScope, names ...string) hcl.Diagnostics {
	for _, name := range names {
		if _, ok := scope[name]; !ok {
			return hcl.Diagnostics{exprDiag(expr, "Unknown object",
				fmt.Sprintf("The %q attribute refers to %q, which is not declared or allocated before this point.", attr, name))}
		}
	}
	return nil
}

// evalName evaluates an expression that must produce a single object name.
func evalName(expr hcl.Expression, evalCtx *hcl.EvalContext, attr string) (string, hcl.Diagnostics) {
	val, diags := expr.Value(evalCtx)
	if diags.HasErrors() {
		return "", diags
	}
	name, err := ctyToName(val)
	if err != nil {
		return "", append(diags, exprDiag(expr, "Invalid object reference",
			fmt.Sprintf("The %q attribute must name an object: %s.", attr, err)))
	}
	return name, diags
}

// evalNames evaluates an optional expression that must produce a list,
// tuple or set of object names. An omitted attribute yields no names.
func evalNames(expr hcl.Expression, evalCtx *hcl.EvalContext, attr string) ([]string, hcl.Diagnostics) {
	if !isExprDefined(expr) {
		return nil, nil
	}
	val, diags := expr.Value(evalCtx)
	if diags.HasErrors() {
		return nil, diags
	}
	if val.IsNull() {
		return nil, diags
	}
	ty := val.Type()
	if !ty.IsListType() && !ty.IsTupleType() && !ty.IsSetType() {
		return nil, append(diags, exprDiag(expr, "Invalid object list",
			fmt.Sprintf("The %q attribute must be a list of objects, got %s.", attr, ty.FriendlyName())))
	}
	if !val.IsWhollyKnown() {
		return nil, append(diags, exprDiag(expr, "Unknown object list",
			fmt.Sprintf("The %q attribute must be known when the scenario is loaded.", attr)))
	}

	names := make([]string, 0, val.LengthInt())
	for it := val.ElementIterator(); it.Next(); {
		_, elem := it.Element()
		name, err := ctyToName(elem)
		if err != nil {
			return nil, append(diags, exprDiag(expr, "Invalid object reference",
				fmt.Sprintf("Every element of %q must name an object: %s.", attr, err)))
		}
		names = append(names, name)
	}
	return names, diags
}

// evalExpect evaluates an optional whole-number expectation.
func evalExpect(expr hcl.Expression, evalCtx *hcl.EvalContext) (*int, hcl.Diagnostics) {
	if !isExprDefined(expr) {
		return nil, nil
	}
	val, diags := expr.Value(evalCtx)
	if diags.HasErrors() {
		return nil, diags
	}
	var n int
	if err := gocty.FromCtyValue(val, &n); err != nil {
		return nil, append(diags, exprDiag(expr, "Invalid expectation",
			fmt.Sprintf("The \"expect\" attribute must be a whole number: %s.", err)))
	}
	if n < 0 {
		return nil, append(diags, exprDiag(expr, "Invalid expectation",
			"The \"expect\" attribute must not be negative."))
	}
	return &n, diags
}

// evalBool evaluates an optional boolean, falling back to def when omitted.
func evalBool(expr hcl.Expression, evalCtx *hcl.EvalContext, attr string, def bool) (bool, hcl.Diagnostics) {
	if !isExprDefined(expr) {
		return def, nil
	}
	val, diags := expr.Value(evalCtx)
	if diags.HasErrors() {
		return def, diags
	}
	var b bool
	if err := gocty.FromCtyValue(val, &b); err != nil {
		return def, append(diags, exprDiag(expr, "Invalid value",
			fmt.Sprintf("The %q attribute must be a bool: %s.", attr, err)))
	}
	return b, diags
}

func ctyToName(val cty.Value) (string, error) {
	if val.IsNull() {
		return "", fmt.Errorf("value is null")
	}
	if !val.IsKnown() {
		return "", fmt.Errorf("value is unknown")
	}
	var name string
	if err := gocty.FromCtyValue(val, &name); err != nil {
		return "", err
	}
	if name == "" {
		return "", fmt.Errorf("name is empty")
	}
	return name, nil
}
