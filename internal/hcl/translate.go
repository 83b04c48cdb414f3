// This file contains the logic for translating decoded HCL blocks into the
// format-agnostic scenario model defined in the config package.

package hcl

import (
	"context"
	"fmt"
	"slices"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/specialistvlad/gcsim/internal/config"
	"github.com/specialistvlad/gcsim/internal/ctxlog"
)

// translate converts every decoded file into a single model. Object names
// are collected from all files first and then exposed to expressions.
func (l *Loader) translate(ctx context.Context, files []*parsedFile) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)

	declared, allocated, diags := collectObjectNames(files)
	if diags.HasErrors() {
		return nil, fmt.Errorf("invalid scenario: %w", diags)
	}
	evalCtx := newEvalContext(slices.Concat(declared, allocated))
	logger.Debug("Object names collected.", "declared", len(declared), "allocated", len(allocated))

	// Declared objects exist before the first step runs. Allocated ones only
	// become visible to steps that follow their allocate step.
	objectScope := newNameScope(declared...)
	stepScope := newNameScope(declared...)

	model := &config.Model{}
	for _, pf := range files {
		for _, ob := range pf.root.Objects {
			obj, diags := translateObject(ob, evalCtx, objectScope)
			if diags.HasErrors() {
				return nil, fmt.Errorf("in object %q (%s): %w", ob.Name, pf.path, diags)
			}
			model.Objects = append(model.Objects, obj)
		}
		for _, sb := range pf.root.Steps {
			step, diags := translateStep(sb, evalCtx, stepScope)
			if diags.HasErrors() {
				return nil, fmt.Errorf("in step %q %q (%s): %w", sb.Kind, sb.Name, pf.path, diags)
			}
			model.Steps = append(model.Steps, step)
		}
	}

	logger.Debug("HCL loading complete.", "objects", len(model.Objects), "steps", len(model.Steps))
	return model, nil
}

// collectObjectNames returns the names of all declared objects and those
// created by `allocate` steps, rejecting duplicates across both.
func collectObjectNames(files []*parsedFile) (declared, allocated []string, diags hcl.Diagnostics) {
	seen := make(map[string]hcl.Range)

	declare := func(name string, rng hcl.Range, into *[]string) {
		if prev, exists := seen[name]; exists {
			subject := rng
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Duplicate object",
				Detail:   fmt.Sprintf("An object named %q was already declared at %s.", name, prev),
				Subject:  &subject,
			})
			return
		}
		seen[name] = rng
		*into = append(*into, name)
	}

	for _, pf := range files {
		for _, ob := range pf.root.Objects {
			declare(ob.Name, ob.DefRange, &declared)
		}
	}
	for _, pf := range files {
		for _, sb := range pf.root.Steps {
			if sb.Kind != string(config.StepAllocate) {
				continue
			}
			var body objectsBody
			if d := gohcl.DecodeBody(sb.Body, nil, &body); d.HasErrors() {
				diags = append(diags, d...)
				continue
			}
			if d := requireExpr(body.Objects, "objects", sb.DefRange); d.HasErrors() {
				diags = append(diags, d...)
				continue
			}
			// Allocated names cannot refer to objects, they introduce them.
			names, d := evalNames(body.Objects, nil, "objects")
			diags = append(diags, d...)
			for _, name := range names {
				declare(name, sb.DefRange, &allocated)
			}
		}
	}
	return declared, allocated, diags
}

func translateObject(ob *objectBlock, evalCtx *hcl.EvalContext, scope nameScope) (*config.Object, hcl.Diagnostics) {
	children, diags := evalNames(ob.Children, evalCtx, "children")
	if diags.HasErrors() {
		return nil, diags
	}
	if diags = append(diags, checkNames(ob.Children, "children", scope, children...)...); diags.HasErrors() {
		return nil, diags
	}
	register, d := evalBool(ob.Register, evalCtx, "register", true)
	diags = append(diags, d...)
	if diags.HasErrors() {
		return nil, diags
	}
	return &config.Object{
		Name:     ob.Name,
		Children: children,
		Register: register,
	}, diags
}

func translateStep(sb *stepBlock, evalCtx *hcl.EvalContext, scope nameScope) (*config.Step, hcl.Diagnostics) {
	kind, err := config.ParseStepKind(sb.Kind)
	if err != nil {
		rng := sb.DefRange
		return nil, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Unsupported step kind",
			Detail:   fmt.Sprintf("%s; expected one of collect, count, link, disconnect, release, allocate.", err),
			Subject:  &rng,
		}}
	}

	step := &config.Step{Kind: kind, Name: sb.Name}
	var diags hcl.Diagnostics

	switch kind {
	case config.StepCollect:
		var body collectBody
		if diags = gohcl.DecodeBody(sb.Body, evalCtx, &body); diags.HasErrors() {
			return nil, diags
		}
		if step.Roots, diags = evalScopedNames(body.Roots, evalCtx, "roots", scope); diags.HasErrors() {
			return nil, diags
		}
		step.Expect, diags = evalExpect(body.Expect, evalCtx)

	case config.StepCount:
		var body countBody
		if diags = gohcl.DecodeBody(sb.Body, evalCtx, &body); diags.HasErrors() {
			return nil, diags
		}
		step.Expect, diags = evalExpect(body.Expect, evalCtx)

	case config.StepLink, config.StepDisconnect:
		var body edgeBody
		if diags = gohcl.DecodeBody(sb.Body, evalCtx, &body); diags.HasErrors() {
			return nil, diags
		}
		diags = append(requireExpr(body.Parent, "parent", sb.DefRange), requireExpr(body.Target, "target", sb.DefRange)...)
		if diags.HasErrors() {
			return nil, diags
		}
		if step.Parent, diags = evalScopedName(body.Parent, evalCtx, "parent", scope); diags.HasErrors() {
			return nil, diags
		}
		if step.Target, diags = evalScopedName(body.Target, evalCtx, "target", scope); diags.HasErrors() {
			return nil, diags
		}
		step.Expect, diags = evalExpect(body.Expect, evalCtx)

	case config.StepRelease, config.StepAllocate:
		var body objectsBody
		if diags = gohcl.DecodeBody(sb.Body, evalCtx, &body); diags.HasErrors() {
			return nil, diags
		}
		if diags = requireExpr(body.Objects, "objects", sb.DefRange); diags.HasErrors() {
			return nil, diags
		}
		if kind == config.StepRelease {
			step.Objects, diags = evalScopedNames(body.Objects, evalCtx, "objects", scope)
		} else {
			step.Objects, diags = evalNames(body.Objects, evalCtx, "objects")
		}
		if diags.HasErrors() {
			return nil, diags
		}
		if kind == config.StepAllocate {
			scope.add(step.Objects...)
		}
		step.Expect, diags = evalExpect(body.Expect, evalCtx)
	}

	if diags.HasErrors() {
		return nil, diags
	}
	return step, diags
}

func evalScopedName(expr hcl.Expression, evalCtx *hcl.EvalContext, attr string, scope nameScope) (string, hcl.Diagnostics) {
	name, diags := evalName(expr, evalCtx, attr)
	if diags.HasErrors() {
		return "", diags
	}
	return name, append(diags, checkNames(expr, attr, scope, name)...)
}

func evalScopedNames(expr hcl.Expression, evalCtx *hcl.EvalContext, attr string, scope nameScope) ([]string, hcl.Diagnostics) {
	names, diags := evalNames(expr, evalCtx, attr)
	if diags.HasErrors() {
		return nil, diags
	}
	return names, append(diags, checkNames(expr, attr, scope, names...)...)
}
