// This file contains the logic for translating HCL schema structs into the
// format-agnostic configuration model defined in the config package.

package hcl_adapter

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/axiomgrid/internal/config"
	"github.com/specialistvlad/axiomgrid/internal/ctxlog"
)

// translateUnit converts the HCL-specific unit schema into the agnostic model.
func (l *Loader) translateUnit(ctx context.Context, u *UnitBlock, evalCtx *hcl.EvalContext) (*config.Unit, error) {
	ctx, logger := ctxlog.With(ctx, "unit", u.ID)
	logger.Debug("Translating HCL unit to internal config model.")

	out := &config.Unit{
		ID:          u.ID,
		Path:        u.Path,
		Kind:        u.Kind,
		DependsOn:   u.DependsOn,
		Description: u.Description,
	}

	for _, c := range u.Classes {
		class := &config.Class{Name: c.Name, Docstring: c.Docstring}
		for _, m := range c.Methods {
			fn, err := translateFunction(ctx, m, evalCtx)
			if err != nil {
				return nil, fmt.Errorf("in unit '%s', class '%s': %w", u.ID, c.Name, err)
			}
			class.Methods = append(class.Methods, fn)
		}
		out.Classes = append(out.Classes, class)
	}
	for _, f := range u.Functions {
		fn, err := translateFunction(ctx, f, evalCtx)
		if err != nil {
			return nil, fmt.Errorf("in unit '%s': %w", u.ID, err)
		}
		out.Functions = append(out.Functions, fn)
	}
	for _, c := range u.Constants {
		out.Constants = append(out.Constants, &config.Constant{Name: c.Name, Type: c.Type})
	}
	for _, t := range u.Tests {
		scope := t.Scope
		if scope == "" {
			scope = config.TestScopeUnit
		}
		if scope != config.TestScopeUnit && scope != config.TestScopeIntegration {
			return nil, fmt.Errorf("in unit '%s', test '%s': unknown scope '%s'", u.ID, t.Name, t.Scope)
		}
		out.Tests = append(out.Tests, &config.Test{
			Name:        t.Name,
			Scope:       scope,
			Description: t.Description,
			Expect:      t.Expect,
		})
	}
	return out, nil
}

func translateFunction(ctx context.Context, f *FunctionBlock, evalCtx *hcl.EvalContext) (*config.Function, error) {
	fn := &config.Function{Name: f.Name, Returns: f.Returns, Docstring: f.Docstring}
	for _, p := range f.Params {
		param := &config.Param{Name: p.Name, Type: p.Type}
		if isExprDefined(ctx, p.Default, "default") {
			def, err := renderDefault(p.Default, evalCtx)
			if err != nil {
				return nil, fmt.Errorf("function '%s', param '%s': %w", f.Name, p.Name, err)
			}
			param.Default = def
		}
		fn.Params = append(fn.Params, param)
	}
	return fn, nil
}

// translatePolicy converts the HCL-specific policy schema into the agnostic model.
func (l *Loader) translatePolicy(p *PolicyBlock) *config.Policy {
	out := &config.Policy{
		ExtraBanned:     p.ExtraBanned,
		Guidance:        p.Guidance,
		CaseInsensitive: p.CaseInsensitive,
	}
	for _, g := range p.Grammars {
		out.Grammars = append(out.Grammars, &config.GrammarRule{
			Language:    g.Language,
			Name:        g.Name,
			Enforcement: g.Enforcement,
			Scope:       g.Scope,
			Definition:  g.Definition,
			Forbidden:   g.Forbidden,
		})
	}
	return out
}
