// Package planner turns a loaded plan file into a dependency graph and its
// policy block into policy overrides.
package planner

import (
	"context"
	"errors"
	"fmt"

	"github.com/specialistvlad/axiomgrid/internal/agent"
	"github.com/specialistvlad/axiomgrid/internal/config"
	"github.com/specialistvlad/axiomgrid/internal/ctxlog"
	"github.com/specialistvlad/axiomgrid/internal/inmemorytopology"
	"github.com/specialistvlad/axiomgrid/internal/policy"
	"github.com/specialistvlad/axiomgrid/internal/topologystore"
	"github.com/specialistvlad/axiomgrid/internal/unit"
	"github.com/specialistvlad/axiomgrid/internal/unitid"
)

// Static is an agent.Planner that ignores the requirement text and returns
// the graph declared in a plan file. Every call builds a fresh store.
type Static struct {
	model *config.Model
}

var _ agent.Planner = (*Static)(nil)

// NewStatic creates a planner over an already loaded model.
func NewStatic(m *config.Model) *Static {
	return &Static{model: m}
}

func (s *Static) Plan(ctx context.Context, requirement string) (topologystore.Store, error) {
	ctxlog.FromContext(ctx).Debug("Planning from static plan.", "role", agent.RoleArchitect, "requirement_bytes", len(requirement))
	return FromModel(s.model)
}

// FromModel converts every unit of m and inserts it into a new in-memory
// topology. Insertion order follows the model; forward references are
// allowed, cycles and duplicates are not.
func FromModel(m *config.Model) (*inmemorytopology.Store, error) {
	if m == nil || len(m.Units) == 0 {
		return nil, errors.New("plan declares no units")
	}
	store := inmemorytopology.New()
	for _, cu := range m.Units {
		u, err := ToUnit(cu)
		if err != nil {
			return nil, err
		}
		if err := store.Insert(u); err != nil {
			return nil, fmt.Errorf("unit '%s': %w", cu.ID, err)
		}
	}
	return store, nil
}

// ToUnit validates and converts a single config unit.
func ToUnit(cu *config.Unit) (*unit.Unit, error) {
	id, err := unitid.Parse(cu.ID)
	if err != nil {
		return nil, err
	}
	if cu.Path == "" {
		return nil, fmt.Errorf("unit '%s': path must not be empty", id)
	}
	kind, err := unit.ParseKind(cu.Kind)
	if err != nil {
		return nil, fmt.Errorf("unit '%s': %w", id, err)
	}

	u := &unit.Unit{
		ID:          id,
		Path:        cu.Path,
		Kind:        kind,
		Description: cu.Description,
	}
	for _, raw := range cu.DependsOn {
		dep, err := unitid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("unit '%s' dependency: %w", id, err)
		}
		u.DependsOn = append(u.DependsOn, dep)
	}

	for _, c := range cu.Classes {
		class := unit.Class{Name: c.Name, Docstring: c.Docstring}
		for _, m := range c.Methods {
			class.Methods = append(class.Methods, toFunction(m))
		}
		u.Interface.Classes = append(u.Interface.Classes, class)
	}
	for _, f := range cu.Functions {
		u.Interface.Functions = append(u.Interface.Functions, toFunction(f))
	}
	for _, c := range cu.Constants {
		u.Interface.Constants = append(u.Interface.Constants, unit.Constant{Name: c.Name, ValueType: c.Type})
	}
	if len(cu.Tests) > 0 {
		u.TestPlan = &unit.TestPlan{}
	}
	for _, t := range cu.Tests {
		tc := unit.TestCase{Name: t.Name, Description: t.Description, ExpectedBehavior: t.Expect}
		if t.Scope == config.TestScopeIntegration {
			u.TestPlan.IntegrationTests = append(u.TestPlan.IntegrationTests, tc)
		} else {
			u.TestPlan.UnitTests = append(u.TestPlan.UnitTests, tc)
		}
	}
	return u, nil
}

func toFunction(f *config.Function) unit.Function {
	fn := unit.Function{Name: f.Name, ReturnType: f.Returns, Docstring: f.Docstring}
	for _, p := range f.Params {
		fn.Params = append(fn.Params, unit.Param{Name: p.Name, Type: p.Type, Default: p.Default})
	}
	return fn
}

// Overrides converts a policy block. A nil block yields empty overrides.
// Omitted enforcement defaults to fatal and omitted scope to line.
func Overrides(p *config.Policy) (policy.Overrides, error) {
	var o policy.Overrides
	if p == nil {
		return o, nil
	}
	o.ExtraBanned = p.ExtraBanned
	o.Guidance = p.Guidance
	o.CaseInsensitive = p.CaseInsensitive

	for _, g := range p.Grammars {
		if len(g.Forbidden) == 0 {
			return o, fmt.Errorf("grammar '%s' for %s forbids nothing", g.Name, g.Language)
		}
		enforcement := policy.EnforcementFatal
		if g.Enforcement != "" {
			e, err := policy.ParseEnforcement(g.Enforcement)
			if err != nil {
				return o, fmt.Errorf("grammar '%s': %w", g.Name, err)
			}
			enforcement = e
		}
		scope := policy.ScopeLine
		switch policy.Scope(g.Scope) {
		case "", policy.ScopeLine:
		case policy.ScopeBody:
			scope = policy.ScopeBody
		default:
			return o, fmt.Errorf("grammar '%s': unknown scope '%s'", g.Name, g.Scope)
		}

		if o.Grammars == nil {
			o.Grammars = make(map[string][]policy.GrammarRule)
		}
		o.Grammars[g.Language] = append(o.Grammars[g.Language], policy.GrammarRule{
			Name:        g.Name,
			Enforcement: enforcement,
			Scope:       scope,
			Definition:  g.Definition,
			Forbidden:   g.Forbidden,
		})
	}
	return o, nil
}
