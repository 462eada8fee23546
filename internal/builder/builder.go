package builder

import (
	"context"
	"fmt"

	"github.com/specialistvlad/axiomgrid/internal/ctxlog"
	"github.com/specialistvlad/axiomgrid/internal/graph"
	"github.com/specialistvlad/axiomgrid/internal/policy"
	"github.com/specialistvlad/axiomgrid/internal/task"
	"github.com/specialistvlad/axiomgrid/internal/topologystore"
	"github.com/specialistvlad/axiomgrid/internal/unit"
	"github.com/specialistvlad/axiomgrid/internal/validation"
)

// DefaultBuilder renders prompts for a fixed policy.
type DefaultBuilder struct {
	policy *policy.Policy
}

var _ Builder = (*DefaultBuilder)(nil)

// New creates a builder. A nil policy means policy.Default().
func New(p *policy.Policy) *DefaultBuilder {
	if p == nil {
		p = policy.Default()
	}
	return &DefaultBuilder{policy: p}
}

// Build implements the Builder interface. Declared interfaces come from the
// graph's pruned context; the interface index only annotates whether each
// dependency was processed and passed.
func (b *DefaultBuilder) Build(ctx context.Context, u *unit.Unit, g graph.Graph) (*task.Task, error) {
	ifaces := g.ContextFor(ctx, u.ID)
	deps := make([]task.DependencyContext, 0, len(ifaces))
	for _, depID := range u.DependsOn {
		dep, ok := g.Unit(ctx, depID)
		if !ok {
			return nil, topologystore.NotFound(depID)
		}
		if len(deps) == len(ifaces) {
			return nil, fmt.Errorf("context for '%s' is missing dependency '%s'", u.ID, depID)
		}
		dc := task.DependencyContext{ID: dep.ID, Path: dep.Path, Interface: ifaces[len(deps)]}

		entry, indexed, err := g.Indexed(ctx, depID)
		if err != nil {
			return nil, fmt.Errorf("failed to read index for '%s': %w", depID, err)
		}
		if indexed {
			dc.Indexed = true
			dc.Passed = entry.Passed
		}
		deps = append(deps, dc)
	}

	t := &task.Task{Unit: u, Context: deps}
	t.Prompt = GenerationPrompt(t, b.policy)
	ctxlog.FromContext(ctx).Debug("Generation task built.", "unit", u.ID, "dependencies", len(deps))
	return t, nil
}

// BuildRepair implements the Builder interface.
func (b *DefaultBuilder) BuildRepair(u *unit.Unit, code string, outcome validation.Outcome, iteration int) *task.RepairTask {
	return &task.RepairTask{
		Unit:      u,
		Code:      code,
		Outcome:   outcome,
		Iteration: iteration,
		Prompt:    RepairPrompt(code, u.Language(), outcome),
	}
}
