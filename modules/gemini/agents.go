package gemini

import (
	"context"
	"fmt"

	"github.com/specialistvlad/axiomgrid/internal/agent"
	"github.com/specialistvlad/axiomgrid/internal/ctxlog"
	"github.com/specialistvlad/axiomgrid/internal/planner"
	"github.com/specialistvlad/axiomgrid/internal/task"
	"github.com/specialistvlad/axiomgrid/internal/topologystore"
)

// Planner asks the model for a JSON plan.
type Planner struct {
	model Model
}

// Generator sends the prepared generation prompt.
type Generator struct {
	model Model
}

// Repairer sends the prepared repair prompt.
type Repairer struct {
	model Model
}

var (
	_ agent.Planner   = (*Planner)(nil)
	_ agent.Generator = (*Generator)(nil)
	_ agent.Repairer  = (*Repairer)(nil)
)

// NewAgents binds all three collaborators to one model.
func NewAgents(m Model) agent.Agents {
	return agent.Agents{
		Planner:   &Planner{model: m},
		Generator: &Generator{model: m},
		Repairer:  &Repairer{model: m},
	}
}

func (p *Planner) Plan(ctx context.Context, requirement string) (topologystore.Store, error) {
	ctxlog.FromContext(ctx).Info("Requesting plan.", "role", agent.RoleArchitect)
	raw, err := p.model.Generate(ctx, PlanningPrompt(requirement), true)
	if err != nil {
		return nil, err
	}
	m, err := decodePlan(raw)
	if err != nil {
		return nil, err
	}
	return planner.FromModel(m)
}

func (g *Generator) Generate(ctx context.Context, t *task.Task) (string, error) {
	ctxlog.FromContext(ctx).Debug("Requesting candidate.", "role", agent.RoleBuilder, "unit", t.Unit.ID)
	raw, err := g.model.Generate(ctx, t.Prompt, false)
	if err != nil {
		return "", err
	}
	code := ExtractCode(raw)
	if code == "" {
		return "", fmt.Errorf("unit %s: %w", t.Unit.ID, agent.ErrEmptyCandidate)
	}
	return code, nil
}

func (r *Repairer) Repair(ctx context.Context, t *task.RepairTask) (string, error) {
	ctxlog.FromContext(ctx).Debug("Requesting repair.", "role", agent.RoleBuilder, "unit", t.Unit.ID, "iteration", t.Iteration)
	raw, err := r.model.Generate(ctx, t.Prompt, false)
	if err != nil {
		return "", err
	}
	code := ExtractCode(raw)
	if code == "" {
		return "", fmt.Errorf("unit %s: %w", t.Unit.ID, agent.ErrEmptyCandidate)
	}
	return code, nil
}
