package builder

import (
	"context"

	"github.com/specialistvlad/axiomgrid/internal/graph"
	"github.com/specialistvlad/axiomgrid/internal/task"
	"github.com/specialistvlad/axiomgrid/internal/unit"
	"github.com/specialistvlad/axiomgrid/internal/validation"
)

// Builder transforms a unit into generation and repair requests.
//
// # Usage Pattern
//
// The orchestrator calls Build() once per unit, then BuildRepair() for each
// failing iteration of the repair loop:
//
//	t, err := builder.Build(ctx, u, g)
//	if err != nil {
//	    // a dependency is missing from the graph
//	}
//	code, err := generator.Generate(ctx, t)
//
// # Error Conditions
//
// Build() returns an error when a declared dependency does not exist in the
// graph or the unit state store fails.
type Builder interface {
	// Build collects the pruned context of u and renders its prompt.
	Build(ctx context.Context, u *unit.Unit, g graph.Graph) (*task.Task, error)

	// BuildRepair renders a repair request for a failing candidate.
	BuildRepair(u *unit.Unit, code string, outcome validation.Outcome, iteration int) *task.RepairTask
}
