// Package agent defines the collaborator contracts at the system boundary:
// planning a requirement into a dependency graph, generating an initial
// candidate for a unit, and repairing a failing candidate.
//
// The core never implements generative behaviour itself. Implementations
// live in modules/*.
//
// Determinism is a caller obligation. Identical requirements produce
// identical artifacts only if the Repairer is a deterministic function of
// its request. A non-deterministic Generator makes whole-pipeline reruns
// irreproducible; that is a documented caveat, not a contract violation.
package agent

import (
	"context"
	"errors"

	"github.com/specialistvlad/axiomgrid/internal/task"
	"github.com/specialistvlad/axiomgrid/internal/topologystore"
)

// ErrEmptyCandidate is returned by collaborators that produced no code.
var ErrEmptyCandidate = errors.New("collaborator returned an empty candidate")

// Role names the part an agent plays in a run. Roles appear in logs and
// events only.
type Role string

const (
	// RoleArchitect plans the dependency graph.
	RoleArchitect Role = "architect"
	// RoleBuilder generates and repairs candidates.
	RoleBuilder Role = "builder"
	// RoleAuditor validates candidates.
	RoleAuditor Role = "auditor"
	// RoleLibrarian maintains the interface index.
	RoleLibrarian Role = "librarian"
)

// Planner decomposes a requirement into a dependency graph. The returned
// graph must be acyclic; the orchestrator checks again.
type Planner interface {
	Plan(ctx context.Context, requirement string) (topologystore.Store, error)
}

// Generator proposes the initial candidate for a prepared task.
type Generator interface {
	Generate(ctx context.Context, t *task.Task) (string, error)
}

// Repairer proposes the next candidate for a failing one.
type Repairer interface {
	Repair(ctx context.Context, t *task.RepairTask) (string, error)
}

// Agents bundles the collaborators of one backend.
type Agents struct {
	Planner   Planner
	Generator Generator
	Repairer  Repairer
}

// Validate reports the first missing collaborator.
func (a Agents) Validate() error {
	switch {
	case a.Planner == nil:
		return errors.New("no planner configured")
	case a.Generator == nil:
		return errors.New("no generator configured")
	case a.Repairer == nil:
		return errors.New("no repairer configured")
	}
	return nil
}
