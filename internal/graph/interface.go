package graph

import (
	"context"

	"github.com/specialistvlad/axiomgrid/internal/unit"
	"github.com/specialistvlad/axiomgrid/internal/unitid"
	"github.com/specialistvlad/axiomgrid/internal/unitstore"
)

// Graph combines dependency-graph queries with unit state updates for a
// single run.
//
// # Usage Patterns
//
// **Scheduler** uses Graph to:
//   - Compute the order: Order()
//   - Resolve identifiers: Unit()
//
// **Builder** uses Graph to:
//   - Build pruned context: ContextFor(), annotated through Indexed()
//
// **Orchestrator** uses Graph to:
//   - Record progress: MarkGenerating(), MarkRepairing(), MarkPassed(), MarkFailed()
//   - Maintain the interface index: IndexInterface()
//   - Report who inherits a failure: Dependents()
type Graph interface {
	// Unit looks up a unit by identifier.
	Unit(ctx context.Context, id unitid.ID) (*unit.Unit, bool)

	// Order returns the deterministic topological order.
	Order(ctx context.Context) ([]unitid.ID, error)

	// ContextFor returns the interfaces of id's direct dependencies in declared
	// order. Transitive dependencies are never included.
	ContextFor(ctx context.Context, id unitid.ID) []unit.Interface

	// Dependents returns the units that directly depend on id, ordered by
	// identifier.
	Dependents(ctx context.Context, id unitid.ID) []unitid.ID

	// MarkGenerating: Pending → Generating.
	MarkGenerating(ctx context.Context, id unitid.ID) error

	// MarkRepairing: Generating → Repairing.
	MarkRepairing(ctx context.Context, id unitid.ID) error

	// MarkPassed records a passing artifact: Repairing → Passed.
	MarkPassed(ctx context.Context, id unitid.ID, artifact unitstore.Artifact) error

	// MarkFailed records the failure and, when one exists, the last candidate.
	MarkFailed(ctx context.Context, id unitid.ID, artifact *unitstore.Artifact, unitErr error) error

	// IndexInterface records the unit's declared interface in the index,
	// whether or not it passed.
	IndexInterface(ctx context.Context, id unitid.ID, passed bool) error

	// Indexed returns the index entry of a unit.
	Indexed(ctx context.Context, id unitid.ID) (unitstore.IndexEntry, bool, error)
}
