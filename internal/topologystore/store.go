// Package topologystore defines the dependency graph contract: the static
// structure of work units and their declared dependency edges.
//
// # Why Topology Store Exists
//
// The topology store isolates the **immutable plan structure** (units and
// their dependency edges) from the **mutable run state** (status, artifacts,
// failures, the interface index) managed by unitstore.
//
// This separation keeps two guarantees easy to reason about:
//   - **Acyclicity:** Insert rejects any unit that would close a cycle, so a
//     populated store is always orderable.
//   - **Determinism:** TopologicalOrder breaks ties between simultaneously
//     ready units by identifier, never by map iteration order.
//
// # Lifecycle and Usage
//
// The topology store is:
//  1. **Created** by a planner once per run
//  2. **Populated** by Insert calls, one unit at a time
//  3. **Read-only** while the orchestrator walks the order
//  4. **Discarded** when the run ends
//
// Dependencies may be declared before the unit they name is inserted. Such a
// dangling edge still takes part in cycle checks and ordering; it surfaces as
// ErrUnitNotFound when the scheduler resolves the order into units.
package topologystore

import (
	"github.com/specialistvlad/axiomgrid/internal/unit"
	"github.com/specialistvlad/axiomgrid/internal/unitid"
)

// Store is the dependency graph of a single run.
//
// Implementations are not required to be safe for concurrent writers; a run
// owns its store exclusively. See internal/inmemorytopology for the reference
// implementation.
type Store interface {
	// Insert records a unit and its forward and reverse edges.
	//
	// It fails with ErrCycleDetected if any declared dependency, combined with
	// the existing edges, reaches back to the unit's own identifier. This
	// includes direct self-reference. A duplicate identifier is rejected as
	// ErrInvalidGraph. On failure the store is left unchanged.
	Insert(u *unit.Unit) error

	// Unit returns the unit with the given identifier.
	Unit(id unitid.ID) (*unit.Unit, bool)

	// TopologicalOrder returns a linear order consistent with every edge,
	// dependency before dependent, using in-degree reduction with a
	// lexicographic tie-break. Identifiers named only as dependencies are
	// included. It fails with ErrCycleDetected if some identifiers could not
	// be emitted.
	TopologicalOrder() ([]unitid.ID, error)

	// DirectDependencyInterfaces returns the interface of each unit directly
	// named in id's dependency list, in declared order. Dependencies that were
	// never inserted are skipped. Unknown ids and units without dependencies
	// yield an empty slice. Transitive dependencies are never returned.
	DirectDependencyInterfaces(id unitid.ID) []unit.Interface

	// DependentsOf returns the units that directly depend on id, ordered by
	// identifier.
	DependentsOf(id unitid.ID) []unitid.ID

	// Len is the number of inserted units.
	Len() int

	// EdgeCount is the number of recorded dependency edges.
	EdgeCount() int
}
