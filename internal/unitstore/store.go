// Package unitstore defines the interface for the mutable, per-run state of
// work units: progress status, the final artifact, the failure that ended a
// unit, and the interface index later units read as context.
//
// # Why Unit Store Exists
//
// The unit store isolates **mutable run state** from the **immutable plan
// structure** held by topologystore. The orchestrator is its only writer; all
// state mutation happens on the sequential driver of a single run.
//
// # Lifecycle and Usage
//
// The unit store is:
//  1. **Created** once per session (ephemeral, never shared between runs)
//  2. **Mutated** by the orchestrator as each unit moves through
//     Pending → Generating → Repairing → Passed OR Failed
//  3. **Indexed** after every unit, pass or fail, so dependents still see
//     the declared signature
//  4. **Discarded** when the session ends
package unitstore

import (
	"context"

	"github.com/specialistvlad/axiomgrid/internal/unit"
	"github.com/specialistvlad/axiomgrid/internal/unitid"
)

// Artifact is the final candidate recorded for a unit.
type Artifact struct {
	Path     string
	Content  string
	Language string
	Passed   bool
}

// IndexEntry is what the interface index remembers about a processed unit.
type IndexEntry struct {
	ID        unitid.ID
	Path      string
	Interface unit.Interface
	DependsOn []unitid.ID
	// Passed records whether the unit's artifact passed validation. A failed
	// unit is still indexed.
	Passed bool
}

// Store is the interface for per-run unit state.
type Store interface {
	// SetStatus records the unit's current progress.
	SetStatus(ctx context.Context, id unitid.ID, status unit.Status) error
	// GetStatus returns StatusPending for units never touched.
	GetStatus(ctx context.Context, id unitid.ID) (unit.Status, error)

	// SetArtifact records the final candidate of a unit.
	SetArtifact(ctx context.Context, id unitid.ID, artifact Artifact) error
	// GetArtifact returns false if no artifact was recorded.
	GetArtifact(ctx context.Context, id unitid.ID) (Artifact, bool, error)

	// SetError records the failure that ended a unit.
	SetError(ctx context.Context, id unitid.ID, unitErr error) error
	// GetError returns nil if the unit has not failed.
	GetError(ctx context.Context, id unitid.ID) (error, error)

	// Index adds or replaces the index entry for entry.ID.
	Index(ctx context.Context, entry IndexEntry) error
	// Indexed returns the index entry for id.
	Indexed(ctx context.Context, id unitid.ID) (IndexEntry, bool, error)
	// IndexedIDs lists indexed identifiers in indexing order.
	IndexedIDs(ctx context.Context) ([]unitid.ID, error)
}
