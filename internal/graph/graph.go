package graph

import (
	"context"
	"fmt"

	"github.com/specialistvlad/axiomgrid/internal/ctxlog"
	"github.com/specialistvlad/axiomgrid/internal/topologystore"
	"github.com/specialistvlad/axiomgrid/internal/unit"
	"github.com/specialistvlad/axiomgrid/internal/unitid"
	"github.com/specialistvlad/axiomgrid/internal/unitstore"
)

// Manager is the reference Graph implementation.
type Manager struct {
	topology topologystore.Store
	state    unitstore.Store
}

// New composes a Graph from a dependency graph and a unit state store.
func New(ts topologystore.Store, us unitstore.Store) *Manager {
	return &Manager{topology: ts, state: us}
}

var _ Graph = (*Manager)(nil)

func (m *Manager) Unit(ctx context.Context, id unitid.ID) (*unit.Unit, bool) {
	return m.topology.Unit(id)
}

func (m *Manager) Order(ctx context.Context) ([]unitid.ID, error) {
	order, err := m.topology.TopologicalOrder()
	if err != nil {
		return nil, err
	}
	ctxlog.FromContext(ctx).Debug("Topological order computed.", "units", len(order))
	return order, nil
}

func (m *Manager) ContextFor(ctx context.Context, id unitid.ID) []unit.Interface {
	return m.topology.DirectDependencyInterfaces(id)
}

func (m *Manager) Dependents(ctx context.Context, id unitid.ID) []unitid.ID {
	return m.topology.DependentsOf(id)
}

func (m *Manager) MarkGenerating(ctx context.Context, id unitid.ID) error {
	return m.transition(ctx, id, unit.StatusGenerating, unit.StatusPending)
}

func (m *Manager) MarkRepairing(ctx context.Context, id unitid.ID) error {
	return m.transition(ctx, id, unit.StatusRepairing, unit.StatusGenerating)
}

func (m *Manager) MarkPassed(ctx context.Context, id unitid.ID, artifact unitstore.Artifact) error {
	if err := m.transition(ctx, id, unit.StatusPassed, unit.StatusRepairing); err != nil {
		return err
	}
	return m.state.SetArtifact(ctx, id, artifact)
}

func (m *Manager) MarkFailed(ctx context.Context, id unitid.ID, artifact *unitstore.Artifact, unitErr error) error {
	if err := m.transition(ctx, id, unit.StatusFailed, unit.StatusGenerating, unit.StatusRepairing); err != nil {
		return err
	}
	if artifact != nil {
		if err := m.state.SetArtifact(ctx, id, *artifact); err != nil {
			return err
		}
	}
	return m.state.SetError(ctx, id, unitErr)
}

func (m *Manager) IndexInterface(ctx context.Context, id unitid.ID, passed bool) error {
	u, ok := m.topology.Unit(id)
	if !ok {
		return topologystore.NotFound(id)
	}
	err := m.state.Index(ctx, unitstore.IndexEntry{
		ID:        u.ID,
		Path:      u.Path,
		Interface: u.Interface,
		DependsOn: u.DependsOn,
		Passed:    passed,
	})
	if err != nil {
		return fmt.Errorf("failed to index unit '%s': %w", id, err)
	}
	ctxlog.FromContext(ctx).Debug("Interface indexed.", "unit", id, "passed", passed)
	return nil
}

func (m *Manager) Indexed(ctx context.Context, id unitid.ID) (unitstore.IndexEntry, bool, error) {
	return m.state.Indexed(ctx, id)
}

// transition moves a unit to 'to' if its current status is one of 'from'.
func (m *Manager) transition(ctx context.Context, id unitid.ID, to unit.Status, from ...unit.Status) error {
	if _, ok := m.topology.Unit(id); !ok {
		return topologystore.NotFound(id)
	}
	current, err := m.state.GetStatus(ctx, id)
	if err != nil {
		return err
	}
	allowed := false
	for _, f := range from {
		if current == f {
			allowed = true
			break
		}
	}
	if !allowed {
		return fmt.Errorf("invalid transition for unit '%s': %s -> %s", id, current, to)
	}
	ctxlog.FromContext(ctx).Debug("Unit status changed.", "unit", id, "from", current.String(), "to", to.String())
	return m.state.SetStatus(ctx, id, to)
}
