package scheduler

import (
	"context"

	"github.com/specialistvlad/axiomgrid/internal/ctxlog"
	"github.com/specialistvlad/axiomgrid/internal/graph"
	"github.com/specialistvlad/axiomgrid/internal/topologystore"
	"github.com/specialistvlad/axiomgrid/internal/unit"
)

// Scheduler yields the units of a run in processing order.
type Scheduler interface {
	Schedule(ctx context.Context) ([]*unit.Unit, error)
}

// Sequential resolves the graph's topological order into units.
type Sequential struct {
	graph graph.Graph
}

// New creates a sequential scheduler over g.
func New(g graph.Graph) *Sequential {
	return &Sequential{graph: g}
}

var _ Scheduler = (*Sequential)(nil)

// Schedule returns every unit in dependency order. It fails with the graph's
// ErrCycleDetected if no order exists, and with ErrUnitNotFound if the order
// names an identifier that was only ever declared as a dependency.
func (s *Sequential) Schedule(ctx context.Context) ([]*unit.Unit, error) {
	logger := ctxlog.FromContext(ctx)

	order, err := s.graph.Order(ctx)
	if err != nil {
		return nil, err
	}

	units := make([]*unit.Unit, 0, len(order))
	for _, id := range order {
		u, ok := s.graph.Unit(ctx, id)
		if !ok {
			logger.Error("Ordered unit is missing from the graph.", "unit", id)
			return nil, topologystore.NotFound(id)
		}
		units = append(units, u)
	}
	logger.Debug("Schedule ready.", "units", len(units))
	return units, nil
}
