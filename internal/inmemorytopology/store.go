package inmemorytopology

import (
	"container/heap"
	"sync"

	"github.com/specialistvlad/axiomgrid/internal/topologystore"
	"github.com/specialistvlad/axiomgrid/internal/unit"
	"github.com/specialistvlad/axiomgrid/internal/unitid"
)

// Store implements topologystore.Store using maps guarded by a mutex.
type Store struct {
	mu         sync.RWMutex
	units      map[unitid.ID]*unit.Unit
	deps       map[unitid.ID][]unitid.ID            // Key: unit ID, Value: declared dependencies in order
	dependents map[unitid.ID]map[unitid.ID]struct{} // Key: dependency ID, Value: set of dependent IDs
	edges      int
}

// New creates a new, empty in-memory dependency graph.
func New() *Store {
	return &Store{
		units:      make(map[unitid.ID]*unit.Unit),
		deps:       make(map[unitid.ID][]unitid.ID),
		dependents: make(map[unitid.ID]map[unitid.ID]struct{}),
	}
}

var _ topologystore.Store = (*Store)(nil)

// Insert adds a unit after checking that none of its dependencies can reach
// it through existing edges.
func (s *Store) Insert(u *unit.Unit) error {
	if u == nil {
		return topologystore.Invalidf("cannot insert a nil unit")
	}
	if u.ID == "" {
		return topologystore.Invalidf("cannot insert a unit with an empty id")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.units[u.ID]; exists {
		return topologystore.Invalidf("duplicate unit '%s'", u.ID)
	}

	seen := make(map[unitid.ID]struct{}, len(u.DependsOn))
	for _, dep := range u.DependsOn {
		if dep == u.ID {
			return topologystore.Cycle([]unitid.ID{u.ID, u.ID})
		}
		if _, dup := seen[dep]; dup {
			return topologystore.Invalidf("unit '%s' declares dependency '%s' more than once", u.ID, dep)
		}
		seen[dep] = struct{}{}
	}

	for _, dep := range u.DependsOn {
		if path := s.pathTo(dep, u.ID); path != nil {
			return topologystore.Cycle(append([]unitid.ID{u.ID}, path...))
		}
	}

	// The graph owns its copy; later edits by the caller cannot break acyclicity.
	owned := *u
	owned.DependsOn = append([]unitid.ID(nil), u.DependsOn...)
	owned.Interface = u.Interface.Clone()
	owned.TestPlan = u.TestPlan.Clone()
	s.units[owned.ID] = &owned
	s.deps[owned.ID] = owned.DependsOn
	for _, dep := range owned.DependsOn {
		if s.dependents[dep] == nil {
			s.dependents[dep] = make(map[unitid.ID]struct{})
		}
		s.dependents[dep][owned.ID] = struct{}{}
	}
	s.edges += len(owned.DependsOn)
	return nil
}

// pathTo returns the dependency path from 'from' to 'target', both ends
// included, or nil if target is unreachable. Edges are followed in declared
// order so the witness is stable.
func (s *Store) pathTo(from, target unitid.ID) []unitid.ID {
	visited := make(map[unitid.ID]struct{})
	var walk func(id unitid.ID) []unitid.ID
	walk = func(id unitid.ID) []unitid.ID {
		if id == target {
			return []unitid.ID{id}
		}
		if _, ok := visited[id]; ok {
			return nil
		}
		visited[id] = struct{}{}
		for _, next := range s.deps[id] {
			if rest := walk(next); rest != nil {
				return append([]unitid.ID{id}, rest...)
			}
		}
		return nil
	}
	return walk(from)
}

// Unit returns the unit with the given identifier.
func (s *Store) Unit(id unitid.ID) (*unit.Unit, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.units[id]
	return u, ok
}

// TopologicalOrder emits identifiers by repeatedly taking the smallest
// identifier with no remaining incoming edges.
func (s *Store) TopologicalOrder() ([]unitid.ID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	indegree := make(map[unitid.ID]int, len(s.units))
	for id, deps := range s.deps {
		indegree[id] = len(deps)
		for _, dep := range deps {
			if _, ok := indegree[dep]; !ok {
				indegree[dep] = len(s.deps[dep])
			}
		}
	}

	ready := &idMinHeap{}
	for id, n := range indegree {
		if n == 0 {
			*ready = append(*ready, id)
		}
	}
	heap.Init(ready)

	order := make([]unitid.ID, 0, len(indegree))
	for ready.Len() > 0 {
		id := heap.Pop(ready).(unitid.ID)
		order = append(order, id)
		for dependent := range s.dependents[id] {
			indegree[dependent]--
			if indegree[dependent] == 0 {
				heap.Push(ready, dependent)
			}
		}
	}

	if len(order) != len(indegree) {
		return nil, topologystore.Cycle(s.findCycle(indegree))
	}
	return order, nil
}

// findCycle returns a deterministic witness among the identifiers that were
// never emitted (remaining in-degree above zero).
func (s *Store) findCycle(indegree map[unitid.ID]int) []unitid.ID {
	var remaining []unitid.ID
	for id, n := range indegree {
		if n > 0 {
			remaining = append(remaining, id)
		}
	}
	unitid.Sort(remaining)

	const (
		white = iota
		grey
		black
	)
	color := make(map[unitid.ID]int, len(remaining))
	var stack []unitid.ID
	var witness []unitid.ID

	var visit func(id unitid.ID) bool
	visit = func(id unitid.ID) bool {
		color[id] = grey
		stack = append(stack, id)
		for _, dep := range s.deps[id] {
			if indegree[dep] == 0 {
				continue
			}
			switch color[dep] {
			case grey:
				start := 0
				for i, v := range stack {
					if v == dep {
						start = i
						break
					}
				}
				witness = append(append([]unitid.ID(nil), stack[start:]...), dep)
				return true
			case white:
				if visit(dep) {
					return true
				}
			}
		}
		stack = stack[:len(stack)-1]
		color[id] = black
		return false
	}

	for _, id := range remaining {
		if color[id] == white && visit(id) {
			return witness
		}
	}
	return remaining
}

// DirectDependencyInterfaces returns the interfaces of id's direct
// dependencies in declared order.
func (s *Store) DirectDependencyInterfaces(id unitid.ID) []unit.Interface {
	s.mu.RLock()
	defer s.mu.RUnlock()

	deps := s.deps[id]
	out := make([]unit.Interface, 0, len(deps))
	for _, dep := range deps {
		if u, ok := s.units[dep]; ok {
			out = append(out, u.Interface)
		}
	}
	return out
}

// DependentsOf returns the direct dependents of id ordered by identifier.
func (s *Store) DependentsOf(id unitid.ID) []unitid.ID {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]unitid.ID, 0, len(s.dependents[id]))
	for dependent := range s.dependents[id] {
		out = append(out, dependent)
	}
	unitid.Sort(out)
	return out
}

// Len is the number of inserted units.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.units)
}

// EdgeCount is the number of recorded dependency edges.
func (s *Store) EdgeCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.edges
}

// idMinHeap is the ready set for TopologicalOrder.
type idMinHeap []unitid.ID

func (h idMinHeap) Len() int           { return len(h) }
func (h idMinHeap) Less(i, j int) bool { return h[i].Less(h[j]) }
func (h idMinHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *idMinHeap) Push(x any)        { *h = append(*h, x.(unitid.ID)) }
func (h *idMinHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}
