package inmemorytopology

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"github.com/specialistvlad/axiomgrid/internal/topologystore"
	"github.com/specialistvlad/axiomgrid/internal/unit"
	"github.com/specialistvlad/axiomgrid/internal/unitid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUnit(id string, deps ...string) *unit.Unit {
	u := &unit.Unit{
		ID:   unitid.ID(id),
		Path: id + ".py",
		Kind: unit.KindPython,
		Interface: unit.Interface{
			Functions: []unit.Function{{Name: "fn_" + id}},
		},
	}
	for _, d := range deps {
		u.DependsOn = append(u.DependsOn, unitid.ID(d))
	}
	return u
}

func TestInsertAndLookup(t *testing.T) {
	s := New()
	u := newUnit("a")

	require.NoError(t, s.Insert(u))

	got, ok := s.Unit("a")
	require.True(t, ok)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, 0, s.EdgeCount())

	_, ok = s.Unit("missing")
	assert.False(t, ok)
}

func TestInsert_CopiesDependencies(t *testing.T) {
	s := New()
	require.NoError(t, s.Insert(newUnit("a")))
	u := newUnit("b", "a")
	require.NoError(t, s.Insert(u))

	// Mutating the caller's slice must not change the graph.
	u.DependsOn[0] = "b"

	order, err := s.TopologicalOrder()
	require.NoError(t, err)
	assert.Equal(t, []unitid.ID{"a", "b"}, order)
}

func TestInsert_CopiesInterfaceAndTestPlan(t *testing.T) {
	s := New()
	u := &unit.Unit{
		ID:   "a",
		Path: "a.py",
		Kind: unit.KindPython,
		Interface: unit.Interface{
			Classes:   []unit.Class{{Name: "Repo", Methods: []unit.Function{{Name: "save", Params: []unit.Param{{Name: "item"}}}}}},
			Functions: []unit.Function{{Name: "load", Params: []unit.Param{{Name: "path", Type: "str"}}}},
			Constants: []unit.Constant{{Name: "LIMIT", ValueType: "int"}},
		},
		TestPlan: &unit.TestPlan{UnitTests: []unit.TestCase{{Name: "loads"}}},
	}
	require.NoError(t, s.Insert(u))

	u.Interface.Classes[0].Methods[0].Params[0].Name = "changed"
	u.Interface.Functions[0].Params[0].Type = "bytes"
	u.Interface.Constants[0].Name = "CHANGED"
	u.TestPlan.UnitTests[0].Name = "changed"

	got, ok := s.Unit("a")
	require.True(t, ok)
	assert.Equal(t, "item", got.Interface.Classes[0].Methods[0].Params[0].Name)
	assert.Equal(t, "str", got.Interface.Functions[0].Params[0].Type)
	assert.Equal(t, "LIMIT", got.Interface.Constants[0].Name)
	assert.Equal(t, "loads", got.TestPlan.UnitTests[0].Name)
}

func TestInsert_Rejections(t *testing.T) {
	testCases := []struct {
		name     string
		setup    []*unit.Unit
		insert   *unit.Unit
		sentinel error
	}{
		{
			name:     "direct self reference",
			insert:   newUnit("a", "a"),
			sentinel: topologystore.ErrCycleDetected,
		},
		{
			name:     "two-unit cycle through a forward reference",
			setup:    []*unit.Unit{newUnit("a", "b")},
			insert:   newUnit("b", "a"),
			sentinel: topologystore.ErrCycleDetected,
		},
		{
			name:     "transitive cycle",
			setup:    []*unit.Unit{newUnit("a", "c"), newUnit("b", "a")},
			insert:   newUnit("c", "b"),
			sentinel: topologystore.ErrCycleDetected,
		},
		{
			name:     "duplicate id",
			setup:    []*unit.Unit{newUnit("a")},
			insert:   newUnit("a"),
			sentinel: topologystore.ErrInvalidGraph,
		},
		{
			name:     "repeated dependency",
			setup:    []*unit.Unit{newUnit("a")},
			insert:   newUnit("b", "a", "a"),
			sentinel: topologystore.ErrInvalidGraph,
		},
		{
			name:     "nil unit",
			insert:   nil,
			sentinel: topologystore.ErrInvalidGraph,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := New()
			for _, u := range tc.setup {
				require.NoError(t, s.Insert(u))
			}
			nodesBefore, edgesBefore := s.Len(), s.EdgeCount()

			err := s.Insert(tc.insert)

			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.sentinel), "got %v", err)
			assert.Equal(t, nodesBefore, s.Len(), "node count must be unchanged")
			assert.Equal(t, edgesBefore, s.EdgeCount(), "edge count must be unchanged")
		})
	}
}

func TestInsert_CycleWitness(t *testing.T) {
	s := New()
	require.NoError(t, s.Insert(newUnit("a", "c")))
	require.NoError(t, s.Insert(newUnit("b", "a")))

	err := s.Insert(newUnit("c", "b"))

	var ge *topologystore.GraphError
	require.True(t, errors.As(err, &ge))
	assert.Equal(t, []unitid.ID{"c", "b", "a", "c"}, ge.Path)
	assert.Equal(t, "cycle detected: c -> b -> a -> c", err.Error())
}

func TestTopologicalOrder_Diamond(t *testing.T) {
	s := New()
	// Inserted out of order on purpose; D names B and C before they exist.
	require.NoError(t, s.Insert(newUnit("D", "C", "B")))
	require.NoError(t, s.Insert(newUnit("B", "A")))
	require.NoError(t, s.Insert(newUnit("C", "A")))
	require.NoError(t, s.Insert(newUnit("A")))

	order, err := s.TopologicalOrder()

	require.NoError(t, err)
	assert.Equal(t, []unitid.ID{"A", "B", "C", "D"}, order)
}

func TestTopologicalOrder_TieBreakIsLexicographic(t *testing.T) {
	s := New()
	for _, id := range []string{"zeta", "alpha", "mid", "beta"} {
		require.NoError(t, s.Insert(newUnit(id)))
	}

	for i := 0; i < 20; i++ {
		order, err := s.TopologicalOrder()
		require.NoError(t, err)
		assert.Equal(t, []unitid.ID{"alpha", "beta", "mid", "zeta"}, order)
	}
}

func TestTopologicalOrder_IncludesDanglingDependencies(t *testing.T) {
	s := New()
	require.NoError(t, s.Insert(newUnit("app", "ghost")))

	order, err := s.TopologicalOrder()

	require.NoError(t, err)
	assert.Equal(t, []unitid.ID{"ghost", "app"}, order)
}

func TestTopologicalOrder_ResidualCycleIsReported(t *testing.T) {
	// Edges written directly, bypassing Insert's check.
	s := New()
	for _, u := range []*unit.Unit{newUnit("a", "b"), newUnit("b", "a"), newUnit("c")} {
		owned := *u
		s.units[u.ID] = &owned
		s.deps[u.ID] = u.DependsOn
		for _, d := range u.DependsOn {
			if s.dependents[d] == nil {
				s.dependents[d] = map[unitid.ID]struct{}{}
			}
			s.dependents[d][u.ID] = struct{}{}
		}
	}

	_, err := s.TopologicalOrder()

	require.Error(t, err)
	assert.True(t, errors.Is(err, topologystore.ErrCycleDetected))
	var ge *topologystore.GraphError
	require.True(t, errors.As(err, &ge))
	assert.Equal(t, []unitid.ID{"a", "b", "a"}, ge.Path)
}

func TestTopologicalOrder_RespectsEveryEdge(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for trial := 0; trial < 50; trial++ {
		s := New()
		n := 2 + rng.Intn(25)
		ids := make([]string, n)
		for i := range ids {
			ids[i] = fmt.Sprintf("u%03d", rng.Intn(1000)*1000+i)
		}
		// Edges only point to earlier indices, so the set is acyclic.
		var units []*unit.Unit
		for i, id := range ids {
			var deps []string
			for j := 0; j < i; j++ {
				if rng.Intn(4) == 0 {
					deps = append(deps, ids[j])
				}
			}
			units = append(units, newUnit(id, deps...))
		}
		rng.Shuffle(len(units), func(i, j int) { units[i], units[j] = units[j], units[i] })
		for _, u := range units {
			require.NoError(t, s.Insert(u))
		}

		order, err := s.TopologicalOrder()
		require.NoError(t, err)
		require.Len(t, order, n)

		pos := make(map[unitid.ID]int, n)
		for i, id := range order {
			pos[id] = i
		}
		for _, u := range units {
			for _, d := range u.DependsOn {
				assert.Less(t, pos[d], pos[u.ID], "dependency %s must precede %s", d, u.ID)
			}
		}
	}
}

func TestDirectDependencyInterfaces(t *testing.T) {
	s := New()
	require.NoError(t, s.Insert(newUnit("base")))
	require.NoError(t, s.Insert(newUnit("left", "base")))
	require.NoError(t, s.Insert(newUnit("right", "base")))
	require.NoError(t, s.Insert(newUnit("top", "right", "left")))

	t.Run("direct dependencies in declared order", func(t *testing.T) {
		got := s.DirectDependencyInterfaces("top")
		require.Len(t, got, 2)
		assert.Equal(t, "fn_right", got[0].Functions[0].Name)
		assert.Equal(t, "fn_left", got[1].Functions[0].Name)
	})

	t.Run("transitive dependencies are invisible", func(t *testing.T) {
		for _, iface := range s.DirectDependencyInterfaces("top") {
			assert.NotEqual(t, "fn_base", iface.Functions[0].Name)
		}
	})

	t.Run("no dependencies", func(t *testing.T) {
		got := s.DirectDependencyInterfaces("base")
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("unknown unit", func(t *testing.T) {
		assert.Empty(t, s.DirectDependencyInterfaces("nope"))
	})
}

func TestDependentsOf(t *testing.T) {
	s := New()
	require.NoError(t, s.Insert(newUnit("b")))
	require.NoError(t, s.Insert(newUnit("z", "b")))
	require.NoError(t, s.Insert(newUnit("a", "b")))

	assert.Equal(t, []unitid.ID{"a", "z"}, s.DependentsOf("b"))
	assert.Empty(t, s.DependentsOf("a"))

	assert.Equal(t, 3, s.Len())
	assert.Equal(t, 2, s.EdgeCount())
}
