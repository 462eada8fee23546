package testutil

import (
	"testing"

	"github.com/specialistvlad/axiomgrid/internal/inmemorytopology"
	"github.com/specialistvlad/axiomgrid/internal/unit"
	"github.com/specialistvlad/axiomgrid/internal/unitid"
	"github.com/stretchr/testify/require"
)

// PythonUnit creates a python unit exposing a single function.
func PythonUnit(id string, deps ...string) *unit.Unit {
	u := &unit.Unit{
		ID:   unitid.ID(id),
		Path: id + ".py",
		Kind: unit.KindPython,
		Interface: unit.Interface{
			Functions: []unit.Function{{Name: FuncName(unitid.ID(id)), ReturnType: "str"}},
		},
	}
	for _, d := range deps {
		u.DependsOn = append(u.DependsOn, unitid.ID(d))
	}
	return u
}

// Topology inserts units in order into a fresh in-memory dependency graph.
func Topology(t *testing.T, units ...*unit.Unit) *inmemorytopology.Store {
	t.Helper()
	s := inmemorytopology.New()
	for _, u := range units {
		require.NoError(t, s.Insert(u))
	}
	return s
}

// Diamond returns A, B(A), C(A), D(B, C).
func Diamond() []*unit.Unit {
	return []*unit.Unit{
		PythonUnit("A"),
		PythonUnit("B", "A"),
		PythonUnit("C", "A"),
		PythonUnit("D", "B", "C"),
	}
}
