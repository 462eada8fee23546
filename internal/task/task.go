// Package task holds the requests handed to the generation collaborators.
package task

import (
	"github.com/specialistvlad/axiomgrid/internal/unit"
	"github.com/specialistvlad/axiomgrid/internal/unitid"
	"github.com/specialistvlad/axiomgrid/internal/validation"
)

// Task represents a unit that is fully prepared for initial generation.
// It is the output of a builder.Builder and the input of an agent.Generator.
type Task struct {
	// Unit is the original unit definition from the graph.
	Unit *unit.Unit

	// Context holds one entry per direct dependency, in declared order.
	// Transitive dependencies never appear.
	Context []DependencyContext

	// Prompt is the rendered instruction, policy suffix included.
	Prompt string
}

// DependencyContext is what a unit is allowed to know about one of its
// direct dependencies.
type DependencyContext struct {
	ID        unitid.ID
	Path      string
	Interface unit.Interface
	// Indexed is true once the dependency was processed in this run.
	Indexed bool
	// Passed is false for a dependency that exhausted its repair budget.
	// Its declared interface is still usable.
	Passed bool
}

// RepairTask is a request for the next candidate of a failing artifact.
type RepairTask struct {
	Unit    *unit.Unit
	Code    string
	Outcome validation.Outcome
	// Iteration is the repair loop iteration that produced Outcome.
	Iteration int
	Prompt    string
}

// Language returns the validation language of the task's unit.
func (t *Task) Language() string {
	return t.Unit.Language()
}
