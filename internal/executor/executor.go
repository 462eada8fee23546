// Package executor defines the interface for the pipeline orchestrator and
// the RunResult it produces.
package executor

import (
	"context"

	"github.com/specialistvlad/axiomgrid/internal/unitid"
)

// Executor is responsible for driving every unit of one plan through
// generation and repair, in topological order.
type Executor interface {
	Execute(ctx context.Context) (*RunResult, error)
}

// GeneratedFile is one produced artifact.
type GeneratedFile struct {
	Unit       unitid.ID `json:"unit"`
	Path       string    `json:"path"`
	Content    string    `json:"content"`
	Language   string    `json:"language"`
	Passed     bool      `json:"passed"`
	Iterations int       `json:"iterations"`
}

// RunResult is the aggregate outcome of a run.
type RunResult struct {
	RunID string `json:"run_id"`

	// Success is true iff every file passed and no unit failed.
	Success bool `json:"success"`

	Files []GeneratedFile `json:"generated_files"`

	// TotalIterations sums the repair loop iterations of passing units.
	TotalIterations int `json:"total_iterations"`

	// Rejected holds the last candidate of each unit that exhausted its
	// repair budget. Rejected files never count as generated.
	Rejected []GeneratedFile `json:"rejected_files,omitempty"`

	// Errors holds one message per failed unit, in processing order.
	Errors []string `json:"errors"`
}

// Passing returns the files that passed validation.
func (r *RunResult) Passing() []GeneratedFile {
	var out []GeneratedFile
	for _, f := range r.Files {
		if f.Passed {
			out = append(out, f)
		}
	}
	return out
}

// Finalize derives Success from the files and errors.
func (r *RunResult) Finalize() {
	r.Success = len(r.Errors) == 0
	for _, f := range r.Files {
		if !f.Passed {
			r.Success = false
		}
	}
}
