// Package pipeline exposes the two top-level entry points: running a whole
// requirement through planning, generation, and repair, and validating a
// single artifact.
package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/specialistvlad/axiomgrid/internal/agent"
	"github.com/specialistvlad/axiomgrid/internal/ctxlog"
	"github.com/specialistvlad/axiomgrid/internal/events"
	"github.com/specialistvlad/axiomgrid/internal/executor"
	"github.com/specialistvlad/axiomgrid/internal/localsession"
	"github.com/specialistvlad/axiomgrid/internal/policy"
	"github.com/specialistvlad/axiomgrid/internal/runid"
	"github.com/specialistvlad/axiomgrid/internal/session"
	"github.com/specialistvlad/axiomgrid/internal/validation"
	"github.com/specialistvlad/axiomgrid/internal/validator"
)

// Pipeline holds the collaborators shared by every run.
type Pipeline struct {
	Agents    agent.Agents
	Policy    *policy.Policy
	Validator validator.Interface
	// Publisher is optional.
	Publisher events.Publisher
	// Sessions defaults to local, in-process sessions.
	Sessions session.SessionFactory
	// NewRunID defaults to runid.Generate.
	NewRunID func() (string, error)
}

// RunPipeline plans requirement into a dependency graph and drives every unit
// through generation and a repair loop bounded by maxRetries.
//
// A cycle or unknown unit in the plan fails the whole run. A unit that
// exhausts its budget is reported in RunResult.Errors and does not stop the
// run.
func (p *Pipeline) RunPipeline(ctx context.Context, requirement string, maxRetries int) (*executor.RunResult, error) {
	if err := p.Agents.Validate(); err != nil {
		return nil, err
	}
	if p.Validator == nil {
		return nil, errors.New("no validator configured")
	}
	logger := ctxlog.FromContext(ctx)

	newRunID := p.NewRunID
	if newRunID == nil {
		newRunID = runid.Generate
	}
	runID, err := newRunID()
	if err != nil {
		return nil, err
	}

	logger.Debug("Planning requirement.", "role", agent.RoleArchitect, "run", runID)
	plan, err := p.Agents.Planner.Plan(ctx, requirement)
	if err != nil {
		return nil, fmt.Errorf("planning failed: %w", err)
	}
	if _, err := plan.TopologicalOrder(); err != nil {
		return nil, fmt.Errorf("planner produced an invalid graph: %w", err)
	}

	factory := p.Sessions
	if factory == nil {
		factory = &localsession.SessionFactory{}
	}
	sess, err := factory.NewSession(ctx, plan, session.Options{
		RunID:      runID,
		Policy:     p.Policy,
		Validator:  p.Validator,
		Generator:  p.Agents.Generator,
		Repairer:   p.Agents.Repairer,
		MaxRetries: maxRetries,
		Publisher:  p.Publisher,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	defer func() {
		if err := sess.Close(ctx); err != nil {
			logger.Warn("Failed to close session.", "error", err)
		}
	}()

	exec, err := sess.GetExecutor()
	if err != nil {
		return nil, err
	}
	return exec.Execute(ctx)
}

// ValidateArtifact checks one artifact without running anything.
func (p *Pipeline) ValidateArtifact(code, language string) validation.Outcome {
	return p.Validator.Validate(code, language)
}
