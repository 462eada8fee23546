// Package localexecutor provides a concrete, in-process implementation of the
// executor.Executor interface: the sequential pipeline orchestrator.
package localexecutor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/specialistvlad/axiomgrid/internal/agent"
	"github.com/specialistvlad/axiomgrid/internal/builder"
	"github.com/specialistvlad/axiomgrid/internal/ctxlog"
	"github.com/specialistvlad/axiomgrid/internal/events"
	"github.com/specialistvlad/axiomgrid/internal/executor"
	"github.com/specialistvlad/axiomgrid/internal/graph"
	"github.com/specialistvlad/axiomgrid/internal/repair"
	"github.com/specialistvlad/axiomgrid/internal/scheduler"
	"github.com/specialistvlad/axiomgrid/internal/unit"
	"github.com/specialistvlad/axiomgrid/internal/unitstore"
	"github.com/specialistvlad/axiomgrid/internal/validation"
	"github.com/specialistvlad/axiomgrid/internal/validator"
)

// Config holds everything one orchestrator instance needs.
type Config struct {
	RunID      string
	Scheduler  scheduler.Scheduler
	Graph      graph.Graph
	Builder    builder.Builder
	Generator  agent.Generator
	Repairer   agent.Repairer
	Validator  validator.Interface
	MaxRetries int
	// Publisher is optional.
	Publisher events.Publisher
}

// Executor implements the executor.Executor interface for local execution.
// It is the only writer of the graph's unit state and interface index, and
// must not be shared between concurrent runs.
type Executor struct {
	cfg Config
}

var _ executor.Executor = (*Executor)(nil)

// New creates a new local executor.
func New(cfg Config) *Executor {
	if cfg.Publisher == nil {
		cfg.Publisher = &events.NoopPublisher{}
	}
	return &Executor{cfg: cfg}
}

// Execute processes every unit in topological order. Scheduling errors
// (cycle, unknown unit) and cancellation abort the run; a unit that cannot
// be generated or repaired is recorded in RunResult.Errors and the run goes
// on.
func (e *Executor) Execute(ctx context.Context) (*executor.RunResult, error) {
	ctx, logger := ctxlog.With(ctx, "run", e.cfg.RunID)

	units, err := e.cfg.Scheduler.Schedule(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to schedule units: %w", err)
	}

	ids := make([]string, len(units))
	for i, u := range units {
		ids[i] = u.ID.String()
	}
	e.publish(ctx, events.TopicRunStarted, events.RunStarted{RunID: e.cfg.RunID, Units: ids})
	logger.Info("▶️ Starting run.", "units", len(units), "max_retries", e.cfg.MaxRetries)

	res := &executor.RunResult{RunID: e.cfg.RunID}
	for _, u := range units {
		if err := ctx.Err(); err != nil {
			return res, fmt.Errorf("%w: %w", repair.ErrCancelled, err)
		}
		if err := e.runUnit(ctx, u, res); err != nil {
			return res, err
		}
	}

	res.Finalize()
	e.publish(ctx, events.TopicRunFinished, events.RunFinished{
		RunID:           e.cfg.RunID,
		Success:         res.Success,
		Files:           len(res.Files),
		TotalIterations: res.TotalIterations,
		Errors:          len(res.Errors),
	})
	logger.Info("✅ Run finished.", "success", res.Success, "files", len(res.Files), "errors", len(res.Errors))
	return res, nil
}

// runUnit generates, validates, and repairs one unit, then indexes its
// interface. Only errors that must abort the run are returned.
func (e *Executor) runUnit(ctx context.Context, u *unit.Unit, res *executor.RunResult) error {
	ctx, logger := ctxlog.With(ctx, "unit", u.ID)
	lang := u.Language()

	if err := e.cfg.Graph.MarkGenerating(ctx, u.ID); err != nil {
		return err
	}
	t, err := e.cfg.Builder.Build(ctx, u, e.cfg.Graph)
	if err != nil {
		return fmt.Errorf("failed to build task for '%s': %w", u.ID, err)
	}
	deps := make([]string, len(u.DependsOn))
	for i, d := range u.DependsOn {
		deps[i] = d.String()
	}
	e.publish(ctx, events.TopicUnitStarted, events.UnitStarted{
		RunID: e.cfg.RunID, Unit: u.ID.String(), Path: u.Path, Language: lang, Dependencies: deps,
	})
	logger.Debug("Generating initial candidate.", "language", lang, "dependencies", len(t.Context))

	code, err := e.cfg.Generator.Generate(ctx, t)
	if err == nil && strings.TrimSpace(code) == "" {
		err = agent.ErrEmptyCandidate
	}
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("%w: %w", repair.ErrCancelled, ctx.Err())
		}
		unitErr := fmt.Errorf("failed to generate %s: %w", u.ID, err)
		return e.fail(ctx, u, nil, 0, unitErr, res)
	}

	if err := e.cfg.Graph.MarkRepairing(ctx, u.ID); err != nil {
		return err
	}

	loop := repair.New(e.cfg.MaxRetries, repair.WithObserver(func(ctx context.Context, rec repair.Record) {
		logger.Debug("Candidate validated.", "role", agent.RoleAuditor, "iteration", rec.Iteration, "passed", rec.Outcome.Passed)
		e.publish(ctx, events.TopicIteration, events.Iteration{
			RunID:     e.cfg.RunID,
			Unit:      u.ID.String(),
			Iteration: rec.Iteration,
			Passed:    rec.Outcome.Passed,
			Findings:  len(rec.Outcome.Findings),
		})
	}))
	result, err := loop.Run(ctx, code, e.validatorFor(lang), e.repairerFor(u))

	artifact := unitstore.Artifact{Path: u.Path, Content: result.Code, Language: lang, Passed: err == nil}
	switch {
	case err == nil:
		if err := e.cfg.Graph.MarkPassed(ctx, u.ID, artifact); err != nil {
			return err
		}
		res.Files = append(res.Files, executor.GeneratedFile{
			Unit: u.ID, Path: u.Path, Content: result.Code, Language: lang, Passed: true, Iterations: result.Iterations,
		})
		res.TotalIterations += result.Iterations
		e.publish(ctx, events.TopicUnitPassed, events.UnitPassed{
			RunID: e.cfg.RunID, Unit: u.ID.String(), Iterations: result.Iterations,
		})
		logger.Info("Unit passed.", "iterations", result.Iterations)
		return e.index(ctx, u, true)
	case errors.Is(err, repair.ErrCancelled):
		return err
	default:
		unitErr := fmt.Errorf("failed to repair %s: %w", u.ID, err)
		return e.fail(ctx, u, &artifact, result.Iterations, unitErr, res)
	}
}

// fail records a per-unit failure and still indexes the unit, so dependents
// are attempted against its declared interface.
func (e *Executor) fail(ctx context.Context, u *unit.Unit, artifact *unitstore.Artifact, iterations int, unitErr error, res *executor.RunResult) error {
	logger := ctxlog.FromContext(ctx)
	if err := e.cfg.Graph.MarkFailed(ctx, u.ID, artifact, unitErr); err != nil {
		return err
	}
	res.Errors = append(res.Errors, unitErr.Error())
	if artifact != nil {
		res.Rejected = append(res.Rejected, executor.GeneratedFile{
			Unit: u.ID, Path: artifact.Path, Content: artifact.Content, Language: artifact.Language, Iterations: iterations,
		})
	}
	e.publish(ctx, events.TopicUnitFailed, events.UnitFailed{
		RunID: e.cfg.RunID, Unit: u.ID.String(), Iterations: iterations, Error: unitErr.Error(),
	})
	// Dependents are still attempted against the declared interface.
	logger.Warn("Unit failed.", "iterations", iterations, "error", unitErr, "dependents", e.cfg.Graph.Dependents(ctx, u.ID))
	return e.index(ctx, u, false)
}

func (e *Executor) index(ctx context.Context, u *unit.Unit, passed bool) error {
	if err := e.cfg.Graph.IndexInterface(ctx, u.ID, passed); err != nil {
		return err
	}
	ctxlog.FromContext(ctx).Debug("Interface available to dependents.", "role", agent.RoleLibrarian, "passed", passed)
	e.publish(ctx, events.TopicInterfaceIndexed, events.InterfaceIndexed{
		RunID: e.cfg.RunID, Unit: u.ID.String(), Passed: passed,
	})
	return nil
}

func (e *Executor) validatorFor(lang string) repair.Validator {
	return repair.ValidatorFunc(func(code string) validation.Outcome {
		return e.cfg.Validator.Validate(code, lang)
	})
}

func (e *Executor) repairerFor(u *unit.Unit) repair.Repairer {
	iteration := 0
	return repair.RepairerFunc(func(ctx context.Context, code string, outcome validation.Outcome) (string, error) {
		iteration++
		next, err := e.cfg.Repairer.Repair(ctx, e.cfg.Builder.BuildRepair(u, code, outcome, iteration))
		if err != nil {
			return "", err
		}
		if strings.TrimSpace(next) == "" {
			return "", agent.ErrEmptyCandidate
		}
		return next, nil
	})
}

// publish never fails the run; transports are best effort.
func (e *Executor) publish(ctx context.Context, topic string, event any) {
	if err := e.cfg.Publisher.Publish(ctx, topic, event); err != nil {
		ctxlog.FromContext(ctx).Warn("Failed to publish event.", "event", events.Name(topic), "error", err)
	}
}
