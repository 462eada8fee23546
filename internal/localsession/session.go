// Package localsession provides a concrete implementation of the session.Session
// and session.SessionFactory interfaces for local, in-process execution.
package localsession

import (
	"context"
	"errors"

	"github.com/specialistvlad/axiomgrid/internal/builder"
	"github.com/specialistvlad/axiomgrid/internal/ctxlog"
	"github.com/specialistvlad/axiomgrid/internal/executor"
	"github.com/specialistvlad/axiomgrid/internal/graph"
	"github.com/specialistvlad/axiomgrid/internal/inmemorystore"
	"github.com/specialistvlad/axiomgrid/internal/localexecutor"
	"github.com/specialistvlad/axiomgrid/internal/scheduler"
	"github.com/specialistvlad/axiomgrid/internal/session"
	"github.com/specialistvlad/axiomgrid/internal/topologystore"
)

// SessionFactory implements session.SessionFactory for local runs.
type SessionFactory struct{}

var _ session.SessionFactory = (*SessionFactory)(nil)

// NewSession creates and configures a new local session.
func (f *SessionFactory) NewSession(ctx context.Context, plan topologystore.Store, opts session.Options) (session.Session, error) {
	logger := ctxlog.FromContext(ctx)
	if plan == nil {
		return nil, errors.New("no plan to execute")
	}
	if opts.Validator == nil || opts.Generator == nil || opts.Repairer == nil {
		return nil, errors.New("session requires a validator, a generator, and a repairer")
	}

	// --- This is where the dependency injection wiring happens ---
	unitStore := inmemorystore.New()
	g := graph.New(plan, unitStore)
	exec := localexecutor.New(localexecutor.Config{
		RunID:      opts.RunID,
		Scheduler:  scheduler.New(g),
		Graph:      g,
		Builder:    builder.New(opts.Policy),
		Generator:  opts.Generator,
		Repairer:   opts.Repairer,
		Validator:  opts.Validator,
		MaxRetries: opts.MaxRetries,
		Publisher:  opts.Publisher,
	})
	// --- End of dependency injection ---

	logger.Debug("Local session created.", "run", opts.RunID, "units", plan.Len())
	return &Session{executor: exec}, nil
}

// Session implements session.Session for local runs.
type Session struct {
	executor executor.Executor
}

// GetExecutor returns the executor that was created and wired up by the factory.
func (s *Session) GetExecutor() (executor.Executor, error) {
	return s.executor, nil
}

// Close holds nothing to release for in-memory stores. Publishers belong to
// the caller.
func (s *Session) Close(ctx context.Context) error {
	ctxlog.FromContext(ctx).Debug("Local session closed.")
	return nil
}
