// Package session defines the core interfaces for creating and managing one
// pipeline run. Each run gets its own session, and with it its own unit
// state and interface index, so runs never share mutable state.
package session

import (
	"context"

	"github.com/specialistvlad/axiomgrid/internal/agent"
	"github.com/specialistvlad/axiomgrid/internal/events"
	"github.com/specialistvlad/axiomgrid/internal/executor"
	"github.com/specialistvlad/axiomgrid/internal/policy"
	"github.com/specialistvlad/axiomgrid/internal/topologystore"
	"github.com/specialistvlad/axiomgrid/internal/validator"
)

// Options are the run-independent collaborators a session is wired with.
type Options struct {
	RunID      string
	Policy     *policy.Policy
	Validator  validator.Interface
	Generator  agent.Generator
	Repairer   agent.Repairer
	MaxRetries int
	Publisher  events.Publisher
}

// SessionFactory creates a Session for a planned dependency graph.
// Different implementations can support various backends.
type SessionFactory interface {
	NewSession(ctx context.Context, plan topologystore.Store, opts Options) (Session, error)
}

// Session represents a single run and manages its lifecycle.
type Session interface {
	GetExecutor() (executor.Executor, error)
	// Close releases any resources held by the session. It accepts a context
	// to allow for graceful cleanup operations.
	Close(ctx context.Context) error
}
