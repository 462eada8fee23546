// Package testutil provides deterministic collaborators and fixtures shared by
// tests across packages.
package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/specialistvlad/axiomgrid/internal/agent"
	"github.com/specialistvlad/axiomgrid/internal/task"
	"github.com/specialistvlad/axiomgrid/internal/topologystore"
	"github.com/specialistvlad/axiomgrid/internal/unitid"
)

// Clean returns a passing python candidate for a unit.
func Clean(id unitid.ID) string {
	return fmt.Sprintf("def %s():\n    return %q\n", FuncName(id), id.String())
}

// Stub returns a failing python candidate: a function whose body is `pass`.
func Stub(id unitid.ID) string {
	return fmt.Sprintf("def %s():\n    pass\n", FuncName(id))
}

// FuncName turns a unit id into a python identifier.
func FuncName(id unitid.ID) string {
	out := []byte("fn_")
	for _, r := range []byte(id.String()) {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			out = append(out, r)
		default:
			out = append(out, '_')
		}
	}
	return string(out)
}

// FixedGenerator returns a scripted candidate per unit, Clean(id) otherwise.
// It records the tasks it received.
type FixedGenerator struct {
	Code map[unitid.ID]string
	Err  map[unitid.ID]error

	mu    sync.Mutex
	Tasks []*task.Task
}

var _ agent.Generator = (*FixedGenerator)(nil)

func (g *FixedGenerator) Generate(ctx context.Context, t *task.Task) (string, error) {
	g.mu.Lock()
	g.Tasks = append(g.Tasks, t)
	g.mu.Unlock()

	if err := g.Err[t.Unit.ID]; err != nil {
		return "", err
	}
	if code, ok := g.Code[t.Unit.ID]; ok {
		return code, nil
	}
	return Clean(t.Unit.ID), nil
}

// TaskFor returns the recorded task of a unit, or nil.
func (g *FixedGenerator) TaskFor(id unitid.ID) *task.Task {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, t := range g.Tasks {
		if t.Unit.ID == id {
			return t
		}
	}
	return nil
}

// CountingRepairer fixes units after a number of attempts. Units listed in
// Never are handed back unchanged, so they exhaust the budget.
type CountingRepairer struct {
	// FixAfter is the number of calls per unit before Clean(id) is returned.
	// Zero means the first call fixes the candidate.
	FixAfter int
	Never    map[unitid.ID]bool
	Err      error

	mu    sync.Mutex
	Calls map[unitid.ID]int
}

var _ agent.Repairer = (*CountingRepairer)(nil)

func (r *CountingRepairer) Repair(ctx context.Context, t *task.RepairTask) (string, error) {
	r.mu.Lock()
	if r.Calls == nil {
		r.Calls = make(map[unitid.ID]int)
	}
	r.Calls[t.Unit.ID]++
	n := r.Calls[t.Unit.ID]
	r.mu.Unlock()

	if r.Err != nil {
		return "", r.Err
	}
	if r.Never[t.Unit.ID] || n <= r.FixAfter {
		return t.Code, nil
	}
	return Clean(t.Unit.ID), nil
}

// CallsFor returns how often a unit was repaired.
func (r *CountingRepairer) CallsFor(id unitid.ID) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.Calls[id]
}

// StaticPlanner returns the same prepared graph for every requirement.
type StaticPlanner struct {
	Store topologystore.Store
	Err   error
}

var _ agent.Planner = (*StaticPlanner)(nil)

func (p *StaticPlanner) Plan(ctx context.Context, requirement string) (topologystore.Store, error) {
	return p.Store, p.Err
}

// Published is one event captured by RecordingPublisher.
type Published struct {
	Topic string
	Event any
}

// RecordingPublisher keeps every published event in order.
type RecordingPublisher struct {
	mu     sync.Mutex
	Events []Published
	Closed bool
}

func (p *RecordingPublisher) Publish(ctx context.Context, topic string, event any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Events = append(p.Events, Published{Topic: topic, Event: event})
	return nil
}

func (p *RecordingPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Closed = true
	return nil
}

// Topics lists the recorded topics in order.
func (p *RecordingPublisher) Topics() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.Events))
	for i, e := range p.Events {
		out[i] = e.Topic
	}
	return out
}
