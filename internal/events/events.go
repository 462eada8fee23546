// Package events defines the progress events a pipeline run emits and the
// Publisher contract their transports implement.
package events

import (
	"context"
	"errors"
	"strings"
)

// Event topic constants
const (
	TopicRunStarted       = "axiomgrid.run.started"
	TopicUnitStarted      = "axiomgrid.unit.started"
	TopicIteration        = "axiomgrid.unit.iteration"
	TopicUnitPassed       = "axiomgrid.unit.passed"
	TopicUnitFailed       = "axiomgrid.unit.failed"
	TopicInterfaceIndexed = "axiomgrid.interface.indexed"
	TopicRunFinished      = "axiomgrid.run.finished"
)

// Name returns the short event name of a topic, e.g. "unit_passed".
func Name(topic string) string {
	name := strings.TrimPrefix(topic, "axiomgrid.")
	switch name {
	case "unit.iteration":
		return "iteration"
	case "interface.indexed":
		return "interface_indexed"
	}
	return strings.ReplaceAll(name, ".", "_")
}

// Event types

type RunStarted struct {
	RunID string   `json:"run_id"`
	Units []string `json:"units"`
}

type UnitStarted struct {
	RunID        string   `json:"run_id"`
	Unit         string   `json:"unit"`
	Path         string   `json:"path"`
	Language     string   `json:"language"`
	Dependencies []string `json:"dependencies,omitempty"`
}

type Iteration struct {
	RunID     string `json:"run_id"`
	Unit      string `json:"unit"`
	Iteration int    `json:"iteration"`
	Passed    bool   `json:"passed"`
	Findings  int    `json:"findings"`
}

type UnitPassed struct {
	RunID      string `json:"run_id"`
	Unit       string `json:"unit"`
	Iterations int    `json:"iterations"`
}

type UnitFailed struct {
	RunID      string `json:"run_id"`
	Unit       string `json:"unit"`
	Iterations int    `json:"iterations"`
	Error      string `json:"error"`
}

type InterfaceIndexed struct {
	RunID  string `json:"run_id"`
	Unit   string `json:"unit"`
	Passed bool   `json:"passed"`
}

type RunFinished struct {
	RunID           string `json:"run_id"`
	Success         bool   `json:"success"`
	Files           int    `json:"files"`
	TotalIterations int    `json:"total_iterations"`
	Errors          int    `json:"errors"`
}

// Publisher is the interface for emitting events.
type Publisher interface {
	Publish(ctx context.Context, topic string, event any) error
	Close() error
}

// Multi fans every event out to all publishers. Errors are joined; one
// failing transport does not stop the others.
type Multi []Publisher

func (m Multi) Publish(ctx context.Context, topic string, event any) error {
	var errs []error
	for _, p := range m {
		if err := p.Publish(ctx, topic, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m Multi) Close() error {
	var errs []error
	for _, p := range m {
		if err := p.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
