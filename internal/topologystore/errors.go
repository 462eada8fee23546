package topologystore

import (
	"errors"
	"fmt"
	"strings"

	"github.com/specialistvlad/axiomgrid/internal/unitid"
)

var (
	// ErrInvalidGraph reports a structurally invalid insertion, such as a
	// duplicate identifier.
	ErrInvalidGraph = errors.New("invalid graph")
	// ErrCycleDetected reports that the dependency edges contain a cycle.
	ErrCycleDetected = errors.New("cycle detected")
	// ErrUnitNotFound reports that an ordered identifier has no unit. It is a
	// logic error and aborts the run.
	ErrUnitNotFound = errors.New("unit not found")
)

// ErrorKind classifies a GraphError.
type ErrorKind string

const (
	ErrorKindInvalid  ErrorKind = "invalid"
	ErrorKindCycle    ErrorKind = "cycle"
	ErrorKindNotFound ErrorKind = "not_found"
)

// GraphError carries a kind and a human-readable message and unwraps to the
// sentinel matching its kind.
type GraphError struct {
	Kind ErrorKind
	Msg  string
	// Path is the offending cycle, first element repeated at the end, when
	// Kind is ErrorKindCycle.
	Path []unitid.ID
}

func (e *GraphError) Error() string {
	return e.Msg
}

func (e *GraphError) Unwrap() error {
	switch e.Kind {
	case ErrorKindCycle:
		return ErrCycleDetected
	case ErrorKindNotFound:
		return ErrUnitNotFound
	default:
		return ErrInvalidGraph
	}
}

// Invalidf builds an ErrorKindInvalid GraphError.
func Invalidf(format string, args ...any) error {
	return &GraphError{Kind: ErrorKindInvalid, Msg: fmt.Sprintf(format, args...)}
}

// NotFound builds an ErrorKindNotFound GraphError for id.
func NotFound(id unitid.ID) error {
	return &GraphError{Kind: ErrorKindNotFound, Msg: fmt.Sprintf("unit '%s' not found in graph", id)}
}

// Cycle builds an ErrorKindCycle GraphError from a witness path.
func Cycle(path []unitid.ID) error {
	parts := make([]string, 0, len(path))
	for _, id := range path {
		parts = append(parts, id.String())
	}
	return &GraphError{
		Kind: ErrorKindCycle,
		Msg:  "cycle detected: " + strings.Join(parts, " -> "),
		Path: path,
	}
}
