package repair

import (
	"context"
	"fmt"

	"github.com/specialistvlad/axiomgrid/internal/ctxlog"
	"github.com/specialistvlad/axiomgrid/internal/validation"
)

// DefaultMaxRetries is the retry budget used when none is configured.
const DefaultMaxRetries = 10

// State is the loop's current phase.
type State int

const (
	StateEvaluating State = iota
	StateRepairing
	StateSuccess
	StateExhausted
)

func (s State) String() string {
	switch s {
	case StateEvaluating:
		return "evaluating"
	case StateRepairing:
		return "repairing"
	case StateSuccess:
		return "success"
	case StateExhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// Validator checks one candidate.
type Validator interface {
	Validate(code string) validation.Outcome
}

// Repairer proposes the next candidate for a failing one.
type Repairer interface {
	Repair(ctx context.Context, code string, outcome validation.Outcome) (string, error)
}

// ValidatorFunc adapts a function to Validator.
type ValidatorFunc func(code string) validation.Outcome

func (f ValidatorFunc) Validate(code string) validation.Outcome { return f(code) }

// RepairerFunc adapts a function to Repairer.
type RepairerFunc func(ctx context.Context, code string, outcome validation.Outcome) (string, error)

func (f RepairerFunc) Repair(ctx context.Context, code string, outcome validation.Outcome) (string, error) {
	return f(ctx, code, outcome)
}

// Record is one iteration of the loop. Records are never modified after
// they are appended to a Result.
type Record struct {
	// Iteration is 1-based.
	Iteration int
	Code      string
	Outcome   validation.Outcome
	Digest    string
	// Repaired is the candidate produced from this iteration, empty on the
	// success iteration and on the final exhausted one.
	Repaired string
	Success  bool
}

// Result is what a run produced. On failure Code holds the last evaluated
// candidate.
type Result struct {
	Code       string
	Iterations int
	History    []Record
	State      State
}

// Observer receives every record as soon as it is complete.
type Observer func(ctx context.Context, rec Record)

// Loop is the bounded repair loop. The zero value is not usable; use New.
type Loop struct {
	maxRetries int
	observer   Observer
}

// Option configures a Loop.
type Option func(*Loop)

// WithObserver registers a callback invoked once per iteration.
func WithObserver(o Observer) Option {
	return func(l *Loop) { l.observer = o }
}

// New creates a loop with the given retry budget. A negative budget is
// treated as zero, meaning a single validation with no repair.
func New(maxRetries int, opts ...Option) *Loop {
	if maxRetries < 0 {
		maxRetries = 0
	}
	l := &Loop{maxRetries: maxRetries}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Run drives code through validate and repair until it passes or the budget
// is spent. The returned Result is populated on every path, including
// errors.
//
// Errors: *RetriesExceededError when the budget is spent, an error wrapping
// ErrCancelled when ctx is done before an iteration or a repair, or the
// repairer's own error, wrapped.
func (l *Loop) Run(ctx context.Context, code string, v Validator, r Repairer) (Result, error) {
	logger := ctxlog.FromContext(ctx)
	res := Result{Code: code, State: StateEvaluating}

	for attempt := 0; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return res, cancelled(err)
		}

		res.State = StateEvaluating
		outcome := v.Validate(res.Code)
		rec := Record{
			Iteration: attempt + 1,
			Code:      res.Code,
			Outcome:   outcome,
			Digest:    outcome.Digest(),
			Success:   outcome.Passed,
		}
		res.Iterations = rec.Iteration

		if outcome.Passed {
			res.State = StateSuccess
			l.append(ctx, &res, rec)
			logger.Debug("Candidate passed validation.", "iteration", rec.Iteration)
			return res, nil
		}

		if attempt >= l.maxRetries {
			res.State = StateExhausted
			l.append(ctx, &res, rec)
			logger.Debug("Retry budget exhausted.", "iteration", rec.Iteration, "max_retries", l.maxRetries)
			return res, &RetriesExceededError{MaxRetries: l.maxRetries}
		}

		if err := ctx.Err(); err != nil {
			l.append(ctx, &res, rec)
			return res, cancelled(err)
		}

		res.State = StateRepairing
		logger.Debug("Candidate failed validation, repairing.",
			"iteration", rec.Iteration,
			"fatal", outcome.Count(validation.SeverityFatal),
			"error", outcome.Count(validation.SeverityError),
		)
		next, err := r.Repair(ctx, res.Code, outcome)
		if err != nil {
			l.append(ctx, &res, rec)
			if ctx.Err() != nil {
				return res, cancelled(ctx.Err())
			}
			return res, fmt.Errorf("repair at iteration %d: %w", rec.Iteration, err)
		}
		rec.Repaired = next
		l.append(ctx, &res, rec)
		res.Code = next
	}
}

func (l *Loop) append(ctx context.Context, res *Result, rec Record) {
	res.History = append(res.History, rec)
	if l.observer != nil {
		l.observer(ctx, rec)
	}
}
