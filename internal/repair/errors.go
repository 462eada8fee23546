package repair

import (
	"errors"
	"fmt"
)

var (
	// ErrRetriesExceeded is matched by every *RetriesExceededError.
	ErrRetriesExceeded = errors.New("retries exceeded")
	// ErrCancelled is returned when the context is done at an iteration
	// boundary. It wraps the context's error.
	ErrCancelled = errors.New("repair cancelled")
)

// RetriesExceededError reports that the candidate never passed within the
// retry budget.
type RetriesExceededError struct {
	MaxRetries int
}

func (e *RetriesExceededError) Error() string {
	return fmt.Sprintf("max retries (%d) exceeded", e.MaxRetries)
}

func (e *RetriesExceededError) Unwrap() error {
	return ErrRetriesExceeded
}

// cancelled wraps the context error so both errors.Is(err, ErrCancelled) and
// errors.Is(err, context.Canceled) hold.
func cancelled(cause error) error {
	return fmt.Errorf("%w: %w", ErrCancelled, cause)
}
