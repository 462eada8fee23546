// Package artifactsink writes the files of a finished run somewhere durable.
// Sinks run after the pipeline; the core never calls them.
package artifactsink

import (
	"context"
	"errors"
	"fmt"

	"github.com/specialistvlad/axiomgrid/internal/ctxlog"
	"github.com/specialistvlad/axiomgrid/internal/executor"
	"github.com/specialistvlad/axiomgrid/internal/fsutil"
)

// Sink stores one artifact of a run.
type Sink interface {
	Put(ctx context.Context, runID string, f executor.GeneratedFile) error
}

// Dir writes artifacts under Root, at their declared relative path.
type Dir struct {
	Root string
}

var _ Sink = (*Dir)(nil)

func (d *Dir) Put(ctx context.Context, runID string, f executor.GeneratedFile) error {
	target, err := fsutil.SafeJoin(d.Root, f.Path)
	if err != nil {
		return fmt.Errorf("unit %s: %w", f.Unit, err)
	}
	return fsutil.WriteFileAtomic(target, []byte(f.Content), 0o644)
}

// WriteAll stores every passing file of result. It keeps going after a failed
// write and returns all errors joined.
func WriteAll(ctx context.Context, s Sink, result *executor.RunResult) (int, error) {
	logger := ctxlog.FromContext(ctx)
	written := 0
	var errs []error
	for _, f := range result.Passing() {
		if err := ctx.Err(); err != nil {
			return written, err
		}
		if err := s.Put(ctx, result.RunID, f); err != nil {
			errs = append(errs, fmt.Errorf("failed to store %s: %w", f.Path, err))
			continue
		}
		written++
		logger.Debug("Artifact stored.", "unit", f.Unit, "path", f.Path)
	}
	return written, errors.Join(errs...)
}
