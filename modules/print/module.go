// Package print renders run progress events as human-readable lines on the
// CLI output.
package print

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/specialistvlad/axiomgrid/internal/events"
)

// Publisher writes one line per event. Iteration and interface events are
// printed only when Verbose is set.
type Publisher struct {
	mu      sync.Mutex
	w       io.Writer
	Verbose bool
}

var _ events.Publisher = (*Publisher)(nil)

// New creates a publisher writing to w.
func New(w io.Writer, verbose bool) *Publisher {
	return &Publisher{w: w, Verbose: verbose}
}

func (p *Publisher) Publish(ctx context.Context, topic string, event any) error {
	line := p.render(event)
	if line == "" {
		return nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	_, err := fmt.Fprintln(p.w, line)
	return err
}

func (p *Publisher) render(event any) string {
	switch e := event.(type) {
	case events.RunStarted:
		return fmt.Sprintf("Run %s: %d units (%s)", e.RunID, len(e.Units), strings.Join(e.Units, ", "))
	case events.UnitStarted:
		return fmt.Sprintf("  • %s -> %s [%s]", e.Unit, e.Path, e.Language)
	case events.Iteration:
		if !p.Verbose {
			return ""
		}
		state := "fail"
		if e.Passed {
			state = "pass"
		}
		return fmt.Sprintf("      iteration %d: %s (%d findings)", e.Iteration, state, e.Findings)
	case events.UnitPassed:
		return fmt.Sprintf("    ✓ %s passed after %d iterations", e.Unit, e.Iterations)
	case events.UnitFailed:
		return fmt.Sprintf("    ✗ %s failed: %s", e.Unit, e.Error)
	case events.InterfaceIndexed:
		if !p.Verbose {
			return ""
		}
		return fmt.Sprintf("      indexed %s (passed=%t)", e.Unit, e.Passed)
	case events.RunFinished:
		status := "FAILED"
		if e.Success {
			status = "OK"
		}
		return fmt.Sprintf("Run %s %s: %d files, %d iterations, %d errors", e.RunID, status, e.Files, e.TotalIterations, e.Errors)
	default:
		return fmt.Sprintf("  %v", e)
	}
}

func (p *Publisher) Close() error {
	return nil
}
