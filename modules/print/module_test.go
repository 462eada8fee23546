package print

import (
	"bytes"
	"context"
	"testing"

	"github.com/specialistvlad/axiomgrid/internal/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublisher_Lines(t *testing.T) {
	testCases := []struct {
		name     string
		verbose  bool
		topic    string
		event    any
		expected string
	}{
		{
			name:     "run started",
			topic:    events.TopicRunStarted,
			event:    events.RunStarted{RunID: "run-1", Units: []string{"a", "b"}},
			expected: "Run run-1: 2 units (a, b)\n",
		},
		{
			name:     "unit passed",
			topic:    events.TopicUnitPassed,
			event:    events.UnitPassed{Unit: "a", Iterations: 2},
			expected: "    ✓ a passed after 2 iterations\n",
		},
		{
			name:     "unit failed",
			topic:    events.TopicUnitFailed,
			event:    events.UnitFailed{Unit: "b", Error: "max retries (3) exceeded"},
			expected: "    ✗ b failed: max retries (3) exceeded\n",
		},
		{
			name:     "iteration hidden by default",
			topic:    events.TopicIteration,
			event:    events.Iteration{Unit: "a", Iteration: 1},
			expected: "",
		},
		{
			name:     "iteration when verbose",
			verbose:  true,
			topic:    events.TopicIteration,
			event:    events.Iteration{Unit: "a", Iteration: 1, Findings: 2},
			expected: "      iteration 1: fail (2 findings)\n",
		},
		{
			name:     "run finished",
			topic:    events.TopicRunFinished,
			event:    events.RunFinished{RunID: "run-1", Files: 3, TotalIterations: 3, Errors: 1},
			expected: "Run run-1 FAILED: 3 files, 3 iterations, 1 errors\n",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			p := New(&buf, tc.verbose)

			require.NoError(t, p.Publish(context.Background(), tc.topic, tc.event))

			assert.Equal(t, tc.expected, buf.String())
		})
	}
}
