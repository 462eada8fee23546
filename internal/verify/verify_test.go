package verify

import (
	"context"
	"errors"
	"testing"

	"github.com/specialistvlad/axiomgrid/internal/executor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func result(runID string, content ...string) *executor.RunResult {
	r := &executor.RunResult{RunID: runID}
	for i, c := range content {
		r.Files = append(r.Files, executor.GeneratedFile{Path: string(rune('a'+i)) + ".py", Language: "python", Passed: true, Content: c, Iterations: i + 1})
	}
	return r
}

func TestHash(t *testing.T) {
	base := Hash(result("run-1", "x = 1\n", "y = 2\n"))

	assert.Equal(t, base, Hash(result("run-2", "x = 1\n", "y = 2\n")), "run id is ignored")
	assert.NotEqual(t, base, Hash(result("run-1", "x = 1\n", "y = 3\n")))
	assert.NotEqual(t, base, Hash(result("run-1", "y = 2\n", "x = 1\n")), "order matters")

	shifted := &executor.RunResult{Files: []executor.GeneratedFile{{Path: "ab", Content: "c"}}}
	other := &executor.RunResult{Files: []executor.GeneratedFile{{Path: "a", Content: "bc"}}}
	assert.NotEqual(t, Hash(shifted), Hash(other))
}

func TestCheck(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		calls := 0
		report, err := Check(context.Background(), 3, func(ctx context.Context) (*executor.RunResult, error) {
			calls++
			return result("run", "x = 1\n"), nil
		})

		require.NoError(t, err)
		assert.Equal(t, 3, calls)
		assert.Equal(t, 1, report.Entropy)
		assert.True(t, report.Deterministic())
		assert.Len(t, report.Hashes, 3)
	})

	t.Run("non-deterministic", func(t *testing.T) {
		n := 0
		report, err := Check(context.Background(), 3, func(ctx context.Context) (*executor.RunResult, error) {
			n++
			if n == 2 {
				return result("run", "x = 2\n"), nil
			}
			return result("run", "x = 1\n"), nil
		})

		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrNonDeterministic))
		assert.Contains(t, err.Error(), "2 distinct hashes over 3 runs")
		assert.Equal(t, 2, report.Entropy)
	})

	t.Run("run error aborts", func(t *testing.T) {
		_, err := Check(context.Background(), 2, func(ctx context.Context) (*executor.RunResult, error) {
			return nil, errors.New("planner down")
		})
		require.Error(t, err)
		assert.Equal(t, "run 1 of 2: planner down", err.Error())
	})

	t.Run("too few runs", func(t *testing.T) {
		_, err := Check(context.Background(), 1, nil)
		assert.ErrorContains(t, err, "at least 2 runs")
	})
}
