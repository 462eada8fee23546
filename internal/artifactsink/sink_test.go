package artifactsink

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/axiomgrid/internal/executor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingSink struct {
	failPath string
	puts     []string
}

func (s *failingSink) Put(ctx context.Context, runID string, f executor.GeneratedFile) error {
	if f.Path == s.failPath {
		return errors.New("disk full")
	}
	s.puts = append(s.puts, runID+"/"+f.Path)
	return nil
}

func TestDir_WriteAll(t *testing.T) {
	// --- Arrange ---
	root := t.TempDir()
	result := &executor.RunResult{
		RunID: "run-1",
		Files: []executor.GeneratedFile{
			{Unit: "a", Path: "pkg/a.py", Content: "A = 1\n", Passed: true},
			{Unit: "b", Path: "pkg/b.py", Content: "B = 1\n", Passed: true},
		},
		Rejected: []executor.GeneratedFile{{Unit: "c", Path: "pkg/c.py", Content: "# TODO\n"}},
	}

	// --- Act ---
	n, err := WriteAll(context.Background(), &Dir{Root: root}, result)

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	data, err := os.ReadFile(filepath.Join(root, "pkg", "a.py"))
	require.NoError(t, err)
	assert.Equal(t, "A = 1\n", string(data))
	_, err = os.Stat(filepath.Join(root, "pkg", "c.py"))
	assert.True(t, os.IsNotExist(err), "rejected files are never written")
}

func TestDir_RejectsEscapingPath(t *testing.T) {
	err := (&Dir{Root: t.TempDir()}).Put(context.Background(), "r", executor.GeneratedFile{Unit: "x", Path: "../x.py"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unit x")
}

func TestWriteAll_ContinuesAfterFailure(t *testing.T) {
	sink := &failingSink{failPath: "a.py"}
	result := &executor.RunResult{
		RunID: "r",
		Files: []executor.GeneratedFile{
			{Path: "a.py", Passed: true},
			{Path: "b.py", Passed: true},
		},
	}

	n, err := WriteAll(context.Background(), sink, result)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to store a.py: disk full")
	assert.Equal(t, 1, n)
	assert.Equal(t, []string{"r/b.py"}, sink.puts)
}
