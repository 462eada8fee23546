package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/axiomgrid/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const plan = `
unit "greeting" {
  path = "hello/greeting.py"
  kind = kind.python
  function "greet" {
    returns = "str"
    param "name" { type = "str" }
  }
}

unit "cli" {
  path       = "hello/cli.rs"
  kind       = kind.rust
  depends_on = ["greeting"]
  function "main" {}
}
`

func writePlan(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "plan.hcl")
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

func TestRun_LoadError(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	invalidHCL := `
		unit "a" {
			path = "a.py"
		// Missing closing brace here
	`
	args := []string{"-log-level", "error", writePlan(t, invalidHCL)}
	out := &testutil.SafeBuffer{}

	// --- Act ---
	runErr := run(context.Background(), out, args)

	// --- Assert ---
	require.Error(t, runErr)
	assert.Contains(t, runErr.Error(), "failed to load plan")
	assert.Contains(t, runErr.Error(), "failed to parse")
}

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	out := &testutil.SafeBuffer{}

	err := run(context.Background(), out, []string{"-h"})

	require.NoError(t, err, "run() should return a nil error when shouldExit is true")
	require.Contains(t, out.String(), "Usage:", "Expected help text to be printed to the output buffer")
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	out := &testutil.SafeBuffer{}

	err := run(context.Background(), out, []string{"--this-is-not-a-valid-flag"})

	require.Error(t, err)
	require.Contains(t, err.Error(), "flag provided but not defined: -this-is-not-a-valid-flag")
}

func TestRun_OfflineEndToEnd(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	outDir := t.TempDir()
	args := []string{"-out", outDir, "-log-level", "warn", writePlan(t, plan)}
	out := &testutil.SafeBuffer{}

	// --- Act ---
	err := run(context.Background(), out, args)

	// --- Assert ---
	require.NoError(t, err, out.String())
	assert.Contains(t, out.String(), "✓ greeting passed after 2 iterations")
	assert.Contains(t, out.String(), "✓ cli passed after 2 iterations")

	rust, err := os.ReadFile(filepath.Join(outDir, "hello", "cli.rs"))
	require.NoError(t, err)
	assert.Contains(t, string(rust), "fn main()")
	assert.NotContains(t, string(rust), "todo!()")
}

func TestRun_ValidateMode(t *testing.T) {
	t.Parallel()

	file := filepath.Join(t.TempDir(), "stub.rs")
	require.NoError(t, os.WriteFile(file, []byte("fn main() {\n    unimplemented!()\n}\n"), 0o600))
	out := &testutil.SafeBuffer{}

	err := run(context.Background(), out, []string{"-mode", "validate", "-file", file})

	require.Error(t, err)
	assert.Contains(t, out.String(), "(rust): FAILED")
}
