package hcl_adapter

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/axiomgrid/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

const plan = `
unit "core.config" {
  path        = "core/config.py"
  kind        = kind.python
  description = "Loads configuration."

  function "load" {
    returns = "Config"
    param "path" {
      type = "str"
    }
    param "strict" {
      type    = "bool"
      default = "False"
    }
    param "retries" {
      type    = "int"
      default = 3
    }
  }

  class "Config" {
    docstring = "Parsed settings."
    method "get" {
      returns = "str"
      param "key" { type = "str" }
    }
  }

  constant "DEFAULT_PATH" { type = "str" }

  test "loads_file" {
    expect = "returns a Config"
  }
  test "end_to_end" {
    scope = "integration"
  }
}
`

func TestLoader_LoadsUnits(t *testing.T) {
	// --- Arrange ---
	dir := t.TempDir()
	writeFile(t, dir, "plan.hcl", plan)
	writeFile(t, dir, "nested/app.hcl", `
unit "app.main" {
  path       = "app/main.rs"
  kind       = kind.rust
  depends_on = ["core.config"]
}
`)
	writeFile(t, dir, "README.md", "ignored")

	// --- Act ---
	model, err := NewLoader().Load(context.Background(), dir)

	// --- Assert ---
	require.NoError(t, err)
	require.Len(t, model.Units, 2)
	assert.Nil(t, model.Policy)

	// Files are read in lexical path order.
	app, core := model.Units[0], model.Units[1]
	assert.Equal(t, "app.main", app.ID)
	assert.Equal(t, "rust", app.Kind)
	assert.Equal(t, []string{"core.config"}, app.DependsOn)

	assert.Equal(t, "core.config", core.ID)
	assert.Equal(t, "python", core.Kind)
	assert.Equal(t, "Loads configuration.", core.Description)

	require.Len(t, core.Functions, 1)
	load := core.Functions[0]
	assert.Equal(t, "Config", load.Returns)
	require.Len(t, load.Params, 3)
	assert.Equal(t, &config.Param{Name: "path", Type: "str"}, load.Params[0])
	assert.Equal(t, "False", load.Params[1].Default)
	assert.Equal(t, "3", load.Params[2].Default)

	require.Len(t, core.Classes, 1)
	assert.Equal(t, "Parsed settings.", core.Classes[0].Docstring)
	require.Len(t, core.Classes[0].Methods, 1)
	assert.Equal(t, "get", core.Classes[0].Methods[0].Name)

	assert.Equal(t, []*config.Constant{{Name: "DEFAULT_PATH", Type: "str"}}, core.Constants)

	require.Len(t, core.Tests, 2)
	assert.Equal(t, config.TestScopeUnit, core.Tests[0].Scope)
	assert.Equal(t, "returns a Config", core.Tests[0].Expect)
	assert.Equal(t, config.TestScopeIntegration, core.Tests[1].Scope)
}

func TestLoader_Policy(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "plan.hcl", plan)
	writeFile(t, dir, "policy.hcl", `
policy {
  extra_banned     = [upper("fixme"), "stub"]
  guidance         = format("Target %s.", "python 3.12")
  case_insensitive = true

  grammar "python" "no_ellipsis" {
    enforcement = enforcement.error
    scope       = scope.body
    forbidden   = concat(["..."], ["pass"])
  }
}
`)

	model, err := NewLoader().Load(context.Background(), dir)

	require.NoError(t, err)
	require.NotNil(t, model.Policy)
	p := model.Policy
	assert.Equal(t, []string{"FIXME", "stub"}, p.ExtraBanned)
	assert.Equal(t, "Target python 3.12.", p.Guidance)
	require.NotNil(t, p.CaseInsensitive)
	assert.True(t, *p.CaseInsensitive)
	require.Len(t, p.Grammars, 1)
	assert.Equal(t, &config.GrammarRule{
		Language:    "python",
		Name:        "no_ellipsis",
		Enforcement: "error",
		Scope:       "body",
		Forbidden:   []string{"...", "pass"},
	}, p.Grammars[0])
}

func TestLoader_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		files   map[string]string
		wantErr string
	}{
		{
			name:    "no hcl files",
			files:   map[string]string{"notes.txt": "x"},
			wantErr: "no .hcl files found",
		},
		{
			name:    "syntax error",
			files:   map[string]string{"bad.hcl": `unit "a" {`},
			wantErr: "failed to parse HCL file",
		},
		{
			name:    "missing required attribute",
			files:   map[string]string{"a.hcl": `unit "a" { kind = "python" }`},
			wantErr: "failed to decode HCL file",
		},
		{
			name: "unknown test scope",
			files: map[string]string{"a.hcl": `
unit "a" {
  path = "a.py"
  kind = "python"
  test "t" { scope = "e2e" }
}`},
			wantErr: "unknown scope 'e2e'",
		},
		{
			name: "list default",
			files: map[string]string{"a.hcl": `
unit "a" {
  path = "a.py"
  kind = "python"
  function "f" {
    param "x" { default = [1] }
  }
}`},
			wantErr: "param 'x'",
		},
		{
			name: "two policy blocks",
			files: map[string]string{
				"a.hcl": `policy {}`,
				"b.hcl": `policy {}`,
			},
			wantErr: "only one policy block is allowed",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			for name, content := range tc.files {
				writeFile(t, dir, name, content)
			}

			_, err := NewLoader().Load(context.Background(), dir)

			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestLoader_MissingPath(t *testing.T) {
	_, err := NewLoader().Load(context.Background(), filepath.Join(t.TempDir(), "nope.hcl"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error accessing path")
}

func TestFindAllHCLFiles_Deduplicates(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.hcl", "")
	writeFile(t, dir, "b.hcl", "")

	files, err := NewLoader().findAllHCLFiles([]string{dir, a})

	require.NoError(t, err)
	assert.Equal(t, []string{a, filepath.Join(dir, "b.hcl")}, files)
}
