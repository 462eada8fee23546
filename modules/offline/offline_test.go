package offline

import (
	"context"
	"testing"

	"github.com/specialistvlad/axiomgrid/internal/registry"
	"github.com/specialistvlad/axiomgrid/internal/task"
	"github.com/specialistvlad/axiomgrid/internal/unit"
	"github.com/specialistvlad/axiomgrid/internal/validator"
	"github.com/specialistvlad/axiomgrid/modules/javascript"
	"github.com/specialistvlad/axiomgrid/modules/python"
	"github.com/specialistvlad/axiomgrid/modules/rust"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func configUnit() *unit.Unit {
	return &unit.Unit{
		ID:          "core.config",
		Path:        "core/config.py",
		Kind:        unit.KindPython,
		Description: "Loads configuration.",
		Interface: unit.Interface{
			Constants: []unit.Constant{{Name: "DEFAULT_PATH", ValueType: "str"}},
			Classes: []unit.Class{{
				Name:      "Config",
				Docstring: "Parsed settings.",
				Methods:   []unit.Function{{Name: "get", Params: []unit.Param{{Name: "key", Type: "str"}}, ReturnType: "str"}},
			}},
			Functions: []unit.Function{{
				Name:       "load",
				Params:     []unit.Param{{Name: "path", Type: "str"}, {Name: "strict", Type: "bool", Default: "False"}},
				ReturnType: "Config",
			}},
		},
	}
}

func TestRender_Python(t *testing.T) {
	expected := `"""core.config: Loads configuration."""

DEFAULT_PATH = ""


class Config:
    """Parsed settings."""

    def get(self, key: str) -> str:
        pass


def load(path: str, strict: bool = False) -> Config:
    pass
`
	assert.Equal(t, expected, Render(configUnit()))
}

func TestRender_OtherLanguages(t *testing.T) {
	fn := unit.Function{Name: "parse", Params: []unit.Param{{Name: "input", Type: "string"}}, ReturnType: "Config"}

	testCases := []struct {
		name     string
		kind     unit.Kind
		expected string
	}{
		{
			name:     "rust",
			kind:     unit.KindRust,
			expected: "//! p\n\npub fn parse(input: string) -> Config {\n    todo!()\n}\n",
		},
		{
			name:     "javascript",
			kind:     unit.KindJavaScript,
			expected: "/** p */\n\nexport function parse(input) {\n  throw new Error(\"TODO\");\n}\n",
		},
		{
			name:     "typescript",
			kind:     unit.KindTypeScript,
			expected: "/** p */\n\nexport function parse(input: string): Config {\n  throw new Error(\"TODO\");\n}\n",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			u := &unit.Unit{ID: "p", Kind: tc.kind, Interface: unit.Interface{Functions: []unit.Function{fn}}}
			assert.Equal(t, tc.expected, Render(u))
		})
	}
}

func TestGenerateThenRepair_Converges(t *testing.T) {
	v := validator.New(nil, registry.NewWithModules(&python.Module{}, &rust.Module{}, &javascript.Module{}))
	fn := unit.Function{Name: "parse", Params: []unit.Param{{Name: "input", Type: "str"}}}

	testCases := []struct {
		name string
		u    *unit.Unit
	}{
		{name: "python", u: configUnit()},
		{name: "rust", u: &unit.Unit{ID: "r", Kind: unit.KindRust, Interface: unit.Interface{Functions: []unit.Function{fn}}}},
		{name: "javascript", u: &unit.Unit{ID: "j", Kind: unit.KindJavaScript, Interface: unit.Interface{Functions: []unit.Function{fn}}}},
		{name: "typescript", u: &unit.Unit{ID: "t", Kind: unit.KindTypeScript, Interface: unit.Interface{Functions: []unit.Function{fn}}}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			code, err := (&Generator{}).Generate(ctx, &task.Task{Unit: tc.u})
			require.NoError(t, err)

			first := v.Validate(code, tc.u.Language())
			require.False(t, first.Passed, "skeletons carry placeholders")

			repaired, err := NewRepairer(nil).Repair(ctx, &task.RepairTask{Unit: tc.u, Code: code, Outcome: first, Iteration: 1})
			require.NoError(t, err)

			second := v.Validate(repaired, tc.u.Language())
			assert.True(t, second.Passed, second.Digest())

			again, err := NewRepairer(nil).Repair(ctx, &task.RepairTask{Unit: tc.u, Code: code, Outcome: first, Iteration: 1})
			require.NoError(t, err)
			assert.Equal(t, repaired, again)
		})
	}
}

func TestSanitize_Python(t *testing.T) {
	code := `def load(path):
    # TODO: validate path
    try:
        return open(path).read()
    except OSError:
        pass


def later():
    """Not done."""
    raise NotImplementedError("soon")
`
	expected := `def load(path):
    try:
        return open(path).read()
    except OSError:
        pass


def later():
    """Not done."""
    return None
`
	assert.Equal(t, expected, NewRepairer(nil).Sanitize(code, "python"))
}

func TestSanitize_KeepsCodeCommentsWithoutBannedPhrases(t *testing.T) {
	code := "let x = 1; // counter\nlet y = 2; // FIXME overflow\n"
	assert.Equal(t, "let x = 1; // counter\nlet y = 2;\n", NewRepairer(nil).Sanitize(code, "javascript"))
}

func TestRepair_PassingOutcomeIsReturnedUnchanged(t *testing.T) {
	u := &unit.Unit{ID: "a", Kind: unit.KindPython}
	code := "def f():\n    pass\n"
	v := validator.New(nil, registry.NewWithModules(&python.Module{}))
	outcome := v.Validate("x = 1\n", "python")
	require.True(t, outcome.Passed)

	got, err := NewRepairer(nil).Repair(context.Background(), &task.RepairTask{Unit: u, Code: code, Outcome: outcome})

	require.NoError(t, err)
	assert.Equal(t, code, got)
}

func TestCollaborators_RespectCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	u := &unit.Unit{ID: "a", Kind: unit.KindPython}

	_, err := (&Generator{}).Generate(ctx, &task.Task{Unit: u})
	assert.ErrorIs(t, err, context.Canceled)

	_, err = NewRepairer(nil).Repair(ctx, &task.RepairTask{Unit: u})
	assert.ErrorIs(t, err, context.Canceled)
}
