package policy

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromptSuffix(t *testing.T) {
	p := Default()

	suffix := p.PromptSuffix()

	expected := "###_STERILIZATION_PROTOCOL_v1_###\n\n" + DefaultGuidance + "\n\n" +
		"Protocol Check: Ensure no TODOs or placeholders are present in the following output."
	assert.Equal(t, expected, suffix)
	assert.Equal(t, suffix, Default().PromptSuffix(), "suffix must be deterministic")
}

func TestPromptSuffix_CustomGuidance(t *testing.T) {
	p := Default().Apply(Overrides{Guidance: "Write small functions."})
	assert.True(t, strings.HasPrefix(p.PromptSuffix(), Delimiter+"\n\nWrite small functions.\n\n"))
}

func TestBannedTokens_ReturnsCopy(t *testing.T) {
	a := BannedTokens()
	a[0] = "mutated"
	assert.Equal(t, "TODO", BannedTokens()[0])
	assert.Equal(t, BannedTokens(), Default().Banned)
	assert.NotContains(t, BannedTokens(), "pass", "stub idioms are not banned as substrings")
	assert.Contains(t, StubIdioms(), "return None")
}

func TestDefaultGrammars(t *testing.T) {
	p := Default()

	py := p.Rules("Python")
	require.Len(t, py, 1)
	assert.Equal(t, "func_body_no_pass", py[0].Name)
	assert.Equal(t, ScopeBody, py[0].Scope)
	assert.Contains(t, py[0].Forbidden, "...")

	rs := p.Rules("rust")
	require.Len(t, rs, 1)
	assert.Equal(t, EnforcementFatal, rs[0].Enforcement)
	assert.Contains(t, rs[0].Forbidden, "todo!()")

	assert.Empty(t, p.Rules("cobol"))
	assert.Equal(t, []string{"javascript", "python", "rust", "typescript"}, p.Languages())
}

func TestApply(t *testing.T) {
	base := Default()
	yes := true

	out := base.Apply(Overrides{
		ExtraBanned:     []string{"STUB", "TODO", ""},
		CaseInsensitive: &yes,
		Grammars: map[string][]GrammarRule{
			"Go": {{Name: "no_panic", Enforcement: EnforcementError, Scope: ScopeLine, Forbidden: []string{`panic("todo")`}}},
		},
	})

	assert.Equal(t, len(base.Banned)+1, len(out.Banned), "duplicates and empties are skipped")
	assert.Equal(t, "STUB", out.Banned[len(out.Banned)-1])
	assert.True(t, out.CaseInsensitive)
	assert.Len(t, out.Rules("go"), 1)

	// The base policy is untouched.
	assert.False(t, base.CaseInsensitive)
	assert.Empty(t, base.Rules("go"))
	assert.Equal(t, BannedTokens(), base.Banned)
}

func TestParseEnforcement(t *testing.T) {
	e, err := ParseEnforcement(" FATAL ")
	require.NoError(t, err)
	assert.Equal(t, EnforcementFatal, e)

	_, err = ParseEnforcement("loud")
	require.Error(t, err)
}
