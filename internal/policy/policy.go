package policy

import (
	"fmt"
	"sort"
	"strings"
)

const (
	// Delimiter opens every instruction block the pipeline sends.
	Delimiter = "###_STERILIZATION_PROTOCOL_v1_###"

	// DefaultGuidance is the positive guidance block.
	DefaultGuidance = "If logic is complex, decompose it into helper functions. " +
		"Do not abbreviate or omit implementation details. " +
		"Every function must contain complete, executable logic. " +
		"Code containing placeholders will trigger a fatal build error."

	// Reminder closes the prompt suffix.
	Reminder = "Protocol Check: Ensure no TODOs or placeholders are present in the following output."
)

// Enforcement is how strictly a grammar rule is applied.
type Enforcement string

const (
	EnforcementWarning Enforcement = "warning"
	EnforcementError   Enforcement = "error"
	EnforcementFatal   Enforcement = "fatal"
)

// ParseEnforcement converts a case-insensitive name into an Enforcement.
func ParseEnforcement(s string) (Enforcement, error) {
	switch e := Enforcement(strings.ToLower(strings.TrimSpace(s))); e {
	case EnforcementWarning, EnforcementError, EnforcementFatal:
		return e, nil
	default:
		return "", fmt.Errorf("unknown enforcement level '%s'", s)
	}
}

// Scope is where a rule's forbidden constructs are looked for.
type Scope string

const (
	// ScopeLine matches a construct anywhere on any line.
	ScopeLine Scope = "line"
	// ScopeBody matches a construct only when it is the entire body of a
	// function, so `pass` inside an except block stays legal.
	ScopeBody Scope = "body"
)

// GrammarRule is a named exclusion for one language.
type GrammarRule struct {
	Name        string
	Enforcement Enforcement
	Scope       Scope
	// Definition documents the rule in EBNF for generators. It is not parsed.
	Definition string
	Forbidden  []string
}

// Policy is the constraint configuration shared by generation and validation.
type Policy struct {
	// Banned are literal phrases that fail validation wherever they appear.
	Banned []string
	// CaseInsensitive widens the banned-phrase match.
	CaseInsensitive bool
	// Grammars holds grammar rules keyed by language.
	Grammars map[string][]GrammarRule
	// Guidance is the positive instruction block.
	Guidance string
}

// Default returns the built-in policy.
func Default() *Policy {
	return &Policy{
		Banned:   BannedTokens(),
		Grammars: defaultGrammars(),
		Guidance: DefaultGuidance,
	}
}

func defaultGrammars() map[string][]GrammarRule {
	jsRule := GrammarRule{
		Name:        "fn_body_no_throw_todo",
		Enforcement: EnforcementFatal,
		Scope:       ScopeLine,
		Definition:  `function_body ::= '{' statement* '}'  (* Exclude: throw new Error("TODO") *)`,
		Forbidden:   []string{`throw new Error("TODO")`, `throw new Error('TODO')`},
	}
	return map[string][]GrammarRule{
		"python": {{
			Name:        "func_body_no_pass",
			Enforcement: EnforcementFatal,
			Scope:       ScopeBody,
			Definition:  "func_body ::= INDENT (stmt)+ DEDENT  (* Exclude: stmt ::= pass *)",
			Forbidden:   []string{"pass", "...", "raise NotImplementedError()", "raise NotImplementedError"},
		}},
		"rust": {{
			Name:        "fn_body_no_unimplemented",
			Enforcement: EnforcementFatal,
			Scope:       ScopeLine,
			Definition:  "block_expr ::= '{' (stmt)* (expr)? '}'  (* Exclude: unimplemented!() | todo!() *)",
			Forbidden:   []string{"unimplemented!()", "todo!()", `panic!("TODO")`},
		}},
		"javascript": {jsRule},
		"typescript": {jsRule},
	}
}

// Rules returns the grammar rules for a language in declared order.
func (p *Policy) Rules(language string) []GrammarRule {
	if p == nil {
		return nil
	}
	return p.Grammars[strings.ToLower(language)]
}

// Languages lists the languages that carry grammar rules, sorted.
func (p *Policy) Languages() []string {
	langs := make([]string, 0, len(p.Grammars))
	for l := range p.Grammars {
		langs = append(langs, l)
	}
	sort.Strings(langs)
	return langs
}

// PromptSuffix renders the instruction suffix appended to generation
// requests: delimiter, guidance, reminder.
func (p *Policy) PromptSuffix() string {
	guidance := p.Guidance
	if guidance == "" {
		guidance = DefaultGuidance
	}
	return Delimiter + "\n\n" + guidance + "\n\n" + Reminder
}

// Overrides are the optional adjustments a policy file can make.
type Overrides struct {
	ExtraBanned     []string
	Guidance        string
	CaseInsensitive *bool
	// Grammars replaces the rule list of each named language.
	Grammars map[string][]GrammarRule
}

// Apply returns a copy of p with the overrides applied. The receiver is not
// modified.
func (p *Policy) Apply(o Overrides) *Policy {
	out := &Policy{
		Banned:          append([]string(nil), p.Banned...),
		CaseInsensitive: p.CaseInsensitive,
		Grammars:        make(map[string][]GrammarRule, len(p.Grammars)),
		Guidance:        p.Guidance,
	}
	for lang, rules := range p.Grammars {
		out.Grammars[lang] = append([]GrammarRule(nil), rules...)
	}

	seen := make(map[string]struct{}, len(out.Banned))
	for _, b := range out.Banned {
		seen[b] = struct{}{}
	}
	for _, b := range o.ExtraBanned {
		if _, dup := seen[b]; dup || b == "" {
			continue
		}
		seen[b] = struct{}{}
		out.Banned = append(out.Banned, b)
	}
	if o.Guidance != "" {
		out.Guidance = o.Guidance
	}
	if o.CaseInsensitive != nil {
		out.CaseInsensitive = *o.CaseInsensitive
	}
	for lang, rules := range o.Grammars {
		out.Grammars[strings.ToLower(lang)] = append([]GrammarRule(nil), rules...)
	}
	return out
}
