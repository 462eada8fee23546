// Package rust registers the structural checker for Rust artifacts.
package rust

import (
	"fmt"
	"regexp"

	"github.com/specialistvlad/axiomgrid/internal/policy"
	"github.com/specialistvlad/axiomgrid/internal/registry"
	"github.com/specialistvlad/axiomgrid/internal/validation"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the Rust checker with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterChecker(&Checker{})
}

// Checker implements registry.Checker for Rust.
type Checker struct{}

func (c *Checker) Language() string  { return "rust" }
func (c *Checker) Aliases() []string { return []string{"rs"} }

// macroRegex matches the not-yet-implemented macros with or without a message.
var macroRegex = regexp.MustCompile(`\b(unimplemented|todo)!\s*\(`)

// CheckStructure reports not-yet-implemented macros and any other line-scoped
// grammar rule. A line already reported for a macro is not reported again by
// a rule naming the same macro.
func (c *Checker) CheckStructure(code string, p *policy.Policy) []validation.Finding {
	var findings []validation.Finding
	flagged := make(map[int]struct{})

	for i, line := range validation.Lines(code) {
		loc := macroRegex.FindStringSubmatchIndex(line)
		if loc == nil {
			continue
		}
		macro := line[loc[2]:loc[3]] + "!"
		findings = append(findings, validation.Finding{
			Severity: validation.SeverityFatal,
			Category: validation.CategoryPlaceholder,
			Message:  fmt.Sprintf("Not-yet-implemented macro '%s' found", macro),
			Line:     i + 1,
			Column:   loc[0] + 1,
			Match:    macro,
		})
		flagged[i+1] = struct{}{}
	}

	for _, f := range registry.ApplyLineRules(code, "rust", p) {
		if _, dup := flagged[f.Line]; dup && macroRegex.MatchString(f.Match) {
			continue
		}
		findings = append(findings, f)
	}
	return findings
}

// CheckBodies has nothing to add for Rust; empty bodies are legal unit
// functions.
func (c *Checker) CheckBodies(code string, p *policy.Policy) []validation.Finding {
	return nil
}
