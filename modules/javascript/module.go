// Package javascript registers the structural checkers for JavaScript and
// TypeScript artifacts.
package javascript

import (
	"fmt"
	"regexp"

	"github.com/specialistvlad/axiomgrid/internal/policy"
	"github.com/specialistvlad/axiomgrid/internal/registry"
	"github.com/specialistvlad/axiomgrid/internal/validation"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers one checker per language.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterChecker(&Checker{language: "javascript", aliases: []string{"js", "jsx", "mjs", "cjs"}})
	r.RegisterChecker(&Checker{language: "typescript", aliases: []string{"ts", "tsx"}})
}

// Checker implements registry.Checker for one of the JS-family languages.
type Checker struct {
	language string
	aliases  []string
}

// NewChecker returns a checker for the given JS-family language name.
func NewChecker(language string) *Checker {
	return &Checker{language: language}
}

func (c *Checker) Language() string  { return c.language }
func (c *Checker) Aliases() []string { return c.aliases }

var commentRegex = regexp.MustCompile(`//\s*(TODO|FIXME|XXX|HACK)\b`)

// CheckStructure reports placeholder line comments and line-scoped grammar
// rules such as `throw new Error("TODO")`.
func (c *Checker) CheckStructure(code string, p *policy.Policy) []validation.Finding {
	var findings []validation.Finding
	for i, line := range validation.Lines(code) {
		loc := commentRegex.FindStringSubmatchIndex(line)
		if loc == nil {
			continue
		}
		marker := line[loc[2]:loc[3]]
		findings = append(findings, validation.Finding{
			Severity: validation.SeverityFatal,
			Category: validation.CategoryPlaceholder,
			Message:  fmt.Sprintf("Placeholder comment '%s' found", marker),
			Line:     i + 1,
			Column:   loc[0] + 1,
			Match:    marker,
		})
	}
	return append(findings, registry.ApplyLineRules(code, c.language, p)...)
}

// CheckBodies has no JS-specific empty-body rule.
func (c *Checker) CheckBodies(code string, p *policy.Policy) []validation.Finding {
	return nil
}
