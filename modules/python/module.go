// Package python registers the structural checker for Python artifacts:
// delimiter balance, indented blocks after colons, and empty function bodies.
package python

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/specialistvlad/axiomgrid/internal/policy"
	"github.com/specialistvlad/axiomgrid/internal/registry"
	"github.com/specialistvlad/axiomgrid/internal/validation"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the Python checker with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterChecker(&Checker{})
}

// Checker implements registry.Checker for Python.
type Checker struct{}

func (c *Checker) Language() string  { return "python" }
func (c *Checker) Aliases() []string { return []string{"py", "python3"} }

var delimiters = []struct {
	open, close byte
	name        string
}{
	{'(', ')', "parentheses"},
	{'[', ']', "square brackets"},
	{'{', '}', "curly braces"},
}

// CheckStructure checks delimiter balance, blocks after colons, and any
// line-scoped grammar rules.
func (c *Checker) CheckStructure(code string, p *policy.Policy) []validation.Finding {
	lines := scan(code)

	var findings []validation.Finding
	findings = append(findings, checkDelimiters(lines)...)
	findings = append(findings, checkIndentedBlocks(lines)...)
	findings = append(findings, registry.ApplyLineRules(code, "python", p)...)
	return findings
}

// checkDelimiters keeps a running balance per delimiter kind. A closer with
// no opener is reported on its line; openers left at the end are reported on
// the line of the first unclosed one.
func checkDelimiters(lines []line) []validation.Finding {
	var findings []validation.Finding
	for _, d := range delimiters {
		var open []int // line numbers of unclosed openers
		reported := false
		for _, l := range lines {
			for i := 0; i < len(l.code); i++ {
				switch l.code[i] {
				case d.open:
					open = append(open, l.num)
				case d.close:
					if len(open) == 0 {
						if !reported {
							findings = append(findings, unmatched(d.name, l.num))
							reported = true
						}
						continue
					}
					open = open[:len(open)-1]
				}
			}
		}
		if len(open) > 0 && !reported {
			findings = append(findings, unmatched(d.name, open[0]))
		}
	}
	return findings
}

func unmatched(name string, lineNum int) validation.Finding {
	return validation.Finding{
		Severity: validation.SeverityError,
		Category: validation.CategorySyntax,
		Message:  fmt.Sprintf("Unmatched %s detected", name),
		Line:     lineNum,
	}
}

// checkIndentedBlocks requires the next code line after a block-opening colon
// to be indented deeper than the colon line. Blank and comment lines are
// skipped. Colons inside open brackets do not open blocks.
func checkIndentedBlocks(lines []line) []validation.Finding {
	var findings []validation.Finding
	for i, l := range lines {
		if l.inString || l.depth > 0 || !strings.HasSuffix(l.code, ":") {
			continue
		}
		next := -1
		for j := i + 1; j < len(lines); j++ {
			if !lines[j].empty() || lines[j].inString {
				next = j
				break
			}
		}
		if next >= 0 && lines[next].indent > l.indent {
			continue
		}
		lineNum := l.num + 1
		if next >= 0 {
			lineNum = lines[next].num
		}
		findings = append(findings, validation.Finding{
			Severity: validation.SeverityError,
			Category: validation.CategorySyntax,
			Message:  "Expected indented block after colon",
			Line:     lineNum,
		})
	}
	return findings
}

var (
	defRegex    = regexp.MustCompile(`^\s*(?:async\s+)?def\s+\w+`)
	inlineRegex = regexp.MustCompile(`^\s*(?:async\s+)?def\s+\w+\s*\(.*\)\s*(?:->\s*[^:]+)?:\s*(\S.*)$`)
)

// builtinNoops are always fatal as a whole body, whatever the policy says.
var builtinNoops = []string{"pass", "...", "raise NotImplementedError"}

// noopConstructs merges the body-scoped grammar rules on top of the built-in
// set. Policy rules can add constructs but never weaken a built-in one.
func noopConstructs(p *policy.Policy) map[string]validation.Severity {
	noops := registry.BodyConstructs("python", p)
	for _, n := range builtinNoops {
		noops[n] = validation.SeverityFatal
	}
	return noops
}

// CheckBodies reports functions whose body is nothing but a no-op construct,
// or nothing but a docstring.
func (c *Checker) CheckBodies(code string, p *policy.Policy) []validation.Finding {
	noops := noopConstructs(p)
	lines := scan(code)

	var findings []validation.Finding
	for i, l := range lines {
		if l.inString || !defRegex.MatchString(l.code) {
			continue
		}

		var statements []string
		docstring := false
		if m := inlineRegex.FindStringSubmatch(l.code); m != nil {
			statements = append(statements, strings.TrimSpace(m[1]))
		} else {
			// The header may wrap; the body starts after the line closing it.
			start := i
			for start < len(lines) && (lines[start].depth > 0 || !strings.HasSuffix(lines[start].code, ":")) {
				start++
			}
			for j := start + 1; j < len(lines); j++ {
				b := lines[j]
				if b.inString {
					docstring = true
					continue
				}
				if b.empty() {
					continue
				}
				if b.indent <= l.indent {
					break
				}
				if b.stringOnly() {
					docstring = true
					continue
				}
				statements = append(statements, strings.TrimSpace(b.code))
			}
		}

		if f, ok := emptyBody(statements, docstring, noops, l.num); ok {
			findings = append(findings, f)
		}
	}
	return findings
}

func emptyBody(statements []string, docstring bool, noops map[string]validation.Severity, lineNum int) (validation.Finding, bool) {
	if len(statements) == 0 {
		if !docstring {
			// Missing body; the indentation check already reports it.
			return validation.Finding{}, false
		}
		return validation.Finding{
			Severity: validation.SeverityFatal,
			Category: validation.CategoryEmptyBody,
			Message:  "Function contains only a docstring",
			Line:     lineNum,
		}, true
	}

	severity := validation.SeverityWarning
	for _, s := range statements {
		sev, ok := matchNoop(s, noops)
		if !ok {
			return validation.Finding{}, false
		}
		if sev > severity {
			severity = sev
		}
	}
	return validation.Finding{
		Severity: severity,
		Category: validation.CategoryEmptyBody,
		Message:  fmt.Sprintf("Function contains only '%s' statement", base(statements[0])),
		Line:     lineNum,
	}, true
}

func matchNoop(stmt string, noops map[string]validation.Severity) (validation.Severity, bool) {
	b := base(stmt)
	severity, found := validation.SeverityWarning, false
	for construct, sev := range noops {
		if base(construct) == b {
			found = true
			if sev > severity {
				severity = sev
			}
		}
	}
	return severity, found
}

// base drops a call's argument list and a trailing semicolon, so
// `raise NotImplementedError("x")` and `raise NotImplementedError()` compare
// equal.
func base(stmt string) string {
	stmt = strings.TrimSuffix(strings.TrimSpace(stmt), ";")
	if i := strings.Index(stmt, "("); i >= 0 {
		stmt = stmt[:i]
	}
	return strings.TrimSpace(stmt)
}
