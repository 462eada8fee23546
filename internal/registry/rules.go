package registry

import (
	"fmt"

	"github.com/specialistvlad/axiomgrid/internal/policy"
	"github.com/specialistvlad/axiomgrid/internal/validation"
)

// SeverityOf maps a rule's enforcement level to a finding severity.
func SeverityOf(e policy.Enforcement) validation.Severity {
	switch e {
	case policy.EnforcementFatal:
		return validation.SeverityFatal
	case policy.EnforcementError:
		return validation.SeverityError
	default:
		return validation.SeverityWarning
	}
}

// ApplyLineRules reports every occurrence of a line-scoped forbidden construct
// of the language's grammar rules. Checkers call it from CheckStructure.
func ApplyLineRules(code, language string, p *policy.Policy) []validation.Finding {
	var findings []validation.Finding
	for _, rule := range p.Rules(language) {
		if rule.Scope != policy.ScopeLine {
			continue
		}
		name := rule.Name
		findings = append(findings, validation.ScanPhrases(
			code, rule.Forbidden, false, SeverityOf(rule.Enforcement), validation.CategoryPlaceholder,
			func(construct string) string {
				return fmt.Sprintf("Forbidden construct '%s' (rule %s)", construct, name)
			},
		)...)
	}
	return findings
}

// BodyConstructs returns the forbidden constructs of the language's
// body-scoped rules, each paired with the rule's severity.
func BodyConstructs(language string, p *policy.Policy) map[string]validation.Severity {
	out := make(map[string]validation.Severity)
	for _, rule := range p.Rules(language) {
		if rule.Scope != policy.ScopeBody {
			continue
		}
		sev := SeverityOf(rule.Enforcement)
		for _, c := range rule.Forbidden {
			if prev, ok := out[c]; !ok || sev > prev {
				out[c] = sev
			}
		}
	}
	return out
}
