package validator

import (
	"fmt"

	"github.com/specialistvlad/axiomgrid/internal/policy"
	"github.com/specialistvlad/axiomgrid/internal/registry"
	"github.com/specialistvlad/axiomgrid/internal/validation"
)

// Interface is the validate capability consumed by the pipeline.
type Interface interface {
	Validate(code, language string) validation.Outcome
}

// Validator runs the static validation stages.
type Validator struct {
	policy   *policy.Policy
	registry *registry.Registry
}

var _ Interface = (*Validator)(nil)

// New creates a validator. A nil policy means policy.Default().
func New(p *policy.Policy, r *registry.Registry) *Validator {
	if p == nil {
		p = policy.Default()
	}
	return &Validator{policy: p, registry: r}
}

// Policy returns the policy the validator enforces.
func (v *Validator) Policy() *policy.Policy {
	return v.policy
}

// Validate checks code declared as language.
func (v *Validator) Validate(code, language string) validation.Outcome {
	findings := v.placeholders(code)

	checker, ok := v.registry.Lookup(language)
	if !ok {
		findings = append(findings, validation.Finding{
			Severity: validation.SeverityWarning,
			Category: validation.CategoryLint,
			Message:  fmt.Sprintf("Unknown language: %s", language),
		})
		return validation.NewOutcome(findings)
	}

	findings = append(findings, checker.CheckStructure(code, v.policy)...)
	findings = append(findings, checker.CheckBodies(code, v.policy)...)
	return validation.NewOutcome(findings)
}

func (v *Validator) placeholders(code string) []validation.Finding {
	return validation.ScanPhrases(
		code, v.policy.Banned, v.policy.CaseInsensitive,
		validation.SeverityFatal, validation.CategoryPlaceholder,
		func(phrase string) string {
			return fmt.Sprintf("Sterilization violation: Found '%s'", phrase)
		},
	)
}
