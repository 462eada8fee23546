package builder

import (
	"fmt"
	"strings"

	"github.com/specialistvlad/axiomgrid/internal/policy"
	"github.com/specialistvlad/axiomgrid/internal/task"
	"github.com/specialistvlad/axiomgrid/internal/unit"
	"github.com/specialistvlad/axiomgrid/internal/validation"
	"github.com/specialistvlad/axiomgrid/internal/validator"
)

const repairInstructions = "You must fix ALL errors. Do not remove comments or TODOs - implement the missing logic.\n" +
	"Every function must contain complete, executable code.\n" +
	"Code containing placeholders will trigger a fatal build error.\n\n" +
	"Generate the complete, fixed code:"

// GenerationPrompt renders the initial generation request for t.
func GenerationPrompt(t *task.Task, p *policy.Policy) string {
	u := t.Unit
	var b strings.Builder

	fmt.Fprintf(&b, "Generate the complete implementation of the following module.\n\n")
	fmt.Fprintf(&b, "Unit: %s\nPath: %s\nKind: %s\n", u.ID, u.Path, u.Kind)
	if u.Description != "" {
		fmt.Fprintf(&b, "Description: %s\n", u.Description)
	}

	b.WriteString("\nPublic Interface:\n")
	writeInterface(&b, u.Interface, "  ")

	if u.TestPlan != nil {
		b.WriteString("\nTest Plan:\n")
		writeCases(&b, "unit", u.TestPlan.UnitTests)
		writeCases(&b, "integration", u.TestPlan.IntegrationTests)
	}

	b.WriteString("\nDependency Context:\n")
	if len(t.Context) == 0 {
		b.WriteString("  (none)\n")
	}
	for _, dep := range t.Context {
		fmt.Fprintf(&b, "  %s (%s) [%s]\n", dep.ID, dep.Path, depState(dep))
		writeInterface(&b, dep.Interface, "    ")
	}

	b.WriteString("\nRequirements:\n")
	b.WriteString("- Implement ALL logic (no TODOs, no placeholders)\n")
	b.WriteString("- Handle all edge cases\n")
	b.WriteString("- Include error handling\n")
	fmt.Fprintf(&b, "- Never use stub idioms: %s\n", strings.Join(policy.StubIdioms(), ", "))
	for _, rule := range p.Rules(u.Language()) {
		fmt.Fprintf(&b, "- Grammar rule %s: %s\n", rule.Name, rule.Definition)
	}

	b.WriteString("\n")
	b.WriteString(p.PromptSuffix())
	return b.String()
}

// RepairPrompt renders the repair request for a failing candidate. An empty
// language is detected from the code.
func RepairPrompt(code, language string, outcome validation.Outcome) string {
	if language == "" {
		language = validator.DetectLanguage(code)
	}
	var b strings.Builder
	b.WriteString(policy.Delimiter)
	b.WriteString("\n\nThe following code failed the sterilization check:\n\n")
	fmt.Fprintf(&b, "```%s\n%s\n```\n\n", language, strings.TrimRight(code, "\n"))
	b.WriteString("Error Details:\n")
	b.WriteString(outcome.Digest())
	b.WriteString("\n")
	b.WriteString(repairInstructions)
	return b.String()
}

func depState(dep task.DependencyContext) string {
	switch {
	case !dep.Indexed:
		return "pending"
	case dep.Passed:
		return "passed"
	default:
		return "failed"
	}
}

func writeInterface(b *strings.Builder, iface unit.Interface, indent string) {
	if iface.IsEmpty() {
		fmt.Fprintf(b, "%s(no exported symbols)\n", indent)
		return
	}
	for _, c := range iface.Classes {
		fmt.Fprintf(b, "%sclass %s\n", indent, c.Name)
		for _, m := range c.Methods {
			fmt.Fprintf(b, "%s  %s\n", indent, m.Signature())
		}
	}
	for _, f := range iface.Functions {
		fmt.Fprintf(b, "%sfunction %s\n", indent, f.Signature())
	}
	for _, c := range iface.Constants {
		if c.ValueType != "" {
			fmt.Fprintf(b, "%sconst %s: %s\n", indent, c.Name, c.ValueType)
		} else {
			fmt.Fprintf(b, "%sconst %s\n", indent, c.Name)
		}
	}
}

func writeCases(b *strings.Builder, kind string, cases []unit.TestCase) {
	for _, tc := range cases {
		fmt.Fprintf(b, "  - %s %s: %s", kind, tc.Name, tc.Description)
		if tc.ExpectedBehavior != "" {
			fmt.Fprintf(b, " -> %s", tc.ExpectedBehavior)
		}
		b.WriteString("\n")
	}
}
