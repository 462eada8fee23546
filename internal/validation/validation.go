// Package validation holds the result types of static artifact validation:
// severities, categories, findings, and the outcome the repair loop consumes.
package validation

import (
	"fmt"
	"strings"
)

// Severity classifies a finding. Fatal and Error fail an artifact; Warning
// never does.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
	SeverityFatal
)

func (s Severity) String() string {
	switch s {
	case SeverityFatal:
		return "FATAL"
	case SeverityError:
		return "ERROR"
	default:
		return "WARNING"
	}
}

// Failing reports whether the severity fails an artifact.
func (s Severity) Failing() bool {
	return s == SeverityFatal || s == SeverityError
}

// Category is the taxonomy of findings.
type Category string

const (
	CategoryPlaceholder Category = "placeholder-violation"
	CategorySyntax      Category = "syntax-defect"
	CategoryType        Category = "type-defect"
	CategoryLint        Category = "lint-defect"
	CategoryTest        Category = "test-failure"
	CategoryCompile     Category = "compile-defect"
	CategoryEmptyBody   Category = "empty-body"
	CategoryComplexity  Category = "complexity-threshold"
)

// Finding is one classified signal. Line and Column are 1-based; zero means
// unknown.
type Finding struct {
	Severity Severity
	Category Category
	Message  string
	File     string
	Line     int
	Column   int
	// Match is the banned phrase or construct that triggered the finding, if any.
	Match string
}

func (f Finding) String() string {
	s := fmt.Sprintf("[%s] %s: %s", f.Severity, f.Category, f.Message)
	if f.Line > 0 {
		s += fmt.Sprintf(" (line %d)", f.Line)
	}
	return s
}

// BuildResult is the outcome of compiling an artifact. The static validator
// never compiles, so it leaves Outcome.Build nil; the field exists for
// validators that do.
type BuildResult struct {
	Succeeded bool
	Output    string
}

// TestResults summarises executed tests. Like BuildResult it is nil for
// static validation.
type TestResults struct {
	Passed   int
	Failed   int
	Failures []string
}

// Outcome is the result of validating one artifact.
type Outcome struct {
	Passed   bool
	Findings []Finding
	// Warnings repeats the messages of Warning findings.
	Warnings []string
	Build    *BuildResult
	Tests    *TestResults
}

// NewOutcome derives Passed and Warnings from the findings. Finding order is
// preserved.
func NewOutcome(findings []Finding) Outcome {
	o := Outcome{Passed: true, Findings: findings}
	for _, f := range findings {
		if f.Severity.Failing() {
			o.Passed = false
		} else {
			o.Warnings = append(o.Warnings, f.Message)
		}
	}
	return o
}

// Count returns the number of findings with the given severity.
func (o Outcome) Count(s Severity) int {
	n := 0
	for _, f := range o.Findings {
		if f.Severity == s {
			n++
		}
	}
	return n
}

// Digest renders the human-readable error summary used in repair records and
// repair prompts.
func (o Outcome) Digest() string {
	if len(o.Findings) == 0 {
		return "No errors found"
	}
	var b strings.Builder
	b.WriteString("Validation Errors:\n")
	for _, f := range o.Findings {
		fmt.Fprintf(&b, "[%s] %s: %s\n", f.Severity, f.Category, f.Message)
		if f.Line > 0 {
			fmt.Fprintf(&b, "  Location: Line %d\n", f.Line)
		}
	}
	return b.String()
}
