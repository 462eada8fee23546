package offline

import (
	"context"
	"regexp"
	"strings"

	"github.com/specialistvlad/axiomgrid/internal/agent"
	"github.com/specialistvlad/axiomgrid/internal/policy"
	"github.com/specialistvlad/axiomgrid/internal/task"
)

var (
	pyDefRegex       = regexp.MustCompile(`^\s*(?:async\s+)?def\s+\w+`)
	pyNoopRegex      = regexp.MustCompile(`^(pass|\.\.\.|raise\s+NotImplementedError\b.*)$`)
	rustMacroRegex   = regexp.MustCompile(`\b(?:todo|unimplemented)!\s*\([^)]*\)|\bpanic!\s*\(\s*"TODO"\s*\)`)
	scriptThrowRegex = regexp.MustCompile(`throw\s+new\s+Error\(\s*["']TODO["']\s*\);?`)
)

// Repairer rewrites placeholder constructs into neutral default returns and
// strips comments that carry banned phrases. Code it cannot improve is
// returned unchanged, so the loop exhausts its budget normally.
type Repairer struct {
	banned          []string
	caseInsensitive bool
}

var _ agent.Repairer = (*Repairer)(nil)

// NewRepairer uses p's banned phrases. A nil policy means the default one.
func NewRepairer(p *policy.Policy) *Repairer {
	if p == nil {
		p = policy.Default()
	}
	return &Repairer{banned: p.Banned, caseInsensitive: p.CaseInsensitive}
}

func (r *Repairer) Repair(ctx context.Context, t *task.RepairTask) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if t.Outcome.Passed {
		return t.Code, nil
	}
	return r.Sanitize(t.Code, t.Unit.Language()), nil
}

// Sanitize applies every rewrite for language to code.
func (r *Repairer) Sanitize(code, language string) string {
	marker := "//"
	if language == "python" || language == "config" {
		marker = "#"
	}
	lines := r.stripComments(strings.Split(code, "\n"), marker)

	switch language {
	case "python":
		lines = rewritePythonNoops(lines)
	case "rust":
		for i, l := range lines {
			lines[i] = rustMacroRegex.ReplaceAllString(l, "Default::default()")
		}
	case "javascript", "typescript":
		for i, l := range lines {
			lines[i] = scriptThrowRegex.ReplaceAllString(l, "return undefined;")
		}
	}
	return strings.Join(lines, "\n")
}

// stripComments removes the comment part of lines whose comment carries a
// banned phrase. Lines left blank by that are dropped.
func (r *Repairer) stripComments(lines []string, marker string) []string {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		i := strings.Index(l, marker)
		if i < 0 || !r.containsBanned(l[i:]) {
			out = append(out, l)
			continue
		}
		kept := strings.TrimRight(l[:i], " \t")
		if strings.TrimSpace(kept) == "" {
			continue
		}
		out = append(out, kept)
	}
	return out
}

func (r *Repairer) containsBanned(s string) bool {
	if r.caseInsensitive {
		s = strings.ToLower(s)
	}
	for _, b := range r.banned {
		if r.caseInsensitive {
			b = strings.ToLower(b)
		}
		if b != "" && strings.Contains(s, b) {
			return true
		}
	}
	return false
}

// rewritePythonNoops replaces no-op statements that sit directly in a
// function body with `return None`. A `pass` under `except:` or `class` is
// left alone.
func rewritePythonNoops(lines []string) []string {
	for i, l := range lines {
		stmt := strings.TrimSpace(l)
		if !pyNoopRegex.MatchString(stmt) {
			continue
		}
		indent := len(l) - len(strings.TrimLeft(l, " \t"))
		for j := i - 1; j >= 0; j-- {
			prev := lines[j]
			if strings.TrimSpace(prev) == "" {
				continue
			}
			prevIndent := len(prev) - len(strings.TrimLeft(prev, " \t"))
			if prevIndent >= indent {
				continue
			}
			if pyDefRegex.MatchString(prev) {
				lines[i] = l[:indent] + "return None"
			}
			break
		}
	}
	return lines
}
