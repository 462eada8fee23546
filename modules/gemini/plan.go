package gemini

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/specialistvlad/axiomgrid/internal/config"
	"github.com/specialistvlad/axiomgrid/internal/unit"
)

// planDoc is the JSON document the planning prompt asks for.
type planDoc struct {
	Units []planUnit `json:"units"`
}

type planUnit struct {
	ID          string         `json:"id"`
	Path        string         `json:"path"`
	Kind        string         `json:"kind"`
	DependsOn   []string       `json:"depends_on"`
	Description string         `json:"description"`
	Functions   []planFunction `json:"functions"`
	Classes     []planClass    `json:"classes"`
	Constants   []planConstant `json:"constants"`
	Tests       []planTest     `json:"tests"`
}

type planFunction struct {
	Name      string      `json:"name"`
	Params    []planParam `json:"params"`
	Returns   string      `json:"returns"`
	Docstring string      `json:"docstring"`
}

type planParam struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	Default string `json:"default"`
}

type planClass struct {
	Name      string         `json:"name"`
	Docstring string         `json:"docstring"`
	Methods   []planFunction `json:"methods"`
}

type planConstant struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type planTest struct {
	Name        string `json:"name"`
	Scope       string `json:"scope"`
	Description string `json:"description"`
	Expect      string `json:"expect"`
}

// PlanningPrompt renders the request that turns a requirement into a plan.
func PlanningPrompt(requirement string) string {
	kinds := make([]string, 0, len(unit.Kinds))
	for _, k := range unit.Kinds {
		kinds = append(kinds, string(k))
	}
	var b strings.Builder
	b.WriteString("Decompose the following requirement into independently generated source files.\n\n")
	fmt.Fprintf(&b, "Requirement:\n%s\n\n", strings.TrimSpace(requirement))
	b.WriteString("Respond with a JSON object of the form:\n")
	b.WriteString(`{"units": [{"id": "pkg.module", "path": "pkg/module.py", "kind": "python", "depends_on": ["pkg.other"], ` +
		`"description": "...", "functions": [{"name": "f", "params": [{"name": "x", "type": "int", "default": ""}], "returns": "int", "docstring": "..."}], ` +
		`"classes": [{"name": "C", "docstring": "...", "methods": []}], "constants": [{"name": "K", "type": "str"}], ` +
		`"tests": [{"name": "t", "scope": "unit", "description": "...", "expect": "..."}]}]}`)
	b.WriteString("\n\nRules:\n")
	fmt.Fprintf(&b, "- kind is one of: %s\n", strings.Join(kinds, ", "))
	b.WriteString("- ids are dot-separated segments of letters, digits, '_' and '-'\n")
	b.WriteString("- depends_on lists only direct dependencies and must not form a cycle\n")
	b.WriteString("- declare only the public interface; do not write implementations\n")
	return b.String()
}

// decodePlan parses the model's JSON into the format-agnostic plan model.
func decodePlan(raw string) (*config.Model, error) {
	var doc planDoc
	if err := json.Unmarshal([]byte(ExtractJSON(raw)), &doc); err != nil {
		return nil, fmt.Errorf("gemini returned an invalid plan: %w", err)
	}
	m := &config.Model{}
	for _, pu := range doc.Units {
		cu := &config.Unit{
			ID:          pu.ID,
			Path:        pu.Path,
			Kind:        pu.Kind,
			DependsOn:   pu.DependsOn,
			Description: pu.Description,
		}
		for _, f := range pu.Functions {
			cu.Functions = append(cu.Functions, toConfigFunction(f))
		}
		for _, c := range pu.Classes {
			class := &config.Class{Name: c.Name, Docstring: c.Docstring}
			for _, meth := range c.Methods {
				class.Methods = append(class.Methods, toConfigFunction(meth))
			}
			cu.Classes = append(cu.Classes, class)
		}
		for _, c := range pu.Constants {
			cu.Constants = append(cu.Constants, &config.Constant{Name: c.Name, Type: c.Type})
		}
		for _, t := range pu.Tests {
			scope := t.Scope
			if scope != config.TestScopeIntegration {
				scope = config.TestScopeUnit
			}
			cu.Tests = append(cu.Tests, &config.Test{Name: t.Name, Scope: scope, Description: t.Description, Expect: t.Expect})
		}
		m.Units = append(m.Units, cu)
	}
	return m, nil
}

func toConfigFunction(f planFunction) *config.Function {
	fn := &config.Function{Name: f.Name, Returns: f.Returns, Docstring: f.Docstring}
	for _, p := range f.Params {
		fn.Params = append(fn.Params, &config.Param{Name: p.Name, Type: p.Type, Default: p.Default})
	}
	return fn
}

// ExtractJSON strips a fenced wrapper around a JSON document, if any.
func ExtractJSON(text string) string {
	if m := fenceRegex.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return strings.TrimSpace(text)
}
