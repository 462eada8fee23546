// Package unit defines the work unit, the vertex of a generation plan, together
// with the interface description other units see as context.
package unit

import (
	"fmt"
	"strings"

	"github.com/specialistvlad/axiomgrid/internal/unitid"
)

// Unit is one planned, independently generated artifact. Once inserted into a
// dependency graph it is owned by the graph and must not be mutated.
type Unit struct {
	// ID is the unique identifier of the unit.
	ID unitid.ID
	// Path is the target file path of the generated artifact.
	Path string
	// Kind is the artifact kind and determines the validation language.
	Kind Kind
	// Interface lists the signatures the unit exposes to its dependents.
	Interface Interface
	// DependsOn holds the direct dependencies, in declared order.
	DependsOn []unitid.ID
	// TestPlan is optional.
	TestPlan *TestPlan
	// Description is free text handed to the generator.
	Description string
}

// Language returns the validation language for the unit's kind.
func (u *Unit) Language() string {
	return u.Kind.Language()
}

// Kind is the artifact kind of a unit.
type Kind string

const (
	KindPython     Kind = "python"
	KindRust       Kind = "rust"
	KindJavaScript Kind = "javascript"
	KindTypeScript Kind = "typescript"
	KindConfig     Kind = "config"
	KindTest       Kind = "test"
)

// Kinds lists every supported kind in a stable order.
var Kinds = []Kind{KindPython, KindRust, KindJavaScript, KindTypeScript, KindConfig, KindTest}

// ParseKind converts a case-insensitive name into a Kind.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Kinds {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown unit kind '%s'", s)
}

// Language maps a kind to the language the validator checks it as. Test units
// are python test modules; config units have no structural checker.
func (k Kind) Language() string {
	switch k {
	case KindTest:
		return string(KindPython)
	default:
		return string(k)
	}
}

// Interface is the public signature surface of a unit. It is used only as
// context for other units and is never executed.
type Interface struct {
	Classes   []Class
	Functions []Function
	Constants []Constant
}

// IsEmpty reports whether the interface declares nothing.
func (i Interface) IsEmpty() bool {
	return len(i.Classes) == 0 && len(i.Functions) == 0 && len(i.Constants) == 0
}

// Clone returns a deep copy sharing no slices with i.
func (i Interface) Clone() Interface {
	out := Interface{
		Constants: append([]Constant(nil), i.Constants...),
		Functions: cloneFunctions(i.Functions),
	}
	if i.Classes != nil {
		out.Classes = make([]Class, len(i.Classes))
		for n, c := range i.Classes {
			c.Methods = cloneFunctions(c.Methods)
			out.Classes[n] = c
		}
	}
	return out
}

func cloneFunctions(fns []Function) []Function {
	if fns == nil {
		return nil
	}
	out := make([]Function, len(fns))
	for n, f := range fns {
		f.Params = append([]Param(nil), f.Params...)
		out[n] = f
	}
	return out
}

// Class describes an exported class or struct.
type Class struct {
	Name      string
	Methods   []Function
	Docstring string
}

// Function describes an exported function or method.
type Function struct {
	Name       string
	Params     []Param
	ReturnType string
	Docstring  string
}

// Signature renders the function as a language-neutral one-liner, e.g.
// `load(path: str, strict: bool = false) -> Config`.
func (f Function) Signature() string {
	params := make([]string, 0, len(f.Params))
	for _, p := range f.Params {
		params = append(params, p.String())
	}
	sig := fmt.Sprintf("%s(%s)", f.Name, strings.Join(params, ", "))
	if f.ReturnType != "" {
		sig += " -> " + f.ReturnType
	}
	return sig
}

// Param is a single function parameter.
type Param struct {
	Name    string
	Type    string
	Default string
}

func (p Param) String() string {
	s := p.Name
	if p.Type != "" {
		s += ": " + p.Type
	}
	if p.Default != "" {
		s += " = " + p.Default
	}
	return s
}

// Constant describes an exported constant.
type Constant struct {
	Name      string
	ValueType string
}

// TestPlan lists the tests a unit is expected to satisfy.
type TestPlan struct {
	UnitTests        []TestCase
	IntegrationTests []TestCase
}

// Clone returns a deep copy of the plan. A nil plan stays nil.
func (p *TestPlan) Clone() *TestPlan {
	if p == nil {
		return nil
	}
	return &TestPlan{
		UnitTests:        append([]TestCase(nil), p.UnitTests...),
		IntegrationTests: append([]TestCase(nil), p.IntegrationTests...),
	}
}

// TestCase is one planned test.
type TestCase struct {
	Name             string
	Description      string
	ExpectedBehavior string
}
