package config

// Model is the unified, format-agnostic representation of a plan and its
// optional policy overrides.
type Model struct {
	Units []*Unit
	// Policy is nil when no policy block was declared.
	Policy *Policy
}

// Unit is the format-agnostic representation of a `unit` block. Values are
// still unvalidated strings; the planner parses them.
type Unit struct {
	ID          string
	Path        string
	Kind        string
	DependsOn   []string
	Description string
	Classes     []*Class
	Functions   []*Function
	Constants   []*Constant
	Tests       []*Test
}

// Class is a declared class and its methods.
type Class struct {
	Name      string
	Docstring string
	Methods   []*Function
}

// Function is a declared function or method signature.
type Function struct {
	Name      string
	Returns   string
	Docstring string
	Params    []*Param
}

// Param is one declared parameter. Default is rendered source text, empty
// when the parameter has none.
type Param struct {
	Name    string
	Type    string
	Default string
}

// Constant is a declared constant.
type Constant struct {
	Name string
	Type string
}

// TestScopeUnit and TestScopeIntegration are the accepted test scopes.
const (
	TestScopeUnit        = "unit"
	TestScopeIntegration = "integration"
)

// Test is one planned test case.
type Test struct {
	Name        string
	Scope       string
	Description string
	Expect      string
}

// Policy is the format-agnostic representation of a `policy` block.
type Policy struct {
	ExtraBanned     []string
	Guidance        string
	CaseInsensitive *bool
	Grammars        []*GrammarRule
}

// GrammarRule is one `grammar "<language>" "<name>"` block.
type GrammarRule struct {
	Language    string
	Name        string
	Enforcement string
	Scope       string
	Definition  string
	Forbidden   []string
}
