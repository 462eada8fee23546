package hcl_adapter

import "github.com/hashicorp/hcl/v2"

// fileRoot is a struct used to decode all possible top-level blocks from any file.
type fileRoot struct {
	Units    []*UnitBlock   `hcl:"unit,block"`
	Policies []*PolicyBlock `hcl:"policy,block"`
	Remain   hcl.Body       `hcl:",remain"`
}

// UnitBlock is the HCL schema of `unit "<id>" { ... }`.
type UnitBlock struct {
	ID          string           `hcl:"id,label"`
	Path        string           `hcl:"path"`
	Kind        string           `hcl:"kind"`
	DependsOn   []string         `hcl:"depends_on,optional"`
	Description string           `hcl:"description,optional"`
	Classes     []*ClassBlock    `hcl:"class,block"`
	Functions   []*FunctionBlock `hcl:"function,block"`
	Constants   []*ConstantBlock `hcl:"constant,block"`
	Tests       []*TestBlock     `hcl:"test,block"`
}

// ClassBlock is `class "<name>" { method "<name>" { ... } }`.
type ClassBlock struct {
	Name      string           `hcl:"name,label"`
	Docstring string           `hcl:"docstring,optional"`
	Methods   []*FunctionBlock `hcl:"method,block"`
}

// FunctionBlock is `function "<name>" { ... }` and `method "<name>" { ... }`.
type FunctionBlock struct {
	Name      string        `hcl:"name,label"`
	Returns   string        `hcl:"returns,optional"`
	Docstring string        `hcl:"docstring,optional"`
	Params    []*ParamBlock `hcl:"param,block"`
}

// ParamBlock is `param "<name>" { type = "..." default = <expr> }`.
type ParamBlock struct {
	Name    string         `hcl:"name,label"`
	Type    string         `hcl:"type,optional"`
	Default hcl.Expression `hcl:"default,optional"`
}

// ConstantBlock is `constant "<name>" { type = "..." }`.
type ConstantBlock struct {
	Name string `hcl:"name,label"`
	Type string `hcl:"type,optional"`
}

// TestBlock is `test "<name>" { ... }`.
type TestBlock struct {
	Name        string `hcl:"name,label"`
	Scope       string `hcl:"scope,optional"`
	Description string `hcl:"description,optional"`
	Expect      string `hcl:"expect,optional"`
}

// PolicyBlock is the optional `policy { ... }` block.
type PolicyBlock struct {
	ExtraBanned     []string        `hcl:"extra_banned,optional"`
	Guidance        string          `hcl:"guidance,optional"`
	CaseInsensitive *bool           `hcl:"case_insensitive,optional"`
	Grammars        []*GrammarBlock `hcl:"grammar,block"`
}

// GrammarBlock is `grammar "<language>" "<rule>" { ... }` inside a policy.
type GrammarBlock struct {
	Language    string   `hcl:"language,label"`
	Name        string   `hcl:"name,label"`
	Enforcement string   `hcl:"enforcement,optional"`
	Scope       string   `hcl:"scope,optional"`
	Definition  string   `hcl:"definition,optional"`
	Forbidden   []string `hcl:"forbidden"`
}
