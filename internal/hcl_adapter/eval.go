package hcl_adapter

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/axiomgrid/internal/policy"
	"github.com/specialistvlad/axiomgrid/internal/unit"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// evalContext exposes symbolic names for enumerations, so a plan can say
// `kind = kind.rust` or `enforcement = enforcement.fatal`, plus a few string
// and list functions.
func evalContext() *hcl.EvalContext {
	kinds := make(map[string]cty.Value, len(unit.Kinds))
	for _, k := range unit.Kinds {
		kinds[string(k)] = cty.StringVal(string(k))
	}
	enforcement := map[string]cty.Value{}
	for _, e := range []policy.Enforcement{policy.EnforcementWarning, policy.EnforcementError, policy.EnforcementFatal} {
		enforcement[string(e)] = cty.StringVal(string(e))
	}
	scopes := map[string]cty.Value{}
	for _, s := range []policy.Scope{policy.ScopeLine, policy.ScopeBody} {
		scopes[string(s)] = cty.StringVal(string(s))
	}

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"kind":        cty.ObjectVal(kinds),
			"enforcement": cty.ObjectVal(enforcement),
			"scope":       cty.ObjectVal(scopes),
		},
		Functions: map[string]function.Function{
			"upper":  stdlib.UpperFunc,
			"lower":  stdlib.LowerFunc,
			"format": stdlib.FormatFunc,
			"join":   stdlib.JoinFunc,
			"concat": stdlib.ConcatFunc,
		},
	}
}
