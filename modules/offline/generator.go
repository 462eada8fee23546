// Package offline provides collaborators that need no network: a Generator
// that renders a unit's declared interface as a skeleton with placeholder
// bodies, and a Repairer that rewrites those placeholders into concrete
// default returns. Both are pure functions of their input, so offline runs
// are reproducible.
package offline

import (
	"context"
	"fmt"
	"strings"

	"github.com/specialistvlad/axiomgrid/internal/agent"
	"github.com/specialistvlad/axiomgrid/internal/task"
	"github.com/specialistvlad/axiomgrid/internal/unit"
)

// Generator renders skeletons from the declared interface.
type Generator struct{}

var _ agent.Generator = (*Generator)(nil)

func (g *Generator) Generate(ctx context.Context, t *task.Task) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return Render(t.Unit), nil
}

// Render produces the skeleton for u. Output depends only on u.
func Render(u *unit.Unit) string {
	var b strings.Builder
	switch u.Kind {
	case unit.KindPython, unit.KindTest:
		renderPython(&b, u)
	case unit.KindRust:
		renderRust(&b, u)
	case unit.KindJavaScript:
		renderScript(&b, u, false)
	case unit.KindTypeScript:
		renderScript(&b, u, true)
	default:
		renderConfig(&b, u)
	}
	return b.String()
}

func renderPython(b *strings.Builder, u *unit.Unit) {
	fmt.Fprintf(b, "\"\"\"%s\"\"\"\n", header(u))
	for _, c := range u.Interface.Constants {
		fmt.Fprintf(b, "\n%s = %s\n", c.Name, zeroValue("python", c.ValueType))
	}
	for _, c := range u.Interface.Classes {
		fmt.Fprintf(b, "\n\nclass %s:\n", c.Name)
		if c.Docstring != "" {
			fmt.Fprintf(b, "    \"\"\"%s\"\"\"\n", c.Docstring)
		}
		if len(c.Methods) == 0 {
			b.WriteString("    pass\n")
		}
		for i, m := range c.Methods {
			if i > 0 || c.Docstring != "" {
				b.WriteString("\n")
			}
			writePythonFunc(b, m, "    ", true)
		}
	}
	for _, f := range u.Interface.Functions {
		b.WriteString("\n\n")
		writePythonFunc(b, f, "", false)
	}
	if u.TestPlan != nil {
		for _, tc := range append(append([]unit.TestCase(nil), u.TestPlan.UnitTests...), u.TestPlan.IntegrationTests...) {
			b.WriteString("\n\n")
			writePythonFunc(b, unit.Function{Name: "test_" + tc.Name, Docstring: tc.ExpectedBehavior}, "", false)
		}
	}
}

func writePythonFunc(b *strings.Builder, f unit.Function, indent string, method bool) {
	params := make([]string, 0, len(f.Params)+1)
	if method {
		params = append(params, "self")
	}
	for _, p := range f.Params {
		s := p.Name
		if p.Type != "" {
			s += ": " + p.Type
		}
		if p.Default != "" {
			s += " = " + p.Default
		}
		params = append(params, s)
	}
	ret := ""
	if f.ReturnType != "" {
		ret = " -> " + f.ReturnType
	}
	fmt.Fprintf(b, "%sdef %s(%s)%s:\n", indent, f.Name, strings.Join(params, ", "), ret)
	if f.Docstring != "" {
		fmt.Fprintf(b, "%s    \"\"\"%s\"\"\"\n", indent, f.Docstring)
	}
	fmt.Fprintf(b, "%s    pass\n", indent)
}

func renderRust(b *strings.Builder, u *unit.Unit) {
	fmt.Fprintf(b, "//! %s\n", header(u))
	for _, c := range u.Interface.Constants {
		fmt.Fprintf(b, "\npub const %s: %s = %s;\n", c.Name, orDefault(c.ValueType, "&str"), zeroValue("rust", orDefault(c.ValueType, "&str")))
	}
	for _, c := range u.Interface.Classes {
		if c.Docstring != "" {
			fmt.Fprintf(b, "\n/// %s", c.Docstring)
		}
		fmt.Fprintf(b, "\n#[derive(Debug, Default)]\npub struct %s;\n", c.Name)
		if len(c.Methods) > 0 {
			fmt.Fprintf(b, "\nimpl %s {\n", c.Name)
			for i, m := range c.Methods {
				if i > 0 {
					b.WriteString("\n")
				}
				writeRustFunc(b, m, "    ", true)
			}
			b.WriteString("}\n")
		}
	}
	for _, f := range u.Interface.Functions {
		b.WriteString("\n")
		writeRustFunc(b, f, "", false)
	}
}

func writeRustFunc(b *strings.Builder, f unit.Function, indent string, method bool) {
	params := make([]string, 0, len(f.Params)+1)
	if method {
		params = append(params, "&self")
	}
	for _, p := range f.Params {
		params = append(params, fmt.Sprintf("%s: %s", p.Name, orDefault(p.Type, "&str")))
	}
	ret := ""
	if f.ReturnType != "" {
		ret = " -> " + f.ReturnType
	}
	if f.Docstring != "" {
		fmt.Fprintf(b, "%s/// %s\n", indent, f.Docstring)
	}
	fmt.Fprintf(b, "%spub fn %s(%s)%s {\n", indent, f.Name, strings.Join(params, ", "), ret)
	fmt.Fprintf(b, "%s    todo!()\n", indent)
	fmt.Fprintf(b, "%s}\n", indent)
}

func renderScript(b *strings.Builder, u *unit.Unit, typed bool) {
	fmt.Fprintf(b, "/** %s */\n", header(u))
	lang := "javascript"
	if typed {
		lang = "typescript"
	}
	for _, c := range u.Interface.Constants {
		annotation := ""
		if typed && c.ValueType != "" {
			annotation = ": " + c.ValueType
		}
		fmt.Fprintf(b, "\nexport const %s%s = %s;\n", c.Name, annotation, zeroValue(lang, c.ValueType))
	}
	for _, c := range u.Interface.Classes {
		if c.Docstring != "" {
			fmt.Fprintf(b, "\n/** %s */", c.Docstring)
		}
		fmt.Fprintf(b, "\nexport class %s {\n", c.Name)
		for i, m := range c.Methods {
			if i > 0 {
				b.WriteString("\n")
			}
			writeScriptFunc(b, m, "  ", "", typed)
		}
		b.WriteString("}\n")
	}
	for _, f := range u.Interface.Functions {
		b.WriteString("\n")
		writeScriptFunc(b, f, "", "export function ", typed)
	}
}

func writeScriptFunc(b *strings.Builder, f unit.Function, indent, keyword string, typed bool) {
	params := make([]string, 0, len(f.Params))
	for _, p := range f.Params {
		s := p.Name
		if typed && p.Type != "" {
			s += ": " + p.Type
		}
		if p.Default != "" {
			s += " = " + p.Default
		}
		params = append(params, s)
	}
	ret := ""
	if typed && f.ReturnType != "" {
		ret = ": " + f.ReturnType
	}
	if f.Docstring != "" {
		fmt.Fprintf(b, "%s/** %s */\n", indent, f.Docstring)
	}
	fmt.Fprintf(b, "%s%s%s(%s)%s {\n", indent, keyword, f.Name, strings.Join(params, ", "), ret)
	fmt.Fprintf(b, "%s  throw new Error(\"TODO\");\n", indent)
	fmt.Fprintf(b, "%s}\n", indent)
}

func renderConfig(b *strings.Builder, u *unit.Unit) {
	fmt.Fprintf(b, "# %s\n", header(u))
	for _, c := range u.Interface.Constants {
		fmt.Fprintf(b, "%s = %s\n", c.Name, zeroValue("config", c.ValueType))
	}
}

func header(u *unit.Unit) string {
	if u.Description != "" {
		return fmt.Sprintf("%s: %s", u.ID, u.Description)
	}
	return string(u.ID)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// zeroValue picks a literal for a declared type name. Unknown types get the
// language's neutral value.
func zeroValue(language, typeName string) string {
	t := strings.ToLower(strings.TrimSpace(typeName))
	switch {
	case t == "bool" || t == "boolean":
		if language == "python" {
			return "False"
		}
		return "false"
	case t == "int" || t == "float" || t == "number" || isRustNumeric(t):
		return "0"
	case t == "str" || t == "string" || t == "&str" || t == "&'static str":
		return `""`
	}
	switch language {
	case "python":
		return "None"
	case "rust":
		return "Default::default()"
	case "config":
		return `""`
	default:
		return "undefined"
	}
}

func isRustNumeric(t string) bool {
	switch t {
	case "i8", "i16", "i32", "i64", "i128", "isize", "u8", "u16", "u32", "u64", "u128", "usize", "f32", "f64":
		return true
	}
	return false
}
