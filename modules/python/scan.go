package python

import "strings"

// line is one source line with string contents blanked and comments removed,
// so delimiter and colon checks never look inside literals.
type line struct {
	num    int    // 1-based
	raw    string // original text
	code   string // code-only text
	indent int    // leading whitespace width, tabs to the next multiple of 8
	// depth is the bracket depth at the end of the line, floored at zero.
	depth int
	// inString is true when the line starts inside a triple-quoted string.
	inString bool
}

// empty reports whether the line is blank or comment-only.
func (l line) empty() bool {
	return strings.TrimSpace(l.code) == ""
}

// stringOnly reports whether the line holds nothing but string literal
// content, such as a one-line docstring.
func (l line) stringOnly() bool {
	return !l.empty() && strings.Trim(l.code, " \t\"'") == ""
}

// scan splits Python source into lines and tracks string and comment state
// across them.
func scan(code string) []line {
	rawLines := strings.Split(code, "\n")
	out := make([]line, 0, len(rawLines))

	triple := "" // active triple-quote delimiter, if any
	depth := 0
	for i, raw := range rawLines {
		raw = strings.TrimSuffix(raw, "\r")
		l := line{num: i + 1, raw: raw, indent: indentWidth(raw), inString: triple != ""}

		var b strings.Builder
		single := byte(0) // active single-line quote, if any
		for j := 0; j < len(raw); j++ {
			c := raw[j]
			switch {
			case triple != "":
				if strings.HasPrefix(raw[j:], triple) {
					b.WriteString(triple)
					j += len(triple) - 1
					triple = ""
				} else {
					b.WriteByte(' ')
				}
			case single != 0:
				if c == '\\' && j+1 < len(raw) {
					b.WriteString("  ")
					j++
				} else if c == single {
					b.WriteByte(c)
					single = 0
				} else {
					b.WriteByte(' ')
				}
			case c == '#':
				j = len(raw)
			case c == '"' || c == '\'':
				q := raw[j : j+1]
				if strings.HasPrefix(raw[j:], q+q+q) {
					triple = q + q + q
					b.WriteString(triple)
					j += 2
				} else {
					single = c
					b.WriteByte(c)
				}
			default:
				switch c {
				case '(', '[', '{':
					depth++
				case ')', ']', '}':
					if depth > 0 {
						depth--
					}
				}
				b.WriteByte(c)
			}
		}
		l.code = strings.TrimRight(b.String(), " \t")
		l.depth = depth
		out = append(out, l)
	}
	return out
}

func indentWidth(s string) int {
	w := 0
	for _, c := range s {
		switch c {
		case ' ':
			w++
		case '\t':
			w += 8 - w%8
		default:
			return w
		}
	}
	return w
}
