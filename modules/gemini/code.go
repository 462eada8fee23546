package gemini

import (
	"regexp"
	"strings"
)

var fenceRegex = regexp.MustCompile("(?s)```[A-Za-z0-9_+-]*[ \t]*\n(.*?)\n?```")

// ExtractCode returns the body of the first fenced block in text, or the
// trimmed text when there is none. A trailing newline is always present.
func ExtractCode(text string) string {
	code := text
	if m := fenceRegex.FindStringSubmatch(text); m != nil {
		code = m[1]
	}
	code = strings.Trim(code, "\n")
	if strings.TrimSpace(code) == "" {
		return ""
	}
	return code + "\n"
}
