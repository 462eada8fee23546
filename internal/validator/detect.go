package validator

import "strings"

// DetectLanguage guesses the language of a snippet from its leading
// keywords. It returns "unknown" when nothing matches. Used only to label
// code fences when the declared language is missing.
func DetectLanguage(code string) string {
	switch {
	case containsAny(code, "fn ", "impl ", "struct "):
		return "rust"
	case containsAny(code, "def ", "import ", "class "):
		return "python"
	case containsAny(code, "function ", "const ", "let "):
		return "javascript"
	default:
		return "unknown"
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
