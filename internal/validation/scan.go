package validation

import "strings"

// Lines splits code into lines without trailing carriage returns.
func Lines(code string) []string {
	lines := strings.Split(code, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// ScanPhrases reports every line containing one of phrases. Lines are
// visited in order and, within a line, phrases in the order given, so the
// result is deterministic. message receives the matched phrase.
func ScanPhrases(code string, phrases []string, foldCase bool, severity Severity, category Category, message func(phrase string) string) []Finding {
	var findings []Finding
	needles := phrases
	if foldCase {
		needles = make([]string, len(phrases))
		for i, p := range phrases {
			needles[i] = strings.ToLower(p)
		}
	}

	for i, line := range Lines(code) {
		haystack := line
		if foldCase {
			haystack = strings.ToLower(line)
		}
		for j, needle := range needles {
			if needle == "" {
				continue
			}
			col := strings.Index(haystack, needle)
			if col < 0 {
				continue
			}
			findings = append(findings, Finding{
				Severity: severity,
				Category: category,
				Message:  message(phrases[j]),
				Line:     i + 1,
				Column:   col + 1,
				Match:    phrases[j],
			})
		}
	}
	return findings
}
