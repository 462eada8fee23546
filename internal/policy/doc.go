// Package policy declares what a clean artifact must avoid and how generators
// are told about it.
//
// A Policy is a value, not a process. It carries the banned phrases scanned by
// the validator, per-language grammar rules, and the guidance text that
// PromptSuffix renders for generation requests. Both sides read the same
// BannedTokens table, so the instruction a generator receives and the check
// the validator applies cannot drift apart.
package policy
