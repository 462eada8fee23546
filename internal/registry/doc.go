// Package registry provides the central "glue" for the language checker
// modules.
//
// The Registry maps language names (and aliases such as "py" or "ts") to the
// compiled Checker that performs that language's structural checks. Modules
// register themselves through the Module interface at startup, and the
// registry is then validated against the active policy so that no grammar rule
// is declared for a language nothing checks.
package registry
