package registry

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/specialistvlad/axiomgrid/internal/policy"
	"github.com/specialistvlad/axiomgrid/internal/validation"
)

// Module is the interface that all checker modules implement to be registered.
type Module interface {
	Register(r *Registry)
}

// Checker performs the language-specific stages of validation. Both methods
// must be pure functions of their inputs.
type Checker interface {
	// Language is the canonical language name.
	Language() string
	// Aliases are alternative names resolving to this checker.
	Aliases() []string
	// CheckStructure runs the structural stage: delimiters, indentation,
	// forbidden constructs, language-specific markers.
	CheckStructure(code string, p *policy.Policy) []validation.Finding
	// CheckBodies runs the empty-body stage.
	CheckBodies(code string, p *policy.Policy) []validation.Finding
}

// Registry holds the registered checkers for a single application instance.
type Registry struct {
	checkers map[string]Checker // Key: canonical language
	aliases  map[string]string  // Key: alias or canonical name, Value: canonical
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		checkers: make(map[string]Checker),
		aliases:  make(map[string]string),
	}
}

// NewWithModules creates a registry and registers every module in order.
func NewWithModules(modules ...Module) *Registry {
	r := New()
	for _, m := range modules {
		m.Register(r)
	}
	return r
}

// RegisterChecker adds a checker. Registering a name twice is a programming
// error and panics.
func (r *Registry) RegisterChecker(c Checker) {
	lang := strings.ToLower(c.Language())
	if _, exists := r.checkers[lang]; exists {
		panic(fmt.Sprintf("checker for language '%s' already registered", lang))
	}
	names := append([]string{lang}, c.Aliases()...)
	for _, name := range names {
		name = strings.ToLower(name)
		if owner, exists := r.aliases[name]; exists {
			panic(fmt.Sprintf("language name '%s' already registered by '%s'", name, owner))
		}
	}
	slog.Debug("Registering language checker.", "language", lang, "aliases", c.Aliases())
	r.checkers[lang] = c
	for _, name := range names {
		r.aliases[strings.ToLower(name)] = lang
	}
}

// Resolve returns the canonical language for a name or alias.
func (r *Registry) Resolve(language string) (string, bool) {
	lang, ok := r.aliases[strings.ToLower(strings.TrimSpace(language))]
	return lang, ok
}

// Lookup returns the checker for a language name or alias.
func (r *Registry) Lookup(language string) (Checker, bool) {
	lang, ok := r.Resolve(language)
	if !ok {
		return nil, false
	}
	return r.checkers[lang], true
}

// Languages lists the canonical languages, sorted.
func (r *Registry) Languages() []string {
	langs := make([]string, 0, len(r.checkers))
	for l := range r.checkers {
		langs = append(langs, l)
	}
	sort.Strings(langs)
	return langs
}

// Validate checks that every language carrying grammar rules in p has a
// registered checker. Rules for an unchecked language would silently do
// nothing.
func (r *Registry) Validate(p *policy.Policy) error {
	var missing []string
	for _, lang := range p.Languages() {
		if _, ok := r.Lookup(lang); !ok {
			missing = append(missing, lang)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("grammar rules declared for languages without a checker: %s", strings.Join(missing, ", "))
	}
	return nil
}
