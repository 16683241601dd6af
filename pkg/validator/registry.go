package validator

import (
	"fmt"
	"maps"
	"regexp"
	"slices"
	"sync"
)

var ruleNameRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Registry maps rule names to rule functions. It is safe for concurrent use;
// registration normally happens at startup but may race with lookups.
type Registry struct {
	mu    sync.RWMutex
	rules map[string]RuleFunc
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{rules: make(map[string]RuleFunc)}
}

// Register adds or replaces a rule. The last registration for a name wins.
// Panics on an invalid name or nil function: a broken rule table is a
// startup-time programming error.
func (r *Registry) Register(name string, fn RuleFunc) {
	if !ruleNameRegex.MatchString(name) {
		panic(fmt.Errorf("validator: invalid rule name %q: must match %s", name, ruleNameRegex))
	}
	if fn == nil {
		panic(fmt.Errorf("validator: rule %q has nil function", name))
	}

	r.mu.Lock()
	r.rules[name] = fn
	r.mu.Unlock()
}

// Lookup returns the rule registered under name.
func (r *Registry) Lookup(name string) (RuleFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.rules[name]
	return fn, ok
}

// Has reports whether a rule is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.Lookup(name)
	return ok
}

// Names returns registered rule names in lexical order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.rules))
}

// Clone returns an independent copy of the registry.
func (r *Registry) Clone() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return &Registry{rules: maps.Clone(r.rules)}
}

var (
	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
)

// DefaultRegistry returns the process-wide registry, pre-populated with the
// built-in rules.
func DefaultRegistry() *Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = NewRegistry()
		RegisterBuiltins(defaultRegistry)
	})
	return defaultRegistry
}

// RegisterRule adds a rule to the default registry.
func RegisterRule(name string, fn RuleFunc) {
	DefaultRegistry().Register(name, fn)
}

// DefineRule is an alias of RegisterRule.
func DefineRule(name string, fn RuleFunc) {
	RegisterRule(name, fn)
}
