package rules

import (
	"sort"
	"sync"
)

// globalRegistry is the single global registry for manifest lint rules.
var globalRegistry = &Registry{
	rules: make(map[string]RuleDef),
}

// Registry stores registered manifest lint rules for discovery.
type Registry struct {
	mu    sync.RWMutex
	rules map[string]RuleDef // keyed by ID
}

// RuleDef is a manifest rule definition.
type RuleDef struct {
	ID          string   // Unique identifier, e.g., "MD01"
	Name        string   // Human-readable name, e.g., "missing-upper-bound"
	Group       string   // Category: "deps", "metadata", "structure", "testing", "lintcfg"
	Description string   // Human-readable description
	Severity    Severity // Default severity
	Check       Check    // The check function

	// Rationale documents why the rule exists and what it prevents.
	Rationale string
}

// Check is the function signature for manifest rule checks.
type Check func(ctx *Context) []Diagnostic

// Register adds a rule to the global registry.
// Call this from init() functions in rule packages.
func Register(rule RuleDef) {
	globalRegistry.mu.Lock()
	defer globalRegistry.mu.Unlock()
	globalRegistry.rules[rule.ID] = rule
}

// GetAll returns all registered rules, sorted by ID.
func GetAll() []RuleDef {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()

	rules := make([]RuleDef, 0, len(globalRegistry.rules))
	for _, rule := range globalRegistry.rules {
		rules = append(rules, rule)
	}
	sort.Slice(rules, func(i, j int) bool { return rules[i].ID < rules[j].ID })
	return rules
}

// GetByID returns a rule by its ID.
func GetByID(id string) (RuleDef, bool) {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()
	rule, ok := globalRegistry.rules[id]
	return rule, ok
}

// GetByGroup returns all rules in a specific group, sorted by ID.
func GetByGroup(group string) []RuleDef {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()

	var rules []RuleDef
	for _, rule := range globalRegistry.rules {
		if rule.Group == group {
			rules = append(rules, rule)
		}
	}
	sort.Slice(rules, func(i, j int) bool { return rules[i].ID < rules[j].ID })
	return rules
}

// Groups returns the distinct rule groups, sorted.
func Groups() []string {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()

	seen := make(map[string]bool)
	for _, rule := range globalRegistry.rules {
		seen[rule.Group] = true
	}
	groups := make([]string, 0, len(seen))
	for g := range seen {
		groups = append(groups, g)
	}
	sort.Strings(groups)
	return groups
}

// KnownCode reports whether a code or code prefix matches at least one
// registered rule. Used to validate the manifest's select/ignore lists.
func KnownCode(code string) bool {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()

	for id := range globalRegistry.rules {
		if matchesCode(id, code) {
			return true
		}
	}
	return false
}

// Count returns the number of registered rules.
func Count() int {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()
	return len(globalRegistry.rules)
}

// Clear removes all registered rules. Used for testing.
func Clear() {
	globalRegistry.mu.Lock()
	defer globalRegistry.mu.Unlock()
	globalRegistry.rules = make(map[string]RuleDef)
}
