package validator

// Registry maps rule keys to Rule implementations.
type Registry struct {
	rules []Rule
	byKey map[string]Rule
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{byKey: make(map[string]Rule)}
}

// Register adds a rule to the registry, preserving registration order.
func (r *Registry) Register(rule Rule) {
	if _, ok := r.byKey[rule.RuleKey()]; ok {
		return
	}
	r.byKey[rule.RuleKey()] = rule
	r.rules = append(r.rules, rule)
}

// Get returns the rule for a given key, or nil if not found.
func (r *Registry) Get(key string) Rule {
	return r.byKey[key]
}

// All returns registered rules in registration order.
func (r *Registry) All() []Rule {
	return r.rules
}
