package menu

// Conditions is a boolean expression gating a menu item or input option.
type Conditions struct {
	Match Match
	Rules []Rule
}

// Shorthand returns the conditions equivalent to the bare feature name
// shorthand: all of [feature enabled].
func Shorthand(feature string) *Conditions {
	return &Conditions{
		Match: MatchAll,
		Rules: []Rule{FeatureRule{Feature: feature}},
	}
}

// Rule is one term of a [Conditions] expression. The set of implementations
// is closed: [FeatureRule], [ValueRule], and [RuleGroup].
type Rule interface {
	rule()
}

// FeatureRule holds when the named feature is enabled.
type FeatureRule struct {
	Feature string
}

// ValueRule holds when the named variable equals Value.
type ValueRule struct {
	Variable string
	Value    string
}

// RuleGroup is a nested expression with its own match mode.
type RuleGroup struct {
	Match Match
	Rules []Rule
}

func (FeatureRule) rule() {}
func (ValueRule) rule()   {}
func (RuleGroup) rule()   {}

// Group returns the conditions as a rule group, which makes the top level
// and nested groups walkable the same way.
func (c *Conditions) Group() RuleGroup {
	if c == nil {
		return RuleGroup{}
	}

	return RuleGroup{Match: c.Match, Rules: c.Rules}
}

// Features returns the names of all features referenced anywhere in c, in
// first-appearance order without duplicates.
func (c *Conditions) Features() []string {
	var (
		names []string
		seen  = map[string]bool{}
		visit func([]Rule)
	)

	visit = func(rules []Rule) {
		for _, r := range rules {
			switch r := r.(type) {
			case FeatureRule:
				if !seen[r.Feature] {
					seen[r.Feature] = true
					names = append(names, r.Feature)
				}

			case ValueRule:

			case RuleGroup:
				visit(r.Rules)
			}
		}
	}

	if c != nil {
		visit(c.Rules)
	}

	return names
}
