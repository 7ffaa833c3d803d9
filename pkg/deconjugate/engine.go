package deconjugate

import (
	"fmt"
	"strings"
)

// Engine holds a bound rule table and its context predicate registry, ready
// to deconjugate query strings (spec §4.4).
type Engine struct {
	rules      []Rule
	predicates map[string]ContextPredicate
}

// NewEngine builds an Engine from a parsed rule table, validating that
// every contextrule names a predicate in the closed registry. Returns an
// error (fatal at startup per spec §7) on an unknown predicate name.
func NewEngine(rules []Rule) (*Engine, error) {
	predicates := defaultContextPredicates()
	for _, r := range rules {
		if r.Kind != ContextRule {
			continue
		}
		if _, ok := predicates[r.ContextName]; !ok {
			return nil, fmt.Errorf("deconjugate: unknown context predicate %q (rule %q)", r.ContextName, r.Detail)
		}
	}
	return &Engine{rules: rules, predicates: predicates}, nil
}

// Deconjugate expands q to the set of reachable DeconjugationForms (spec
// §4.4). The input itself is always included as the identity form. The
// search runs to a fixed point (no rule produces a new form); spec's
// invariant that surface never repeats within seen_text makes this
// terminate. Forms whose most recently applied rule is a neverfinalrule are
// excluded from the returned set (though they may have contributed
// descendants during the search).
func (e *Engine) Deconjugate(q string) []Form {
	identity := identityForm(q)

	allForms := []Form{identity}
	workQueue := []Form{identity}

	// Track which of allForms' most-recent rule was a neverfinalrule, by
	// parallel index, so the final output filter (spec §4.4 "Output
	// filter") can exclude them without re-deriving that information.
	excludedFromOutput := []bool{false}

	for len(workQueue) > 0 {
		current := workQueue[0]
		workQueue = workQueue[1:]

		for _, rule := range e.rules {
			children := e.applyRule(rule, current)
			for _, child := range children {
				if _, seen := current.SeenText[child.Surface]; seen {
					continue
				}
				allForms = append(allForms, child)
				excludedFromOutput = append(excludedFromOutput, rule.Kind == NeverFinalRule)
				workQueue = append(workQueue, child)
			}
		}
	}

	result := make([]Form, 0, len(allForms))
	for i, f := range allForms {
		if excludedFromOutput[i] {
			continue
		}
		result = append(result, f)
	}
	return result
}

// applyRule returns the zero or more children produced by applying rule to
// parent, across all of rule's parallel alternatives.
func (e *Engine) applyRule(rule Rule, parent Form) []Form {
	var children []Form
	for i := range rule.DecEnd {
		child, ok := e.applyAlternative(rule, i, parent)
		if !ok {
			continue
		}
		children = append(children, child)
	}
	return children
}

// applyAlternative applies the i-th parallel alternative of rule to parent,
// implementing the per-kind semantics of spec §4.4.
func (e *Engine) applyAlternative(rule Rule, i int, parent Form) (Form, bool) {
	decEnd := rule.DecEnd[i]
	conEnd := rule.ConEnd[i]
	decTag := rule.DecTag[i]
	conTag := rule.ConTag[i]

	if rule.Kind == OnlyFinalRule && len(parent.Process) != 0 {
		return Form{}, false
	}

	if !tagMatches(decTag, parent) {
		return Form{}, false
	}

	var newSurface string
	switch rule.Kind {
	case RewriteRule:
		if parent.Surface != decEnd {
			return Form{}, false
		}
		newSurface = conEnd
	default:
		if !strings.HasSuffix(parent.Surface, decEnd) {
			return Form{}, false
		}
		newSurface = strings.TrimSuffix(parent.Surface, decEnd) + conEnd
	}

	if rule.Kind == ContextRule {
		pred := e.predicates[rule.ContextName]
		if pred == nil || !pred(newSurface) {
			return Form{}, false
		}
	}

	child := parent.clone()
	child.Surface = newSurface
	child.Underlying = newSurface
	if conTag != "" {
		child.Tags = append(child.Tags, conTag)
	}
	child.Process = append(child.Process, rule.Detail)
	child.SeenText[newSurface] = struct{}{}

	return child, true
}

// tagMatches implements spec §4.4's matching rule: an "initial" alternative
// (empty decTag) applies only to still-unconjugated forms (no tags yet);
// otherwise decTag must equal the parent's most recently pushed tag.
func tagMatches(decTag string, parent Form) bool {
	if decTag == "" {
		return len(parent.Tags) == 0
	}
	return parent.FinalTag() == decTag
}
