package deconjugate

import "strings"

// ContextPredicate tests whether a rule may apply given the candidate
// derived surface. Predicates form a small closed set named by data (spec
// §4.4); v1inftrap is the only one named explicitly in the source spec, so
// it is the only one implemented here. Unknown predicate names fail rule
// loading (spec §7: deconjugator rule error during loading is fatal).
type ContextPredicate func(derivedSurface string) bool

// ichidanStemEndings lists the ichidan (v1) verb stem vowel-endings that are
// legal: an ichidan stem must end in an "i" or "e" row kana. v1inftrap
// rejects derivations that would produce a stem outside this set. Godan
// (v5) -masu stems also end in an "i" row kana, so they pass this check.
var ichidanStemEndings = []string{
	"い", "き", "ぎ", "し", "じ", "ち", "に", "ひ", "び", "ぴ", "み", "り",
	"え", "け", "げ", "せ", "ぜ", "て", "で", "ね", "へ", "べ", "ぺ", "め", "れ",
}

// defaultContextPredicates is the closed registry of named context
// predicates a contextrule may reference.
func defaultContextPredicates() map[string]ContextPredicate {
	return map[string]ContextPredicate{
		"v1inftrap": v1InfTrap,
	}
}

// v1InfTrap rejects a derived surface that does not end in a legal ichidan
// stem vowel, i.e. it traps (rejects) spurious derivations rather than
// accepting legitimate ones.
func v1InfTrap(derivedSurface string) bool {
	if derivedSurface == "" {
		return false
	}
	for _, ending := range ichidanStemEndings {
		if strings.HasSuffix(derivedSurface, ending) {
			return true
		}
	}
	return false
}
