package dictionary

import (
	"sort"

	"github.com/meikipop/meikipop-go/pkg/deconjugate"
	"github.com/meikipop/meikipop-go/pkg/normalize"
)

// MaxDictEntries truncates the lookup engine's output (spec §4.5).
const MaxDictEntries = 20

// Match is one ranked lookup result (spec §4.5). Priority is the entry's
// PriorityScore as computed at index-build time (including the
// priority.json supplemental weight), carried through from the EntryRef
// that produced this match so sorting doesn't need to re-derive it.
type Match struct {
	Entry                Entry
	MatchedForm          string
	MatchedLength        int
	DeconjugationProcess []string
	Priority             PriorityScore
}

// Lookup implements the longest-match, POS-validated dictionary lookup
// engine (spec §4.5) over suffix s produced by hit-scan. For each prefix
// length n from len(s) down to 1, the deconjugator is consulted on the
// prefix; candidates are validated against idx and collected; as soon as
// any length yields validated matches, shorter prefixes are not considered
// (longest match wins). Ties are broken by PriorityScore descending, then
// shorter deconjugation_process chain ascending, then entry sequence number
// ascending, truncated to MaxDictEntries.
func Lookup(idx *Index, eng *deconjugate.Engine, s string) []Match {
	runes := []rune(s)
	for n := len(runes); n >= 1; n-- {
		prefix := string(runes[:n])
		matches := dedupeByEntry(matchesAtLength(idx, eng, prefix, n))
		if len(matches) > 0 {
			return sortAndTruncate(matches)
		}
	}
	return nil
}

// matchesAtLength deconjugates prefix and validates every candidate against
// idx, returning every entry that survives POS validation at this prefix
// length.
func matchesAtLength(idx *Index, eng *deconjugate.Engine, prefix string, n int) []Match {
	var matches []Match
	for _, candidate := range eng.Deconjugate(prefix) {
		refs := idx.Lookup(normalize.Normalize(candidate.Underlying))
		for _, ref := range refs {
			entry := idx.Entry(ref)
			if !posValidates(candidate, entry) {
				continue
			}
			matches = append(matches, Match{
				Entry:                entry,
				MatchedForm:          candidate.Underlying,
				MatchedLength:        n,
				DeconjugationProcess: candidate.Process,
				Priority:             ref.Priority,
			})
		}
	}
	return matches
}

// dedupeByEntry collapses multiple matches against the same dictionary
// entry (e.g. the identity candidate and a conjugated candidate both
// resolving to it) to the one with the shortest deconjugation process,
// since "ranked entries" (spec §4.5) implies one ranked result per entry.
func dedupeByEntry(matches []Match) []Match {
	best := make(map[int]Match, len(matches))
	order := make([]int, 0, len(matches))
	for _, m := range matches {
		seq := m.Entry.Seq
		if existing, ok := best[seq]; !ok {
			best[seq] = m
			order = append(order, seq)
		} else if len(m.DeconjugationProcess) < len(existing.DeconjugationProcess) {
			best[seq] = m
		}
	}
	out := make([]Match, 0, len(order))
	for _, seq := range order {
		out = append(out, best[seq])
	}
	return out
}

// posValidates implements spec §4.5 step 2: the identity candidate (no
// conjugation applied) requires no POS validation; a conjugated candidate's
// final tag must appear in at least one of the entry's senses' POS sets.
func posValidates(candidate deconjugate.Form, entry Entry) bool {
	if len(candidate.Tags) == 0 {
		return true
	}
	return entry.HasSenseWithPOS(candidate.FinalTag())
}

// sortAndTruncate applies spec §4.5 step 4's total order and MaxDictEntries
// cap.
func sortAndTruncate(matches []Match) []Match {
	sort.SliceStable(matches, func(i, j int) bool {
		a, b := matches[i], matches[j]
		if a.Priority != b.Priority {
			return a.Priority > b.Priority
		}
		if len(a.DeconjugationProcess) != len(b.DeconjugationProcess) {
			return len(a.DeconjugationProcess) < len(b.DeconjugationProcess)
		}
		return a.Entry.Seq < b.Entry.Seq
	})
	if len(matches) > MaxDictEntries {
		matches = matches[:MaxDictEntries]
	}
	return matches
}
