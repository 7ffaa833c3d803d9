package dictionary

import (
	"sort"

	"github.com/meikipop/meikipop-go/pkg/normalize"
)

// Index is the immutable, in-memory DictIndex (spec §3): a map from
// normalized lookup key to a priority-sorted sequence of EntryRefs, plus
// the backing entry table. Built once by pkg/dictbuild, loaded at startup,
// and never mutated thereafter (spec §3 Lifecycles).
type Index struct {
	Entries []Entry
	Keys    map[string][]EntryRef
}

// Lookup returns the EntryRefs registered under the normalized form of key,
// or nil if key has no entries.
func (idx *Index) Lookup(key string) []EntryRef {
	return idx.Keys[normalize.Normalize(key)]
}

// Entry resolves an EntryRef back to its backing Entry.
func (idx *Index) Entry(ref EntryRef) Entry {
	return idx.Entries[ref.EntryIndex]
}

// BuildIndex constructs a DictIndex from a validated entry table and the
// supplemental priority weights (spec §4.6 step 4). For each entry: a key is
// added for every normalized kanji-form surface and every normalized
// reading. Inverse-reading expansion (spec §4.5): when a reading restricts
// itself to specific kanji-form surfaces (an irregular/idiosyncratic
// reading), an additional MatchedInverseReading key is registered for each
// restricted surface, so that surface's lookup result set carries an
// explicit marker of which reading it is bound to (as opposed to the
// ordinary MatchedKanji ref every surface already gets), letting a
// validator downstream tell a regular kanji match from a reading-restricted
// one. Multiple entries sharing a key are stably resorted by PriorityScore
// descending (ties keep insertion order, which is entry-sequence order
// since pkg/dictbuild walks entries in file order).
func BuildIndex(entries []Entry, supplemental map[string]int) *Index {
	idx := &Index{
		Entries: entries,
		Keys:    make(map[string][]EntryRef),
	}

	for i, e := range entries {
		score := ScoreEntry(e, supplemental)

		for _, k := range e.KanjiForms {
			key := normalize.Normalize(k.Surface)
			idx.Keys[key] = append(idx.Keys[key], EntryRef{EntryIndex: i, Kind: MatchedKanji, Priority: score})
		}

		for _, r := range e.Readings {
			key := normalize.Normalize(r.Reading)
			idx.Keys[key] = append(idx.Keys[key], EntryRef{EntryIndex: i, Kind: MatchedReading, Priority: score})

			if len(r.Restrictions) > 0 {
				for surface := range r.Restrictions {
					skey := normalize.Normalize(surface)
					idx.Keys[skey] = append(idx.Keys[skey], EntryRef{EntryIndex: i, Kind: MatchedInverseReading, Priority: score})
				}
			}
		}
	}

	for key, refs := range idx.Keys {
		sort.SliceStable(refs, func(a, b int) bool {
			return refs[a].Priority > refs[b].Priority
		})
		idx.Keys[key] = refs
	}

	return idx
}
