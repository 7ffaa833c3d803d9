package dictionary

import (
	"testing"

	"github.com/meikipop/meikipop-go/pkg/normalize"
)

func tagSet(tags ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		m[t] = struct{}{}
	}
	return m
}

func TestBuildIndexKeyInvariant(t *testing.T) {
	entries := []Entry{
		{
			Seq:        1,
			KanjiForms: []KanjiForm{{Surface: "食べる"}},
			Readings:   []Reading{{Reading: "たべる"}},
			Senses:     []Sense{{Gloss: []string{"to eat"}, POS: tagSet("v1")}},
		},
	}
	idx := BuildIndex(entries, nil)

	for key, refs := range idx.Keys {
		for _, ref := range refs {
			e := idx.Entry(ref)
			found := false
			for _, k := range e.KanjiForms {
				if normalize.Normalize(k.Surface) == key {
					found = true
				}
			}
			for _, r := range e.Readings {
				if normalize.Normalize(r.Reading) == key {
					found = true
				}
			}
			if !found {
				t.Errorf("key %q has a ref whose entry has no surface/reading normalizing to it", key)
			}
		}
	}
}

func TestBuildIndexInverseReadingExpansion(t *testing.T) {
	entries := []Entry{
		{
			Seq:        1,
			KanjiForms: []KanjiForm{{Surface: "明日"}, {Surface: "明日"}},
			Readings: []Reading{
				{Reading: "あした"},
				{Reading: "あす", Restrictions: map[string]struct{}{"明日": {}}},
			},
			Senses: []Sense{{Gloss: []string{"tomorrow"}, POS: tagSet("n")}},
		},
	}
	idx := BuildIndex(entries, nil)

	refs := idx.Lookup("明日")
	var sawInverse bool
	for _, r := range refs {
		if r.Kind == MatchedInverseReading {
			sawInverse = true
		}
	}
	if !sawInverse {
		t.Errorf("expected an inverse-reading ref for the restricted reading's surface; refs=%v", refs)
	}

	if refs := idx.Lookup("あす"); len(refs) == 0 {
		t.Errorf("expected restricted reading あす itself to still be a valid lookup key")
	}
}

func TestBuildIndexPrioritySort(t *testing.T) {
	entries := []Entry{
		{Seq: 1, KanjiForms: []KanjiForm{{Surface: "犬", Pri: tagSet("nf10")}}, Readings: []Reading{{Reading: "いぬ"}}, Senses: []Sense{{Gloss: []string{"dog"}}}},
		{Seq: 2, KanjiForms: []KanjiForm{{Surface: "犬", Pri: tagSet("spec1")}}, Readings: []Reading{{Reading: "けん"}}, Senses: []Sense{{Gloss: []string{"dog (alt)"}}}},
	}
	idx := BuildIndex(entries, nil)
	refs := idx.Lookup("犬")
	if len(refs) != 2 {
		t.Fatalf("expected 2 refs for 犬, got %d", len(refs))
	}
	if refs[0].Priority < refs[1].Priority {
		t.Errorf("expected refs sorted by priority descending, got %v", refs)
	}
}
