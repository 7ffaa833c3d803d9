package dictionary

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
)

// JMdict priority-tag weights (spec §4.6 step 3). "spec1"/"spec2" mark
// entries the JMdict editors consider especially common; "news1", "ichi1",
// "gai1" mark membership in other well-known frequency lists; "nf01".."nf48"
// encode a frequency band (nf01 = most common) derived from the original
// newspaper corpus, so lower band numbers score higher.
const (
	weightSpec1 = 200
	weightSpec2 = 150
	weightTier1 = 100 // news1, ichi1, gai1
	weightTier2 = 40  // news2, ichi2, gai2
	nfBandMax   = 100 // nf01 scores nfBandMax, nf48 scores nfBandMax-47
)

var nfPattern = regexp.MustCompile(`^nf(\d{2})$`)

// tagWeight returns the score contribution of a single JMdict priority tag.
func tagWeight(tag string) int {
	switch tag {
	case "spec1":
		return weightSpec1
	case "spec2":
		return weightSpec2
	case "news1", "ichi1", "gai1":
		return weightTier1
	case "news2", "ichi2", "gai2":
		return weightTier2
	}
	if m := nfPattern.FindStringSubmatch(tag); m != nil {
		band, err := strconv.Atoi(m[1])
		if err != nil {
			return 0
		}
		score := nfBandMax - (band - 1)
		if score < 0 {
			return 0
		}
		return score
	}
	return 0
}

// scoreTagSet sums tagWeight over a set of priority tags.
func scoreTagSet(tags map[string]struct{}) int {
	total := 0
	for tag := range tags {
		total += tagWeight(tag)
	}
	return total
}

// ScoreEntry computes an entry's PriorityScore (spec §4.6 step 3): the sum
// of every kanji-form and reading's JMdict priority tag weights, plus the
// priority.json weight of every kanji-form surface and every reading that
// has one.
func ScoreEntry(e Entry, supplemental map[string]int) PriorityScore {
	total := 0
	for _, k := range e.KanjiForms {
		total += scoreTagSet(k.Pri)
		total += supplemental[k.Surface]
	}
	for _, r := range e.Readings {
		total += scoreTagSet(r.Pri)
		total += supplemental[r.Reading]
	}
	return PriorityScore(total)
}

// LoadPriorityJSON parses a priority.json mapping (surface or reading ->
// integer weight), spec §6.
func LoadPriorityJSON(data []byte) (map[string]int, error) {
	var m map[string]int
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("dictionary: parse priority json: %w", err)
	}
	return m, nil
}
