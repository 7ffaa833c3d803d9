// Package hitscan implements the hit-scan stage (spec §4.3): given a cursor
// position in normalized coordinates, locate the exact character under it
// within a set of paragraphs and produce the suffix string from that
// character onward along the paragraph's reading direction.
package hitscan

import (
	"unicode/utf8"

	"github.com/meikipop/meikipop-go/pkg/textmodel"
)

// Hit is the result of a successful hit-scan.
type Hit struct {
	ParagraphIndex   int
	StartingWordIndex int
	SuffixText        string
	IsVertical        bool
}

// Scan finds the paragraph under (x, y), the word under the cursor within
// it, and the reading-order suffix starting at the exact character the
// cursor falls on, up to maxLength characters. Returns (nil, false) when the
// cursor misses every paragraph/word or maxLength <= 0 (spec §8 boundary:
// max_lookup_length = 0 causes hit-scan to return nothing).
func Scan(paragraphs []textmodel.Paragraph, x, y float64, maxLength int) (*Hit, bool) {
	if maxLength <= 0 {
		return nil, false
	}

	paraIdx, ok := findContainingParagraph(paragraphs, x, y)
	if !ok {
		return nil, false
	}
	para := paragraphs[paraIdx]

	wordIdx, charOffset, ok := findContainingWord(para, x, y)
	if !ok {
		return nil, false
	}

	suffix := buildSuffix(para.Words, wordIdx, charOffset, maxLength)
	if suffix == "" {
		return nil, false
	}

	return &Hit{
		ParagraphIndex:    paraIdx,
		StartingWordIndex: wordIdx,
		SuffixText:        suffix,
		IsVertical:        para.IsVertical,
	}, true
}

// findContainingParagraph returns the index of the smallest-area paragraph
// whose box contains (x, y); overlaps are resolved by picking the smallest
// area, per spec §4.3.
func findContainingParagraph(paragraphs []textmodel.Paragraph, x, y float64) (int, bool) {
	best := -1
	bestArea := 0.0
	for i, p := range paragraphs {
		if !p.Box.Contains(x, y) {
			continue
		}
		area := p.Box.Area()
		if best == -1 || area < bestArea {
			best = i
			bestArea = area
		}
	}
	if best == -1 {
		return 0, false
	}
	return best, true
}

// findContainingWord returns the index of the first word (in paragraph
// order) whose box contains (x, y), plus the character offset within that
// word's text derived by linear interpolation along the reading axis (spec
// §4.3's per-character granularity requirement for multi-character words).
func findContainingWord(p textmodel.Paragraph, x, y float64) (wordIdx int, charOffset int, ok bool) {
	for i, w := range p.Words {
		if !w.Box.Contains(x, y) {
			continue
		}
		return i, interpolateCharOffset(w, x, y, p.IsVertical), true
	}
	return 0, 0, false
}

// interpolateCharOffset estimates which character within w.Text the cursor
// falls on by linearly interpolating the cursor's position within the
// word's box along the reading axis. Single-character words trivially
// return 0.
func interpolateCharOffset(w textmodel.Word, x, y float64, vertical bool) int {
	n := utf8.RuneCountInString(w.Text)
	if n <= 1 {
		return 0
	}

	var frac float64
	if vertical {
		if w.Box.Height <= 0 {
			return 0
		}
		frac = (y - w.Box.Top()) / w.Box.Height
	} else {
		if w.Box.Width <= 0 {
			return 0
		}
		frac = (x - w.Box.Left()) / w.Box.Width
	}
	if frac < 0 {
		frac = 0
	}
	if frac >= 1 {
		frac = 0.999999
	}

	offset := int(frac * float64(n))
	if offset >= n {
		offset = n - 1
	}
	return offset
}

// buildSuffix concatenates the starting word's text (from charOffset
// onward) with successor words' text, in reading order, up to maxLength
// characters.
func buildSuffix(words []textmodel.Word, startWord, charOffset, maxLength int) string {
	out := make([]rune, 0, maxLength)

	firstRunes := []rune(words[startWord].Text)
	if charOffset < len(firstRunes) {
		out = append(out, firstRunes[charOffset:]...)
	}

	for i := startWord + 1; i < len(words) && len(out) < maxLength; i++ {
		out = append(out, []rune(words[i].Text)...)
	}

	if len(out) > maxLength {
		out = out[:maxLength]
	}
	return string(out)
}
