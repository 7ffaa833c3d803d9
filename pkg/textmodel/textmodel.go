// Package textmodel holds the OCR output data model: words grouped into
// paragraphs, the unit the hit-scan and OCR post-processing stages operate
// on.
package textmodel

import (
	"strings"

	"github.com/meikipop/meikipop-go/pkg/geometry"
)

// Word is a single recognized unit of text: either one character (as the
// meikiocr provider yields) or a sub-line segment (as Google Lens yields).
type Word struct {
	Text      string
	Separator string
	Box       geometry.Box
}

// Paragraph is a coherent text block: an ordered sequence of words plus the
// reading direction and the union of their boxes.
type Paragraph struct {
	FullText   string
	Words      []Word
	Box        geometry.Box
	IsVertical bool
}

// OcrResult is the ordered set of paragraphs produced by one OCR cycle.
type OcrResult []Paragraph

// BuildFullText concatenates word.Text+word.Separator across words and
// trims the result, satisfying the invariant in spec §8: concatenating
// p.Words[i].Text + p.Words[i].Separator across i and trimming reproduces
// p.FullText.
func BuildFullText(words []Word) string {
	var b strings.Builder
	for _, w := range words {
		b.WriteString(w.Text)
		b.WriteString(w.Separator)
	}
	return strings.TrimSpace(b.String())
}

// NewParagraph constructs a Paragraph from words and direction, deriving
// FullText and Box so callers never have to keep them in sync by hand.
func NewParagraph(words []Word, isVertical bool) Paragraph {
	p := Paragraph{
		Words:      words,
		IsVertical: isVertical,
	}
	p.FullText = BuildFullText(words)
	if len(words) > 0 {
		box := words[0].Box
		for _, w := range words[1:] {
			box = box.Union(w.Box)
		}
		p.Box = box
	}
	return p
}

// HasJapanese reports whether s contains at least one kana or kanji code
// point. Used by the OCR post-processor to drop lines that carry no
// Japanese text before grouping (spec §4.2 failure case).
func HasJapanese(s string) bool {
	for _, r := range s {
		switch {
		case r >= 0x3040 && r <= 0x309F: // hiragana
			return true
		case r >= 0x30A0 && r <= 0x30FF: // katakana
			return true
		case r >= 0x4E00 && r <= 0x9FFF: // CJK unified ideographs
			return true
		case r >= 0x3400 && r <= 0x4DBF: // CJK extension A
			return true
		case r >= 0xFF66 && r <= 0xFF9D: // halfwidth katakana
			return true
		}
	}
	return false
}
