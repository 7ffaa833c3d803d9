// Package normalize implements the pure normalization function (spec §4.1)
// applied wherever strings become dictionary lookup keys or are compared:
// lowercases ASCII, folds full-width forms to their standard-width
// equivalent, converts full-width katakana to hiragana, composes trailing
// voiced/semi-voiced marks into their precomposed kana, strips whitespace,
// and otherwise leaves kanji untouched.
package normalize

import (
	"strings"

	"golang.org/x/text/width"
)

// katakanaToHiragana shifts a katakana rune in the standard block
// (U+30A1-U+30F6) down to its hiragana counterpart (U+3041-U+3096). Runes
// outside that range pass through unchanged.
func katakanaToHiragana(r rune) rune {
	if r >= 0x30A1 && r <= 0x30F6 {
		return r - 0x60
	}
	return r
}

// composeVoicedMark combines a base kana rune with a following combining
// dakuten (U+3099) or handakuten (U+309A) — or their spacing forms U+309B /
// U+309C — into the single precomposed kana it denotes. Returns the
// composed rune and true on success, or (0, false) if base+mark has no
// precomposed form.
func composeVoicedMark(base, mark rune) (rune, bool) {
	isDakuten := mark == 0x3099 || mark == 0x309B
	isHandakuten := mark == 0x309A || mark == 0x309C
	if !isDakuten && !isHandakuten {
		return 0, false
	}
	if isDakuten {
		if r, ok := dakutenTable[base]; ok {
			return r, true
		}
		return 0, false
	}
	if r, ok := handakutenTable[base]; ok {
		return r, true
	}
	return 0, false
}

// dakutenTable maps an unvoiced kana to its voiced (dakuten) precomposed
// form, covering both hiragana and katakana blocks.
var dakutenTable = map[rune]rune{
	'か': 'が', 'き': 'ぎ', 'く': 'ぐ', 'け': 'げ', 'こ': 'ご',
	'さ': 'ざ', 'し': 'じ', 'す': 'ず', 'せ': 'ぜ', 'そ': 'ぞ',
	'た': 'だ', 'ち': 'ぢ', 'つ': 'づ', 'て': 'で', 'と': 'ど',
	'は': 'ば', 'ひ': 'び', 'ふ': 'ぶ', 'へ': 'べ', 'ほ': 'ぼ',
	'う': 'ゔ',
	'カ': 'ガ', 'キ': 'ギ', 'ク': 'グ', 'ケ': 'ゲ', 'コ': 'ゴ',
	'サ': 'ザ', 'シ': 'ジ', 'ス': 'ズ', 'セ': 'ゼ', 'ソ': 'ゾ',
	'タ': 'ダ', 'チ': 'ヂ', 'ツ': 'ヅ', 'テ': 'デ', 'ト': 'ド',
	'ハ': 'バ', 'ヒ': 'ビ', 'フ': 'ブ', 'ヘ': 'ベ', 'ホ': 'ボ',
	'ウ': 'ヴ',
}

// handakutenTable maps an unvoiced kana to its semi-voiced (handakuten)
// precomposed form.
var handakutenTable = map[rune]rune{
	'は': 'ぱ', 'ひ': 'ぴ', 'ふ': 'ぷ', 'へ': 'ぺ', 'ほ': 'ぽ',
	'ハ': 'パ', 'ヒ': 'ピ', 'フ': 'プ', 'ヘ': 'ペ', 'ホ': 'ポ',
}

// Normalize applies the fixed normalization function from spec §4.1. It is
// idempotent: Normalize(Normalize(s)) == Normalize(s), and must be applied
// identically at dictionary-build time and at query time so lookup keys
// agree (spec §3 invariant iii).
func Normalize(s string) string {
	// Fold full-width alphanumerics/punctuation and halfwidth katakana to
	// their standard-width forms first, so the katakana→hiragana and
	// voiced-mark passes below only have to deal with one width per script.
	folded := width.Fold.String(s)

	runes := []rune(folded)
	out := make([]rune, 0, len(runes))
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if i+1 < len(runes) {
			if composed, ok := composeVoicedMark(r, runes[i+1]); ok {
				out = append(out, katakanaToHiragana(composed))
				i++
				continue
			}
		}
		r = katakanaToHiragana(r)
		if r >= 'A' && r <= 'Z' {
			r = r - 'A' + 'a'
		}
		out = append(out, r)
	}

	return strings.TrimSpace(string(out))
}

// Equivalent reports whether a and b normalize to the same string, the
// definition of string equivalence used throughout the lookup engine.
func Equivalent(a, b string) bool {
	return Normalize(a) == Normalize(b)
}
