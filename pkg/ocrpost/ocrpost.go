// Package ocrpost implements the OCR post-processor (spec §4.2): grouping
// raw per-line Paragraph objects (as emitted by an OCR provider) into
// coherent multi-line paragraphs with correct reading order.
package ocrpost

import (
	"sort"

	"github.com/meikipop/meikipop-go/pkg/geometry"
	"github.com/meikipop/meikipop-go/pkg/textmodel"
)

// Tunable merge thresholds, per spec §4.2(b)-(c).
const (
	minCrossAxisOverlap  = 0.5
	maxAlongAxisGapRatio = 1.5
)

// unionFind is a minimal disjoint-set structure over line indices.
type unionFind struct {
	parent []int
}

func newUnionFind(n int) *unionFind {
	uf := &unionFind{parent: make([]int, n)}
	for i := range uf.parent {
		uf.parent[i] = i
	}
	return uf
}

func (uf *unionFind) find(x int) int {
	for uf.parent[x] != x {
		uf.parent[x] = uf.parent[uf.parent[x]]
		x = uf.parent[x]
	}
	return x
}

func (uf *unionFind) union(a, b int) {
	ra, rb := uf.find(a), uf.find(b)
	if ra != rb {
		uf.parent[ra] = rb
	}
}

// lineThickness estimates a line's thickness along the axis perpendicular to
// its reading direction: for horizontal lines, their height; for vertical
// lines, their width.
func lineThickness(b geometry.Box, vertical bool) float64 {
	if vertical {
		return b.Width
	}
	return b.Height
}

// Group merges a sequence of per-line Paragraph objects (one per OCR-detected
// line) into coherent multi-line paragraphs, per spec §4.2. Lines lacking
// any Japanese character are dropped before grouping (the §4.2 failure
// case). Writing directions never merge with each other.
func Group(lines []textmodel.Paragraph) []textmodel.Paragraph {
	filtered := make([]textmodel.Paragraph, 0, len(lines))
	for _, l := range lines {
		if textmodel.HasJapanese(l.FullText) {
			filtered = append(filtered, l)
		}
	}
	if len(filtered) == 0 {
		return nil
	}

	horizIdx := make([]int, 0)
	vertIdx := make([]int, 0)
	for i, l := range filtered {
		if l.IsVertical {
			vertIdx = append(vertIdx, i)
		} else {
			horizIdx = append(horizIdx, i)
		}
	}

	uf := newUnionFind(len(filtered))
	mergeGroup(filtered, horizIdx, false, uf)
	mergeGroup(filtered, vertIdx, true, uf)

	groups := make(map[int][]int)
	for i := range filtered {
		root := uf.find(i)
		groups[root] = append(groups[root], i)
	}

	result := make([]textmodel.Paragraph, 0, len(groups))
	for _, members := range groups {
		result = append(result, buildParagraph(filtered, members))
	}

	// Stable overall ordering: horizontal paragraphs by reading order
	// (top-to-bottom, ties left-to-right), then vertical ones (right-to-left,
	// ties top-to-bottom), matching how a reader would naturally scan a
	// mixed-direction screen top region first.
	sort.SliceStable(result, func(i, j int) bool {
		a, b := result[i], result[j]
		if a.IsVertical != b.IsVertical {
			return !a.IsVertical // horizontal paragraphs first
		}
		return readingOrderLess(a.Box, b.Box, a.IsVertical)
	})

	return result
}

// mergeGroup applies the pairwise merge predicate within one writing
// direction's subset of lines, transitively via union-find.
func mergeGroup(lines []textmodel.Paragraph, idx []int, vertical bool, uf *unionFind) {
	sort.Slice(idx, func(i, j int) bool {
		return readingOrderLess(lines[idx[i]].Box, lines[idx[j]].Box, vertical)
	})

	for i := 0; i+1 < len(idx); i++ {
		a, b := lines[idx[i]], lines[idx[i+1]]
		if shouldMerge(a, b, vertical) {
			uf.union(idx[i], idx[i+1])
		}
	}
}

func shouldMerge(a, b textmodel.Paragraph, vertical bool) bool {
	overlap := geometry.CrossAxisOverlapFraction(a.Box, b.Box, vertical)
	if overlap < minCrossAxisOverlap {
		return false
	}
	gap := geometry.AlongAxisGap(a.Box, b.Box, vertical)
	if gap < 0 {
		// overlapping along the reading axis too; treat as adjacent
		return true
	}
	thickness := lineThickness(a.Box, vertical)
	if lineThickness(b.Box, vertical) < thickness {
		thickness = lineThickness(b.Box, vertical)
	}
	if thickness <= 0 {
		return false
	}
	return gap <= maxAlongAxisGapRatio*thickness
}

// readingOrderLess orders two boxes per spec §4.2's reading-order rule:
// horizontal: top-to-bottom, ties broken left-to-right by line center;
// vertical: right-to-left, ties broken top-to-bottom.
func readingOrderLess(a, b geometry.Box, vertical bool) bool {
	if vertical {
		if a.CenterX != b.CenterX {
			return a.CenterX > b.CenterX // right-to-left
		}
		return a.CenterY < b.CenterY
	}
	if a.CenterY != b.CenterY {
		return a.CenterY < b.CenterY
	}
	return a.CenterX < b.CenterX
}

// buildParagraph concatenates the member lines (already in reading order
// from mergeGroup's sort) into one merged Paragraph.
func buildParagraph(lines []textmodel.Paragraph, members []int) textmodel.Paragraph {
	sort.Slice(members, func(i, j int) bool {
		return readingOrderLess(lines[members[i]].Box, lines[members[j]].Box, lines[members[0]].IsVertical)
	})

	var words []textmodel.Word
	box := lines[members[0]].Box
	vertical := lines[members[0]].IsVertical

	for i, m := range members {
		lineWords := append([]textmodel.Word(nil), lines[m].Words...)
		// Mark the line boundary on the last word's separator so that
		// BuildFullText(words) still reproduces FullText, per spec §8's
		// round-trip invariant, even across merged lines.
		if i < len(members)-1 && len(lineWords) > 0 {
			last := len(lineWords) - 1
			lineWords[last].Separator += "\n"
		}
		words = append(words, lineWords...)
		if i > 0 {
			box = box.Union(lines[m].Box)
		}
	}

	return textmodel.Paragraph{
		FullText:   textmodel.BuildFullText(words),
		Words:      words,
		Box:        box,
		IsVertical: vertical,
	}
}
