package render

import "github.com/rivo/uniseg"

// Cell is one terminal column's content: a grapheme cluster (usually one
// rune, occasionally a multi-rune emoji sequence), its display width, and
// its resolved style. A wide cluster's second column is a continuation
// cell (empty Text, Width 0) so row-to-column math stays a simple sum.
type Cell struct {
	Text  string
	Width int
	Style Style
}

func continuationCell(style Style) Cell { return Cell{Width: 0, Style: style} }

// StyleSpan is a char-indexed style override within a line, produced by
// merging token, diagnostic, and selection information ahead of painting.
type StyleSpan struct {
	StartChar int
	EndChar   int
	Style     Style
}

func (s StyleSpan) covers(charIdx int) bool {
	return charIdx >= s.StartChar && charIdx < s.EndChar
}

// styleAt resolves the style for charIdx by overlaying every covering span
// front to back, so a later (more specific) span wins — callers append spans in priority
// order: token styles first, then diagnostic tints, then selection, so
// selection is always checked last and overrides everything beneath it.
func styleAt(charIdx int, base Style, spans []StyleSpan) Style {
	out := base
	for _, s := range spans {
		if s.covers(charIdx) {
			out = out.OverlayOn(s.Style)
		}
	}
	return out
}

// cellsFromContent splits content into grapheme-cluster cells, resolving
// each cluster's style from spans at its starting char index.
func cellsFromContent(content string, base Style, spans []StyleSpan) []Cell {
	cells := make([]Cell, 0, len(content))
	charIdx := 0
	state := -1
	for len(content) > 0 {
		var cluster string
		var width int
		cluster, content, width, state = uniseg.FirstGraphemeClusterInString(content, state)
		style := styleAt(charIdx, base, spans)
		cells = append(cells, Cell{Text: cluster, Width: width, Style: style})
		for i := 1; i < width; i++ {
			cells = append(cells, continuationCell(style))
		}
		charIdx += runeCountInCluster(cluster)
	}
	return cells
}

func runeCountInCluster(s string) int {
	n := 0
	for range s {
		n++
	}
	return n
}
