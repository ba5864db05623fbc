package render

import "github.com/quillcode/quill/internal/line"

// decision is the outcome of comparing a line's last-painted RenderCache tag
// against what this frame would paint: whether the line can be skipped, and
// the tag to store if it is (re-)painted.
type decision struct {
	skip bool
	tag  line.RenderCache
}

// decideLine implements spec.md §4.5's render-cache rule: the cursor line
// compares (row, cursorChar, skip, selection) against the cached tag;
// every other line only compares (row, selection). A line whose cache Kind
// is CacheNone is always repainted — that is the "content/tokens/
// diagnostics changed" signal, since those mutations reset render_cache to
// None (line.Line.reset).
func decideLine(l *line.Line, row int, isCursorLine bool, cursorChar, skipChars int, sel *line.SelectSpan) decision {
	var want line.RenderCache
	if isCursorLine {
		want = line.RenderCache{Kind: line.CacheCursor, Row: row, Select: sel, CursorChar: cursorChar, SkipChars: skipChars}
	} else {
		want = line.RenderCache{Kind: line.CacheLine, Row: row, Select: sel}
	}

	current := l.RenderCache()
	if current.Kind == line.CacheNone {
		return decision{skip: false, tag: want}
	}
	if current.Equal(want) {
		return decision{skip: true, tag: current}
	}
	return decision{skip: false, tag: want}
}

func toLineSelectSpan(s *SelectSpan) *line.SelectSpan {
	if s == nil {
		return nil
	}
	return &line.SelectSpan{FromChar: s.FromChar, ToChar: s.ToChar}
}
