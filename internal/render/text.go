package render

import (
	"github.com/quillcode/quill/internal/cursor"
	"github.com/quillcode/quill/internal/line"
)

// TextRenderer soft-wraps long lines across multiple screen rows instead of
// truncating them, prefixing continuation rows with a blank marker the same
// width as the line-number gutter (spec.md §4.6). Unlike CodeRenderer it
// never scrolls horizontally — wrapping removes the need.
type TextRenderer struct {
	Theme     Theme
	MinGutter int
	lastTop   int
	havePrior bool

	// ExtraSpans, when set, contributes additional style spans for a line
	// atop its syntax/diagnostic styling — MarkdownRenderer sets this to
	// its block/inline parser to paint markdown styling on top of the text
	// renderer's layout, per spec.md §4.6.
	ExtraSpans func(lineIdx int, l *line.Line) []StyleSpan
}

// NewTextRenderer creates a TextRenderer with the given theme.
func NewTextRenderer(th Theme) *TextRenderer {
	return &TextRenderer{Theme: th, MinGutter: 3}
}

// segment is one wrapped screen row's slice of a buffer line.
type segment struct {
	lineIdx    int
	fromChar   int
	toChar     int
	continued  bool // true for every segment after a line's first
	firstOfRow int  // the row this line's first segment paints at
}

func (r *TextRenderer) layout(buf *line.Buffer, topLine, height, contentWidth int) []segment {
	segs := make([]segment, 0, height)
	for lineIdx := topLine; lineIdx < buf.Len() && len(segs) < height; lineIdx++ {
		l := buf.Get(lineIdx)
		charLen := l.CharLen()
		first := true
		firstRow := len(segs)
		if charLen == 0 {
			segs = append(segs, segment{lineIdx: lineIdx, firstOfRow: firstRow})
			continue
		}
		for from := 0; from < charLen && len(segs) < height; from += contentWidth {
			to := from + contentWidth
			if to > charLen {
				to = charLen
			}
			segs = append(segs, segment{
				lineIdx: lineIdx, fromChar: from, toChar: to,
				continued: !first, firstOfRow: firstRow,
			})
			first = false
		}
	}
	return segs
}

// Render fully repaints the visible rows.
func (r *TextRenderer) Render(buf *line.Buffer, mc *cursor.MultiCursor, vp Viewport, sink Sink) Stats {
	stats := r.paint(buf, mc, vp, sink, true)
	r.lastTop = vp.TopLine
	r.havePrior = true
	return stats
}

// FastRender repaints only stale lines' segments, falling back to a full
// repaint when the viewport has scrolled.
func (r *TextRenderer) FastRender(buf *line.Buffer, mc *cursor.MultiCursor, vp Viewport, sink Sink) Stats {
	if !r.havePrior || vp.TopLine != r.lastTop {
		return r.Render(buf, mc, vp, sink)
	}
	stats := r.paint(buf, mc, vp, sink, false)
	r.lastTop = vp.TopLine
	return stats
}

func (r *TextRenderer) paint(buf *line.Buffer, mc *cursor.MultiCursor, vp Viewport, sink Sink, force bool) Stats {
	main := mc.Main
	gw := gutterWidth(buf.Len(), r.MinGutter)
	contentWidth := vp.Width - gw
	if contentWidth < 1 {
		contentWidth = 1
	}

	segs := r.layout(buf, vp.TopLine, vp.Height, contentWidth)
	repainted := 0

	// The render cache is per buffer line, not per wrapped row: a line's
	// decision is made once, at its first segment, and every continuation
	// segment of the same line repaints or skips alongside it.
	lineDirty := false
	var lineSel *SelectSpan

	for row, seg := range segs {
		l := buf.Get(seg.lineIdx)
		isCursorLine := seg.lineIdx == main.Line

		if !seg.continued {
			cursorChar := 0
			if isCursorLine {
				cursorChar = main.Char
			}
			lineSel = selectionOnLine(buf, selectionOf(main), seg.lineIdx)
			d := decideLine(l, seg.firstOfRow, isCursorLine, cursorChar, 0, toLineSelectSpan(lineSel))
			lineDirty = force || !d.skip
			if lineDirty {
				l.SetRenderCache(d.tag)
			}
		}
		if !lineDirty {
			continue
		}

		r.paintSegment(sink, row, gw, contentWidth, l, seg, isCursorLine, lineSel)
		repainted++
	}
	for row := len(segs); row < vp.Height; row++ {
		if force {
			sink.ClearRow(row, 0, vp.Width, DefaultStyle)
		}
	}

	return Stats{
		LineCount:     buf.Len(),
		SelectionLen:  selectionLenChars(buf, main.Select),
		CursorLine:    main.Line,
		CursorChar:    main.Char,
		RepaintedRows: repainted,
	}
}

func (r *TextRenderer) paintSegment(sink Sink, row, gw, contentWidth int, l *line.Line, seg segment, isCursorLine bool, lineSel *SelectSpan) {
	if seg.continued {
		sink.ClearRow(row, 0, gw, r.Theme.GutterText)
	} else {
		paintGutter(sink, row, gw, seg.lineIdx+1, isCursorLine, r.Theme)
	}

	lineStyle := DefaultStyle
	if isCursorLine {
		lineStyle = lineStyle.OverlayOn(r.Theme.CursorLine)
	}

	text, _ := l.Get(seg.fromChar, seg.toChar)
	var extra []StyleSpan
	if r.ExtraSpans != nil {
		extra = r.ExtraSpans(seg.lineIdx, l)
	}
	spans := shiftSpansBack(buildSpans(r.Theme, l, lineSel, extra), seg.fromChar)
	cells := cellsFromContent(text, lineStyle, spans)

	col := gw
	for _, c := range cells {
		if col >= gw+contentWidth {
			break
		}
		sink.SetCell(row, col, c)
		col++
	}
	if col < gw+contentWidth {
		sink.ClearRow(row, col, gw+contentWidth-col, lineStyle)
	}
}

// shiftSpansBack rebases spans built against the whole line onto a segment
// that starts at fromChar, so buildSpans can run once on the full line and
// still apply correctly to a sliced-out piece of it.
func shiftSpansBack(spans []StyleSpan, fromChar int) []StyleSpan {
	if fromChar == 0 {
		return spans
	}
	out := make([]StyleSpan, len(spans))
	for i, s := range spans {
		out[i] = StyleSpan{StartChar: s.StartChar - fromChar, EndChar: s.EndChar - fromChar, Style: s.Style}
	}
	return out
}
