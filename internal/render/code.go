package render

import (
	"github.com/quillcode/quill/internal/cursor"
	"github.com/quillcode/quill/internal/line"
)

// CodeRenderer is the line-per-row renderer for source files: one buffer
// line per screen row, long lines truncated with a wrap indicator rather
// than soft-wrapped, plus an overlay for extra multi-cursor carets.
type CodeRenderer struct {
	Theme     Theme
	MinGutter int // minimum gutter digit width, e.g. 3
	skip      int // horizontal scroll of the cursor line, in chars
	lastTop   int
	havePrior bool
}

// NewCodeRenderer creates a CodeRenderer with the given theme.
func NewCodeRenderer(th Theme) *CodeRenderer {
	return &CodeRenderer{Theme: th, MinGutter: 3}
}

const wrapIndicator = '»'

// Render fully repaints the visible rows.
func (r *CodeRenderer) Render(buf *line.Buffer, mc *cursor.MultiCursor, vp Viewport, sink Sink) Stats {
	stats := r.paintRows(buf, mc, vp, sink, true)
	r.lastTop = vp.TopLine
	r.havePrior = true
	return stats
}

// FastRender repaints only lines whose render cache is stale, falling back
// to a full repaint when the viewport has scrolled (spec.md §4.6).
func (r *CodeRenderer) FastRender(buf *line.Buffer, mc *cursor.MultiCursor, vp Viewport, sink Sink) Stats {
	if !r.havePrior || vp.TopLine != r.lastTop {
		return r.Render(buf, mc, vp, sink)
	}
	stats := r.paintRows(buf, mc, vp, sink, false)
	r.lastTop = vp.TopLine
	return stats
}

func (r *CodeRenderer) paintRows(buf *line.Buffer, mc *cursor.MultiCursor, vp Viewport, sink Sink, force bool) Stats {
	main := mc.Main
	gw := gutterWidth(buf.Len(), r.MinGutter)
	contentWidth := vp.Width - gw
	if contentWidth < 1 {
		contentWidth = 1
	}

	r.skip = recomputeSkip(r.skip, main.Char, contentWidth)

	repainted := 0
	for row := 0; row < vp.Height; row++ {
		lineIdx := vp.TopLine + row
		if lineIdx >= buf.Len() {
			if force {
				sink.ClearRow(row, 0, vp.Width, DefaultStyle)
			}
			continue
		}
		l := buf.Get(lineIdx)
		isCursorLine := lineIdx == main.Line
		skip := 0
		cursorChar := 0
		if isCursorLine {
			skip = r.skip
			cursorChar = main.Char
		}
		sel := selectionOnLine(buf, selectionOf(main), lineIdx)

		d := decideLine(l, row, isCursorLine, cursorChar, skip, toLineSelectSpan(sel))
		if !force && d.skip {
			continue
		}

		r.paintRow(sink, row, gw, contentWidth, l, lineIdx, isCursorLine, skip, sel)
		l.SetRenderCache(d.tag)
		repainted++
	}

	r.paintExtraCursors(sink, mc, vp, gw)

	return Stats{
		LineCount:     buf.Len(),
		SelectionLen:  selectionLenChars(buf, main.Select),
		CursorLine:    main.Line,
		CursorChar:    main.Char,
		RepaintedRows: repainted,
	}
}

func (r *CodeRenderer) paintRow(sink Sink, row, gw, contentWidth int, l *line.Line, lineIdx int, isCursorLine bool, skip int, sel *SelectSpan) {
	paintGutter(sink, row, gw, lineIdx+1, isCursorLine, r.Theme)

	lineStyle := DefaultStyle
	if isCursorLine {
		lineStyle = lineStyle.OverlayOn(r.Theme.CursorLine)
	}

	spans := buildSpans(r.Theme, l, sel)
	cells := cellsFromContent(l.Content(), lineStyle, spans)

	visible := cells
	if skip > 0 && skip < len(visible) {
		visible = visible[skip:]
	} else if skip >= len(visible) {
		visible = nil
	}

	truncated := len(visible) > contentWidth
	if truncated {
		visible = visible[:contentWidth-1]
	}

	col := gw
	for _, c := range visible {
		sink.SetCell(row, col, c)
		col++
	}
	if truncated {
		sink.SetCell(row, col, Cell{Text: string(wrapIndicator), Width: 1, Style: lineStyle})
		col++
	}
	if col < gw+contentWidth {
		sink.ClearRow(row, col, gw+contentWidth-col, lineStyle)
	}
}

// paintExtraCursors overlays every non-main cursor's caret in reverse video,
// the "optional multi-cursor overlay" spec.md §4.6 names. It runs after the
// main pass unconditionally (fast_render included) since an extra caret can
// move without the render cache noticing — the cache tag only tracks the
// main cursor's position.
func (r *CodeRenderer) paintExtraCursors(sink Sink, mc *cursor.MultiCursor, vp Viewport, gw int) {
	if !mc.IsMulti() {
		return
	}
	contentWidth := vp.Width - gw
	for _, c := range mc.Extras {
		row := c.Line - vp.TopLine
		if row < 0 || row >= vp.Height {
			continue
		}
		col := c.Char - r.skip
		if col < 0 || col >= contentWidth {
			continue
		}
		sink.SetCell(row, gw+col, Cell{Text: " ", Width: 1, Style: Style{Attrs: AttrReverse}})
	}
}

func selectionOf(c *cursor.Cursor) cursor.Selection {
	if c.Select == nil {
		return cursor.Selection{}
	}
	return *c.Select
}
