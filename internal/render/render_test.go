package render

import (
	"testing"

	"github.com/quillcode/quill/internal/cursor"
	"github.com/quillcode/quill/internal/line"
)

// gridSink is an in-memory Sink for assertions, grounded on the teacher's
// own backend_test.go approach of recording cells into a plain grid rather
// than standing up a real terminal.
type gridSink struct {
	rows  int
	cols  int
	cells [][]Cell
}

func newGridSink(rows, cols int) *gridSink {
	g := &gridSink{rows: rows, cols: cols, cells: make([][]Cell, rows)}
	for i := range g.cells {
		g.cells[i] = make([]Cell, cols)
	}
	return g
}

func (g *gridSink) SetCell(row, col int, cell Cell) {
	if row < 0 || row >= g.rows || col < 0 || col >= g.cols {
		return
	}
	g.cells[row][col] = cell
}

func (g *gridSink) ClearRow(row, fromCol, width int, style Style) {
	for c := fromCol; c < fromCol+width && c < g.cols; c++ {
		g.SetCell(row, c, Cell{Text: " ", Width: 1, Style: style})
	}
}

func (g *gridSink) rowText(row int) string {
	s := ""
	for _, c := range g.cells[row] {
		if c.Text == "" {
			continue
		}
		s += c.Text
	}
	return s
}

func mainCursorAt(buf *line.Buffer, ln, ch int) *cursor.MultiCursor {
	c := cursor.New()
	c.SetPosition(cursor.Position{Line: ln, Char: ch})
	return cursor.NewMultiCursor(c)
}

func TestCodeRendererPaintsGutterAndContent(t *testing.T) {
	buf := line.FromString("package main\n\nfunc main() {}\n")
	mc := mainCursorAt(buf, 0, 0)
	sink := newGridSink(10, 30)
	r := NewCodeRenderer(DefaultTheme())

	stats := r.Render(buf, mc, Viewport{TopLine: 0, Height: 10, Width: 30}, sink)

	if stats.LineCount != buf.Len() {
		t.Fatalf("LineCount = %d, want %d", stats.LineCount, buf.Len())
	}
	row0 := sink.rowText(0)
	if row0 == "" {
		t.Fatalf("expected row 0 to have painted content")
	}
}

func TestCodeRendererFastRenderSkipsUnchangedLines(t *testing.T) {
	buf := line.FromString("aaa\nbbb\nccc\n")
	mc := mainCursorAt(buf, 0, 0)
	sink := newGridSink(10, 30)
	r := NewCodeRenderer(DefaultTheme())

	r.Render(buf, mc, Viewport{TopLine: 0, Height: 10, Width: 30}, sink)
	stats := r.FastRender(buf, mc, Viewport{TopLine: 0, Height: 10, Width: 30}, sink)

	if stats.RepaintedRows != 0 {
		t.Fatalf("RepaintedRows = %d, want 0 (nothing changed)", stats.RepaintedRows)
	}
}

func TestCodeRendererFastRenderRepaintsCursorLineOnMove(t *testing.T) {
	buf := line.FromString("aaa\nbbb\nccc\n")
	mc := mainCursorAt(buf, 0, 0)
	sink := newGridSink(10, 30)
	r := NewCodeRenderer(DefaultTheme())

	r.Render(buf, mc, Viewport{TopLine: 0, Height: 10, Width: 30}, sink)
	mc.Main.SetPosition(cursor.Position{Line: 0, Char: 2})
	stats := r.FastRender(buf, mc, Viewport{TopLine: 0, Height: 10, Width: 30}, sink)

	if stats.RepaintedRows != 1 {
		t.Fatalf("RepaintedRows = %d, want 1 (cursor moved within line 0)", stats.RepaintedRows)
	}
}

func TestCodeRendererFastRenderFallsBackOnScroll(t *testing.T) {
	buf := line.FromString("a\nb\nc\nd\ne\n")
	mc := mainCursorAt(buf, 0, 0)
	sink := newGridSink(3, 30)
	r := NewCodeRenderer(DefaultTheme())

	r.Render(buf, mc, Viewport{TopLine: 0, Height: 3, Width: 30}, sink)
	stats := r.FastRender(buf, mc, Viewport{TopLine: 1, Height: 3, Width: 30}, sink)

	if stats.RepaintedRows != 3 {
		t.Fatalf("RepaintedRows = %d, want 3 (full repaint after scroll)", stats.RepaintedRows)
	}
}

func TestCodeRendererContentChangeInvalidatesCache(t *testing.T) {
	buf := line.FromString("aaa\nbbb\n")
	mc := mainCursorAt(buf, 0, 0)
	sink := newGridSink(10, 30)
	r := NewCodeRenderer(DefaultTheme())

	r.Render(buf, mc, Viewport{TopLine: 0, Height: 10, Width: 30}, sink)
	buf.Get(1).Push('!')
	stats := r.FastRender(buf, mc, Viewport{TopLine: 0, Height: 10, Width: 30}, sink)

	if stats.RepaintedRows != 1 {
		t.Fatalf("RepaintedRows = %d, want 1 (line 1 content changed)", stats.RepaintedRows)
	}
}

func TestCodeRendererTruncatesLongLineWithWrapIndicator(t *testing.T) {
	buf := line.FromString("0123456789ABCDEFGHIJ\n")
	mc := mainCursorAt(buf, 0, 0)
	sink := newGridSink(1, 10) // gutter(4) + content(6)
	r := NewCodeRenderer(DefaultTheme())

	r.Render(buf, mc, Viewport{TopLine: 0, Height: 1, Width: 10}, sink)

	found := false
	for _, c := range sink.cells[0] {
		if c.Text == string(wrapIndicator) {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a wrap indicator cell in row 0: %+v", sink.cells[0])
	}
}

func TestRecomputeSkipKeepsMarginOnOverflow(t *testing.T) {
	skip := recomputeSkip(0, 50, 20)
	if skip <= 0 {
		t.Fatalf("skip = %d, want > 0 once the cursor runs past the window", skip)
	}
	if 50-skip >= 20 {
		t.Fatalf("cursor column %d not within window starting at skip %d width 20", 50, skip)
	}
}

func TestRecomputeSkipKeepsPreviousWhenCursorStillVisible(t *testing.T) {
	skip := recomputeSkip(10, 15, 20)
	if skip != 10 {
		t.Fatalf("skip = %d, want unchanged 10 (cursor still inside the window)", skip)
	}
}

func TestTextRendererSoftWrapsLongLine(t *testing.T) {
	buf := line.FromString("0123456789ABCDEFGHIJ\n")
	mc := mainCursorAt(buf, 0, 0)
	sink := newGridSink(5, 10) // gutter(4) + content(6): wraps into 4 segments
	r := NewTextRenderer(DefaultTheme())

	stats := r.Render(buf, mc, Viewport{TopLine: 0, Height: 5, Width: 10}, sink)
	if stats.RepaintedRows < 2 {
		t.Fatalf("RepaintedRows = %d, want at least 2 wrapped segments", stats.RepaintedRows)
	}
}

func TestTextRendererFastRenderSkipsUnchangedLine(t *testing.T) {
	buf := line.FromString("hello\nworld\n")
	mc := mainCursorAt(buf, 0, 0)
	sink := newGridSink(5, 20)
	r := NewTextRenderer(DefaultTheme())

	r.Render(buf, mc, Viewport{TopLine: 0, Height: 5, Width: 20}, sink)
	stats := r.FastRender(buf, mc, Viewport{TopLine: 0, Height: 5, Width: 20}, sink)
	if stats.RepaintedRows != 0 {
		t.Fatalf("RepaintedRows = %d, want 0", stats.RepaintedRows)
	}
}

func TestMarkdownRendererStylesHeadingAndBold(t *testing.T) {
	buf := line.FromString("# Title\n\nSome **bold** text.\n")
	mc := mainCursorAt(buf, 0, 0)
	sink := newGridSink(5, 40)
	r := NewMarkdownRenderer(DefaultTheme())

	stats := r.Render(buf, mc, Viewport{TopLine: 0, Height: 5, Width: 40}, sink)
	if stats.LineCount != buf.Len() {
		t.Fatalf("LineCount = %d, want %d", stats.LineCount, buf.Len())
	}

	spans := r.spansForLine(0, buf.Get(0))
	if len(spans) == 0 || !spans[0].Style.Attrs.Has(AttrBold) {
		t.Fatalf("heading line should get a bold span, got %+v", spans)
	}
}

func TestSelectionSpanIsAppliedOverSyntaxColor(t *testing.T) {
	buf := line.FromString("hello world\n")
	main := cursor.New()
	main.SetPosition(cursor.Position{Line: 0, Char: 11})
	main.Select = &cursor.Selection{
		Anchor: cursor.Position{Line: 0, Char: 0},
		Head:   cursor.Position{Line: 0, Char: 5},
	}
	mc := cursor.NewMultiCursor(main)
	sink := newGridSink(1, 30)
	r := NewCodeRenderer(DefaultTheme())

	r.Render(buf, mc, Viewport{TopLine: 0, Height: 1, Width: 30}, sink)

	gw := gutterWidth(buf.Len(), r.MinGutter)
	cell := sink.cells[0][gw]
	if cell.Style.Bg.Default {
		t.Fatalf("first selected cell should carry a non-default background, got %+v", cell.Style)
	}
}

func TestColorBlendStaysWithinRange(t *testing.T) {
	a := RGB(255, 0, 0)
	b := RGB(0, 0, 255)
	blended := a.Blend(b, 0.5)
	if blended.Default {
		t.Fatalf("blend of two concrete colors should not be Default")
	}
}

func TestGutterWidthGrowsWithLineCount(t *testing.T) {
	if w := gutterWidth(9, 1); w != 2 {
		t.Fatalf("gutterWidth(9,1) = %d, want 2", w)
	}
	if w := gutterWidth(1000, 1); w != 5 {
		t.Fatalf("gutterWidth(1000,1) = %d, want 5", w)
	}
}
