package cursor

import (
	"testing"

	"github.com/quillcode/quill/internal/line"
)

func newBuf(lines ...string) *line.Buffer {
	b := line.NewBuffer()
	for b.Len() > 0 {
		b.Remove(0)
	}
	for _, s := range lines {
		b.Append(line.New(s))
	}
	return b
}

func TestEndOfLineIsOnePastLastChar(t *testing.T) {
	buf := newBuf("abc")
	c := New()
	c.EndOfLine(buf)
	if c.Char != 3 {
		t.Fatalf("char = %d, want 3 (len, not len-1)", c.Char)
	}
}

func TestVerticalMotionPhantomColumn(t *testing.T) {
	buf := newBuf("longline", "x", "longline")
	c := New()
	c.SetPosition(Position{0, 6})
	c.Down(buf) // onto short line "x" (len 1)
	if c.Char != 1 {
		t.Fatalf("char on short line = %d, want clamp to 1", c.Char)
	}
	c.Down(buf) // back onto long line, should restore column 6
	if c.Char != 6 {
		t.Fatalf("char after returning to long line = %d, want 6 (phantom restored)", c.Char)
	}
}

func TestConsolidateIsIdempotent(t *testing.T) {
	mc := NewMultiCursor(New())
	mc.Main.SetPosition(Position{1, 4})
	e1 := New()
	e1.SetPosition(Position{1, 4})
	e2 := New()
	e2.SetPosition(Position{2, 0})
	mc.Extras = []*Cursor{e1, e2}

	mc.Consolidate()
	firstPass := mc.positionsSnapshot()

	mc.Consolidate()
	secondPass := mc.positionsSnapshot()

	if len(firstPass) != len(secondPass) {
		t.Fatalf("consolidation not idempotent: %v vs %v", firstPass, secondPass)
	}
	for i := range firstPass {
		if firstPass[i] != secondPass[i] {
			t.Fatalf("consolidation not idempotent at %d: %v vs %v", i, firstPass, secondPass)
		}
	}
	if len(mc.All()) != 2 {
		t.Fatalf("expected duplicate (1,4) cursors merged, got %d cursors", len(mc.All()))
	}
}

func (m *MultiCursor) positionsSnapshot() []Position {
	out := make([]Position, 0, len(m.All()))
	for _, c := range m.All() {
		out = append(out, c.Position())
	}
	return out
}

func TestConsolidateDescendingOrder(t *testing.T) {
	mc := NewMultiCursor(New())
	mc.Main.SetPosition(Position{0, 0})
	e1 := New()
	e1.SetPosition(Position{2, 3})
	mc.Extras = []*Cursor{e1}
	mc.Consolidate()
	all := mc.All()
	for i := 1; i < len(all); i++ {
		if !all[i].Position().Before(all[i-1].Position()) {
			t.Fatalf("cursors not in strictly descending order: %+v", all)
		}
	}
}

func manyLines(n int) *line.Buffer {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = "x"
	}
	return newBuf(lines...)
}

func TestSyncViewportClampsAtLineToCursor(t *testing.T) {
	c := New()
	c.MaxRows = 5

	c.SetPosition(Position{Line: 20, Char: 0})
	c.AtLine = 0
	c.SyncViewport()
	if c.AtLine != 16 {
		t.Fatalf("AtLine = %d, want 16 (cursor scrolled into view from below)", c.AtLine)
	}

	c.AtLine = 30
	c.SyncViewport()
	if c.AtLine != 20 {
		t.Fatalf("AtLine = %d, want 20 (cursor scrolled into view from above)", c.AtLine)
	}
}

func TestSyncViewportNoopWhenMaxRowsUnset(t *testing.T) {
	c := New()
	c.SetPosition(Position{Line: 20, Char: 0})
	c.AtLine = 0
	c.SyncViewport()
	if c.AtLine != 0 {
		t.Fatalf("AtLine = %d, want 0 unchanged when MaxRows is 0", c.AtLine)
	}
}

func TestScrollDownMovesViewportAndCursorTogether(t *testing.T) {
	buf := manyLines(10)
	c := New()
	c.AtLine = 0
	c.ScrollDown(buf)
	if c.AtLine != 1 || c.Line != 1 {
		t.Fatalf("AtLine=%d Line=%d, want 1,1", c.AtLine, c.Line)
	}
}

func TestScrollDownStopsNearEndOfBuffer(t *testing.T) {
	buf := manyLines(3)
	c := New()
	c.AtLine = 1 // buf.Len()-2 == 1, already at the scroll limit
	c.SetPosition(Position{Line: 1, Char: 0})
	c.ScrollDown(buf)
	if c.AtLine != 1 || c.Line != 1 {
		t.Fatalf("AtLine=%d Line=%d, want unchanged at 1,1", c.AtLine, c.Line)
	}
}

func TestScrollUpStopsAtTop(t *testing.T) {
	buf := manyLines(10)
	c := New()
	c.ScrollUp(buf)
	if c.AtLine != 0 || c.Line != 0 {
		t.Fatalf("AtLine=%d Line=%d, want unchanged at 0,0", c.AtLine, c.Line)
	}
}

func TestScreenDownPagesByMaxRows(t *testing.T) {
	buf := manyLines(50)
	c := New()
	c.MaxRows = 10
	c.AtLine = 15
	c.SetPosition(Position{Line: 20, Char: 0})

	c.ScreenDown(buf)
	if c.AtLine != 25 || c.Line != 30 {
		t.Fatalf("AtLine=%d Line=%d, want 25,30", c.AtLine, c.Line)
	}

	c.ScreenUp(buf)
	if c.AtLine != 15 || c.Line != 20 {
		t.Fatalf("AtLine=%d Line=%d, want 15,20", c.AtLine, c.Line)
	}
}

func TestJumpRightSkipsWordThenPunct(t *testing.T) {
	buf := newBuf("foo bar")
	c := New()
	c.JumpRight(buf)
	if c.Char != 4 {
		t.Fatalf("char after first jump = %d, want 4 (past foo and the following space)", c.Char)
	}
}
