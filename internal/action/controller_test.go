package action

import (
	"testing"

	"github.com/quillcode/quill/internal/cursor"
	"github.com/quillcode/quill/internal/edit"
	"github.com/quillcode/quill/internal/line"
	"github.com/quillcode/quill/internal/token"
)

func newTestController(text string) (*Controller, *cursor.Cursor) {
	buf := line.FromString(text)
	cur := cursor.New()
	ctrl := NewController(buf, cur, edit.NewEngine(edit.DefaultConfig()))
	return ctrl, cur
}

func contents(buf *line.Buffer) []string {
	out := make([]string, buf.Len())
	for i := range out {
		out[i] = buf.Get(i).Content()
	}
	return out
}

func TestDispatchInsertCharAndUndo(t *testing.T) {
	ctrl, _ := newTestController("\n")
	for _, ch := range "abc" {
		if err := ctrl.Dispatch(Event{Action: InsertChar, Char: ch}); err != nil {
			t.Fatalf("InsertChar: %v", err)
		}
	}
	if got := ctrl.Buf.Get(0).Content(); got != "abc" {
		t.Fatalf("content = %q, want abc", got)
	}

	if err := ctrl.Dispatch(Event{Action: Undo}); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if got := ctrl.Buf.Get(0).Content(); got != "" {
		t.Fatalf("content after undo = %q, want empty", got)
	}
}

// TestMultiCursorUppercase exercises spec.md §8 scenario (d)'s shape: fan a
// select-then-replace action out across several cursors spanning multiple
// lines, in descending order so an earlier cursor's edit never shifts a
// later cursor's still-unprocessed position.
func TestMultiCursorUppercase(t *testing.T) {
	ctrl, main := newTestController("this is line\nthis is line\nthis is line\n")

	main.SetPosition(cursor.Position{Line: 0, Char: 5})
	ctrl.Cursors.Extras = []*cursor.Cursor{cursorAt(1, 5), cursorAt(2, 5)}

	ctrl.Cursors.FanOut(func(c *cursor.Cursor) { c.SelectRight(ctrl.Buf); c.SelectRight(ctrl.Buf) })

	if err := ctrl.Dispatch(Event{Action: UppercaseSelection}); err != nil {
		t.Fatalf("UppercaseSelection: %v", err)
	}

	want := []string{"this IS line", "this IS line", "this IS line"}
	got := contents(ctrl.Buf)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("line %d = %q, want %q (all: %v)", i, got[i], want[i], got)
		}
	}
}

func cursorAt(ln, ch int) *cursor.Cursor {
	c := cursor.New()
	c.SetPosition(cursor.Position{Line: ln, Char: ch})
	return c
}

func TestDispatchMotionDoesNotRequireSession(t *testing.T) {
	ctrl, _ := newTestController("abc\n")
	if err := ctrl.Dispatch(Event{Action: MoveRight}); err != nil {
		t.Fatalf("MoveRight with no session: %v", err)
	}
	if ctrl.Cursors.Main.Char != 1 {
		t.Fatalf("char = %d, want 1", ctrl.Cursors.Main.Char)
	}
}

func TestDispatchFeatureRequestWithoutSessionErrors(t *testing.T) {
	ctrl, _ := newTestController("abc\n")
	if err := ctrl.Dispatch(Event{Action: Hover}); err != ErrNoSession {
		t.Fatalf("Hover with no session: err = %v, want ErrNoSession", err)
	}
}

func TestRemoveLineDeletesLineWithoutTouchingClipboard(t *testing.T) {
	ctrl, main := newTestController("one\ntwo\nthree\n")
	var clip string
	ctrl.ClipboardWrite = func(s string) { clip = s }
	main.SetPosition(cursor.Position{Line: 1, Char: 1})

	if err := ctrl.Dispatch(Event{Action: RemoveLine}); err != nil {
		t.Fatalf("RemoveLine: %v", err)
	}
	want := []string{"one", "three"}
	got := contents(ctrl.Buf)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("lines = %v, want %v", got, want)
		}
	}
	if clip != "" {
		t.Fatalf("clipboard = %q, want untouched", clip)
	}
}

func TestCommentOutTogglesUsingLexerPrefix(t *testing.T) {
	ctrl, main := newTestController("foo()\nbar()\n")
	ctrl.Lexer = token.NewGoLexer()
	main.SetPosition(cursor.Position{Line: 0, Char: 0})

	if err := ctrl.Dispatch(Event{Action: CommentOut}); err != nil {
		t.Fatalf("CommentOut: %v", err)
	}
	if got := ctrl.Buf.Get(0).Content(); got != "// foo()" {
		t.Fatalf("content = %q, want commented", got)
	}

	if err := ctrl.Dispatch(Event{Action: CommentOut}); err != nil {
		t.Fatalf("CommentOut (uncomment): %v", err)
	}
	if got := ctrl.Buf.Get(0).Content(); got != "foo()" {
		t.Fatalf("content = %q, want uncommented", got)
	}
}

func TestCommentOutWithoutLexerIsNoOp(t *testing.T) {
	ctrl, main := newTestController("foo()\n")
	main.SetPosition(cursor.Position{Line: 0, Char: 0})

	if err := ctrl.Dispatch(Event{Action: CommentOut}); err != nil {
		t.Fatalf("CommentOut: %v", err)
	}
	if got := ctrl.Buf.Get(0).Content(); got != "foo()" {
		t.Fatalf("content = %q, want unchanged with no lexer attached", got)
	}
}

func TestScrollAndScreenActionsMoveViewportWithCursor(t *testing.T) {
	var lines string
	for i := 0; i < 50; i++ {
		lines += "line\n"
	}
	ctrl, main := newTestController(lines)
	main.MaxRows = 10
	main.SetPosition(cursor.Position{Line: 20, Char: 0})
	main.AtLine = 15 // cursor already mid-viewport, so SyncViewport is a no-op below

	if err := ctrl.Dispatch(Event{Action: ScrollDown}); err != nil {
		t.Fatalf("ScrollDown: %v", err)
	}
	if main.AtLine != 16 || main.Line != 21 {
		t.Fatalf("after ScrollDown: AtLine=%d Line=%d, want AtLine=16 Line=21", main.AtLine, main.Line)
	}

	if err := ctrl.Dispatch(Event{Action: ScrollUp}); err != nil {
		t.Fatalf("ScrollUp: %v", err)
	}
	if main.AtLine != 15 || main.Line != 20 {
		t.Fatalf("after ScrollUp: AtLine=%d Line=%d, want AtLine=15 Line=20", main.AtLine, main.Line)
	}

	if err := ctrl.Dispatch(Event{Action: ScreenDown}); err != nil {
		t.Fatalf("ScreenDown: %v", err)
	}
	if main.Line != 30 {
		t.Fatalf("after ScreenDown: Line=%d, want 30", main.Line)
	}

	if err := ctrl.Dispatch(Event{Action: ScreenUp}); err != nil {
		t.Fatalf("ScreenUp: %v", err)
	}
	if main.Line != 20 {
		t.Fatalf("after ScreenUp: Line=%d, want 20", main.Line)
	}
}

// TestDispatchSyncsViewportOnEveryAction exercises the fix for the broken
// scroll-origin bug: AtLine must follow the cursor down even on a plain
// motion action once the cursor moves past one screenful.
func TestDispatchSyncsViewportOnEveryAction(t *testing.T) {
	var lines string
	for i := 0; i < 20; i++ {
		lines += "x\n"
	}
	ctrl, main := newTestController(lines)
	main.MaxRows = 5

	for i := 0; i < 10; i++ {
		if err := ctrl.Dispatch(Event{Action: MoveDown}); err != nil {
			t.Fatalf("MoveDown: %v", err)
		}
	}
	if main.Line+1 > main.AtLine+main.MaxRows {
		t.Fatalf("cursor line %d fell outside viewport [%d, %d)", main.Line, main.AtLine, main.AtLine+main.MaxRows)
	}
}

func TestNewCursorDownEntersMultiMode(t *testing.T) {
	ctrl, _ := newTestController("aaa\nbbb\nccc\n")
	if ctrl.Cursors.IsMulti() {
		t.Fatalf("should start single-cursor")
	}
	if err := ctrl.Dispatch(Event{Action: NewCursorDown}); err != nil {
		t.Fatalf("NewCursorDown: %v", err)
	}
	if !ctrl.Cursors.IsMulti() {
		t.Fatalf("should be multi-cursor after NewCursorDown")
	}
}
