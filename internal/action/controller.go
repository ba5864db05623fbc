package action

import (
	"errors"
	"strings"

	"github.com/quillcode/quill/internal/cursor"
	"github.com/quillcode/quill/internal/edit"
	"github.com/quillcode/quill/internal/line"
	"github.com/quillcode/quill/internal/lsp"
	"github.com/quillcode/quill/internal/token"
)

// ErrNoSession is returned by an LSP-backed action when no Session is
// attached to the controller.
var ErrNoSession = errors.New("action: no lsp session attached")

// Controller is the glue of spec.md §2's data flow: keyboard/mouse event ->
// controller -> Action engine mutates Lines and Cursor -> Action engine
// emits an (EditMeta, change event) pair -> LSP controller posts the
// change event. One Controller serves one open document.
type Controller struct {
	Buf     *line.Buffer
	Cursors *cursor.MultiCursor
	Engine  *edit.Engine

	// Session is nil when no LSP server is attached to this document; every
	// LSP-backed action is then a no-op returning ErrNoSession.
	Session *lsp.Session

	// Lexer supplies CommentOut's line-comment marker. Nil (or one with an
	// empty CommentPrefix) makes CommentOut a no-op, per spec.md §4.5's
	// plain-text fallback.
	Lexer token.Lexer

	ClipboardRead  func() string
	ClipboardWrite func(string)
}

// NewController creates a Controller around a single cursor, in
// single-cursor mode.
func NewController(buf *line.Buffer, cur *cursor.Cursor, engine *edit.Engine) *Controller {
	return &Controller{Buf: buf, Cursors: cursor.NewMultiCursor(cur), Engine: engine}
}

// Dispatch executes one EditorAction. Single-cursor-style actions fan out
// across every active cursor in descending document order (spec.md §4.4),
// followed by a consolidation pass; actions that mutate text additionally
// drive the LSP session's change-event sync.
func (c *Controller) Dispatch(ev Event) error {
	defer c.Cursors.Main.SyncViewport()

	switch ev.Action {
	case NewCursorUp:
		c.Cursors.NewCursorUp(c.Buf)
		return nil
	case NewCursorDown:
		c.Cursors.NewCursorDown(c.Buf)
		return nil
	case SelectAll:
		c.Cursors.Main.SelectAll(c.Buf)
		c.Cursors.Extras = nil
		return nil
	case Undo:
		c.Engine.Undo(c.Buf, c.Cursors.Main)
		c.Cursors.Extras = nil
		return c.syncLSP()
	case Redo:
		c.Engine.Redo(c.Buf, c.Cursors.Main)
		c.Cursors.Extras = nil
		return c.syncLSP()
	case Copy:
		if c.ClipboardWrite != nil {
			c.ClipboardWrite(c.Engine.Copy(c.Buf, c.Cursors.Main))
		}
		return nil
	case Cut:
		text := c.Engine.Cut(c.Buf, c.Cursors.Main)
		if c.ClipboardWrite != nil {
			c.ClipboardWrite(text)
		}
		return c.syncLSP()
	case Paste:
		text := ev.Text
		if text == "" && c.ClipboardRead != nil {
			text = c.ClipboardRead()
		}
		c.Engine.Paste(c.Buf, c.Cursors.Main, text)
		return c.syncLSP()
	case PasteInvoked:
		return nil
	case Completion, Hover, SignatureHelp, Definition, Declaration, References:
		return c.requestFeature(ev.Action)
	case Rename:
		return c.renameAt(ev.NewName)
	case Formatting:
		return c.format()
	}

	if c.Cursors.IsMulti() {
		c.Cursors.FanOut(func(cur *cursor.Cursor) { c.applySingle(cur, ev) })
	} else {
		c.applySingle(c.Cursors.Main, ev)
	}
	c.Cursors.Consolidate()

	if motionActions[ev.Action] {
		return nil
	}
	return c.syncLSP()
}

// applySingle executes ev against one cursor: the per-cursor half of
// fan-out, and the whole of single-cursor mode.
func (c *Controller) applySingle(cur *cursor.Cursor, ev Event) {
	switch ev.Action {
	case MoveUp:
		cur.Up(c.Buf)
	case MoveDown:
		cur.Down(c.Buf)
	case MoveLeft:
		cur.Left(c.Buf)
	case MoveRight:
		cur.Right(c.Buf)
	case JumpLeft:
		cur.JumpLeft(c.Buf)
	case JumpRight:
		cur.JumpRight(c.Buf)
	case StartOfLine:
		cur.StartOfLine(c.Buf)
	case EndOfLine:
		cur.EndOfLine(c.Buf)
	case StartOfFile:
		cur.StartOfFile(c.Buf)
	case EndOfFile:
		cur.EndOfFile(c.Buf)
	case SelectUp:
		cur.SelectUp(c.Buf)
	case SelectDown:
		cur.SelectDown(c.Buf)
	case SelectLeft:
		cur.SelectLeft(c.Buf)
	case SelectRight:
		cur.SelectRight(c.Buf)
	case SelectJumpLeft:
		cur.SelectJumpLeft(c.Buf)
	case SelectJumpRight:
		cur.SelectJumpRight(c.Buf)
	case SelectToken:
		cur.SelectToken(c.Buf)
	case SelectLine:
		cur.SelectLine(c.Buf)
	case ScrollUp:
		cur.ScrollUp(c.Buf)
	case ScrollDown:
		cur.ScrollDown(c.Buf)
	case ScreenUp:
		cur.ScreenUp(c.Buf)
	case ScreenDown:
		cur.ScreenDown(c.Buf)
	case InsertChar:
		c.Engine.PushChar(c.Buf, cur, ev.Char)
	case NewLine:
		c.Engine.NewLine(c.Buf, cur)
	case Backspace:
		c.Engine.Backspace(c.Buf, cur)
	case Del:
		c.Engine.Del(c.Buf, cur)
	case Indent:
		c.Engine.Indent(c.Buf, cur)
	case IndentStart:
		c.Engine.IndentStart(c.Buf, cur)
	case Unindent:
		c.Engine.Unindent(c.Buf, cur)
	case SwapUp:
		c.Engine.SwapUp(c.Buf, cur)
	case SwapDown:
		c.Engine.SwapDown(c.Buf, cur)
	case CommentOut:
		if c.Lexer != nil && c.Lexer.CommentPrefix() != "" {
			c.Engine.ToggleLineComment(c.Buf, cur, c.Lexer.CommentPrefix())
		}
	case RemoveLine:
		cur.ClearSelection()
		c.Engine.Cut(c.Buf, cur)
	case UppercaseSelection:
		if cur.HasSelection() {
			text := c.Engine.Copy(c.Buf, cur)
			c.Engine.ReplaceSelect(c.Buf, cur, strings.ToUpper(text))
		}
	}
}

// syncLSP flushes the engine's pending change events through the attached
// session, if any. A document with no LSP server attached is not an error.
func (c *Controller) syncLSP() error {
	if c.Session == nil {
		return nil
	}
	return c.Session.Sync(c.Buf, c.Engine)
}

func (c *Controller) requestFeature(a EditorAction) error {
	if c.Session == nil {
		return ErrNoSession
	}
	kind := map[EditorAction]string{
		Completion:    "completion",
		Hover:         "hover",
		SignatureHelp: "signatureHelp",
		Definition:    "definition",
		Declaration:   "declaration",
		References:    "references",
	}[a]
	_, err := c.Session.Request(kind, c.Buf, c.Cursors.Main.Line, c.Cursors.Main.Char)
	return err
}

func (c *Controller) renameAt(newName string) error {
	if c.Session == nil {
		return ErrNoSession
	}
	_, err := c.Session.Rename(c.Buf, c.Cursors.Main.Line, c.Cursors.Main.Char, newName)
	return err
}

func (c *Controller) format() error {
	if c.Session == nil {
		return ErrNoSession
	}
	_, err := c.Session.Request("formatting", c.Buf, c.Cursors.Main.Line, c.Cursors.Main.Char)
	return err
}

// Context drains the LSP session's inbox, hands the session's negotiated
// position encoding to the engine and flushes any pending partial-tokens
// request, if a session is attached; it then runs the engine's
// coalesce-timeout poll, with or without a session. Call once per frame.
func (c *Controller) Context() {
	if c.Session != nil {
		c.Session.Context(c.Buf)
		c.Engine.SetEncoding(c.Session.Encoding())
		c.Session.FlushPartialTokens(c.Buf)
	}
	c.Engine.PollCoalesceTimeout(c.Buf)
}
