package edit

import (
	"github.com/quillcode/quill/internal/cursor"
	"github.com/quillcode/quill/internal/encoding"
	"github.com/quillcode/quill/internal/line"
)

// Engine is the Action engine of spec.md §3/§4.3: it holds the undo/redo
// stacks, the coalescing buffer, the indent policy, and produces LSP
// change events alongside undo records in one pass. One Engine serves one
// open document.
type Engine struct {
	Cfg Config

	done   []Group
	undone []Group

	coalescer Coalescer

	version  int
	encoding encoding.Table

	pendingEvents   []ChangeEvent
	pendingRangeSet bool
	pendingStart    int
	pendingEnd      int
}

// NewEngine creates an engine with the given indent policy. The encoding
// starts at UTF-32 (spec.md §4.1: "UTF-32 when no LSP is active").
func NewEngine(cfg Config) *Engine {
	return &Engine{Cfg: cfg, encoding: encoding.TableFor(encoding.DefaultNoLSP)}
}

// SetEncoding installs the encoding negotiated with the active LSP
// session, or resets to UTF-32 when the session closes.
func (e *Engine) SetEncoding(t encoding.Table) { e.encoding = t }

// Version returns the current LSP document version.
func (e *Engine) Version() int { return e.version }

// DoneLen reports the number of undoable edits, counting the in-progress
// coalesced keystroke (if any) as the top entry — this is the view a test
// or status line cares about, even though the coalescer is a separate
// value from the done stack internally.
func (e *Engine) DoneLen() int {
	n := len(e.done)
	if e.coalescer.Active() {
		n++
	}
	return n
}

// UndoneLen reports the number of redoable edits.
func (e *Engine) UndoneLen() int { return len(e.undone) }

// flushBuffer completes any in-progress coalesced edit and pushes it onto
// the done stack, clearing undone. Every discrete action calls this before
// performing its own edit (teacher's push_buffer).
func (e *Engine) flushBuffer(buf *line.Buffer) {
	if r := e.coalescer.Flush(); r != nil {
		e.commit(buf, Group{*r})
	}
}

// PollCoalesceTimeout flushes the coalescing buffer if its clock has
// exceeded Timeout. Called once per frame by the controller alongside the
// LSP context poll, independent of any new keystroke.
func (e *Engine) PollCoalesceTimeout(buf *line.Buffer) {
	if r := e.coalescer.PollTimeout(); r != nil {
		e.commit(buf, Group{*r})
	}
}

// commit pushes an already-applied group onto done, clears undone, and
// records its LSP change events.
func (e *Engine) commit(buf *line.Buffer, g Group) {
	if len(g) == 0 {
		return
	}
	e.done = append(e.done, g)
	e.undone = nil
	e.recordEvents(buf, g)
}

func (e *Engine) recordEvents(buf *line.Buffer, g Group) {
	for _, r := range g {
		ev := EncodeChangeEvent(buf, r, e.encoding)
		e.pendingEvents = append(e.pendingEvents, ev)
		start := r.Meta.StartLine
		end := start + r.Meta.LinesInserted
		if !e.pendingRangeSet {
			e.pendingStart, e.pendingEnd = start, end
			e.pendingRangeSet = true
			continue
		}
		if start < e.pendingStart {
			e.pendingStart = start
		}
		if end > e.pendingEnd {
			e.pendingEnd = end
		}
	}
}

// FlushEvents implements spec.md §4.3's change-event production: it
// combines pending Edits into one event list, increments version, and
// returns the minimum span that must be re-tokenized. Called by the LSP
// session controller when it is ready to ship a didChange notification.
func (e *Engine) FlushEvents(buf *line.Buffer) (version int, events []ChangeEvent, partialTokenStart, partialTokenEnd int) {
	e.flushBuffer(buf)
	if len(e.pendingEvents) == 0 {
		return e.version, nil, 0, 0
	}
	e.version++
	events = e.pendingEvents
	partialTokenStart, partialTokenEnd = e.pendingStart, e.pendingEnd
	e.pendingEvents = nil
	e.pendingRangeSet = false
	return e.version, events, partialTokenStart, partialTokenEnd
}

// Undo pops the most recent edit (flushing any in-progress coalesced
// keystroke into done first) and reverses it.
func (e *Engine) Undo(buf *line.Buffer, cur *cursor.Cursor) {
	e.flushBuffer(buf)
	if len(e.done) == 0 {
		return
	}
	g := e.done[len(e.done)-1]
	e.done = e.done[:len(e.done)-1]

	ApplyGroupReverse(buf, g)

	inverted := make(Group, len(g))
	for i, r := range g {
		inverted[len(g)-1-i] = r.Invert()
	}
	e.undone = append(e.undone, g)
	e.recordEvents(buf, inverted)

	if len(g) > 0 {
		first := g[0]
		cur.ClearSelection()
		cur.SetPosition(first.Pos)
		if first.SelectBefore != nil {
			sel := *first.SelectBefore
			cur.Select = &sel
		}
	}
}

// Redo pops the most recently undone edit and reapplies it.
func (e *Engine) Redo(buf *line.Buffer, cur *cursor.Cursor) {
	if len(e.undone) == 0 {
		return
	}
	g := e.undone[len(e.undone)-1]
	e.undone = e.undone[:len(e.undone)-1]

	ApplyGroup(buf, g)
	e.done = append(e.done, g)
	e.recordEvents(buf, g)

	if len(g) > 0 {
		last := g[len(g)-1]
		end := endPosition(last.Pos, last.Text)
		cur.ClearSelection()
		cur.SetPosition(end)
		if last.SelectAfter != nil {
			sel := *last.SelectAfter
			cur.Select = &sel
		}
	}
}

// textBetween returns the document text in [from, to), joined with "\n"
// across line boundaries.
func textBetween(buf *line.Buffer, from, to cursor.Position) string {
	if from.Line == to.Line {
		s, _ := buf.Get(from.Line).Get(from.Char, to.Char)
		return s
	}
	var out []byte
	first, _ := buf.Get(from.Line).GetFrom(from.Char)
	out = append(out, first...)
	for ln := from.Line + 1; ln < to.Line; ln++ {
		out = append(out, '\n')
		out = append(out, buf.Get(ln).Content()...)
	}
	out = append(out, '\n')
	last, _ := buf.Get(to.Line).GetTo(to.Char)
	out = append(out, last...)
	return string(out)
}

func cloneSelect(s *cursor.Selection) *cursor.Selection {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}
