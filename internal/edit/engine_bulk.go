package edit

import (
	"sort"

	"github.com/quillcode/quill/internal/cursor"
	"github.com/quillcode/quill/internal/line"
)

// ReplaceSelect replaces the active selection with text, or inserts text at
// the cursor when there is none. Used by Paste and by anything that needs
// to drop in an arbitrary string without push_char's bracket handling.
func (e *Engine) ReplaceSelect(buf *line.Buffer, cur *cursor.Cursor, text string) {
	e.flushBuffer(buf)
	var lo, hi cursor.Position
	var removed string
	var selBefore *cursor.Selection
	if cur.HasSelection() {
		lo, hi, removed, selBefore = e.takeSelection(buf, cur)
	} else {
		lo = cur.Position()
		hi = lo
	}
	splice(buf, lo, hi, text)
	rec := NewRecord(lo, removed, text)
	rec.SelectBefore = selBefore
	end := endPosition(lo, text)
	e.commit(buf, Group{rec})
	cur.ClearSelection()
	cur.SetPosition(end)
}

// Paste is ReplaceSelect under the name the clipboard action uses.
func (e *Engine) Paste(buf *line.Buffer, cur *cursor.Cursor, text string) {
	e.ReplaceSelect(buf, cur, text)
}

// Copy returns the selection's text, or the current line (with a trailing
// newline) when there is no selection — the common no-selection clipboard
// convention.
func (e *Engine) Copy(buf *line.Buffer, cur *cursor.Cursor) string {
	if lo, hi, ok := cur.SelectionRange(); ok {
		return textBetween(buf, lo, hi)
	}
	return buf.Get(cur.Line).Content() + "\n"
}

// Cut returns the same text Copy would and removes it from the buffer: the
// selection if one is active, or the whole current line.
func (e *Engine) Cut(buf *line.Buffer, cur *cursor.Cursor) string {
	if cur.HasSelection() {
		e.flushBuffer(buf)
		lo, hi, removed, selBefore := e.takeSelection(buf, cur)
		splice(buf, lo, hi, "")
		rec := NewRecord(lo, removed, "")
		rec.SelectBefore = selBefore
		cur.SetPosition(lo)
		e.commit(buf, Group{rec})
		return removed
	}

	e.flushBuffer(buf)
	text := buf.Get(cur.Line).Content()
	if buf.Len() == 1 {
		pos := cursor.Position{Line: cur.Line, Char: 0}
		splice(buf, pos, cursor.Position{Line: cur.Line, Char: buf.Get(cur.Line).CharLen()}, "")
		e.commit(buf, Group{NewRecord(pos, text, "")})
		cur.SetPosition(pos)
		return text + "\n"
	}
	pos := cursor.Position{Line: cur.Line, Char: 0}
	var end cursor.Position
	removed := text + "\n"
	if cur.Line < buf.Len()-1 {
		end = cursor.Position{Line: cur.Line + 1, Char: 0}
	} else {
		end = cursor.Position{Line: cur.Line, Char: buf.Get(cur.Line).CharLen()}
		pos = cursor.Position{Line: cur.Line - 1, Char: buf.Get(cur.Line - 1).CharLen()}
		removed = "\n" + text
	}
	splice(buf, pos, end, "")
	e.commit(buf, Group{NewRecord(pos, removed, "")})
	cur.SetPosition(cursor.Position{Line: pos.Line, Char: 0})
	return text + "\n"
}

// tokenSpanAt returns the char range of the token covering charIdx on l, or
// false if charIdx falls outside every token (e.g. whitespace).
func tokenSpanAt(l *line.Line, charIdx int) (start, end int, ok bool) {
	for _, t := range l.Tokens() {
		if charIdx >= t.Start && charIdx < t.End() {
			return t.Start, t.End(), true
		}
	}
	return 0, 0, false
}

// ReplaceToken replaces the token under the cursor (e.g. a local-rename
// target) with text. It is a no-op if the cursor does not sit on a token.
func (e *Engine) ReplaceToken(buf *line.Buffer, cur *cursor.Cursor, text string) bool {
	l := buf.Get(cur.Line)
	start, end, ok := tokenSpanAt(l, cur.Char)
	if !ok {
		return false
	}
	e.flushBuffer(buf)
	pos := cursor.Position{Line: cur.Line, Char: start}
	removed, _ := l.Get(start, end)
	splice(buf, pos, cursor.Position{Line: cur.Line, Char: end}, text)
	e.commit(buf, Group{NewRecord(pos, removed, text)})
	cur.SetPosition(endPosition(pos, text))
	return true
}

// TextEdit is one LSP-style replacement of a range with text, as delivered
// by workspace/applyEdit or a rename response.
type TextEdit struct {
	StartLine, StartChar int
	EndLine, EndChar     int
	Text                 string
}

// sortEditsDescending orders edits so the one nearest the end of the
// document comes first: applying in that order means an earlier edit in
// the list never invalidates a later one's positions.
func sortEditsDescending(edits []TextEdit) []TextEdit {
	out := append([]TextEdit(nil), edits...)
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.StartLine != b.StartLine {
			return a.StartLine > b.StartLine
		}
		return a.StartChar > b.StartChar
	})
	return out
}

// ApplyEdits applies a batch of LSP text edits (formatting, rename,
// codeAction) as a single undoable Group, descending-order per spec.md
// §4.4's multi-cursor fan-out rule so earlier splices don't shift the
// positions later ones were computed against.
func (e *Engine) ApplyEdits(buf *line.Buffer, edits []TextEdit) {
	if len(edits) == 0 {
		return
	}
	e.flushBuffer(buf)
	ordered := sortEditsDescending(edits)
	g := make(Group, 0, len(ordered))
	for _, ed := range ordered {
		start := cursor.Position{Line: ed.StartLine, Char: ed.StartChar}
		end := cursor.Position{Line: ed.EndLine, Char: ed.EndChar}
		removed := textBetween(buf, start, end)
		splice(buf, start, end, ed.Text)
		g = append(g, NewRecord(start, removed, ed.Text))
	}
	// g is stored in the same tail-to-head order it was applied in:
	// ApplyGroup (redo) must replay it the same way, and ApplyGroupReverse
	// (undo) walks it back to front, undoing the head-most edit first and
	// the tail-most last — the mirror of how they were applied.
	e.commit(buf, g)
}

// MassReplace replaces every occurrence of pat in the buffer with repl, as
// one undoable Group. It operates line by line; a match straddling a line
// boundary is not supported, matching the per-Line token/diagnostic model.
func (e *Engine) MassReplace(buf *line.Buffer, pat, repl string) int {
	if pat == "" {
		return 0
	}
	e.flushBuffer(buf)
	var g Group
	for ln := 0; ln < buf.Len(); ln++ {
		l := buf.Get(ln)
		matches := l.MatchIndices(pat)
		if len(matches) == 0 {
			continue
		}
		patLen := len([]rune(pat))
		for i := len(matches) - 1; i >= 0; i-- {
			charIdx := matches[i]
			pos := cursor.Position{Line: ln, Char: charIdx}
			l.ReplaceRange(charIdx, charIdx+patLen, repl)
			g = append(g, NewRecord(pos, pat, repl))
		}
	}
	if len(g) == 0 {
		return 0
	}
	e.commit(buf, g)
	return len(g)
}
