package edit

import (
	"strings"

	"github.com/quillcode/quill/internal/cursor"
	"github.com/quillcode/quill/internal/line"
)

// takeSelection snapshots the active selection's removed text and clears it
// from cur, without touching buf. Callers splice the returned span
// themselves so they can fold the removal into a larger edit (push_char
// replaces a selection with the typed char in one Record, not two).
func (e *Engine) takeSelection(buf *line.Buffer, cur *cursor.Cursor) (lo, hi cursor.Position, removed string, selBefore *cursor.Selection) {
	lo, hi, _ = cur.SelectionRange()
	removed = textBetween(buf, lo, hi)
	selBefore = cloneSelect(cur.Select)
	cur.ClearSelection()
	return
}

// PushChar types one character at the cursor, per spec.md §4.3: a selection
// is replaced outright; a char that merely repeats an already-present
// closing bracket/quote steps over it instead of inserting a duplicate; an
// opening bracket/quote inserts its pair and lands the cursor between them;
// anything else feeds the coalescing buffer.
func (e *Engine) PushChar(buf *line.Buffer, cur *cursor.Cursor, ch rune) {
	if cur.HasSelection() {
		e.flushBuffer(buf)
		lo, hi, removed, selBefore := e.takeSelection(buf, cur)
		splice(buf, lo, hi, string(ch))
		rec := NewRecord(lo, removed, string(ch))
		rec.SelectBefore = selBefore
		cur.SetPosition(cursor.Position{Line: lo.Line, Char: lo.Char + 1})
		e.commit(buf, Group{rec})
		return
	}

	l := buf.Get(cur.Line)
	if isClosingRepeat(l.Chars(), ch, cur.Char) {
		cur.Char++
		return
	}

	if closing, ok := closingFor[ch]; ok {
		e.flushBuffer(buf)
		pos := cur.Position()
		pair := string(ch) + string(closing)
		l.InsertStr(cur.Char, pair)
		cur.Char++
		e.commit(buf, Group{NewRecord(pos, "", pair)})
		return
	}

	pos := cur.Position()
	l.Insert(cur.Char, ch)
	cur.Char++
	if rec := e.coalescer.PushInsert(pos, ch, nil); rec != nil {
		e.commit(buf, Group{*rec})
	}
}

// NewLine splits the current line (or replaces the selection) at the
// cursor, deriving the new line's indent from the policy, and expanding a
// cursor sitting between a scope-opening/closing bracket pair into a
// three-line block.
func (e *Engine) NewLine(buf *line.Buffer, cur *cursor.Cursor) {
	e.flushBuffer(buf)
	if cur.HasSelection() {
		lo, hi, removed, selBefore := e.takeSelection(buf, cur)
		e.insertNewlineAt(buf, cur, lo, hi, removed, selBefore)
		return
	}
	pos := cur.Position()
	e.insertNewlineAt(buf, cur, pos, pos, "", nil)
}

func (e *Engine) insertNewlineAt(buf *line.Buffer, cur *cursor.Cursor, lo, hi cursor.Position, removed string, selBefore *cursor.Selection) {
	startLine := buf.Get(lo.Line)
	prefix, _ := startLine.GetTo(lo.Char)

	var suffix string
	if hi.Line == lo.Line {
		suffix, _ = startLine.GetFrom(hi.Char)
	} else {
		suffix, _ = buf.Get(hi.Line).GetFrom(hi.Char)
	}

	prefixRunes := []rune(prefix)
	suffixRunes := []rune(suffix)
	havePrev := len(prefixRunes) > 0
	haveNext := len(suffixRunes) > 0
	var prevRune, nextRune rune
	if havePrev {
		prevRune = prefixRunes[len(prefixRunes)-1]
	}
	if haveNext {
		nextRune = suffixRunes[0]
	}

	var inserted string
	var newCol int
	if havePrev && haveNext && opensScope(prevRune, nextRune) {
		baseIndent := leadingWhitespace(prefix)
		innerIndent := baseIndent + e.Cfg.Indent
		inserted = "\n" + innerIndent + "\n" + baseIndent
		newCol = len([]rune(innerIndent))
	} else {
		indent := e.Cfg.deriveIndent(prefix)
		inserted = "\n" + indent
		newCol = len([]rune(indent))
	}

	// A line holding only whitespace that Enter splits gets cleared rather
	// than carried forward on both sides of the split.
	if !haveNext && prefix != "" && isAllWhitespace(prefix) {
		lo = cursor.Position{Line: lo.Line, Char: 0}
		removed = prefix + removed
	}

	splice(buf, lo, hi, inserted)
	rec := NewRecord(lo, removed, inserted)
	rec.SelectBefore = selBefore
	e.commit(buf, Group{rec})
	cur.ClearSelection()
	cur.SetPosition(cursor.Position{Line: lo.Line + 1, Char: newCol})
}

// linesForIndent returns the inclusive line range a block indent/unindent
// touches: every line the selection spans, or just the cursor's line.
func linesForIndent(cur *cursor.Cursor) (int, int) {
	if lo, hi, ok := cur.SelectionRange(); ok {
		return lo.Line, hi.Line
	}
	return cur.Line, cur.Line
}

func clampNonNeg(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

// Indent inserts one indent unit at the cursor, or, when the selection
// spans more than one line, indents every line it touches (IndentStart).
func (e *Engine) Indent(buf *line.Buffer, cur *cursor.Cursor) {
	if lo, hi, ok := cur.SelectionRange(); ok && lo.Line != hi.Line {
		e.IndentStart(buf, cur)
		return
	}
	e.flushBuffer(buf)
	pos := cur.Position()
	l := buf.Get(cur.Line)
	l.InsertStr(cur.Char, e.Cfg.Indent)
	e.commit(buf, Group{NewRecord(pos, "", e.Cfg.Indent)})
	cur.Char += len([]rune(e.Cfg.Indent))
}

// IndentStart adds one indent unit to the start of every line the cursor's
// selection spans (or just its own line, with no selection).
func (e *Engine) IndentStart(buf *line.Buffer, cur *cursor.Cursor) {
	e.flushBuffer(buf)
	start, end := linesForIndent(cur)
	width := len([]rune(e.Cfg.Indent))
	var g Group
	for ln := start; ln <= end; ln++ {
		l := buf.Get(ln)
		l.InsertStr(0, e.Cfg.Indent)
		g = append(g, NewRecord(cursor.Position{Line: ln, Char: 0}, "", e.Cfg.Indent))
	}
	if len(g) == 0 {
		return
	}
	e.commit(buf, g)
	shiftForIndent(cur, start, end, width)
}

// Unindent removes up to one indent unit from the start of every line the
// cursor's selection spans (or just its own line).
func (e *Engine) Unindent(buf *line.Buffer, cur *cursor.Cursor) {
	e.flushBuffer(buf)
	start, end := linesForIndent(cur)
	var g Group
	maxRemoved := 0
	for ln := start; ln <= end; ln++ {
		l := buf.Get(ln)
		content := l.Content()
		_, n := e.Cfg.unindentOnce(content)
		if n == 0 {
			continue
		}
		runes := []rune(content)
		removed := string(runes[:n])
		l.ReplaceRange(0, n, "")
		g = append(g, NewRecord(cursor.Position{Line: ln, Char: 0}, removed, ""))
		if n > maxRemoved {
			maxRemoved = n
		}
	}
	if len(g) == 0 {
		return
	}
	e.commit(buf, g)
	shiftForIndent(cur, start, end, -maxRemoved)
}

// ToggleLineComment toggles prefix as a line-comment marker across every
// line the cursor's selection spans (or just its own line), per line: if
// every non-blank touched line already starts with prefix, it is removed
// from all of them; otherwise it is added (as "prefix ") to every
// non-blank line that doesn't already have it. A no-op if prefix is empty
// (the active lexer has no line-comment syntax).
func (e *Engine) ToggleLineComment(buf *line.Buffer, cur *cursor.Cursor, prefix string) {
	if prefix == "" {
		return
	}
	e.flushBuffer(buf)
	start, end := linesForIndent(cur)
	marker := prefix + " "

	commenting := false
	for ln := start; ln <= end; ln++ {
		trimmed := strings.TrimLeft(buf.Get(ln).Content(), " \t")
		if trimmed == "" {
			continue
		}
		if !strings.HasPrefix(trimmed, prefix) {
			commenting = true
			break
		}
	}

	var g Group
	delta := make(map[int]int)
	for ln := start; ln <= end; ln++ {
		l := buf.Get(ln)
		content := l.Content()
		lead := len(content) - len(strings.TrimLeft(content, " \t"))
		rest := content[lead:]
		if rest == "" {
			continue
		}
		pos := cursor.Position{Line: ln, Char: lead}
		switch {
		case commenting:
			if strings.HasPrefix(rest, prefix) {
				continue
			}
			l.InsertStr(lead, marker)
			g = append(g, NewRecord(pos, "", marker))
			delta[ln] = len([]rune(marker))
		case strings.HasPrefix(rest, marker):
			l.ReplaceRange(lead, lead+len([]rune(marker)), "")
			g = append(g, NewRecord(pos, marker, ""))
			delta[ln] = -len([]rune(marker))
		case strings.HasPrefix(rest, prefix):
			l.ReplaceRange(lead, lead+len([]rune(prefix)), "")
			g = append(g, NewRecord(pos, prefix, ""))
			delta[ln] = -len([]rune(prefix))
		}
	}
	if len(g) == 0 {
		return
	}
	e.commit(buf, g)

	if d, ok := delta[cur.Line]; ok {
		cur.Char = clampNonNeg(cur.Char + d)
	}
	if cur.Select != nil {
		if d, ok := delta[cur.Select.Anchor.Line]; ok {
			cur.Select.Anchor.Char = clampNonNeg(cur.Select.Anchor.Char + d)
		}
		if d, ok := delta[cur.Select.Head.Line]; ok {
			cur.Select.Head.Char = clampNonNeg(cur.Select.Head.Char + d)
		}
	}
}

func shiftForIndent(cur *cursor.Cursor, start, end, delta int) {
	if cur.Line >= start && cur.Line <= end {
		cur.Char = clampNonNeg(cur.Char + delta)
	}
	if cur.Select == nil {
		return
	}
	if cur.Select.Anchor.Line >= start && cur.Select.Anchor.Line <= end {
		cur.Select.Anchor.Char = clampNonNeg(cur.Select.Anchor.Char + delta)
	}
	if cur.Select.Head.Line >= start && cur.Select.Head.Line <= end {
		cur.Select.Head.Char = clampNonNeg(cur.Select.Head.Char + delta)
	}
}

// Backspace removes the char before the cursor, joins with the previous
// line at column 0, or removes the selection.
func (e *Engine) Backspace(buf *line.Buffer, cur *cursor.Cursor) {
	if cur.HasSelection() {
		e.flushBuffer(buf)
		lo, hi, removed, selBefore := e.takeSelection(buf, cur)
		splice(buf, lo, hi, "")
		rec := NewRecord(lo, removed, "")
		rec.SelectBefore = selBefore
		cur.SetPosition(lo)
		e.commit(buf, Group{rec})
		return
	}
	if cur.Char == 0 {
		if cur.Line == 0 {
			return
		}
		e.flushBuffer(buf)
		pos := cursor.Position{Line: cur.Line - 1, Char: buf.Get(cur.Line - 1).CharLen()}
		splice(buf, pos, cursor.Position{Line: cur.Line, Char: 0}, "")
		e.commit(buf, Group{NewRecord(pos, "\n", "")})
		cur.SetPosition(pos)
		return
	}
	l := buf.Get(cur.Line)
	removedChar := l.Chars()[cur.Char-1]
	before := cur.Position()
	after := cursor.Position{Line: cur.Line, Char: cur.Char - 1}
	l.Remove(cur.Char - 1)
	cur.Char--
	if rec := e.coalescer.PushBackspace(before, removedChar, after, nil); rec != nil {
		e.commit(buf, Group{*rec})
	}
}

// Del removes the char after the cursor, joins with the next line at its
// end, or removes the selection.
func (e *Engine) Del(buf *line.Buffer, cur *cursor.Cursor) {
	if cur.HasSelection() {
		e.flushBuffer(buf)
		lo, hi, removed, selBefore := e.takeSelection(buf, cur)
		splice(buf, lo, hi, "")
		rec := NewRecord(lo, removed, "")
		rec.SelectBefore = selBefore
		cur.SetPosition(lo)
		e.commit(buf, Group{rec})
		return
	}
	l := buf.Get(cur.Line)
	if cur.Char >= l.CharLen() {
		if cur.Line >= buf.Len()-1 {
			return
		}
		e.flushBuffer(buf)
		pos := cur.Position()
		splice(buf, pos, cursor.Position{Line: cur.Line + 1, Char: 0}, "")
		e.commit(buf, Group{NewRecord(pos, "\n", "")})
		return
	}
	removedChar := l.Chars()[cur.Char]
	pos := cur.Position()
	l.Remove(cur.Char)
	if rec := e.coalescer.PushDelete(pos, removedChar, nil); rec != nil {
		e.commit(buf, Group{*rec})
	}
}

// SwapUp moves the cursor's line above its predecessor, re-deriving both
// lines' indent for their new neighbors.
func (e *Engine) SwapUp(buf *line.Buffer, cur *cursor.Cursor) {
	if cur.Line == 0 {
		return
	}
	e.swapLines(buf, cur.Line-1, cur.Line)
	cur.Line--
}

// SwapDown moves the cursor's line below its successor.
func (e *Engine) SwapDown(buf *line.Buffer, cur *cursor.Cursor) {
	if cur.Line >= buf.Len()-1 {
		return
	}
	e.swapLines(buf, cur.Line, cur.Line+1)
	cur.Line++
}

func (e *Engine) swapLines(buf *line.Buffer, upper, lower int) {
	e.flushBuffer(buf)
	upperContent := buf.Get(upper).Content()
	lowerContent := buf.Get(lower).Content()

	prevOfUpper := ""
	if upper > 0 {
		prevOfUpper = buf.Get(upper - 1).Content()
	}
	newUpper := e.Cfg.deriveIndent(prevOfUpper) + strings.TrimLeft(lowerContent, " \t")
	newLower := e.Cfg.deriveIndent(newUpper) + strings.TrimLeft(upperContent, " \t")

	pos := cursor.Position{Line: upper, Char: 0}
	end := cursor.Position{Line: lower, Char: buf.Get(lower).CharLen()}
	removed := upperContent + "\n" + lowerContent
	inserted := newUpper + "\n" + newLower

	splice(buf, pos, end, inserted)
	e.commit(buf, Group{NewRecord(pos, removed, inserted)})
}
