package cursor

import (
	"unicode"

	"github.com/quillcode/quill/internal/line"
)

// Up moves the cursor one line up, using the phantom column so crossing a
// shorter line and returning yields the original column.
func (c *Cursor) Up(buf *line.Buffer) {
	c.moveVertical(buf, -1)
}

// Down moves the cursor one line down.
func (c *Cursor) Down(buf *line.Buffer) {
	c.moveVertical(buf, 1)
}

func (c *Cursor) moveVertical(buf *line.Buffer, delta int) {
	target := c.Line + delta
	if target < 0 || target >= buf.Len() {
		return
	}
	c.Line = target
	c.Char = clampChar(c.phantomChar, buf.Get(target).CharLen())
}

func clampChar(want, maxChar int) int {
	if want > maxChar {
		return maxChar
	}
	if want < 0 {
		return 0
	}
	return want
}

// ScrollUp moves the viewport up one line, carrying the cursor up with it.
// Grounded on the original's Cursor::scroll_up.
func (c *Cursor) ScrollUp(buf *line.Buffer) {
	if c.AtLine != 0 {
		c.AtLine--
		c.Up(buf)
	}
}

// ScrollDown moves the viewport down one line, carrying the cursor down
// with it. Grounded on the original's Cursor::scroll_down.
func (c *Cursor) ScrollDown(buf *line.Buffer) {
	if c.AtLine < buf.Len()-2 {
		c.AtLine++
		c.Down(buf)
	}
}

// ScreenUp pages the viewport up by a full screenful (MaxRows), carrying
// the cursor with it. The original's screen_up body sits outside the
// filtered source; this follows scroll_up's at_line/cursor coupling
// scaled from one line to MaxRows lines.
func (c *Cursor) ScreenUp(buf *line.Buffer) {
	rows := c.MaxRows
	if rows <= 0 {
		rows = 1
	}
	if c.AtLine == 0 {
		return
	}
	delta := rows
	if delta > c.AtLine {
		delta = c.AtLine
	}
	c.AtLine -= delta
	target := c.Line - delta
	if target < 0 {
		target = 0
	}
	c.Line = target
	c.Char = clampChar(c.phantomChar, buf.Get(target).CharLen())
}

// ScreenDown pages the viewport down by a full screenful (MaxRows),
// carrying the cursor with it. See ScreenUp for grounding.
func (c *Cursor) ScreenDown(buf *line.Buffer) {
	rows := c.MaxRows
	if rows <= 0 {
		rows = 1
	}
	maxAtLine := buf.Len() - 2
	if maxAtLine < 0 {
		maxAtLine = 0
	}
	if c.AtLine >= maxAtLine {
		return
	}
	delta := rows
	if c.AtLine+delta > maxAtLine {
		delta = maxAtLine - c.AtLine
	}
	c.AtLine += delta
	target := c.Line + delta
	if target >= buf.Len() {
		target = buf.Len() - 1
	}
	c.Line = target
	c.Char = clampChar(c.phantomChar, buf.Get(target).CharLen())
}

// Left moves the cursor one char left, wrapping to the end of the previous
// line at a line boundary.
func (c *Cursor) Left(buf *line.Buffer) {
	if c.Char > 0 {
		c.Char--
	} else if c.Line > 0 {
		c.Line--
		c.Char = buf.Get(c.Line).CharLen()
	}
	c.phantomChar = c.Char
}

// Right moves the cursor one char right, wrapping to the start of the next
// line at a line boundary.
func (c *Cursor) Right(buf *line.Buffer) {
	lineLen := buf.Get(c.Line).CharLen()
	if c.Char < lineLen {
		c.Char++
	} else if c.Line < buf.Len()-1 {
		c.Line++
		c.Char = 0
	}
	c.phantomChar = c.Char
}

// EndOfLine moves to one past the last char on the current line (spec.md
// §9 open question 2: char = len, not len-1).
func (c *Cursor) EndOfLine(buf *line.Buffer) {
	c.Char = buf.Get(c.Line).CharLen()
	c.phantomChar = c.Char
}

// StartOfLine moves to the first non-whitespace char, or column 0 if the
// cursor is already there or the line is blank.
func (c *Cursor) StartOfLine(buf *line.Buffer) {
	content := buf.Get(c.Line).Content()
	firstNonWS := 0
	for _, r := range content {
		if !unicode.IsSpace(r) {
			break
		}
		firstNonWS++
	}
	if c.Char == firstNonWS {
		c.Char = 0
	} else {
		c.Char = firstNonWS
	}
	c.phantomChar = c.Char
}

// EndOfFile moves to one past the last char of the last line.
func (c *Cursor) EndOfFile(buf *line.Buffer) {
	c.Line = buf.Len() - 1
	c.EndOfLine(buf)
}

// StartOfFile moves to (0,0).
func (c *Cursor) StartOfFile(buf *line.Buffer) {
	c.Line = 0
	c.Char = 0
	c.phantomChar = 0
}

func isWordChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

// JumpLeft skips backward over a run of alphanumerics then one
// non-alphanumeric (or to the start of the line/file).
func (c *Cursor) JumpLeft(buf *line.Buffer) {
	for {
		content := buf.Get(c.Line).Chars()
		if c.Char == 0 {
			if c.Line == 0 {
				return
			}
			c.Line--
			c.Char = buf.Get(c.Line).CharLen()
			continue
		}
		skipRun(content, &c.Char, -1)
		break
	}
	c.phantomChar = c.Char
}

// JumpRight skips forward over a run of alphanumerics then one
// non-alphanumeric (or to the end of the line/file).
func (c *Cursor) JumpRight(buf *line.Buffer) {
	for {
		content := buf.Get(c.Line).Chars()
		if c.Char >= len(content) {
			if c.Line >= buf.Len()-1 {
				return
			}
			c.Line++
			c.Char = 0
			continue
		}
		skipRun(content, &c.Char, 1)
		break
	}
	c.phantomChar = c.Char
}

// skipRun moves idx by dir over a run of word chars, then over one
// non-word char (e.g. punctuation/space), stopping at either end of
// content. Moving left, the char examined is the one just before idx.
func skipRun(content []rune, idx *int, dir int) {
	n := len(content)
	next := func() (rune, bool) {
		i := *idx
		if dir < 0 {
			i--
		}
		if i < 0 || i >= n {
			return 0, false
		}
		return content[i], true
	}

	for r, ok := next(); ok && isWordChar(r); r, ok = next() {
		*idx += dir
	}
	if r, ok := next(); ok && !isWordChar(r) {
		*idx += dir
	}
}

// selectTo extends the active selection's head to p, creating the
// selection anchored at the cursor's pre-motion position if none existed.
func (c *Cursor) selectTo(before Position, p Position) {
	if c.Select == nil {
		c.Select = &Selection{Anchor: before, Head: p}
	} else {
		c.Select.Head = p
	}
	c.SetPosition(p)
}

// SelectUp is Up with selection extension.
func (c *Cursor) SelectUp(buf *line.Buffer) { c.withSelect(buf, (*Cursor).Up) }

// SelectDown is Down with selection extension.
func (c *Cursor) SelectDown(buf *line.Buffer) { c.withSelect(buf, (*Cursor).Down) }

// SelectLeft is Left with selection extension.
func (c *Cursor) SelectLeft(buf *line.Buffer) { c.withSelect(buf, (*Cursor).Left) }

// SelectRight is Right with selection extension.
func (c *Cursor) SelectRight(buf *line.Buffer) { c.withSelect(buf, (*Cursor).Right) }

// SelectJumpLeft is JumpLeft with selection extension.
func (c *Cursor) SelectJumpLeft(buf *line.Buffer) { c.withSelect(buf, (*Cursor).JumpLeft) }

// SelectJumpRight is JumpRight with selection extension.
func (c *Cursor) SelectJumpRight(buf *line.Buffer) { c.withSelect(buf, (*Cursor).JumpRight) }

func (c *Cursor) withSelect(buf *line.Buffer, motion func(*Cursor, *line.Buffer)) {
	before := c.Position()
	motion(c, buf)
	c.selectTo(before, c.Position())
}

// SelectToken extends/sets the selection to the word run under the cursor.
func (c *Cursor) SelectToken(buf *line.Buffer) {
	content := buf.Get(c.Line).Chars()
	start, end := c.Char, c.Char
	if start < len(content) && isWordChar(content[start]) {
		for start > 0 && isWordChar(content[start-1]) {
			start--
		}
		for end < len(content) && isWordChar(content[end]) {
			end++
		}
	}
	c.Select = &Selection{Anchor: Position{c.Line, start}, Head: Position{c.Line, end}}
	c.SetPosition(Position{c.Line, end})
}

// SelectLine selects the current line including its trailing newline
// boundary (head sits at the start of the next line, or end of buffer for
// the last line).
func (c *Cursor) SelectLine(buf *line.Buffer) {
	anchor := Position{c.Line, 0}
	var head Position
	if c.Line < buf.Len()-1 {
		head = Position{c.Line + 1, 0}
	} else {
		head = Position{c.Line, buf.Get(c.Line).CharLen()}
	}
	c.Select = &Selection{Anchor: anchor, Head: head}
	c.SetPosition(head)
}

// SelectAll selects the entire buffer.
func (c *Cursor) SelectAll(buf *line.Buffer) {
	last := buf.Len() - 1
	c.Select = &Selection{Anchor: Position{0, 0}, Head: Position{last, buf.Get(last).CharLen()}}
	c.SetPosition(c.Select.Head)
}
