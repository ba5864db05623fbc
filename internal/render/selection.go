package render

import (
	"github.com/quillcode/quill/internal/cursor"
	"github.com/quillcode/quill/internal/line"
)

// selectionOnLine restricts sel to the portion of it that falls on lineIdx,
// extending to the line's full width on every line strictly between the
// selection's endpoints, or nil if sel does not touch lineIdx at all.
func selectionOnLine(buf *line.Buffer, sel cursor.Selection, lineIdx int) *SelectSpan {
	if sel.IsEmpty() {
		return nil
	}
	lo, hi := sel.Normalized()
	if lineIdx < lo.Line || lineIdx > hi.Line {
		return nil
	}

	from := 0
	if lineIdx == lo.Line {
		from = lo.Char
	}
	to := buf.Get(lineIdx).CharLen()
	if lineIdx == hi.Line {
		to = hi.Char
	}
	if from >= to {
		return nil
	}
	return &SelectSpan{FromChar: from, ToChar: to}
}

// selectionLenChars sums the char length of sel across every line it spans,
// the figure the status line's stats report.
func selectionLenChars(buf *line.Buffer, sel *cursor.Selection) int {
	if sel == nil || sel.IsEmpty() {
		return 0
	}
	lo, hi := sel.Normalized()
	if lo.Line == hi.Line {
		return hi.Char - lo.Char
	}
	total := buf.Get(lo.Line).CharLen() - lo.Char + 1 // +1 for the newline
	for l := lo.Line + 1; l < hi.Line; l++ {
		total += buf.Get(l).CharLen() + 1
	}
	total += hi.Char
	return total
}
