package edit

import (
	"strings"
	"unicode/utf8"

	"github.com/quillcode/quill/internal/encoding"
	"github.com/quillcode/quill/internal/line"
)

// ChangeEvent is one LSP textDocument/didChange content change: a range in
// the document before the edit, encoded in the session's negotiated
// encoding, plus the replacement text.
type ChangeEvent struct {
	StartLine, StartChar int
	EndLine, EndChar     int
	Text                 string
}

// EncodeChangeEvent derives r's LSP change event using buf's state AFTER r
// has been applied (the start line's prefix up to r.Pos.Char is identical
// before and after the edit, which is all the start position's encoding
// needs; the end position is encoded from r.Reverse's own content, which
// fully describes what the removed span's last line looked like up to the
// cut point).
func EncodeChangeEvent(buf *line.Buffer, r Record, table encoding.Table) ChangeEvent {
	startLine := buf.Get(r.Pos.Line)
	startEncoded := table.Encode(startLine.Content(), r.Pos.Char)

	endPos := endPosition(r.Pos, r.Reverse)
	var oldEndLineUpToEnd string
	if endPos.Line == r.Pos.Line {
		prefix, _ := startLine.GetTo(r.Pos.Char)
		oldEndLineUpToEnd = prefix + r.Reverse
	} else {
		segs := strings.Split(r.Reverse, "\n")
		oldEndLineUpToEnd = segs[len(segs)-1]
	}
	endEncoded := table.Encode(oldEndLineUpToEnd, endPos.Char)

	return ChangeEvent{
		StartLine:  r.Pos.Line,
		StartChar:  startEncoded,
		EndLine:    endPos.Line,
		EndChar:    endEncoded,
		Text:       r.Text,
	}
}

// EncodeChangeEvents builds one event per record in g, in order.
func EncodeChangeEvents(buf *line.Buffer, g Group, table encoding.Table) []ChangeEvent {
	out := make([]ChangeEvent, len(g))
	for i, r := range g {
		out[i] = EncodeChangeEvent(buf, r, table)
	}
	return out
}

// charCount is a small helper kept local to avoid importing utf8 in every
// call site that needs a rune count.
func charCount(s string) int { return utf8.RuneCountInString(s) }
