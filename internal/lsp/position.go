package lsp

import (
	"github.com/quillcode/quill/internal/encoding"
	"github.com/quillcode/quill/internal/line"
)

// Quill's Buffer is already line-indexed with O(1) line lookup (unlike the
// teacher's PositionConverter, which builds a whole-document byte/rune/
// utf16 offset index up front because its editor model is not). Position
// translation here is therefore per-line only: encode a cursor.Position's
// Char using the line's own content, and decode a wire Position's Character
// back to a char index the same way.

// ToWire converts an internal (line, char) position to an LSP Position in
// the session's negotiated encoding.
func ToWire(buf *line.Buffer, lineIdx, charIdx int, table encoding.Table) Position {
	content := ""
	if lineIdx >= 0 && lineIdx < buf.Len() {
		content = buf.Get(lineIdx).Content()
	}
	return Position{Line: lineIdx, Character: table.Encode(content, charIdx)}
}

// FromWire converts an LSP Position back to an internal char index on the
// given line, decoding per the session's negotiated encoding.
func FromWire(buf *line.Buffer, pos Position, kind encoding.Kind) int {
	if pos.Line < 0 || pos.Line >= buf.Len() {
		return 0
	}
	content := buf.Get(pos.Line).Content()
	switch kind {
	case encoding.UTF16:
		return encoding.DecodeUTF16(content, pos.Character)
	case encoding.UTF32:
		return pos.Character
	default: // UTF8: Character is a byte offset
		charIdx := 0
		for i := range content {
			if i >= pos.Character {
				return charIdx
			}
			charIdx++
		}
		return charIdx
	}
}
