// Package encoding converts between the editor's internal char-indexed
// positions and the code-unit positions used by the three encodings an LSP
// server may negotiate (UTF-8, UTF-16, UTF-32).
//
// The internal model (Line, Cursor, Edit) is always indexed by Unicode
// scalar value ("char"). Every position sent to or received from a language
// server passes through a Table for the session's negotiated Kind. Display
// width (for the renderer's column math) is computed separately with
// grapheme-cluster iteration, since wide glyphs and combining sequences do
// not map 1:1 to any of the three code-unit encodings.
package encoding
