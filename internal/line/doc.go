// Package line provides the per-line text representation at the heart of
// the editor: content plus its syntax-token stripe, diagnostic stripe, and
// render-cache tag, and the ordered Buffer that owns a document's Lines.
//
// A Line tracks its Unicode scalar-value ("char") length alongside its raw
// UTF-8 content so char-indexed slicing, LSP position encoding, and cursor
// motion never re-scan the string from the start unless the line contains
// non-ASCII content. Every mutator resets the line's render-cache tag; the
// renderer is the only reader of that tag, and stores a new one through
// SetRenderCache after painting the line.
package line
