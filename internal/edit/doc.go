// Package edit implements the transactional edit/undo engine: the Edit
// record, the coalescing buffer that merges rapid keystrokes into one
// undo step, and the Engine that exposes the coarse action verbs
// (push_char, new_line, indent, backspace, paste, ...) described in
// spec.md §4.3, producing both undo records and LSP didChange events in
// one pass.
package edit
