package line

import "strings"

// Buffer is an ordered sequence of Lines, owned exclusively by one Editor.
// A line index is stable only for the duration of a single action; edits
// reassign indices, so callers must not cache an index across an Action
// engine call.
type Buffer struct {
	lines []*Line
}

// NewBuffer creates an empty buffer containing a single empty line.
func NewBuffer() *Buffer {
	return &Buffer{lines: []*Line{New("")}}
}

// FromString splits s on "\n" into Lines. Callers are expected to have
// already normalized other newline styles to "\n" (spec.md §6: "newlines
// are treated as \n only").
func FromString(s string) *Buffer {
	parts := strings.Split(s, "\n")
	lines := make([]*Line, len(parts))
	for i, p := range parts {
		lines[i] = New(p)
	}
	return &Buffer{lines: lines}
}

// Len returns the number of lines.
func (b *Buffer) Len() int { return len(b.lines) }

// Get returns the line at idx, or nil if out of range.
func (b *Buffer) Get(idx int) *Line {
	if idx < 0 || idx >= len(b.lines) {
		return nil
	}
	return b.lines[idx]
}

// Lines returns the underlying slice. Callers must not retain it across a
// mutation.
func (b *Buffer) Lines() []*Line { return b.lines }

// Insert inserts l at idx, shifting subsequent lines down.
func (b *Buffer) Insert(idx int, l *Line) {
	if idx < 0 {
		idx = 0
	}
	if idx > len(b.lines) {
		idx = len(b.lines)
	}
	b.lines = append(b.lines, nil)
	copy(b.lines[idx+1:], b.lines[idx:])
	b.lines[idx] = l
}

// Remove deletes and returns the line at idx.
func (b *Buffer) Remove(idx int) *Line {
	l := b.lines[idx]
	b.lines = append(b.lines[:idx], b.lines[idx+1:]...)
	return l
}

// Append adds l to the end of the buffer.
func (b *Buffer) Append(l *Line) { b.lines = append(b.lines, l) }

// Text reassembles the full document text, joining lines with "\n".
func (b *Buffer) Text() string {
	var sb strings.Builder
	for i, l := range b.lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(l.Content())
	}
	return sb.String()
}

// IsEmpty reports whether the buffer has no content at all: a single empty
// line, the same state NewBuffer produces.
func (b *Buffer) IsEmpty() bool {
	return len(b.lines) == 1 && b.lines[0].CharLen() == 0
}

// EnsureTrailingNewline appends a trailing empty line if the last line is
// non-empty, matching spec.md §6's write contract ("writes append a
// trailing newline if the logical last line is empty" — i.e. on-disk text
// always ends in exactly one newline when the buffer's last line holds
// content).
func (b *Buffer) EnsureTrailingNewline() {
	last := b.lines[len(b.lines)-1]
	if last.CharLen() > 0 {
		b.Append(New(""))
	}
}
