package cursor

import (
	"sort"

	"github.com/quillcode/quill/internal/line"
)

// MultiCursor holds the main cursor plus any extra cursors created via
// NewCursorUp/NewCursorDown. Single-cursor mode is simply MultiCursor with
// no Extras.
type MultiCursor struct {
	Main   *Cursor
	Extras []*Cursor
}

// NewMultiCursor wraps a single cursor with no extras.
func NewMultiCursor(main *Cursor) *MultiCursor {
	return &MultiCursor{Main: main}
}

// All returns every active cursor, main first.
func (m *MultiCursor) All() []*Cursor {
	out := make([]*Cursor, 0, 1+len(m.Extras))
	out = append(out, m.Main)
	out = append(out, m.Extras...)
	return out
}

// IsMulti reports whether more than one cursor is active.
func (m *MultiCursor) IsMulti() bool { return len(m.Extras) > 0 }

// NewCursorUp clones the main cursor, moves the clone up one line, and adds
// it to Extras, entering multi-cursor mode.
func (m *MultiCursor) NewCursorUp(buf *line.Buffer) {
	clone := m.cloneMain()
	clone.Up(buf)
	m.Extras = append(m.Extras, clone)
	m.Consolidate()
}

// NewCursorDown clones the main cursor, moves the clone down one line, and
// adds it to Extras.
func (m *MultiCursor) NewCursorDown(buf *line.Buffer) {
	clone := m.cloneMain()
	clone.Down(buf)
	m.Extras = append(m.Extras, clone)
	m.Consolidate()
}

func (m *MultiCursor) cloneMain() *Cursor {
	c := *m.Main
	if m.Main.Select != nil {
		sel := *m.Main.Select
		c.Select = &sel
	}
	return &c
}

// FanOut runs action against every cursor (main plus extras) in descending
// (line, char) order, so an edit made for an earlier cursor in the pass
// never invalidates the buffer positions a later cursor in the pass still
// needs to read.
func (m *MultiCursor) FanOut(action func(*Cursor)) {
	ordered := m.descendingOrder()
	for _, c := range ordered {
		action(c)
	}
}

func (m *MultiCursor) descendingOrder() []*Cursor {
	all := m.All()
	sort.Slice(all, func(i, j int) bool {
		return all[j].Position().Before(all[i].Position())
	})
	return all
}

// Consolidate removes duplicate cursors (idempotent per spec.md §8 property
// 5): cursors at the same position with no selection collapse to one; a
// cursor whose selection (or position) overlaps another's selection merges
// with it into the union. The result is in strictly descending (line, char)
// order: Main is the cursor at the highest position and Extras hold the
// rest in descending order.
func (m *MultiCursor) Consolidate() {
	all := m.All()
	sort.Slice(all, func(i, j int) bool {
		return all[i].Position().Before(all[j].Position())
	})

	merged := make([]*Cursor, 0, len(all))
	for _, c := range all {
		if len(merged) == 0 {
			merged = append(merged, c)
			continue
		}
		last := merged[len(merged)-1]
		if overlaps(last, c) {
			merged[len(merged)-1] = mergeCursors(last, c)
			continue
		}
		merged = append(merged, c)
	}

	sort.Slice(merged, func(i, j int) bool {
		return merged[j].Position().Before(merged[i].Position())
	})

	m.Main = merged[0]
	if len(merged) > 1 {
		m.Extras = merged[1:]
	} else {
		m.Extras = nil
	}
}

func overlaps(a, b *Cursor) bool {
	if a.Select == nil && b.Select == nil {
		return a.Position() == b.Position()
	}
	aLo, aHi := selectionOrPoint(a)
	bLo, bHi := selectionOrPoint(b)
	return !aHi.Before(bLo) && !bHi.Before(aLo)
}

func selectionOrPoint(c *Cursor) (Position, Position) {
	if c.Select == nil {
		return c.Position(), c.Position()
	}
	lo, hi := c.Select.Normalized()
	return lo, hi
}

func mergeCursors(a, b *Cursor) *Cursor {
	if a.Select == nil && b.Select == nil {
		// Same position, no selection: keep either (identical).
		return a
	}
	aLo, aHi := selectionOrPoint(a)
	bLo, bHi := selectionOrPoint(b)
	lo := aLo
	if bLo.Before(aLo) {
		lo = bLo
	}
	hi := aHi
	if aHi.Before(bHi) {
		hi = bHi
	}
	merged := *a
	merged.Select = &Selection{Anchor: lo, Head: hi}
	merged.SetPosition(hi)
	return &merged
}
