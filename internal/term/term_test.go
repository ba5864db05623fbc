package term

import (
	"testing"

	"github.com/quillcode/quill/internal/render"
)

func TestNullBackendSetCellAndClearRow(t *testing.T) {
	b := NewNullBackend(10, 5)
	if err := b.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}

	b.SetCell(2, 3, render.Cell{Text: "x", Width: 1})
	if got := b.CellAt(2, 3).Text; got != "x" {
		t.Fatalf("cell text = %q, want x", got)
	}

	b.ClearRow(2, 0, 10, render.DefaultStyle)
	if got := b.CellAt(2, 3).Text; got != " " {
		t.Fatalf("cell text after clear = %q, want space", got)
	}
}

func TestNullBackendShowCursorTracksPosition(t *testing.T) {
	b := NewNullBackend(10, 5)
	_ = b.Init()

	b.ShowCursor(4, 1)
	col, row, visible := b.CursorPosition()
	if col != 4 || row != 1 || !visible {
		t.Fatalf("cursor = (%d,%d,%v), want (4,1,true)", col, row, visible)
	}

	b.HideCursor()
	if _, _, visible := b.CursorPosition(); visible {
		t.Fatalf("cursor still visible after HideCursor")
	}
}

func TestNullBackendPollEventReturnsPostedEvent(t *testing.T) {
	b := NewNullBackend(80, 24)
	_ = b.Init()

	b.PostEvent(Event{Type: EventKey, Key: KeyRune, Rune: 'q'})
	ev := b.PollEvent()
	if ev.Type != EventKey || ev.Rune != 'q' {
		t.Fatalf("event = %+v, want key rune q", ev)
	}
}

func TestNullBackendOutOfBoundsCellsAreIgnored(t *testing.T) {
	b := NewNullBackend(4, 4)
	_ = b.Init()

	b.SetCell(-1, 0, render.Cell{Text: "x", Width: 1})
	b.SetCell(0, 10, render.Cell{Text: "x", Width: 1})
	// Neither call should panic; nothing further to assert.
}

func TestModMaskHas(t *testing.T) {
	m := ModCtrl | ModShift
	if !m.Has(ModCtrl) || !m.Has(ModShift) {
		t.Fatalf("Has failed for combined mask %v", m)
	}
	if m.Has(ModAlt) {
		t.Fatalf("Has falsely reported ModAlt")
	}
}
