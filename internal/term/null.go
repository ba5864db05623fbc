package term

import "github.com/quillcode/quill/internal/render"

// NullBackend is an in-memory Backend for tests and headless tooling,
// grounded on the teacher's NullBackend.
type NullBackend struct {
	width, height int
	cells         [][]render.Cell
	cursorCol     int
	cursorRow     int
	cursorVisible bool
	events        chan Event
	beeps         int
}

// NewNullBackend creates a null backend sized width by height.
func NewNullBackend(width, height int) *NullBackend {
	return &NullBackend{
		width:  width,
		height: height,
		events: make(chan Event, 64),
	}
}

func (b *NullBackend) Init() error {
	b.cells = make([][]render.Cell, b.height)
	for i := range b.cells {
		b.cells[i] = make([]render.Cell, b.width)
	}
	return nil
}

func (b *NullBackend) Shutdown() {}

func (b *NullBackend) Size() (int, int) { return b.width, b.height }

func (b *NullBackend) Show() {}

func (b *NullBackend) ShowCursor(col, row int) {
	b.cursorCol, b.cursorRow, b.cursorVisible = col, row, true
}

func (b *NullBackend) HideCursor() { b.cursorVisible = false }

func (b *NullBackend) Beep() { b.beeps++ }

func (b *NullBackend) Suspend() error { return nil }
func (b *NullBackend) Resume() error  { return nil }

func (b *NullBackend) PollEvent() Event { return <-b.events }

// PostEvent queues a synthetic event for the next PollEvent call, letting
// tests drive the main loop without a real tty.
func (b *NullBackend) PostEvent(ev Event) { b.events <- ev }

// SetCell implements render.Sink.
func (b *NullBackend) SetCell(row, col int, cell render.Cell) {
	if row >= 0 && row < b.height && col >= 0 && col < b.width {
		b.cells[row][col] = cell
	}
}

// ClearRow implements render.Sink.
func (b *NullBackend) ClearRow(row, fromCol, width int, style render.Style) {
	if row < 0 || row >= b.height {
		return
	}
	blank := render.Cell{Text: " ", Width: 1, Style: style}
	for col := fromCol; col < fromCol+width && col < b.width; col++ {
		if col >= 0 {
			b.cells[row][col] = blank
		}
	}
}

// CellAt returns the cell at (row, col), for test assertions.
func (b *NullBackend) CellAt(row, col int) render.Cell { return b.cells[row][col] }

// CursorPosition reports the last ShowCursor call, for test assertions.
func (b *NullBackend) CursorPosition() (col, row int, visible bool) {
	return b.cursorCol, b.cursorRow, b.cursorVisible
}

// BeepCount reports how many times Beep has been called.
func (b *NullBackend) BeepCount() int { return b.beeps }

var _ Backend = (*NullBackend)(nil)
var _ render.Sink = (*NullBackend)(nil)
