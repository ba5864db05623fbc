package term

import (
	"sync"

	"github.com/gdamore/encoding"
	"github.com/gdamore/tcell/v2"

	"github.com/quillcode/quill/internal/render"
)

func init() {
	// Registers non-UTF8 terminfo encodings so Terminal.Init still works
	// under legacy locales, per tcell's own recommended setup.
	encoding.Register()
}

// Terminal is the tcell-backed realization of Backend. It also implements
// render.Sink directly, so the same value the main loop polls events from
// is the value a renderer paints into.
type Terminal struct {
	screen tcell.Screen
	mu     sync.Mutex
}

// NewTerminal opens the controlling terminal via tcell's platform-default
// screen (the real tty, not an in-memory simulation).
func NewTerminal() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return &Terminal{screen: screen}, nil
}

func (t *Terminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.screen.Init(); err != nil {
		return err
	}
	t.screen.EnablePaste()
	t.screen.HideCursor()
	return nil
}

func (t *Terminal) Shutdown() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.screen.Fini()
}

func (t *Terminal) Size() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.screen.Size()
}

func (t *Terminal) Show() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.screen.Show()
}

func (t *Terminal) ShowCursor(col, row int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.screen.ShowCursor(col, row)
}

func (t *Terminal) HideCursor() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.screen.HideCursor()
}

func (t *Terminal) Beep() {
	t.mu.Lock()
	defer t.mu.Unlock()
	_ = t.screen.Beep()
}

func (t *Terminal) Suspend() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.screen.Suspend()
}

func (t *Terminal) Resume() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.screen.Resume()
}

func (t *Terminal) PollEvent() Event {
	ev := t.screen.PollEvent()
	return convertEvent(ev)
}

// SetCell implements render.Sink by painting one grapheme cluster: its
// leading rune is given to tcell as the main rune and any further runes as
// combining runes. Continuation cells (empty Text, Width 0) from a wide
// cluster are skipped, since SetContent already reserves the following
// column for a double-width rune.
func (t *Terminal) SetCell(row, col int, cell render.Cell) {
	if cell.Text == "" {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	runes := []rune(cell.Text)
	t.screen.SetContent(col, row, runes[0], runes[1:], convertStyle(cell.Style))
}

// ClearRow implements render.Sink by blanking [fromCol, fromCol+width) of
// row with style.
func (t *Terminal) ClearRow(row, fromCol, width int, style render.Style) {
	t.mu.Lock()
	defer t.mu.Unlock()

	s := convertStyle(style)
	for col := fromCol; col < fromCol+width; col++ {
		t.screen.SetContent(col, row, ' ', nil, s)
	}
}

func convertStyle(s render.Style) tcell.Style {
	style := tcell.StyleDefault
	if !s.Fg.Default {
		style = style.Foreground(tcell.NewRGBColor(int32(s.Fg.R), int32(s.Fg.G), int32(s.Fg.B)))
	}
	if !s.Bg.Default {
		style = style.Background(tcell.NewRGBColor(int32(s.Bg.R), int32(s.Bg.G), int32(s.Bg.B)))
	}
	if s.Attrs.Has(render.AttrBold) {
		style = style.Bold(true)
	}
	if s.Attrs.Has(render.AttrItalic) {
		style = style.Italic(true)
	}
	if s.Attrs.Has(render.AttrUnderline) {
		style = style.Underline(true)
	}
	if s.Attrs.Has(render.AttrReverse) {
		style = style.Reverse(true)
	}
	return style
}

func convertEvent(ev tcell.Event) Event {
	switch e := ev.(type) {
	case *tcell.EventKey:
		return Event{
			Type: EventKey,
			Key:  convertKey(e.Key()),
			Rune: e.Rune(),
			Mod:  convertMod(e.Modifiers()),
		}
	case *tcell.EventResize:
		w, h := e.Size()
		return Event{Type: EventResize, Width: w, Height: h}
	case *tcell.EventPaste:
		if e.Start() {
			return Event{Type: EventNone}
		}
		return Event{Type: EventPaste}
	default:
		return Event{Type: EventNone}
	}
}

func convertKey(k tcell.Key) Key {
	switch k {
	case tcell.KeyRune:
		return KeyRune
	case tcell.KeyEscape:
		return KeyEscape
	case tcell.KeyEnter:
		return KeyEnter
	case tcell.KeyTab:
		return KeyTab
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return KeyBackspace
	case tcell.KeyDelete:
		return KeyDelete
	case tcell.KeyHome:
		return KeyHome
	case tcell.KeyEnd:
		return KeyEnd
	case tcell.KeyPgUp:
		return KeyPageUp
	case tcell.KeyPgDn:
		return KeyPageDown
	case tcell.KeyUp:
		return KeyUp
	case tcell.KeyDown:
		return KeyDown
	case tcell.KeyLeft:
		return KeyLeft
	case tcell.KeyRight:
		return KeyRight
	case tcell.KeyCtrlA:
		return KeyCtrlA
	case tcell.KeyCtrlC:
		return KeyCtrlC
	case tcell.KeyCtrlD:
		return KeyCtrlD
	case tcell.KeyCtrlF:
		return KeyCtrlF
	case tcell.KeyCtrlG:
		return KeyCtrlG
	case tcell.KeyCtrlH:
		return KeyCtrlH
	case tcell.KeyCtrlK:
		return KeyCtrlK
	case tcell.KeyCtrlO:
		return KeyCtrlO
	case tcell.KeyCtrlR:
		return KeyCtrlR
	case tcell.KeyCtrlS:
		return KeyCtrlS
	case tcell.KeyCtrlU:
		return KeyCtrlU
	case tcell.KeyCtrlV:
		return KeyCtrlV
	case tcell.KeyCtrlW:
		return KeyCtrlW
	case tcell.KeyCtrlX:
		return KeyCtrlX
	case tcell.KeyCtrlY:
		return KeyCtrlY
	case tcell.KeyCtrlZ:
		return KeyCtrlZ
	default:
		return KeyNone
	}
}

func convertMod(m tcell.ModMask) ModMask {
	var result ModMask
	if m&tcell.ModShift != 0 {
		result |= ModShift
	}
	if m&tcell.ModCtrl != 0 {
		result |= ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		result |= ModAlt
	}
	return result
}

var _ Backend = (*Terminal)(nil)
var _ render.Sink = (*Terminal)(nil)
