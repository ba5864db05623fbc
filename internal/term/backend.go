// Package term is Quill's terminal-backend layer (spec.md §6): a small
// Backend interface abstracting the real terminal from the editor's main
// loop, plus a concrete tcell-based realization that also implements
// render.Sink so a renderer can paint directly into the live screen.
package term

// Key identifies a non-rune key. Plain character input arrives as
// KeyRune with the character in Event.Rune.
type Key int

const (
	KeyNone Key = iota
	KeyRune
	KeyEscape
	KeyEnter
	KeyTab
	KeyBackspace
	KeyDelete
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyCtrlA
	KeyCtrlC
	KeyCtrlD
	KeyCtrlF
	KeyCtrlG
	KeyCtrlH
	KeyCtrlK
	KeyCtrlO
	KeyCtrlR
	KeyCtrlS
	KeyCtrlU
	KeyCtrlV
	KeyCtrlW
	KeyCtrlX
	KeyCtrlY
	KeyCtrlZ
)

// ModMask is a bitset of held modifier keys.
type ModMask int

const (
	ModNone ModMask = 0
	ModShift ModMask = 1 << iota
	ModCtrl
	ModAlt
)

func (m ModMask) Has(mod ModMask) bool { return m&mod != 0 }

// EventType identifies the kind of terminal event delivered by PollEvent.
type EventType int

const (
	EventNone EventType = iota
	EventKey
	EventResize
	EventPaste
)

// Event is one terminal input event. Only the fields relevant to its
// Type are populated.
type Event struct {
	Type EventType

	Key  Key
	Rune rune
	Mod  ModMask

	Width, Height int

	PasteText string
}

// Backend is the surface the editor's main loop drives: initialize once,
// poll events, and let a renderer paint through the render.Sink this
// Backend also implements.
type Backend interface {
	// Init brings up the terminal (raw mode, alternate screen) and must
	// be called before any other method.
	Init() error
	// Shutdown restores the terminal to its original state.
	Shutdown()
	// Size returns the current terminal dimensions in columns, rows.
	Size() (width, height int)
	// Show flushes pending cell writes to the terminal.
	Show()
	// ShowCursor positions and reveals the terminal cursor.
	ShowCursor(col, row int)
	// HideCursor hides the terminal cursor.
	HideCursor()
	// PollEvent blocks until the next input or resize event.
	PollEvent() Event
	// Beep rings the terminal bell.
	Beep()
	// Suspend releases the terminal (e.g. for a shell escape) and Resume
	// reacquires it.
	Suspend() error
	Resume() error
}
