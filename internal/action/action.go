// Package action is the controller/key-dispatcher glue of spec.md §2: it
// owns one open document's buffer, multi-cursor set, and action engine, and
// turns a closed verb (EditorAction) into calls against cursor, edit, and
// (optionally) lsp. Key-to-action binding is not part of this package:
// cmd/quill maps terminal keys to actions with a fixed table (translateKey).
package action

// EditorAction is the closed set of action verbs the controller
// understands (spec.md's GLOSSARY entry for EditorAction).
type EditorAction string

const (
	MoveUp    EditorAction = "move_up"
	MoveDown  EditorAction = "move_down"
	MoveLeft  EditorAction = "move_left"
	MoveRight EditorAction = "move_right"

	JumpLeft  EditorAction = "jump_left"
	JumpRight EditorAction = "jump_right"

	StartOfLine EditorAction = "start_of_line"
	EndOfLine   EditorAction = "end_of_line"
	StartOfFile EditorAction = "start_of_file"
	EndOfFile   EditorAction = "end_of_file"

	SelectUp        EditorAction = "select_up"
	SelectDown      EditorAction = "select_down"
	SelectLeft      EditorAction = "select_left"
	SelectRight     EditorAction = "select_right"
	SelectJumpLeft  EditorAction = "select_jump_left"
	SelectJumpRight EditorAction = "select_jump_right"
	SelectToken     EditorAction = "select_token"
	SelectLine      EditorAction = "select_line"
	SelectAll       EditorAction = "select_all"

	NewCursorUp   EditorAction = "new_cursor_up"
	NewCursorDown EditorAction = "new_cursor_down"

	// ScrollUp/ScrollDown move the viewport by one line, carrying the cursor
	// with it; ScreenUp/ScreenDown move both by a full screenful (spec.md §6).
	ScrollUp   EditorAction = "scroll_up"
	ScrollDown EditorAction = "scroll_down"
	ScreenUp   EditorAction = "screen_up"
	ScreenDown EditorAction = "screen_down"

	InsertChar  EditorAction = "insert_char"
	NewLine     EditorAction = "new_line"
	Backspace   EditorAction = "backspace"
	Del         EditorAction = "del"
	Indent      EditorAction = "indent"
	IndentStart EditorAction = "indent_start"
	Unindent    EditorAction = "unindent"
	SwapUp      EditorAction = "swap_up"
	SwapDown    EditorAction = "swap_down"
	CommentOut  EditorAction = "comment_out"
	RemoveLine  EditorAction = "remove_line"

	// UppercaseSelection replaces the active selection with its uppercase
	// form, or does nothing when there is no selection.
	UppercaseSelection EditorAction = "uppercase_selection"

	Undo EditorAction = "undo"
	Redo EditorAction = "redo"

	Cut   EditorAction = "cut"
	Copy  EditorAction = "copy"
	Paste EditorAction = "paste"

	// PasteInvoked exists per spec.md §9 open question 1: one mapping bound
	// both Cut and PasteInvoked to the same chord, with PasteInvoked's arm
	// unreachable. It is never dispatched; kept only so the closed enum
	// still names it.
	PasteInvoked EditorAction = "paste_invoked"

	Completion    EditorAction = "completion"
	Hover         EditorAction = "hover"
	SignatureHelp EditorAction = "signature_help"
	Definition    EditorAction = "definition"
	Declaration   EditorAction = "declaration"
	References    EditorAction = "references"
	Rename        EditorAction = "rename"
	Formatting    EditorAction = "formatting"
)

// Event is one dispatched EditorAction plus whatever payload it carries.
// Most actions carry none.
type Event struct {
	Action EditorAction

	// Char is InsertChar's typed rune.
	Char rune

	// Text is Paste's content. When empty, Controller.Dispatch falls back
	// to ClipboardRead.
	Text string

	// NewName is Rename's replacement identifier.
	NewName string
}

// motionActions never mutate the buffer, so dispatching them never needs an
// LSP sync.
var motionActions = map[EditorAction]bool{
	MoveUp: true, MoveDown: true, MoveLeft: true, MoveRight: true,
	JumpLeft: true, JumpRight: true,
	StartOfLine: true, EndOfLine: true, StartOfFile: true, EndOfFile: true,
	SelectUp: true, SelectDown: true, SelectLeft: true, SelectRight: true,
	SelectJumpLeft: true, SelectJumpRight: true,
	SelectToken: true, SelectLine: true, SelectAll: true,
	NewCursorUp: true, NewCursorDown: true,
	ScrollUp: true, ScrollDown: true, ScreenUp: true, ScreenDown: true,
}
