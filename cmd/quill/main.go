// Command quill is Quill's process entry point: pure wiring, no editing
// logic of its own. It loads configuration, opens the named file, starts
// an LSP session when the file's type configures one, attaches a real
// terminal backend, and runs the key-poll/dispatch/render loop.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/quillcode/quill/internal/action"
	"github.com/quillcode/quill/internal/config"
	"github.com/quillcode/quill/internal/cursor"
	"github.com/quillcode/quill/internal/edit"
	"github.com/quillcode/quill/internal/line"
	"github.com/quillcode/quill/internal/logging"
	"github.com/quillcode/quill/internal/lsp"
	"github.com/quillcode/quill/internal/render"
	"github.com/quillcode/quill/internal/term"
	"github.com/quillcode/quill/internal/token"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: quill <file>")
		os.Exit(1)
	}
	if err := run(os.Args[1]); err != nil {
		fmt.Fprintln(os.Stderr, "quill:", err)
		os.Exit(1)
	}
}

func run(path string) error {
	home, _ := os.UserHomeDir()
	cfg, err := config.Load(filepath.Join(home, ".config", "quill", "quill.toml"))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	ft := cfg.ForExtension(filepath.Ext(path))

	logger, logFile, err := logging.NewFile(filepath.Join(home, ".cache", "quill.log"), logging.LevelInfo)
	if err == nil && logFile != nil {
		defer logFile.Close()
	}

	buf, err := loadBuffer(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}

	engine := edit.NewEngine(ft.IndentConfig())
	mainCursor := cursor.New()
	ctrl := action.NewController(buf, mainCursor, engine)
	ctrl.Lexer = token.DefaultRegistry().For(path)

	var proc *exec.Cmd
	if ft.HasLSP() {
		session, p, err := startLSPSession(ft, path, logger)
		if err != nil {
			logger.Warn("lsp session not started", "lang", ft.LanguageID, "err", err)
		} else {
			ctrl.Session = session
			proc = p
			defer func() {
				session.Close()
				if proc != nil {
					_ = proc.Process.Kill()
				}
			}()
		}
	}

	backend, err := term.NewTerminal()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	if err := backend.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	defer backend.Shutdown()

	renderer := rendererFor(ft.Renderer)

	return mainLoop(backend, ctrl, renderer)
}

// loadBuffer reads path into a line.Buffer, treating a missing file as a
// fresh empty document rather than an error.
func loadBuffer(path string) (*line.Buffer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return line.NewBuffer(), nil
		}
		return nil, err
	}
	return line.FromString(string(data)), nil
}

// startLSPSession spawns ft.LSPCommand as a child process and wires its
// stdin/stdout as the JSON-RPC transport, per spec.md §5's one-session-
// per-document model.
func startLSPSession(ft config.FileType, path string, logger *slog.Logger) (*lsp.Session, *exec.Cmd, error) {
	cmd := exec.Command(ft.LSPCommand[0], ft.LSPCommand[1:]...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, nil, err
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, nil, err
	}
	if err := cmd.Start(); err != nil {
		return nil, nil, err
	}

	transport := lsp.NewTransport(stdout, stdin, stdin)
	transport.Trace = logging.LSPTrace(logger, ft.LanguageID)
	transport.Start()

	session := lsp.NewSession(transport, path, ft.TabSize, ft.UseTabs)
	if err := session.SetClient(ft.LanguageID, ""); err != nil {
		return nil, cmd, err
	}
	return session, cmd, nil
}

// editorRenderer is the subset of render.CodeRenderer/TextRenderer/
// MarkdownRenderer's shared shape the main loop drives each frame.
type editorRenderer interface {
	Render(buf *line.Buffer, mc *cursor.MultiCursor, vp render.Viewport, sink render.Sink) render.Stats
	FastRender(buf *line.Buffer, mc *cursor.MultiCursor, vp render.Viewport, sink render.Sink) render.Stats
}

func rendererFor(kind string) editorRenderer {
	theme := render.DefaultTheme()
	switch kind {
	case "markdown":
		return render.NewMarkdownRenderer(theme)
	case "text":
		return render.NewTextRenderer(theme)
	default:
		return render.NewCodeRenderer(theme)
	}
}

// mainLoop runs the poll/dispatch/render cycle until the terminal delivers
// the quit key (Ctrl+C).
func mainLoop(backend *term.Terminal, ctrl *action.Controller, renderer editorRenderer) error {
	width, height := backend.Size()
	vp := render.Viewport{Width: width, Height: height - 1}
	setViewportDims(ctrl, vp)

	renderer.Render(ctrl.Buf, ctrl.Cursors, vp, backend)
	backend.Show()

	for {
		ev := backend.PollEvent()
		switch ev.Type {
		case term.EventResize:
			vp.Width, vp.Height = ev.Width, ev.Height-1
			setViewportDims(ctrl, vp)
			ctrl.Cursors.Main.SyncViewport()
			vp.TopLine = ctrl.Cursors.Main.AtLine
			renderer.Render(ctrl.Buf, ctrl.Cursors, vp, backend)
			backend.Show()
			continue
		case term.EventKey:
			if ev.Key == term.KeyCtrlC {
				return nil
			}
			act, ok := translateKey(ev)
			if !ok {
				continue
			}
			if err := ctrl.Dispatch(act); err != nil {
				continue
			}
		default:
			continue
		}

		vp.TopLine = ctrl.Cursors.Main.AtLine
		ctrl.Context()
		renderer.FastRender(ctrl.Buf, ctrl.Cursors, vp, backend)
		backend.ShowCursor(ctrl.Cursors.Main.Char, ctrl.Cursors.Main.Line-vp.TopLine)
		backend.Show()
	}
}

// setViewportDims keeps every active cursor's MaxRows/TextWidth in step
// with the terminal size, so Cursor.SyncViewport (spec.md §3) clamps
// against the real screen.
func setViewportDims(ctrl *action.Controller, vp render.Viewport) {
	for _, cur := range ctrl.Cursors.All() {
		cur.MaxRows = vp.Height
		cur.TextWidth = vp.Width
	}
}

// translateKey maps one raw terminal key event onto an EditorAction. Full
// keymap configuration is out of scope (spec.md §1's Non-goals); this is
// a fixed built-in binding covering the editing engine's core verbs.
func translateKey(ev term.Event) (action.Event, bool) {
	if ev.Key == term.KeyRune {
		return action.Event{Action: action.InsertChar, Char: ev.Rune}, true
	}
	switch ev.Key {
	case term.KeyUp:
		return action.Event{Action: action.MoveUp}, true
	case term.KeyDown:
		return action.Event{Action: action.MoveDown}, true
	case term.KeyLeft:
		return action.Event{Action: action.MoveLeft}, true
	case term.KeyRight:
		return action.Event{Action: action.MoveRight}, true
	case term.KeyHome:
		return action.Event{Action: action.StartOfLine}, true
	case term.KeyEnd:
		return action.Event{Action: action.EndOfLine}, true
	case term.KeyEnter:
		return action.Event{Action: action.NewLine}, true
	case term.KeyTab:
		return action.Event{Action: action.Indent}, true
	case term.KeyBackspace:
		return action.Event{Action: action.Backspace}, true
	case term.KeyDelete:
		return action.Event{Action: action.Del}, true
	case term.KeyPageUp:
		return action.Event{Action: action.ScreenUp}, true
	case term.KeyPageDown:
		return action.Event{Action: action.ScreenDown}, true
	default:
		return action.Event{}, false
	}
}
