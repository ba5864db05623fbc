package token

import "github.com/quillcode/quill/internal/line"

// PlainText is the registry's fallback lexer: it produces no tokens, so
// the renderer paints every line with the theme's default style. This is
// the lexer promoted when no pattern matches a document's path, per
// spec.md §4.5 ("they may promote the plain-text lexer when none is
// registered").
type PlainText struct{}

func (PlainText) Name() string { return "plaintext" }

func (PlainText) CommentPrefix() string { return "" }

func (PlainText) Lex(_ string, _ State) ([]line.Token, State) {
	return nil, StateNormal
}
