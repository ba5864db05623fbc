// Package token supplies the pluggable local lexers spec.md §4.5 describes:
// a per-file-type Lexer runs over a line's text on demand and produces the
// same line.Token stripe an LSP semantic-tokens response would, so the
// renderer never needs to know which source populated a line's tokens.
package token
