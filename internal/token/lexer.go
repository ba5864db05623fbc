package token

import (
	"github.com/tidwall/match"

	"github.com/quillcode/quill/internal/line"
)

// StyleID indexes into the active theme's style table. The set below is
// deliberately small — enough to distinguish the categories a status line
// or theme actually colors differently — rather than the much finer-grained
// scope hierarchy a full TextMate grammar would need.
type StyleID uint32

const (
	StyleNone StyleID = iota
	StyleComment
	StyleString
	StyleNumber
	StyleKeyword
	StyleOperator
	StylePunctuation
	StyleIdentifier
	StyleFunction
	StyleType
	StyleConstant
)

// State carries a lexer's end-of-line state into the next line, for
// constructs that span line boundaries (block comments, unterminated
// strings). StateNormal means "no construct is open."
type State uint8

const StateNormal State = 0

// Lexer tokenizes one line at a time, threading State across calls the way
// the renderer walks a document top to bottom. Implementations must not
// retain the content slice they're given.
type Lexer interface {
	// Lex tokenizes content, given the State the previous line ended in,
	// and returns the line's tokens plus the State this line ends in.
	Lex(content string, prevState State) ([]line.Token, State)

	// Name identifies the lexer for logging/diagnostics.
	Name() string

	// CommentPrefix is the language's line-comment marker (e.g. "//"), or
	// "" if the language has none. CommentOut uses it to toggle a line
	// between commented and uncommented.
	CommentPrefix() string
}

// Registry maps a file-type glob pattern to the Lexer that handles it,
// matched with github.com/tidwall/match rather than hand-rolled glob code.
// The plain-text lexer is always the fallback for an unmatched path.
type Registry struct {
	entries  []registryEntry
	fallback Lexer
}

type registryEntry struct {
	pattern string
	lexer   Lexer
}

// NewRegistry creates a registry whose fallback is the plain-text lexer.
func NewRegistry() *Registry {
	return &Registry{fallback: PlainText{}}
}

// Register associates a glob pattern (e.g. "*.go", "*.md") with
// a Lexer. Later registrations take priority over earlier ones for
// overlapping patterns.
func (r *Registry) Register(pattern string, lex Lexer) {
	r.entries = append([]registryEntry{{pattern, lex}}, r.entries...)
}

// For returns the Lexer registered for path, or the plain-text fallback if
// no pattern matches.
func (r *Registry) For(path string) Lexer {
	for _, e := range r.entries {
		if match.Match(path, e.pattern) {
			return e.lexer
		}
	}
	return r.fallback
}
