package lsp

import (
	"fmt"

	"github.com/quillcode/quill/internal/edit"
	"github.com/quillcode/quill/internal/encoding"
	"github.com/quillcode/quill/internal/line"
	"github.com/quillcode/quill/internal/token"
)

// State is the session's position in spec.md §4.7's state machine:
//
//	Unbound --set_client--> Capability-probing --bound--> Active
//	Active  --send_fail--> Questioned --context--> CheckLSP emitted
//	Active  --close--> Unbound
type State uint8

const (
	StateUnbound State = iota
	StateCapabilityProbing
	StateActive
	StateQuestioned
)

type requestKind uint8

const (
	kindInitialize requestKind = iota
	kindTokensFull
	kindTokensRange
	kindCompletion
	kindHover
	kindSignatureHelp
	kindDefinition
	kindDeclaration
	kindReferences
	kindRename
	kindFormatting
)

type rangeMeta struct{ start, end int }

// Results holds the most recent feature response of each kind, the form
// the editor model reads from after Context dispatches a response.
type Results struct {
	Completion    *CompletionList
	Hover         *Hover
	SignatureHelp *SignatureHelp
	Definition    []Location
	Declaration   []Location
	References    []Location
	Rename        *WorkspaceEdit
	FormatEdits   []TextEdit
}

// Session is the LSP session controller of spec.md §4.7. One Session
// serves one open document.
type Session struct {
	state     State
	transport *Transport
	dispatch  Dispatch
	caps      ServerCapabilities

	uri  DocumentURI
	path string
	lang string

	encKind  encoding.Kind
	encTable encoding.Table

	// typeStyleIDs maps the server's advertised semantic-token-type legend
	// index to a token.StyleID, built once the server's capabilities (and
	// therefore its legend) are known.
	typeStyleIDs []token.StyleID

	version int

	pending map[int64]requestKind
	meta    map[int64]any

	// metaPending is the accumulated EditMeta region not yet shipped as a
	// partial-tokens request (spec.md §4.7's "meta buffer").
	metaPending bool
	metaStart   int
	metaEnd     int

	questionLSP bool

	tabSize int
	useTabs bool

	Results Results

	// OnResult, when set, is invoked after Context installs each feature
	// response into Results -- the hook the action controller uses to open
	// a completion/hover popup without this package importing it back.
	OnResult func(kind string, v any)

	// OnRestart fires when question_lsp transitions to a surfaced
	// CheckLSP event (spec.md's "Questioned -> context -> CheckLSP
	// emitted" edge).
	OnRestart func(err error)

	pendingInitText string
}

// NewSession creates a Session bound to transport, initially Unbound. tab
// policy feeds the formatting request's FormattingOptions.
func NewSession(transport *Transport, path string, tabSize int, useTabs bool) *Session {
	return &Session{
		transport: transport,
		dispatch:  noopDispatch(),
		path:      path,
		uri:       pathToURI(path),
		encKind:   encoding.DefaultNoLSP,
		encTable:  encoding.TableFor(encoding.DefaultNoLSP),
		pending:   make(map[int64]requestKind),
		meta:      make(map[int64]any),
		tabSize:   tabSize,
		useTabs:   useTabs,
	}
}

func pathToURI(path string) DocumentURI { return DocumentURI("file://" + path) }

// State reports the session's current state-machine position.
func (s *Session) State() State { return s.state }

// Questioned reports the sticky question_lsp flag: true once any send has
// failed, until the session is closed or successfully re-initialized.
func (s *Session) Questioned() bool { return s.questionLSP }

// Encoding returns the negotiated position encoding table.
func (s *Session) Encoding() encoding.Table { return s.encTable }

func (s *Session) track(id int64, kind requestKind, m any) {
	s.pending[id] = kind
	if m != nil {
		s.meta[id] = m
	}
}

// SetClient starts the handshake: initialize is sent immediately and the
// session enters Capability-probing; Context completes the transition to
// Active once the response arrives, per spec.md §4.7's "set_client sends
// didOpen, binds capability pointers, requests full semantic tokens" (done
// as soon as probing resolves, since initialize itself must round-trip
// before capabilities -- and therefore positionEncoding -- are known).
func (s *Session) SetClient(languageID, initialText string) error {
	s.lang = languageID
	s.pendingInitText = initialText

	id, err := s.transport.SendRequest("initialize", InitializeParams{
		RootURI: DocumentURI("file://."),
		Capabilities: ClientCapabilities{
			General: GeneralClientCapabilities{PositionEncodings: []string{"utf-16", "utf-8", "utf-32"}},
			TextDocument: TextDocumentClientCapabilities{
				SemanticTokens: &SemanticTokensClientCapabilities{
					TokenTypes:     defaultTokenTypes,
					TokenModifiers: defaultTokenModifiers,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("send initialize: %w", err)
	}
	s.track(id, kindInitialize, nil)
	s.state = StateCapabilityProbing
	return nil
}

// Sync is spec.md §4.7's sync/sync_rev: flush the engine's pending change
// events, encode their positions in the negotiated unit, ship didChange,
// and merge the affected line range into the meta buffer for the next
// partial-tokens request.
func (s *Session) Sync(buf *line.Buffer, engine *edit.Engine) error {
	if s.state != StateActive {
		return nil
	}
	version, events, partialStart, partialEnd := engine.FlushEvents(buf)
	if len(events) == 0 {
		return nil
	}
	s.version = version

	changes := make([]TextDocumentContentChangeEvent, len(events))
	for i, ev := range events {
		changes[i] = TextDocumentContentChangeEvent{
			Range: &Range{
				Start: Position{Line: ev.StartLine, Character: ev.StartChar},
				End:   Position{Line: ev.EndLine, Character: ev.EndChar},
			},
			Text: ev.Text,
		}
	}

	err := s.transport.Notify("textDocument/didChange", DidChangeTextDocumentParams{
		TextDocument: VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: TextDocumentIdentifier{URI: s.uri},
			Version:                version,
		},
		ContentChanges: changes,
	})
	if err != nil {
		s.fail(err)
		return err
	}

	if !s.metaPending {
		s.metaPending = true
		s.metaStart, s.metaEnd = partialStart, partialEnd
	} else {
		if partialStart < s.metaStart {
			s.metaStart = partialStart
		}
		if partialEnd > s.metaEnd {
			s.metaEnd = partialEnd
		}
	}
	return nil
}

// Context is spec.md §4.7's per-frame poll: drain the transport's inbox,
// dispatching each response/notification. Call FlushPartialTokens after
// Context once per frame to issue the pending partial-tokens request, if
// any -- kept as a separate step so it runs exactly once per frame
// regardless of how many messages Context drained.
func (s *Session) Context(buf *line.Buffer) {
	for {
		select {
		case msg, ok := <-s.transport.Inbox():
			if !ok {
				return
			}
			s.handle(buf, msg)
		default:
			return
		}
	}
}

// FlushPartialTokens issues the pending partial-tokens request for the
// meta buffer's accumulated region, if any is outstanding and the session
// is Active.
func (s *Session) FlushPartialTokens(buf *line.Buffer) {
	if !s.metaPending || s.state != StateActive {
		return
	}
	start, end := s.metaStart, s.metaEnd
	if start < 0 {
		start = 0
	}
	if end > buf.Len() {
		end = buf.Len()
	}
	if start >= end {
		s.metaPending = false
		return
	}
	if _, err := s.dispatch.PartialTokens(s, start, end); err != nil {
		if err != ErrMissingCapability {
			s.fail(err)
		}
		return
	}
	s.metaPending = false
}

// Request issues a per-position feature request through whatever is
// currently bound in the capability table.
func (s *Session) Request(kind string, buf *line.Buffer, lineIdx, charIdx int) (int64, error) {
	if s.state != StateActive {
		return 0, ErrNotActive
	}
	pos := ToWire(buf, lineIdx, charIdx, s.encTable)
	switch kind {
	case "completion":
		return s.dispatch.Completion(s, pos)
	case "hover":
		return s.dispatch.Hover(s, pos)
	case "signatureHelp":
		return s.dispatch.SignatureHelp(s, pos)
	case "definition":
		return s.dispatch.Definition(s, pos)
	case "declaration":
		return s.dispatch.Declaration(s, pos)
	case "references":
		return s.dispatch.References(s, pos)
	case "formatting":
		return s.dispatch.Formatting(s)
	default:
		return 0, fmt.Errorf("lsp: unknown request kind %q", kind)
	}
}

// Rename issues textDocument/rename, which carries an extra newName
// argument the generic Request dispatcher doesn't thread through.
func (s *Session) Rename(buf *line.Buffer, lineIdx, charIdx int, newName string) (int64, error) {
	if s.state != StateActive {
		return 0, ErrNotActive
	}
	pos := ToWire(buf, lineIdx, charIdx, s.encTable)
	return s.dispatch.Rename(s, pos, newName)
}

// ReloadTheme remaps style ids to a new theme (handled by the caller, via
// token.Registry) and requests a full-tokens refresh so the new theme's
// colors apply to the existing semantic token stream immediately.
func (s *Session) ReloadTheme() error {
	if s.state != StateActive {
		return nil
	}
	_, err := s.dispatch.Tokens(s)
	return err
}

// Close sends didClose (if active) and returns the session to Unbound.
func (s *Session) Close() error {
	if s.state == StateUnbound {
		return nil
	}
	var err error
	if s.state == StateActive || s.state == StateQuestioned {
		err = s.transport.Notify("textDocument/didClose", DidCloseTextDocumentParams{
			TextDocument: TextDocumentIdentifier{URI: s.uri},
		})
	}
	s.state = StateUnbound
	s.questionLSP = false
	s.dispatch = noopDispatch()
	s.pending = make(map[int64]requestKind)
	s.meta = make(map[int64]any)
	return err
}

// fail sets the sticky question_lsp flag and fires OnRestart, per spec.md
// §4.7's "Active -> Questioned -> context -> CheckLSP emitted" edge and
// §7's policy that a transport failure triggers a restart event.
func (s *Session) fail(err error) {
	s.questionLSP = true
	if s.state == StateActive {
		s.state = StateQuestioned
	}
	if s.OnRestart != nil {
		s.OnRestart(err)
	}
}

// defaultTokenTypes/defaultTokenModifiers are the semantic-token legend
// Quill announces in its client capabilities. The server replies with its
// own legend, independently ordered; tokens.go maps that legend's indices
// to token.StyleID by name (legendToStyleIDs), never by position.
var defaultTokenTypes = []string{
	"comment", "string", "number", "keyword", "operator",
	"namespace", "variable", "function", "type", "enumMember",
}

var defaultTokenModifiers = []string{
	"declaration", "readonly", "deprecated",
}
