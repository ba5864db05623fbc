package lsp

import (
	"encoding/json"

	"github.com/quillcode/quill/internal/encoding"
	"github.com/quillcode/quill/internal/line"
)

// handle routes one drained transport Message: a notification (method set)
// or a response to a previously tracked request id.
func (s *Session) handle(buf *line.Buffer, msg Message) {
	if !msg.IsResponse {
		s.handleNotification(buf, msg)
		return
	}
	s.handleResponse(buf, msg)
}

func (s *Session) handleNotification(buf *line.Buffer, msg Message) {
	switch msg.Method {
	case "textDocument/publishDiagnostics":
		var params PublishDiagnosticsParams
		if err := json.Unmarshal(msg.Params, &params); err != nil {
			return
		}
		if params.URI != s.uri {
			return
		}
		applyDiagnostics(buf, params.Diagnostics, s.encKind)
	}
}

func (s *Session) handleResponse(buf *line.Buffer, msg Message) {
	kind, ok := s.pending[msg.ID]
	if !ok {
		return
	}
	delete(s.pending, msg.ID)
	m := s.meta[msg.ID]
	delete(s.meta, msg.ID)

	if msg.Err != nil {
		s.handleFailure(kind, msg.Err)
		return
	}

	switch kind {
	case kindInitialize:
		s.handleInitializeResult(msg.Result)
	case kindTokensFull:
		applyFullTokens(buf, s.typeStyleIDs, s.encKind, msg.Result)
	case kindTokensRange:
		rm, _ := m.(rangeMeta)
		applyRangeTokens(buf, s.typeStyleIDs, s.encKind, msg.Result, rm.start, rm.end)
	case kindCompletion:
		var list CompletionList
		if decodeIfPresent(msg.Result, &list) {
			s.Results.Completion = &list
			s.notify("completion", &list)
		}
	case kindHover:
		var h Hover
		if decodeIfPresent(msg.Result, &h) {
			s.Results.Hover = &h
			s.notify("hover", &h)
		}
	case kindSignatureHelp:
		var sh SignatureHelp
		if decodeIfPresent(msg.Result, &sh) {
			s.Results.SignatureHelp = &sh
			s.notify("signatureHelp", &sh)
		}
	case kindDefinition:
		locs := decodeLocations(msg.Result)
		s.Results.Definition = locs
		s.notify("definition", locs)
	case kindDeclaration:
		locs := decodeLocations(msg.Result)
		s.Results.Declaration = locs
		s.notify("declaration", locs)
	case kindReferences:
		locs := decodeLocations(msg.Result)
		s.Results.References = locs
		s.notify("references", locs)
	case kindRename:
		var we WorkspaceEdit
		if decodeIfPresent(msg.Result, &we) {
			s.Results.Rename = &we
			s.notify("rename", &we)
		}
	case kindFormatting:
		var edits []TextEdit
		if decodeIfPresent(msg.Result, &edits) {
			s.Results.FormatEdits = edits
			s.notify("formatting", edits)
		}
	}
}

func (s *Session) notify(kind string, v any) {
	if s.OnResult != nil {
		s.OnResult(kind, v)
	}
}

// handleInitializeResult completes the Capability-probing -> Active
// transition: bind the dispatch table, negotiate position encoding, send
// initialized + didOpen, and request a full semantic-tokens refresh.
func (s *Session) handleInitializeResult(raw json.RawMessage) {
	var result InitializeResult
	if err := json.Unmarshal(raw, &result); err != nil {
		s.fail(err)
		return
	}
	s.caps = result.Capabilities
	s.dispatch = bindCapabilities(s.caps)

	if s.caps.PositionEncoding != "" {
		s.encKind = encoding.KindFromWire(s.caps.PositionEncoding)
	}
	s.encTable = encoding.TableFor(s.encKind)
	if s.caps.SemanticTokensProvider != nil {
		s.typeStyleIDs = legendToStyleIDs(s.caps.SemanticTokensProvider.Legend.TokenTypes)
	}

	_ = s.transport.Notify("initialized", struct{}{})
	_ = s.transport.Notify("textDocument/didOpen", DidOpenTextDocumentParams{
		TextDocument: TextDocumentItem{
			URI:        s.uri,
			LanguageID: s.lang,
			Version:    1,
			Text:       s.pendingInitText,
		},
	})
	s.version = 1
	s.pendingInitText = ""

	if _, err := s.dispatch.Tokens(s); err != nil && err != ErrMissingCapability {
		s.fail(err)
	}

	s.state = StateActive
	s.questionLSP = false
}

// handleFailure applies spec.md §7's LSP error taxonomy: Null is ignored,
// MissingCapability is swallowed (the call site already treats an absent
// result as "no answer"), InternalError questions the session, everything
// else surfaces as a user-visible message via OnRestart.
func (s *Session) handleFailure(kind requestKind, rpcErr *RPCError) {
	switch Classify(rpcErr) {
	case FailureNull, FailureMissingCapability:
		return
	default:
		if kind == kindInitialize {
			s.state = StateUnbound
		}
		s.fail(rpcErr)
	}
}

func decodeIfPresent(raw json.RawMessage, v any) bool {
	if len(raw) == 0 || string(raw) == "null" {
		return false
	}
	return json.Unmarshal(raw, v) == nil
}

func decodeLocations(raw json.RawMessage) []Location {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	var single Location
	if json.Unmarshal(raw, &single) == nil && single.URI != "" {
		return []Location{single}
	}
	var many []Location
	_ = json.Unmarshal(raw, &many)
	return many
}
