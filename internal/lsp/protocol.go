package lsp

import "encoding/json"

// Wire types for the subset of LSP 3.17 the controller speaks, grounded on
// the teacher's protocol.go. Extended beyond the teacher's set with
// PositionEncoding, SemanticTokensProvider and DeclarationProvider, which
// the teacher's own ServerCapabilities omits (see DESIGN.md).

// DocumentURI is a file:// URI as used throughout LSP.
type DocumentURI string

// Position is zero-based line/character, character measured in whatever
// unit the negotiated positionEncoding capability selects.
type Position struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

// Range is a start/end Position pair.
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// Location pairs a URI with a Range.
type Location struct {
	URI   DocumentURI `json:"uri"`
	Range Range       `json:"range"`
}

// TextDocumentIdentifier identifies an open document by URI.
type TextDocumentIdentifier struct {
	URI DocumentURI `json:"uri"`
}

// VersionedTextDocumentIdentifier adds the document's version.
type VersionedTextDocumentIdentifier struct {
	TextDocumentIdentifier
	Version int `json:"version"`
}

// TextDocumentItem is the full document payload sent with didOpen.
type TextDocumentItem struct {
	URI        DocumentURI `json:"uri"`
	LanguageID string      `json:"languageId"`
	Version    int         `json:"version"`
	Text       string      `json:"text"`
}

// TextDocumentPositionParams is embedded by every per-position request.
type TextDocumentPositionParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
	Position     Position               `json:"position"`
}

// TextEdit is one textual replacement within a document.
type TextEdit struct {
	Range   Range  `json:"range"`
	NewText string `json:"newText"`
}

// TextDocumentContentChangeEvent is one didChange content delta. Omitting
// Range sends the whole document (full sync); a server that only supports
// TextDocumentSyncKindFull gets this form exclusively.
type TextDocumentContentChangeEvent struct {
	Range *Range `json:"range,omitempty"`
	Text  string `json:"text"`
}

// MarkupContent is human-readable hover/signature documentation.
type MarkupContent struct {
	Kind  string `json:"kind"`
	Value string `json:"value"`
}

// --- initialize ---

// ClientCapabilities is deliberately minimal: just enough to announce
// semantic-tokens, completion snippet, and UTF-8/UTF-16/UTF-32 position
// encoding negotiation support.
type ClientCapabilities struct {
	General      GeneralClientCapabilities      `json:"general"`
	TextDocument TextDocumentClientCapabilities `json:"textDocument"`
}

type GeneralClientCapabilities struct {
	PositionEncodings []string `json:"positionEncodings,omitempty"`
}

type TextDocumentClientCapabilities struct {
	SemanticTokens *SemanticTokensClientCapabilities `json:"semanticTokens,omitempty"`
	Completion     *CompletionClientCapabilities      `json:"completion,omitempty"`
}

type SemanticTokensClientCapabilities struct {
	Requests struct {
		Full  bool `json:"full"`
		Range bool `json:"range"`
	} `json:"requests"`
	TokenTypes     []string `json:"tokenTypes"`
	TokenModifiers []string `json:"tokenModifiers"`
}

type CompletionClientCapabilities struct {
	CompletionItem struct {
		SnippetSupport bool `json:"snippetSupport"`
	} `json:"completionItem"`
}

// InitializeParams is the initialize request payload.
type InitializeParams struct {
	ProcessID             int                `json:"processId"`
	RootURI               DocumentURI        `json:"rootUri,omitempty"`
	Capabilities          ClientCapabilities `json:"capabilities"`
	InitializationOptions any                `json:"initializationOptions,omitempty"`
}

// InitializeResult is the initialize response payload.
type InitializeResult struct {
	Capabilities ServerCapabilities `json:"capabilities"`
}

// ServerCapabilities is the subset of the server's advertised feature set
// the capability-dispatch table (capability.go) consults.
type ServerCapabilities struct {
	PositionEncoding           string                 `json:"positionEncoding,omitempty"`
	TextDocumentSync           json.RawMessage        `json:"textDocumentSync,omitempty"`
	CompletionProvider         *CompletionOptions     `json:"completionProvider,omitempty"`
	HoverProvider              json.RawMessage        `json:"hoverProvider,omitempty"`
	SignatureHelpProvider      *SignatureHelpOptions  `json:"signatureHelpProvider,omitempty"`
	DefinitionProvider         json.RawMessage        `json:"definitionProvider,omitempty"`
	DeclarationProvider        json.RawMessage        `json:"declarationProvider,omitempty"`
	ReferencesProvider         json.RawMessage        `json:"referencesProvider,omitempty"`
	DocumentFormattingProvider json.RawMessage        `json:"documentFormattingProvider,omitempty"`
	RenameProvider             json.RawMessage        `json:"renameProvider,omitempty"`
	SemanticTokensProvider     *SemanticTokensOptions `json:"semanticTokensProvider,omitempty"`
}

type CompletionOptions struct {
	TriggerCharacters []string `json:"triggerCharacters,omitempty"`
}

type SignatureHelpOptions struct {
	TriggerCharacters []string `json:"triggerCharacters,omitempty"`
}

// SemanticTokensOptions advertises full/range support and the server's
// token type/modifier legend, needed to translate its StyleID-less wire
// integers into Quill's own token.StyleID space.
type SemanticTokensOptions struct {
	Legend SemanticTokensLegend `json:"legend"`
	Full   json.RawMessage      `json:"full,omitempty"`
	Range  json.RawMessage      `json:"range,omitempty"`
}

type SemanticTokensLegend struct {
	TokenTypes     []string `json:"tokenTypes"`
	TokenModifiers []string `json:"tokenModifiers"`
}

// TextDocumentSyncKind mirrors the LSP enum; present here for completeness
// even though Quill only ever emits full-document didChange text (spec.md
// does not distinguish incremental sync at the controller level).
type TextDocumentSyncKind int

const (
	SyncNone        TextDocumentSyncKind = 0
	SyncFull        TextDocumentSyncKind = 1
	SyncIncremental TextDocumentSyncKind = 2
)

// --- didOpen/didChange/didClose/didSave ---

type DidOpenTextDocumentParams struct {
	TextDocument TextDocumentItem `json:"textDocument"`
}

type DidChangeTextDocumentParams struct {
	TextDocument   VersionedTextDocumentIdentifier   `json:"textDocument"`
	ContentChanges []TextDocumentContentChangeEvent `json:"contentChanges"`
}

type DidCloseTextDocumentParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
}

type DidSaveTextDocumentParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
	Text         string                 `json:"text,omitempty"`
}

// --- diagnostics ---

// DiagnosticSeverity mirrors the LSP wire enum (1-based).
type DiagnosticSeverity int

const (
	SeverityError       DiagnosticSeverity = 1
	SeverityWarning     DiagnosticSeverity = 2
	SeverityInformation DiagnosticSeverity = 3
	SeverityHint        DiagnosticSeverity = 4
)

// Diagnostic is one wire diagnostic as published by the server.
type Diagnostic struct {
	Range    Range              `json:"range"`
	Severity DiagnosticSeverity `json:"severity,omitempty"`
	Source   string             `json:"source,omitempty"`
	Message  string             `json:"message"`
}

// PublishDiagnosticsParams is the textDocument/publishDiagnostics
// notification payload. Diagnostics replace, not merge, per spec.md §5.
type PublishDiagnosticsParams struct {
	URI         DocumentURI  `json:"uri"`
	Diagnostics []Diagnostic `json:"diagnostics"`
}

// --- semantic tokens ---

type SemanticTokensParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
}

type SemanticTokensRangeParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
	Range        Range                  `json:"range"`
}

// SemanticTokensResult carries the flattened (deltaLine, deltaStart, len,
// tokenType, tokenModifiers) quintuples the LSP spec defines.
type SemanticTokensResult struct {
	Data []uint32 `json:"data"`
}

// --- completion ---

type CompletionParams struct {
	TextDocumentPositionParams
}

type CompletionItem struct {
	Label         string `json:"label"`
	Kind          int    `json:"kind,omitempty"`
	Detail        string `json:"detail,omitempty"`
	Documentation any    `json:"documentation,omitempty"`
	InsertText    string `json:"insertText,omitempty"`
}

type CompletionList struct {
	IsIncomplete bool             `json:"isIncomplete"`
	Items        []CompletionItem `json:"items"`
}

// --- hover ---

type HoverParams struct {
	TextDocumentPositionParams
}

type Hover struct {
	Contents MarkupContent `json:"contents"`
	Range    *Range        `json:"range,omitempty"`
}

// --- signature help ---

type SignatureHelpParams struct {
	TextDocumentPositionParams
}

type SignatureInformation struct {
	Label         string `json:"label"`
	Documentation any    `json:"documentation,omitempty"`
}

type SignatureHelp struct {
	Signatures      []SignatureInformation `json:"signatures"`
	ActiveSignature int                    `json:"activeSignature,omitempty"`
	ActiveParameter int                    `json:"activeParameter,omitempty"`
}

// --- definition / declaration / references ---

type DefinitionParams struct {
	TextDocumentPositionParams
}

type DeclarationParams struct {
	TextDocumentPositionParams
}

type ReferenceParams struct {
	TextDocumentPositionParams
	Context ReferenceContext `json:"context"`
}

type ReferenceContext struct {
	IncludeDeclaration bool `json:"includeDeclaration"`
}

// --- rename ---

type RenameParams struct {
	TextDocumentPositionParams
	NewName string `json:"newName"`
}

type WorkspaceEdit struct {
	Changes map[DocumentURI][]TextEdit `json:"changes,omitempty"`
}

// --- formatting ---

type FormattingOptions struct {
	TabSize      int  `json:"tabSize"`
	InsertSpaces bool `json:"insertSpaces"`
}

type DocumentFormattingParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
	Options      FormattingOptions      `json:"options"`
}
