package lsp

// Dispatch is the capability-dispatch table of spec.md §4.7: one named slot
// per feature, holding either a live implementation or an inert no-op.
// Capability probing (Session.bindCapabilities) rebinds every slot at once
// when the server's InitializeResult arrives; losing the connection rebinds
// them all back to noop*, per the state machine's Active -> Unbound edge.
// No call site branches on whether a feature is supported — it just calls
// through whatever is currently bound.
type Dispatch struct {
	Tokens        func(s *Session) (int64, error)
	PartialTokens func(s *Session, startLine, endLine int) (int64, error)
	Completion    func(s *Session, pos Position) (int64, error)
	Hover         func(s *Session, pos Position) (int64, error)
	SignatureHelp func(s *Session, pos Position) (int64, error)
	Definition    func(s *Session, pos Position) (int64, error)
	Declaration   func(s *Session, pos Position) (int64, error)
	References    func(s *Session, pos Position) (int64, error)
	Rename        func(s *Session, pos Position, newName string) (int64, error)
	Formatting    func(s *Session) (int64, error)
	DidSave       func(s *Session) error
}

// noopDispatch is the fully inert table: every feature call-site reports
// ErrMissingCapability (swallowed silently by spec.md §7's policy) rather
// than panicking on a nil func field.
func noopDispatch() Dispatch {
	return Dispatch{
		Tokens:        func(*Session) (int64, error) { return 0, ErrMissingCapability },
		PartialTokens: func(*Session, int, int) (int64, error) { return 0, ErrMissingCapability },
		Completion:    func(*Session, Position) (int64, error) { return 0, ErrMissingCapability },
		Hover:         func(*Session, Position) (int64, error) { return 0, ErrMissingCapability },
		SignatureHelp: func(*Session, Position) (int64, error) { return 0, ErrMissingCapability },
		Definition:    func(*Session, Position) (int64, error) { return 0, ErrMissingCapability },
		Declaration:   func(*Session, Position) (int64, error) { return 0, ErrMissingCapability },
		References:    func(*Session, Position) (int64, error) { return 0, ErrMissingCapability },
		Rename:        func(*Session, Position, string) (int64, error) { return 0, ErrMissingCapability },
		Formatting:    func(*Session) (int64, error) { return 0, ErrMissingCapability },
		DidSave:       func(*Session) error { return nil },
	}
}

// bindCapabilities rebinds each slot to its live implementation when the
// server's capabilities advertise it, leaving the rest noop. Called once
// after initialize, per the Capability-probing -> Active transition.
func bindCapabilities(caps ServerCapabilities) Dispatch {
	d := noopDispatch()

	if caps.SemanticTokensProvider != nil {
		d.Tokens = liveTokens
		if len(caps.SemanticTokensProvider.Range) > 0 {
			d.PartialTokens = livePartialTokens
		}
	}
	if caps.CompletionProvider != nil {
		d.Completion = liveCompletion
	}
	if caps.HoverProvider != nil {
		d.Hover = liveHover
	}
	if caps.SignatureHelpProvider != nil {
		d.SignatureHelp = liveSignatureHelp
	}
	if caps.DefinitionProvider != nil {
		d.Definition = liveDefinition
	}
	if caps.DeclarationProvider != nil {
		d.Declaration = liveDeclaration
	}
	if caps.ReferencesProvider != nil {
		d.References = liveReferences
	}
	if caps.RenameProvider != nil {
		d.Rename = liveRename
	}
	if caps.DocumentFormattingProvider != nil {
		d.Formatting = liveFormatting
	}
	d.DidSave = liveDidSave

	return d
}
