package lsp

// Live feature implementations the capability table (capability.go) binds
// to once the server advertises the matching capability. Each issues a
// request and records what kind of response to expect; Session.Context
// dispatches the eventual response by that recorded kind (handlers.go).

func liveTokens(s *Session) (int64, error) {
	id, err := s.transport.SendRequest("textDocument/semanticTokens/full", SemanticTokensParams{
		TextDocument: TextDocumentIdentifier{URI: s.uri},
	})
	if err != nil {
		return 0, err
	}
	s.track(id, kindTokensFull, nil)
	return id, nil
}

func livePartialTokens(s *Session, startLine, endLine int) (int64, error) {
	id, err := s.transport.SendRequest("textDocument/semanticTokens/range", SemanticTokensRangeParams{
		TextDocument: TextDocumentIdentifier{URI: s.uri},
		Range: Range{
			Start: Position{Line: startLine, Character: 0},
			End:   Position{Line: endLine, Character: 0},
		},
	})
	if err != nil {
		return 0, err
	}
	s.track(id, kindTokensRange, rangeMeta{start: startLine, end: endLine})
	return id, nil
}

func liveCompletion(s *Session, pos Position) (int64, error) {
	id, err := s.transport.SendRequest("textDocument/completion", CompletionParams{
		TextDocumentPositionParams: TextDocumentPositionParams{
			TextDocument: TextDocumentIdentifier{URI: s.uri},
			Position:     pos,
		},
	})
	if err != nil {
		return 0, err
	}
	s.track(id, kindCompletion, nil)
	return id, nil
}

func liveHover(s *Session, pos Position) (int64, error) {
	id, err := s.transport.SendRequest("textDocument/hover", HoverParams{
		TextDocumentPositionParams: TextDocumentPositionParams{
			TextDocument: TextDocumentIdentifier{URI: s.uri},
			Position:     pos,
		},
	})
	if err != nil {
		return 0, err
	}
	s.track(id, kindHover, nil)
	return id, nil
}

func liveSignatureHelp(s *Session, pos Position) (int64, error) {
	id, err := s.transport.SendRequest("textDocument/signatureHelp", SignatureHelpParams{
		TextDocumentPositionParams: TextDocumentPositionParams{
			TextDocument: TextDocumentIdentifier{URI: s.uri},
			Position:     pos,
		},
	})
	if err != nil {
		return 0, err
	}
	s.track(id, kindSignatureHelp, nil)
	return id, nil
}

func liveDefinition(s *Session, pos Position) (int64, error) {
	id, err := s.transport.SendRequest("textDocument/definition", DefinitionParams{
		TextDocumentPositionParams: TextDocumentPositionParams{
			TextDocument: TextDocumentIdentifier{URI: s.uri},
			Position:     pos,
		},
	})
	if err != nil {
		return 0, err
	}
	s.track(id, kindDefinition, nil)
	return id, nil
}

func liveDeclaration(s *Session, pos Position) (int64, error) {
	id, err := s.transport.SendRequest("textDocument/declaration", DeclarationParams{
		TextDocumentPositionParams: TextDocumentPositionParams{
			TextDocument: TextDocumentIdentifier{URI: s.uri},
			Position:     pos,
		},
	})
	if err != nil {
		return 0, err
	}
	s.track(id, kindDeclaration, nil)
	return id, nil
}

func liveReferences(s *Session, pos Position) (int64, error) {
	id, err := s.transport.SendRequest("textDocument/references", ReferenceParams{
		TextDocumentPositionParams: TextDocumentPositionParams{
			TextDocument: TextDocumentIdentifier{URI: s.uri},
			Position:     pos,
		},
		Context: ReferenceContext{IncludeDeclaration: true},
	})
	if err != nil {
		return 0, err
	}
	s.track(id, kindReferences, nil)
	return id, nil
}

func liveRename(s *Session, pos Position, newName string) (int64, error) {
	id, err := s.transport.SendRequest("textDocument/rename", RenameParams{
		TextDocumentPositionParams: TextDocumentPositionParams{
			TextDocument: TextDocumentIdentifier{URI: s.uri},
			Position:     pos,
		},
		NewName: newName,
	})
	if err != nil {
		return 0, err
	}
	s.track(id, kindRename, nil)
	return id, nil
}

func liveFormatting(s *Session) (int64, error) {
	id, err := s.transport.SendRequest("textDocument/formatting", DocumentFormattingParams{
		TextDocument: TextDocumentIdentifier{URI: s.uri},
		Options:      FormattingOptions{TabSize: s.tabSize, InsertSpaces: !s.useTabs},
	})
	if err != nil {
		return 0, err
	}
	s.track(id, kindFormatting, nil)
	return id, nil
}

func liveDidSave(s *Session) error {
	return s.transport.Notify("textDocument/didSave", DidSaveTextDocumentParams{
		TextDocument: TextDocumentIdentifier{URI: s.uri},
	})
}
