package token

// NewGoLexer builds the local lexer registered for "*.go" files: enough
// regex/keyword coverage for a readable editor view, not a full parser.
func NewGoLexer() *SimpleLexer {
	l := NewSimpleLexer("go")
	l.AddMultiLine("/*", "*/", StyleComment)
	l.AddRule(`"(\\.|[^"\\])*"`, StyleString)
	l.AddRule("`[^`]*`", StyleString)
	l.AddRule(`'(\\.|[^'\\])'`, StyleString)
	l.AddRule(`//[^\n]*`, StyleComment)
	l.AddRule(`\b0[xX][0-9a-fA-F]+\b|\b[0-9]+(\.[0-9]+)?\b`, StyleNumber)
	l.AddRule(`[{}()\[\],;.]`, StylePunctuation)
	l.AddRule(`[+\-*/%=<>!&|^:]+`, StyleOperator)
	l.AddKeywords(StyleKeyword,
		"break", "case", "chan", "const", "continue", "default", "defer",
		"else", "fallthrough", "for", "func", "go", "goto", "if", "import",
		"interface", "map", "package", "range", "return", "select", "struct",
		"switch", "type", "var",
	)
	l.AddKeywords(StyleConstant, "true", "false", "nil", "iota")
	l.AddKeywords(StyleType,
		"bool", "byte", "complex64", "complex128", "error", "float32",
		"float64", "int", "int8", "int16", "int32", "int64", "rune",
		"string", "uint", "uint8", "uint16", "uint32", "uint64", "uintptr",
	)
	l.SetLineComment("//")
	return l
}

// DefaultRegistry builds a Registry with the local lexers quill ships with
// registered under their usual file-extension globs.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register("*.go", NewGoLexer())
	return r
}
