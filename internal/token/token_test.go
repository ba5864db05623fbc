package token

import "testing"

func TestRegistryFallsBackToPlainText(t *testing.T) {
	r := NewRegistry()
	lex := r.For("notes.txt")
	if lex.Name() != "plaintext" {
		t.Fatalf("lexer = %q, want plaintext", lex.Name())
	}
	toks, state := lex.Lex("hello world", StateNormal)
	if toks != nil {
		t.Fatalf("plaintext lexer should produce no tokens, got %v", toks)
	}
	if state != StateNormal {
		t.Fatalf("state = %v, want StateNormal", state)
	}
}

func TestRegistryMatchesGlob(t *testing.T) {
	r := DefaultRegistry()
	lex := r.For("main.go")
	if lex.Name() != "go" {
		t.Fatalf("lexer = %q, want go", lex.Name())
	}
	if r.For("main.py").Name() != "plaintext" {
		t.Fatalf("unmatched extension should fall back to plaintext")
	}
}

func TestGoLexerKeywordsAndStrings(t *testing.T) {
	lex := NewGoLexer()
	toks, state := lex.Lex(`func main() { s := "hi" }`, StateNormal)
	if state != StateNormal {
		t.Fatalf("state = %v, want StateNormal", state)
	}
	var sawKeyword, sawString bool
	for _, tok := range toks {
		switch StyleID(tok.StyleID) {
		case StyleKeyword:
			sawKeyword = true
		case StyleString:
			sawString = true
		}
	}
	if !sawKeyword {
		t.Fatalf("expected a keyword token, got %+v", toks)
	}
	if !sawString {
		t.Fatalf("expected a string token, got %+v", toks)
	}
}

func TestGoLexerBlockCommentSpansLines(t *testing.T) {
	lex := NewGoLexer()
	toks1, state1 := lex.Lex("/* start of a", StateNormal)
	if state1 == StateNormal {
		t.Fatalf("state should carry the open block comment")
	}
	if len(toks1) != 1 || StyleID(toks1[0].StyleID) != StyleComment {
		t.Fatalf("line 1 tokens = %+v, want one comment token", toks1)
	}

	toks2, state2 := lex.Lex("comment */ code", state1)
	if state2 != StateNormal {
		t.Fatalf("state should close back to normal, got %v", state2)
	}
	if len(toks2) == 0 || StyleID(toks2[0].StyleID) != StyleComment {
		t.Fatalf("line 2 should open with the closing comment token, got %+v", toks2)
	}
	if toks2[0].Start != 0 || toks2[0].Len != len("comment */") {
		t.Fatalf("comment token = %+v, want Start=0 Len=%d", toks2[0], len("comment */"))
	}
}

func TestGoLexerNonOverlappingSpans(t *testing.T) {
	lex := NewGoLexer()
	toks, _ := lex.Lex(`const x = 42 // the answer`, StateNormal)
	for i := 1; i < len(toks); i++ {
		if toks[i].Start < toks[i-1].Start+toks[i-1].Len {
			t.Fatalf("tokens overlap: %+v then %+v", toks[i-1], toks[i])
		}
	}
}
