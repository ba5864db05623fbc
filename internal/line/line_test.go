package line

import "testing"

func TestEmojiInsert(t *testing.T) {
	l := New("text")
	l.Insert(2, '🚀')
	if l.Content() != "te🚀xt" {
		t.Fatalf("content = %q, want te🚀xt", l.Content())
	}
	if l.CharLen() != 5 {
		t.Fatalf("char_len = %d, want 5", l.CharLen())
	}
	if got := l.UnsafeUTF8IdxAt(4); got != 7 {
		t.Fatalf("utf8 idx of char 4 = %d, want 7", got)
	}
	if got := l.UnsafeUTF16IdxAt(4); got != 5 {
		t.Fatalf("utf16 idx of char 4 = %d, want 5", got)
	}
}

func TestRemoveIsInverseOfInsert(t *testing.T) {
	l := New("text")
	l.Insert(2, '🚀')
	l.Remove(2)
	if l.Content() != "text" {
		t.Fatalf("content = %q, want text", l.Content())
	}
	if l.CharLen() != 4 {
		t.Fatalf("char_len = %d, want 4", l.CharLen())
	}
}

func TestSplitOffDropsRightTokens(t *testing.T) {
	l := New("fn x() {}")
	l.ReplaceTokens([]Token{{Start: 0, Len: 2, StyleID: 1}, {Start: 3, Len: 1, StyleID: 2}})
	right := l.SplitOff(3)
	if right.Content() != "x() {}" {
		t.Fatalf("right content = %q", right.Content())
	}
	if len(l.Tokens()) != 1 {
		t.Fatalf("left tokens = %v, want 1 retained", l.Tokens())
	}
	if len(right.Tokens()) != 0 {
		t.Fatalf("right tokens = %v, want dropped for re-lex", right.Tokens())
	}
}

func TestMutationResetsRenderCache(t *testing.T) {
	l := New("abc")
	l.SetRenderCache(RenderCache{Kind: CacheLine, Row: 3})
	l.Insert(1, 'x')
	if l.RenderCache().Kind != CacheNone {
		t.Fatalf("render cache = %v, want reset to None after mutation", l.RenderCache())
	}
}

func TestGetDegradesToByteSliceWhenSimple(t *testing.T) {
	l := New("hello")
	if !l.IsSimple() {
		t.Fatal("ascii content should be simple")
	}
	s, ok := l.Get(1, 3)
	if !ok || s != "el" {
		t.Fatalf("Get(1,3) = %q, %v", s, ok)
	}
}

func TestGetCharIndexedWithMultibyte(t *testing.T) {
	l := New("héllo")
	s, ok := l.Get(1, 3)
	if !ok || s != "él" {
		t.Fatalf("Get(1,3) = %q, %v, want él", s, ok)
	}
}

func TestPushLineMergesTokensShifted(t *testing.T) {
	a := New("ab")
	a.ReplaceTokens([]Token{{Start: 0, Len: 2, StyleID: 1}})
	b := New("cd")
	b.ReplaceTokens([]Token{{Start: 0, Len: 2, StyleID: 2}})
	a.PushLine(b)
	if a.Content() != "abcd" {
		t.Fatalf("content = %q", a.Content())
	}
	toks := a.Tokens()
	if len(toks) != 2 || toks[1].Start != 2 {
		t.Fatalf("tokens = %+v, want second shifted to start 2", toks)
	}
}
