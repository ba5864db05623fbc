package encoding

import "testing"

func TestUTF16EncodeRoundTrip(t *testing.T) {
	line := "🚀a"
	for charIdx := 0; charIdx <= 2; charIdx++ {
		encoded := UTF16Table.Encode(line, charIdx)
		decoded := DecodeUTF16(line, encoded)
		if decoded != charIdx {
			t.Fatalf("charIdx=%d encoded=%d decoded=%d, want round trip", charIdx, encoded, decoded)
		}
	}
}

func TestUTF16EncodeEmojiPosition(t *testing.T) {
	// "te🚀xt": char indices 0:t 1:e 2:🚀 3:x 4:t
	line := "te🚀xt"
	if got := UTF8Table.Encode(line, 4); got != 7 {
		t.Fatalf("utf8 idx of char 4 = %d, want 7", got)
	}
	if got := UTF16Table.Encode(line, 4); got != 5 {
		t.Fatalf("utf16 idx of char 4 = %d, want 5", got)
	}
}

func TestUTF32EncodeIsIdentity(t *testing.T) {
	line := "🚀abc"
	for i := 0; i <= 4; i++ {
		if got := UTF32Table.Encode(line, i); got != i {
			t.Fatalf("utf32 encode(%d) = %d, want identity", i, got)
		}
	}
}

func TestKindFromWire(t *testing.T) {
	cases := map[string]Kind{
		"utf-8":  UTF8,
		"utf-16": UTF16,
		"utf-32": UTF32,
		"":       UTF16,
		"bogus":  UTF16,
	}
	for wire, want := range cases {
		if got := KindFromWire(wire); got != want {
			t.Errorf("KindFromWire(%q) = %v, want %v", wire, got, want)
		}
	}
}

func TestDisplayWidthEmoji(t *testing.T) {
	if w := DisplayWidth("🚀"); w < 1 {
		t.Fatalf("DisplayWidth(rocket) = %d, want >= 1", w)
	}
	if w := DisplayWidth("abc"); w != 3 {
		t.Fatalf("DisplayWidth(abc) = %d, want 3", w)
	}
}
