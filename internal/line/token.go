package line

// Token is one syntax-highlighted span on a line. StyleID indexes into the
// active theme's style table; ModifierBits is the LSP semantic-token
// modifier bitset (OR of 1<<modifier-index).
//
// Internally a Token's position is kept absolute (Start is a char index
// into the owning Line) rather than as the delta-from-previous-token the
// LSP wire format uses. This makes the single-char insert/remove shift
// described by the spec a move-the-boundary operation instead of a
// cumulative-delta re-walk, and EncodeDeltas below recovers the wire form
// for outgoing semanticTokens responses. The two representations carry the
// same information; only one token's delta changes when a single char is
// spliced in or out, in both encodings.
type Token struct {
	Start        int
	Len          int
	StyleID      uint32
	ModifierBits uint32
}

// End returns the char index one past the token's last char.
func (t Token) End() int { return t.Start + t.Len }

// EncodedToken is one (deltaStart, len, styleID, modifierBits) tuple in LSP
// semantic-token wire form, relative to the previous token on the same
// line (or to the line start, for the first token).
type EncodedToken struct {
	DeltaStart   int
	Len          int
	StyleID      uint32
	ModifierBits uint32
}

// EncodeDeltas converts an ordered, non-overlapping token slice into LSP
// delta form.
func EncodeDeltas(tokens []Token) []EncodedToken {
	out := make([]EncodedToken, len(tokens))
	prevEnd := 0
	for i, t := range tokens {
		out[i] = EncodedToken{
			DeltaStart:   t.Start - prevEnd,
			Len:          t.Len,
			StyleID:      t.StyleID,
			ModifierBits: t.ModifierBits,
		}
		prevEnd = t.Start
	}
	return out
}

// DecodeDeltas converts LSP delta-form tuples for a single line back into
// absolute Tokens.
func DecodeDeltas(deltas []EncodedToken) []Token {
	out := make([]Token, len(deltas))
	pos := 0
	for i, d := range deltas {
		pos += d.DeltaStart
		out[i] = Token{Start: pos, Len: d.Len, StyleID: d.StyleID, ModifierBits: d.ModifierBits}
	}
	return out
}

// shiftTokens adjusts token start positions after a char-index edit point.
// delta is the change in char count (positive for an insertion, negative
// for a removal). Tokens that start at or after at are shifted; a token
// that straddles the edit
// point is truncated (conservative: it will be re-lexed on next render
// request since render cache is always invalidated alongside).
func shiftTokens(tokens []Token, at, delta int) []Token {
	if len(tokens) == 0 {
		return tokens
	}
	out := make([]Token, 0, len(tokens))
	for _, t := range tokens {
		switch {
		case t.Start >= at:
			t.Start += delta
			if t.Start < 0 {
				t.Start = 0
			}
			out = append(out, t)
		case t.End() > at:
			// Edit point falls inside this token; shrink it to the edit
			// point rather than carry a now-inaccurate span.
			t.Len = at - t.Start
			if t.Len > 0 {
				out = append(out, t)
			}
		default:
			out = append(out, t)
		}
	}
	return out
}
