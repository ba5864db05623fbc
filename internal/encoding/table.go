package encoding

import "unicode/utf16"

// Table is a record of operations for one encoding, selected at runtime by
// Kind. Using a struct of function values instead of an interface keeps the
// hot conversion path branch-free once a Kind is chosen for a session, and
// mirrors the teacher's preference for a value-held strategy over a type
// hierarchy (buffer.LineEnding plays the same role for newline style).
type Table struct {
	// Name is the LSP wire name, e.g. "utf-16".
	Name string

	// RuneLen returns how many code units of this encoding one scalar value
	// occupies.
	RuneLen func(r rune) int

	// Encode converts an in-line char index into this encoding's position,
	// i.e. the number of code units preceding content's charIdx-th rune.
	Encode func(content string, charIdx int) int

	// InsertAt reports the encoded index at which a rune inserted at charIdx
	// would land. The caller performs the actual content splice; this value
	// is what gets reported as the LSP change-event position.
	InsertAt func(content string, charIdx int) int

	// RemoveAt reports the encoded index of the rune at charIdx, for
	// emitting the removed range's end position.
	RemoveAt func(content string, charIdx int) int
}

func runeIndex(content string, charIdx int) int {
	i := 0
	for range content {
		if i == charIdx {
			return i
		}
		i++
	}
	return charIdx
}

// UTF8Table implements Table for byte-offset positions.
var UTF8Table = Table{
	Name: "utf-8",
	RuneLen: func(r rune) int {
		return runeUTF8Len(r)
	},
	Encode:   utf8Encode,
	InsertAt: utf8Encode,
	RemoveAt: utf8Encode,
}

func runeUTF8Len(r rune) int {
	switch {
	case r < 0x80:
		return 1
	case r < 0x800:
		return 2
	case r < 0x10000:
		return 3
	default:
		return 4
	}
}

func utf8Encode(content string, charIdx int) int {
	i := 0
	byteIdx := 0
	for _, r := range content {
		if i == charIdx {
			return byteIdx
		}
		byteIdx += runeUTF8Len(r)
		i++
	}
	return byteIdx
}

// UTF16Table implements Table for UTF-16 code-unit positions, the LSP
// default encoding.
var UTF16Table = Table{
	Name: "utf-16",
	RuneLen: func(r rune) int {
		if r > 0xFFFF {
			return 2
		}
		return 1
	},
	Encode:   utf16Encode,
	InsertAt: utf16Encode,
	RemoveAt: utf16Encode,
}

func utf16Encode(content string, charIdx int) int {
	i := 0
	units := 0
	for _, r := range content {
		if i == charIdx {
			return units
		}
		if r > 0xFFFF {
			units += 2
		} else {
			units++
		}
		i++
	}
	return units
}

// UTF32Table implements Table for scalar-value positions, identical to the
// internal char index. Used when no LSP session is active.
var UTF32Table = Table{
	Name:     "utf-32",
	RuneLen:  func(rune) int { return 1 },
	Encode:   func(_ string, charIdx int) int { return charIdx },
	InsertAt: func(_ string, charIdx int) int { return charIdx },
	RemoveAt: func(_ string, charIdx int) int { return charIdx },
}

// DecodeUTF16 converts a UTF-16 code-unit column within content back to a
// char index. It is the inverse of UTF16Table.Encode, used when parsing LSP
// Position values arriving from the server.
func DecodeUTF16(content string, utf16Col int) int {
	units := 0
	charIdx := 0
	for _, r := range content {
		if units >= utf16Col {
			return charIdx
		}
		if r > 0xFFFF {
			units += 2
		} else {
			units++
		}
		charIdx++
	}
	return charIdx
}

// Utf16Units counts the UTF-16 code units a string would occupy; used by
// Line when it needs the whole-line encoded length without per-char
// traversal bookkeeping.
func Utf16Units(s string) int {
	n := 0
	for _, r := range s {
		if l := utf16.RuneLen(r); l > 0 {
			n += l
		} else {
			n++
		}
	}
	return n
}
