package edit

// closingFor maps an opening bracket/quote to its closing counterpart, for
// push_char's auto-pair behavior.
var closingFor = map[rune]rune{
	'(':  ')',
	'{':  '}',
	'[':  ']',
	'"':  '"',
	'\'': '\'',
}

// isClosingChar reports whether r is one of the recognized closing chars.
func isClosingChar(r rune) bool {
	for _, c := range closingFor {
		if c == r {
			return true
		}
	}
	return false
}

// isClosingRepeat reports whether typing ch at charIdx on line is simply
// retyping the closing char that is already there (so push_char should
// advance the cursor instead of inserting a duplicate).
func isClosingRepeat(lineContent []rune, ch rune, charIdx int) bool {
	if !isClosingChar(ch) {
		return false
	}
	if charIdx < 0 || charIdx >= len(lineContent) {
		return false
	}
	return lineContent[charIdx] == ch
}
