package render

// recomputeSkip implements spec.md §4.5's horizontal-scroll rule: keep the
// cursor on screen with at least margin columns of breathing room on
// either side, preferring the previous skip when the cursor hasn't moved
// out of view rather than recentering every frame.
func recomputeSkip(prevSkip, cursorChar, contentWidth int) int {
	const margin = 2
	if contentWidth <= 0 {
		return 0
	}

	// Cursor still comfortably inside the current window: keep it.
	if cursorChar >= prevSkip+margin && cursorChar < prevSkip+contentWidth-margin {
		return prevSkip
	}
	if cursorChar < prevSkip+margin {
		skip := cursorChar - margin
		if skip < 0 {
			skip = 0
		}
		return skip
	}
	// Cursor ran past the right edge: scroll just enough to restore margin.
	skip := cursorChar - contentWidth + margin + 1
	if skip < 0 {
		skip = 0
	}
	return skip
}
