package encoding

import "github.com/rivo/uniseg"

// DisplayWidth returns the number of terminal columns s occupies, treating
// s as a sequence of extended grapheme clusters so combining marks and
// regional-indicator/ZWJ emoji sequences collapse to the glyph's true
// on-screen width rather than one column per rune.
func DisplayWidth(s string) int {
	return uniseg.StringWidth(s)
}

// DisplayWidthUpTo returns the display width of the first n chars (Unicode
// scalar values, not graphemes) of s. Used by the renderer to find where a
// horizontal scroll offset or a wrap boundary falls in screen columns.
func DisplayWidthUpTo(s string, n int) int {
	if n <= 0 {
		return 0
	}
	i := 0
	width := 0
	state := -1
	for len(s) > 0 {
		var cluster string
		var w int
		cluster, s, w, state = uniseg.FirstGraphemeClusterInString(s, state)
		clusterChars := runeCount(cluster)
		if i+clusterChars > n {
			// n falls inside a multi-rune cluster; that cluster is not
			// counted, so the width stops before it.
			return width
		}
		width += w
		i += clusterChars
		if i >= n {
			break
		}
	}
	return width
}

func runeCount(s string) int {
	n := 0
	for range s {
		n++
	}
	return n
}
