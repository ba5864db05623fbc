package render

import (
	"regexp"

	"github.com/quillcode/quill/internal/cursor"
	"github.com/quillcode/quill/internal/line"
	"github.com/quillcode/quill/internal/token"
)

// MarkdownRenderer parses block structure (headers, paragraphs, quotes,
// code fences, lists, rules) and inline spans (bold, italic, code, link,
// image) and paints the result atop a TextRenderer, per spec.md §4.6.
type MarkdownRenderer struct {
	text    *TextRenderer
	inFence bool
}

// NewMarkdownRenderer creates a MarkdownRenderer with the given theme.
func NewMarkdownRenderer(th Theme) *MarkdownRenderer {
	m := &MarkdownRenderer{text: NewTextRenderer(th)}
	m.text.ExtraSpans = m.spansForLine
	return m
}

func (m *MarkdownRenderer) Render(buf *line.Buffer, mc *cursor.MultiCursor, vp Viewport, sink Sink) Stats {
	m.inFence = false
	return m.text.Render(buf, mc, vp, sink)
}

func (m *MarkdownRenderer) FastRender(buf *line.Buffer, mc *cursor.MultiCursor, vp Viewport, sink Sink) Stats {
	return m.text.FastRender(buf, mc, vp, sink)
}

var (
	reHeading    = regexp.MustCompile(`^(#{1,6})\s`)
	reQuote      = regexp.MustCompile(`^\s*>`)
	reFence      = regexp.MustCompile("^\\s*```")
	reListItem   = regexp.MustCompile(`^\s*([-*+]|\d+\.)\s`)
	reBold       = regexp.MustCompile(`\*\*([^*]+)\*\*|__([^_]+)__`)
	reItalic     = regexp.MustCompile(`\*([^*]+)\*|_([^_]+)_`)
	reInlineCode = regexp.MustCompile("`([^`]+)`")
	reImage      = regexp.MustCompile(`!\[[^\]]*\]\([^)]*\)`)
	reLink       = regexp.MustCompile(`\[[^\]]*\]\([^)]*\)`)

	// Go's regexp is RE2-based and has no backreferences, so this accepts
	// any mix of rule characters rather than requiring all three be the
	// same glyph — a harmless loosening for a renderer that is only
	// deciding whether to paint a line as a rule, not validating markdown.
	reRule = regexp.MustCompile(`^\s*([-*_]\s*){3,}$`)
)

// spansForLine classifies one line's block kind and, for non-code-fence
// blocks, layers inline spans on top. Fence state is tracked across calls
// in document order; callers that may skip lines (fast_render's per-line
// cache skip) still re-derive it correctly because code-fence toggling is
// itself a content change that resets the line's render cache, forcing a
// fresh top-to-bottom walk whenever a fence line is touched.
func (m *MarkdownRenderer) spansForLine(lineIdx int, l *line.Line) []StyleSpan {
	content := l.Content()
	th := m.text.Theme

	if reFence.MatchString(content) {
		m.inFence = !m.inFence
		return []StyleSpan{{StartChar: 0, EndChar: l.CharLen(), Style: th.TokenStyle(token.StyleComment)}}
	}
	if m.inFence {
		return []StyleSpan{{StartChar: 0, EndChar: l.CharLen(), Style: Style{Fg: RGB(150, 190, 110)}}}
	}

	var spans []StyleSpan
	switch {
	case reHeading.MatchString(content):
		spans = append(spans, StyleSpan{StartChar: 0, EndChar: l.CharLen(), Style: Style{Fg: RGB(220, 180, 100), Attrs: AttrBold}})
	case reQuote.MatchString(content):
		spans = append(spans, StyleSpan{StartChar: 0, EndChar: l.CharLen(), Style: Style{Fg: RGB(140, 140, 140), Attrs: AttrItalic}})
	case reRule.MatchString(content):
		spans = append(spans, StyleSpan{StartChar: 0, EndChar: l.CharLen(), Style: Style{Fg: RGB(90, 95, 105)}})
	case reListItem.MatchString(content):
		loc := reListItem.FindStringIndex(content)
		spans = append(spans, StyleSpan{StartChar: 0, EndChar: charLenOfByteLen(content, loc[1]), Style: Style{Fg: RGB(220, 120, 140)}})
	}

	spans = append(spans, inlineSpans(content)...)
	return spans
}

// inlineSpans finds bold/italic/code/link/image spans within a line's raw
// content. Matches are found independently and may overlap byte-wise (e.g.
// a link inside bold text); buildSpans' later-wins overlay semantics mean
// whichever is appended last paints on top, so order here is least to most
// specific: bold/italic first, then code, then link/image.
func inlineSpans(content string) []StyleSpan {
	var spans []StyleSpan
	add := func(re *regexp.Regexp, style Style) {
		for _, loc := range re.FindAllStringIndex(content, -1) {
			spans = append(spans, StyleSpan{
				StartChar: charLenOfByteLen(content, loc[0]),
				EndChar:   charLenOfByteLen(content, loc[1]),
				Style:     style,
			})
		}
	}
	add(reBold, Style{Attrs: AttrBold})
	add(reItalic, Style{Attrs: AttrItalic})
	add(reInlineCode, Style{Fg: RGB(150, 190, 110), Bg: RGB(40, 42, 48)})
	add(reLink, Style{Fg: RGB(90, 170, 230), Attrs: AttrUnderline})
	add(reImage, Style{Fg: RGB(190, 150, 220), Attrs: AttrUnderline})
	return spans
}

// charLenOfByteLen converts a byte offset into content to the char (rune)
// count preceding it, since StyleSpan is char-indexed like line.Token.
func charLenOfByteLen(content string, byteLen int) int {
	return len([]rune(content[:byteLen]))
}
