package render

import (
	"github.com/quillcode/quill/internal/line"
	"github.com/quillcode/quill/internal/token"
)

// SelectSpan is a char-indexed selection range within one line. It mirrors
// line.SelectSpan so callers outside package line never need to import it
// just to describe a render-time selection.
type SelectSpan struct {
	FromChar int
	ToChar   int
}

// buildSpans merges a line's token stripe, diagnostic stripe, any extra
// spans a higher-level renderer contributes (e.g. markdown block/inline
// styling), and an optional selection range into the ordered StyleSpan list
// cellsFromContent expects: syntax first, diagnostic tint next (so it
// overrides syntax color per spec.md §4.5), extra spans next, selection
// last (so it overrides everything).
func buildSpans(th Theme, l *line.Line, sel *SelectSpan, extra ...[]StyleSpan) []StyleSpan {
	toks := l.Tokens()
	diags := l.Diagnostics()
	spans := make([]StyleSpan, 0, len(toks)+1)

	for _, t := range toks {
		base := th.TokenStyle(token.StyleID(t.StyleID))
		start, end := t.Start, t.End()
		sev := line.SeverityAt(diags, start)
		styled := th.DiagnosticTint(base, sev)
		spans = append(spans, StyleSpan{StartChar: start, EndChar: end, Style: styled})
	}

	// Diagnostics that fall outside any token (e.g. an unparsed line, or a
	// diagnostic on whitespace) still need their tint; the token loop above
	// only tints char ranges a token already covers.
	for _, d := range diags {
		if d.Severity == line.SeverityUnknown {
			continue
		}
		if spansCover(spans, d.Range.StartChar, d.Range.EndChar) {
			continue
		}
		spans = append(spans, StyleSpan{
			StartChar: d.Range.StartChar,
			EndChar:   d.Range.EndChar,
			Style:     th.DiagnosticTint(DefaultStyle, d.Severity),
		})
	}

	for _, e := range extra {
		spans = append(spans, e...)
	}

	if sel != nil && sel.FromChar < sel.ToChar {
		spans = append(spans, StyleSpan{
			StartChar: sel.FromChar,
			EndChar:   sel.ToChar,
			Style:     th.SelectionTint(DefaultStyle),
		})
	}

	return spans
}

func spansCover(spans []StyleSpan, start, end int) bool {
	for _, s := range spans {
		if s.StartChar <= start && s.EndChar >= end {
			return true
		}
	}
	return false
}
