package lsp

import (
	"github.com/quillcode/quill/internal/encoding"
	"github.com/quillcode/quill/internal/line"
)

// applyDiagnostics installs a publishDiagnostics payload onto buf. The
// server's diagnostic set replaces the document's whole diagnostic state
// atomically (spec.md §5: "Diagnostics replace, not merge, on each
// publish"), and a diagnostic spanning multiple lines is split into one
// line.Diagnostic per line it touches (line.DiagRange is single-line by
// contract).
func applyDiagnostics(buf *line.Buffer, diags []Diagnostic, encKind encoding.Kind) {
	perLine := make(map[int][]line.Diagnostic, len(diags))
	for _, d := range diags {
		for _, pair := range splitDiagnosticByLine(buf, d, encKind) {
			perLine[pair.lineIdx] = append(perLine[pair.lineIdx], pair.diag)
		}
	}

	for i := 0; i < buf.Len(); i++ {
		l := buf.Get(i)
		if ds, ok := perLine[i]; ok {
			l.SetDiagnostics(ds)
		} else if len(l.Diagnostics()) > 0 {
			l.DropDiagnostics()
		}
	}
}

type lineDiagnostic struct {
	lineIdx int
	diag    line.Diagnostic
}

func splitDiagnosticByLine(buf *line.Buffer, d Diagnostic, encKind encoding.Kind) []lineDiagnostic {
	startLine, endLine := d.Range.Start.Line, d.Range.End.Line
	if startLine < 0 || startLine >= buf.Len() {
		return nil
	}
	if endLine >= buf.Len() {
		endLine = buf.Len() - 1
	}
	sev := toLineSeverity(d.Severity)

	if startLine == endLine {
		startChar := FromWire(buf, d.Range.Start, encKind)
		endChar := FromWire(buf, d.Range.End, encKind)
		if endChar <= startChar {
			endChar = startChar + 1
		}
		return []lineDiagnostic{{startLine, line.Diagnostic{
			Range:    line.DiagRange{StartChar: startChar, EndChar: endChar},
			Severity: sev,
			Message:  d.Message,
			Source:   d.Source,
		}}}
	}

	out := make([]lineDiagnostic, 0, endLine-startLine+1)
	startChar := FromWire(buf, d.Range.Start, encKind)
	out = append(out, lineDiagnostic{startLine, line.Diagnostic{
		Range:    line.DiagRange{StartChar: startChar, EndChar: buf.Get(startLine).CharLen()},
		Severity: sev, Message: d.Message, Source: d.Source,
	}})
	for i := startLine + 1; i < endLine; i++ {
		out = append(out, lineDiagnostic{i, line.Diagnostic{
			Range:    line.DiagRange{StartChar: 0, EndChar: buf.Get(i).CharLen()},
			Severity: sev, Message: d.Message, Source: d.Source,
		}})
	}
	endChar := FromWire(buf, d.Range.End, encKind)
	out = append(out, lineDiagnostic{endLine, line.Diagnostic{
		Range:    line.DiagRange{StartChar: 0, EndChar: endChar},
		Severity: sev, Message: d.Message, Source: d.Source,
	}})
	return out
}

func toLineSeverity(sev DiagnosticSeverity) line.Severity {
	switch sev {
	case SeverityError:
		return line.SeverityError
	case SeverityWarning:
		return line.SeverityWarning
	case SeverityInformation:
		return line.SeverityInformation
	case SeverityHint:
		return line.SeverityHint
	default:
		return line.SeverityError
	}
}
