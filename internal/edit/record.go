package edit

import (
	"strings"
	"unicode/utf8"

	"github.com/quillcode/quill/internal/cursor"
	"github.com/quillcode/quill/internal/line"
)

// Meta is (start_line, lines_removed, lines_inserted): enough for the LSP
// controller to rebatch a run of edits into a minimal retokenize range.
type Meta struct {
	StartLine     int
	LinesRemoved  int
	LinesInserted int
}

// Combine merges two Metas that describe consecutive edits into one,
// associatively, per the glossary's definition of EditMeta.
func (m Meta) Combine(other Meta) Meta {
	start := m.StartLine
	if other.StartLine < start {
		start = other.StartLine
	}
	return Meta{
		StartLine:     start,
		LinesRemoved:  m.LinesRemoved + other.LinesRemoved,
		LinesInserted: m.LinesInserted + other.LinesInserted,
	}
}

// Record is one reversible transformation of a contiguous range of lines,
// per spec.md §3's Edit record.
type Record struct {
	Meta Meta

	// Pos is the position at which the edit begins.
	Pos cursor.Position

	// Text is the new text inserted (forward direction).
	Text string
	// Reverse is the text removed (forward direction); applying Text then
	// Reverse at Pos restores the original buffer byte-exactly.
	Reverse string

	SelectBefore *cursor.Selection
	SelectAfter  *cursor.Selection
}

// Group is a sequence of Records undone/redone as one unit (e.g.
// mass_replace, apply_edits, or swap_up/down's paired re-indent).
type Group []Record

// endPosition returns the position one past removed, starting at start.
// removed is exactly the text that currently occupies that span, so its
// own newline count and last-segment length fully determine the end.
func endPosition(start cursor.Position, removed string) cursor.Position {
	if removed == "" {
		return start
	}
	segs := strings.Split(removed, "\n")
	if len(segs) == 1 {
		return cursor.Position{Line: start.Line, Char: start.Char + utf8.RuneCountInString(segs[0])}
	}
	last := segs[len(segs)-1]
	return cursor.Position{Line: start.Line + len(segs) - 1, Char: utf8.RuneCountInString(last)}
}

// metaFor derives a Record's Meta from its Pos/Text/Reverse: the number of
// newlines in Reverse/Text is exactly the number of lines removed/inserted
// by splicing Text in place of Reverse at Pos.
func metaFor(pos cursor.Position, removed, inserted string) Meta {
	return Meta{
		StartLine:     pos.Line,
		LinesRemoved:  strings.Count(removed, "\n"),
		LinesInserted: strings.Count(inserted, "\n"),
	}
}

// splice replaces the buffer span [start, end) with newText, rebuilding
// every line the span touches. Lines entirely outside [start.Line,
// end.Line] are untouched, including their token/diagnostic stripes.
func splice(buf *line.Buffer, start, end cursor.Position, newText string) {
	startLine := buf.Get(start.Line)
	prefix, _ := startLine.GetTo(start.Char)

	endLine := buf.Get(end.Line)
	suffix, _ := endLine.GetFrom(end.Char)

	for i := end.Line; i >= start.Line; i-- {
		buf.Remove(i)
	}

	merged := prefix + newText + suffix
	parts := strings.Split(merged, "\n")
	for i, p := range parts {
		buf.Insert(start.Line+i, line.New(p))
	}
}

// Apply performs the forward transformation described by r on buf.
func Apply(buf *line.Buffer, r Record) {
	end := endPosition(r.Pos, r.Reverse)
	splice(buf, r.Pos, end, r.Text)
}

// ApplyReverse undoes r: restores Reverse in place of Text.
func ApplyReverse(buf *line.Buffer, r Record) {
	end := endPosition(r.Pos, r.Text)
	splice(buf, r.Pos, end, r.Reverse)
}

// ApplyGroup applies every record in g forward, in order.
func ApplyGroup(buf *line.Buffer, g Group) {
	for _, r := range g {
		Apply(buf, r)
	}
}

// ApplyGroupReverse undoes every record in g, in reverse order.
func ApplyGroupReverse(buf *line.Buffer, g Group) {
	for i := len(g) - 1; i >= 0; i-- {
		ApplyReverse(buf, g[i])
	}
}

// Invert returns the Record that undoes r: Text and Reverse swap, and so do
// the selections either side of the edit.
func (r Record) Invert() Record {
	return Record{
		Meta: Meta{
			StartLine:     r.Meta.StartLine,
			LinesRemoved:  r.Meta.LinesInserted,
			LinesInserted: r.Meta.LinesRemoved,
		},
		Pos:          r.Pos,
		Text:         r.Reverse,
		Reverse:      r.Text,
		SelectBefore: r.SelectAfter,
		SelectAfter:  r.SelectBefore,
	}
}

// NewRecord builds a Record from its structural fields, deriving Meta.
func NewRecord(pos cursor.Position, removed, inserted string) Record {
	return Record{
		Meta:    metaFor(pos, removed, inserted),
		Pos:     pos,
		Text:    inserted,
		Reverse: removed,
	}
}
