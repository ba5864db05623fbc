package lsp

import (
	"bytes"
	"encoding/json"
	"io"
	"testing"

	"github.com/quillcode/quill/internal/encoding"
	"github.com/quillcode/quill/internal/line"
	"github.com/quillcode/quill/internal/token"
)

func newTestTransport() *Transport {
	return NewTransport(bytes.NewReader(nil), io.Discard, nil)
}

func TestTransportSendRequestQueuesJSONRPCFrame(t *testing.T) {
	tr := newTestTransport()
	id, err := tr.SendRequest("initialize", InitializeParams{})
	if err != nil {
		t.Fatalf("SendRequest: %v", err)
	}
	if id != 1 {
		t.Fatalf("id = %d, want 1", id)
	}

	select {
	case data := <-tr.outbox:
		if !bytes.Contains(data, []byte(`"method":"initialize"`)) {
			t.Fatalf("frame missing method: %s", data)
		}
		if !bytes.Contains(data, []byte(`"id":1`)) {
			t.Fatalf("frame missing id: %s", data)
		}
	default:
		t.Fatal("expected a frame on the outbox")
	}
}

func TestTransportTriageRoutesResponseToKnownID(t *testing.T) {
	tr := newTestTransport()
	tr.pending[7] = struct{}{}

	raw := []byte(`{"jsonrpc":"2.0","id":7,"result":{"ok":true}}`)
	msg, ok := tr.triage(raw)
	if !ok || !msg.IsResponse || msg.ID != 7 {
		t.Fatalf("triage = %+v, ok=%v", msg, ok)
	}
	if _, stillPending := tr.pending[7]; stillPending {
		t.Fatalf("id 7 should be removed from pending after triage")
	}
}

func TestTransportTriageIgnoresUnknownResponseID(t *testing.T) {
	tr := newTestTransport()
	raw := []byte(`{"jsonrpc":"2.0","id":99,"result":{}}`)
	if _, ok := tr.triage(raw); ok {
		t.Fatalf("triage should drop a response for an id nothing is waiting on")
	}
}

func TestTransportTriageRoutesNotification(t *testing.T) {
	tr := newTestTransport()
	raw := []byte(`{"jsonrpc":"2.0","method":"textDocument/publishDiagnostics","params":{"uri":"file:///a"}}`)
	msg, ok := tr.triage(raw)
	if !ok || msg.IsResponse || msg.Method != "textDocument/publishDiagnostics" {
		t.Fatalf("triage = %+v, ok=%v", msg, ok)
	}
}

func TestBindCapabilitiesLeavesUnsupportedFeaturesNoop(t *testing.T) {
	caps := ServerCapabilities{
		HoverProvider: json.RawMessage("true"),
	}
	d := bindCapabilities(caps)

	s := NewSession(newTestTransport(), "/tmp/x.go", 4, false)
	if _, err := d.Hover(s, Position{}); err != nil {
		t.Fatalf("hover should be live: %v", err)
	}
	if _, err := d.Completion(s, Position{}); err != ErrMissingCapability {
		t.Fatalf("completion should be noop, got err=%v", err)
	}
}

func TestApplyDiagnosticsReplacesWholeDocument(t *testing.T) {
	buf := line.FromString("aaa\nbbb\nccc\n")
	buf.Get(0).SetDiagnostics([]line.Diagnostic{{Range: line.DiagRange{StartChar: 0, EndChar: 1}, Severity: line.SeverityWarning}})

	diags := []Diagnostic{
		{Range: Range{Start: Position{Line: 1, Character: 0}, End: Position{Line: 1, Character: 3}}, Severity: SeverityError, Message: "boom"},
	}
	applyDiagnostics(buf, diags, encoding.UTF16)

	if len(buf.Get(0).Diagnostics()) != 0 {
		t.Fatalf("line 0's stale diagnostic should be cleared by the replace-not-merge publish")
	}
	got := buf.Get(1).Diagnostics()
	if len(got) != 1 || got[0].Severity != line.SeverityError {
		t.Fatalf("line 1 diagnostics = %+v", got)
	}
}

func TestApplyDiagnosticsSplitsMultilineRange(t *testing.T) {
	buf := line.FromString("aaa\nbbb\nccc\n")
	diags := []Diagnostic{
		{Range: Range{Start: Position{Line: 0, Character: 1}, End: Position{Line: 2, Character: 1}}, Severity: SeverityWarning, Message: "spans"},
	}
	applyDiagnostics(buf, diags, encoding.UTF32)

	if d := buf.Get(0).Diagnostics(); len(d) != 1 || d[0].Range.StartChar != 1 || d[0].Range.EndChar != 3 {
		t.Fatalf("line 0 split = %+v", d)
	}
	if d := buf.Get(1).Diagnostics(); len(d) != 1 || d[0].Range.StartChar != 0 || d[0].Range.EndChar != 3 {
		t.Fatalf("line 1 split = %+v", d)
	}
	if d := buf.Get(2).Diagnostics(); len(d) != 1 || d[0].Range.StartChar != 0 || d[0].Range.EndChar != 1 {
		t.Fatalf("line 2 split = %+v", d)
	}
}

func TestDecodeSemanticTokensAbsolutePositions(t *testing.T) {
	buf := line.FromString("func main() {}\nreturn\n")
	styleIDs := legendToStyleIDs([]string{"keyword", "function"})

	// Token 1: line 0, char 0, len 4, type 0 (keyword); token 2: same line,
	// delta-start 5, len 4, type 1 (function); token 3: line 1 (deltaLine
	// 1), char 0, len 6, type 0 (keyword).
	data := []uint32{
		0, 0, 4, 0, 0,
		0, 5, 4, 1, 0,
		1, 0, 6, 0, 0,
	}
	byLine := decodeSemanticTokens(buf, styleIDs, encoding.UTF32, data)

	if len(byLine[0]) != 2 {
		t.Fatalf("line 0 tokens = %+v", byLine[0])
	}
	if byLine[0][0].Start != 0 || byLine[0][0].Len != 4 || token.StyleID(byLine[0][0].StyleID) != token.StyleKeyword {
		t.Fatalf("token 1 = %+v", byLine[0][0])
	}
	if byLine[0][1].Start != 5 || byLine[0][1].Len != 4 || token.StyleID(byLine[0][1].StyleID) != token.StyleFunction {
		t.Fatalf("token 2 = %+v", byLine[0][1])
	}
	if len(byLine[1]) != 1 || byLine[1][0].Start != 0 || byLine[1][0].Len != 6 {
		t.Fatalf("line 1 tokens = %+v", byLine[1])
	}
}

// TestApplyRangeTokensOnlyReplacesWithinRange covers spec.md §8 scenario
// (f): a range-scoped semantic-tokens response must only replace styles
// within [rangeStart, rangeEnd), leaving the rest of the document's
// existing token stripe untouched.
func TestApplyRangeTokensOnlyReplacesWithinRange(t *testing.T) {
	buf := line.FromString("aaa\nbbb\nccc\nddd\n")
	styleIDs := legendToStyleIDs([]string{"keyword"})

	for i := 0; i < buf.Len(); i++ {
		buf.Get(i).ReplaceTokens([]line.Token{{Start: 0, Len: 3, StyleID: uint32(token.StyleString)}})
	}

	// A range response covering only line 1, re-tokenizing it as a keyword.
	result := SemanticTokensResult{Data: []uint32{1, 0, 3, 0, 0}}
	raw, _ := json.Marshal(result)
	applyRangeTokens(buf, styleIDs, encoding.UTF32, raw, 1, 2)

	for _, i := range []int{0, 2, 3} {
		got := buf.Get(i).Tokens()
		if len(got) != 1 || token.StyleID(got[0].StyleID) != token.StyleString {
			t.Fatalf("line %d tokens = %+v, want untouched StyleString", i, got)
		}
	}
	got := buf.Get(1).Tokens()
	if len(got) != 1 || token.StyleID(got[0].StyleID) != token.StyleKeyword {
		t.Fatalf("line 1 tokens = %+v, want replaced with StyleKeyword", got)
	}
}

// TestApplyRangeTokensClearsLinesTheResponseOmitsInsideRange mirrors the
// doc comment on applyRangeTokens: a line inside [rangeStart, rangeEnd)
// that the server's reply says nothing about is cleared, since the
// range reply is a complete description of that span.
func TestApplyRangeTokensClearsLinesTheResponseOmitsInsideRange(t *testing.T) {
	buf := line.FromString("aaa\nbbb\nccc\n")
	styleIDs := legendToStyleIDs([]string{"keyword"})
	for i := 0; i < buf.Len(); i++ {
		buf.Get(i).ReplaceTokens([]line.Token{{Start: 0, Len: 3, StyleID: uint32(token.StyleString)}})
	}

	result := SemanticTokensResult{Data: []uint32{}}
	raw, _ := json.Marshal(result)
	applyRangeTokens(buf, styleIDs, encoding.UTF32, raw, 1, 2)

	if got := buf.Get(1).Tokens(); len(got) != 0 {
		t.Fatalf("line 1 tokens = %+v, want cleared", got)
	}
	if got := buf.Get(0).Tokens(); len(got) != 1 {
		t.Fatalf("line 0 tokens = %+v, want untouched", got)
	}
}

func TestSessionHandshakeBindsCapabilitiesAndGoesActive(t *testing.T) {
	s := NewSession(newTestTransport(), "/tmp/main.go", 4, false)
	if err := s.SetClient("go", "package main\n"); err != nil {
		t.Fatalf("SetClient: %v", err)
	}
	if s.State() != StateCapabilityProbing {
		t.Fatalf("state = %v, want CapabilityProbing", s.State())
	}

	result := InitializeResult{Capabilities: ServerCapabilities{
		PositionEncoding: "utf-8",
		HoverProvider:    json.RawMessage("true"),
	}}
	raw, _ := json.Marshal(result)
	s.handleInitializeResult(raw)

	if s.State() != StateActive {
		t.Fatalf("state = %v, want Active", s.State())
	}
	if s.Encoding().Name != "utf-8" {
		t.Fatalf("encoding = %s, want utf-8", s.Encoding().Name)
	}
	if _, err := s.dispatch.Hover(s, Position{}); err != nil {
		t.Fatalf("hover should be bound live after handshake: %v", err)
	}
}

func TestSessionFailMarksQuestionedFromActive(t *testing.T) {
	s := NewSession(newTestTransport(), "/tmp/x.go", 4, false)
	s.state = StateActive
	var restarted error
	s.OnRestart = func(err error) { restarted = err }

	s.fail(ErrTimeout)

	if s.State() != StateQuestioned {
		t.Fatalf("state = %v, want Questioned", s.State())
	}
	if !s.Questioned() {
		t.Fatalf("Questioned() should be true after a send failure")
	}
	if restarted == nil {
		t.Fatalf("OnRestart should have fired")
	}
}
