package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewWritesAtOrAboveLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, LevelInfo)

	logger.Debug("should not appear")
	logger.Info("hello", "key", "value")

	out := buf.String()
	if strings.Contains(out, "should not appear") {
		t.Fatalf("debug line leaked through an Info-level handler: %s", out)
	}
	if !strings.Contains(out, "hello") || !strings.Contains(out, "key=value") {
		t.Fatalf("missing expected info line: %s", out)
	}
}

func TestLSPTraceTagsLanguage(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, LevelDebug)
	trace := LSPTrace(logger, "go")

	trace("->", "initialize", []byte(`{"id":1}`))

	out := buf.String()
	if !strings.Contains(out, "lang=go") || !strings.Contains(out, "method=initialize") {
		t.Fatalf("trace line missing fields: %s", out)
	}
}
