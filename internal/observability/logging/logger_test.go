package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNewLoggerToJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerTo(&buf, "api", "warn", "")

	logger.Info("document_ingested", "document_id", "doc-1")
	if buf.Len() != 0 {
		t.Fatalf("info must be filtered at warn level, got %q", buf.String())
	}

	logger.Warn("blob_put_failed", "key", "alice/doc-1_a.pdf")
	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected json log line: %v", err)
	}
	if entry["msg"] != "blob_put_failed" || entry["service"] != "api" || entry["key"] != "alice/doc-1_a.pdf" {
		t.Fatalf("unexpected entry %+v", entry)
	}
}

func TestNewLoggerToText(t *testing.T) {
	var buf bytes.Buffer
	NewLoggerTo(&buf, "mcp", "debug", "text").Debug("tool_called", "tool", "ask_documents")
	if !strings.Contains(buf.String(), "msg=tool_called") || !strings.Contains(buf.String(), "service=mcp") {
		t.Fatalf("unexpected text log %q", buf.String())
	}
}
