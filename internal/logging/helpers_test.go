package logging

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestHelpersAreNilSafe(t *testing.T) {
	Debug(nil, "x")
	Info(nil, "x")
	Warn(nil, "x")
	Error(nil, "x", errors.New("boom"))
}

func TestErrorAppendsErrorAttr(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	Error(logger, "store failed", errors.New("boom"), FieldCount, 2)
	out := buf.String()
	if !strings.Contains(out, "error=boom") || !strings.Contains(out, "count=2") {
		t.Fatalf("expected error and count attrs, got %q", out)
	}
}
