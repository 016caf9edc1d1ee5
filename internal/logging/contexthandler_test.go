package logging_test

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/myrjola/macrofit/internal/logging"
)

func TestWithAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewLogger(&buf, slog.LevelDebug, nil)

	ctx := logging.WithAttrs(context.Background(), slog.String("user_id", "u1"))
	child := logging.WithAttrs(ctx, slog.String("focus", "core"))
	logger.LogAttrs(child, slog.LevelInfo, "quick suggestions served")
	logger.LogAttrs(ctx, slog.LevelInfo, "parent")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 log lines, got %d: %q", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], "user_id=u1") || !strings.Contains(lines[0], "focus=core") {
		t.Errorf("expected child attributes in %q", lines[0])
	}
	if strings.Contains(lines[1], "focus=core") {
		t.Errorf("child attributes leaked into parent context: %q", lines[1])
	}
}
