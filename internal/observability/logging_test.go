package observability

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogContextPropagation(t *testing.T) {
	ctx := WithBuildID(context.Background(), "build-1")
	ctx = WithStage(ctx, "render_pages")

	lc := extractLogContext(ctx)
	assert.Equal(t, "build-1", lc.BuildID)
	assert.Equal(t, "render_pages", lc.Stage)

	// Stage changes must not drop the build id.
	ctx = WithStage(ctx, "write_output")
	assert.Equal(t, LogContext{BuildID: "build-1", Stage: "write_output"}, extractLogContext(ctx))
}

func TestContextLoggingIncludesFields(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })

	ctx := WithStage(WithBuildID(context.Background(), "b-42"), "discover_pages")
	InfoContext(ctx, "Pages discovered", slog.Int("count", 3))
	DebugContext(context.Background(), "no context")

	out := buf.String()
	assert.Contains(t, out, "build_id=b-42")
	assert.Contains(t, out, "stage=discover_pages")
	assert.Contains(t, out, "count=3")
	assert.Contains(t, out, `msg="no context"`)
}
