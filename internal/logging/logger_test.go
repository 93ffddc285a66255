package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestInitWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	Init(&buf, "parking-test", "production", "")

	Info(context.Background(), "vehicle admitted", slog.String("registration", "ABC123"))
	Debug(context.Background(), "hidden at info level")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "vehicle admitted", entry["msg"])
	assert.Equal(t, "ABC123", entry["registration"])
	assert.Equal(t, "parking-test", entry["service"])
	assert.Equal(t, "production", entry["environment"])
	assert.NotContains(t, buf.String(), "hidden at info level")
}

func TestWithContextAddsTraceIDs(t *testing.T) {
	var buf bytes.Buffer
	Init(&buf, "parking-test", "development", "")

	tp := sdktrace.NewTracerProvider()
	defer tp.Shutdown(context.Background())

	ctx, span := tp.Tracer("test").Start(context.Background(), "op")
	Warn(ctx, "traced")
	span.End()

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, span.SpanContext().TraceID().String(), entry["traceId"])
	assert.Equal(t, span.SpanContext().SpanID().String(), entry["spanId"])
}

func TestWithContextAddsSessionID(t *testing.T) {
	var buf bytes.Buffer
	Init(&buf, "parking-test", "development", "")

	ctx := WithSession(context.Background(), "session-7")
	Info(ctx, "shell command")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "session-7", entry["session_id"])
	assert.NotContains(t, entry, "traceId")
	assert.Equal(t, "session-7", SessionID(ctx))
	assert.Empty(t, SessionID(context.Background()))
}

func TestDevelopmentStaysAtInfo(t *testing.T) {
	var buf bytes.Buffer
	Init(&buf, "parking-test", "development", "")

	Debug(context.Background(), "event published")

	assert.Empty(t, buf.String())
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelInfo, parseLevel(""))
	assert.Equal(t, slog.LevelDebug, parseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, parseLevel("WARN"))
	assert.Equal(t, slog.LevelError, parseLevel("error"))
	assert.Equal(t, slog.LevelInfo, parseLevel("verbose"))
}
