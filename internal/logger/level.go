package logger

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/trace"
)

// Level represents a logging level.
type Level slog.Level

// Set of logging levels.
const (
	LevelDebug = Level(slog.LevelDebug)
	LevelInfo  = Level(slog.LevelInfo)
	LevelWarn  = Level(slog.LevelWarn)
	LevelError = Level(slog.LevelError)
)

// SpanTraceID returns the trace id of the span stored in ctx, if any.
func SpanTraceID(ctx context.Context) string {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.HasTraceID() {
		return ""
	}
	return sc.TraceID().String()
}
