package apm

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Tracer starts spans for one instrumentation scope.
type Tracer interface {
	StartSpanFromContext(ctx context.Context, spanName string, opts ...trace.SpanStartOption) (context.Context, Span)
	SpanFromContext(ctx context.Context) Span
}

// Span is the subset of trace.Span the application uses, plus NoticeError.
type Span interface {
	SetAttributes(values ...attribute.KeyValue)
	AddEvent(name string, options ...trace.EventOption)
	NoticeError(err error)
	End(options ...trace.SpanEndOption)
}

type openTracer struct {
	tracer trace.Tracer
}

// NewTracer returns a Tracer backed by the global provider.
func NewTracer(name string) Tracer {
	return &openTracer{tracer: otel.Tracer(name)}
}

func (t *openTracer) StartSpanFromContext(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, Span) {
	ctx, span := t.tracer.Start(ctx, name, opts...)
	return ctx, traceSpan{span}
}

func (t *openTracer) SpanFromContext(ctx context.Context) Span {
	return traceSpan{trace.SpanFromContext(ctx)}
}

type traceSpan struct {
	trace.Span
}

// NoticeError records err and marks the span failed. A nil err is ignored.
func (s traceSpan) NoticeError(err error) {
	if err == nil {
		return
	}
	s.RecordError(err)
	s.SetStatus(codes.Error, err.Error())
}
