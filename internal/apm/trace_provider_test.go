package apm

import (
	"context"
	"errors"
	"testing"

	"github.com/fd1az/cap-alpha/internal/config"
	"github.com/fd1az/cap-alpha/internal/logger"
)

func TestParseHeaders(t *testing.T) {
	got := parseHeaders("x-team=abc, api-key=k=v ,bad")
	if got["x-team"] != "abc" || got["api-key"] != "k=v" || len(got) != 2 {
		t.Errorf("parseHeaders = %v", got)
	}
}

func TestNewTraceProvider_Disabled(t *testing.T) {
	tp, err := NewTraceProvider(context.Background(), config.TelemetryConfig{TraceProvider: "zipkin"}, logger.NewDiscard())
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := tp.(emptyTraceProvider); !ok {
		t.Errorf("expected empty provider, got %T", tp)
	}
}

func TestNewTraceProvider_Unknown(t *testing.T) {
	_, err := NewTraceProvider(context.Background(),
		config.TelemetryConfig{Enabled: true, TraceProvider: "jaeger"}, logger.NewDiscard())
	if err == nil {
		t.Fatal("expected error for unknown provider")
	}
}

func TestNewTraceProvider_Console(t *testing.T) {
	tp, err := NewTraceProvider(context.Background(),
		config.TelemetryConfig{Enabled: true, TraceProvider: "console", ServiceName: "test"}, logger.NewDiscard())
	if err != nil {
		t.Fatal(err)
	}
	defer tp.Stop()

	_, span := NewTracer("test").StartSpanFromContext(context.Background(), "op")
	span.NoticeError(errors.New("boom"))
	span.NoticeError(nil)
	span.End()
}
