package logger

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoggerAddsRequestID(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	l := New(zap.New(core))

	l.Logger(context.Background()).Info("plain")
	l.Logger(WithRequestID(context.Background(), "req-1")).Info("tagged")

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("got %d entries", len(entries))
	}
	if _, ok := entries[0].ContextMap()["request_id"]; ok {
		t.Error("request_id logged without one in context")
	}
	if got := entries[1].ContextMap()["request_id"]; got != "req-1" {
		t.Errorf("request_id = %v", got)
	}
}

func TestLoggerAddsTraceIDs(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	l := New(zap.New(core))

	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    trace.TraceID{1},
		SpanID:     trace.SpanID{2},
		TraceFlags: trace.FlagsSampled,
	})
	ctx := WithRequestID(trace.ContextWithSpanContext(context.Background(), sc), "req-2")
	l.Logger(ctx).Info("traced")

	fields := logs.All()[0].ContextMap()
	if fields["trace_id"] != sc.TraceID().String() || fields["span_id"] != sc.SpanID().String() {
		t.Errorf("fields = %v", fields)
	}
	if fields["request_id"] != "req-2" {
		t.Errorf("request_id = %v", fields["request_id"])
	}
}
