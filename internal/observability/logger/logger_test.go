package logger

import (
	"context"
	"testing"

	"github.com/smallbiznis/railpos/internal/config"
	obsctx "github.com/smallbiznis/railpos/internal/observability/context"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestFromContextIncludesTrace(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	orig := zap.L()
	zap.ReplaceGlobals(zap.New(core))
	defer zap.ReplaceGlobals(orig)

	traceID, _ := trace.TraceIDFromHex("0123456789abcdef0123456789abcdef")
	spanID, _ := trace.SpanIDFromHex("0123456789abcdef")
	sc := trace.NewSpanContext(trace.SpanContextConfig{TraceID: traceID, SpanID: spanID, TraceFlags: trace.FlagsSampled})
	ctx := trace.ContextWithSpanContext(context.Background(), sc)

	FromContext(ctx).Info("hello")
	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["trace_id"] != traceID.String() {
		t.Fatalf("expected trace_id %q, got %q", traceID.String(), fields["trace_id"])
	}
	if fields["span_id"] != spanID.String() {
		t.Fatalf("expected span_id %q, got %q", spanID.String(), fields["span_id"])
	}
}

func TestWithIncludesRequestAndActor(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)

	ctx := obsctx.WithRequestID(context.Background(), "req-1")
	ctx = obsctx.WithActor(ctx, "cashier", "42")

	With(ctx, zap.New(core)).Info("sale")
	fields := logs.All()[0].ContextMap()
	if fields["request_id"] != "req-1" {
		t.Fatalf("expected request_id, got %v", fields["request_id"])
	}
	if fields["actor_type"] != "cashier" || fields["actor_id"] != "42" {
		t.Fatalf("expected actor fields, got %v", fields)
	}
}

func TestNewHonoursLevel(t *testing.T) {
	log, err := New(config.Config{AppName: "railpos", LogLevel: "warn", LogFormat: "json"})
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	if log.Core().Enabled(zapcore.InfoLevel) {
		t.Fatalf("expected info to be disabled at warn level")
	}
	if !log.Core().Enabled(zapcore.WarnLevel) {
		t.Fatalf("expected warn to be enabled")
	}
}
