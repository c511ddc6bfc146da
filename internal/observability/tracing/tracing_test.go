package tracing

import (
	"context"
	"errors"
	"testing"

	"github.com/smallbiznis/railpos/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
)

func TestNewProviderDisabledInstallsNoop(t *testing.T) {
	prev := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	provider, err := NewProvider(nil, config.Config{}, zap.NewNop())
	require.NoError(t, err)
	assert.Nil(t, provider)

	_, span := Start(context.Background(), "invoice.create_sale")
	assert.False(t, span.IsRecording())
	End(span, nil)
}

func TestNewProviderRejectsUnknownProtocol(t *testing.T) {
	prev := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	cfg := config.Config{Tracing: config.TracingConfig{Enabled: true, ExporterProtocol: "carrier-pigeon"}}
	_, err := NewProvider(nil, cfg, zap.NewNop())
	assert.ErrorContains(t, err, "unsupported OTLP protocol")
}

func TestStartDropsSensitiveAttributesAndHidesErrors(t *testing.T) {
	prev := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	recorder := tracetest.NewSpanRecorder()
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder)))

	_, span := Start(context.Background(), "payment.apply",
		attribute.String("installment_id", "7"),
		attribute.String("notes", "paid by Siti"),
	)
	End(span, errors.New("installment 7 for 0812 failed"))

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, "payment.apply", ended[0].Name())
	require.Len(t, ended[0].Attributes(), 1)
	assert.Equal(t, attribute.Key("installment_id"), ended[0].Attributes()[0].Key)
	assert.NotContains(t, ended[0].Status().Description, "0812")
	require.Len(t, ended[0].Events(), 1)
	for _, attr := range ended[0].Events()[0].Attributes {
		assert.NotContains(t, attr.Value.Emit(), "0812")
	}
}
