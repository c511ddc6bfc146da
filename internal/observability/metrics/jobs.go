package metrics

import (
	"context"
	"strings"
	"time"

	"github.com/smallbiznis/railpos/internal/config"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// JobMetrics captures background job runs.
type JobMetrics struct {
	duration metric.Float64Histogram
	inFlight metric.Int64UpDownCounter
}

// NewJobMetrics creates the job instruments on provider.
func NewJobMetrics(cfg config.Config, provider metric.MeterProvider) (*JobMetrics, error) {
	name := strings.TrimSpace(cfg.AppName)
	if name == "" {
		name = "railpos"
	}
	meter := provider.Meter(name + "/jobs")

	duration, err := meter.Float64Histogram("railpos.job.duration_ms",
		metric.WithDescription("Wall time of a background job run."),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}
	inFlight, err := meter.Int64UpDownCounter("railpos.job.in_flight")
	if err != nil {
		return nil, err
	}

	return &JobMetrics{duration: duration, inFlight: inFlight}, nil
}

// Track marks job as running and returns the func that records its outcome.
func (m *JobMetrics) Track(ctx context.Context, job string) func(err error) {
	if m == nil {
		return func(error) {}
	}
	attrs := metric.WithAttributes(attribute.String("job", job))
	m.inFlight.Add(ctx, 1, attrs)
	start := time.Now()

	return func(err error) {
		m.inFlight.Add(ctx, -1, attrs)
		outcome := "ok"
		if err != nil {
			outcome = "error"
		}
		m.duration.Record(ctx, float64(time.Since(start).Milliseconds()), metric.WithAttributes(
			attribute.String("job", job),
			attribute.String("outcome", outcome),
		))
	}
}
