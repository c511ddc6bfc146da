package metrics

import (
	"context"
	"errors"
	"testing"

	"github.com/smallbiznis/railpos/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func TestJobMetricsTrack(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	m, err := NewJobMetrics(config.Config{}, provider)
	require.NoError(t, err)

	ctx := context.Background()
	m.Track(ctx, "overdue_sweep")(nil)
	m.Track(ctx, "overdue_sweep")(errors.New("boom"))

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))
	require.Len(t, rm.ScopeMetrics, 1)
	assert.Equal(t, "railpos/jobs", rm.ScopeMetrics[0].Scope.Name)

	var points int
	for _, m := range rm.ScopeMetrics[0].Metrics {
		if m.Name != "railpos.job.duration_ms" {
			continue
		}
		hist, ok := m.Data.(metricdata.Histogram[float64])
		require.True(t, ok)
		for _, dp := range hist.DataPoints {
			points++
			assert.Equal(t, uint64(1), dp.Count)
		}
	}
	assert.Equal(t, 2, points)
}

func TestNilJobMetricsIsSafe(t *testing.T) {
	var m *JobMetrics
	m.Track(context.Background(), "x")(nil)
}
